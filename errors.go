package mp3tag

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTagNotFound is returned when a stream does not start with an
	// ID3v2.3 tag header. It is not fatal: Open falls back to the
	// legacy tag and creates a new tag.
	ErrTagNotFound = errors.New("mp3tag: no ID3v2.3 tag found")

	// ErrV1NotFound is returned when the last 128 bytes of a file are
	// not an ID3v1 tag.
	ErrV1NotFound = errors.New("mp3tag: no ID3v1 tag found")

	// ErrInvalidEncoding indicates a text encoding byte other than 0
	// (ISO-8859-1) or 1 (UTF-16).
	ErrInvalidEncoding = errors.New("mp3tag: invalid text encoding")

	// ErrInvalidArgument indicates an out of range value passed to a
	// setter, such as a negative size or a rating above 255.
	ErrInvalidArgument = errors.New("mp3tag: invalid argument")

	// ErrNoExtendedHeader is returned by extended header setters when
	// the extended header flag is not set.
	ErrNoExtendedHeader = errors.New("mp3tag: tag has no extended header")

	// ErrReadOnly is returned by every mutating operation on a file
	// that was loaded from a URL.
	ErrReadOnly = errors.New("mp3tag: file is read only")

	// ErrAudioSizeMismatch is wrapped in an *IOError when the number of
	// audio bytes copied during a rewrite differs from the expected
	// audio size.
	ErrAudioSizeMismatch = errors.New("mp3tag: audio size mismatch")
)

// MalformedFrameError describes why a frame was quarantined. It is
// stored on the invalid frame and never returned from Parse.
type MalformedFrameError struct {
	Type   FrameType
	Reason string
}

func (err *MalformedFrameError) Error() string {
	return fmt.Sprintf("mp3tag: malformed %s frame: %s", string(err.Type), err.Reason)
}

func malformed(typ FrameType, format string, args ...interface{}) *MalformedFrameError {
	return &MalformedFrameError{Type: typ, Reason: fmt.Sprintf(format, args...)}
}

// IOError is a fatal failure while reading or writing a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (err *IOError) Error() string {
	if err.Path == "" {
		return fmt.Sprintf("mp3tag: %s: %v", err.Op, err.Err)
	}
	return fmt.Sprintf("mp3tag: %s %s: %v", err.Op, err.Path, err.Err)
}

func (err *IOError) Unwrap() error { return err.Err }

func invalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
