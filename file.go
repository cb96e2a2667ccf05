package mp3tag

import (
	"bufio"
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// File is an MP3 file and its ID3v2.3 tag. Changes are made to the
// tag in memory and written with Save.
//
// A File loaded with OpenURL is read only: all mutating methods
// return ErrReadOnly.
type File struct {
	path string
	url  string
	opts options

	tag    *Tag
	hasTag bool
	// on-disk size of the tag, 0 if the file had none
	tagSize  int64
	fileSize int64
}

// Open opens the file at path and parses its tag.
//
// If the file has no ID3v2 tag, a new one is created. If the file
// does have an ID3v1 tag, its fields are copied into the new tag
// and the file is saved right away; see V1Tag.Seed. A file that
// cannot be written is still opened, with the seeded tag unsaved.
func Open(path string, opts ...Option) (*File, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	f := &File{path: path, opts: o}

	v1, err := f.load()
	if err != nil {
		return nil, err
	}
	if v1 != nil {
		f.seed(v1)
	}
	return f, nil
}

// seed copies v1 into the new tag and saves it. Failures are logged
// only; the file stays open with the seeded tag in memory and HasTag
// reporting false.
func (f *File) seed(v1 *V1Tag) {
	Logging.Printf("%s: no ID3v2 tag, seeding from %s", f.path, v1)
	if err := v1.Seed(f.tag); err != nil {
		Logging.Printf("%s: seeding from ID3v1: %v", f.path, err)
		return
	}
	if err := f.Save(); err != nil {
		Logging.Printf("%s: saving seeded tag: %v", f.path, err)
	}
}

// load parses the tag and, if there is none and the fallback is
// enabled, returns the file's ID3v1 tag.
func (f *File) load() (v1 *V1Tag, err error) {
	fh, err := f.opts.fs.Open(f.path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: f.path, Err: err}
	}
	defer closeQuietly(fh, f.path)

	fi, err := fh.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: f.path, Err: err}
	}
	f.fileSize = fi.Size()

	tag, err := NewDecoder(bufio.NewReader(fh)).Parse()
	switch {
	case err == nil:
		f.tag = tag
		f.hasTag = true
		f.tagSize = int64(tag.Size())
		if f.tagSize > f.fileSize {
			return nil, &IOError{Op: "read tag", Path: f.path, Err: errors.Errorf("tag size %d exceeds file size %d", f.tagSize, f.fileSize)}
		}
		return nil, nil
	case errors.Is(err, ErrTagNotFound):
		f.tag = NewTag()
	default:
		if ioErr, ok := err.(*IOError); ok && ioErr.Path == "" {
			ioErr.Path = f.path
		}
		return nil, err
	}

	if !f.opts.v1Fallback {
		return nil, nil
	}
	v1, err = ReadV1(fh)
	if errors.Is(err, ErrV1NotFound) {
		return nil, nil
	}
	if ioErr, ok := err.(*IOError); ok {
		ioErr.Path = f.path
	}
	return v1, err
}

// OpenURL fetches rawURL and parses the tag at the start of the
// response body. Only the tag is read. The returned File is read
// only.
func OpenURL(ctx context.Context, rawURL string, opts ...Option) (*File, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &IOError{Op: "fetch", Path: rawURL, Err: err}
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, &IOError{Op: "fetch", Path: rawURL, Err: err}
	}
	defer closeQuietly(resp.Body, rawURL)
	if resp.StatusCode != http.StatusOK {
		return nil, &IOError{Op: "fetch", Path: rawURL, Err: errors.Errorf("unexpected status %s", resp.Status)}
	}

	f := &File{url: rawURL, opts: o, fileSize: resp.ContentLength}
	tag, err := NewDecoder(bufio.NewReader(resp.Body)).Parse()
	switch {
	case err == nil:
		f.tag = tag
		f.hasTag = true
		f.tagSize = int64(tag.Size())
	case errors.Is(err, ErrTagNotFound):
		f.tag = NewTag()
	default:
		if ioErr, ok := err.(*IOError); ok {
			ioErr.Path = rawURL
		}
		return nil, err
	}
	return f, nil
}

func closeQuietly(c io.Closer, name string) {
	if err := c.Close(); err != nil {
		Logging.Printf("%s: close: %v", name, err)
	}
}

// Tag returns the file's tag. Modifying the tag of a read only file
// directly is possible but cannot be saved.
func (f *File) Tag() *Tag { return f.tag }

// Path returns the path or URL the file was opened from.
func (f *File) Path() string {
	if f.url != "" {
		return f.url
	}
	return f.path
}

// ReadOnly reports whether the file was loaded from a URL.
func (f *File) ReadOnly() bool { return f.url != "" }

// HasTag reports whether the file had an ID3v2 tag when it was
// opened, or has one since the last Save.
func (f *File) HasTag() bool { return f.hasTag }

// TagSize returns the number of bytes the tag occupies on disk.
func (f *File) TagSize() int64 { return f.tagSize }

// FileSize returns the size of the file. It is -1 for URLs whose size
// the server did not report.
func (f *File) FileSize() int64 { return f.fileSize }

// AudioSize returns the number of bytes following the tag.
func (f *File) AudioSize() int64 {
	if f.fileSize < 0 {
		return -1
	}
	return f.fileSize - f.tagSize
}

// Errors returns a description of every frame that could not be
// decoded.
func (f *File) Errors() []string {
	var out []string
	for _, fr := range f.tag.invalid {
		out = append(out, fr.Diagnostic())
	}
	return out
}

func (f *File) writable() error {
	if f.ReadOnly() {
		return errors.Wrap(ErrReadOnly, f.url)
	}
	return nil
}

// AddFrame adds a new frame of the given type, see Tag.AddFrame.
func (f *File) AddFrame(typ FrameType) (*Frame, error) {
	if err := f.writable(); err != nil {
		return nil, err
	}
	return f.tag.AddFrame(typ), nil
}

// RemoveFrame removes the first frame of the given type, see
// Tag.RemoveFrame.
func (f *File) RemoveFrame(typ FrameType) (*Frame, error) {
	if err := f.writable(); err != nil {
		return nil, err
	}
	return f.tag.RemoveFrame(typ), nil
}

// RemoveFrames removes all frames of the given type.
func (f *File) RemoveFrames(typ FrameType) ([]*Frame, error) {
	if err := f.writable(); err != nil {
		return nil, err
	}
	return f.tag.RemoveFrames(typ), nil
}

func (f *File) SetText(typ FrameType, text string) error {
	if err := f.writable(); err != nil {
		return err
	}
	return f.tag.SetText(typ, text)
}

func (f *File) SetTextInt(typ FrameType, n int) error {
	if err := f.writable(); err != nil {
		return err
	}
	return f.tag.SetTextInt(typ, n)
}

func (f *File) SetPadding(n int) error {
	if err := f.writable(); err != nil {
		return err
	}
	return f.tag.SetPadding(n)
}

// DiscardInvalidFrames drops the invalid frames, see
// Tag.DiscardInvalidFrames.
func (f *File) DiscardInvalidFrames() ([]*Frame, error) {
	if err := f.writable(); err != nil {
		return nil, err
	}
	return f.tag.DiscardInvalidFrames(), nil
}
