package mp3tag

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

type Decoder struct {
	r io.Reader
	h *TagHeader

	// tag data following the header and extended header,
	// resynchronised if needed
	buf []byte
	pos int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ParseHeader parses the tag header and reads the rest of the tag into
// memory. It consumes exactly the bytes of the tag, so that afterwards
// the reader is positioned at the start of the audio.
func (d *Decoder) ParseHeader() (*TagHeader, error) {
	h, err := ParseHeader(d.r)
	if err != nil {
		return nil, err
	}
	n := h.TagSize() - h.extLen()
	if n < 0 {
		return nil, &IOError{Op: "read tag", Err: errors.Errorf("extended header of %d bytes exceeds tag size %d", h.extLen(), h.TagSize())}
	}
	// The declared size is not trusted until the bytes have been read.
	var b bytes.Buffer
	if _, err := io.CopyN(&b, d.r, int64(n)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &IOError{Op: "read tag", Err: errors.Wrapf(err, "reading %d bytes of frames", n)}
	}
	buf := b.Bytes()
	if h.Flags.Unsynchronisation() {
		buf = resynchronise(buf)
	}
	d.h = h
	d.buf = buf
	d.pos = 0
	return h, nil
}

// Parse parses a tag.
//
// Parse will always return a valid tag. In the case of an error, the
// tag will be empty. Frames that cannot be decoded do not cause an
// error; they end up in the tag's InvalidFrames.
func (d *Decoder) Parse() (*Tag, error) {
	tag := NewTag()
	header, err := d.ParseHeader()
	if err != nil {
		return tag, err
	}
	tag.Header = header

	for {
		frame, err := d.ParseFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return NewTag(), err
		}
		if frame.Valid() {
			tag.frames = append(tag.frames, frame)
		} else {
			Logging.Printf("quarantined %s", frame.Diagnostic())
			tag.invalid = append(tag.invalid, frame)
		}
	}

	tag.padding = len(d.buf) - d.pos
	tag.rev, tag.flushed = 0, 0
	return tag, nil
}

// ParseFrame returns the next frame of the tag. When it reaches
// padding or the end of the tag, it returns io.EOF.
//
// Problems with a single frame do not produce an error. Instead the
// returned frame is invalid and explains the problem. A frame whose
// declared size exceeds the rest of the tag consumes the rest of the
// tag.
func (d *Decoder) ParseFrame() (*Frame, error) {
	if d.h == nil {
		return nil, errors.New("mp3tag: ParseFrame called before ParseHeader")
	}
	rest := d.buf[d.pos:]
	if len(rest) == 0 || rest[0] == 0 {
		return nil, io.EOF
	}

	if len(rest) < frameHeaderSize {
		d.pos = len(d.buf)
		return &Frame{
			Type: FrameType(rest),
			Body: &RawBody{Data: rest},
			size: len(rest),
			err:  malformed(FrameType(rest), "truncated frame header (%d bytes)", len(rest)),
		}, nil
	}

	hdr, rest := rest[:frameHeaderSize], rest[frameHeaderSize:]
	size := binary.BigEndian.Uint32(hdr[4:])
	if uint64(size) > uint64(len(rest)) {
		d.pos = len(d.buf)
		f := decodeFrame(hdr, rest)
		f.Body = &RawBody{Data: rest}
		f.clean = nil
		f.err = malformed(f.Type, "frame size %d exceeds the %d bytes left in the tag", size, len(rest))
		return f, nil
	}

	d.pos += frameHeaderSize + int(size)
	return decodeFrame(hdr, rest[:size]), nil
}
