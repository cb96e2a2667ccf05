package mp3tag

import (
	"io"
)

type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteFrame writes a single frame, header included. Tags with the
// unsynchronisation flag have to be written with Tag.Encode.
func (e *Encoder) WriteFrame(f *Frame) error {
	b, err := f.flush()
	if err != nil {
		return err
	}
	_, err = e.w.Write(b)
	return err
}

// Encode flushes the tag and writes it, header, frames and padding,
// to w.
func (t *Tag) Encode(w io.Writer) error {
	b, err := t.Bytes()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
