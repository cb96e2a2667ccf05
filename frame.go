package mp3tag

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

const frameHeaderSize = 10

// Frame is a single ID3v2.3 frame.
//
// Frames that could not be decoded are kept as invalid frames. They
// carry the raw data as a *RawBody and the reason in Err, keep their
// space in the tag accounting and are never written back.
type Frame struct {
	Type  FrameType
	Flags FrameFlags
	// GroupID identifies the group of a frame with the grouping flag.
	GroupID byte
	// EncryptionMethod is the method byte of an encrypted frame. The
	// body of an encrypted frame is opaque and stored as a *RawBody.
	EncryptionMethod byte
	Body             Body

	// decompressed size of an encrypted and compressed frame, which we
	// cannot recompute
	sealedSize uint32

	// bytes occupied on disk at parse time, including the header
	size  int
	clean []byte
	err   *MalformedFrameError
}

// NewFrame returns a frame of the given type with an empty body of the
// matching kind.
func NewFrame(typ FrameType) *Frame {
	return &Frame{Type: typ, Body: kindOf(typ).empty()}
}

// Valid reports whether the frame was decoded successfully.
func (f *Frame) Valid() bool { return f.err == nil }

// Err returns the reason an invalid frame was quarantined.
func (f *Frame) Err() error {
	if f.err == nil {
		return nil
	}
	return f.err
}

// Diagnostic is Err as a string, or "" for valid frames.
func (f *Frame) Diagnostic() string {
	if f.err == nil {
		return ""
	}
	return f.err.Error()
}

// Size returns the number of bytes the frame occupied in the tag it
// was read from, or after the last flush. It is 0 for frames that
// were never parsed or flushed.
func (f *Frame) Size() int { return f.size }

// snapshot captures everything Encode depends on, without compressing.
func (f *Frame) snapshot() ([]byte, error) {
	if f.Body == nil {
		return nil, errors.Errorf("%s frame has no body", string(f.Type))
	}
	body, err := f.Body.encode()
	if err != nil {
		return nil, err
	}
	var hdr [12]byte
	copy(hdr[:4], string(f.Type))
	binary.BigEndian.PutUint16(hdr[4:], uint16(f.Flags))
	hdr[6] = f.GroupID
	hdr[7] = f.EncryptionMethod
	binary.BigEndian.PutUint32(hdr[8:], f.sealedSize)
	return concat(hdr[:], body), nil
}

// Dirty reports whether the frame changed since it was parsed or last
// flushed.
func (f *Frame) Dirty() bool {
	if f.clean == nil {
		return true
	}
	s, err := f.snapshot()
	return err != nil || !bytes.Equal(s, f.clean)
}

// Encode returns the on-disk form of the frame, header included.
func (f *Frame) Encode() ([]byte, error) {
	if !f.Valid() {
		return nil, errors.Errorf("cannot encode invalid frame: %s", f.err.Reason)
	}
	if !f.Type.valid() {
		return nil, invalidArgument("frame identifier %q", string(f.Type))
	}
	if f.Body == nil {
		return nil, errors.Errorf("%s frame has no body", string(f.Type))
	}
	data, err := f.Body.encode()
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s frame", string(f.Type))
	}

	var extra []byte
	switch {
	case f.Flags.Encrypted():
		if f.Flags.Compressed() {
			extra = binary.BigEndian.AppendUint32(extra, f.sealedSize)
		}
		extra = append(extra, f.EncryptionMethod)
	case f.Flags.Compressed():
		extra = binary.BigEndian.AppendUint32(extra, uint32(len(data)))
		if data, err = deflate(data); err != nil {
			return nil, errors.Wrapf(err, "compressing %s frame", string(f.Type))
		}
	}
	if f.Flags.Grouped() {
		extra = append(extra, f.GroupID)
	}

	size := len(extra) + len(data)
	if int64(size) > 0xFFFFFFFF {
		return nil, invalidArgument("%s frame of %d bytes is too large", string(f.Type), size)
	}
	out := make([]byte, frameHeaderSize, frameHeaderSize+size)
	copy(out, string(f.Type))
	binary.BigEndian.PutUint32(out[4:], uint32(size))
	binary.BigEndian.PutUint16(out[8:], uint16(f.Flags))
	out = append(out, extra...)
	out = append(out, data...)
	return out, nil
}

// flush encodes the frame and marks it clean.
func (f *Frame) flush() ([]byte, error) {
	b, err := f.Encode()
	if err != nil {
		return nil, err
	}
	f.size = len(b)
	f.clean, _ = f.snapshot()
	return b, nil
}

func (f *Frame) String() string {
	if !f.Valid() {
		return fmt.Sprintf("%s (invalid): %s", string(f.Type), f.err.Reason)
	}
	if f.Body == nil {
		return string(f.Type)
	}
	return fmt.Sprintf("%s: %s", string(f.Type), f.Body)
}

// decodeFrame builds a frame from its 10 byte header and the data the
// header's size field covers. It never fails: problems produce an
// invalid frame.
func decodeFrame(hdr, data []byte) *Frame {
	f := &Frame{
		Type:  FrameType(hdr[:4]),
		Flags: FrameFlags(binary.BigEndian.Uint16(hdr[8:])),
		Body:  &RawBody{Data: data},
		size:  frameHeaderSize + len(data),
	}
	if !f.Type.valid() {
		f.err = malformed(f.Type, "invalid frame identifier %q", string(hdr[:4]))
		return f
	}

	p := data
	var rawSize uint32
	if f.Flags.Compressed() {
		if len(p) < 4 {
			f.err = malformed(f.Type, "missing decompressed size")
			return f
		}
		rawSize = binary.BigEndian.Uint32(p)
		p = p[4:]
	}
	if f.Flags.Encrypted() {
		if len(p) < 1 {
			f.err = malformed(f.Type, "missing encryption method")
			return f
		}
		f.EncryptionMethod = p[0]
		p = p[1:]
	}
	if f.Flags.Grouped() {
		if len(p) < 1 {
			f.err = malformed(f.Type, "missing group identifier")
			return f
		}
		f.GroupID = p[0]
		p = p[1:]
	}

	if f.Flags.Encrypted() {
		f.sealedSize = rawSize
		f.Body = &RawBody{Data: p}
		f.clean, _ = f.snapshot()
		return f
	}
	if f.Flags.Compressed() {
		out, err := inflate(p, rawSize)
		if err != nil {
			f.err = malformed(f.Type, "decompressing: %v", err)
			return f
		}
		p = out
	}

	body, err := kindOf(f.Type).parse(f.Type, p)
	if err != nil {
		f.err = malformed(f.Type, "%v", err)
		return f
	}
	f.Body = body
	// A body that does not re-encode cleanly still parsed fine; it is
	// simply dirty from the start.
	f.clean, _ = f.snapshot()
	return f
}

func deflate(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(b); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(b []byte, size uint32) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var buf bytes.Buffer
	// Read one byte past the declared size to detect overruns.
	n, err := io.Copy(&buf, io.LimitReader(r, int64(size)+1))
	if err != nil {
		return nil, err
	}
	if n != int64(size) {
		return nil, errors.Errorf("decompressed to %d bytes, header says %d", n, size)
	}
	return buf.Bytes(), nil
}
