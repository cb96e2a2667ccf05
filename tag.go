package mp3tag

import (
	"encoding/binary"
	"hash/crc32"
)

// DefaultPadding is the padding given to new tags and to tags that
// outgrow the space they occupied on disk.
const DefaultPadding = 2048

// Tag is an ID3v2.3 tag: a header, an ordered list of frames and
// trailing padding.
//
// Frames that failed to decode are kept apart, see InvalidFrames.
type Tag struct {
	Header *TagHeader

	frames  []*Frame
	invalid []*Frame
	padding int

	// serialized frames, padding included, at the last flush
	body []byte

	// rev counts structural changes (frames added or removed, padding
	// changed); flushed is the value of rev at the last flush
	rev, flushed int
}

// NewTag returns an empty tag with DefaultPadding bytes of padding.
func NewTag() *Tag {
	return &Tag{
		Header:  NewTagHeader(),
		padding: DefaultPadding,
		rev:     1,
	}
}

func (t *Tag) touch() { t.rev++ }

// AddFrame appends a new, empty frame of the given type and returns
// it.
func (t *Tag) AddFrame(typ FrameType) *Frame {
	f := NewFrame(typ)
	t.Add(f)
	return f
}

// Add appends f to the tag. Invalid frames are rejected silently
// since they can never be written.
func (t *Tag) Add(f *Frame) {
	if f == nil || !f.Valid() {
		return
	}
	t.frames = append(t.frames, f)
	t.touch()
}

// Frame returns the first frame of the given type, or nil.
func (t *Tag) Frame(typ FrameType) *Frame {
	for _, f := range t.frames {
		if f.Type == typ {
			return f
		}
	}
	return nil
}

// Frames returns all frames of the given type, in tag order.
func (t *Tag) Frames(typ FrameType) []*Frame {
	var out []*Frame
	for _, f := range t.frames {
		if f.Type == typ {
			out = append(out, f)
		}
	}
	return out
}

// AllFrames returns all valid frames in tag order.
func (t *Tag) AllFrames() []*Frame {
	return append([]*Frame(nil), t.frames...)
}

// InvalidFrames returns the frames that failed to decode.
func (t *Tag) InvalidFrames() []*Frame {
	return append([]*Frame(nil), t.invalid...)
}

// RemoveFrame removes and returns the first frame of the given type.
// It returns nil if there is none.
func (t *Tag) RemoveFrame(typ FrameType) *Frame {
	for i, f := range t.frames {
		if f.Type == typ {
			t.frames = append(t.frames[:i], t.frames[i+1:]...)
			t.touch()
			return f
		}
	}
	return nil
}

// RemoveFrames removes and returns all frames of the given type.
func (t *Tag) RemoveFrames(typ FrameType) []*Frame {
	var removed []*Frame
	kept := t.frames[:0]
	for _, f := range t.frames {
		if f.Type == typ {
			removed = append(removed, f)
		} else {
			kept = append(kept, f)
		}
	}
	t.frames = kept
	if len(removed) > 0 {
		t.touch()
	}
	return removed
}

// Remove removes the frame f. It reports whether f was part of the
// tag.
func (t *Tag) Remove(f *Frame) bool {
	for i, g := range t.frames {
		if g == f {
			t.frames = append(t.frames[:i], t.frames[i+1:]...)
			t.touch()
			return true
		}
	}
	return false
}

// DiscardInvalidFrames forgets all invalid frames and returns them.
// Their space becomes padding on the next save.
func (t *Tag) DiscardInvalidFrames() []*Frame {
	out := t.invalid
	t.invalid = nil
	if len(out) > 0 {
		t.touch()
	}
	return out
}

// Padding returns the number of padding bytes after the frames.
func (t *Tag) Padding() int { return t.padding }

// SetPadding sets the number of padding bytes.
func (t *Tag) SetPadding(n int) error {
	if n < 0 || n > maxSynchsafe {
		return invalidArgument("padding %d out of range [0, %d]", n, maxSynchsafe)
	}
	if n != t.padding {
		t.padding = n
		t.touch()
	}
	return nil
}

// Dirty reports whether the tag, its header or any of its frames
// changed since the tag was parsed or last flushed.
func (t *Tag) Dirty() bool {
	if t.rev != t.flushed || t.Header.Dirty() {
		return true
	}
	for _, f := range t.frames {
		if f.Dirty() {
			return true
		}
	}
	return false
}

// Flush serializes all frames and brings the header in line with
// them: the CRC, if present, is recomputed over the frame data, the
// extended header's padding size is set and the tag size is updated.
func (t *Tag) Flush() error {
	var frames []byte
	for _, f := range t.frames {
		b, err := f.flush()
		if err != nil {
			return err
		}
		frames = append(frames, b...)
	}

	h := t.Header
	if h.Flags.ExtendedHeader() {
		if len(h.crc) > 0 {
			h.crc = binary.BigEndian.AppendUint32(nil, crc32.ChecksumIEEE(frames))
		}
		h.paddingSize = uint32(t.padding)
	}

	body := append(frames, make([]byte, t.padding)...)
	if h.Flags.Unsynchronisation() {
		body = unsynchronise(body)
	}
	if err := h.SetTagSize(h.extLen() + len(body)); err != nil {
		return err
	}
	h.flush()
	t.body = body
	t.flushed = t.rev
	return nil
}

// Size returns the total size of the tag in bytes, header included,
// as of the last parse or flush.
func (t *Tag) Size() int {
	return tagHeaderSize + t.Header.TagSize()
}

// Bytes flushes the tag and returns its on-disk form.
func (t *Tag) Bytes() ([]byte, error) {
	if err := t.Flush(); err != nil {
		return nil, err
	}
	return concat(t.Header.clean, t.body), nil
}

// Text returns the text of the first frame of the given text frame
// type, or "".
func (t *Tag) Text(typ FrameType) string {
	if f := t.Frame(typ); f != nil {
		if b, ok := f.Body.(*TextBody); ok {
			return b.Text
		}
	}
	return ""
}

// SetText sets the text of the first frame of the given type, adding
// the frame if necessary. An existing frame keeps its encoding unless
// the text does not fit ISO-8859-1.
func (t *Tag) SetText(typ FrameType, text string) error {
	b, err := t.textBody(typ)
	if err != nil {
		return err
	}
	if b.Encoding == ISO88591 && !latin1Safe(text) {
		b.Encoding = UTF16
	}
	b.Text = text
	return nil
}

// TextInt returns the numeric value of a text frame. Missing frames,
// non-numeric and negative text all yield 0.
func (t *Tag) TextInt(typ FrameType) int {
	if f := t.Frame(typ); f != nil {
		if b, ok := f.Body.(*TextBody); ok {
			return b.Int()
		}
	}
	return 0
}

// SetTextInt stores n as the text of a text frame. n must be
// positive.
func (t *Tag) SetTextInt(typ FrameType, n int) error {
	if n <= 0 {
		return invalidArgument("numeric text value %d is not positive", n)
	}
	b, err := t.textBody(typ)
	if err != nil {
		return err
	}
	return b.SetInt(n)
}

func (t *Tag) textBody(typ FrameType) (*TextBody, error) {
	if !typ.isText() {
		return nil, invalidArgument("%s is not a text frame", string(typ))
	}
	f := t.Frame(typ)
	if f == nil {
		f = t.AddFrame(typ)
	}
	b, ok := f.Body.(*TextBody)
	if !ok {
		return nil, invalidArgument("%s frame has a %T body", string(typ), f.Body)
	}
	return b, nil
}

// LanguageFrame returns the first COMM, USLT or SYLT frame of the
// given type whose language is lang, or nil.
func (t *Tag) LanguageFrame(typ FrameType, lang string) *Frame {
	for _, f := range t.frames {
		if f.Type != typ {
			continue
		}
		if b, ok := f.Body.(languageBody); ok && b.language() == lang {
			return f
		}
	}
	return nil
}

// unsynchronise inserts a zero byte after every 0xFF that is followed
// by a byte of the form 111xxxxx or by zero, and after a trailing 0xFF.
func unsynchronise(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i, c := range b {
		out = append(out, c)
		if c != 0xFF {
			continue
		}
		if i+1 == len(b) || b[i+1] == 0 || b[i+1]&0xE0 == 0xE0 {
			out = append(out, 0)
		}
	}
	return out
}

// resynchronise reverses unsynchronise: every 0xFF 0x00 becomes 0xFF.
func resynchronise(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0 {
			i++
		}
	}
	return out
}
