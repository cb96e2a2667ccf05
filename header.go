package mp3tag

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	tagHeaderSize      = 10
	extHeaderSize      = 10 // size field, flags and padding size
	extHeaderCRCSize   = 4
	maxSynchsafe       = 1<<28 - 1
	extHeaderSizeNoCRC = 6
	extHeaderSizeCRC   = 10
)

var (
	Magic   = [3]byte{'I', 'D', '3'}
	Version = [2]byte{3, 0}
)

type HeaderFlags byte

const (
	flagUnsynchronisation HeaderFlags = 1 << (7 - iota)
	flagExtendedHeader
	flagExperimental
)

const extFlagCRC = 0x80

func (f HeaderFlags) Unsynchronisation() bool {
	return f&flagUnsynchronisation > 0
}

func (f HeaderFlags) ExtendedHeader() bool {
	return f&flagExtendedHeader > 0
}

func (f HeaderFlags) Experimental() bool {
	return f&flagExperimental > 0
}

func (f HeaderFlags) UndefinedSet() bool {
	return f&31 > 0
}

func (f *HeaderFlags) set(flag HeaderFlags, on bool) {
	if on {
		*f |= flag
	} else {
		*f &^= flag
	}
}

// TagHeader is the 10 byte ID3v2.3 header and the optional extended
// header that follows it.
type TagHeader struct {
	Flags HeaderFlags

	// size of the tag excluding the 10 byte header
	size int

	paddingSize uint32
	crc         []byte

	// serialized form at the last parse or flush
	clean []byte
}

// NewTagHeader returns a header for an empty tag.
func NewTagHeader() *TagHeader {
	return &TagHeader{}
}

// ParseHeader reads a tag header and, if flagged, the extended header.
// A stream that does not start with an ID3v2.3 header yields
// ErrTagNotFound.
func ParseHeader(r io.Reader) (*TagHeader, error) {
	var raw struct {
		Magic   [3]byte
		Version [2]byte
		Flags   byte
		Size    [4]byte
	}
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTagNotFound
		}
		return nil, &IOError{Op: "read tag header", Err: err}
	}
	if raw.Magic != Magic || raw.Version != Version {
		return nil, ErrTagNotFound
	}

	h := &TagHeader{
		Flags: HeaderFlags(raw.Flags),
		size:  desynchsafe(raw.Size),
	}

	if h.Flags.ExtendedHeader() {
		var ext struct {
			Size        uint32
			Flags       [2]byte
			PaddingSize uint32
		}
		if err := binary.Read(r, binary.BigEndian, &ext); err != nil {
			return nil, &IOError{Op: "read extended header", Err: err}
		}
		h.paddingSize = ext.PaddingSize
		if ext.Flags[0]&extFlagCRC != 0 {
			h.crc = make([]byte, extHeaderCRCSize)
			if _, err := io.ReadFull(r, h.crc); err != nil {
				return nil, &IOError{Op: "read extended header CRC", Err: err}
			}
		}
	}

	h.clean = h.Serialize()
	return h, nil
}

// Serialize returns the on-disk form of the header. The magic and
// version are always regenerated and the extended header length is
// derived from whether CRC data is present.
func (h *TagHeader) Serialize() []byte {
	out := make([]byte, tagHeaderSize, h.Len())
	copy(out, Magic[:])
	copy(out[3:], Version[:])
	out[5] = byte(h.Flags)
	copy(out[6:], synchsafe(h.size))

	if h.Flags.ExtendedHeader() {
		var ext [extHeaderSize]byte
		var flags byte
		size := uint32(extHeaderSizeNoCRC)
		if len(h.crc) > 0 {
			flags = extFlagCRC
			size = extHeaderSizeCRC
		}
		binary.BigEndian.PutUint32(ext[0:], size)
		ext[4] = flags
		binary.BigEndian.PutUint32(ext[6:], h.paddingSize)
		out = append(out, ext[:]...)
		out = append(out, h.crc...)
	}
	return out
}

// flush serializes the header and marks it clean.
func (h *TagHeader) flush() []byte {
	h.clean = h.Serialize()
	return h.clean
}

// Dirty reports whether the header changed since it was parsed or last
// flushed.
func (h *TagHeader) Dirty() bool {
	return h.clean == nil || !bytes.Equal(h.clean, h.Serialize())
}

// Len returns the number of bytes of the serialized header, including
// the extended header.
func (h *TagHeader) Len() int {
	n := tagHeaderSize
	if h.Flags.ExtendedHeader() {
		n += extHeaderSize + len(h.crc)
	}
	return n
}

// extLen returns the number of bytes the extended header adds.
func (h *TagHeader) extLen() int {
	return h.Len() - tagHeaderSize
}

// TagSize returns the size of the tag excluding the 10 byte header.
func (h *TagHeader) TagSize() int {
	return h.size
}

func (h *TagHeader) SetTagSize(n int) error {
	if n < 0 || n > maxSynchsafe {
		return invalidArgument("tag size %d out of range [0, %d]", n, maxSynchsafe)
	}
	h.size = n
	return nil
}

func (h *TagHeader) SetUnsynchronisation(on bool) {
	h.Flags.set(flagUnsynchronisation, on)
}

func (h *TagHeader) SetExperimental(on bool) {
	h.Flags.set(flagExperimental, on)
}

// SetExtendedHeader toggles the extended header. Turning it off
// discards the padding size and CRC.
func (h *TagHeader) SetExtendedHeader(on bool) {
	h.Flags.set(flagExtendedHeader, on)
	if !on {
		h.paddingSize = 0
		h.crc = nil
	}
}

func (h *TagHeader) PaddingSize() (int, error) {
	if !h.Flags.ExtendedHeader() {
		return 0, ErrNoExtendedHeader
	}
	return int(h.paddingSize), nil
}

func (h *TagHeader) SetPaddingSize(n int) error {
	if !h.Flags.ExtendedHeader() {
		return ErrNoExtendedHeader
	}
	if n < 0 || int64(n) > 0xFFFFFFFF {
		return invalidArgument("padding size %d", n)
	}
	h.paddingSize = uint32(n)
	return nil
}

// CRC returns the 4 byte CRC of the extended header, or nil.
func (h *TagHeader) CRC() ([]byte, error) {
	if !h.Flags.ExtendedHeader() {
		return nil, ErrNoExtendedHeader
	}
	return h.crc, nil
}

// SetCRC sets the CRC data. An empty slice removes it; otherwise it
// must be exactly 4 bytes. Flush recomputes the value from the frame
// data whenever CRC data is present.
func (h *TagHeader) SetCRC(crc []byte) error {
	if !h.Flags.ExtendedHeader() {
		return ErrNoExtendedHeader
	}
	switch len(crc) {
	case 0:
		h.crc = nil
	case extHeaderCRCSize:
		h.crc = append([]byte(nil), crc...)
	default:
		return invalidArgument("CRC data must be %d bytes, got %d", extHeaderCRCSize, len(crc))
	}
	return nil
}

func (h *TagHeader) String() string {
	return fmt.Sprintf("ID3v2.3.0 tag header: %d bytes, tag size %d, flags %08b", h.Len(), h.size, byte(h.Flags))
}

func desynchsafe(b [4]byte) int {
	return int(b[0]&0x7f)<<21 | int(b[1]&0x7f)<<14 | int(b[2]&0x7f)<<7 | int(b[3]&0x7f)
}

func synchsafe(n int) []byte {
	return []byte{
		byte(n>>21&0x7f),
		byte(n>>14&0x7f),
		byte(n>>7&0x7f),
		byte(n & 0x7f),
	}
}
