package mp3tag

import (
	"encoding/binary"
)

// rawFrame builds a v2.3 frame by hand.
func rawFrame(id string, flags uint16, body []byte) []byte {
	b := make([]byte, frameHeaderSize, frameHeaderSize+len(body))
	copy(b, id)
	binary.BigEndian.PutUint32(b[4:], uint32(len(body)))
	binary.BigEndian.PutUint16(b[8:], flags)
	return append(b, body...)
}

// rawTag builds a tag without extended header from frames followed by
// padding zero bytes.
func rawTag(flags byte, padding int, frames ...[]byte) []byte {
	var body []byte
	for _, f := range frames {
		body = append(body, f...)
	}
	body = append(body, make([]byte, padding)...)
	b := []byte{'I', 'D', '3', 3, 0, flags}
	b = append(b, synchsafe(len(body))...)
	return append(b, body...)
}

func latin1Text(s string) []byte {
	return append([]byte{byte(ISO88591)}, s...)
}

// audio returns n bytes of recognizable fake audio data.
func audio(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 1)
	}
	return b
}
