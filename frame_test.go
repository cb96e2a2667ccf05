package mp3tag

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressedFrame(t *testing.T) {
	text := strings.Repeat("compress me ", 100)
	f := &Frame{Type: FrameTitle, Flags: frameFlagCompressed, Body: &TextBody{Encoding: ISO88591, Text: text}}
	b, err := f.Encode()
	require.NoError(t, err)
	assert.Less(t, len(b), len(text))
	assert.Equal(t, uint32(len(text)+1), binary.BigEndian.Uint32(b[frameHeaderSize:]))

	got := roundTrip(t, f)
	assert.True(t, got.Flags.Compressed())
	assert.Equal(t, text, got.Body.(*TextBody).Text)
}

func TestCompressedFrameSizeMismatch(t *testing.T) {
	data, err := deflate(latin1Text("abc"))
	require.NoError(t, err)
	body := append([]byte{0, 0, 0, 9}, data...)
	f := decodeFrame(rawFrame("TIT2", uint16(frameFlagCompressed), nil)[:frameHeaderSize], body)
	assert.False(t, f.Valid())
	assert.Contains(t, f.Diagnostic(), "decompress")
}

func TestGroupedFrame(t *testing.T) {
	f := &Frame{Type: FrameAlbum, Flags: frameFlagGrouped, GroupID: 0x42, Body: &TextBody{Text: "x"}}
	got := roundTrip(t, f)
	assert.Equal(t, byte(0x42), got.GroupID)
	assert.Equal(t, "x", got.Body.(*TextBody).Text)
}

func TestEncryptedFrameIsOpaque(t *testing.T) {
	sealed := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	raw := rawFrame("TIT2", uint16(frameFlagEncrypted|frameFlagCompressed|frameFlagGrouped),
		append([]byte{0, 0, 1, 0, 0x80, 0x07}, sealed...))

	f := decodeFrame(raw[:frameHeaderSize], raw[frameHeaderSize:])
	require.True(t, f.Valid(), f.Diagnostic())
	assert.Equal(t, byte(0x80), f.EncryptionMethod)
	assert.Equal(t, byte(0x07), f.GroupID)
	assert.Equal(t, &RawBody{Data: sealed}, f.Body)

	b, err := f.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, b)
}

func TestFrameDirty(t *testing.T) {
	raw := rawFrame("TIT2", 0, latin1Text("Hells Bells"))
	f := decodeFrame(raw[:frameHeaderSize], raw[frameHeaderSize:])
	require.True(t, f.Valid())
	assert.False(t, f.Dirty())

	f.Body.(*TextBody).Text = "Back in Black"
	assert.True(t, f.Dirty())
	f.Body.(*TextBody).Text = "Hells Bells"
	assert.False(t, f.Dirty())

	f.Flags = frameFlagReadOnly
	assert.True(t, f.Dirty())
	_, err := f.flush()
	require.NoError(t, err)
	assert.False(t, f.Dirty())

	assert.True(t, NewFrame(FrameTitle).Dirty())
}

func TestFrameStatusFlagsPreserved(t *testing.T) {
	raw := rawFrame("TALB", uint16(frameFlagTagAlter|frameFlagReadOnly), latin1Text("x"))
	f := decodeFrame(raw[:frameHeaderSize], raw[frameHeaderSize:])
	assert.False(t, f.Flags.PreserveTagAlteration())
	assert.True(t, f.Flags.PreserveFileAlteration())
	assert.True(t, f.Flags.ReadOnly())

	b, err := f.Encode()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(raw, b))
}

func TestInvalidFrameIdentifier(t *testing.T) {
	raw := rawFrame("ab!?", 0, []byte{1, 2, 3})
	f := decodeFrame(raw[:frameHeaderSize], raw[frameHeaderSize:])
	assert.False(t, f.Valid())
	assert.Equal(t, 13, f.Size())

	_, err := f.Encode()
	assert.Error(t, err)
	_, err = (&Frame{Type: "tit2", Body: &TextBody{}}).Encode()
	assert.Error(t, err)
}
