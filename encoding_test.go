package mp3tag

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	UTF8TestString = "Ein etwas kürzerer Text mit wenigen Umlauten: äöüß äöüß"
	ISOTestString  = []byte("Ein etwas k\xFCrzerer Text mit wenigen Umlauten: \xE4\xF6\xFC\xDF \xE4\xF6\xFC\xDF")
)

func TestISO88591(t *testing.T) {
	s, err := ISO88591.decode(ISOTestString)
	require.NoError(t, err)
	assert.Equal(t, UTF8TestString, s)

	b, err := ISO88591.encode(UTF8TestString)
	require.NoError(t, err)
	assert.Equal(t, ISOTestString, b)
}

func TestISO88591Unsupported(t *testing.T) {
	b, err := ISO88591.encode("a日b")
	require.NoError(t, err)
	assert.Len(t, b, 3)
	assert.Equal(t, byte('a'), b[0])
	assert.Equal(t, byte('b'), b[2])
}

func TestUTF16(t *testing.T) {
	out := "Just a test: äüö 日本語"
	tests := []struct {
		name string
		in   []byte
	}{
		{"big endian BOM", []byte{254, 255, 0, 74, 0,
			117, 0, 115, 0, 116, 0, 32, 0, 97, 0, 32, 0, 116, 0, 101, 0, 115,
			0, 116, 0, 58, 0, 32, 0, 228, 0, 252, 0, 246, 0, 32, 101, 229,
			103, 44, 138, 158}},
		{"little endian BOM", []byte{255, 254, 74, 0, 117, 0, 115, 0, 116, 0, 32, 0, 97,
			0, 32, 0, 116, 0, 101, 0, 115, 0, 116, 0, 58, 0, 32, 0, 228, 0,
			252, 0, 246, 0, 32, 0, 229, 101, 44, 103, 158, 138}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := UTF16.decode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, out, s)
		})
	}

	b, err := UTF16.encode(out)
	require.NoError(t, err)
	assert.Equal(t, tests[0].in, b)
}

func TestEncodingRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{ISO88591, UTF16} {
		for _, s := range []string{"", "a", "Hells Bells", UTF8TestString} {
			b, err := enc.encodeTerminated(s)
			require.NoError(t, err)
			got, rest, err := enc.decodeTerminated(append(b, 'x'))
			require.NoError(t, err)
			assert.Equal(t, s, got, "%s %q", enc, s)
			assert.Equal(t, []byte{'x'}, rest)
		}
	}
}

func TestUTF16TerminatorAlignment(t *testing.T) {
	// U+0100 is 01 00 in big endian. Its zero byte together with the
	// next unit's leading zero must not end the string.
	b := []byte{0xFE, 0xFF, 0x01, 0x00, 0x00, 0x41, 0x00, 0x00, 0x00, 0x42}
	assert.Equal(t, 6, UTF16.terminatorIndex(b))

	s, rest, err := UTF16.decodeTerminated(b)
	require.NoError(t, err)
	assert.Equal(t, "ĀA", s)
	assert.Equal(t, []byte{0x00, 0x42}, rest)
}

func TestDecodeEncoding(t *testing.T) {
	e, err := DecodeEncoding(1)
	require.NoError(t, err)
	assert.Equal(t, UTF16, e)
	assert.Equal(t, 2, e.TerminatorSize())

	_, err = DecodeEncoding(3)
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
}

func TestMissingTerminator(t *testing.T) {
	_, _, err := ISO88591.decodeTerminated([]byte("abc"))
	assert.Error(t, err)

	s, err := ISO88591.decodeRest([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", s)
}
