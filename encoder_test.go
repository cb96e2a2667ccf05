package mp3tag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	f := &Frame{Type: FrameTitle, Body: &TextBody{Text: "x"}}
	require.NoError(t, NewEncoder(&buf).WriteFrame(f))
	assert.Equal(t, rawFrame("TIT2", 0, latin1Text("x")), buf.Bytes())
	assert.Equal(t, buf.Len(), f.Size())
	assert.False(t, f.Dirty())

	assert.Error(t, NewEncoder(&buf).WriteFrame(&Frame{Type: FrameTitle}))
}

func TestTagEncode(t *testing.T) {
	tag := NewTag()
	require.NoError(t, tag.SetPadding(4))
	tag.Add(&Frame{Type: FrameTitle, Body: &TextBody{Text: "x"}})
	tag.Add(&Frame{Type: FrameYear, Body: &TextBody{Text: "1980"}})

	var buf bytes.Buffer
	require.NoError(t, tag.Encode(&buf))
	want := rawTag(0, 4,
		rawFrame("TIT2", 0, latin1Text("x")),
		rawFrame("TYER", 0, latin1Text("1980")),
	)
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, len(want), tag.Size())
}
