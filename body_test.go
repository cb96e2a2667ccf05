package mp3tag

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip encodes f and decodes the result.
func roundTrip(t *testing.T, f *Frame) *Frame {
	t.Helper()
	b, err := f.Encode()
	require.NoError(t, err)
	got := decodeFrame(b[:frameHeaderSize], b[frameHeaderSize:])
	require.True(t, got.Valid(), got.Diagnostic())
	assert.Equal(t, len(b), got.Size())
	assert.False(t, got.Dirty())
	return got
}

// png is the smallest header filetype recognizes as image/png.
var png = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestBodyRoundTrip(t *testing.T) {
	tests := []struct {
		typ  FrameType
		body Body
	}{
		{FrameTitle, &TextBody{Encoding: UTF16, Text: "Hells Bells"}},
		{FrameAlbum, &TextBody{Encoding: ISO88591, Text: "Back in Black"}},
		{FrameUserText, &UserTextBody{Encoding: UTF16, Description: "MusicBrainz Album Id", Text: "abc"}},
		{"WOAR", &URLBody{URL: "https://example.com/acdc"}},
		{FrameUserURL, &UserURLBody{Encoding: ISO88591, Description: "shop", URL: "https://example.com"}},
		{FrameComments, &CommentBody{Encoding: UTF16, Language: "eng", Description: "", Text: "Great song"}},
		{FrameUnsynchronizedLyrics, &UnsynchronizedLyricsBody{Encoding: ISO88591, Language: "deu", Description: "d", Lyrics: "la la"}},
		{FrameSynchronizedLyrics, &SynchronizedLyricsBody{
			Encoding: UTF16, Language: "eng", TimestampFormat: TimestampMilliseconds, ContentType: ContentLyrics,
			Description: "verse", Lyrics: []SyncLyric{{"I'm", 3000}, {"a rolling", 1000}, {"thunder", 2000}},
		}},
		{FrameAttachedPicture, &PictureBody{Encoding: UTF16, MIMEType: "image/png", PictureType: PictureFrontCover, Description: "cover", Data: png}},
		{FramePlayCounter, &PlayCounterBody{Counter: 1 << 40}},
		{FrameEqualization, &EqualizationBody{AdjustmentBits: 12, Bands: []EqualizationBand{{true, 100, 0xABC}, {false, 0x7FFF, 1}}}},
		{FrameVolumeAdjustment, &VolumeAdjustmentBody{BitsUsed: 16, Channels: []ChannelAdjustment{
			{true, 1, 2}, {false, 3, 4}, {true, 5, 6}, {false, 7, 8}, {true, 9, 10},
		}}},
		{FrameUniqueFileIdentifier, &UniqueFileIDBody{Owner: "http://musicbrainz.org", Identifier: []byte("1234")}},
		{FramePrivate, &PrivateBody{Owner: "WM/MediaClassPrimaryID", Data: []byte{1, 2, 3}}},
		{FrameMusicCDIdentifier, &MusicCDIdentifierBody{TOC: []byte{1, 2, 3, 4}}},
		{"XYZ1", &RawBody{Data: []byte{9, 8, 7}}},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got := roundTrip(t, &Frame{Type: tt.typ, Body: tt.body})
			assert.Equal(t, tt.typ, got.Type)
			assert.Equal(t, tt.body, got.Body)
		})
	}
}

func TestPopularimeterRoundTrip(t *testing.T) {
	f := NewFrame(FramePopularimeter)
	b := f.Body.(*PopularimeterBody)
	b.Email = "me@example.com"
	b.Counter = 7
	require.NoError(t, b.SetRating(196))

	got := roundTrip(t, f).Body.(*PopularimeterBody)
	assert.Equal(t, "me@example.com", got.Email)
	assert.Equal(t, 196, got.Rating())
	assert.Equal(t, uint64(7), got.Counter)
}

func TestPopularimeterOptionalCounter(t *testing.T) {
	for _, body := range [][]byte{
		[]byte("me\x00\x80"),
		[]byte("me\x00\x80\x00\x00\x00\x00"),
		[]byte("me\x00\x80\x00\x00\x00\x05"),
	} {
		raw := rawFrame("POPM", 0, body)
		f := decodeFrame(raw[:frameHeaderSize], raw[frameHeaderSize:])
		require.True(t, f.Valid(), f.Diagnostic())
		got, err := f.Encode()
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}

	b := &PopularimeterBody{Email: "me"}
	enc, err := b.encode()
	require.NoError(t, err)
	assert.Equal(t, []byte("me\x00\x00"), enc)
	b.Counter = 1
	enc, err = b.encode()
	require.NoError(t, err)
	assert.Equal(t, []byte("me\x00\x00\x00\x00\x00\x01"), enc)
}

func TestRatingRange(t *testing.T) {
	b := &PopularimeterBody{}
	for _, r := range []int{-1, 256, 1000} {
		assert.True(t, errors.Is(b.SetRating(r), ErrInvalidArgument), "rating %d", r)
	}
	for _, r := range []int{0, 1, 255} {
		assert.NoError(t, b.SetRating(r))
		assert.Equal(t, r, b.Rating())
	}
}

func TestTextInt(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"1980", 1980},
		{" 42 ", 42},
		{"3/12", 3},
		{"-5", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		b := &TextBody{Text: tt.text}
		if got := b.Int(); got != tt.want {
			t.Errorf("Int(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}

	b := &TextBody{}
	assert.True(t, errors.Is(b.SetInt(0), ErrInvalidArgument))
	assert.True(t, errors.Is(b.SetInt(-3), ErrInvalidArgument))
	require.NoError(t, b.SetInt(12))
	assert.Equal(t, "12", b.Text)
}

func TestSyncLyricsKeepOrder(t *testing.T) {
	f := NewFrame(FrameSynchronizedLyrics)
	b := f.Body.(*SynchronizedLyricsBody)
	b.AddLyric("second", 2000)
	b.AddLyric("first", 1000)

	got := roundTrip(t, f).Body.(*SynchronizedLyricsBody)
	require.Len(t, got.Lyrics, 2)
	assert.Equal(t, "second", got.Lyrics[0].Text)
	assert.Equal(t, uint32(1000), got.Lyrics[1].Timestamp)
}

func TestMalformedBodies(t *testing.T) {
	tests := []struct {
		typ  FrameType
		data []byte
	}{
		{FrameTitle, nil},
		{FrameTitle, []byte{2, 'a'}},
		{FrameAttachedPicture, append([]byte{0}, "image/png\x00\x30\x00data"...)},
		{FrameAttachedPicture, []byte{0, 'i', 'm', 'g'}},
		{FrameComments, []byte{0, 'e', 'n'}},
		{FrameSynchronizedLyrics, append([]byte{0}, "eng\x02\x01\x00la\x00\x00"...)},
		{FramePlayCounter, []byte{0, 1}},
		{FrameVolumeAdjustment, []byte{0, 16, 0, 1, 0, 2, 0, 3}},
		{FrameEqualization, []byte{0}},
		{FrameUserText, []byte{1, 0xFE, 0xFF, 0, 'a'}},
	}
	for _, tt := range tests {
		f := decodeFrame(rawFrame(string(tt.typ), 0, nil)[:frameHeaderSize], tt.data)
		if f.Valid() {
			t.Errorf("%s % x decoded as %v", tt.typ, tt.data, f.Body)
			continue
		}
		var merr *MalformedFrameError
		require.True(t, errors.As(f.Err(), &merr))
		assert.Equal(t, tt.typ, merr.Type)
		assert.Equal(t, &RawBody{Data: tt.data}, f.Body)
	}
}

func TestNewFrameBodies(t *testing.T) {
	assert.IsType(t, &TextBody{}, NewFrame("TIT3").Body)
	assert.IsType(t, &URLBody{}, NewFrame("WCOM").Body)
	assert.IsType(t, &UserTextBody{}, NewFrame(FrameUserText).Body)
	assert.IsType(t, &RawBody{}, NewFrame("GEOB").Body)

	c := NewFrame(FrameComments).Body.(*CommentBody)
	assert.Equal(t, DefaultLanguage, c.Language)
	assert.Equal(t, DefaultEncoding, c.Encoding)
}

func TestSetImage(t *testing.T) {
	b := &PictureBody{PictureType: PictureFrontCover}
	require.NoError(t, b.SetImage(png))
	assert.Equal(t, "image/png", b.MIMEType)

	b = &PictureBody{}
	assert.True(t, errors.Is(b.SetImage([]byte("not an image")), ErrInvalidArgument))

	b = &PictureBody{MIMEType: "image/x-custom"}
	require.NoError(t, b.SetImage([]byte("whatever")))
	assert.Equal(t, "image/x-custom", b.MIMEType)
}

func TestEncodeRejectsBadValues(t *testing.T) {
	tests := []Body{
		&CommentBody{Language: "en"},
		&PictureBody{PictureType: 0x30},
		&VolumeAdjustmentBody{BitsUsed: 16, Channels: make([]ChannelAdjustment, 3)},
		&EqualizationBody{AdjustmentBits: 0},
		&EqualizationBody{AdjustmentBits: 4, Bands: []EqualizationBand{{Frequency: 100, Adjustment: 16}}},
		&EqualizationBody{AdjustmentBits: 8, Bands: []EqualizationBand{{Frequency: 100, Adjustment: 256}}},
		&UniqueFileIDBody{Identifier: make([]byte, 65)},
		&TextBody{Encoding: 7},
	}
	for _, body := range tests {
		_, err := body.encode()
		assert.Error(t, err, "%T", body)
	}

	widest := &EqualizationBody{AdjustmentBits: 4, Bands: []EqualizationBand{{Frequency: 100, Adjustment: 15}}}
	_, err := widest.encode()
	assert.NoError(t, err)
}
