package mp3tag

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// languageBody is implemented by bodies scoped to a language.
type languageBody interface {
	Body
	language() string
}

// CommentBody is the body of COMM frames.
type CommentBody struct {
	Encoding    Encoding
	Language    string
	Description string
	Text        string
}

func parseCommentBody(_ FrameType, data []byte) (Body, error) {
	enc, lang, desc, text, err := parseLanguageText(data)
	if err != nil {
		return nil, err
	}
	return &CommentBody{Encoding: enc, Language: lang, Description: desc, Text: text}, nil
}

func (b *CommentBody) encode() ([]byte, error) {
	return encodeLanguageText(b.Encoding, b.Language, b.Description, b.Text)
}

func (b *CommentBody) language() string { return b.Language }

func (b *CommentBody) String() string {
	return fmt.Sprintf("[%s] %s: %s", b.Language, b.Description, b.Text)
}

// UnsynchronizedLyricsBody is the body of USLT frames. It has the same
// layout as a comment.
type UnsynchronizedLyricsBody struct {
	Encoding    Encoding
	Language    string
	Description string
	Lyrics      string
}

func parseUnsynchronizedLyricsBody(_ FrameType, data []byte) (Body, error) {
	enc, lang, desc, text, err := parseLanguageText(data)
	if err != nil {
		return nil, err
	}
	return &UnsynchronizedLyricsBody{Encoding: enc, Language: lang, Description: desc, Lyrics: text}, nil
}

func (b *UnsynchronizedLyricsBody) encode() ([]byte, error) {
	return encodeLanguageText(b.Encoding, b.Language, b.Description, b.Lyrics)
}

func (b *UnsynchronizedLyricsBody) language() string { return b.Language }

func (b *UnsynchronizedLyricsBody) String() string {
	return fmt.Sprintf("[%s] %s: %s", b.Language, b.Description, b.Lyrics)
}

func parseLanguageText(data []byte) (enc Encoding, lang, desc, text string, err error) {
	enc, data, err = readEncoding(data)
	if err != nil {
		return
	}
	lang, data, err = readLanguage(data)
	if err != nil {
		return
	}
	desc, data, err = enc.decodeTerminated(data)
	if err != nil {
		return
	}
	text, err = enc.decodeRest(data)
	return
}

func encodeLanguageText(enc Encoding, lang, desc, text string) ([]byte, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}
	d, err := enc.encodeTerminated(desc)
	if err != nil {
		return nil, err
	}
	t, err := enc.encode(text)
	if err != nil {
		return nil, err
	}
	return concat([]byte{byte(enc)}, []byte(lang), d, t), nil
}

// TimestampFormat is the unit of SYLT timestamps.
type TimestampFormat byte

const (
	TimestampMPEGFrames   TimestampFormat = 1
	TimestampMilliseconds TimestampFormat = 2
)

func (f TimestampFormat) String() string {
	switch f {
	case TimestampMPEGFrames:
		return "MPEG frames"
	case TimestampMilliseconds:
		return "milliseconds"
	default:
		return fmt.Sprintf("TimestampFormat(%d)", byte(f))
	}
}

// ContentType describes what a SYLT frame synchronises.
type ContentType byte

const (
	ContentOther ContentType = iota
	ContentLyrics
	ContentTextTranscription
	ContentMovement
	ContentEvents
	ContentChord
	ContentTrivia
)

// SyncLyric is a single timed syllable or line.
type SyncLyric struct {
	Text      string
	Timestamp uint32
}

// SynchronizedLyricsBody is the body of SYLT frames. Lyrics keep the
// order they were read or added in.
type SynchronizedLyricsBody struct {
	Encoding        Encoding
	Language        string
	TimestampFormat TimestampFormat
	ContentType     ContentType
	Description     string
	Lyrics          []SyncLyric
}

func parseSynchronizedLyricsBody(_ FrameType, data []byte) (Body, error) {
	enc, data, err := readEncoding(data)
	if err != nil {
		return nil, err
	}
	lang, data, err := readLanguage(data)
	if err != nil {
		return nil, err
	}
	if len(data) < 2 {
		return nil, errors.New("missing timestamp format and content type")
	}
	b := &SynchronizedLyricsBody{
		Encoding:        enc,
		Language:        lang,
		TimestampFormat: TimestampFormat(data[0]),
		ContentType:     ContentType(data[1]),
	}
	b.Description, data, err = enc.decodeTerminated(data[2:])
	if err != nil {
		return nil, err
	}
	for len(data) > 0 {
		var l SyncLyric
		l.Text, data, err = enc.decodeTerminated(data)
		if err != nil {
			return nil, errors.Wrapf(err, "lyric %d", len(b.Lyrics))
		}
		if len(data) < 4 {
			return nil, errors.Errorf("lyric %d: truncated timestamp", len(b.Lyrics))
		}
		l.Timestamp = binary.BigEndian.Uint32(data)
		data = data[4:]
		b.Lyrics = append(b.Lyrics, l)
	}
	return b, nil
}

func (b *SynchronizedLyricsBody) encode() ([]byte, error) {
	if err := checkLanguage(b.Language); err != nil {
		return nil, err
	}
	desc, err := b.Encoding.encodeTerminated(b.Description)
	if err != nil {
		return nil, err
	}
	out := concat([]byte{byte(b.Encoding)}, []byte(b.Language),
		[]byte{byte(b.TimestampFormat), byte(b.ContentType)}, desc)
	for _, l := range b.Lyrics {
		text, err := b.Encoding.encodeTerminated(l.Text)
		if err != nil {
			return nil, err
		}
		out = append(out, text...)
		out = binary.BigEndian.AppendUint32(out, l.Timestamp)
	}
	return out, nil
}

// AddLyric appends a lyric after the existing ones.
func (b *SynchronizedLyricsBody) AddLyric(text string, timestamp uint32) {
	b.Lyrics = append(b.Lyrics, SyncLyric{Text: text, Timestamp: timestamp})
}

func (b *SynchronizedLyricsBody) language() string { return b.Language }

func (b *SynchronizedLyricsBody) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "[%s] %s (%s)", b.Language, b.Description, b.TimestampFormat)
	for _, l := range b.Lyrics {
		fmt.Fprintf(&s, "\n  %d %s", l.Timestamp, l.Text)
	}
	return s.String()
}
