package mp3tag

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Body is the payload of a frame. It is one of the *...Body types of
// this package; which one is determined by the frame type.
type Body interface {
	String() string
	encode() ([]byte, error)
}

type bodyParser func(typ FrameType, data []byte) (Body, error)

type bodyKind struct {
	parse bodyParser
	empty func() Body
}

var (
	bodyKinds map[FrameType]bodyKind

	textKind = bodyKind{parseTextBody, func() Body { return &TextBody{Encoding: DefaultEncoding} }}
	urlKind  = bodyKind{parseURLBody, func() Body { return &URLBody{} }}
	rawKind  = bodyKind{parseRawBody, func() Body { return &RawBody{} }}
)

func init() {
	bodyKinds = map[FrameType]bodyKind{
		FrameUserText: {parseUserTextBody, func() Body { return &UserTextBody{Encoding: DefaultEncoding} }},
		FrameUserURL:  {parseUserURLBody, func() Body { return &UserURLBody{Encoding: DefaultEncoding} }},
		FrameComments: {parseCommentBody, func() Body {
			return &CommentBody{Encoding: DefaultEncoding, Language: DefaultLanguage}
		}},
		FrameUnsynchronizedLyrics: {parseUnsynchronizedLyricsBody, func() Body {
			return &UnsynchronizedLyricsBody{Encoding: DefaultEncoding, Language: DefaultLanguage}
		}},
		FrameSynchronizedLyrics: {parseSynchronizedLyricsBody, func() Body {
			return &SynchronizedLyricsBody{
				Encoding:        DefaultEncoding,
				Language:        DefaultLanguage,
				TimestampFormat: TimestampMilliseconds,
				ContentType:     ContentLyrics,
			}
		}},
		FrameAttachedPicture: {parsePictureBody, func() Body {
			return &PictureBody{Encoding: DefaultEncoding, PictureType: PictureFrontCover}
		}},
		FramePopularimeter:        {parsePopularimeterBody, func() Body { return &PopularimeterBody{} }},
		FramePlayCounter:          {parsePlayCounterBody, func() Body { return &PlayCounterBody{} }},
		FrameEqualization:         {parseEqualizationBody, func() Body { return &EqualizationBody{AdjustmentBits: 16} }},
		FrameVolumeAdjustment:     {parseVolumeAdjustmentBody, newVolumeAdjustmentBody},
		FrameUniqueFileIdentifier: {parseUniqueFileIDBody, func() Body { return &UniqueFileIDBody{} }},
		FramePrivate:              {parsePrivateBody, func() Body { return &PrivateBody{} }},
		FrameMusicCDIdentifier:    {parseMusicCDIdentifierBody, func() Body { return &MusicCDIdentifierBody{} }},
	}
}

func kindOf(typ FrameType) bodyKind {
	if k, ok := bodyKinds[typ]; ok {
		return k
	}
	switch {
	case typ.isText():
		return textKind
	case typ.isURL():
		return urlKind
	default:
		return rawKind
	}
}

// DefaultEncoding is used for text fields of newly created frames.
var DefaultEncoding = UTF16

// DefaultLanguage is the ISO-639-2 code given to newly created
// language scoped frames.
const DefaultLanguage = "eng"

// readEncoding consumes the leading encoding byte of a body.
func readEncoding(data []byte) (Encoding, []byte, error) {
	if len(data) == 0 {
		return 0, nil, errors.New("frame body is empty")
	}
	e, err := DecodeEncoding(data[0])
	return e, data[1:], err
}

func readLanguage(data []byte) (string, []byte, error) {
	if len(data) < 3 {
		return "", nil, errors.New("missing language code")
	}
	return string(data[:3]), data[3:], nil
}

func checkLanguage(lang string) error {
	if len(lang) != 3 {
		return invalidArgument("language %q must be a 3 letter ISO-639-2 code", lang)
	}
	return nil
}

// readLatin1 consumes a null terminated ISO-8859-1 string.
func readLatin1(data []byte) (string, []byte, error) {
	return ISO88591.decodeTerminated(data)
}

// putUint writes n big endian into width bytes.
func putUint(n uint64, width int) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	if width > 8 {
		return append(make([]byte, width-8), b[:]...)
	}
	return append([]byte(nil), b[8-width:]...)
}

// getUint reads a big endian unsigned integer of up to 8 bytes.
func getUint(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, errors.Errorf("%d byte integer does not fit in 64 bits", len(b))
	}
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return n, nil
}

// encodeCounter encodes a play counter using at least 4 bytes.
func encodeCounter(n uint64) []byte {
	b := putUint(n, 8)
	for len(b) > 4 && b[0] == 0 {
		b = b[1:]
	}
	return b
}

func concat(bs ...[]byte) []byte {
	n := 0
	for _, b := range bs {
		n += len(b)
	}
	out := make([]byte, 0, n)
	for _, b := range bs {
		out = append(out, b...)
	}
	return out
}
