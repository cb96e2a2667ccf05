package mp3tag

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the character set of a text field, as stored in the
// first byte of every text bearing frame body.
type Encoding byte

const (
	ISO88591 Encoding = 0 // single byte, one byte terminator
	UTF16    Encoding = 1 // UTF-16 with byte order mark, two byte terminator
)

var (
	nul  = []byte{0}
	nul2 = []byte{0, 0}
)

// DecodeEncoding maps an encoding byte to an Encoding.
func DecodeEncoding(b byte) (Encoding, error) {
	e := Encoding(b)
	if !e.valid() {
		return 0, errors.Wrapf(ErrInvalidEncoding, "encoding byte %d", b)
	}
	return e, nil
}

func (e Encoding) valid() bool {
	return e == ISO88591 || e == UTF16
}

func (e Encoding) String() string {
	switch e {
	case ISO88591:
		return "ISO-8859-1"
	case UTF16:
		return "UTF-16"
	default:
		return fmt.Sprintf("Encoding(%d)", byte(e))
	}
}

// TerminatorSize returns the number of bytes of a null terminator.
func (e Encoding) TerminatorSize() int {
	if e == UTF16 {
		return 2
	}
	return 1
}

func (e Encoding) terminator() []byte {
	if e == UTF16 {
		return nul2
	}
	return nul
}

func (e Encoding) codec() encoding.Encoding {
	if e == UTF16 {
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}
	return charmap.ISO8859_1
}

// encode converts s to e. Runes that ISO-8859-1 cannot represent are
// replaced.
func (e Encoding) encode(s string) ([]byte, error) {
	if !e.valid() {
		return nil, errors.Wrapf(ErrInvalidEncoding, "encoding byte %d", byte(e))
	}
	if s == "" {
		return nil, nil
	}
	return encoding.ReplaceUnsupported(e.codec().NewEncoder()).Bytes([]byte(s))
}

// encodeTerminated is encode followed by the terminator of e.
func (e Encoding) encodeTerminated(s string) ([]byte, error) {
	b, err := e.encode(s)
	if err != nil {
		return nil, err
	}
	return append(b, e.terminator()...), nil
}

// decode converts b from e to UTF-8. A trailing terminator, if
// present, is dropped.
func (e Encoding) decode(b []byte) (string, error) {
	if !e.valid() {
		return "", errors.Wrapf(ErrInvalidEncoding, "encoding byte %d", byte(e))
	}
	b = bytes.TrimSuffix(b, e.terminator())
	if len(b) == 0 {
		return "", nil
	}
	if e == UTF16 && len(b)%2 != 0 {
		return "", errors.Errorf("odd length UTF-16 string (%d bytes)", len(b))
	}
	out, err := e.codec().NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// terminatorIndex returns the offset of the first terminator in b, or
// -1. For UTF-16 only even offsets count, since a single code unit can
// contain a zero byte.
func (e Encoding) terminatorIndex(b []byte) int {
	if e != UTF16 {
		return bytes.IndexByte(b, 0)
	}
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i
		}
	}
	return -1
}

// cut splits b at the first terminator. head excludes the terminator,
// tail starts right after it.
func (e Encoding) cut(b []byte) (head, tail []byte, found bool) {
	i := e.terminatorIndex(b)
	if i < 0 {
		return b, nil, false
	}
	return b[:i], b[i+e.TerminatorSize():], true
}

// decodeTerminated decodes the first terminated string of b and
// returns the remaining bytes.
func (e Encoding) decodeTerminated(b []byte) (string, []byte, error) {
	head, tail, found := e.cut(b)
	if !found {
		return "", nil, errors.Errorf("missing %d byte null terminator", e.TerminatorSize())
	}
	s, err := e.decode(head)
	return s, tail, err
}

// decodeRest decodes b up to its first terminator, or all of b if it
// has none.
func (e Encoding) decodeRest(b []byte) (string, error) {
	head, _, _ := e.cut(b)
	return e.decode(head)
}
