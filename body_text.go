package mp3tag

import (
	"fmt"
	"strconv"
	"strings"
)

// TextBody is the body of the T*** text information frames.
type TextBody struct {
	Encoding Encoding
	Text     string
}

func parseTextBody(_ FrameType, data []byte) (Body, error) {
	enc, data, err := readEncoding(data)
	if err != nil {
		return nil, err
	}
	text, err := enc.decodeRest(data)
	if err != nil {
		return nil, err
	}
	return &TextBody{Encoding: enc, Text: text}, nil
}

func (b *TextBody) encode() ([]byte, error) {
	text, err := b.Encoding.encode(b.Text)
	if err != nil {
		return nil, err
	}
	return concat([]byte{byte(b.Encoding)}, text), nil
}

func (b *TextBody) String() string { return b.Text }

// Int interprets the text as a decimal number. Text that is not a
// non-negative number yields 0. Values such as "3/12" in TRCK are
// read up to the slash.
func (b *TextBody) Int() int {
	s := strings.TrimSpace(b.Text)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetInt stores n as decimal text. n must be positive.
func (b *TextBody) SetInt(n int) error {
	if n <= 0 {
		return invalidArgument("numeric text value %d is not positive", n)
	}
	b.Text = strconv.Itoa(n)
	return nil
}

// UserTextBody is the body of TXXX frames.
type UserTextBody struct {
	Encoding    Encoding
	Description string
	Text        string
}

func parseUserTextBody(_ FrameType, data []byte) (Body, error) {
	enc, data, err := readEncoding(data)
	if err != nil {
		return nil, err
	}
	desc, data, err := enc.decodeTerminated(data)
	if err != nil {
		return nil, err
	}
	text, err := enc.decodeRest(data)
	if err != nil {
		return nil, err
	}
	return &UserTextBody{Encoding: enc, Description: desc, Text: text}, nil
}

func (b *UserTextBody) encode() ([]byte, error) {
	desc, err := b.Encoding.encodeTerminated(b.Description)
	if err != nil {
		return nil, err
	}
	text, err := b.Encoding.encode(b.Text)
	if err != nil {
		return nil, err
	}
	return concat([]byte{byte(b.Encoding)}, desc, text), nil
}

func (b *UserTextBody) String() string {
	return fmt.Sprintf("%s: %s", b.Description, b.Text)
}

// URLBody is the body of the W*** link frames. URLs are always
// ISO-8859-1.
type URLBody struct {
	URL string
}

func parseURLBody(_ FrameType, data []byte) (Body, error) {
	url, err := ISO88591.decodeRest(data)
	if err != nil {
		return nil, err
	}
	return &URLBody{URL: url}, nil
}

func (b *URLBody) encode() ([]byte, error) {
	return ISO88591.encode(b.URL)
}

func (b *URLBody) String() string { return b.URL }

// UserURLBody is the body of WXXX frames.
type UserURLBody struct {
	Encoding    Encoding
	Description string
	URL         string
}

func parseUserURLBody(_ FrameType, data []byte) (Body, error) {
	enc, data, err := readEncoding(data)
	if err != nil {
		return nil, err
	}
	desc, data, err := enc.decodeTerminated(data)
	if err != nil {
		return nil, err
	}
	url, err := ISO88591.decodeRest(data)
	if err != nil {
		return nil, err
	}
	return &UserURLBody{Encoding: enc, Description: desc, URL: url}, nil
}

func (b *UserURLBody) encode() ([]byte, error) {
	desc, err := b.Encoding.encodeTerminated(b.Description)
	if err != nil {
		return nil, err
	}
	url, err := ISO88591.encode(b.URL)
	if err != nil {
		return nil, err
	}
	return concat([]byte{byte(b.Encoding)}, desc, url), nil
}

func (b *UserURLBody) String() string {
	return fmt.Sprintf("%s: %s", b.Description, b.URL)
}

// latin1Safe reports whether every rune of s exists in ISO-8859-1.
func latin1Safe(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}
	return true
}
