package mp3tag

import (
	"fmt"

	"github.com/pkg/errors"
)

// UniqueFileIDBody is the body of UFID frames.
type UniqueFileIDBody struct {
	Owner      string
	Identifier []byte
}

func parseUniqueFileIDBody(_ FrameType, data []byte) (Body, error) {
	owner, data, err := readLatin1(data)
	if err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if len(data) > 64 {
		return nil, errors.Errorf("identifier is %d bytes, at most 64 allowed", len(data))
	}
	return &UniqueFileIDBody{Owner: owner, Identifier: data}, nil
}

func (b *UniqueFileIDBody) encode() ([]byte, error) {
	if len(b.Identifier) > 64 {
		return nil, invalidArgument("identifier is %d bytes, at most 64 allowed", len(b.Identifier))
	}
	owner, err := ISO88591.encodeTerminated(b.Owner)
	if err != nil {
		return nil, err
	}
	return concat(owner, b.Identifier), nil
}

func (b *UniqueFileIDBody) String() string {
	return fmt.Sprintf("%s: %x", b.Owner, b.Identifier)
}

// PrivateBody is the body of PRIV frames.
type PrivateBody struct {
	Owner string
	Data  []byte
}

func parsePrivateBody(_ FrameType, data []byte) (Body, error) {
	owner, data, err := readLatin1(data)
	if err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	return &PrivateBody{Owner: owner, Data: data}, nil
}

func (b *PrivateBody) encode() ([]byte, error) {
	owner, err := ISO88591.encodeTerminated(b.Owner)
	if err != nil {
		return nil, err
	}
	return concat(owner, b.Data), nil
}

func (b *PrivateBody) String() string {
	return fmt.Sprintf("%s: %d bytes", b.Owner, len(b.Data))
}

// MusicCDIdentifierBody is the body of MCDI frames, a CD table of
// contents.
type MusicCDIdentifierBody struct {
	TOC []byte
}

func parseMusicCDIdentifierBody(_ FrameType, data []byte) (Body, error) {
	if len(data) > 804 {
		return nil, errors.Errorf("table of contents is %d bytes, at most 804 allowed", len(data))
	}
	return &MusicCDIdentifierBody{TOC: data}, nil
}

func (b *MusicCDIdentifierBody) encode() ([]byte, error) {
	if len(b.TOC) > 804 {
		return nil, invalidArgument("table of contents is %d bytes, at most 804 allowed", len(b.TOC))
	}
	return b.TOC, nil
}

func (b *MusicCDIdentifierBody) String() string {
	return fmt.Sprintf("%d byte TOC", len(b.TOC))
}

// RawBody holds frames that are not decoded: unknown frame types and
// encrypted frames.
type RawBody struct {
	Data []byte
}

func parseRawBody(_ FrameType, data []byte) (Body, error) {
	return &RawBody{Data: data}, nil
}

func (b *RawBody) encode() ([]byte, error) { return b.Data, nil }

func (b *RawBody) String() string {
	return fmt.Sprintf("%d bytes", len(b.Data))
}
