package mp3tag

import (
	"fmt"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"
)

// PictureBody is the body of APIC frames.
type PictureBody struct {
	Encoding    Encoding
	MIMEType    string
	PictureType PictureType
	Description string
	Data        []byte
}

func parsePictureBody(_ FrameType, data []byte) (Body, error) {
	enc, data, err := readEncoding(data)
	if err != nil {
		return nil, err
	}
	mime, data, err := readLatin1(data)
	if err != nil {
		return nil, errors.Wrap(err, "MIME type")
	}
	if len(data) == 0 {
		return nil, errors.New("missing picture type")
	}
	typ := PictureType(data[0])
	if !typ.valid() {
		return nil, errors.Errorf("invalid picture type %d", data[0])
	}
	desc, data, err := enc.decodeTerminated(data[1:])
	if err != nil {
		return nil, errors.Wrap(err, "description")
	}
	return &PictureBody{
		Encoding:    enc,
		MIMEType:    mime,
		PictureType: typ,
		Description: desc,
		Data:        data,
	}, nil
}

func (b *PictureBody) encode() ([]byte, error) {
	if !b.PictureType.valid() {
		return nil, invalidArgument("picture type %d", byte(b.PictureType))
	}
	mime, err := ISO88591.encodeTerminated(b.MIMEType)
	if err != nil {
		return nil, err
	}
	desc, err := b.Encoding.encodeTerminated(b.Description)
	if err != nil {
		return nil, err
	}
	return concat([]byte{byte(b.Encoding)}, mime, []byte{byte(b.PictureType)}, desc, b.Data), nil
}

// SetImage replaces the picture data. If MIMEType is empty it is
// derived from the data's magic number.
func (b *PictureBody) SetImage(data []byte) error {
	if b.MIMEType == "" {
		kind, err := filetype.Image(data)
		if err != nil || kind == filetype.Unknown {
			return invalidArgument("cannot determine image type, set MIMEType explicitly")
		}
		b.MIMEType = kind.MIME.Value
	}
	b.Data = data
	return nil
}

func (b *PictureBody) String() string {
	return fmt.Sprintf("%s (%s, %s): %d bytes", b.PictureType, b.MIMEType, b.Description, len(b.Data))
}
