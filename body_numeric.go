package mp3tag

import (
	"fmt"

	"github.com/pkg/errors"
)

// PopularimeterBody is the body of POPM frames. The play counter is
// optional; a zero Counter is only written if the frame had one.
type PopularimeterBody struct {
	Email   string
	Counter uint64

	rating     uint8
	hasCounter bool
}

func parsePopularimeterBody(_ FrameType, data []byte) (Body, error) {
	email, data, err := readLatin1(data)
	if err != nil {
		return nil, errors.Wrap(err, "email")
	}
	if len(data) == 0 {
		return nil, errors.New("missing rating")
	}
	b := &PopularimeterBody{Email: email, rating: data[0]}
	if len(data) > 1 {
		if b.Counter, err = getUint(data[1:]); err != nil {
			return nil, err
		}
		b.hasCounter = true
	}
	return b, nil
}

func (b *PopularimeterBody) encode() ([]byte, error) {
	email, err := ISO88591.encodeTerminated(b.Email)
	if err != nil {
		return nil, err
	}
	if b.Counter == 0 && !b.hasCounter {
		return concat(email, []byte{b.rating}), nil
	}
	return concat(email, []byte{b.rating}, encodeCounter(b.Counter)), nil
}

// Rating returns the rating, 1 being the worst and 255 the best. 0 is
// unknown.
func (b *PopularimeterBody) Rating() int { return int(b.rating) }

// SetRating sets the rating. Values outside 0..255 are rejected.
func (b *PopularimeterBody) SetRating(r int) error {
	if r < 0 || r > 255 {
		return invalidArgument("rating %d out of range 0..255", r)
	}
	b.rating = uint8(r)
	return nil
}

func (b *PopularimeterBody) String() string {
	return fmt.Sprintf("%s: rating %d, played %d times", b.Email, b.rating, b.Counter)
}

// PlayCounterBody is the body of PCNT frames.
type PlayCounterBody struct {
	Counter uint64
}

func parsePlayCounterBody(_ FrameType, data []byte) (Body, error) {
	if len(data) < 4 {
		return nil, errors.Errorf("play counter is %d bytes, need at least 4", len(data))
	}
	n, err := getUint(data)
	if err != nil {
		return nil, err
	}
	return &PlayCounterBody{Counter: n}, nil
}

func (b *PlayCounterBody) encode() ([]byte, error) {
	return encodeCounter(b.Counter), nil
}

func (b *PlayCounterBody) String() string {
	return fmt.Sprintf("%d", b.Counter)
}
