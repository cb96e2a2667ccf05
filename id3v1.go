package mp3tag

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// V1TagSize is the size of an ID3v1 tag, stored in the last bytes of
// a file.
const V1TagSize = 128

var v1Magic = []byte("TAG")

// V1Tag is a legacy ID3v1 or ID3v1.1 tag. It is only ever read, to
// seed a new ID3v2 tag for files that lack one.
type V1Tag struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Comment string
	// Track is the ID3v1.1 track number; 0 means none.
	Track uint8
	Genre uint8
}

// ReadV1 reads the ID3v1 tag at the end of r.
func ReadV1(r io.ReadSeeker) (*V1Tag, error) {
	if _, err := r.Seek(-V1TagSize, io.SeekEnd); err != nil {
		// Files shorter than a tag cannot contain one.
		return nil, ErrV1NotFound
	}
	var b [V1TagSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrV1NotFound
		}
		return nil, &IOError{Op: "read ID3v1 tag", Err: err}
	}
	return ParseV1(b[:])
}

// ParseV1 decodes a 128 byte ID3v1 tag.
func ParseV1(b []byte) (*V1Tag, error) {
	if len(b) != V1TagSize || string(b[:3]) != string(v1Magic) {
		return nil, ErrV1NotFound
	}
	v := &V1Tag{
		Title:  v1String(b[3:33]),
		Artist: v1String(b[33:63]),
		Album:  v1String(b[63:93]),
		Year:   v1String(b[93:97]),
		Genre:  b[127],
	}
	if b[125] == 0 {
		v.Comment = v1String(b[97:125])
		v.Track = b[126]
	} else {
		v.Comment = v1String(b[97:127])
	}
	return v, nil
}

// v1String decodes an ISO-8859-1 field and strips control characters
// and spaces from both ends. This also removes null padding.
func v1String(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// ISO-8859-1 maps every byte
		panic(err)
	}
	return strings.TrimFunc(string(s), func(r rune) bool { return r <= ' ' })
}

// Bytes returns the 128 byte form of the tag. A non-zero Track
// produces an ID3v1.1 tag.
func (v *V1Tag) Bytes() []byte {
	b := make([]byte, V1TagSize)
	copy(b, v1Magic)
	put := func(off, n int, s string) {
		enc, _ := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
		if len(enc) > n {
			enc = enc[:n]
		}
		copy(b[off:off+n], enc)
	}
	put(3, 30, v.Title)
	put(33, 30, v.Artist)
	put(63, 30, v.Album)
	put(93, 4, v.Year)
	if v.Track != 0 {
		put(97, 28, v.Comment)
		b[126] = v.Track
	} else {
		put(97, 30, v.Comment)
	}
	b[127] = v.Genre
	return b
}

// GenreName returns the name of the tag's genre, or "" if the genre
// byte is not in Genres.
func (v *V1Tag) GenreName() string {
	return GenreName(int(v.Genre))
}

func (v *V1Tag) String() string {
	return fmt.Sprintf("ID3v1 %q by %q on %q (%s), track %d, genre %d", v.Title, v.Artist, v.Album, v.Year, v.Track, v.Genre)
}

// Seed copies the populated fields of v into t:
// title to TIT2, artist to TPE2, album to TALB, a four character year
// to TYER, a known genre to TCON as "(N)", a non-zero track to TRCK
// and the comment to an English COMM frame. New text frames use
// DefaultEncoding.
func (v *V1Tag) Seed(t *Tag) error {
	texts := map[FrameType]string{
		FrameTitle: v.Title,
		FrameBand:  v.Artist,
		FrameAlbum: v.Album,
	}
	if len(v.Year) == 4 {
		texts[FrameYear] = v.Year
	}
	if v.GenreName() != "" {
		texts[FrameContentType] = fmt.Sprintf("(%d)", v.Genre)
	}
	for _, typ := range []FrameType{FrameTitle, FrameBand, FrameAlbum, FrameYear, FrameContentType} {
		if texts[typ] == "" {
			continue
		}
		if err := t.SetText(typ, texts[typ]); err != nil {
			return errors.Wrapf(err, "seeding %s", string(typ))
		}
	}
	if v.Track != 0 {
		if err := t.SetTextInt(FrameTrackNumber, int(v.Track)); err != nil {
			return errors.Wrap(err, "seeding TRCK")
		}
	}
	if v.Comment != "" {
		if err := t.SetComment(DefaultLanguage, v.Comment); err != nil {
			return errors.Wrap(err, "seeding COMM")
		}
	}
	return nil
}
