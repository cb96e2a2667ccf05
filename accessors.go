package mp3tag

import (
	"strconv"
	"strings"
	"time"
)

func (t *Tag) Title() string {
	return t.Text(FrameTitle)
}

func (t *Tag) SetTitle(title string) error {
	return t.SetText(FrameTitle, title)
}

func (t *Tag) Album() string {
	return t.Text(FrameAlbum)
}

func (t *Tag) SetAlbum(album string) error {
	return t.SetText(FrameAlbum, album)
}

func (t *Tag) Artist() string {
	return t.Text(FrameLeadPerformer)
}

func (t *Tag) SetArtist(artist string) error {
	return t.SetText(FrameLeadPerformer, artist)
}

// Band is the TPE2 frame. Tags seeded from ID3v1 keep the artist here.
func (t *Tag) Band() string {
	return t.Text(FrameBand)
}

func (t *Tag) SetBand(band string) error {
	return t.SetText(FrameBand, band)
}

func (t *Tag) Composer() string {
	return t.Text(FrameComposer)
}

func (t *Tag) SetComposer(composer string) error {
	return t.SetText(FrameComposer, composer)
}

func (t *Tag) Publisher() string {
	return t.Text(FramePublisher)
}

func (t *Tag) SetPublisher(publisher string) error {
	return t.SetText(FramePublisher, publisher)
}

func (t *Tag) Year() int {
	return t.TextInt(FrameYear)
}

func (t *Tag) SetYear(year int) error {
	return t.SetTextInt(FrameYear, year)
}

func (t *Tag) Track() int {
	return t.TextInt(FrameTrackNumber)
}

func (t *Tag) SetTrack(track int) error {
	return t.SetTextInt(FrameTrackNumber, track)
}

// Genre returns the content type. A leading ID3v1 genre reference
// such as "(17)" is replaced by the genre's name.
func (t *Tag) Genre() string {
	s := t.Text(FrameContentType)
	if !strings.HasPrefix(s, "(") {
		return s
	}
	end := strings.IndexByte(s, ')')
	if end < 0 {
		return s
	}
	n, err := strconv.Atoi(s[1:end])
	if err != nil {
		return s
	}
	if rest := s[end+1:]; rest != "" {
		return rest
	}
	if name := GenreName(n); name != "" {
		return name
	}
	return s
}

func (t *Tag) SetGenre(genre string) error {
	return t.SetText(FrameContentType, genre)
}

// Length returns the duration of the audio as stored in TLEN.
func (t *Tag) Length() time.Duration {
	return time.Duration(t.TextInt(FrameLength)) * time.Millisecond
}

func (t *Tag) SetLength(d time.Duration) error {
	return t.SetTextInt(FrameLength, int(d/time.Millisecond))
}

// Comment returns the text of the first comment in lang.
func (t *Tag) Comment(lang string) string {
	if f := t.LanguageFrame(FrameComments, lang); f != nil {
		if b, ok := f.Body.(*CommentBody); ok {
			return b.Text
		}
	}
	return ""
}

// SetComment sets the text of the comment in lang with an empty
// description, adding the frame if necessary.
func (t *Tag) SetComment(lang, text string) error {
	if err := checkLanguage(lang); err != nil {
		return err
	}
	f := t.LanguageFrame(FrameComments, lang)
	if f == nil {
		f = t.AddFrame(FrameComments)
	}
	b, ok := f.Body.(*CommentBody)
	if !ok {
		return invalidArgument("COMM frame has a %T body", f.Body)
	}
	b.Language = lang
	if b.Encoding == ISO88591 && !latin1Safe(text) {
		b.Encoding = UTF16
	}
	b.Text = text
	return nil
}
