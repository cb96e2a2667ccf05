package mp3tag

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenURL(t *testing.T) {
	body := append(rawTag(0, 16,
		rawFrame("TIT2", 0, latin1Text("Hells Bells")),
		rawFrame("TYER", 0, []byte{7}),
	), audio(64)...)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hells.mp3" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	f, err := OpenURL(context.Background(), srv.URL+"/hells.mp3", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.True(t, f.ReadOnly())
	assert.True(t, f.HasTag())
	assert.Equal(t, srv.URL+"/hells.mp3", f.Path())
	assert.Equal(t, "Hells Bells", f.Tag().Title())
	assert.Len(t, f.Errors(), 1)

	assert.True(t, errors.Is(f.SetText(FrameTitle, "x"), ErrReadOnly))
	assert.True(t, errors.Is(f.SetTextInt(FrameYear, 1980), ErrReadOnly))
	assert.True(t, errors.Is(f.SetPadding(0), ErrReadOnly))
	_, err = f.AddFrame(FrameAlbum)
	assert.True(t, errors.Is(err, ErrReadOnly))
	_, err = f.RemoveFrame(FrameTitle)
	assert.True(t, errors.Is(err, ErrReadOnly))
	_, err = f.RemoveFrames(FrameTitle)
	assert.True(t, errors.Is(err, ErrReadOnly))
	_, err = f.DiscardInvalidFrames()
	assert.True(t, errors.Is(err, ErrReadOnly))
	assert.True(t, errors.Is(f.Save(), ErrReadOnly))
	assert.Equal(t, "Hells Bells", f.Tag().Title())

	_, err = OpenURL(context.Background(), srv.URL+"/missing.mp3", WithHTTPClient(srv.Client()))
	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr), "got %v", err)
}

func TestOpenURLWithoutTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(audio(300))
	}))
	defer srv.Close()

	f, err := OpenURL(context.Background(), srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.False(t, f.HasTag())
	assert.Empty(t, f.Tag().AllFrames())
}

// TestInterop checks written files with two independent ID3 readers.
func TestInterop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interop.mp3")
	require.NoError(t, os.WriteFile(path, audio(4096), 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	tg := f.Tag()
	require.NoError(t, tg.SetTitle("Hells Bells"))
	require.NoError(t, tg.SetArtist("AC/DC"))
	require.NoError(t, tg.SetAlbum("Back in Black"))
	require.NoError(t, tg.SetYear(1980))
	require.NoError(t, tg.SetComment("eng", "Großartig"))
	require.NoError(t, f.Save())

	t.Run("dhowden/tag", func(t *testing.T) {
		fh, err := os.Open(path)
		require.NoError(t, err)
		defer fh.Close()
		m, err := tag.ReadFrom(fh)
		require.NoError(t, err)
		assert.Equal(t, tag.ID3v2_3, m.Format())
		assert.Equal(t, "Hells Bells", m.Title())
		assert.Equal(t, "AC/DC", m.Artist())
		assert.Equal(t, "Back in Black", m.Album())
		assert.Equal(t, 1980, m.Year())
	})

	t.Run("bogem/id3v2", func(t *testing.T) {
		b, err := id3v2.Open(path, id3v2.Options{Parse: true})
		require.NoError(t, err)
		defer b.Close()
		assert.Equal(t, byte(3), b.Version())
		assert.Equal(t, "Hells Bells", b.Title())
		assert.Equal(t, "AC/DC", b.Artist())
		assert.Equal(t, "Back in Black", b.Album())
		assert.Equal(t, "1980", b.Year())
		comments := b.GetFrames(b.CommonID("Comments"))
		require.Len(t, comments, 1)
		comm, ok := comments[0].(id3v2.CommentFrame)
		require.True(t, ok)
		assert.Equal(t, "Großartig", comm.Text)
		assert.Equal(t, "eng", comm.Language)
	})

	// and the other way around: a tag written by bogem/id3v2 parses
	t.Run("read bogem", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "bogem.mp3")
		require.NoError(t, os.WriteFile(other, audio(1000), 0o644))
		b, err := id3v2.Open(other, id3v2.Options{Parse: false})
		require.NoError(t, err)
		b.SetVersion(3)
		b.SetTitle("Written elsewhere")
		b.SetDefaultEncoding(id3v2.EncodingUTF16)
		b.SetArtist("Somebody")
		require.NoError(t, b.Save())
		require.NoError(t, b.Close())

		f, err := Open(other, WithFs(afero.NewReadOnlyFs(afero.NewOsFs())))
		require.NoError(t, err)
		assert.Empty(t, f.Errors())
		assert.Equal(t, "Written elsewhere", f.Tag().Title())
		assert.Equal(t, "Somebody", f.Tag().Artist())
	})
}
