package mp3tag

import (
	"net/http"

	"github.com/spf13/afero"
)

type options struct {
	fs             afero.Fs
	padding        int
	client         *http.Client
	audioSizeFrame bool
	v1Fallback     bool

	// first invalid option
	err error
}

func defaultOptions() options {
	return options{
		fs:         afero.NewOsFs(),
		padding:    DefaultPadding,
		client:     http.DefaultClient,
		v1Fallback: true,
	}
}

func newOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// An Option configures Open and OpenURL.
type Option func(*options)

// WithFs makes Open read and write files through fs instead of the
// operating system.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithPadding sets the padding written when a tag no longer fits its
// space on disk and the file is rewritten. The default is
// DefaultPadding. Open fails with ErrInvalidArgument if n is negative
// or too large for a tag.
func WithPadding(n int) Option {
	return func(o *options) {
		if n < 0 || n > maxSynchsafe {
			if o.err == nil {
				o.err = invalidArgument("padding %d out of range 0..%d", n, maxSynchsafe)
			}
			return
		}
		o.padding = n
	}
}

// WithHTTPClient sets the client OpenURL uses.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithAudioSizeFrame makes Save store the size of the audio in a TSIZ
// frame.
func WithAudioSizeFrame() Option {
	return func(o *options) { o.audioSizeFrame = true }
}

// WithoutV1Fallback disables seeding a new tag from an ID3v1 tag when
// a file has no ID3v2 tag. Open then never writes to the file.
func WithoutV1Fallback() Option {
	return func(o *options) { o.v1Fallback = false }
}
