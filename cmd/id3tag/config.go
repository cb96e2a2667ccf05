package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"honnef.co/go/mp3tag"
)

// config is the merged result of flags, ID3TAG_* environment
// variables and the optional id3tag config file, in that order of
// precedence.
type config struct {
	Padding        int
	Verbose        bool
	Encoding       mp3tag.Encoding
	AudioSizeFrame bool

	// per invocation operations, only taken from flags
	Set    []string
	Remove []string
	Rating int
	Email  string
	Clean  bool
	Files  []string
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("id3tag", pflag.ContinueOnError)
	fs.String("config", "", "config file (default ./id3tag.yaml or $HOME/.config/id3tag/id3tag.yaml)")
	fs.Int("padding", mp3tag.DefaultPadding, "padding to use when a file has to be rewritten")
	fs.BoolP("verbose", "v", false, "log what is being done")
	fs.String("encoding", "utf16", "encoding of new text frames: latin1 or utf16")
	fs.Bool("audio-size-frame", false, "record the audio size in a TSIZ frame")

	fs.StringArrayP("set", "s", nil, "set a text frame, as ID=value (repeatable)")
	fs.StringArrayP("remove", "r", nil, "remove all frames with the given ID (repeatable)")
	fs.Int("rating", -1, "set the POPM rating, 0 to 255")
	fs.String("email", "", "email of the POPM frame to rate")
	fs.Bool("clean", false, "discard frames that could not be decoded")
	return fs
}

func loadConfig(fsys afero.Fs, args []string) (*config, error) {
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fsys)
	v.SetEnvPrefix("ID3TAG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"padding", "verbose", "encoding", "audio-size-frame"} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return nil, err
		}
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "reading config")
		}
	} else {
		v.SetConfigName("id3tag")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/id3tag")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "reading config")
			}
		}
	}

	cfg := &config{
		Padding:        v.GetInt("padding"),
		Verbose:        v.GetBool("verbose"),
		AudioSizeFrame: v.GetBool("audio-size-frame"),
		Files:          flags.Args(),
	}
	if cfg.Padding < 0 {
		return nil, errors.Errorf("padding %d is negative", cfg.Padding)
	}
	switch enc := strings.ToLower(v.GetString("encoding")); enc {
	case "latin1", "iso-8859-1":
		cfg.Encoding = mp3tag.ISO88591
	case "utf16", "utf-16":
		cfg.Encoding = mp3tag.UTF16
	default:
		return nil, errors.Errorf("unknown encoding %q", enc)
	}

	cfg.Set, _ = flags.GetStringArray("set")
	cfg.Remove, _ = flags.GetStringArray("remove")
	cfg.Rating, _ = flags.GetInt("rating")
	cfg.Email, _ = flags.GetString("email")
	cfg.Clean, _ = flags.GetBool("clean")
	for _, s := range cfg.Set {
		if _, _, err := parseAssignment(s); err != nil {
			return nil, err
		}
	}
	if cfg.Rating > 255 {
		return nil, errors.Errorf("rating %d out of range 0..255", cfg.Rating)
	}
	return cfg, nil
}

// parseAssignment splits "TIT2=value" into a frame type and a value.
func parseAssignment(s string) (mp3tag.FrameType, string, error) {
	id, value, ok := strings.Cut(s, "=")
	if !ok || len(id) != 4 {
		return "", "", errors.Errorf("invalid assignment %q, want ID=value", s)
	}
	return mp3tag.FrameType(strings.ToUpper(id)), value, nil
}

func (c *config) options(fsys afero.Fs) []mp3tag.Option {
	opts := []mp3tag.Option{mp3tag.WithFs(fsys), mp3tag.WithPadding(c.Padding)}
	if c.AudioSizeFrame {
		opts = append(opts, mp3tag.WithAudioSizeFrame())
	}
	return opts
}
