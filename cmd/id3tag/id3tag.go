package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"honnef.co/go/mp3tag"
)

func apply(f *mp3tag.File, cfg *config) error {
	for _, id := range cfg.Remove {
		if _, err := f.RemoveFrames(mp3tag.FrameType(id)); err != nil {
			return err
		}
	}
	for _, s := range cfg.Set {
		typ, value, _ := parseAssignment(s)
		if err := f.SetText(typ, value); err != nil {
			return errors.Wrapf(err, "setting %s", string(typ))
		}
	}
	if cfg.Rating >= 0 {
		if err := rate(f, cfg.Email, cfg.Rating); err != nil {
			return err
		}
	}
	if cfg.Clean {
		dropped, err := f.DiscardInvalidFrames()
		if err != nil {
			return err
		}
		for _, fr := range dropped {
			log.Printf("%s: dropped %s", f.Path(), fr.Diagnostic())
		}
	}
	return f.Save()
}

// rate sets the rating of the POPM frame for email, adding one if
// needed.
func rate(f *mp3tag.File, email string, rating int) error {
	var body *mp3tag.PopularimeterBody
	for _, fr := range f.Tag().Frames(mp3tag.FramePopularimeter) {
		if b, ok := fr.Body.(*mp3tag.PopularimeterBody); ok && b.Email == email {
			body = b
			break
		}
	}
	if body == nil {
		fr, err := f.AddFrame(mp3tag.FramePopularimeter)
		if err != nil {
			return err
		}
		body = fr.Body.(*mp3tag.PopularimeterBody)
		body.Email = email
	}
	return body.SetRating(rating)
}

func run(fsys afero.Fs, args []string) error {
	cfg, err := loadConfig(fsys, args)
	if err != nil {
		return err
	}
	mp3tag.Logging = mp3tag.LogFlag(cfg.Verbose)
	mp3tag.DefaultEncoding = cfg.Encoding
	if len(cfg.Files) == 0 {
		return errors.New("no files given")
	}

	var failed int
	for _, name := range cfg.Files {
		f, err := mp3tag.Open(name, cfg.options(fsys)...)
		if err == nil {
			err = apply(f, cfg)
		}
		if err != nil {
			log.Printf("%s: %v", name, err)
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d files failed", failed, len(cfg.Files))
	}
	return nil
}

func main() {
	if err := run(afero.NewOsFs(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "id3tag:", err)
		os.Exit(1)
	}
}
