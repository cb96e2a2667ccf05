package mp3tag

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

type savePlan int

const (
	// planInPlace overwrites the old tag, using the padding to make up
	// the difference in size.
	planInPlace savePlan = iota
	// planRewrite writes a temporary file with the new tag followed by
	// the audio and moves it over the original.
	planRewrite
)

func (p savePlan) String() string {
	if p == planInPlace {
		return "in place"
	}
	return "rewrite"
}

// choosePlan decides how to write a tag needing newSize bytes without
// padding over a tag occupying oldSize bytes.
func choosePlan(oldSize, newSize int64) savePlan {
	if oldSize > 0 && newSize <= oldSize {
		return planInPlace
	}
	return planRewrite
}

// Save writes the tag to the file.
//
// If the tag, without its padding, fits into the space of the tag on
// disk, the padding is adjusted to fill that space exactly and the tag
// is overwritten in place. Otherwise the padding is reset to the
// configured padding and the file is rewritten through a temporary
// file named path + ".tmp", which is left behind if it cannot be moved
// over the original.
//
// A file whose tag has not changed since it was read is not written.
func (f *File) Save() error {
	if err := f.writable(); err != nil {
		return err
	}
	t := f.tag
	if f.opts.audioSizeFrame {
		if n := f.AudioSize(); n > 0 {
			if err := t.SetTextInt(FrameSize, int(n)); err != nil {
				return err
			}
		}
	}
	if f.hasTag && !t.Dirty() {
		Logging.Println(f.path + ": tag unchanged, not saving")
		return nil
	}

	if err := t.Flush(); err != nil {
		return err
	}
	newSize := int64(t.Size() - t.Padding())
	plan := choosePlan(f.tagSize, newSize)
	if plan == planInPlace {
		if err := t.SetPadding(int(f.tagSize - newSize)); err != nil {
			return err
		}
		if err := t.Flush(); err != nil {
			return err
		}
		// Unsynchronisation can grow the padded tag.
		if int64(t.Size()) != f.tagSize {
			plan = planRewrite
		}
	}

	Logging.Printf("%s: saving %d byte tag (%s)", f.path, newSize, plan)
	var err error
	if plan == planInPlace {
		err = f.writeInPlace()
	} else {
		err = f.rewrite()
	}
	if err != nil {
		return err
	}
	f.hasTag = true
	return nil
}

func (f *File) writeInPlace() (err error) {
	b, err := f.tag.Bytes()
	if err != nil {
		return err
	}
	fh, err := f.opts.fs.OpenFile(f.path, os.O_WRONLY, 0)
	if err != nil {
		return &IOError{Op: "open", Path: f.path, Err: err}
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: f.path, Err: cerr}
		}
	}()
	if _, err := fh.WriteAt(b, 0); err != nil {
		return &IOError{Op: "write tag", Path: f.path, Err: err}
	}
	return nil
}

func (f *File) rewrite() error {
	t := f.tag
	if err := t.SetPadding(f.opts.padding); err != nil {
		return err
	}
	b, err := t.Bytes()
	if err != nil {
		return err
	}
	audio := f.AudioSize()
	tmp := f.path + ".tmp"

	if err := f.writeTemp(tmp, b, audio); err != nil {
		if rerr := f.opts.fs.Remove(tmp); rerr != nil && !os.IsNotExist(rerr) {
			Logging.Printf("%s: removing: %v", tmp, rerr)
		}
		return err
	}
	if err := f.opts.fs.Remove(f.path); err != nil {
		return &IOError{Op: "delete", Path: f.path, Err: err}
	}
	if err := f.opts.fs.Rename(tmp, f.path); err != nil {
		return &IOError{Op: "rename", Path: tmp, Err: err}
	}

	f.tagSize = int64(len(b))
	f.fileSize = f.tagSize + audio
	return nil
}

// writeTemp writes tag followed by the audio of the original file to
// tmp.
func (f *File) writeTemp(tmp string, tag []byte, audio int64) (err error) {
	in, err := f.opts.fs.Open(f.path)
	if err != nil {
		return &IOError{Op: "open", Path: f.path, Err: err}
	}
	defer closeQuietly(in, f.path)

	out, err := f.opts.fs.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &IOError{Op: "create", Path: tmp, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: tmp, Err: cerr}
		}
	}()

	if _, err := out.Write(tag); err != nil {
		return &IOError{Op: "write tag", Path: tmp, Err: err}
	}
	if _, err := in.Seek(f.tagSize, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Path: f.path, Err: err}
	}
	n, err := io.Copy(out, in)
	if err != nil {
		return &IOError{Op: "copy audio", Path: f.path, Err: err}
	}
	if n != audio {
		return &IOError{Op: "copy audio", Path: f.path,
			Err: errors.Wrapf(ErrAudioSizeMismatch, "copied %d bytes, expected %d", n, audio)}
	}
	return nil
}
