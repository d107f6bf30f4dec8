// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Frames shows intermediate images inline on terminals that support the
// iTerm image protocol. A Frames writing to anything but a terminal is
// disabled and Show is a no-op.
type Frames struct {
	w       io.Writer
	delay   time.Duration
	enabled bool
	dir     string
	count   int
}

// NewFrames returns a Frames writing to w and sleeping delay after every
// shown frame.
func NewFrames(w io.Writer, delay time.Duration) *Frames {
	f := &Frames{w: w, delay: delay}
	if file, ok := w.(*os.File); ok {
		f.enabled = term.IsTerminal(int(file.Fd()))
	}
	return f
}

func (f *Frames) Enabled() bool {
	return f != nil && f.enabled
}

// Show writes img to the terminal and waits for the frame delay.
func (f *Frames) Show(img image.Image) error {
	if !f.Enabled() {
		return nil
	}
	if f.dir == "" {
		dir, err := os.MkdirTemp("", "facemesh-frames")
		if err != nil {
			return errors.Wrap(err, "frames dir")
		}
		f.dir = dir
	}

	f.count++
	path := filepath.Join(f.dir, "frame.png")
	if err := gg.SavePNG(path, img); err != nil {
		return errors.Wrapf(err, "frame %d", f.count)
	}
	if err := imgcat.CatFile(path, f.w); err != nil {
		return errors.Wrapf(err, "frame %d", f.count)
	}
	time.Sleep(f.delay)
	return nil
}

// Count reports how many frames were shown.
func (f *Frames) Count() int {
	if f == nil {
		return 0
	}
	return f.count
}

// Close removes the temporary frame files.
func (f *Frames) Close() error {
	if f == nil || f.dir == "" {
		return nil
	}
	err := os.RemoveAll(f.dir)
	f.dir = ""
	return err
}
