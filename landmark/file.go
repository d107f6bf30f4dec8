// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package landmark

import (
	"context"
	"image"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// landmarkFile is the on-disk layout. JSON files decode as well.
//
//	width: 1024
//	height: 768
//	faces:
//	  - rect: [x, y, w, h]
//	    points: [[x, y], ...]
type landmarkFile struct {
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Faces  []fileFace `yaml:"faces"`
}

type fileFace struct {
	Rect   []int       `yaml:"rect"`
	Points [][]float64 `yaml:"points"`
}

// FileDetector serves faces recorded in a landmark file. Coordinates are
// scaled from the recorded image size to the size of the image passed to
// Detect.
type FileDetector struct {
	width, height int
	faces         []Face
}

func NewFileDetector(path string) (*FileDetector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "landmark: open landmark file")
	}
	defer f.Close()

	d, err := ReadFileDetector(f)
	if err != nil {
		return nil, errors.Wrapf(err, "landmark: %s", path)
	}
	return d, nil
}

// ReadFileDetector decodes a landmark file from r.
func ReadFileDetector(r io.Reader) (*FileDetector, error) {
	var lf landmarkFile
	if err := yaml.NewDecoder(r).Decode(&lf); err != nil {
		return nil, errors.Wrap(err, "decode landmarks")
	}
	if lf.Width < 0 || lf.Height < 0 {
		return nil, errors.Errorf("negative image size %dx%d", lf.Width, lf.Height)
	}

	d := &FileDetector{width: lf.Width, height: lf.Height}
	for i, ff := range lf.Faces {
		if len(ff.Rect) != 4 {
			return nil, errors.Errorf("face %d: rect has %d values, want 4", i, len(ff.Rect))
		}
		face := Face{
			Rect:   image.Rect(ff.Rect[0], ff.Rect[1], ff.Rect[0]+ff.Rect[2], ff.Rect[1]+ff.Rect[3]),
			Points: make([]image.Point, len(ff.Points)),
		}
		for j, p := range ff.Points {
			if len(p) != 2 {
				return nil, errors.Errorf("face %d: point %d has %d values, want 2", i, j, len(p))
			}
			face.Points[j] = image.Point{X: int(math.Round(p[0])), Y: int(math.Round(p[1]))}
		}
		d.faces = append(d.faces, face)
	}
	return d, nil
}

func (d *FileDetector) Detect(ctx context.Context, img image.Image) ([]Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sx, sy := 1.0, 1.0
	if b := img.Bounds(); d.width > 0 && d.height > 0 {
		sx = float64(b.Dx()) / float64(d.width)
		sy = float64(b.Dy()) / float64(d.height)
	}

	scale := func(p image.Point) image.Point {
		return image.Point{
			X: int(math.Round(float64(p.X) * sx)),
			Y: int(math.Round(float64(p.Y) * sy)),
		}
	}
	out := make([]Face, len(d.faces))
	for i, f := range d.faces {
		out[i] = Face{
			Rect:   image.Rectangle{Min: scale(f.Rect.Min), Max: scale(f.Rect.Max)},
			Points: make([]image.Point, len(f.Points)),
		}
		for j, p := range f.Points {
			out[i].Points[j] = scale(p)
		}
	}
	return out, nil
}

// WriteFile stores faces detected on an image of the given size in the
// landmark file layout.
func WriteFile(w io.Writer, size image.Point, faces []Face) error {
	lf := landmarkFile{Width: size.X, Height: size.Y}
	for _, f := range faces {
		ff := fileFace{Rect: []int{f.Rect.Min.X, f.Rect.Min.Y, f.Rect.Dx(), f.Rect.Dy()}}
		for _, p := range f.Points {
			ff.Points = append(ff.Points, []float64{float64(p.X), float64(p.Y)})
		}
		lf.Faces = append(lf.Faces, ff)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&lf); err != nil {
		return errors.Wrap(err, "landmark: encode landmarks")
	}
	return errors.Wrap(enc.Close(), "landmark: encode landmarks")
}
