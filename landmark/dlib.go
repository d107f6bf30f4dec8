// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

//go:build dlib

package landmark

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"

	face "github.com/Kagami/go-face"
	"github.com/pkg/errors"
)

// DlibDetector runs the dlib face detector and shape predictor. modelsDir
// must hold the dlib model files expected by go-face.
type DlibDetector struct {
	rec *face.Recognizer
}

func NewDlibDetector(modelsDir string) (*DlibDetector, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "landmark: load dlib models from %s", modelsDir)
	}
	return &DlibDetector{rec: rec}, nil
}

func (d *DlibDetector) Detect(ctx context.Context, img image.Image) ([]Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, errors.Wrap(err, "landmark: encode image for dlib")
	}
	found, err := d.rec.Recognize(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "landmark: dlib detect")
	}
	faces := make([]Face, len(found))
	for i, f := range found {
		faces[i] = Face{Rect: f.Rectangle, Points: f.Shapes}
	}
	return faces, nil
}

func (d *DlibDetector) Close() error {
	d.rec.Close()
	return nil
}
