// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package landmark provides facial landmarks for the triangulation: a
// detector interface, a file backed detector and the dlib adapter.
package landmark

import (
	"context"
	"image"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// NumLandmarks is the size of the dlib 68 point shape model.
const NumLandmarks = 68

var (
	ErrNoFace              = errors.New("landmark: no face detected")
	ErrDetectorUnavailable = errors.New("landmark: dlib detector not compiled in (build with -tags dlib)")
	ErrLandmarkCount       = errors.New("landmark: unexpected number of landmarks")
)

// subset28 picks 28 of the 68 landmarks: jaw line, brows, nose bridge and
// tip, eye corners and mouth corners.
var subset28 = [28]int{
	0, 2, 4, 6, 8, 10, 12, 14, 16,
	18, 20, 21, 22, 23, 25,
	27, 29, 30, 31, 35,
	36, 39, 42, 45,
	48, 51, 54, 57,
}

// Face is a detected face with its landmarks in image coordinates.
type Face struct {
	Rect   image.Rectangle
	Points []image.Point
}

type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]Face, error)
}

// First returns the first detected face.
func First(faces []Face) (Face, error) {
	if len(faces) == 0 {
		return Face{}, ErrNoFace
	}
	return faces[0], nil
}

// Subset28 keeps the 28 landmark subset of a 68 point face.
func Subset28(points []image.Point) ([]image.Point, error) {
	if len(points) != NumLandmarks {
		return nil, errors.Wrapf(ErrLandmarkCount, "subset28: got %d points, want %d", len(points), NumLandmarks)
	}
	out := make([]image.Point, len(subset28))
	for i, idx := range subset28 {
		out[i] = points[idx]
	}
	return out, nil
}

// ToR2 converts landmarks to points for the triangulation.
func ToR2(points []image.Point) []r2.Point {
	out := make([]r2.Point, len(points))
	for i, p := range points {
		out[i] = r2.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}
