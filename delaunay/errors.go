// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"errors"
	"fmt"

	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/geom"
	"github.com/golang/geo/r2"
)

var (
	ErrOutOfBounds     = errors.New("delaunay: point outside bounds")
	ErrDuplicatePoint  = errors.New("delaunay: duplicate point")
	ErrInvalidState    = errors.New("delaunay: invalid state")
	ErrDegenerateInput = geom.ErrDegenerateInput
)

// PointError records the point that made an operation fail.
type PointError struct {
	Op    string
	Index int
	Point r2.Point
	Err   error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("%s point %d (%g, %g): %v", e.Op, e.Index, e.Point.X, e.Point.Y, e.Err)
}

func (e *PointError) Unwrap() error {
	return e.Err
}
