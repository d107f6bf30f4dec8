// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides seeded point sets and small helpers shared by the
// triangulation, the examples and the command line.

package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
	"golang.org/x/exp/constraints"
)

// GenerateRandomPoints generates cnt uniformly distributed points inside
// bounds. The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64, bounds r2.Rect) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	lo, size := bounds.Lo(), bounds.Size()
	for i := range cnt {
		points[i] = r2.Point{
			X: lo.X + random.Float64()*size.X,
			Y: lo.Y + random.Float64()*size.Y,
		}
	}

	return points
}

// Shuffle returns a seeded permutation of points. The input is not modified.
func Shuffle(points []r2.Point, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	out := make([]r2.Point, len(points))
	for i, j := range random.Perm(len(points)) {
		out[i] = points[j]
	}
	return out
}

// Clamp returns v limited to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
