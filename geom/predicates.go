// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geom provides the planar primitives used by the triangulation:
// orientation and in-circle predicates, circumcenters and polygon helpers.
//
// The predicates are evaluated in float64 first. When the result lies inside
// a conservative error bound it is recomputed with exact rational
// arithmetic, so near-degenerate triples are never misclassified.
// All coordinates must be finite.
package geom

import (
	"errors"
	"math"
	"math/big"

	"github.com/golang/geo/r2"
)

const (
	// dblEpsilon is half the distance from 1.0 to the next float64 (2^-53).
	dblEpsilon = 1.1102230246251565e-16

	orientErrBound   = (3 + 16*dblEpsilon) * dblEpsilon
	inCircleErrBound = (10 + 96*dblEpsilon) * dblEpsilon
)

// ErrDegenerateInput is returned when an operation needs non-collinear input.
var ErrDegenerateInput = errors.New("geom: degenerate input")

// Orientation is the turn direction of an ordered point triple.
type Orientation int

const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "right"
	case CounterClockwise:
		return "left"
	}
	return "collinear"
}

// Orient reports on which side of the directed line a->b the point c lies.
// CounterClockwise means c is to the left.
func Orient(a, b, c r2.Point) Orientation {
	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight
	errBound := orientErrBound * (math.Abs(detLeft) + math.Abs(detRight))
	if det > errBound || -det > errBound {
		return Orientation(sign(det))
	}
	return Orientation(orientExact(a, b, c))
}

// CrossSign returns the sign of cross(b-a, u).
func CrossSign(a, b, u r2.Point) int {
	t1 := (b.X - a.X) * u.Y
	t2 := (b.Y - a.Y) * u.X
	det := t1 - t2
	errBound := orientErrBound * (math.Abs(t1) + math.Abs(t2))
	if det > errBound || -det > errBound {
		return sign(det)
	}
	ex := new(big.Rat).Sub(rat(b.X), rat(a.X))
	ey := new(big.Rat).Sub(rat(b.Y), rat(a.Y))
	l := new(big.Rat).Mul(ex, rat(u.Y))
	r := new(big.Rat).Mul(ey, rat(u.X))
	return l.Cmp(r)
}

// DotSign returns the sign of dot(b-a, u).
func DotSign(a, b, u r2.Point) int {
	t1 := (b.X - a.X) * u.X
	t2 := (b.Y - a.Y) * u.Y
	dot := t1 + t2
	errBound := orientErrBound * (math.Abs(t1) + math.Abs(t2))
	if dot > errBound || -dot > errBound {
		return sign(dot)
	}
	ex := new(big.Rat).Sub(rat(b.X), rat(a.X))
	ey := new(big.Rat).Sub(rat(b.Y), rat(a.Y))
	l := new(big.Rat).Mul(ex, rat(u.X))
	r := new(big.Rat).Mul(ey, rat(u.Y))
	return l.Add(l, r).Sign()
}

// InCircleSign returns +1 if p lies strictly inside the circle through a, b
// and c, -1 if it lies strictly outside and 0 if the four points are
// cocircular. The winding of a, b, c does not matter. Collinear a, b, c
// have no circumcircle and yield 0.
func InCircleSign(p, a, b, c r2.Point) int {
	o := Orient(a, b, c)
	if o == Collinear {
		return 0
	}
	return int(o) * inCircle(a, b, c, p)
}

// InCircle reports whether p lies strictly inside the circumcircle of the
// triangle a, b, c. Points on the circle are not inside.
func InCircle(p, a, b, c r2.Point) bool {
	return InCircleSign(p, a, b, c) > 0
}

// inCircle returns the sign of the lifted determinant, positive when d is
// inside the circle through the counter-clockwise triangle a, b, c.
func inCircle(a, b, c, d r2.Point) int {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	alift := adx*adx + ady*ady

	cdxady, adxcdy := cdx*ady, adx*cdy
	blift := bdx*bdx + bdy*bdy

	adxbdy, bdxady := adx*bdy, bdx*ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)
	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	errBound := inCircleErrBound * permanent
	if det > errBound || -det > errBound {
		return sign(det)
	}
	return inCircleExact(a, b, c, d)
}

func orientExact(a, b, c r2.Point) int {
	acx := new(big.Rat).Sub(rat(a.X), rat(c.X))
	acy := new(big.Rat).Sub(rat(a.Y), rat(c.Y))
	bcx := new(big.Rat).Sub(rat(b.X), rat(c.X))
	bcy := new(big.Rat).Sub(rat(b.Y), rat(c.Y))
	l := new(big.Rat).Mul(acx, bcy)
	r := new(big.Rat).Mul(acy, bcx)
	return l.Cmp(r)
}

func inCircleExact(a, b, c, d r2.Point) int {
	dx, dy := rat(d.X), rat(d.Y)
	sub := func(v float64, o *big.Rat) *big.Rat { return new(big.Rat).Sub(rat(v), o) }
	adx, ady := sub(a.X, dx), sub(a.Y, dy)
	bdx, bdy := sub(b.X, dx), sub(b.Y, dy)
	cdx, cdy := sub(c.X, dx), sub(c.Y, dy)

	lift := func(x, y *big.Rat) *big.Rat {
		xx := new(big.Rat).Mul(x, x)
		return xx.Add(xx, new(big.Rat).Mul(y, y))
	}
	cross := func(x0, y0, x1, y1 *big.Rat) *big.Rat {
		l := new(big.Rat).Mul(x0, y1)
		return l.Sub(l, new(big.Rat).Mul(y0, x1))
	}

	det := new(big.Rat).Mul(lift(adx, ady), cross(bdx, bdy, cdx, cdy))
	det.Add(det, new(big.Rat).Mul(lift(bdx, bdy), cross(cdx, cdy, adx, ady)))
	det.Add(det, new(big.Rat).Mul(lift(cdx, cdy), cross(adx, ady, bdx, bdy)))
	return det.Sign()
}

func rat(f float64) *big.Rat {
	return new(big.Rat).SetFloat64(f)
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}
