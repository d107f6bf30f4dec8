// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Circumcenter returns the center of the circle through a, b and c.
func Circumcenter(a, b, c r2.Point) (r2.Point, error) {
	if Orient(a, b, c) == Collinear {
		return r2.Point{}, ErrDegenerateInput
	}
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	bl := bx*bx + by*by
	cl := cx*cx + cy*cy
	ux := (cy*bl - by*cl) / d
	uy := (bx*cl - cx*bl) / d
	return r2.Point{X: a.X + ux, Y: a.Y + uy}, nil
}

// Area returns the signed area of the triangle a, b, c, positive when the
// triangle is counter-clockwise.
func Area(a, b, c r2.Point) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a))
}

// PolygonArea returns the signed shoelace area of poly.
func PolygonArea(poly []r2.Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	var s float64
	for i := range n {
		s += poly[i].Cross(poly[(i+1)%n])
	}
	return s / 2
}

// PolygonCentroid returns the area centroid of a simple polygon. Polygons
// without area fall back to the vertex average.
func PolygonCentroid(poly []r2.Point) r2.Point {
	n := len(poly)
	if n == 0 {
		return r2.Point{}
	}
	area := PolygonArea(poly)
	if math.Abs(area) < 1e-300 {
		var c r2.Point
		for _, p := range poly {
			c = c.Add(p)
		}
		return c.Mul(1 / float64(n))
	}
	var cx, cy float64
	for i := range n {
		p, q := poly[i], poly[(i+1)%n]
		f := p.Cross(q)
		cx += (p.X + q.X) * f
		cy += (p.Y + q.Y) * f
	}
	return r2.Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

// ClipPolygon clips poly against the rectangle r with the Sutherland-Hodgman
// algorithm. The result is counter-clockwise, without repeated consecutive
// vertices, and nil when nothing of poly lies inside r.
func ClipPolygon(poly []r2.Point, r r2.Rect) []r2.Point {
	type boundary struct {
		inside    func(p r2.Point) bool
		intersect func(p, q r2.Point) r2.Point
	}
	lo, hi := r.Lo(), r.Hi()
	atX := func(x float64) func(p, q r2.Point) r2.Point {
		return func(p, q r2.Point) r2.Point {
			t := (x - p.X) / (q.X - p.X)
			return r2.Point{X: x, Y: p.Y + t*(q.Y-p.Y)}
		}
	}
	atY := func(y float64) func(p, q r2.Point) r2.Point {
		return func(p, q r2.Point) r2.Point {
			t := (y - p.Y) / (q.Y - p.Y)
			return r2.Point{X: p.X + t*(q.X-p.X), Y: y}
		}
	}
	boundaries := [4]boundary{
		{func(p r2.Point) bool { return p.X >= lo.X }, atX(lo.X)},
		{func(p r2.Point) bool { return p.Y >= lo.Y }, atY(lo.Y)},
		{func(p r2.Point) bool { return p.X <= hi.X }, atX(hi.X)},
		{func(p r2.Point) bool { return p.Y <= hi.Y }, atY(hi.Y)},
	}

	out := append([]r2.Point(nil), poly...)
	for _, b := range boundaries {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]r2.Point, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch curIn, prevIn := b.inside(cur), b.inside(prev); {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn:
				out = append(out, b.intersect(prev, cur), cur)
			case prevIn:
				out = append(out, b.intersect(prev, cur))
			}
			prev = cur
		}
	}

	// Interpolated coordinates may overshoot the rectangle by rounding.
	for i := range out {
		out[i] = r.ClampPoint(out[i])
	}
	out = dedupe(out)
	if len(out) < 3 {
		return nil
	}
	if PolygonArea(out) < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func dedupe(poly []r2.Point) []r2.Point {
	if len(poly) == 0 {
		return poly
	}
	out := poly[:1]
	for _, p := range poly[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
