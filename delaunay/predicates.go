// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"math"

	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/geom"
	"github.com/golang/geo/r2"
)

// The three sentinel vertices sit at center + M*dir for an arbitrarily large
// M. Predicates involving them are evaluated as the limit M -> inf, so the
// super-triangle behaves as if it were infinitely far away and never
// changes which real triangles are Delaunay.
//
// NOTE: the angular offset keeps the directions away from the axes so that
// no edge between real points is exactly parallel to one of them.
const sentinelOffset = 0.1234

var (
	sentinelDirs [3]r2.Point
	// sentinelCenters[i][j] is the circumcenter of (0, dir i, dir j).
	sentinelCenters [3][3]r2.Point
)

func init() {
	for i := range sentinelDirs {
		a := math.Pi/2 + sentinelOffset + float64(i)*2*math.Pi/3
		sentinelDirs[i] = r2.Point{X: math.Cos(a), Y: math.Sin(a)}
	}
	for i := range 3 {
		for j := range 3 {
			if i == j {
				continue
			}
			c, err := geom.Circumcenter(r2.Point{}, sentinelDirs[i], sentinelDirs[j])
			if err != nil {
				panic("delaunay: sentinel directions are collinear")
			}
			sentinelCenters[i][j] = c
		}
	}
}

type vertex struct {
	// p holds the direction for sentinel vertices.
	p        r2.Point
	sentinel bool
	// id is the sentinel number, 0..2.
	id int
}

// orient returns the sign of the orientation of a, b, c.
func (s *Subdivision) orient(a, b, c vertex) int {
	switch countSentinels(a, b, c) {
	case 0:
		return int(geom.Orient(a.p, b.p, c.p))
	case 1:
		x, y, z := rotateSentinelsLast(a, b, c)
		if o := geom.CrossSign(x.p, y.p, z.p); o != 0 {
			return o
		}
		return int(geom.Orient(x.p, y.p, s.center))
	case 2:
		_, y, z := rotateSentinelsLast(a, b, c)
		return cyclicSign(y.id, z.id)
	}
	return cyclicSign(a.id, b.id)
}

// inCircle returns +1 if d lies strictly inside the circumcircle of the
// counter-clockwise triangle a, b, c, -1 if outside and 0 only for four
// cocircular real points.
func (s *Subdivision) inCircle(a, b, c, d vertex) int {
	switch countSentinels(a, b, c) {
	case 0:
		if d.sentinel {
			return -1
		}
		return geom.InCircleSign(d.p, a.p, b.p, c.p)
	case 1:
		// The circle degenerates to the open half-plane left of x->y plus the
		// open chord between x and y.
		x, y, z := rotateSentinelsLast(a, b, c)
		if d.sentinel {
			return positive(geom.CrossSign(x.p, y.p, d.p.Sub(z.p)))
		}
		switch geom.Orient(x.p, y.p, d.p) {
		case geom.CounterClockwise:
			return 1
		case geom.Clockwise:
			return -1
		}
		if between(x.p, y.p, d.p) {
			return 1
		}
		return -1
	case 2:
		x, y, z := rotateSentinelsLast(a, b, c)
		w := sentinelCenters[y.id][z.id]
		if d.sentinel {
			return positive(sign(d.p.Dot(w) - 0.5))
		}
		return positive(geom.DotSign(x.p, d.p, w))
	}
	if d.sentinel {
		return -1
	}
	return 1
}

func countSentinels(a, b, c vertex) int {
	n := 0
	for _, v := range [3]vertex{a, b, c} {
		if v.sentinel {
			n++
		}
	}
	return n
}

// rotateSentinelsLast cyclically rotates the triple so that real vertices
// come first. The orientation is preserved.
func rotateSentinelsLast(a, b, c vertex) (vertex, vertex, vertex) {
	for range 3 {
		if !a.sentinel && (!b.sentinel || c.sentinel) {
			break
		}
		a, b, c = b, c, a
	}
	return a, b, c
}

func cyclicSign(i, j int) int {
	if j == (i+1)%3 {
		return 1
	}
	return -1
}

// between reports whether p lies strictly between a and b. The three points
// must be collinear.
func between(a, b, p r2.Point) bool {
	if a.X != b.X {
		return (a.X < p.X && p.X < b.X) || (b.X < p.X && p.X < a.X)
	}
	return (a.Y < p.Y && p.Y < b.Y) || (b.Y < p.Y && p.Y < a.Y)
}

func positive(v int) int {
	if v > 0 {
		return 1
	}
	return -1
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
