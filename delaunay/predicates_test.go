// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"testing"

	"github.com/golang/geo/r2"
)

func sentinel(i int) vertex {
	return vertex{p: sentinelDirs[i], sentinel: true, id: i}
}

func realVertex(x, y float64) vertex {
	return vertex{p: r2.Point{X: x, Y: y}}
}

func TestSentinelDirs(t *testing.T) {
	for i, u := range sentinelDirs {
		if n := u.Norm(); n < 1-1e-12 || n > 1+1e-12 {
			t.Errorf("sentinelDirs[%d] norm = %v, want 1", i, n)
		}
		if u.X == 0 || u.Y == 0 {
			t.Errorf("sentinelDirs[%d] = %v lies on an axis", i, u)
		}
	}
	for i := range 3 {
		j := (i + 1) % 3
		if sentinelDirs[i].Cross(sentinelDirs[j]) <= 0 {
			t.Errorf("sentinelDirs[%d], sentinelDirs[%d] are not counter-clockwise", i, j)
		}
	}
}

func TestOrient_Sentinels(t *testing.T) {
	s := mustNewSubdivision(t)
	a, b := realVertex(2, 2), realVertex(8, 3)

	tests := []struct {
		name    string
		x, y, z vertex
		want    int
	}{
		{"super-triangle", sentinel(0), sentinel(1), sentinel(2), 1},
		{"super-triangle reversed", sentinel(0), sentinel(2), sentinel(1), -1},
		{"real inside super-triangle", sentinel(0), sentinel(1), a, 1},
		{"real with reversed sentinels", a, sentinel(1), sentinel(0), -1},
		{"real real real", a, b, realVertex(5, 9), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.orient(tt.x, tt.y, tt.z); got != tt.want {
				t.Errorf("orient(...) = %d, want %d", got, tt.want)
			}
			// Cyclic rotations keep the sign.
			if got := s.orient(tt.y, tt.z, tt.x); got != tt.want {
				t.Errorf("orient(rotated) = %d, want %d", got, tt.want)
			}
		})
	}

	for i := range 3 {
		u := sentinel(i)
		if got, rev := s.orient(a, b, u), s.orient(b, a, u); got != -rev || got == 0 {
			t.Errorf("orient(a, b, S%d) = %d, orient(b, a, S%d) = %d, want opposite non-zero", i, got, i, rev)
		}
	}
}

func TestInCircle_Sentinels(t *testing.T) {
	s := mustNewSubdivision(t)
	a, b := realVertex(2, 2), realVertex(8, 2)

	// Find the sentinel lying to the left of a->b, so (a, b, S) is CCW.
	left := -1
	for i := range 3 {
		if s.orient(a, b, sentinel(i)) > 0 {
			left = i
			break
		}
	}
	if left < 0 {
		t.Fatal("no sentinel left of a->b")
	}
	far := sentinel(left)

	tests := []struct {
		name string
		d    vertex
		want int
	}{
		{"left half-plane", realVertex(5, 7), 1},
		{"right half-plane", realVertex(5, 1), -1},
		{"on chord", realVertex(5, 2), 1},
		{"on line outside chord", realVertex(9, 2), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.inCircle(a, b, far, tt.d); got != tt.want {
				t.Errorf("inCircle(a, b, S, %v) = %d, want %d", tt.d.p, got, tt.want)
			}
		})
	}

	if got := s.inCircle(sentinel(0), sentinel(1), sentinel(2), a); got != 1 {
		t.Errorf("inCircle(super-triangle, real) = %d, want 1", got)
	}
	if got := s.inCircle(a, b, realVertex(5, 6), sentinel(0)); got != -1 {
		t.Errorf("inCircle(real triangle, sentinel) = %d, want -1", got)
	}
}

func TestRotateSentinelsLast(t *testing.T) {
	a := realVertex(1, 1)
	tests := []struct {
		name    string
		x, y, z vertex
	}{
		{"sentinel first", sentinel(0), a, realVertex(2, 2)},
		{"sentinel middle", a, sentinel(0), realVertex(2, 2)},
		{"two sentinels", sentinel(1), sentinel(2), a},
		{"two sentinels split", sentinel(1), a, sentinel(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := rotateSentinelsLast(tt.x, tt.y, tt.z)
			if x.sentinel {
				t.Errorf("rotateSentinelsLast(...) first = %+v, want real", x)
			}
			if y.sentinel && !z.sentinel {
				t.Errorf("rotateSentinelsLast(...) = %+v %+v, want sentinels last", y, z)
			}
		})
	}
}

func TestBetween(t *testing.T) {
	a, b := r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 4}
	tests := []struct {
		p    r2.Point
		want bool
	}{
		{r2.Point{X: 0, Y: 2}, true},
		{r2.Point{X: 0, Y: 0}, false},
		{r2.Point{X: 0, Y: 5}, false},
		{r2.Point{X: 0, Y: -1}, false},
	}
	for _, tt := range tests {
		if got := between(a, b, tt.p); got != tt.want {
			t.Errorf("between(%v, %v, %v) = %v, want %v", a, b, tt.p, got, tt.want)
		}
	}
}
