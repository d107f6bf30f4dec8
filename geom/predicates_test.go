// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestOrient(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
		want    Orientation
	}{
		{"left", r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, r2.Point{X: 5, Y: 10}, CounterClockwise},
		{"right", r2.Point{X: 0, Y: 0}, r2.Point{X: 5, Y: 10}, r2.Point{X: 10, Y: 0}, Clockwise},
		{"collinear", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 3, Y: 3}, Collinear},
		{"collinear outside segment", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: -7, Y: -7}, Collinear},
		{
			// One ulp off the diagonal.
			"near degenerate",
			r2.Point{X: 0.5, Y: 0.5},
			r2.Point{X: 12, Y: 12},
			r2.Point{X: 24, Y: math.Nextafter(24, 25)},
			CounterClockwise,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Orient(tt.a, tt.b, tt.c); got != tt.want {
				t.Errorf("Orient(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

func TestOrient_Antisymmetric(t *testing.T) {
	pts := []r2.Point{{X: 0.1, Y: 0.7}, {X: 3.3, Y: -2.1}, {X: 1e-9, Y: 4}, {X: 17, Y: 17.000000001}}
	for _, a := range pts {
		for _, b := range pts {
			for _, c := range pts {
				if Orient(a, b, c) != -Orient(b, a, c) {
					t.Errorf("Orient(%v, %v, %v) != -Orient(%v, %v, %v)", a, b, c, b, a, c)
				}
				if Orient(a, b, c) != Orient(b, c, a) {
					t.Errorf("Orient(%v, %v, %v) not invariant under rotation", a, b, c)
				}
			}
		}
	}
}

func TestInCircleSign(t *testing.T) {
	a, b, c := r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, r2.Point{X: 10, Y: 10}
	tests := []struct {
		name string
		p    r2.Point
		want int
	}{
		{"inside", r2.Point{X: 5, Y: 5}, 1},
		{"outside", r2.Point{X: 20, Y: 20}, -1},
		{"on circle", r2.Point{X: 0, Y: 10}, 0},
		{"vertex", r2.Point{X: 10, Y: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InCircleSign(tt.p, a, b, c); got != tt.want {
				t.Errorf("InCircleSign(%v, ccw) = %v, want %v", tt.p, got, tt.want)
			}
			if got := InCircleSign(tt.p, a, c, b); got != tt.want {
				t.Errorf("InCircleSign(%v, cw) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestInCircle_StrictlyInside(t *testing.T) {
	a, b, c := r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, r2.Point{X: 0, Y: 10}
	if InCircle(r2.Point{X: 10, Y: 10}, a, b, c) {
		t.Errorf("InCircle(cocircular) = true, want false")
	}
	if !InCircle(r2.Point{X: 9.999, Y: 9.999}, a, b, c) {
		t.Errorf("InCircle(just inside) = false, want true")
	}
	if InCircle(r2.Point{X: 1, Y: 1}, a, b, r2.Point{X: 20, Y: 0}) {
		t.Errorf("InCircle(collinear triangle) = true, want false")
	}
}

func TestCircumcenter(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
		want    r2.Point
	}{
		{"right triangle", r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, r2.Point{X: 0, Y: 10}, r2.Point{X: 5, Y: 5}},
		{"isosceles", r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, r2.Point{X: 5, Y: 10}, r2.Point{X: 5, Y: 3.75}},
		{"clockwise", r2.Point{X: 0, Y: 10}, r2.Point{X: 10, Y: 0}, r2.Point{X: 0, Y: 0}, r2.Point{X: 5, Y: 5}},
	}
	opt := cmpopts.EquateApprox(0, 1e-12)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Circumcenter(tt.a, tt.b, tt.c)
			if err != nil {
				t.Fatalf("Circumcenter(...) error = %v, want nil", err)
			}
			if diff := cmp.Diff(tt.want, got, opt); diff != "" {
				t.Errorf("Circumcenter(...) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCircumcenter_Collinear(t *testing.T) {
	_, err := Circumcenter(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 2})
	if !errors.Is(err, ErrDegenerateInput) {
		t.Errorf("Circumcenter(collinear) error = %v, want %v", err, ErrDegenerateInput)
	}
}

func TestCrossSignDotSign(t *testing.T) {
	a, b := r2.Point{X: 1, Y: 1}, r2.Point{X: 3, Y: 1}
	if got := CrossSign(a, b, r2.Point{X: 0, Y: 1}); got != 1 {
		t.Errorf("CrossSign(up) = %v, want 1", got)
	}
	if got := CrossSign(a, b, r2.Point{X: 1, Y: 0}); got != 0 {
		t.Errorf("CrossSign(parallel) = %v, want 0", got)
	}
	if got := DotSign(a, b, r2.Point{X: -1, Y: 5}); got != -1 {
		t.Errorf("DotSign(back) = %v, want -1", got)
	}
	if got := DotSign(a, b, r2.Point{X: 0, Y: 5}); got != 0 {
		t.Errorf("DotSign(orthogonal) = %v, want 0", got)
	}
}

func BenchmarkInCircleSign(b *testing.B) {
	p := r2.Point{X: 3.1, Y: 2.7}
	t0, t1, t2 := r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0.5}, r2.Point{X: 4, Y: 9}
	b.ReportAllocs()
	for b.Loop() {
		InCircleSign(p, t0, t1, t2)
	}
}
