// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

const numSentinels = 3

// State is the lifecycle stage of a Subdivision.
type State int

const (
	Empty State = iota
	Seeded
	Finalized
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Seeded:
		return "seeded"
	case Finalized:
		return "finalized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type triangle struct {
	// v is counter-clockwise, n[i] is the triangle across the edge opposite
	// v[i] or -1.
	v [3]int
	n [3]int
}

// Subdivision is an incrementally built Delaunay triangulation of points in
// a rectangle. The zero value is Empty and accepts no points; use
// NewSubdivision.
//
// NOTE: a Subdivision is not safe for concurrent use.
type Subdivision struct {
	opts   Options
	bounds r2.Rect
	center r2.Point

	// The first numSentinels vertices are the super-triangle.
	vertices []vertex
	tris     []triangle
	last     int

	state  State
	result *Triangulation
}

// NewSubdivision returns a Seeded subdivision that accepts points inside
// bounds.
func NewSubdivision(bounds r2.Rect, setters ...Option) (*Subdivision, error) {
	opts := defaultOptions()
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if !finiteRect(bounds) || !(bounds.X.Length() > 0) || !(bounds.Y.Length() > 0) {
		return nil, fmt.Errorf("delaunay: bounds %v: %w", bounds, ErrDegenerateInput)
	}

	s := &Subdivision{
		opts:   opts,
		bounds: bounds,
		center: bounds.Center(),
	}
	for i, u := range sentinelDirs {
		s.vertices = append(s.vertices, vertex{p: u, sentinel: true, id: i})
	}
	s.tris = append(s.tris, triangle{v: [3]int{0, 1, 2}, n: [3]int{-1, -1, -1}})
	s.state = Seeded
	return s, nil
}

func (s *Subdivision) State() State {
	return s.state
}

func (s *Subdivision) Bounds() r2.Rect {
	return s.bounds
}

// NumPoints returns the number of inserted points.
func (s *Subdivision) NumPoints() int {
	return max(len(s.vertices)-numSentinels, 0)
}

// Point returns the inserted point with index i.
func (s *Subdivision) Point(i int) r2.Point {
	if i < 0 || i >= s.NumPoints() {
		panic("Point: index out of range")
	}
	return s.vertices[i+numSentinels].p
}

// Points returns a copy of the inserted points in insertion order.
func (s *Subdivision) Points() []r2.Point {
	pts := make([]r2.Point, s.NumPoints())
	for i := range pts {
		pts[i] = s.vertices[i+numSentinels].p
	}
	return pts
}

// Insert adds p and restores the Delaunay property. It returns the index of
// the vertex, which is the existing one if p was merged as a duplicate. On
// error the subdivision is unchanged and the error is a *PointError.
func (s *Subdivision) Insert(p r2.Point) (int, error) {
	idx := s.NumPoints()
	fail := func(err error) (int, error) {
		return -1, &PointError{Op: "insert", Index: idx, Point: p, Err: err}
	}
	if s.state != Seeded {
		return fail(ErrInvalidState)
	}
	if !finitePoint(p) || !s.bounds.ContainsPoint(p) {
		return fail(ErrOutOfBounds)
	}

	q := vertex{p: p}
	t, edge, ok := s.locate(q)
	if !ok {
		return fail(errors.New("delaunay: point location failed"))
	}
	if dup := s.nearestVertex(t, p); dup >= 0 {
		if s.opts.Duplicates == MergeDuplicates {
			s.opts.Logger.Debug("merge duplicate",
				zap.Int("index", idx), zap.Int("vertex", dup-numSentinels))
			return dup - numSentinels, nil
		}
		return fail(ErrDuplicatePoint)
	}
	if edge >= 0 && s.tris[t].n[edge] < 0 {
		return fail(ErrOutOfBounds)
	}

	v := len(s.vertices)
	s.vertices = append(s.vertices, q)
	var stack []int
	if edge < 0 {
		stack = s.splitTriangle(t, v)
	} else {
		stack = s.splitEdge(t, edge, v)
	}
	s.last = stack[0]
	flips := s.legalize(stack)

	s.opts.Logger.Debug("insert",
		zap.Int("index", idx),
		zap.Float64("x", p.X),
		zap.Float64("y", p.Y),
		zap.Bool("onEdge", edge >= 0),
		zap.Int("flips", flips),
	)
	return idx, nil
}

// InsertAll inserts pts in order and stops at the first failure. It returns
// the number of points processed successfully. The Index of a returned
// *PointError is the position of the point in pts.
func (s *Subdivision) InsertAll(pts []r2.Point) (int, error) {
	for i, p := range pts {
		if _, err := s.Insert(p); err != nil {
			var pe *PointError
			if errors.As(err, &pe) {
				pe.Index = i
			}
			return i, err
		}
	}
	return len(pts), nil
}

// Triangles yields the current triangles between inserted points. Vertex
// indices refer to insertion order. The sequence may be iterated several
// times; it must not be used while the subdivision is being modified.
func (s *Subdivision) Triangles() iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		if s.result != nil {
			for _, t := range s.result.Triangles {
				if !yield(t) {
					return
				}
			}
			return
		}
		for _, t := range s.tris {
			tri, ok := realTriangle(t)
			if !ok {
				continue
			}
			if !yield(tri) {
				return
			}
		}
	}
}

// TriangleList collects Triangles into a slice.
func (s *Subdivision) TriangleList() []Triangle {
	var out []Triangle
	for t := range s.Triangles() {
		out = append(out, t)
	}
	return out
}

// Finalize drops the super-triangle and returns the triangulation of the
// inserted points. Calling it again returns the same result.
func (s *Subdivision) Finalize() (*Triangulation, error) {
	switch s.state {
	case Finalized:
		return s.result, nil
	case Seeded:
	default:
		return nil, fmt.Errorf("delaunay: finalize %v subdivision: %w", s.state, ErrInvalidState)
	}

	n := s.NumPoints()
	if n < 3 {
		return nil, fmt.Errorf("delaunay: %d points: %w", n, ErrDegenerateInput)
	}
	tris := s.TriangleList()
	if len(tris) == 0 {
		return nil, fmt.Errorf("delaunay: %d collinear points: %w", n, ErrDegenerateInput)
	}

	dt := newTriangulation(s.bounds, s.Points(), tris)
	s.result = dt
	s.state = Finalized
	s.tris = nil
	s.opts.Logger.Debug("finalize",
		zap.Int("points", n), zap.Int("triangles", len(dt.Triangles)))
	return dt, nil
}

// locate walks from the last created triangle towards q. It returns the
// triangle holding q and the index of the vertex opposite the edge q lies
// on, or -1 when q is strictly inside.
func (s *Subdivision) locate(q vertex) (t, edge int, ok bool) {
	t = s.last
	if t < 0 || t >= len(s.tris) {
		t = 0
	}
	maxSteps := 4*len(s.tris) + 16
	for step := range maxSteps {
		next, edge, inside := s.visit(t, q, step%3)
		if inside {
			return t, edge, true
		}
		if next < 0 {
			break
		}
		t = next
	}

	for t := range s.tris {
		if _, edge, inside := s.visit(t, q, 0); inside {
			return t, edge, true
		}
	}
	return -1, -1, false
}

// visit tests q against the edges of t starting at edge first. It returns
// the neighbor to move to, or inside set when no edge separates q from t.
func (s *Subdivision) visit(t int, q vertex, first int) (next, edge int, inside bool) {
	tri := s.tris[t]
	edge = -1
	zeros := 0
	for k := range 3 {
		i := (first + k) % 3
		a, b := s.vertices[tri.v[(i+1)%3]], s.vertices[tri.v[(i+2)%3]]
		switch s.orient(a, b, q) {
		case -1:
			return tri.n[i], -1, false
		case 0:
			edge = i
			zeros++
		}
	}
	if zeros > 1 {
		// q is a vertex of t.
		edge = -1
	}
	return -1, edge, true
}

// nearestVertex returns the closest real vertex within eps of p, or -1. The
// search starts at t, the triangle containing p, and crosses every edge that
// passes within eps of p. The triangles met that way cover the eps disc, so
// no vertex inside it is missed even behind a fan of slivers.
func (s *Subdivision) nearestVertex(t int, p r2.Point) int {
	best, bestDist := -1, s.opts.Eps
	seen := []int{t}
	for next := 0; next < len(seen); next++ {
		tri := s.tris[seen[next]]
		for i, v := range tri.v {
			if v >= numSentinels {
				if d := s.vertices[v].p.Sub(p).Norm(); d < bestDist {
					best, bestDist = v, d
				}
			}
			u := tri.n[i]
			if u < 0 || slices.Contains(seen, u) {
				continue
			}
			if s.edgeDist(tri.v[(i+1)%3], tri.v[(i+2)%3], p) < s.opts.Eps {
				seen = append(seen, u)
			}
		}
	}
	return best
}

// edgeDist returns the distance from p to the edge a-b. An edge to a sentinel
// is the ray from its real endpoint towards the sentinel direction.
func (s *Subdivision) edgeDist(a, b int, p r2.Point) float64 {
	va, vb := s.vertices[a], s.vertices[b]
	switch {
	case va.sentinel && vb.sentinel:
		return math.Inf(1)
	case va.sentinel:
		return rayDist(vb.p, va.p, p)
	case vb.sentinel:
		return rayDist(va.p, vb.p, p)
	}
	d := vb.p.Sub(va.p)
	l := d.Dot(d)
	if l == 0 {
		return p.Sub(va.p).Norm()
	}
	f := math.Max(0, math.Min(1, p.Sub(va.p).Dot(d)/l))
	return p.Sub(va.p.Add(d.Mul(f))).Norm()
}

func rayDist(o, dir, p r2.Point) float64 {
	f := math.Max(0, p.Sub(o).Dot(dir))
	return p.Sub(o.Add(dir.Mul(f))).Norm()
}

// splitTriangle replaces t = (a, b, c) with (p, b, c), (p, c, a) and
// (p, a, b).
func (s *Subdivision) splitTriangle(t, p int) []int {
	tri := s.tris[t]
	a, b, c := tri.v[0], tri.v[1], tri.v[2]
	na, nb, nc := tri.n[0], tri.n[1], tri.n[2]
	t1, t2 := len(s.tris), len(s.tris)+1

	s.tris[t] = triangle{v: [3]int{p, b, c}, n: [3]int{na, t1, t2}}
	s.tris = append(s.tris,
		triangle{v: [3]int{p, c, a}, n: [3]int{nb, t2, t}},
		triangle{v: [3]int{p, a, b}, n: [3]int{nc, t, t1}},
	)
	s.replaceNeighbor(nb, t, t1)
	s.replaceNeighbor(nc, t, t2)
	return []int{t, t1, t2}
}

// splitEdge inserts p on the edge of t opposite t.v[i], splitting t and the
// triangle across that edge into four.
func (s *Subdivision) splitEdge(t, i, p int) []int {
	tri := s.tris[t]
	a, b, c := tri.v[i], tri.v[(i+1)%3], tri.v[(i+2)%3]
	u, nb, nc := tri.n[i], tri.n[(i+1)%3], tri.n[(i+2)%3]

	j := s.neighborSlot(u, t)
	opp := s.tris[u]
	d := opp.v[j]
	mc, mb := opp.n[(j+1)%3], opp.n[(j+2)%3]

	tb, td := len(s.tris), len(s.tris)+1
	s.tris[t] = triangle{v: [3]int{p, c, a}, n: [3]int{nb, tb, td}}
	s.tris[u] = triangle{v: [3]int{p, b, d}, n: [3]int{mc, td, tb}}
	s.tris = append(s.tris,
		triangle{v: [3]int{p, a, b}, n: [3]int{nc, u, t}},
		triangle{v: [3]int{p, d, c}, n: [3]int{mb, t, u}},
	)
	s.replaceNeighbor(nc, t, tb)
	s.replaceNeighbor(mb, u, td)
	return []int{t, tb, u, td}
}

// legalize flips edges opposite the new vertex until every triangle on the
// stack is locally Delaunay. Every triangle on the stack has the new vertex
// at index 0.
func (s *Subdivision) legalize(stack []int) int {
	flips := 0
	maxFlips := 16*len(s.tris) + 64
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		u := s.tris[t].n[0]
		if u < 0 {
			continue
		}
		j := s.neighborSlot(u, t)
		if !s.shouldFlip(t, u, j) {
			continue
		}
		if flips == maxFlips {
			s.opts.Logger.Warn("legalize: flip limit reached", zap.Int("flips", flips))
			break
		}
		s.flip(t, u, j)
		flips++
		stack = append(stack, t, u)
	}
	return flips
}

// shouldFlip reports whether the edge shared by t = (p, b, c) and its
// neighbor u, whose vertex j is opposite that edge, is illegal.
func (s *Subdivision) shouldFlip(t, u, j int) bool {
	tv := s.tris[t].v
	d := s.tris[u].v[j]
	v := s.vertices
	if in := s.inCircle(v[tv[0]], v[tv[1]], v[tv[2]], v[d]); in != 0 {
		return in > 0
	}
	// Four cocircular points: keep the diagonal that avoids the
	// lexicographically smallest of them.
	least := tv[0]
	for _, w := range [3]int{tv[1], tv[2], d} {
		if lessPoint(v[w].p, v[least].p) {
			least = w
		}
	}
	return least == tv[1] || least == tv[2]
}

// flip replaces t = (p, b, c) and u = (d, c, b) with (p, b, d) and
// (p, d, c).
func (s *Subdivision) flip(t, u, j int) {
	tt, ut := s.tris[t], s.tris[u]
	p, b, c := tt.v[0], tt.v[1], tt.v[2]
	tb, tc := tt.n[1], tt.n[2]
	d := ut.v[j]
	uc, ub := ut.n[(j+1)%3], ut.n[(j+2)%3]

	s.tris[t] = triangle{v: [3]int{p, b, d}, n: [3]int{uc, u, tc}}
	s.tris[u] = triangle{v: [3]int{p, d, c}, n: [3]int{ub, tb, t}}
	s.replaceNeighbor(uc, u, t)
	s.replaceNeighbor(tb, t, u)
}

// neighborSlot returns the index of the vertex of u opposite its edge
// shared with t.
func (s *Subdivision) neighborSlot(u, t int) int {
	for j, n := range s.tris[u].n {
		if n == t {
			return j
		}
	}
	panic("delaunay: inconsistent adjacency")
}

func (s *Subdivision) replaceNeighbor(t, old, new int) {
	if t < 0 {
		return
	}
	for i, n := range s.tris[t].n {
		if n == old {
			s.tris[t].n[i] = new
			return
		}
	}
}

// realTriangle converts t to insertion indices, rotated so that the
// smallest index comes first.
func realTriangle(t triangle) (Triangle, bool) {
	for _, v := range t.v {
		if v < numSentinels {
			return Triangle{}, false
		}
	}
	return canonical(Triangle{t.v[0] - numSentinels, t.v[1] - numSentinels, t.v[2] - numSentinels}), true
}

func lessPoint(a, b r2.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func finitePoint(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func finiteRect(r r2.Rect) bool {
	return finitePoint(r.Lo()) && finitePoint(r.Hi())
}
