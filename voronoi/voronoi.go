// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voronoi implements planar Voronoi diagrams clipped to a rectangle,
// built as the dual of a Delaunay triangulation.

package voronoi

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/delaunay"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/geom"
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

var (
	ErrDegenerateInput = delaunay.ErrDegenerateInput
	ErrInvalidState    = delaunay.ErrInvalidState
)

// Diagram is the Voronoi diagram of the vertices of a triangulation.
type Diagram struct {
	Sites    []r2.Point
	Vertices []r2.Point

	// NOTE: Sort in CCW per Cell
	CellVertices []int
	CellOffsets  []int
	// NOTE: Sort in CCW per Cell. Hull cells have one neighbor more than
	// vertices.
	CellNeighbors       []int
	CellNeighborOffsets []int

	// Facets[i] is the cell of site i clipped to Bounds, counter-clockwise.
	Facets [][]r2.Point

	dt   *delaunay.Triangulation
	hull []bool
	opts Options
}

// Facet is a clipped Voronoi cell.
type Facet struct {
	Site    int
	Center  r2.Point
	Polygon []r2.Point
}

type Options struct {
	// Bounds is the clip rectangle. An empty rectangle selects the bounds of
	// the triangulation.
	Bounds r2.Rect
	Logger *zap.Logger
}

type Option func(*Options) error

func WithBounds(r r2.Rect) Option {
	return func(o *Options) error {
		if r.IsEmpty() || !(r.X.Length() > 0) || !(r.Y.Length() > 0) ||
			math.IsInf(r.X.Length(), 0) || math.IsInf(r.Y.Length(), 0) {
			return fmt.Errorf("WithBounds: invalid rectangle %v", r)
		}
		o.Bounds = r
		return nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
		return nil
	}
}

// NewDiagram computes the Voronoi diagram dual to dt.
func NewDiagram(dt *delaunay.Triangulation, setters ...Option) (*Diagram, error) {
	opts := Options{
		Bounds: r2.EmptyRect(),
		Logger: zap.NewNop(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if dt == nil {
		return nil, fmt.Errorf("voronoi: nil triangulation: %w", ErrInvalidState)
	}
	if opts.Bounds.IsEmpty() {
		opts.Bounds = dt.Bounds
	}

	vd := &Diagram{opts: opts}
	if err := vd.build(dt); err != nil {
		return nil, err
	}
	return vd, nil
}

// Facets returns the clipped cells of every vertex of dt.
func Facets(dt *delaunay.Triangulation, setters ...Option) ([]Facet, error) {
	vd, err := NewDiagram(dt, setters...)
	if err != nil {
		return nil, err
	}
	out := make([]Facet, vd.NumCells())
	for i := range out {
		out[i] = Facet{Site: i, Center: vd.Sites[i], Polygon: vd.Facets[i]}
	}
	return out, nil
}

func (vd *Diagram) build(dt *delaunay.Triangulation) error {
	numSites := dt.NumVertices()
	numTriangles := len(dt.Triangles)
	vd.dt = dt
	vd.Sites = dt.Vertices
	vd.Vertices = make([]r2.Point, numTriangles)
	vd.CellVertices = dt.IncidentTriangleIndices
	vd.CellOffsets = dt.IncidentTriangleOffsets
	vd.CellNeighbors = make([]int, 0, len(dt.IncidentTriangleIndices)+numSites)
	vd.CellNeighborOffsets = make([]int, numSites+1)
	vd.Facets = make([][]r2.Point, numSites)
	vd.hull = make([]bool, numSites)

	for i := range numTriangles {
		c, err := geom.Circumcenter(dt.TriangleVertices(i))
		if err != nil {
			return fmt.Errorf("voronoi: triangle %d %v: %w", i, dt.Triangles[i], err)
		}
		vd.Vertices[i] = c
	}

	for vIdx := range numSites {
		it := dt.IncidentTriangles(vIdx)
		if len(it) == 0 {
			return fmt.Errorf("voronoi: site %d has no incident triangle: %w", vIdx, ErrDegenerateInput)
		}
		for _, tIdx := range it {
			vd.CellNeighbors = append(vd.CellNeighbors, delaunay.NextVertex(dt.Triangles[tIdx], vIdx))
		}
		hull := dt.IsHullVertex(vIdx)
		if hull {
			last := dt.Triangles[it[len(it)-1]]
			vd.CellNeighbors = append(vd.CellNeighbors, delaunay.PrevVertex(last, vIdx))
		}
		vd.CellNeighborOffsets[vIdx+1] = len(vd.CellNeighbors)
		vd.hull[vIdx] = hull
		vd.Facets[vIdx] = geom.ClipPolygon(vd.cellPolygon(vIdx, it, hull), vd.Bounds())
	}

	vd.opts.Logger.Debug("voronoi diagram",
		zap.Int("sites", numSites), zap.Int("vertices", numTriangles))
	return nil
}

// cellPolygon returns the cell of vIdx before clipping. Hull cells are closed
// far outside the bounds along the two rays perpendicular to the hull edges.
func (vd *Diagram) cellPolygon(vIdx int, it []int, hull bool) []r2.Point {
	poly := make([]r2.Point, 0, len(it)+3)
	for _, tIdx := range it {
		poly = append(poly, vd.Vertices[tIdx])
	}
	if !hull {
		return poly
	}

	v := vd.Sites[vIdx]
	first := vd.dt.Triangles[it[0]]
	last := vd.dt.Triangles[it[len(it)-1]]
	n0 := vd.Sites[delaunay.NextVertex(first, vIdx)]
	pk := vd.Sites[delaunay.PrevVertex(last, vIdx)]
	d0 := rightNormal(n0.Sub(v))
	dk := rightNormal(v.Sub(pk))
	mid := d0.Add(dk)
	if mid.Norm() == 0 {
		mid = d0.Ortho()
	}
	mid = mid.Normalize()

	size := vd.Bounds().Size()
	far := math.Hypot(size.X, size.Y)
	for _, c := range poly {
		far = math.Max(far, c.Sub(v).Norm())
	}
	r := 4*far + 1

	return append(poly,
		poly[len(poly)-1].Add(dk.Mul(r)),
		v.Add(mid.Mul(2*r)),
		poly[0].Add(d0.Mul(r)),
	)
}

func rightNormal(p r2.Point) r2.Point {
	return r2.Point{X: p.Y, Y: -p.X}.Normalize()
}

func (vd *Diagram) Bounds() r2.Rect {
	return vd.opts.Bounds
}

// Triangulation returns the triangulation the diagram is dual to.
func (vd *Diagram) Triangulation() *delaunay.Triangulation {
	return vd.dt
}

func (vd *Diagram) NumCells() int {
	return len(vd.Sites)
}

func (vd *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= vd.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, vd.NumCells())
	}
	return Cell{idx: i, d: vd}, nil
}

// Relax performs Lloyd relaxation: every site moves to the centroid of its
// clipped cell and the diagram is rebuilt.
func (vd *Diagram) Relax(steps int) error {
	if steps < 0 {
		return errors.New("Relax: steps must be non-negative")
	}
	bounds := vd.Bounds()
	for step := range steps {
		sites := slices.Clone(vd.Sites)
		for i, facet := range vd.Facets {
			if len(facet) >= 3 {
				sites[i] = bounds.ClampPoint(geom.PolygonCentroid(facet))
			}
		}

		dt, err := delaunay.Triangulate(bounds, sites, delaunay.WithLogger(vd.opts.Logger))
		if err != nil {
			return fmt.Errorf("Relax: step %d: %w", step, err)
		}
		if err := vd.build(dt); err != nil {
			return fmt.Errorf("Relax: step %d: %w", step, err)
		}
	}
	return nil
}
