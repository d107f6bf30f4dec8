// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay builds Delaunay triangulations of points in a rectangle by
// incremental insertion with edge flips.
package delaunay

import (
	"cmp"
	"slices"

	"github.com/golang/geo/r2"
)

// Triangle holds counter-clockwise vertex indices.
type Triangle [3]int

// Edge holds two vertex indices, smallest first.
type Edge [2]int

type Triangulation struct {
	Bounds    r2.Rect
	Vertices  []r2.Point
	Triangles []Triangle
	// Neighbors[t][i] is the triangle across the edge opposite
	// Triangles[t][i], or -1 on the convex hull.
	Neighbors [][3]int
	// NOTE: Sort in CCW per vertex. Hull vertices start at the triangle
	// whose outgoing edge lies on the hull.
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

// Triangulate inserts pts into a new subdivision over bounds and finalizes
// it.
func Triangulate(bounds r2.Rect, pts []r2.Point, setters ...Option) (*Triangulation, error) {
	s, err := NewSubdivision(bounds, setters...)
	if err != nil {
		return nil, err
	}
	if _, err := s.InsertAll(pts); err != nil {
		return nil, err
	}
	return s.Finalize()
}

func (dt *Triangulation) NumVertices() int {
	return len(dt.Vertices)
}

func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

// IsHullVertex reports whether vIdx lies on the convex hull.
func (dt *Triangulation) IsHullVertex(vIdx int) bool {
	it := dt.IncidentTriangles(vIdx)
	if len(it) == 0 {
		return true
	}
	t := it[0]
	k := slices.Index(dt.Triangles[t][:], vIdx)
	return dt.Neighbors[t][(k+2)%3] < 0
}

// Edges returns every edge once, sorted.
func (dt *Triangulation) Edges() []Edge {
	edges := make([]Edge, 0, len(dt.Triangles)*3/2+2)
	for t, tri := range dt.Triangles {
		for i := range 3 {
			a, b := tri[(i+1)%3], tri[(i+2)%3]
			n := dt.Neighbors[t][i]
			// Interior edges are seen from both sides; keep one.
			if n >= 0 && n < t {
				continue
			}
			edges = append(edges, Edge{min(a, b), max(a, b)})
		}
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		if c := cmp.Compare(x[0], y[0]); c != 0 {
			return c
		}
		return cmp.Compare(x[1], y[1])
	})
	return edges
}

// HullEdges returns the directed counter-clockwise edges of the convex hull.
func (dt *Triangulation) HullEdges() []Edge {
	var edges []Edge
	for t, tri := range dt.Triangles {
		for i := range 3 {
			if dt.Neighbors[t][i] < 0 {
				edges = append(edges, Edge{tri[(i+1)%3], tri[(i+2)%3]})
			}
		}
	}
	return edges
}

func newTriangulation(bounds r2.Rect, vertices []r2.Point, tris []Triangle) *Triangulation {
	for i := range tris {
		tris[i] = canonical(tris[i])
	}
	slices.SortFunc(tris, compareTriangles)

	numVertices := len(vertices)
	numTriangles := len(tris)
	dt := &Triangulation{
		Bounds:                  bounds,
		Vertices:                vertices,
		Triangles:               tris,
		Neighbors:               make([][3]int, numTriangles),
		IncidentTriangleIndices: make([]int, numTriangles*3),
		IncidentTriangleOffsets: make([]int, numVertices+1),
	}

	// Directed edge (a, b) -> triangle holding it.
	owner := make(map[Edge]int, numTriangles*3)
	for t, tri := range tris {
		for i := range 3 {
			owner[Edge{tri[i], tri[(i+1)%3]}] = t
		}
	}
	for t, tri := range tris {
		for i := range 3 {
			a, b := tri[(i+1)%3], tri[(i+2)%3]
			n, ok := owner[Edge{b, a}]
			if !ok {
				n = -1
			}
			dt.Neighbors[t][i] = n
		}
	}

	for _, tri := range tris {
		for _, v := range tri {
			dt.IncidentTriangleOffsets[v+1]++
		}
	}
	for i := range numVertices {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}
	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	for t, tri := range tris {
		for _, v := range tri {
			dt.IncidentTriangleIndices[nxt[v]] = t
			nxt[v]++
		}
	}

	for i := range numVertices {
		sortIncidentTriangleIndicesCCW(i, dt.IncidentTriangles(i), tris, dt.Neighbors)
	}
	return dt
}

// sortIncidentTriangleIndicesCCW orders the fan around vIdx so that each
// triangle follows the one it shares the edge (vIdx, PrevVertex) with. An
// open fan on the hull starts at the triangle whose edge (vIdx, NextVertex)
// has no neighbor.
func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris []Triangle, neighbors [][3]int) {
	n := len(incidentTris)
	for i, t := range incidentTris {
		k := slices.Index(tris[t][:], vIdx)
		if neighbors[t][(k+2)%3] < 0 {
			incidentTris[0], incidentTris[i] = incidentTris[i], incidentTris[0]
			break
		}
	}
	for i := 1; i < n; i++ {
		prv := PrevVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			nxt := NextVertex(tris[incidentTris[j]], vIdx)
			if nxt == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

// canonical rotates t so that its smallest index comes first.
func canonical(t Triangle) Triangle {
	switch {
	case t[1] < t[0] && t[1] < t[2]:
		return Triangle{t[1], t[2], t[0]}
	case t[2] < t[0] && t[2] < t[1]:
		return Triangle{t[2], t[0], t[1]}
	}
	return t
}

func compareTriangles(a, b Triangle) int {
	for i := range 3 {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func PrevVertex(t Triangle, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t Triangle, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
