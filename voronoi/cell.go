// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// Cell is a read-only view of one planar Voronoi cell of a Diagram, indexed
// like the site it belongs to. Its vertices are the raw circumcenters of the
// incident Delaunay triangles and may lie outside the bounds. Polygon is the
// same region clipped to the bounds, closed along them for hull sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex is also the vertex index in the dual triangulation.
func (c Cell) SiteIndex() int {
	return c.idx
}

func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// NumVertices counts the unclipped Voronoi vertices, one per incident Delaunay
// triangle. A hull cell counts only its finite vertices.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices indexes Diagram.Vertices in counter-clockwise order around the
// site. For hull cells the run is open: it starts and ends at the vertices
// where the two unbounded rays leave the cell.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the i-th unclipped vertex, or an error if i is out of range.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

// NumNeighbors counts the Delaunay neighbors of the site. An unbounded cell has
// one neighbor more than vertices because its two rays border distinct cells.
func (c Cell) NumNeighbors() int {
	return c.d.CellNeighborOffsets[c.idx+1] - c.d.CellNeighborOffsets[c.idx]
}

// NeighborIndices lists neighboring sites counter-clockwise. Neighbor j shares
// the cell edge between vertices j-1 and j. Clipping can cut that edge away,
// so a neighbor does not always touch Polygon.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellNeighborOffsets[c.idx]:c.d.CellNeighborOffsets[c.idx+1]]
}

// Neighbor returns the i-th neighboring cell, or an error if i is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.CellNeighborOffsets[c.idx]
	end := c.d.CellNeighborOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	nc, err := c.d.Cell(c.d.CellNeighbors[start+i])
	if err != nil {
		return Cell{}, err
	}
	return nc, nil
}

// Polygon returns the cell clipped to Diagram.Bounds as a counter-clockwise
// polygon without repeated vertices. It is never open, even for hull sites.
func (c Cell) Polygon() []r2.Point {
	return c.d.Facets[c.idx]
}

// Bounded reports whether the unclipped cell is finite, which holds for
// sites off the convex hull.
func (c Cell) Bounded() bool {
	return !c.d.hull[c.idx]
}
