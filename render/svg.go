// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"image"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/delaunay"
	"github.com/golang/geo/r2"
)

const (
	triangleStyle = "fill:none;stroke:rgb(60,60,60);stroke-width:1;stroke-opacity:1.0"
	siteStyle     = "fill:rgb(0,0,0)"
)

// SVG describes the layers of an SVG export. Empty layers are skipped.
type SVG struct {
	Size      image.Point
	Vertices  []r2.Point
	Triangles []delaunay.Triangle
	Facets    [][]r2.Point
	Palette   []color.Color
}

// WriteSVG renders the facets, then the triangles, then the vertices.
func WriteSVG(w io.Writer, doc SVG) {
	canvas := svg.New(w)
	canvas.Start(doc.Size.X, doc.Size.Y)
	canvas.Rect(0, 0, doc.Size.X, doc.Size.Y, "fill:rgb(255,255,255)")

	if len(doc.Facets) > 0 {
		palette := doc.Palette
		if len(palette) == 0 {
			palette = Palette(len(doc.Facets), 0)
		}
		canvas.Group("id=\"voronoi\"")
		for i, facet := range doc.Facets {
			if len(facet) < 3 {
				continue
			}
			xs, ys := screen(facet)
			canvas.Polygon(xs, ys, "fill:"+cssColor(palette[i%len(palette)])+";stroke:rgb(0,0,0);stroke-width:1")
		}
		canvas.Gend()
	}

	if len(doc.Triangles) > 0 {
		canvas.Group("id=\"delaunay\"")
		for _, t := range doc.Triangles {
			xs, ys := screen([]r2.Point{doc.Vertices[t[0]], doc.Vertices[t[1]], doc.Vertices[t[2]]})
			canvas.Polygon(xs, ys, triangleStyle)
		}
		canvas.Gend()
	}

	for _, p := range doc.Vertices {
		canvas.Circle(int(math.Round(p.X)), int(math.Round(p.Y)), siteRadius, siteStyle)
	}
	canvas.End()
}

func screen(pts []r2.Point) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i] = int(math.Round(p.X))
		ys[i] = int(math.Round(p.Y))
	}
	return xs, ys
}
