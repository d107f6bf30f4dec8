// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package render draws triangulations and Voronoi facets over images.
package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/delaunay"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/utils"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"golang.org/x/image/font/basicfont"
)

var (
	DelaunayColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	PointColor    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LabelColor    = color.RGBA{R: 20, G: 0, B: 168, A: 255}
	OutlineColor  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

const (
	lineWidth   = 1
	pointRadius = 2
	labelRadius = 12
	siteRadius  = 3
)

// Canvas is a drawing surface over a copy of an image.
type Canvas struct {
	ctx *gg.Context
}

// NewCanvas returns a canvas holding a copy of src.
func NewCanvas(src image.Image) *Canvas {
	return &Canvas{ctx: gg.NewContextForImage(src)}
}

// NewBlankCanvas returns a width x height canvas filled with bg.
func NewBlankCanvas(width, height int, bg color.Color) *Canvas {
	ctx := gg.NewContext(width, height)
	ctx.DrawRectangle(0, 0, float64(width), float64(height))
	ctx.SetColor(bg)
	ctx.Fill()
	return &Canvas{ctx: ctx}
}

func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

func (c *Canvas) Size() image.Point {
	return image.Point{X: c.ctx.Width(), Y: c.ctx.Height()}
}

func (c *Canvas) contains(p r2.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= float64(c.ctx.Width()) && p.Y <= float64(c.ctx.Height())
}

// DrawDelaunay outlines the triangles lying inside the canvas.
func (c *Canvas) DrawDelaunay(tris []delaunay.Triangle, vertices []r2.Point, col color.Color) {
	c.ctx.Push()
	defer c.ctx.Pop()

	c.ctx.SetColor(col)
	c.ctx.SetLineWidth(lineWidth)
	for _, t := range tris {
		p0, p1, p2 := vertices[t[0]], vertices[t[1]], vertices[t[2]]
		if !c.contains(p0) || !c.contains(p1) || !c.contains(p2) {
			continue
		}
		c.ctx.MoveTo(p0.X, p0.Y)
		c.ctx.LineTo(p1.X, p1.Y)
		c.ctx.LineTo(p2.X, p2.Y)
		c.ctx.ClosePath()
		c.ctx.Stroke()
	}
}

func (c *Canvas) DrawPoints(pts []r2.Point, col color.Color) {
	c.ctx.Push()
	defer c.ctx.Pop()

	c.ctx.SetColor(col)
	for _, p := range pts {
		c.ctx.DrawCircle(p.X, p.Y, pointRadius)
		c.ctx.Fill()
	}
}

// DrawLabels marks every landmark with its number, starting at 1. Labels of
// landmarks near the border are pulled inside so the disc stays visible.
func (c *Canvas) DrawLabels(pts []r2.Point) {
	c.ctx.Push()
	defer c.ctx.Pop()

	w, h := float64(c.ctx.Width()), float64(c.ctx.Height())
	c.ctx.SetFontFace(basicfont.Face7x13)
	for i, p := range pts {
		x := utils.Clamp(p.X, labelRadius, w-labelRadius)
		y := utils.Clamp(p.Y, labelRadius, h-labelRadius)
		c.ctx.SetColor(LabelColor)
		c.ctx.DrawCircle(x, y, labelRadius)
		c.ctx.Fill()
		c.ctx.SetColor(color.White)
		c.ctx.DrawStringAnchored(strconv.Itoa(i+1), x, y, 0.5, 0.35)
	}
}

// DrawVoronoi fills every facet with its palette color, outlines it and
// dots its site.
func (c *Canvas) DrawVoronoi(facets [][]r2.Point, sites []r2.Point, palette []color.Color) {
	c.ctx.Push()
	defer c.ctx.Pop()

	c.ctx.SetLineWidth(lineWidth)
	for i, facet := range facets {
		if len(facet) < 3 {
			continue
		}
		c.ctx.MoveTo(facet[0].X, facet[0].Y)
		for _, p := range facet[1:] {
			c.ctx.LineTo(p.X, p.Y)
		}
		c.ctx.ClosePath()
		c.ctx.SetColor(palette[i%len(palette)])
		c.ctx.FillPreserve()
		c.ctx.SetColor(OutlineColor)
		c.ctx.Stroke()
	}

	c.ctx.SetColor(OutlineColor)
	for _, s := range sites {
		c.ctx.DrawCircle(s.X, s.Y, siteRadius)
		c.ctx.Fill()
	}
}
