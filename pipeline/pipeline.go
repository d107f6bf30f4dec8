// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package pipeline turns a face image into its landmark triangulation and
// Voronoi diagram renderings.
package pipeline

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/delaunay"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/landmark"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/render"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/voronoi"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrNoDetector = errors.New("pipeline: no landmark detector")

// Processor runs the visualization of a single image.
type Processor struct {
	Config   Config
	Detector landmark.Detector
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Frames receives one image per inserted landmark when Config.Animate
	// is set. A nil Frames disables the animation.
	Frames *render.Frames
}

// Result holds everything a run produced.
type Result struct {
	// Name is the readable run name attached to every log entry.
	Name      string
	Image     image.Image
	Landmarks []r2.Point

	Triangulation *delaunay.Triangulation
	Delaunay      image.Image

	// Diagram and Voronoi are nil unless Config.Voronoi is set.
	Diagram *voronoi.Diagram
	Voronoi image.Image

	// Outputs lists the files written, in order.
	Outputs []string
}

// Run processes the image at path: decode, resize, detect, triangulate one
// landmark at a time, then render. Landmarks are inserted in detector order
// and the run stops at the first landmark the triangulation rejects.
func (p *Processor) Run(ctx context.Context, path string) (*Result, error) {
	if p.Detector == nil {
		return nil, ErrNoDetector
	}
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Name: petname.Generate(2, "-")}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run", res.Name), zap.String("image", path))
	start := time.Now()

	img, err := render.Load(path)
	if err != nil {
		return nil, err
	}
	img = render.Resize(img, p.Config.Width)
	res.Image = img
	size := img.Bounds().Size()
	logger.Debug("image loaded", zap.Int("width", size.X), zap.Int("height", size.Y))

	faces, err := p.Detector.Detect(ctx, img)
	if err != nil {
		return nil, errors.Wrap(err, "detect landmarks")
	}
	face, err := landmark.First(faces)
	if err != nil {
		return nil, err
	}
	points := face.Points
	if p.Config.L28 {
		if points, err = landmark.Subset28(points); err != nil {
			return nil, err
		}
	}
	res.Landmarks = landmark.ToR2(points)
	logger.Info("landmarks detected",
		zap.Int("faces", len(faces)), zap.Int("landmarks", len(res.Landmarks)))

	if res.Triangulation, err = p.triangulate(ctx, logger, img, res.Landmarks); err != nil {
		return nil, err
	}

	canvas := render.NewCanvas(img)
	canvas.DrawDelaunay(res.Triangulation.Triangles, res.Triangulation.Vertices, render.DelaunayColor)
	if p.Config.Points {
		canvas.DrawPoints(res.Triangulation.Vertices, render.PointColor)
	}
	if p.Config.Labels {
		canvas.DrawLabels(res.Landmarks)
	}
	res.Delaunay = canvas.Image()

	var palette []color.Color
	if p.Config.Voronoi {
		if res.Diagram, err = voronoi.NewDiagram(res.Triangulation, voronoi.WithLogger(logger)); err != nil {
			return nil, errors.Wrap(err, "voronoi")
		}
		palette = render.Palette(len(res.Diagram.Facets), p.Config.Seed)
		vc := render.NewBlankCanvas(size.X, size.Y, color.Black)
		vc.DrawVoronoi(res.Diagram.Facets, res.Diagram.Sites, palette)
		res.Voronoi = vc.Image()
	}

	if err := p.write(res, path, palette); err != nil {
		return nil, err
	}

	logger.Info("run complete",
		zap.Int("triangles", len(res.Triangulation.Triangles)),
		zap.Strings("outputs", res.Outputs),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (p *Processor) triangulate(ctx context.Context, logger *zap.Logger, img image.Image, pts []r2.Point) (*delaunay.Triangulation, error) {
	size := img.Bounds().Size()
	bounds := r2.RectFromPoints(r2.Point{}, r2.Point{X: float64(size.X), Y: float64(size.Y)})
	opts := []delaunay.Option{delaunay.WithLogger(logger)}
	if p.Config.MergeDuplicates {
		opts = append(opts, delaunay.WithDuplicates(delaunay.MergeDuplicates))
	}
	sub, err := delaunay.NewSubdivision(bounds, opts...)
	if err != nil {
		return nil, err
	}

	animate := p.Config.Animate && p.Frames.Enabled()
	for i, pt := range pts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := sub.Insert(pt); err != nil {
			logger.Error("landmark rejected",
				zap.Int("index", i), zap.Float64("x", pt.X), zap.Float64("y", pt.Y), zap.Error(err))
			return nil, errors.Wrapf(err, "landmark %d", i)
		}
		if !animate {
			continue
		}
		frame := render.NewCanvas(img)
		frame.DrawDelaunay(sub.TriangleList(), sub.Points(), render.DelaunayColor)
		if err := p.Frames.Show(frame.Image()); err != nil {
			logger.Warn("frame", zap.Error(err))
			animate = false
		}
	}

	dt, err := sub.Finalize()
	if err != nil {
		return nil, errors.Wrap(err, "finalize")
	}
	return dt, nil
}

func (p *Processor) write(res *Result, path string, palette []color.Color) error {
	if p.Config.Save {
		out := render.OutputPath(path, "delaunay")
		if err := render.Save(out, res.Delaunay); err != nil {
			return err
		}
		res.Outputs = append(res.Outputs, out)

		if res.Voronoi != nil {
			out := render.OutputPath(path, "voronoi")
			if err := render.Save(out, res.Voronoi); err != nil {
				return err
			}
			res.Outputs = append(res.Outputs, out)
		}
	}

	if p.Config.SVG {
		out := render.OutputPath(strings.TrimSuffix(path, filepath.Ext(path))+".svg", "mesh")
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "create svg")
		}
		doc := render.SVG{
			Size:      res.Image.Bounds().Size(),
			Vertices:  res.Triangulation.Vertices,
			Triangles: res.Triangulation.Triangles,
			Palette:   palette,
		}
		if res.Diagram != nil {
			doc.Facets = res.Diagram.Facets
		}
		render.WriteSVG(f, doc)
		if err := f.Close(); err != nil {
			return errors.Wrap(err, "close svg")
		}
		res.Outputs = append(res.Outputs, out)
	}
	return nil
}
