// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command facemesh draws the Delaunay triangulation, and optionally the
// Voronoi diagram, of the facial landmarks found in an image.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/landmark"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/pipeline"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/render"
	"github.com/efviodo/dlib-face-recognition-delaunay-triangulation/utils"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

const version = "0.1.0"

var (
	app = kingpin.New("facemesh", "Delaunay triangulation and Voronoi diagram of facial landmarks.")

	imagePath  = app.Flag("image", "Input image.").Short('i').Required().ExistingFile()
	configPath = app.Flag("config", "YAML config file, overridden by flags.").Short('c').ExistingFile()
	landmarks  = app.Flag("landmarks", "Precomputed landmark file (YAML or JSON) used instead of dlib.").Short('l').ExistingFile()
	models     = app.Flag("models", "Directory with the dlib models.").Default("models").String()

	voronoiFlag = app.Flag("voronoi", "Also draw the Voronoi diagram.").Short('v').Bool()
	save        = app.Flag("save", "Save the rendered images next to the input.").Short('s').Bool()
	l28         = app.Flag("l28", "Keep only 28 of the 68 landmarks.").Bool()
	labels      = app.Flag("labels", "Number the landmarks.").Bool()
	points      = app.Flag("points", "Dot the landmarks.").Bool()
	svgFlag     = app.Flag("svg", "Write an SVG of the mesh next to the input.").Bool()
	merge       = app.Flag("merge-duplicates", "Skip landmarks that coincide with an earlier one.").Bool()
	noAnimate   = app.Flag("no-animate", "Do not print insertion frames to the terminal.").Bool()
	width       = app.Flag("width", "Resize width, 0 keeps the config value (default 800).").Int()
	delay       = app.Flag("delay", "Delay between frames, 0 keeps the config value (default 100ms).").Duration()
	verbose     = app.Flag("verbose", "Development logging.").Bool()
)

func main() {
	app.Version(version)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", aurora.Red("failed:"), err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config()
	if err != nil {
		return errors.Wrap(err, "config")
	}

	detector, closeDetector, err := newDetector()
	if err != nil {
		return errors.Wrap(err, "detector")
	}
	defer closeDetector()

	frames := render.NewFrames(os.Stdout, cfg.Delay)
	defer func() {
		if err := frames.Close(); err != nil {
			logger.Warn("remove frames", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := &pipeline.Processor{Config: cfg, Detector: detector, Logger: logger, Frames: frames}

	var spinner *utils.Spinner
	if !frames.Enabled() || !cfg.Animate {
		spinner = utils.NewSpinner(os.Stderr, 100*time.Millisecond)
		spinner.Start("processing " + *imagePath)
	}
	start := time.Now()
	res, err := p.Run(ctx, *imagePath)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s %s: %d landmarks, %d triangles in %s\n",
		aurora.Green("done"),
		aurora.Bold(res.Name),
		len(res.Landmarks),
		len(res.Triangulation.Triangles),
		utils.FormatTime(time.Since(start)),
	)
	for _, out := range res.Outputs {
		fmt.Printf("  %s %s\n", aurora.Cyan("wrote"), out)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func config() (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = pipeline.LoadConfig(*configPath); err != nil {
			return cfg, err
		}
	}

	cfg.Voronoi = cfg.Voronoi || *voronoiFlag
	cfg.Save = cfg.Save || *save
	cfg.L28 = cfg.L28 || *l28
	cfg.Labels = cfg.Labels || *labels
	cfg.Points = cfg.Points || *points
	cfg.SVG = cfg.SVG || *svgFlag
	cfg.MergeDuplicates = cfg.MergeDuplicates || *merge
	if *noAnimate {
		cfg.Animate = false
	}
	if *width != 0 {
		cfg.Width = *width
	}
	if *delay != 0 {
		cfg.Delay = *delay
	}
	return cfg, cfg.Validate()
}

func newDetector() (landmark.Detector, func(), error) {
	if *landmarks != "" {
		d, err := landmark.NewFileDetector(*landmarks)
		return d, func() {}, err
	}
	d, err := landmark.NewDlibDetector(*models)
	if err != nil {
		return nil, nil, err
	}
	return d, func() { _ = d.Close() }, nil
}

func init() {
	petname.NonDeterministicMode()
}
