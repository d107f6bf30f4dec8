// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package pipeline

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls a Processor run.
type Config struct {
	// Width the input image is resized to before detection. Zero keeps the
	// original size.
	Width int `yaml:"width"`
	// Delay between animation frames.
	Delay time.Duration `yaml:"delay"`

	Voronoi bool `yaml:"voronoi"`
	Save    bool `yaml:"save"`
	L28     bool `yaml:"l28"`
	Animate bool `yaml:"animate"`
	Labels  bool `yaml:"labels"`
	Points  bool `yaml:"points"`
	SVG     bool `yaml:"svg"`

	// MergeDuplicates turns landmarks that coincide with an earlier one into
	// no-ops instead of stopping the run.
	MergeDuplicates bool `yaml:"merge_duplicates"`

	// Seed of the Voronoi palette.
	Seed int64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Width:   800,
		Delay:   100 * time.Millisecond,
		Animate: true,
		Seed:    1,
	}
}

func (c Config) Validate() error {
	if c.Width < 0 {
		return errors.Errorf("pipeline: negative width %d", c.Width)
	}
	if c.Delay < 0 {
		return errors.Errorf("pipeline: negative delay %s", c.Delay)
	}
	return nil
}

// LoadConfig reads a YAML document at path over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}
