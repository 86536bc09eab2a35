package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

const (
	minDistance = 1.5
	maxDistance = 50
)

// Config holds the command-line settings.
type Config struct {
	Model      string // empty renders Primitive
	Primitive  string // icosphere or cube
	FPS        int
	Background string // hex, e.g. #1e1e28
	Color      string // hex base color; empty uses the model's material
	Shading    string
	Workers    int
	FOV        float64 // degrees
	Distance   float64
	Shininess  float64
	Snapshot   string // PNG path; renders one frame without a terminal
	Width      int
	Height     int
	LogLevel   string
	LogFile    string

	// Filled in by Validate.
	mode  render.ShadingMode
	bg    color.RGBA
	color *math3d.Vec3
	level slog.Level
}

// DefaultConfig returns the settings used when no flag is given.
func DefaultConfig() Config {
	return Config{
		Primitive:  "icosphere",
		FPS:        60,
		Background: "#1e1e28",
		Shading:    "phong",
		FOV:        60,
		Distance:   4,
		Shininess:  32,
		Width:      640,
		Height:     480,
		LogLevel:   "info",
	}
}

// Validate checks every field and parses the ones with a text form.
func (c *Config) Validate() error {
	var errs []error
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("--fps %d out of range [1, 240]", c.FPS))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("--workers %d is negative", c.Workers))
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		errs = append(errs, fmt.Errorf("--fov %v out of range (0, 180)", c.FOV))
	}
	if !(c.Distance >= minDistance && c.Distance <= maxDistance) {
		errs = append(errs, fmt.Errorf("--distance %v out of range [%v, %v]", c.Distance, minDistance, maxDistance))
	}
	if !(c.Shininess >= 0) || math.IsInf(c.Shininess, 0) {
		errs = append(errs, fmt.Errorf("--shininess %v must be a finite non-negative number", c.Shininess))
	}
	if c.Snapshot != "" && (c.Width < 1 || c.Height < 1) {
		errs = append(errs, fmt.Errorf("--width and --height must be positive, got %dx%d", c.Width, c.Height))
	}

	if c.Model == "" && c.Primitive != "icosphere" && c.Primitive != "cube" {
		errs = append(errs, fmt.Errorf("--primitive %q: want icosphere or cube", c.Primitive))
	}

	mode, err := render.ParseShadingMode(c.Shading)
	if err != nil {
		errs = append(errs, fmt.Errorf("--shading: %w", err))
	}
	c.mode = mode

	bg, err := colorful.Hex(c.Background)
	if err != nil {
		errs = append(errs, fmt.Errorf("--bg: %w", err))
	}
	r, g, b := bg.Clamped().RGB255()
	c.bg = render.RGB(r, g, b)

	c.color = nil
	if c.Color != "" {
		base, err := colorful.Hex(c.Color)
		if err != nil {
			errs = append(errs, fmt.Errorf("--color: %w", err))
		} else {
			v := math3d.V3(base.R, base.G, base.B)
			c.color = &v
		}
	}

	if err := c.level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("--log-level: %w", err))
	}

	return errors.Join(errs...)
}

// Logger builds the process logger. Snapshot mode logs to stderr; the
// interactive viewer owns the terminal, so it logs only to --log-file.
// The returned function closes the log file, if any.
func (c *Config) Logger() (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: c.level}
	noop := func() error { return nil }

	var w io.Writer
	switch {
	case c.LogFile != "":
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), f.Close, nil
	case c.Snapshot != "":
		w = os.Stderr
	default:
		return slog.New(slog.DiscardHandler), noop, nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), noop, nil
}
