package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/spoke-visualizer/internal/render"
	"github.com/iburimskiy/spoke-visualizer/internal/spectrum"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "Spoke Visualizer - O: open, Space: play/pause, T: toggle text, Esc/Q: quit"

	VisualRingSize = 8192

	// VolumeStart is the gain applied at volume 1.
	VolumeStart = 0.2
	MaxVolume   = 2.0

	// FramesAfterPause is how long the picture keeps moving after playback stops.
	FramesAfterPause = 60

	SpokeStep  = 10
	MaxSpokes  = render.MaxSpokes
	VolumeStep = 0.1

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 70
)

var ErrInvalid = errors.New("invalid config")

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Config struct {
	Window   WindowConfig     `yaml:"window"`
	Analysis spectrum.Options `yaml:"analysis"`
	Settings Settings         `yaml:"settings"`
	ShowText bool             `yaml:"show_text"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Analysis: spectrum.DefaultOptions(),
		Settings: DefaultSettings(),
		ShowText: true,
	}
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// DefaultPaths are searched in order by LoadDefault.
func DefaultPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "spokevis", "config.yaml"),
		filepath.Join(home, ".config", "spokevis", "config.yml"),
		filepath.Join(home, ".spokevis.yaml"),
	}
}

// LoadDefault loads the first existing default config file and returns its
// path, or "" when there is none.
func (c *Config) LoadDefault() (string, error) {
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		return p, c.LoadFile(p)
	}
	return "", nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if err := c.Settings.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Settings are the values a user tweaks while the visualizer runs. They are
// read fresh on every rendered frame.
type Settings struct {
	Shape       render.ShapeKind    `yaml:"shape"`
	Spokes      int                 `yaml:"spokes"`
	Volume      float64             `yaml:"volume"`
	Gradient    render.GradientKind `yaml:"gradient"`
	Foreground  Color               `yaml:"fg_color"`
	Background1 Color               `yaml:"bg_color_1"`
	Background2 Color               `yaml:"bg_color_2"`
}

func DefaultSettings() Settings {
	return Settings{
		Shape:       render.Circle,
		Spokes:      250,
		Volume:      1,
		Gradient:    render.Vertical,
		Foreground:  MustParseColor("#FFFFFF"),
		Background1: MustParseColor("#080c18"),
		Background2: MustParseColor("#1d2731"),
	}
}

func (s Settings) Validate() error {
	var errs []error
	if s.Spokes <= 0 || s.Spokes > MaxSpokes {
		errs = append(errs, fmt.Errorf("%w: spokes must be in [1, %d], got %d", ErrInvalid, MaxSpokes, s.Spokes))
	}
	if s.Volume < 0 || s.Volume > MaxVolume {
		errs = append(errs, fmt.Errorf("%w: volume %.2f outside [0, %.0f]", ErrInvalid, s.Volume, MaxVolume))
	}
	if indexOf(render.ShapeKinds, s.Shape) < 0 {
		errs = append(errs, fmt.Errorf("%w: shape %q", ErrInvalid, s.Shape))
	}
	if indexOf(render.GradientKinds, s.Gradient) < 0 {
		errs = append(errs, fmt.Errorf("%w: gradient %q", ErrInvalid, s.Gradient))
	}
	return errors.Join(errs...)
}

func (s Settings) ShapeParams() render.ShapeParams {
	return render.ShapeParams{
		Kind:   s.Shape,
		Spokes: s.Spokes,
		Color:  s.Foreground.RGBA,
	}
}

// ShapeParamsOr is ShapeParams with last standing in for an unknown shape.
func (s Settings) ShapeParamsOr(last render.ShapeKind) render.ShapeParams {
	p := s.ShapeParams()
	if indexOf(render.ShapeKinds, p.Kind) < 0 {
		p.Kind = last
	}
	return p
}

func (s Settings) GradientParams() render.GradientParams {
	return render.GradientParams{
		Kind: s.Gradient,
		From: s.Background1.RGBA,
		To:   s.Background2.RGBA,
	}
}

// CycleShape moves to the next shape. An unknown shape restarts the cycle.
func (s *Settings) CycleShape() {
	s.Shape = next(render.ShapeKinds, s.Shape)
}

func (s *Settings) CycleGradient() {
	s.Gradient = next(render.GradientKinds, s.Gradient)
}

// CycleForeground moves the shape colour to the next palette entry. A colour
// outside the palette restarts the cycle.
func (s *Settings) CycleForeground() {
	s.Foreground = next(ForegroundPalette, s.Foreground)
}

func (s *Settings) CycleBackground1() {
	s.Background1 = next(BackgroundPalette, s.Background1)
}

func (s *Settings) CycleBackground2() {
	s.Background2 = next(BackgroundPalette, s.Background2)
}

// AdjustSpokes changes the spoke count within [1, MaxSpokes].
func (s *Settings) AdjustSpokes(delta int) {
	s.Spokes = min(max(s.Spokes+delta, 1), MaxSpokes)
}

// AdjustVolume changes the volume within [0, MaxVolume].
func (s *Settings) AdjustVolume(delta float64) {
	v := s.Volume + delta
	// Snap away float drift from repeated steps.
	v = math.Round(v*100) / 100
	s.Volume = min(max(v, 0), MaxVolume)
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

func next[T comparable](list []T, v T) T {
	return list[(indexOf(list, v)+1)%len(list)]
}
