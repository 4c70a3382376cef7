package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/spoke-visualizer/internal/render"
)

func TestDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	s := c.Settings
	assert.Equal(t, render.Circle, s.Shape)
	assert.Equal(t, 250, s.Spokes)
	assert.Equal(t, render.Vertical, s.Gradient)
	assert.Equal(t, "#ffffff", s.Foreground.String())
	assert.Equal(t, "#080c18", s.Background1.String())
	assert.Equal(t, "#1d2731", s.Background2.String())
	assert.Equal(t, 2048, c.Analysis.FFTSize)
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"#FFFFFF":   {0xff, 0xff, 0xff, 0xff},
		"#1d2731":   {0x1d, 0x27, 0x31, 0xff},
		"1d2731":    {0x1d, 0x27, 0x31, 0xff},
		"#f80":      {0xff, 0x88, 0x00, 0xff},
		"white":     {0xff, 0xff, 0xff, 0xff},
		" Crimson ": {0xdc, 0x14, 0x3c, 0xff},
	}
	for in, want := range cases {
		c, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, c.RGBA, in)
	}

	for _, bad := range []string{"", "#12", "#gggggg", "#1234567", "notacolour"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestLoadFileOverlays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
settings:
  shape: Triangle
  spokes: 90
  gradient: Solid
  bg_color_1: "#000000"
analysis:
  smoothing: 0.5
`), 0o644))

	c := Default()
	require.NoError(t, c.LoadFile(path))
	require.NoError(t, c.Validate())

	assert.Equal(t, render.Triangle, c.Settings.Shape)
	assert.Equal(t, 90, c.Settings.Spokes)
	assert.Equal(t, render.Solid, c.Settings.Gradient)
	assert.Equal(t, "#000000", c.Settings.Background1.String())
	assert.Equal(t, "#1d2731", c.Settings.Background2.String(), "untouched fields keep defaults")
	assert.Equal(t, 0.5, c.Analysis.Smoothing)
	assert.Equal(t, 2048, c.Analysis.FFTSize)
	assert.Equal(t, WindowWidth, c.Window.Width)
}

func TestLoadFileErrors(t *testing.T) {
	c := Default()
	assert.ErrorIs(t, c.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")), os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  fg_color: \"#zz\"\n"), 0o644))
	assert.ErrorIs(t, c.LoadFile(path), ErrInvalid)
}

func TestLoadDefaultFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c := Default()
	p, err := c.LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, p)

	require.NoError(t, os.WriteFile(filepath.Join(home, ".spokevis.yaml"), []byte("settings:\n  spokes: 12\n"), 0o644))
	p, err = c.LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".spokevis.yaml"), p)
	assert.Equal(t, 12, c.Settings.Spokes)
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	s.Spokes = 0
	s.Volume = 3
	s.Shape = "Hexagon"
	s.Gradient = "Radial"
	err := s.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	for _, frag := range []string{"spokes", "volume", "Hexagon", "Radial"} {
		assert.Contains(t, err.Error(), frag)
	}

	c := Default()
	c.Window.Width = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalid)

	s = DefaultSettings()
	s.Spokes = MaxSpokes + 1
	assert.ErrorIs(t, s.Validate(), ErrInvalid)
	s.Spokes = MaxSpokes
	assert.NoError(t, s.Validate())
}

func TestSettingsControls(t *testing.T) {
	s := DefaultSettings()

	s.CycleShape()
	assert.Equal(t, render.Triangle, s.Shape)
	s.CycleShape()
	assert.Equal(t, render.Circle, s.Shape)
	s.Shape = "bogus"
	s.CycleShape()
	assert.Equal(t, render.Circle, s.Shape)

	s.CycleGradient()
	assert.Equal(t, render.Horizontal, s.Gradient)
	s.CycleGradient()
	assert.Equal(t, render.Solid, s.Gradient)

	s.Spokes = 5
	s.AdjustSpokes(-SpokeStep)
	assert.Equal(t, 1, s.Spokes)
	s.AdjustSpokes(SpokeStep)
	assert.Equal(t, 11, s.Spokes)
	s.Spokes = MaxSpokes - 3
	s.AdjustSpokes(SpokeStep)
	assert.Equal(t, MaxSpokes, s.Spokes)

	s.Volume = 1.95
	s.AdjustVolume(VolumeStep)
	assert.Equal(t, MaxVolume, s.Volume)
	s.Volume = 0.05
	s.AdjustVolume(-VolumeStep)
	assert.Zero(t, s.Volume)
	for i := 0; i < 3; i++ {
		s.AdjustVolume(VolumeStep)
	}
	assert.Equal(t, 0.3, s.Volume)
}

func TestSettingsColourCycling(t *testing.T) {
	s := DefaultSettings()

	s.CycleForeground()
	assert.Equal(t, ForegroundPalette[1], s.Foreground)
	s.CycleBackground1()
	assert.Equal(t, MustParseColor("#1d2731"), s.Background1)
	s.CycleBackground2()
	assert.Equal(t, MustParseColor("black"), s.Background2)

	for range ForegroundPalette[1:] {
		s.CycleForeground()
	}
	assert.Equal(t, MustParseColor("#ffffff"), s.Foreground, "the cycle wraps")

	s.Background2 = MustParseColor("#123456")
	s.CycleBackground2()
	assert.Equal(t, BackgroundPalette[0], s.Background2)

	assert.NotEqual(t, DefaultSettings().GradientParams(), s.GradientParams())
}

func TestShapeParamsOrKeepsLastValidShape(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, render.Circle, s.ShapeParamsOr(render.Triangle).Kind)

	s.Shape = "Hexagon"
	p := s.ShapeParamsOr(render.Triangle)
	assert.Equal(t, render.Triangle, p.Kind)
	assert.Equal(t, s.Spokes, p.Spokes)
}

func TestSettingsParams(t *testing.T) {
	s := DefaultSettings()
	sp := s.ShapeParams()
	assert.Equal(t, render.Circle, sp.Kind)
	assert.Equal(t, 250, sp.Spokes)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, sp.Color)

	gp := s.GradientParams()
	assert.Equal(t, render.Vertical, gp.Kind)
	assert.Equal(t, color.RGBA{0x08, 0x0c, 0x18, 0xff}, gp.From)
}

func TestSettingsYAMLRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(DefaultSettings())
	require.NoError(t, err)
	assert.Contains(t, string(out), "fg_color:")
	assert.Contains(t, string(out), "#ffffff")

	var back Settings
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, DefaultSettings(), back)
}
