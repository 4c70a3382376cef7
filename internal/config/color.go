package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an opaque RGBA colour that reads and writes as "#rrggbb". Parsing
// also accepts "#rgb" and SVG colour names such as "white".
type Color struct {
	color.RGBA
}

func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{c}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: colour %q", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: colour %q", ErrInvalid, s)
	}
	return Color{color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}}, nil
}

func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Set lets a Color be used as a flag.Value.
func (c *Color) Set(s string) error {
	return c.UnmarshalText([]byte(s))
}

// ForegroundPalette and BackgroundPalette are the colours the window cycles
// through. Each starts with the default for that slot.
var (
	ForegroundPalette = []Color{
		{colornames.White}, {colornames.Gold}, {colornames.Orange}, {colornames.Tomato},
		{colornames.Hotpink}, {colornames.Violet}, {colornames.Deepskyblue},
		{colornames.Aquamarine}, {colornames.Limegreen},
	}
	BackgroundPalette = []Color{
		MustParseColor("#080c18"), MustParseColor("#1d2731"),
		{colornames.Black}, {colornames.Midnightblue}, {colornames.Navy}, {colornames.Indigo},
		{colornames.Darkslategray}, {colornames.Maroon}, {colornames.Darkolivegreen},
	}
)
