package render

import (
	"fmt"
	"image"
	"image/color"
)

type GradientKind string

const (
	Solid      GradientKind = "Solid"
	Vertical   GradientKind = "Vertical"
	Horizontal GradientKind = "Horizontal"
)

var GradientKinds = []GradientKind{Solid, Vertical, Horizontal}

type GradientParams struct {
	Kind     GradientKind
	From, To color.Color
}

// DrawBackground covers s with the gradient. Solid uses From for both stops
// and ignores To. An unknown kind leaves s untouched.
func DrawBackground(s Surface, g GradientParams) error {
	w, h := s.Size()
	switch g.Kind {
	case Solid:
		s.FillLinearGradient(0, 0, 0, h, g.From, g.From)
	case Vertical:
		s.FillLinearGradient(0, 0, 0, h, g.From, g.To)
	case Horizontal:
		s.FillLinearGradient(0, 0, w, 0, g.From, g.To)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGradient, g.Kind)
	}
	return nil
}

// PaintGradient fills img by projecting every pixel centre onto the axis
// (x0, y0)->(x1, y1). Pixels before the start take `from`, past the end `to`.
func PaintGradient(img *image.RGBA, x0, y0, x1, y1 float64, from, to color.Color) {
	c0 := color.RGBAModel.Convert(orBlack(from)).(color.RGBA)
	c1 := color.RGBAModel.Convert(orBlack(to)).(color.RGBA)

	dx, dy := x1-x0, y1-y0
	axis := dx*dx + dy*dy

	b := img.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			t := 0.0
			if axis > 0 {
				t = ((float64(px)+0.5-x0)*dx + (float64(py)+0.5-y0)*dy) / axis
			}
			img.SetRGBA(px, py, lerpRGBA(c0, c1, clamp01(t)))
		}
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func orBlack(c color.Color) color.Color {
	if c == nil {
		return color.Black
	}
	return c
}
