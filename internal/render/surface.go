// Package render turns a frequency snapshot into spoke geometry and draws it,
// together with the gradient background, onto a Surface.
package render

import (
	"errors"
	"image/color"
)

// SpokeWidth is the stroke width of every spoke and outline.
const SpokeWidth = 2

// MaxSpokes bounds the spoke count a layout allocates for.
const MaxSpokes = 1 << 16

var (
	ErrUnknownShape      = errors.New("render: unknown shape")
	ErrUnknownGradient   = errors.New("render: unknown gradient")
	ErrInvalidSpokes     = errors.New("render: spoke count out of range")
	ErrDegenerateSurface = errors.New("render: surface has zero area")
)

// Surface is a 2D drawing target. Coordinates grow right and down.
type Surface interface {
	Size() (width, height float64)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
	StrokeCircle(cx, cy, r, width float64, clr color.Color)
	// FillLinearGradient paints the whole surface, interpolating from `from`
	// at (x0, y0) to `to` at (x1, y1) along that axis.
	FillLinearGradient(x0, y0, x1, y1 float64, from, to color.Color)
}

// DrawFrame paints the background and then the shape. A failure in one element
// does not stop the other from being drawn.
func DrawFrame(s Surface, snapshot []uint8, shape ShapeParams, bg GradientParams) error {
	return errors.Join(
		DrawBackground(s, bg),
		DrawShape(s, snapshot, shape),
	)
}
