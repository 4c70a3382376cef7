package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// circleSegments is how many straight pieces approximate a stroked circle.
const circleSegments = 128

// Raster is an offscreen Surface backed by an *image.RGBA.
type Raster struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

func NewRaster(width, height int) *Raster {
	return &Raster{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: vector.NewRasterizer(width, height),
	}
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (r *Raster) FillLinearGradient(x0, y0, x1, y1 float64, from, to color.Color) {
	PaintGradient(r.img, x0, y0, x1, y1, from, to)
}

// StrokeLine fills the quad of the given width around the segment. Zero-length
// segments leave no pixels, like a butt-capped canvas stroke.
func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Half-width normal.
	nx, ny := -dy/length*width/2, dx/length*width/2

	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	r.ras.DrawOp = draw.Over
	r.ras.MoveTo(float32(x0+nx), float32(y0+ny))
	r.ras.LineTo(float32(x1+nx), float32(y1+ny))
	r.ras.LineTo(float32(x1-nx), float32(y1-ny))
	r.ras.LineTo(float32(x0-nx), float32(y0-ny))
	r.ras.ClosePath()
	r.ras.Draw(r.img, b, image.NewUniform(orBlack(clr)), image.Point{})
}

func (r *Raster) StrokeCircle(cx, cy, radius, width float64, clr color.Color) {
	step := 2 * math.Pi / circleSegments
	for i := 0; i < circleSegments; i++ {
		a0, a1 := float64(i)*step, float64(i+1)*step
		r.StrokeLine(
			cx+radius*math.Cos(a0), cy+radius*math.Sin(a0),
			cx+radius*math.Cos(a1), cy+radius*math.Sin(a1),
			width, clr,
		)
	}
}
