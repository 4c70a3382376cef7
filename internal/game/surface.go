package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/spoke-visualizer/internal/render"
)

type gradientKey struct {
	x0, y0, x1, y1 float64
	from, to       color.RGBA
}

// canvas is the offscreen image the visualization is drawn into. It keeps the
// last frame, so the picture stays put while the scheduler is idle.
type canvas struct {
	img *ebiten.Image

	// The gradient is repainted on the CPU only when its parameters change.
	bg       *ebiten.Image
	bgPixels *image.RGBA
	bgKey    gradientKey
	bgValid  bool
}

func newCanvas(width, height int) *canvas {
	return &canvas{
		img:      ebiten.NewImage(width, height),
		bg:       ebiten.NewImage(width, height),
		bgPixels: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (c *canvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(c.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

func (c *canvas) StrokeCircle(cx, cy, r, width float64, clr color.Color) {
	vector.StrokeCircle(c.img, float32(cx), float32(cy), float32(r), float32(width), clr, true)
}

func (c *canvas) FillLinearGradient(x0, y0, x1, y1 float64, from, to color.Color) {
	key := gradientKey{x0, y0, x1, y1, toRGBA(from), toRGBA(to)}
	if !c.bgValid || key != c.bgKey {
		render.PaintGradient(c.bgPixels, x0, y0, x1, y1, key.from, key.to)
		c.bg.WritePixels(c.bgPixels.Pix)
		c.bgKey = key
		c.bgValid = true
	}
	c.img.DrawImage(c.bg, &ebiten.DrawImageOptions{})
}

func (c *canvas) dispose() {
	c.img.Deallocate()
	c.bg.Deallocate()
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
