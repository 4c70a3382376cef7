package render

import (
	"fmt"
	"image/color"
	"math"
)

type ShapeKind string

const (
	Circle   ShapeKind = "Circle"
	Triangle ShapeKind = "Triangle"
)

// ShapeKinds lists the supported shapes in cycling order.
var ShapeKinds = []ShapeKind{Circle, Triangle}

// DefaultMaxSpokeRatio is the maximum spoke length as a fraction of the shorter canvas axis.
const DefaultMaxSpokeRatio = 0.25

type ShapeParams struct {
	Kind   ShapeKind
	Spokes int
	Color  color.Color
	// MaxSpokeRatio falls back to DefaultMaxSpokeRatio when zero.
	MaxSpokeRatio float64
}

func (p ShapeParams) maxSpokeLen(shortAxis float64) float64 {
	ratio := p.MaxSpokeRatio
	if ratio <= 0 {
		ratio = DefaultMaxSpokeRatio
	}
	return shortAxis * ratio
}

// Geometry is everything a shape strokes in one frame.
type Geometry struct {
	Center Point
	Radius float64
	// HasCircle is set for shapes whose base is the circle of Radius around Center.
	HasCircle bool
	// Outline holds the structural segments, which do not react to audio.
	Outline []Segment
	Spokes  []Segment
}

// Layout computes the geometry of p on a width x height surface. It is pure:
// the same inputs always give the same segments.
func Layout(width, height float64, snapshot []uint8, p ShapeParams) (Geometry, error) {
	if p.Spokes <= 0 || p.Spokes > MaxSpokes {
		return Geometry{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidSpokes, p.Spokes, MaxSpokes)
	}
	if width <= 0 || height <= 0 {
		return Geometry{}, fmt.Errorf("%w: %vx%v", ErrDegenerateSurface, width, height)
	}

	switch p.Kind {
	case Circle:
		return circleLayout(width, height, snapshot, p), nil
	case Triangle:
		return triangleLayout(width, height, snapshot, p), nil
	default:
		return Geometry{}, fmt.Errorf("%w: %q", ErrUnknownShape, p.Kind)
	}
}

func circleLayout(width, height float64, snapshot []uint8, p ShapeParams) Geometry {
	shortAxis := math.Min(width, height)
	center := Point{width / 2, height / 2}
	radius := shortAxis / 4
	maxLen := p.maxSpokeLen(shortAxis)

	g := Geometry{
		Center:    center,
		Radius:    radius,
		HasCircle: true,
		Spokes:    make([]Segment, 0, p.Spokes),
	}

	n := len(snapshot)
	for pos := 0; pos < p.Spokes; pos++ {
		// Starts at the top and proceeds clockwise.
		angle := (2*math.Pi/float64(p.Spokes))*float64(pos) - math.Pi/2

		x := center.X + radius*math.Cos(angle)
		y := center.Y + radius*math.Sin(angle)

		bin := pos * n / p.Spokes
		g.Spokes = append(g.Spokes, Spoke(x, y, angle, maxLen, binAt(snapshot, bin)))
	}
	return g
}

func triangleLayout(width, height float64, snapshot []uint8, p ShapeParams) Geometry {
	shortAxis := math.Min(width, height)
	center := Point{width / 2, height / 2}
	radius := shortAxis / 3
	maxLen := p.maxSpokeLen(shortAxis)

	top := Point{center.X, center.Y - radius}
	bottomRight := Point{center.X + radius*math.Sin(math.Pi/3), center.Y + radius*math.Cos(math.Pi/3)}
	bottomLeft := Point{center.X - radius*math.Sin(math.Pi/3), bottomRight.Y}

	side := 2 * radius * math.Cos(math.Pi/6)
	g := Geometry{
		Center: center,
		Radius: radius,
		Outline: []Segment{
			Spoke(top.X, top.Y, math.Pi/3, side, 255),
			Spoke(bottomRight.X, bottomRight.Y, math.Pi, side, 255),
			Spoke(bottomLeft.X, bottomLeft.Y, -math.Pi/3, side, 255),
		},
		Spokes: make([]Segment, 0, p.Spokes),
	}

	third := p.Spokes / 3
	if third < 1 {
		third = 1
	}

	for pos := 0; pos < p.Spokes; pos++ {
		var start, end Point
		var angle float64
		switch {
		case pos < third:
			start, end, angle = top, bottomRight, -math.Pi/6
		case pos < 2*third:
			start, end, angle = bottomLeft, bottomRight, math.Pi/2
		default:
			// Spokes left over by the integer division wrap around this edge.
			start, end, angle = bottomLeft, top, -5*math.Pi/6
		}

		frac := float64(pos%third) / float64(third)
		x := start.X + (end.X-start.X)*frac
		y := start.Y + (end.Y-start.Y)*frac

		g.Spokes = append(g.Spokes, Spoke(x, y, angle, maxLen, binAt(snapshot, pos)))
	}
	return g
}

// DrawShape strokes the shape for snapshot onto s. It does not clear s; on
// error nothing is drawn.
func DrawShape(s Surface, snapshot []uint8, p ShapeParams) error {
	w, h := s.Size()
	g, err := Layout(w, h, snapshot, p)
	if err != nil {
		return err
	}

	clr := p.Color
	if clr == nil {
		clr = color.White
	}
	if g.HasCircle {
		s.StrokeCircle(g.Center.X, g.Center.Y, g.Radius, SpokeWidth, clr)
	}
	for _, seg := range g.Outline {
		s.StrokeLine(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, SpokeWidth, clr)
	}
	for _, seg := range g.Spokes {
		s.StrokeLine(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, SpokeWidth, clr)
	}
	return nil
}
