package render

import "math"

type Point struct {
	X, Y float64
}

// Segment is one stroked line; a spoke of zero magnitude has From == To.
type Segment struct {
	From, To Point
}

func (s Segment) Length() float64 {
	return math.Hypot(s.To.X-s.From.X, s.To.Y-s.From.Y)
}

// Spoke returns the segment anchored at (x, y) pointing along angle, whose
// length is maxLen scaled linearly by magnitude/255.
func Spoke(x, y, angle, maxLen float64, magnitude uint8) Segment {
	length := maxLen * float64(magnitude) / 255
	return Segment{
		From: Point{x, y},
		To:   Point{x + length*math.Cos(angle), y + length*math.Sin(angle)},
	}
}

// binAt reads the snapshot at i, clamped to its last bin. Empty snapshots read as silence.
func binAt(snapshot []uint8, i int) uint8 {
	if len(snapshot) == 0 {
		return 0
	}
	if i >= len(snapshot) {
		i = len(snapshot) - 1
	}
	if i < 0 {
		i = 0
	}
	return snapshot[i]
}
