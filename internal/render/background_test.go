package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	black = color.RGBA{0, 0, 0, 0xff}
	navy  = color.RGBA{0x08, 0x0c, 0x18, 0xff}
	slate = color.RGBA{0x1d, 0x27, 0x31, 0xff}
)

func TestDrawBackgroundAxes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind GradientKind
		want fill
	}{
		{Solid, fill{0, 0, 0, 480, black, black}},
		{Vertical, fill{0, 0, 0, 480, black, slate}},
		{Horizontal, fill{0, 0, 640, 0, black, slate}},
	}
	for _, tc := range cases {
		r := &recorder{w: 640, h: 480}
		require.NoError(t, DrawBackground(r, GradientParams{Kind: tc.kind, From: black, To: slate}))
		require.Len(t, r.fills, 1, "%s", tc.kind)
		assert.Equal(t, tc.want, r.fills[0], "%s", tc.kind)
	}
}

func TestDrawBackgroundUnknown(t *testing.T) {
	t.Parallel()

	r := &recorder{w: 10, h: 10}
	err := DrawBackground(r, GradientParams{Kind: "Radial", From: black, To: slate})
	require.ErrorIs(t, err, ErrUnknownGradient)
	assert.Empty(t, r.fills)
}

func TestDrawFrameFailsSoftPerElement(t *testing.T) {
	t.Parallel()

	r := &recorder{w: 100, h: 100}
	err := DrawFrame(r, []uint8{255}, ShapeParams{Kind: Circle, Spokes: 3}, GradientParams{Kind: "Nope"})
	require.ErrorIs(t, err, ErrUnknownGradient)
	assert.Empty(t, r.fills)
	assert.Len(t, r.lines, 3, "shape is still drawn")

	r = &recorder{w: 100, h: 100}
	err = DrawFrame(r, nil, ShapeParams{Kind: "Nope", Spokes: 3}, GradientParams{Kind: Vertical, From: navy, To: slate})
	require.ErrorIs(t, err, ErrUnknownShape)
	assert.Len(t, r.fills, 1, "background is still drawn")
	assert.Empty(t, r.lines)

	r = &recorder{w: 100, h: 100}
	assert.NoError(t, DrawFrame(r, nil, ShapeParams{Kind: Triangle, Spokes: 3}, GradientParams{Kind: Solid, From: navy}))
}
