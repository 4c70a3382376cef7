package export

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/spoke-visualizer/internal/config"
	"github.com/iburimskiy/spoke-visualizer/internal/spectrum"
)

func testOptions(t *testing.T) Options {
	return Options{
		Dir:      filepath.Join(t.TempDir(), "frames"),
		Width:    32,
		Height:   24,
		FPS:      50,
		Settings: config.DefaultSettings(),
		Analysis: spectrum.Options{FFTSize: 256, Smoothing: 0.8, MinDecibels: -100, MaxDecibels: -30},
	}
}

func countPNGs(t *testing.T, dir string) int {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestRenderCoastsDownAfterTrackEnds(t *testing.T) {
	opts := testOptions(t)

	// 800 samples at 8 kHz is five frames of 160 samples; the sixth tick
	// sees the end, and the coast-down adds the rest of the decay window.
	frames, err := Render(context.Background(), beep.Take(800, beep.Silence(-1)), 8000, opts)
	require.NoError(t, err)
	assert.Equal(t, 5+config.FramesAfterPause, frames)
	assert.Equal(t, frames, countPNGs(t, opts.Dir))

	f, err := os.Open(filepath.Join(opts.Dir, FrameName(0)))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
}

func TestRenderCustomDecay(t *testing.T) {
	opts := testOptions(t)
	opts.Decay = 3

	// 200 samples: one playing frame, then the decay window.
	frames, err := Render(context.Background(), beep.Take(200, beep.Silence(-1)), 8000, opts)
	require.NoError(t, err)
	assert.Equal(t, 1+3, frames)
}

func TestRenderKeepsGoingOnBadShape(t *testing.T) {
	opts := testOptions(t)
	opts.Decay = 2
	opts.Settings.Shape = "Hexagon"

	frames, err := Render(context.Background(), beep.Take(200, beep.Silence(-1)), 8000, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, frames)
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames, err := Render(ctx, beep.Silence(-1), 8000, testOptions(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, frames)
}

func TestRenderValidatesOptions(t *testing.T) {
	opts := testOptions(t)
	opts.FPS = 0
	_, err := Render(context.Background(), beep.Silence(1), 8000, opts)
	assert.ErrorIs(t, err, ErrOptions)

	opts = testOptions(t)
	opts.Dir = ""
	_, err = Render(context.Background(), beep.Silence(1), 8000, opts)
	assert.ErrorIs(t, err, ErrOptions)
}

func TestRunDecodesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(320, beep.Silence(-1)), format))
	require.NoError(t, f.Close())

	opts := testOptions(t)
	opts.Decay = 1
	frames, err := Run(context.Background(), path, opts)
	require.NoError(t, err)
	assert.Equal(t, 2+1, frames)
}
