// Package export renders a track offline into a numbered PNG sequence, one
// image per display frame, using the same sampler, renderer and scheduler as
// the window.
package export

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/spoke-visualizer/internal/audio"
	"github.com/iburimskiy/spoke-visualizer/internal/config"
	"github.com/iburimskiy/spoke-visualizer/internal/render"
	"github.com/iburimskiy/spoke-visualizer/internal/sampler"
	"github.com/iburimskiy/spoke-visualizer/internal/scheduler"
	"github.com/iburimskiy/spoke-visualizer/internal/spectrum"
)

var ErrOptions = errors.New("export: invalid options")

type Options struct {
	Dir           string
	Width, Height int
	FPS           int
	Settings      config.Settings
	Analysis      spectrum.Options
	// Decay defaults to config.FramesAfterPause.
	Decay int
}

func (o Options) validate() error {
	switch {
	case o.Dir == "":
		return fmt.Errorf("%w: no output directory", ErrOptions)
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrOptions, o.Width, o.Height)
	case o.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrOptions, o.FPS)
	}
	return nil
}

// FrameName is the file name of frame i inside the output directory.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.png", i)
}

// Run decodes the track at path and renders it. It returns the number of
// frames written.
func Run(ctx context.Context, path string, opts Options) (int, error) {
	streamer, format, err := audio.Decode(path)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	log.Printf("exporting %s (%v at %d Hz) to %s", path,
		format.SampleRate.D(streamer.Len()).Round(time.Millisecond), format.SampleRate, opts.Dir)
	return Render(ctx, streamer, format.SampleRate, opts)
}

// Render plays src frame by frame. Playback counts as active until src is
// drained; silence follows, and the scheduler's coast-down decides when the
// last frame is written.
func Render(ctx context.Context, src beep.Streamer, rate beep.SampleRate, opts Options) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}
	if opts.Decay <= 0 {
		opts.Decay = config.FramesAfterPause
	}

	ended := false
	played := beep.Seq(src, beep.Callback(func() { ended = true }), beep.Silence(-1))
	tap := audio.NewTap(played, max(config.VisualRingSize, opts.Analysis.FFTSize))
	smp := sampler.New(spectrum.New(tap, opts.Analysis))

	chunk := make([][2]float64, max(rate.N(time.Second/time.Duration(opts.FPS)), 1))
	surface := render.NewRaster(opts.Width, opts.Height)
	sched := scheduler.New(opts.Decay)
	sched.Request(true)

	var (
		frames   int
		writeErr error
		lastErr  string
	)
	frame := func() {
		err := render.DrawFrame(surface, smp.Sample(), opts.Settings.ShapeParams(), opts.Settings.GradientParams())
		if err != nil && err.Error() != lastErr {
			lastErr = err.Error()
			log.Printf("frame %d: %v", frames, err)
		}
		writeErr = writePNG(filepath.Join(opts.Dir, FrameName(frames)), surface)
		frames++
	}

	for {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		// Advance playback by one frame's worth of audio.
		tap.Stream(chunk)
		if !sched.Tick(!ended, frame) {
			return frames, nil
		}
		if writeErr != nil {
			return frames, writeErr
		}
	}
}

func writePNG(path string, r *render.Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.Image()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
