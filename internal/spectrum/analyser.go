// Package spectrum implements the analysis node behind the visualizer: it
// turns the most recent samples into byte magnitudes per frequency bin, the
// way a browser AnalyserNode reports getByteFrequencyData.
package spectrum

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Source yields the last n stereo samples, most recent last.
type Source interface {
	Snapshot(n int) [][2]float64
}

type Options struct {
	FFTSize int `yaml:"fft_size"`
	// Smoothing blends each frame with the previous one, in [0, 1).
	Smoothing   float64 `yaml:"smoothing"`
	MinDecibels float64 `yaml:"min_decibels"`
	MaxDecibels float64 `yaml:"max_decibels"`
}

func DefaultOptions() Options {
	return Options{
		FFTSize:     2048,
		Smoothing:   0.8,
		MinDecibels: -100,
		MaxDecibels: -30,
	}
}

type Analyser struct {
	src    Source
	opts   Options
	fft    *fourier.FFT
	window []float64

	input  []float64
	coeffs []complex128
	smooth []float64
}

// New builds an analyser over src. Invalid option fields fall back to the
// defaults; FFTSize is rounded up to a power of two.
func New(src Source, opts Options) *Analyser {
	def := DefaultOptions()
	if opts.FFTSize < 32 {
		opts.FFTSize = def.FFTSize
	}
	opts.FFTSize = nextPow2(opts.FFTSize)
	if opts.Smoothing < 0 || opts.Smoothing >= 1 {
		opts.Smoothing = def.Smoothing
	}
	if opts.MaxDecibels <= opts.MinDecibels {
		opts.MinDecibels, opts.MaxDecibels = def.MinDecibels, def.MaxDecibels
	}

	n := opts.FFTSize
	return &Analyser{
		src:    src,
		opts:   opts,
		fft:    fourier.NewFFT(n),
		window: blackman(n),
		input:  make([]float64, n),
		coeffs: make([]complex128, n/2+1),
		smooth: make([]float64, n/2),
	}
}

// SetSource swaps the sample source, e.g. when a new track is loaded. The
// smoothing history is kept so the picture does not jump.
func (a *Analyser) SetSource(src Source) { a.src = src }

func (a *Analyser) Options() Options { return a.opts }

func (a *Analyser) FrequencyBinCount() int { return a.opts.FFTSize / 2 }

// FillFrequencyData writes min(len(dst), FrequencyBinCount) magnitudes.
func (a *Analyser) FillFrequencyData(dst []uint8) {
	n := a.opts.FFTSize
	for i := range a.input {
		a.input[i] = 0
	}
	if a.src != nil {
		samples := a.src.Snapshot(n)
		if len(samples) > n {
			samples = samples[len(samples)-n:]
		}
		// Right-align so a short history is padded with silence at the front.
		off := n - len(samples)
		for i, s := range samples {
			a.input[off+i] = (s[0] + s[1]) / 2 * a.window[off+i]
		}
	}

	a.coeffs = a.fft.Coefficients(a.coeffs, a.input)

	tau := a.opts.Smoothing
	scale := 255 / (a.opts.MaxDecibels - a.opts.MinDecibels)
	for k := range a.smooth {
		mag := cmplx.Abs(a.coeffs[k]) / float64(n)
		a.smooth[k] = tau*a.smooth[k] + (1-tau)*mag
		if k >= len(dst) {
			continue
		}

		db := 20 * math.Log10(a.smooth[k])
		v := math.Floor(scale * (db - a.opts.MinDecibels))
		switch {
		case math.IsNaN(v) || v < 0:
			dst[k] = 0
		case v > 255:
			dst[k] = 255
		default:
			dst[k] = uint8(v)
		}
	}
}

// blackman returns the classic Blackman window (alpha = 0.16).
func blackman(n int) []float64 {
	const (
		a0 = 0.42
		a1 = 0.5
		a2 = 0.08
	)
	w := make([]float64, n)
	for i := range w {
		x := float64(i) / float64(n)
		w[i] = a0 - a1*math.Cos(2*math.Pi*x) + a2*math.Cos(4*math.Pi*x)
	}
	return w
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
