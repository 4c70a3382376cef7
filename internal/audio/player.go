package audio

import (
	"errors"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"

	"github.com/iburimskiy/spoke-visualizer/internal/config"
)

var ErrNoTrack = errors.New("no track loaded")

// Output is where a Player sends its stream. The game backs it with
// beep/speaker. Lock and Unlock guard state shared with the output goroutine;
// Init, Play and Clear lock on their own and must not be called under Lock.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// Player plays one track at a time. The chain is
// decoder -> ctrl -> tap -> gain -> output, so the tap hears silence while
// paused or after the end and the analyser decays naturally.
//
// Methods are called from a single goroutine; fields the output goroutine
// reads are changed under Output.Lock.
type Player struct {
	out Output

	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	gain     *effects.Gain

	volume       float64
	initDone     bool
	ended        atomic.Bool
	lastSeekTime time.Time
}

func NewPlayer(out Output, volume float64) *Player {
	return &Player{out: out, volume: volume}
}

// gainFor maps the user volume onto effects.Gain, which scales by 1+Gain.
func gainFor(volume float64) float64 {
	return volume*config.VolumeStart - 1
}

// Load stops the current track, decodes path and starts playing it.
func (p *Player) Load(path string) error {
	return p.load(path, false)
}

func (p *Player) load(path string, paused bool) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}
	log.Printf("loaded %s", path)

	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone {
		if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return err
		}
		p.initDone = true
	} else if p.format.SampleRate != format.SampleRate {
		// Re-init when sample rate changes
		p.stop()
		if err := p.out.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return err
		}
	} else {
		p.stop()
	}

	p.ended.Store(false)
	ctrl := &beep.Ctrl{Streamer: streamer, Paused: paused}
	tail := beep.Seq(ctrl, beep.Callback(func() { p.ended.Store(true) }), beep.Silence(-1))
	tap := NewTap(tail, config.VisualRingSize)
	gain := &effects.Gain{Streamer: tap, Gain: gainFor(p.volume)}

	p.path = path
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.gain = gain

	p.out.Play(gain)
	return nil
}

func (p *Player) stop() {
	// Clear takes the output lock itself.
	p.out.Clear()
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.gain = nil
}

// TogglePause pauses or resumes. A track that has ended starts over.
func (p *Player) TogglePause() error {
	if p.ctrl == nil {
		return ErrNoTrack
	}
	if p.ended.Load() {
		return p.Load(p.path)
	}
	p.out.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	p.out.Unlock()
	return nil
}

// Paused reports whether nothing is audibly playing.
func (p *Player) Paused() bool {
	if p.ctrl == nil || p.ended.Load() {
		return true
	}
	p.out.Lock()
	defer p.out.Unlock()
	return p.ctrl.Paused
}

func (p *Player) Loaded() bool { return p.ctrl != nil }

// Tap is the analysis source of the current track, or nil. It changes
// whenever the track is reloaded.
func (p *Player) Tap() *Tap { return p.tap }

func (p *Player) SetVolume(volume float64) {
	p.volume = volume
	if p.gain == nil {
		return
	}
	p.out.Lock()
	p.gain.Gain = gainFor(volume)
	p.out.Unlock()
}

func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	p.out.Lock()
	pos := p.streamer.Position()
	p.out.Unlock()
	return p.format.SampleRate.D(pos)
}

// Seek jumps to a fraction of the track. Calls within 50ms of the previous
// seek are dropped to keep drags cheap. Seeking a track that has ended
// reloads it paused at the new position.
func (p *Player) Seek(frac float64) error {
	if p.streamer == nil {
		return ErrNoTrack
	}
	if time.Since(p.lastSeekTime) < 50*time.Millisecond {
		return nil
	}
	if p.ended.Load() {
		if err := p.load(p.path, true); err != nil {
			return err
		}
	}

	maxPos := p.streamer.Len()
	seekPos := min(int(math.Max(0, math.Min(1, frac))*float64(maxPos)), maxPos-1)
	seekPos = max(seekPos, 0)

	p.out.Lock()
	err := p.streamer.Seek(seekPos)
	p.out.Unlock()
	if err != nil {
		return err
	}
	p.lastSeekTime = time.Now()
	return nil
}

func (p *Player) Close() {
	if p.initDone {
		p.stop()
	}
}
