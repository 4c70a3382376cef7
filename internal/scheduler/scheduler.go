// Package scheduler decides on every display tick whether a new frame is
// rendered. It replaces a self-rescheduling callback with an explicit state
// machine that an external tick source polls.
package scheduler

import "fmt"

// DefaultDecay is the number of frames rendered after playback pauses.
const DefaultDecay = 60

type State int

const (
	Idle State = iota
	Looping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Looping:
		return "looping"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Scheduler is not safe for concurrent use; it is driven from the single
// goroutine that renders.
type Scheduler struct {
	decay           int
	state           State
	continuous      bool
	framesRemaining int
}

// New returns an idle scheduler. A non-positive decay uses DefaultDecay.
func New(decay int) *Scheduler {
	if decay <= 0 {
		decay = DefaultDecay
	}
	return &Scheduler{decay: decay}
}

func (s *Scheduler) State() State { return s.state }

func (s *Scheduler) FramesRemaining() int { return s.framesRemaining }

func (s *Scheduler) Continuous() bool { return s.continuous }

// Request schedules at least one more frame. A continuous request keeps the
// loop alive for as long as playback is active and then coasts down; a
// one-shot request renders a single frame. A request made while looping joins
// the running loop instead of starting another one.
func (s *Scheduler) Request(continuous bool) {
	if continuous {
		s.continuous = true
	}
	if s.state == Idle {
		s.state = Looping
		s.framesRemaining = 0
	}
}

// Tick advances one display refresh. When looping it calls frame and reports
// true; when idle it does nothing and reports false.
func (s *Scheduler) Tick(playing bool, frame func()) bool {
	if s.state == Idle {
		return false
	}
	if frame != nil {
		frame()
	}

	if playing && s.continuous {
		s.framesRemaining = s.decay
	} else {
		s.continuous = false
	}

	if s.framesRemaining > 0 {
		s.framesRemaining--
	} else {
		s.state = Idle
	}
	return true
}
