package reveal

import (
	"fmt"
	"math"
	"time"
)

// DefaultSteps is how many ticks a run takes, whatever its target.
const DefaultSteps = 60

// Phase is the lifecycle of an Animator.
type Phase int

const (
	Idle Phase = iota
	Running
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Run is the numeric state of one count-up from zero to Target.
type Run struct {
	Target   float64
	Current  float64
	StepSize float64
	Elapsed  int
	Total    int
}

// NewRun validates target and steps and returns a run sitting at zero.
func NewRun(target float64, steps int) (Run, error) {
	if math.IsNaN(target) || math.IsInf(target, 0) || target < 0 {
		return Run{}, fmt.Errorf("%w: got %v", ErrInvalidTarget, target)
	}
	if steps <= 0 {
		return Run{}, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	return Run{
		Target:   target,
		StepSize: target / float64(steps),
		Total:    steps,
	}, nil
}

// Advance returns r moved forward by one tick. Current never passes Target
// and lands on it exactly at the last step, so a run takes Total ticks.
func Advance(r Run) Run {
	r.Elapsed++
	if r.Elapsed >= r.Total {
		r.Current = r.Target
		return r
	}
	r.Current = math.Min(r.Current+r.StepSize, r.Target)
	return r
}

// Value is the displayed value: Current truncated, never rounded.
func (r Run) Value() int { return int(math.Floor(r.Current)) }

// Reached reports whether Current has arrived at Target.
func (r Run) Reached() bool { return r.Current >= r.Target }

// Animator drives a single Run through Idle, Running and Completed. It does
// not own a clock; something else calls Tick at Interval.
type Animator struct {
	run      Run
	phase    Phase
	interval time.Duration
}

// NewAnimator builds an idle animator that will reach target after steps
// ticks spread over duration.
func NewAnimator(target float64, duration time.Duration, steps int) (*Animator, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidDuration, duration)
	}
	run, err := NewRun(target, steps)
	if err != nil {
		return nil, err
	}
	interval := duration / time.Duration(steps)
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %s over %d steps leaves no time between ticks", ErrInvalidDuration, duration, steps)
	}
	return &Animator{run: run, interval: interval}, nil
}

// Start moves an idle animator to Running. Later calls return false.
func (a *Animator) Start() bool {
	if a.phase != Idle {
		return false
	}
	a.phase = Running
	return true
}

// Tick advances a running animator by one step and returns the displayed
// value. It reports false, leaving the animator untouched, when it is idle or
// already completed.
func (a *Animator) Tick() (int, bool) {
	if a.phase != Running {
		return a.run.Value(), false
	}
	a.run = Advance(a.run)
	if a.run.Reached() {
		a.phase = Completed
	}
	return a.run.Value(), true
}

func (a *Animator) Phase() Phase { return a.phase }
func (a *Animator) Value() int { return a.run.Value() }
func (a *Animator) Target() float64 { return a.run.Target }
func (a *Animator) Ticks() int { return a.run.Elapsed }
func (a *Animator) Interval() time.Duration { return a.interval }
func (a *Animator) Run() Run { return a.run }
