package reveal

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Frame is what a group emits after each shared tick.
type Frame struct {
	Tick   int    `json:"tick"`
	Values []int  `json:"values"`
	Done   []bool `json:"done"`
}

// Group is a set of animators revealed together and advanced by one tick
// source, so their values change in the same pass. A Group is owned by the
// goroutine that drives it.
type Group struct {
	animators []*Animator
	interval  time.Duration
	ticks     int
	started   bool
}

// NewGroup builds one animator per target, all sharing duration and steps.
func NewGroup(duration time.Duration, steps int, targets ...float64) (*Group, error) {
	g := &Group{animators: make([]*Animator, 0, len(targets))}
	for _, target := range targets {
		a, err := NewAnimator(target, duration, steps)
		if err != nil {
			return nil, err
		}
		g.animators = append(g.animators, a)
	}
	if len(targets) == 0 {
		// still validate the timing configuration
		timing, err := NewAnimator(0, duration, steps)
		if err != nil {
			return nil, err
		}
		g.interval = timing.Interval()
	} else {
		g.interval = g.animators[0].Interval()
	}
	return g, nil
}

// Start starts every animator. Only the first call has any effect.
func (g *Group) Start() bool {
	if g.started {
		return false
	}
	g.started = true
	for _, a := range g.animators {
		a.Start()
	}
	return true
}

func (g *Group) Started() bool { return g.started }
func (g *Group) Interval() time.Duration { return g.interval }
func (g *Group) Ticks() int { return g.ticks }
func (g *Group) Animators() []*Animator { return g.animators }
func (g *Group) Len() int { return len(g.animators) }

// Done reports whether the group was started and every animator completed.
func (g *Group) Done() bool {
	if !g.started {
		return false
	}
	for _, a := range g.animators {
		if a.Phase() != Completed {
			return false
		}
	}
	return true
}

// Tick advances every running animator once and returns the resulting frame.
// Ticking a group that has not been started changes nothing.
func (g *Group) Tick() Frame {
	if !g.started {
		return g.Frame()
	}
	g.ticks++
	for _, a := range g.animators {
		a.Tick()
	}
	return g.Frame()
}

// Frame snapshots the current values without advancing.
func (g *Group) Frame() Frame {
	f := Frame{
		Tick:   g.ticks,
		Values: make([]int, len(g.animators)),
		Done:   make([]bool, len(g.animators)),
	}
	for i, a := range g.animators {
		f.Values[i] = a.Value()
		f.Done[i] = a.Phase() == Completed
	}
	return f
}

// Drive ticks the group at its interval, calling emit after every tick, until
// all animators complete or ctx is cancelled. An unstarted group emits
// nothing. The tick source is stopped on every return path.
func (g *Group) Drive(ctx context.Context, clock clockwork.Clock, emit func(Frame)) {
	if !g.started || g.Done() {
		return
	}
	ticker := clock.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if ctx.Err() != nil {
				return
			}
			emit(g.Tick())
			if g.Done() {
				return
			}
		}
	}
}
