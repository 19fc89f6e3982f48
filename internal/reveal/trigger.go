package reveal

import "fmt"

// Region is something that can be observed for visibility. The HTTP layer
// uses the lifetime of a streaming request; the CLI uses a terminal session.
type Region interface {
	Mounted() bool
}

// Observer is the host's viewport intersection capability.
//
// Observe begins delivering intersection ratios for region to report and
// returns a function that ends the observation. Returning ErrUnsupported (or
// any other error) makes the Trigger fail open.
type Observer interface {
	Observe(region Region, report func(ratio float64)) (release func(), err error)
}

type latch int

const (
	latchIdle latch = iota
	latchTriggered
)

// Trigger is a one-way visibility latch. It fires its callback the first time
// an observed intersection ratio reaches the threshold and ignores everything
// after that. A Trigger is not safe for concurrent use; it belongs to the
// goroutine that owns the region.
type Trigger struct {
	threshold float64
	state     latch
	onVisible func()
	release   func()
}

// NewTrigger returns an idle trigger for the given intersection threshold.
func NewTrigger(threshold float64) (*Trigger, error) {
	if !(threshold > 0 && threshold <= 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	return &Trigger{threshold: threshold}, nil
}

// Threshold returns the configured intersection ratio.
func (t *Trigger) Threshold() float64 { return t.threshold }

// Visible reports whether the trigger has fired.
func (t *Trigger) Visible() bool { return t.state == latchTriggered }

// Attach starts observing region. It is a no-op returning false when region
// is nil or not mounted yet; callers retry once the region mounts. A nil
// observer, or one that fails to observe, is treated as "always visible" and
// fires onVisible immediately.
func (t *Trigger) Attach(region Region, obs Observer, onVisible func()) bool {
	if region == nil || !region.Mounted() {
		return false
	}
	if t.state == latchTriggered {
		return true
	}
	t.onVisible = onVisible

	if obs == nil {
		t.fire()
		return true
	}

	release, err := obs.Observe(region, t.report)
	t.release = release
	if err != nil {
		t.Release()
		t.fire()
		return true
	}
	if t.state == latchTriggered {
		// the observer reported synchronously
		t.Release()
	}
	return true
}

// Release ends the underlying observation. Safe to call more than once and
// on every exit path.
func (t *Trigger) Release() {
	if t.release != nil {
		release := t.release
		t.release = nil
		release()
	}
}

func (t *Trigger) report(ratio float64) {
	if t.state == latchTriggered || ratio < t.threshold {
		return
	}
	t.fire()
	t.Release()
}

func (t *Trigger) fire() {
	if t.state == latchTriggered {
		return
	}
	t.state = latchTriggered
	if t.onVisible != nil {
		t.onVisible()
	}
}
