package reveal

import "errors"

// Configuration errors. Constructors wrap these with the offending value, so
// callers should match with errors.Is.
var (
	ErrInvalidTarget    = errors.New("reveal: target must be a finite number >= 0")
	ErrInvalidDuration  = errors.New("reveal: duration must be > 0")
	ErrInvalidSteps     = errors.New("reveal: step count must be > 0")
	ErrInvalidThreshold = errors.New("reveal: threshold must be in (0, 1]")
)

// ErrUnsupported is returned by an Observer when the host has no viewport
// intersection capability. A Trigger treats it as "already visible".
var ErrUnsupported = errors.New("reveal: intersection observation unsupported")
