package smooth

import "math"

// stepEpsilon absorbs rounding in duration*sampleRate so that, for example,
// 0.05 s at 48 kHz always yields 2400 steps.
const stepEpsilon = 1e-9

// MaxSteps bounds the ramp length. Longer durations are clamped to it.
const MaxSteps = math.MaxInt32

// LinearRamp is a linearly smoothed control value.
type LinearRamp struct {
	current float64
	target  float64
	step    float64

	countdown   int
	stepsToGoal int
}

// NewLinearRamp returns a settled ramp holding initial.
func NewLinearRamp(initial float64) LinearRamp {
	return LinearRamp{current: initial, target: initial}
}

// Reset sets the ramp length from a sample rate and duration and snaps the
// current value onto the target. A non-positive product disables smoothing
// and an oversized one is clamped to MaxSteps.
func (r *LinearRamp) Reset(sampleRate, rampSeconds float64) {
	steps := 0
	if sampleRate > 0 && rampSeconds > 0 {
		n := math.Floor(rampSeconds*sampleRate + stepEpsilon)
		if n >= MaxSteps {
			steps = MaxSteps
		} else {
			steps = int(n)
		}
	}

	r.ResetSteps(steps)
}

// ResetSteps sets the ramp length in steps and snaps to the target.
func (r *LinearRamp) ResetSteps(steps int) {
	steps = min(max(steps, 0), MaxSteps)

	r.stepsToGoal = steps
	r.SetCurrentAndTarget(r.target)
}

// SetCurrentAndTarget jumps to value with no glide.
func (r *LinearRamp) SetCurrentAndTarget(value float64) {
	r.current = value
	r.target = value
	r.step = 0
	r.countdown = 0
}

// SetTarget starts a ramp from the current value toward target. Setting the
// same target again is a no-op; a zero-length ramp jumps immediately.
func (r *LinearRamp) SetTarget(target float64) {
	if target == r.target {
		return
	}

	if r.stepsToGoal <= 0 {
		r.SetCurrentAndTarget(target)
		return
	}

	r.target = target
	r.countdown = r.stepsToGoal
	r.step = (r.target - r.current) / float64(r.countdown)
}

// Next advances one step and returns the new current value. The final step
// lands exactly on the target.
func (r *LinearRamp) Next() float64 {
	if r.countdown <= 0 {
		return r.target
	}

	r.countdown--

	if r.countdown > 0 {
		r.current += r.step
	} else {
		r.current = r.target
	}

	return r.current
}

// Skip advances n steps and returns the resulting current value.
func (r *LinearRamp) Skip(n int) float64 {
	if n <= 0 {
		return r.current
	}

	if n >= r.countdown {
		r.SetCurrentAndTarget(r.target)
		return r.target
	}

	r.current += r.step * float64(n)
	r.countdown -= n

	return r.current
}

// IsSmoothing reports whether the ramp has not yet reached its target.
func (r *LinearRamp) IsSmoothing() bool { return r.countdown > 0 }

// Current returns the current value.
func (r *LinearRamp) Current() float64 { return r.current }

// Target returns the value the ramp is heading to.
func (r *LinearRamp) Target() float64 { return r.target }

// StepsRemaining returns the number of Next calls left before the target.
func (r *LinearRamp) StepsRemaining() int { return r.countdown }

// Steps returns the configured ramp length in steps.
func (r *LinearRamp) Steps() int { return r.stepsToGoal }
