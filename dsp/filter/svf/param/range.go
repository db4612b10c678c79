package param

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-svf/dsp/core"
)

// ErrOutOfRange is wrapped by Validate failures.
var ErrOutOfRange = errors.New("param: value out of range")

// Scale selects how a Range maps between plain and normalised values.
type Scale int

const (
	// ScaleLinear maps linearly.
	ScaleLinear Scale = iota
	// ScaleLog maps logarithmically; Min must be > 0.
	ScaleLog
	// ScaleSkew raises the linear proportion to Skew. Skew < 1 spends
	// more of the normalised domain on the low end.
	ScaleSkew
	// ScaleSymmetricSkew applies Skew outward from the centre of the
	// range, so both halves get the same resolution near the middle.
	ScaleSymmetricSkew
)

// Range is a closed interval of plain values with a normalisation scale.
type Range struct {
	Min, Max float64
	Scale    Scale
	Skew     float64
}

// Clamp limits v to [Min, Max]. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return core.Clamp(v, r.Min, r.Max)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ToNormalised maps a plain value into [0, 1]. Values outside the range
// are clamped first.
func (r Range) ToNormalised(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	v = r.Clamp(v)

	switch r.Scale {
	case ScaleLog:
		lo := math.Log(r.Min)
		return (math.Log(v) - lo) / (math.Log(r.Max) - lo)
	case ScaleSkew:
		return math.Pow((v-r.Min)/(r.Max-r.Min), r.skew())
	case ScaleSymmetricSkew:
		d := 2*(v-r.Min)/(r.Max-r.Min) - 1
		return 0.5 * (1 + math.Copysign(math.Pow(math.Abs(d), r.skew()), d))
	default:
		return (v - r.Min) / (r.Max - r.Min)
	}
}

// FromNormalised maps n in [0, 1] back to a plain value. n is clamped to
// [0, 1].
func (r Range) FromNormalised(n float64) float64 {
	n = clamp01(n)

	var v float64
	switch r.Scale {
	case ScaleLog:
		lo := math.Log(r.Min)
		v = math.Exp(lo + n*(math.Log(r.Max)-lo))
	case ScaleSkew:
		if n > 0 {
			n = math.Exp(math.Log(n) / r.skew())
		}
		v = r.Min + (r.Max-r.Min)*n
	case ScaleSymmetricSkew:
		d := 2*n - 1
		v = r.Min + 0.5*(r.Max-r.Min)*(1+math.Copysign(math.Pow(math.Abs(d), 1/r.skew()), d))
	default:
		v = r.Min + (r.Max-r.Min)*n
	}
	return r.Clamp(v)
}

func clamp01(n float64) float64 {
	if math.IsNaN(n) || n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

func (r Range) skew() float64 {
	if r.Skew <= 0 {
		return 1
	}
	return r.Skew
}

func (r Range) check(name string, v float64) error {
	if !r.Contains(v) {
		return fmt.Errorf("%w: %s %v not in [%v, %v]", ErrOutOfRange, name, v, r.Min, r.Max)
	}
	return nil
}
