package core

import "math"

// defaultEpsilon is the tolerance NearlyEqual falls back to when eps <= 0.
const defaultEpsilon = 1e-12

// denormalThreshold is the register magnitude below which a decaying filter
// tail is treated as silence.
const denormalThreshold = 1e-30

// Clamp restricts value to the closed interval spanned by lo and hi. The
// bounds may be given in either order, so a descending sweep can be clamped
// against its own endpoints.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Min(math.Max(value, lo), hi)
}

// NearlyEqual compares a and b within eps. Differences up to eps always
// match; beyond that the difference is taken relative to the larger
// magnitude, which keeps gain factors and frequencies in the kHz range
// comparable with the same tolerance.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	scale := math.Max(math.Abs(a), math.Abs(b))
	return scale > 0 && diff/scale <= eps
}

// IsFinite reports whether x is usable as a parameter value.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FlushDenormals returns zero for magnitudes below 1e-30 and x otherwise.
// Filters apply it to their state once per block.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalThreshold {
		return 0
	}

	return x
}

// DBToLinear converts an amplitude level in dB to a linear factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude to dB. Silence maps to -Inf and a
// negative amplitude, which has no level, to NaN.
func LinearToDB(amplitude float64) float64 {
	switch {
	case amplitude < 0:
		return math.NaN()
	case amplitude == 0:
		return math.Inf(-1)
	default:
		return 20 * math.Log10(amplitude)
	}
}
