package svf

import "math"

// DefaultQ is the Butterworth resonance 1/sqrt(2).
const DefaultQ = 0.70710678118654752440

// MaxAutoQ bounds the resonance produced by auto-Q.
const MaxAutoQ = 10.0

// Coefficients is an immutable TPT-SVF coefficient set.
//
// A is the bell/shelf gain factor, G the pre-warped frequency coefficient,
// K the damping term and M0, M1, M2 the output mix. A1, A2 and A3 are the
// feedback terms derived from G and K:
//
//	A1 = 1 / (1 + G*(G+K))
//	A2 = G * A1
//	A3 = G * A2
//
// The zero value is the null set: it produces silence and is not a valid
// design. Sets are replaced wholesale and never edited in place.
type Coefficients struct {
	A, G, K    float64
	M0, M1, M2 float64
	A1, A2, A3 float64
}

// NewCoefficientSet derives the feedback terms from a, g, k and the output mix.
// a, g and k must be non-zero.
func NewCoefficientSet(a, g, k, m0, m1, m2 float64) Coefficients {
	checkContract(a != 0, "coefficient a must be non-zero")
	checkContract(g != 0, "coefficient g must be non-zero")
	checkContract(k != 0, "coefficient k must be non-zero")

	a1 := 1 / (1 + g*(g+k))
	a2 := g * a1
	a3 := g * a2

	return Coefficients{
		A: a, G: g, K: k,
		M0: m0, M1: m1, M2: m2,
		A1: a1, A2: a2, A3: a3,
	}
}

// Passthrough returns a set whose output equals its input.
func Passthrough() Coefficients {
	return NewCoefficientSet(1, 1, 1, 1, 0, 0)
}

// IsZero reports whether c is the null set.
func (c Coefficients) IsZero() bool {
	return c == Coefficients{}
}

// CalculateAutoQ returns q unchanged when autoQ is false. Otherwise the
// resonance widens with the gain magnitude, (q/2)*10^(|gainDB|/20), and is
// clamped to MaxAutoQ.
func CalculateAutoQ(q, gainDB float64, autoQ bool) float64 {
	if !autoQ {
		return q
	}
	return math.Min(q*0.5*math.Pow(10, math.Abs(gainDB)*0.05), MaxAutoQ)
}

// prewarp returns tan(pi*f/fs).
func prewarp(sampleRate, frequency float64) float64 {
	return math.Tan(math.Pi * frequency / sampleRate)
}

// shelfGain converts dB to the half-slope linear factor 10^(gain/40).
func shelfGain(gainDB float64) float64 {
	return math.Pow(10, gainDB*0.025)
}

// MakeLowpass designs a low-pass set. Gain only affects auto-Q.
func MakeLowpass(sampleRate, frequency, gain, q float64, autoQ bool) Coefficients {
	checkDesign(sampleRate, frequency, q)
	k := 1 / CalculateAutoQ(q, gain, autoQ)
	return NewCoefficientSet(1, prewarp(sampleRate, frequency), k, 0, 0, 1)
}

// MakeBandpass designs a band-pass set. Gain only affects auto-Q.
func MakeBandpass(sampleRate, frequency, gain, q float64, autoQ bool) Coefficients {
	checkDesign(sampleRate, frequency, q)
	k := 1 / CalculateAutoQ(q, gain, autoQ)
	return NewCoefficientSet(1, prewarp(sampleRate, frequency), k, 0, 1, 0)
}

// MakeHighpass designs a high-pass set. Gain only affects auto-Q.
func MakeHighpass(sampleRate, frequency, gain, q float64, autoQ bool) Coefficients {
	checkDesign(sampleRate, frequency, q)
	k := 1 / CalculateAutoQ(q, gain, autoQ)
	return NewCoefficientSet(1, prewarp(sampleRate, frequency), k, 1, -k, -1)
}

// MakeNotch designs a notch set. Gain only affects auto-Q.
func MakeNotch(sampleRate, frequency, gain, q float64, autoQ bool) Coefficients {
	checkDesign(sampleRate, frequency, q)
	k := 1 / CalculateAutoQ(q, gain, autoQ)
	return NewCoefficientSet(1, prewarp(sampleRate, frequency), k, 1, -k, 0)
}

// MakeAllpass designs an allpass set. Gain only affects auto-Q.
func MakeAllpass(sampleRate, frequency, gain, q float64, autoQ bool) Coefficients {
	checkDesign(sampleRate, frequency, q)
	k := 1 / CalculateAutoQ(q, gain, autoQ)
	return NewCoefficientSet(1, prewarp(sampleRate, frequency), k, 1, -2*k, 0)
}

// MakeBell designs a peaking set with gain dB at the center frequency.
func MakeBell(sampleRate, frequency, gain, q float64, autoQ bool) Coefficients {
	checkDesign(sampleRate, frequency, q)
	a := shelfGain(gain)
	k := 1 / (CalculateAutoQ(q, gain, autoQ) * a)
	return NewCoefficientSet(a, prewarp(sampleRate, frequency), k, 1, k*(a*a-1), 0)
}

// MakeLowshelf designs a low-shelf set with gain dB below the corner.
func MakeLowshelf(sampleRate, frequency, gain, q float64, autoQ bool) Coefficients {
	checkDesign(sampleRate, frequency, q)
	a := shelfGain(gain)
	g := prewarp(sampleRate, frequency) / math.Sqrt(a)
	k := 1 / CalculateAutoQ(q, gain, autoQ)
	return NewCoefficientSet(a, g, k, 1, k*(a-1), a*a-1)
}

// MakeHighshelf designs a high-shelf set with gain dB above the corner.
func MakeHighshelf(sampleRate, frequency, gain, q float64, autoQ bool) Coefficients {
	checkDesign(sampleRate, frequency, q)
	a := shelfGain(gain)
	g := prewarp(sampleRate, frequency) * math.Sqrt(a)
	k := 1 / CalculateAutoQ(q, gain, autoQ)
	return NewCoefficientSet(a, g, k, a*a, k*(1-a)*a, 1-a*a)
}

// Make dispatches on t. It reports false for TypeNone and unknown types,
// which produce no coefficient change.
func Make(t Type, sampleRate, frequency, gain, q float64, autoQ bool) (Coefficients, bool) {
	switch t {
	case TypeLowpass:
		return MakeLowpass(sampleRate, frequency, gain, q, autoQ), true
	case TypeBandpass:
		return MakeBandpass(sampleRate, frequency, gain, q, autoQ), true
	case TypeHighpass:
		return MakeHighpass(sampleRate, frequency, gain, q, autoQ), true
	case TypeNotch:
		return MakeNotch(sampleRate, frequency, gain, q, autoQ), true
	case TypeAllpass:
		return MakeAllpass(sampleRate, frequency, gain, q, autoQ), true
	case TypeBell:
		return MakeBell(sampleRate, frequency, gain, q, autoQ), true
	case TypeLowshelf:
		return MakeLowshelf(sampleRate, frequency, gain, q, autoQ), true
	case TypeHighshelf:
		return MakeHighshelf(sampleRate, frequency, gain, q, autoQ), true
	default:
		return Coefficients{}, false
	}
}

// NewCoefficients validates its arguments and designs a set of type t.
// TypeNone returns ErrBypass.
func NewCoefficients(t Type, sampleRate, frequency, gain, q float64, autoQ bool) (Coefficients, error) {
	if !t.Valid() {
		return Coefficients{}, ErrInvalidType
	}
	if t == TypeNone {
		return Coefficients{}, ErrBypass
	}
	if err := validateDesign(sampleRate, frequency, q); err != nil {
		return Coefficients{}, err
	}
	if err := validateGain(gain); err != nil {
		return Coefficients{}, err
	}

	c, _ := Make(t, sampleRate, frequency, gain, q, autoQ)
	return c, nil
}
