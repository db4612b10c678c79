// Package testutil holds signal generators and numeric assertions shared by
// the filter tests.
package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// DFTAt evaluates the discrete-time Fourier transform of x at a single
// frequency, X(f) = sum x[n]·exp(-2πi·f·n/fs). For an impulse response this
// is the filter's frequency response.
func DFTAt(x []float64, freqHz, sampleRate float64) complex128 {
	w := -2 * math.Pi * freqHz / sampleRate
	var sum complex128
	for n, v := range x {
		if v == 0 {
			continue
		}
		sum += complex(v, 0) * cmplx.Exp(complex(0, w*float64(n)))
	}
	return sum
}
