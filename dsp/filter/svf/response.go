package svf

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-svf/dsp/core"
)

// Response evaluates the transfer function at z = exp(-2*pi*i*f/fs):
//
//	H(z) = m0 + (g²·m2·(z²+2z+1) - g·m1·(z²-1)) /
//	            (g² + g·k + z²·(g² - g·k + 1) + z·(2g² - 2) + 1)
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))

	g, k := c.G, c.K
	gsq := g * g
	gk := g * k
	zsq := z * z

	num := complex(gsq*c.M2, 0)*(zsq+2*z+1) - complex(g*c.M1, 0)*(zsq-1)
	den := complex(gsq+gk+1, 0) + zsq*complex(gsq-gk+1, 0) + z*complex(2*gsq-2, 0)

	return complex(c.M0, 0) + num/den
}

// MagnitudeForFrequency returns |H| at freqHz.
func (c Coefficients) MagnitudeForFrequency(freqHz, sampleRate float64) float64 {
	return cmplx.Abs(c.Response(freqHz, sampleRate))
}

// PhaseForFrequency returns arg(H) in radians, in [-pi, pi].
func (c Coefficients) PhaseForFrequency(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// MagnitudeDB returns 20*log10(|H|) at freqHz.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(c.MagnitudeForFrequency(freqHz, sampleRate))
}

// MagnitudeForFrequencies writes |H| for each entry of freqs into dst and
// returns dst. dst is grown when shorter than freqs.
func (c Coefficients) MagnitudeForFrequencies(dst, freqs []float64, sampleRate float64) []float64 {
	n := len(freqs)
	dst = core.EnsureLen(dst, n)
	if n == 0 {
		return dst
	}

	parts := make([]float64, 2*n)
	re, im := parts[:n], parts[n:]
	for i, f := range freqs {
		h := c.Response(f, sampleRate)
		re[i] = real(h)
		im[i] = imag(h)
	}

	vecmath.Magnitude(dst, re, im)
	return dst
}

// PhaseForFrequencies writes arg(H) for each entry of freqs into dst and
// returns dst. dst is grown when shorter than freqs.
func (c Coefficients) PhaseForFrequencies(dst, freqs []float64, sampleRate float64) []float64 {
	dst = core.EnsureLen(dst, len(freqs))
	for i, f := range freqs {
		dst[i] = c.PhaseForFrequency(f, sampleRate)
	}
	return dst
}
