package svf

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-svf/dsp/core"
)

// ResponseCurve evaluates a coefficient set over a fixed log-spaced
// frequency grid for display. Buffers are allocated once by
// NewResponseCurve and reused by every Evaluate call.
type ResponseCurve struct {
	freqs  []float64
	mags   []float64
	magsDB []float64
	phases []float64
}

// NewResponseCurve returns a curve of numPoints log-spaced frequencies from
// minHz to maxHz inclusive.
func NewResponseCurve(numPoints int, minHz, maxHz float64) (*ResponseCurve, error) {
	if numPoints < 2 {
		return nil, fmt.Errorf("svf: response curve needs at least 2 points: %d", numPoints)
	}
	if !core.IsFinite(minHz) || !core.IsFinite(maxHz) || minHz <= 0 || maxHz <= minHz {
		return nil, fmt.Errorf("svf: response curve range must satisfy 0 < min < max: [%v, %v]", minHz, maxHz)
	}

	rc := &ResponseCurve{
		freqs:  make([]float64, numPoints),
		mags:   make([]float64, numPoints),
		magsDB: make([]float64, numPoints),
		phases: make([]float64, numPoints),
	}

	logMin := math.Log(minHz)
	logSpan := math.Log(maxHz) - logMin
	resolution := 1 / float64(numPoints-1)
	for i := range rc.freqs {
		rc.freqs[i] = math.Exp(logMin + logSpan*float64(i)*resolution)
	}
	rc.freqs[0] = minHz
	rc.freqs[numPoints-1] = maxHz

	return rc, nil
}

// Evaluate computes magnitude and phase of c at every grid frequency.
// Frequencies above Nyquist are clamped to it.
func (rc *ResponseCurve) Evaluate(c Coefficients, sampleRate float64) {
	nyquist := 0.5 * sampleRate
	for i, f := range rc.freqs {
		if f > nyquist {
			f = nyquist
		}
		h := c.Response(f, sampleRate)
		rc.phases[i] = math.Atan2(imag(h), real(h))
		rc.mags[i] = math.Hypot(real(h), imag(h))
		rc.magsDB[i] = core.LinearToDB(rc.mags[i])
	}
}

// Len returns the number of grid points.
func (rc *ResponseCurve) Len() int { return len(rc.freqs) }

// Frequencies returns the grid in Hz. The slice is owned by the curve.
func (rc *ResponseCurve) Frequencies() []float64 { return rc.freqs }

// Magnitudes returns the last evaluated linear magnitudes.
func (rc *ResponseCurve) Magnitudes() []float64 { return rc.mags }

// MagnitudesDB returns the last evaluated magnitudes in dB.
func (rc *ResponseCurve) MagnitudesDB() []float64 { return rc.magsDB }

// Phases returns the last evaluated phases in radians.
func (rc *ResponseCurve) Phases() []float64 { return rc.phases }
