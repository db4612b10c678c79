package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-svf/dsp/core"
	"github.com/cwbudde/algo-svf/dsp/filter/svf"
)

// Errors returned by measurement functions.
var (
	ErrInvalidFFTSize    = errors.New("response: fft size must be a power of two >= 2")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrNilFilter         = errors.New("response: filter is nil")
	ErrEmptyResponse     = errors.New("response: measurement is empty")
)

// Response is a measured one-sided spectrum: FFTSize/2+1 bins from DC to
// Nyquist.
type Response struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64
	Phase      []float64
}

// Analyzer measures filters at a fixed FFT size, reusing its plan and
// buffers across calls. An Analyzer is not safe for concurrent use.
type Analyzer struct {
	sampleRate float64
	fftSize    int

	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
	re   []float64
	im   []float64
}

// NewAnalyzer returns an analyzer for the given FFT size and sample rate.
func NewAnalyzer(fftSize int, sampleRate float64) (*Analyzer, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	bins := fftSize/2 + 1
	return &Analyzer{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		plan:       plan,
		in:         make([]complex128, fftSize),
		out:        make([]complex128, fftSize),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
	}, nil
}

// FFTSize returns the transform length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// SampleRate returns the analysis sample rate.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// Measure captures the impulse response of f and returns its spectrum.
// The filter state is preserved.
func (a *Analyzer) Measure(f *svf.Filter) (Response, error) {
	if f == nil {
		return Response{}, ErrNilFilter
	}

	ir := f.ImpulseResponse(a.fftSize)
	for i, v := range ir {
		a.in[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Response{}, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := len(a.re)
	resp := Response{
		SampleRate: a.sampleRate,
		FFTSize:    a.fftSize,
		Magnitude:  make([]float64, bins),
		Phase:      make([]float64, bins),
	}

	for k := range bins {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
		resp.Phase[k] = cmplx.Phase(a.out[k])
	}
	vecmath.Magnitude(resp.Magnitude, a.re, a.im)

	return resp, nil
}

// Measure is a one-shot helper around NewAnalyzer and Analyzer.Measure.
func Measure(f *svf.Filter, fftSize int, sampleRate float64) (Response, error) {
	a, err := NewAnalyzer(fftSize, sampleRate)
	if err != nil {
		return Response{}, err
	}
	return a.Measure(f)
}

// Bins returns the number of one-sided bins.
func (r Response) Bins() int { return len(r.Magnitude) }

// BinFrequency returns the centre frequency of bin k in Hz.
func (r Response) BinFrequency(k int) float64 {
	return float64(k) * r.SampleRate / float64(r.FFTSize)
}

// MagnitudeAt linearly interpolates the measured magnitude at freq. Values
// outside [0, Nyquist] are clamped to the edge bins.
func (r Response) MagnitudeAt(freq float64) float64 {
	n := len(r.Magnitude)
	if n == 0 {
		return 0
	}

	pos := freq * float64(r.FFTSize) / r.SampleRate
	if !(pos > 0) {
		return r.Magnitude[0]
	}
	if pos >= float64(n-1) {
		return r.Magnitude[n-1]
	}

	k := int(pos)
	frac := pos - float64(k)
	return r.Magnitude[k] + frac*(r.Magnitude[k+1]-r.Magnitude[k])
}

// MagnitudeDBAt returns MagnitudeAt in dB.
func (r Response) MagnitudeDBAt(freq float64) float64 {
	return core.LinearToDB(r.MagnitudeAt(freq))
}

// Compare returns the largest absolute difference between the measured
// magnitude and c's closed-form magnitude over all bins.
func Compare(c svf.Coefficients, r Response) (float64, error) {
	if len(r.Magnitude) == 0 {
		return 0, ErrEmptyResponse
	}

	worst := 0.0
	for k, m := range r.Magnitude {
		want := c.MagnitudeForFrequency(r.BinFrequency(k), r.SampleRate)
		worst = math.Max(worst, math.Abs(m-want))
	}
	return worst, nil
}
