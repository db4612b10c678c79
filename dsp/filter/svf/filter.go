package svf

import "github.com/cwbudde/algo-svf/dsp/core"

// Filter is one channel of the TPT state-variable filter: two trapezoidal
// integrator registers driven by a coefficient set.
//
// The zero Filter holds the null coefficient set and outputs silence; use
// NewFilter or SetCoefficients before processing.
type Filter struct {
	coeffs Coefficients

	ic1, ic2 float64
}

// NewFilter returns a Filter using c with cleared state.
func NewFilter(c Coefficients) *Filter {
	return &Filter{coeffs: c}
}

// Coefficients returns the active coefficient set.
func (f *Filter) Coefficients() Coefficients { return f.coeffs }

// SetCoefficients replaces the active set. State is kept so that parameter
// changes do not click.
func (f *Filter) SetCoefficients(c Coefficients) { f.coeffs = c }

// Prepare validates the stream format and clears state. The channel count is
// only checked; one Filter always processes a single channel.
func (f *Filter) Prepare(sampleRate float64, channels int) {
	checkContract(sampleRate > 0, "prepare: sample rate must be > 0")
	checkContract(channels > 0, "prepare: channel count must be > 0")
	f.Reset()
}

// Reset clears both integrators to zero.
func (f *Filter) Reset() { f.ResetTo(0) }

// ResetTo sets both integrators to value.
func (f *Filter) ResetTo(value float64) {
	f.ic1 = value
	f.ic2 = value
}

// State returns the integrator registers [ic1, ic2].
func (f *Filter) State() [2]float64 {
	return [2]float64{f.ic1, f.ic2}
}

// SetState restores previously saved integrator registers.
func (f *Filter) SetState(state [2]float64) {
	f.ic1 = state[0]
	f.ic2 = state[1]
}

// SnapToZero flushes denormal register values to exact zero. Call it between
// blocks, never in the middle of one.
func (f *Filter) SnapToZero() {
	f.ic1 = core.FlushDenormals(f.ic1)
	f.ic2 = core.FlushDenormals(f.ic2)
}

// ProcessSample filters one sample:
//
//	v3 = x - ic2
//	v1 = a1*ic1 + a2*v3
//	v2 = ic2 + a2*ic1 + a3*v3
//	ic1 = 2*v1 - ic1
//	ic2 = 2*v2 - ic2
//	y  = m0*x + m1*v1 + m2*v2
func (f *Filter) ProcessSample(x float64) float64 {
	c := &f.coeffs

	v3 := x - f.ic2
	v1 := c.A1*f.ic1 + c.A2*v3
	v2 := f.ic2 + c.A2*f.ic1 + c.A3*v3

	f.ic1 = 2*v1 - f.ic1
	f.ic2 = 2*v2 - f.ic2

	return c.M0*x + c.M1*v1 + c.M2*v2
}

// ProcessInPlace filters buf in place. Zero-alloc.
func (f *Filter) ProcessInPlace(buf []float64) {
	c := f.coeffs
	ic1, ic2 := f.ic1, f.ic2

	for i, x := range buf {
		v3 := x - ic2
		v1 := c.A1*ic1 + c.A2*v3
		v2 := ic2 + c.A2*ic1 + c.A3*v3

		ic1 = 2*v1 - ic1
		ic2 = 2*v2 - ic2

		buf[i] = c.M0*x + c.M1*v1 + c.M2*v2
	}

	f.ic1, f.ic2 = ic1, ic2
	f.SnapToZero()
}

// ProcessTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (f *Filter) ProcessTo(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]

	c := f.coeffs
	ic1, ic2 := f.ic1, f.ic2

	for i, x := range src {
		v3 := x - ic2
		v1 := c.A1*ic1 + c.A2*v3
		v2 := ic2 + c.A2*ic1 + c.A3*v3

		ic1 = 2*v1 - ic1
		ic2 = 2*v2 - ic2

		dst[i] = c.M0*x + c.M1*v1 + c.M2*v2
	}

	f.ic1, f.ic2 = ic1, ic2
	f.SnapToZero()
}

// Process filters src into dst, which may alias src. When bypassed, dst
// receives src unchanged and the registers are not touched.
func (f *Filter) Process(dst, src []float64, bypassed bool) {
	checkContract(len(dst) == len(src), "process: dst and src lengths differ")

	if bypassed {
		core.CopyInto(dst, src)
		return
	}

	f.ProcessTo(dst, src)
}

// ImpulseResponse returns n samples of the impulse response. The filter
// state is saved and restored, so this does not disturb processing.
func (f *Filter) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := f.State()
	f.Reset()

	ir := make([]float64, n)
	ir[0] = f.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = f.ProcessSample(0)
	}

	f.SetState(saved)
	return ir
}
