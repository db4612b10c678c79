// Package svf provides a topology-preserving-transform (TPT) state-variable
// filter for parametric equalization.
//
// The package is split into three layers:
//
//   - [Coefficients] and the Make* constructors derive the nine TPT-SVF
//     coefficients (a, g, k, the m0/m1/m2 output mix and the a1/a2/a3
//     feedback terms) for a [Type], and evaluate the analytic frequency and
//     phase response for display.
//   - [Filter] holds the two integrator registers of one channel and runs the
//     per-sample trapezoidal recurrence.
//   - [Processor] owns linearly smoothed frequency, gain and Q targets, tracks
//     the filter type and auto-Q flag, and regenerates coefficients once per
//     processing block while any parameter is still moving.
//
// Supported types: lowpass, bandpass, highpass, notch, allpass, bell,
// lowshelf and highshelf. [TypeNone] is a literal bypass.
//
// Bell and shelf gains use a half-slope dB conversion, a = 10^(gain/40),
// so that a² equals the full linear gain at the shelf plateau or bell peak.
//
// Contract violations in the coefficient math (non-positive sample rate,
// frequency outside (0, Nyquist], non-positive Q) are only checked when the
// package is built with the svfdebug tag, where they panic. Use
// [NewCoefficients] or the [Processor] setters for validated input.
package svf
