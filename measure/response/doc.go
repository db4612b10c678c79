// Package response measures the frequency response of an svf filter from
// its impulse response and compares it with the closed-form transfer
// function.
//
// The measured magnitude at bin k is |FFT(h)[k]| for the first FFTSize
// samples of the impulse response h. For the stable designs produced by
// the svf package the truncation error falls below 1e-9 once the impulse
// response has decayed, which makes the comparison a useful regression
// check on both the coefficient formulas and the processing kernel.
package response
