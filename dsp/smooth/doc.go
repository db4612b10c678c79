// Package smooth provides parameter ramps for click-free automation.
//
// A [LinearRamp] moves a control value from its current position to a target
// in a fixed number of equal steps. The step count is derived from a ramp
// duration in seconds and the sample rate passed to [LinearRamp.Reset].
// Retargeting while a ramp is in flight restarts the interpolation from the
// current value, never from the previous target.
//
// Ramps are plain values with no locking; they belong to the processing
// goroutine.
package smooth
