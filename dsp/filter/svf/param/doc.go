// Package param describes the user-facing parameter layout of an svf band:
// value ranges, defaults and the mapping between plain values and the
// normalised [0, 1] domain used by hosts and automation lanes.
//
// Params is a plain value type. Apply pushes it into an svf.Processor
// through the processor's setters, so it is safe to call from a control
// goroutine while audio is running.
package param
