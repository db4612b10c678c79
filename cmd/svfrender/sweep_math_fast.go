//go:build fastmath

package main

import "github.com/meko-christian/algo-approx"

// mathExp computes e^x using fast approximation.
// Called once per block while a sweep is running.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
