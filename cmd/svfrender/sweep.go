package main

import (
	"math"

	"github.com/cwbudde/algo-svf/dsp/core"
)

// sweepFrequency returns the frequency at pos in [0, 1] along a logarithmic
// sweep from start to end. The result never leaves [start, end].
func sweepFrequency(start, end, pos float64) float64 {
	pos = core.Clamp(pos, 0, 1)
	f := start * mathExp(pos*math.Log(end/start))
	return core.Clamp(f, start, end)
}
