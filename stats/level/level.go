// Package level accumulates per-channel signal levels across blocks:
// RMS, peak, DC offset and crest factor.
package level

import (
	"math"

	"github.com/cwbudde/algo-svf/dsp/core"
)

// Level holds the accumulated levels of one channel. dB fields are -Inf for
// silence.
type Level struct {
	Frames  int
	DC      float64
	RMS     float64
	RMSdB   float64
	Peak    float64
	PeakdB  float64
	CrestdB float64 // peak over RMS; 0 for silence
}

func ampTodB(value float64) float64 {
	return core.LinearToDB(math.Abs(value))
}

type accumulator struct {
	n     int
	sum   float64
	sumSq float64
	peak  float64
}

func (a *accumulator) update(samples []float64) {
	for _, x := range samples {
		a.sum += x
		a.sumSq += x * x
		if ax := math.Abs(x); ax > a.peak {
			a.peak = ax
		}
	}
	a.n += len(samples)
}

func (a *accumulator) result() Level {
	if a.n == 0 {
		return Level{RMSdB: math.Inf(-1), PeakdB: math.Inf(-1)}
	}

	nf := float64(a.n)
	rms := math.Sqrt(a.sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = ampTodB(a.peak / rms)
	}

	return Level{
		Frames:  a.n,
		DC:      a.sum / nf,
		RMS:     rms,
		RMSdB:   ampTodB(rms),
		Peak:    a.peak,
		PeakdB:  ampTodB(a.peak),
		CrestdB: crest,
	}
}

// Meter accumulates levels for a fixed number of channels. It does not
// allocate after construction.
type Meter struct {
	channels []accumulator
}

// NewMeter returns a meter for the given channel count (at least 1).
func NewMeter(channels int) *Meter {
	return &Meter{channels: make([]accumulator, max(channels, 1))}
}

// Channels returns the number of metered channels.
func (m *Meter) Channels() int { return len(m.channels) }

// Update adds a block of samples to channel ch. Out-of-range channels are
// ignored.
func (m *Meter) Update(ch int, samples []float64) {
	if ch < 0 || ch >= len(m.channels) {
		return
	}
	m.channels[ch].update(samples)
}

// UpdatePlanar adds one planar block per channel.
func (m *Meter) UpdatePlanar(block [][]float64) {
	for ch, samples := range block {
		m.Update(ch, samples)
	}
}

// Result returns the levels of channel ch so far.
func (m *Meter) Result(ch int) Level {
	if ch < 0 || ch >= len(m.channels) {
		var empty accumulator
		return empty.result()
	}
	return m.channels[ch].result()
}

// Peak returns the largest peak over all channels.
func (m *Meter) Peak() float64 {
	var p float64
	for i := range m.channels {
		p = math.Max(p, m.channels[i].peak)
	}
	return p
}

// Reset clears all channels.
func (m *Meter) Reset() {
	clear(m.channels)
}
