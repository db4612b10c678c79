package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-svf/stats/level"
)

func ExampleMeter() {
	m := level.NewMeter(1)
	m.Update(0, []float64{1, -1})
	m.Update(0, []float64{1, -1})

	l := m.Result(0)
	fmt.Printf("frames=%d rms=%.1f peak=%.1f dB crest=%.1f dB\n", l.Frames, l.RMS, l.PeakdB, l.CrestdB)
	// Output:
	// frames=4 rms=1.0 peak=0.0 dB crest=0.0 dB
}
