package svf

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-svf/dsp/core"
	"github.com/cwbudde/algo-svf/internal/testutil"
)

func TestLowpassMagnitudeAtCutoffEqualsQ(t *testing.T) {
	for _, q := range []float64{0.5, DefaultQ, 2, 6} {
		c := MakeLowpass(testRate, 1000, 0, q, false)
		if got := c.MagnitudeForFrequency(1000, testRate); !core.NearlyEqual(got, q, 1e-9) {
			t.Fatalf("q=%v: |H(fc)| = %v, want %v", q, got, q)
		}
	}

	c := MakeLowpass(testRate, 1000, 0, DefaultQ, false)
	if db := c.MagnitudeDB(1000, testRate); !core.NearlyEqual(db, -3.0103, 1e-3) {
		t.Fatalf("Butterworth lowpass at cutoff = %v dB, want -3.01", db)
	}
	if dc := c.MagnitudeForFrequency(1e-3, testRate); !core.NearlyEqual(dc, 1, 1e-9) {
		t.Fatalf("lowpass DC gain = %v, want 1", dc)
	}
	if ny := c.MagnitudeForFrequency(testRate/2, testRate); ny > 1e-9 {
		t.Fatalf("lowpass Nyquist gain = %v, want 0", ny)
	}
}

func TestHighpassMagnitudeAtCutoffEqualsQ(t *testing.T) {
	c := MakeHighpass(testRate, 3000, 0, 1.5, false)
	if got := c.MagnitudeForFrequency(3000, testRate); !core.NearlyEqual(got, 1.5, 1e-9) {
		t.Fatalf("|H(fc)| = %v, want 1.5", got)
	}
	if dc := c.MagnitudeForFrequency(1e-3, testRate); dc > 1e-6 {
		t.Fatalf("highpass DC gain = %v, want ~0", dc)
	}
}

func TestNotchMinimumAtCenter(t *testing.T) {
	c := MakeNotch(testRate, 2000, 0, 2, false)
	center := c.MagnitudeForFrequency(2000, testRate)
	if center > 1e-12 {
		t.Fatalf("notch center magnitude = %v, want ~0", center)
	}
	for _, f := range []float64{1500, 1900, 2100, 3000} {
		if m := c.MagnitudeForFrequency(f, testRate); m <= center {
			t.Fatalf("notch magnitude at %v (%v) not above center (%v)", f, m, center)
		}
	}
}

func TestBandpassMaximumAtCenter(t *testing.T) {
	c := MakeBandpass(testRate, 2000, 0, 3, false)
	center := c.MagnitudeForFrequency(2000, testRate)
	for _, f := range []float64{500, 1800, 1990, 2010, 2200, 8000} {
		if m := c.MagnitudeForFrequency(f, testRate); m >= center {
			t.Fatalf("bandpass magnitude at %v (%v) not below center (%v)", f, m, center)
		}
	}
}

func TestAllpassUnityMagnitude(t *testing.T) {
	c := MakeAllpass(testRate, 1000, 0, 0.8, false)
	for _, f := range []float64{20, 200, 1000, 5000, 20000} {
		if m := c.MagnitudeForFrequency(f, testRate); !core.NearlyEqual(m, 1, 1e-12) {
			t.Fatalf("allpass |H(%v)| = %v, want 1", f, m)
		}
	}
	if p := c.PhaseForFrequency(1000, testRate); !core.NearlyEqual(math.Abs(p), math.Pi, 1e-9) {
		t.Fatalf("allpass phase at center = %v, want ±pi", p)
	}
}

func TestBellGainAtCenter(t *testing.T) {
	for _, gain := range []float64{-18, -6, 3, 12, 24} {
		c := MakeBell(testRate, 1000, gain, 1, false)
		if db := c.MagnitudeDB(1000, testRate); !core.NearlyEqual(db, gain, 1e-9) {
			t.Fatalf("bell %v dB: center = %v dB", gain, db)
		}
		if far := c.MagnitudeDB(20, testRate); math.Abs(far) > 0.1 {
			t.Fatalf("bell %v dB: far skirt = %v dB, want ~0", gain, far)
		}
	}
}

func TestShelfPlateaus(t *testing.T) {
	low := MakeLowshelf(testRate, 1000, 12, DefaultQ, false)
	if db := low.MagnitudeDB(10, testRate); !core.NearlyEqual(db, 12, 1e-3) {
		t.Fatalf("lowshelf plateau = %v dB, want 12", db)
	}
	if db := low.MagnitudeDB(20000, testRate); !core.NearlyEqual(db, 0, 1e-3) {
		t.Fatalf("lowshelf top = %v dB, want 0", db)
	}

	high := MakeHighshelf(testRate, 1000, 12, DefaultQ, false)
	if db := high.MagnitudeDB(10, testRate); !core.NearlyEqual(db, 0, 1e-3) {
		t.Fatalf("highshelf bottom = %v dB, want 0", db)
	}
	if db := high.MagnitudeDB(23000, testRate); !core.NearlyEqual(db, 12, 1e-3) {
		t.Fatalf("highshelf plateau = %v dB, want 12", db)
	}

	// Half the shelf gain at the corner.
	for _, c := range []Coefficients{low, high} {
		if db := c.MagnitudeDB(1000, testRate); !core.NearlyEqual(db, 6, 1e-6) {
			t.Fatalf("shelf corner = %v dB, want 6", db)
		}
	}
}

func TestImpulseResponseMatchesClosedForm(t *testing.T) {
	sets := map[string]Coefficients{
		"lowpass":   MakeLowpass(testRate, 1000, 0, DefaultQ, false),
		"bandpass":  MakeBandpass(testRate, 1000, 0, 2, false),
		"highpass":  MakeHighpass(testRate, 1000, 0, DefaultQ, false),
		"allpass":   MakeAllpass(testRate, 1000, 0, DefaultQ, false),
		"bell":      MakeBell(testRate, 1000, 6, 1, false),
		"lowshelf":  MakeLowshelf(testRate, 1000, -9, DefaultQ, false),
		"highshelf": MakeHighshelf(testRate, 1000, 9, DefaultQ, true),
	}

	for name, c := range sets {
		t.Run(name, func(t *testing.T) {
			ir := NewFilter(c).ImpulseResponse(8192)
			for _, f := range []float64{100, 1000, 5000} {
				measured := testutil.DFTAt(ir, f, testRate)
				want := c.Response(f, testRate)

				if d := math.Abs(cmplx.Abs(measured) - cmplx.Abs(want)); d > 1e-9 {
					t.Fatalf("f=%v: |DFT(ir)| = %v, |H| = %v", f, cmplx.Abs(measured), cmplx.Abs(want))
				}
				if d := cmplx.Abs(measured - want); d > 1e-9 {
					t.Fatalf("f=%v: DFT(ir) = %v, H = %v", f, measured, want)
				}
			}
		})
	}
}

func TestImpulseScenarioLowpass1k(t *testing.T) {
	c := MakeLowpass(48000, 1000, 0, 0.707, false)
	ir := NewFilter(c).ImpulseResponse(4096)

	measured := cmplx.Abs(testutil.DFTAt(ir, 1000, 48000))
	want := c.MagnitudeForFrequency(1000, 48000)
	if !core.NearlyEqual(measured, want, 1e-9) {
		t.Fatalf("impulse DFT at 1 kHz = %v, closed form = %v", measured, want)
	}
}

func TestArrayVariantsMatchScalar(t *testing.T) {
	c := MakeBell(testRate, 800, -7, 1.8, true)
	freqs := []float64{20, 100, 500, 800, 1200, 6000, 19000}

	mags := c.MagnitudeForFrequencies(nil, freqs, testRate)
	phases := c.PhaseForFrequencies(make([]float64, 2), freqs, testRate)

	if len(mags) != len(freqs) || len(phases) != len(freqs) {
		t.Fatalf("lengths %d/%d, want %d", len(mags), len(phases), len(freqs))
	}
	for i, f := range freqs {
		if !core.NearlyEqual(mags[i], c.MagnitudeForFrequency(f, testRate), 1e-12) {
			t.Fatalf("mag[%d] = %v, want %v", i, mags[i], c.MagnitudeForFrequency(f, testRate))
		}
		if phases[i] != c.PhaseForFrequency(f, testRate) {
			t.Fatalf("phase[%d] = %v, want %v", i, phases[i], c.PhaseForFrequency(f, testRate))
		}
	}

	if out := c.MagnitudeForFrequencies(nil, nil, testRate); len(out) != 0 {
		t.Fatalf("empty input produced %d values", len(out))
	}
}

func TestPhaseMatchesResponseArgument(t *testing.T) {
	c := MakeHighshelf(testRate, 4000, 5, 0.6, false)
	for _, f := range []float64{100, 4000, 15000} {
		if got, want := c.PhaseForFrequency(f, testRate), cmplx.Phase(c.Response(f, testRate)); got != want {
			t.Fatalf("f=%v: phase %v, arg(H) %v", f, got, want)
		}
	}
}
