package svf

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-svf/internal/testutil"
)

func TestFilterBlockMatchesPerSample(t *testing.T) {
	c := MakeBell(testRate, 1200, 9, 1.4, false)
	in := testutil.DeterministicNoise(7, 0.5, 1024)

	ref := NewFilter(c)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = ref.ProcessSample(x)
	}

	blk := NewFilter(c)
	got := make([]float64, len(in))
	blk.ProcessTo(got[:300], in[:300])
	blk.ProcessTo(got[300:], in[300:])
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)

	inplace := NewFilter(c)
	buf := append([]float64(nil), in...)
	inplace.ProcessInPlace(buf)
	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-15)

	if inplace.State() != blk.State() {
		t.Fatalf("state mismatch: in-place %v, block %v", inplace.State(), blk.State())
	}
}

func TestFilterProcessAliasing(t *testing.T) {
	c := MakeHighpass(testRate, 200, 0, DefaultQ, false)
	in := testutil.DeterministicSine(440, testRate, 1, 512)

	want := make([]float64, len(in))
	NewFilter(c).Process(want, in, false)

	buf := append([]float64(nil), in...)
	NewFilter(c).Process(buf, buf, false)

	testutil.RequireSliceNearlyEqual(t, buf, want, 0)
}

func TestFilterBypassLeavesStateUntouched(t *testing.T) {
	f := NewFilter(MakeLowpass(testRate, 500, 0, DefaultQ, false))
	f.ProcessSample(1)
	before := f.State()

	in := testutil.DeterministicNoise(3, 1, 256)
	out := make([]float64, len(in))
	f.Process(out, in, true)

	testutil.RequireSliceNearlyEqual(t, out, in, 0)
	if f.State() != before {
		t.Fatalf("bypass changed state: %v -> %v", before, f.State())
	}
}

func TestFilterPassthrough(t *testing.T) {
	f := NewFilter(Passthrough())
	in := testutil.DeterministicNoise(11, 1, 128)
	out := make([]float64, len(in))
	f.ProcessTo(out, in)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestZeroFilterIsSilent(t *testing.T) {
	var f Filter
	in := testutil.DeterministicNoise(5, 1, 64)
	out := make([]float64, len(in))
	f.ProcessTo(out, in)
	testutil.RequireAllZero(t, out)
}

func TestFilterStateRoundTrip(t *testing.T) {
	c := MakeLowshelf(testRate, 300, -6, 0.9, false)
	f := NewFilter(c)
	f.ProcessInPlace(testutil.DeterministicNoise(1, 1, 100))

	saved := f.State()
	tail := testutil.DeterministicNoise(2, 1, 64)

	first := append([]float64(nil), tail...)
	f.ProcessInPlace(first)

	f.SetState(saved)
	second := append([]float64(nil), tail...)
	f.ProcessInPlace(second)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestFilterResetTo(t *testing.T) {
	f := NewFilter(MakeLowpass(testRate, 1000, 0, DefaultQ, false))
	f.ResetTo(0.25)
	if got := f.State(); got != [2]float64{0.25, 0.25} {
		t.Fatalf("ResetTo state = %v", got)
	}
	f.Reset()
	if got := f.State(); got != [2]float64{} {
		t.Fatalf("Reset state = %v", got)
	}
}

func TestFilterSnapToZero(t *testing.T) {
	f := NewFilter(Passthrough())
	f.SetState([2]float64{1e-35, -1e-32})
	f.SnapToZero()
	if got := f.State(); got != [2]float64{} {
		t.Fatalf("denormal state not flushed: %v", got)
	}

	f.SetState([2]float64{1e-3, -0.5})
	f.SnapToZero()
	if got := f.State(); got != [2]float64{1e-3, -0.5} {
		t.Fatalf("normal state altered: %v", got)
	}
}

func TestFilterDecaysToExactZero(t *testing.T) {
	f := NewFilter(MakeLowpass(testRate, 1000, 0, DefaultQ, false))
	f.ProcessInPlace([]float64{1})

	silence := make([]float64, 48000)
	f.ProcessInPlace(silence)
	if got := f.State(); got != [2]float64{} {
		t.Fatalf("state after long silence = %v, want exact zero", got)
	}
}

func TestImpulseResponsePreservesState(t *testing.T) {
	f := NewFilter(MakeBandpass(testRate, 900, 0, 2, false))
	f.ProcessInPlace(testutil.DeterministicNoise(9, 1, 50))
	before := f.State()

	ir := f.ImpulseResponse(256)
	if len(ir) != 256 {
		t.Fatalf("len(ir) = %d", len(ir))
	}
	if f.State() != before {
		t.Fatalf("ImpulseResponse changed state: %v -> %v", before, f.State())
	}
	if f.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}

func TestFilterStability(t *testing.T) {
	types := []Type{TypeLowpass, TypeBandpass, TypeHighpass, TypeNotch, TypeAllpass, TypeBell, TypeLowshelf, TypeHighshelf}
	in := testutil.DeterministicNoise(42, 1, 8192)

	for _, typ := range types {
		for _, freq := range []float64{20, 1000, 20000, 23999} {
			for _, q := range []float64{0.1, DefaultQ, 8} {
				c, ok := Make(typ, testRate, freq, 18, q, true)
				if !ok {
					t.Fatalf("%s: Make failed", typ)
				}
				out := make([]float64, len(in))
				NewFilter(c).ProcessTo(out, in)
				testutil.RequireFinite(t, out)

				peak := 0.0
				for _, v := range out {
					peak = math.Max(peak, math.Abs(v))
				}
				if peak > 1e4 {
					t.Fatalf("%s f=%v q=%v: output peak %v", typ, freq, q, peak)
				}
			}
		}
	}
}

func TestFilterPrepareClearsState(t *testing.T) {
	f := NewFilter(MakeLowpass(testRate, 1000, 0, DefaultQ, false))
	f.ProcessSample(1)
	f.Prepare(44100, 2)
	if got := f.State(); got != [2]float64{} {
		t.Fatalf("Prepare left state %v", got)
	}
}

func TestImpulseResponseMatchesProcessing(t *testing.T) {
	c := MakeNotch(testRate, 3000, 0, 1.7, false)

	in := testutil.Impulse(512, 0)
	out := make([]float64, len(in))
	NewFilter(c).ProcessTo(out, in)

	diff, err := testutil.MaxAbsDiff(out, NewFilter(c).ImpulseResponse(512))
	if err != nil {
		t.Fatal(err)
	}
	if diff != 0 {
		t.Fatalf("block impulse differs from ImpulseResponse by %g", diff)
	}
}

func TestDCGain(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want float64
	}{
		{"lowpass", MakeLowpass(testRate, 1000, 0, DefaultQ, false), 1},
		{"highpass", MakeHighpass(testRate, 1000, 0, DefaultQ, false), 0},
		{"lowshelf", MakeLowshelf(testRate, 1000, 6, DefaultQ, false), math.Pow(10, 6.0/20)},
		{"highshelf", MakeHighshelf(testRate, 1000, 6, DefaultQ, false), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]float64, 48000)
			NewFilter(tt.c).ProcessTo(out, testutil.DC(1, len(out)))
			if got := out[len(out)-1]; math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("settled DC output = %v, want %v", got, tt.want)
			}
		})
	}
}
