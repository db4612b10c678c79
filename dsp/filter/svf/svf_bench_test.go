package svf

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-svf/dsp/core"
)

var benchCoeffs = MakeBell(48000, 1000, 6, DefaultQ, false)

func BenchmarkProcessSample(b *testing.B) {
	f := NewFilter(benchCoeffs)
	x := 1.0
	for b.Loop() {
		x = f.ProcessSample(x)
	}
	_ = x
}

func BenchmarkProcessInPlace(b *testing.B) {
	for _, size := range []int{64, 512, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			f := NewFilter(benchCoeffs)
			buf := make([]float64, size)
			for i := range buf {
				buf[i] = float64(i%17) * 0.01
			}
			b.SetBytes(int64(size * 8))
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				f.ProcessInPlace(buf)
			}
		})
	}
}

func BenchmarkMake(b *testing.B) {
	for _, typ := range []Type{TypeLowpass, TypeBell, TypeHighshelf} {
		b.Run(typ.String(), func(b *testing.B) {
			b.ReportAllocs()
			var c Coefficients
			for b.Loop() {
				c, _ = Make(typ, 48000, 1234, 3, 0.9, true)
			}
			_ = c
		})
	}
}

func BenchmarkProcessorRamping(b *testing.B) {
	p, err := NewProcessor(WithType(TypeBell), WithGain(6))
	if err != nil {
		b.Fatal(err)
	}
	if err := p.Prepare(core.DefaultProcessorConfig()); err != nil {
		b.Fatal(err)
	}

	buf := make([]float64, 512)
	targets := [2]float64{500, 5000}
	b.SetBytes(int64(len(buf) * 8))
	b.ReportAllocs()
	b.ResetTimer()

	for i := range b.N {
		if i%64 == 0 {
			_ = p.SetFrequency(targets[(i/64)%2])
		}
		p.ProcessInPlace(buf)
	}
}

func BenchmarkResponseCurve(b *testing.B) {
	rc, err := NewResponseCurve(512, 20, 20000)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		rc.Evaluate(benchCoeffs, 48000)
	}
}

func TestProcessNoAlloc(t *testing.T) {
	p, err := NewProcessor(WithType(TypeHighshelf), WithGain(3))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Prepare(core.DefaultProcessorConfig()); err != nil {
		t.Fatal(err)
	}

	buf := make([]float64, 256)
	freq := 800.0
	allocs := testing.AllocsPerRun(50, func() {
		freq = 2400 - freq
		_ = p.SetFrequency(freq)
		p.ProcessInPlace(buf)
		_ = p.Snapshot()
	})
	if allocs != 0 {
		t.Fatalf("processing allocated %v times per block", allocs)
	}
}
