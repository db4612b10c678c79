package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-svf/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
		core.WithChannels(2),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d valid=%v\n",
		cfg.SampleRate, cfg.BlockSize, cfg.Channels, cfg.Validate() == nil)

	// Output:
	// sampleRate=44100 blockSize=256 channels=2 valid=true
}

func ExampleFlushDenormals() {
	fmt.Println(core.FlushDenormals(1e-35), core.FlushDenormals(0.25))

	// Output:
	// 0 0.25
}
