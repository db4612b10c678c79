package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-svf/dsp/core"
	"github.com/cwbudde/algo-svf/dsp/filter/svf"
	"github.com/cwbudde/algo-svf/dsp/filter/svf/param"
	"github.com/cwbudde/algo-svf/stats/level"
)

var errEmptyInput = errors.New("svfrender: input has no audio")

type renderConfig struct {
	Params param.Params

	// EndFrequency, when finite, is reached by the last block through a
	// logarithmic sweep starting at Params.Frequency.
	EndFrequency float64

	RampSeconds float64
	BlockSize   int
}

type renderStats struct {
	Blocks  int
	Clipped int
	Peak    float64

	In, Out []level.Level
}

// rampDuration converts a glide length in seconds of audio into the duration
// handed to the processor, which takes one ramp step per block. Any positive
// glide keeps at least one step.
func rampDuration(seconds, sampleRate float64, blockSize int) float64 {
	if seconds <= 0 || sampleRate <= 0 || blockSize <= 0 {
		return 0
	}
	return math.Max(seconds/float64(blockSize), 1/sampleRate)
}

// render filters an interleaved integer buffer and returns a new buffer of
// the same format. One processor serves all channels.
func render(src *audio.IntBuffer, cfg renderConfig) (*audio.IntBuffer, renderStats, error) {
	var stats renderStats

	if src == nil || src.Format == nil || len(src.Data) == 0 {
		return nil, stats, errEmptyInput
	}
	channels := src.Format.NumChannels
	sampleRate := float64(src.Format.SampleRate)
	bitDepth := src.SourceBitDepth
	if channels <= 0 || sampleRate <= 0 {
		return nil, stats, fmt.Errorf("svfrender: invalid format %+v", *src.Format)
	}
	if bitDepth < 16 || bitDepth > 32 {
		return nil, stats, fmt.Errorf("svfrender: unsupported bit depth %d", bitDepth)
	}

	params := cfg.Params.Clamp(sampleRate)
	endFreq := cfg.EndFrequency
	automate := !math.IsNaN(endFreq) && !math.IsInf(endFreq, 0)
	if automate {
		endFreq = param.Params{Frequency: endFreq}.Clamp(sampleRate).Frequency
	}

	pc := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(cfg.BlockSize),
		core.WithChannels(channels),
	)

	opts := append(params.Options(), svf.WithRampDuration(rampDuration(cfg.RampSeconds, sampleRate, pc.BlockSize)))
	proc, err := svf.NewProcessor(opts...)
	if err != nil {
		return nil, stats, err
	}
	if err := proc.Prepare(pc); err != nil {
		return nil, stats, err
	}

	frames := len(src.Data) / channels
	block := pc.BlockSize
	scale := float64(int64(1) << (bitDepth - 1))
	maxInt := scale - 1

	planar := make([][]float64, channels)
	for ch := range planar {
		planar[ch] = make([]float64, block)
	}

	inMeter := level.NewMeter(channels)
	outMeter := level.NewMeter(channels)

	dst := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: src.Format.SampleRate},
		Data:           make([]int, frames*channels),
		SourceBitDepth: bitDepth,
	}

	for start := 0; start < frames; start += block {
		n := min(block, frames-start)

		if automate {
			pos := float64(start) / float64(max(frames-block, 1))
			f := sweepFrequency(params.Frequency, endFreq, pos)
			if err := proc.SetFrequency(f); err != nil {
				return nil, stats, err
			}
		}

		for ch := range planar {
			buf := planar[ch][:n]
			for i := range buf {
				buf[i] = float64(src.Data[(start+i)*channels+ch]) / scale
			}
			planar[ch] = planar[ch][:n]
		}

		inMeter.UpdatePlanar(planar)
		proc.ProcessChannels(planar, planar, false)
		outMeter.UpdatePlanar(planar)

		for ch := range planar {
			for i, v := range planar[ch] {
				s := math.Round(v * scale)
				if s > maxInt {
					s = maxInt
					stats.Clipped++
				} else if s < -scale {
					s = -scale
					stats.Clipped++
				}
				dst.Data[(start+i)*channels+ch] = int(s)
			}
			planar[ch] = planar[ch][:block]
		}
		stats.Blocks++
	}

	stats.Peak = outMeter.Peak()
	for ch := range channels {
		stats.In = append(stats.In, inMeter.Result(ch))
		stats.Out = append(stats.Out, outMeter.Result(ch))
	}

	return dst, stats, nil
}
