package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by ProcessorConfig.Validate failures.
var ErrInvalidConfig = errors.New("core: invalid processor config")

// ProcessorConfig describes the stream a processor is prepared for: the
// sample rate, the largest block it will be handed, and the channel count.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	Channels   int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns a mono 48 kHz configuration.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  512,
		Channels:   1,
	}
}

// WithSampleRate sets the processing sample rate. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the maximum block size. Non-positive values are ignored.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithChannels sets the channel count. Non-positive values are ignored.
func WithChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether the config can be used to prepare a processor.
func (c ProcessorConfig) Validate() error {
	if !IsFinite(c.SampleRate) || c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0 and finite: %v", ErrInvalidConfig, c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidConfig, c.BlockSize)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("%w: channel count must be > 0: %d", ErrInvalidConfig, c.Channels)
	}
	return nil
}
