package svf

import (
	"fmt"

	"github.com/cwbudde/algo-svf/dsp/core"
)

const (
	defaultFrequency   = 1000.0
	defaultGain        = 0.0
	defaultRampSeconds = 0.05
)

// Option mutates Processor construction settings.
type Option func(*config) error

type config struct {
	filterType  Type
	frequency   float64
	gain        float64
	q           float64
	autoQ       bool
	rampSeconds float64
}

func defaultConfig() config {
	return config{
		filterType:  TypeLowpass,
		frequency:   defaultFrequency,
		gain:        defaultGain,
		q:           DefaultQ,
		rampSeconds: defaultRampSeconds,
	}
}

// WithType sets the initial filter type.
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidType, t)
		}
		cfg.filterType = t
		return nil
	}
}

// WithFrequency sets the initial frequency in Hz. It is checked against
// Nyquist when the processor is prepared.
func WithFrequency(hz float64) Option {
	return func(cfg *config) error {
		if err := validateFrequency(hz, 0); err != nil {
			return err
		}
		cfg.frequency = hz
		return nil
	}
}

// WithGain sets the initial gain in dB.
func WithGain(db float64) Option {
	return func(cfg *config) error {
		if err := validateGain(db); err != nil {
			return err
		}
		cfg.gain = db
		return nil
	}
}

// WithQ sets the initial resonance. Must be finite and > 0.
func WithQ(q float64) Option {
	return func(cfg *config) error {
		if err := validateQ(q); err != nil {
			return err
		}
		cfg.q = q
		return nil
	}
}

// WithAutoQ enables or disables gain-dependent resonance.
func WithAutoQ(enabled bool) Option {
	return func(cfg *config) error {
		cfg.autoQ = enabled
		return nil
	}
}

// WithRampDuration sets the smoothing time in seconds. Zero disables
// smoothing.
func WithRampDuration(seconds float64) Option {
	return func(cfg *config) error {
		if err := validateRamp(seconds); err != nil {
			return err
		}
		cfg.rampSeconds = seconds
		return nil
	}
}

func validateRamp(seconds float64) error {
	if !core.IsFinite(seconds) || seconds < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRamp, seconds)
	}
	return nil
}
