package svf

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-svf/dsp/core"
)

// Errors returned by validating constructors and setters.
var (
	ErrInvalidSampleRate = errors.New("svf: sample rate must be > 0 and finite")
	ErrInvalidFrequency  = errors.New("svf: frequency must be in (0, Nyquist]")
	ErrInvalidGain       = errors.New("svf: gain must be finite")
	ErrInvalidQ          = errors.New("svf: q must be > 0 and finite")
	ErrInvalidType       = errors.New("svf: invalid filter type")
	ErrInvalidRamp       = errors.New("svf: ramp duration must be >= 0 and finite")
	ErrBypass            = errors.New("svf: type none has no coefficients")
)

func validateSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	return nil
}

// validateFrequency checks f against Nyquist when sampleRate is known (> 0).
func validateFrequency(frequency, sampleRate float64) error {
	if !core.IsFinite(frequency) || frequency <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, frequency)
	}
	if sampleRate > 0 && frequency > 0.5*sampleRate {
		return fmt.Errorf("%w: %v > %v", ErrInvalidFrequency, frequency, 0.5*sampleRate)
	}
	return nil
}

func validateGain(gain float64) error {
	if !core.IsFinite(gain) {
		return fmt.Errorf("%w: %v", ErrInvalidGain, gain)
	}
	return nil
}

func validateQ(q float64) error {
	if !core.IsFinite(q) || q <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidQ, q)
	}
	return nil
}

func validateDesign(sampleRate, frequency, q float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}
	if err := validateFrequency(frequency, sampleRate); err != nil {
		return err
	}
	return validateQ(q)
}
