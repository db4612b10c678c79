package svf

import (
	"fmt"
	"strings"
)

// Type selects the filter response produced by the output mix.
type Type int

const (
	// TypeNone passes input through unchanged.
	TypeNone Type = iota
	// TypeLowpass is a 12 dB/oct low-pass.
	TypeLowpass
	// TypeBandpass is a constant-skirt band-pass.
	TypeBandpass
	// TypeHighpass is a 12 dB/oct high-pass.
	TypeHighpass
	// TypeNotch is a band-reject.
	TypeNotch
	// TypeAllpass is a second-order allpass.
	TypeAllpass
	// TypeBell is a peaking equalizer.
	TypeBell
	// TypeLowshelf boosts or cuts below the corner frequency.
	TypeLowshelf
	// TypeHighshelf boosts or cuts above the corner frequency.
	TypeHighshelf

	numTypes
)

var typeNames = [numTypes]string{
	"none",
	"lowpass",
	"bandpass",
	"highpass",
	"notch",
	"allpass",
	"bell",
	"lowshelf",
	"highshelf",
}

func (t Type) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return typeNames[t]
}

// Valid reports whether t is one of the defined filter types.
func (t Type) Valid() bool {
	return t >= TypeNone && t < numTypes
}

// UsesGain reports whether the gain parameter shapes the response directly.
// Gain still reaches every type through auto-Q.
func (t Type) UsesGain() bool {
	return t == TypeBell || t == TypeLowshelf || t == TypeHighshelf
}

// Types returns all filter types in declaration order.
func Types() []Type {
	out := make([]Type, 0, numTypes)
	for t := TypeNone; t < numTypes; t++ {
		out = append(out, t)
	}
	return out
}

// ParseType resolves a filter type from its name (case-insensitive).
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return Type(t), nil
		}
	}
	return TypeNone, fmt.Errorf("%w: %q", ErrInvalidType, name)
}
