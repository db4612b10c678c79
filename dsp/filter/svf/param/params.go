package param

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-svf/dsp/filter/svf"
)

// Parameter ranges of one EQ band.
var (
	FrequencyRange = Range{Min: 20, Max: 22000, Scale: ScaleLog}
	GainRange      = Range{Min: -36, Max: 36, Scale: ScaleSymmetricSkew, Skew: 0.666}
	QRange         = Range{Min: 0.1, Max: 8, Scale: ScaleSkew, Skew: 0.333}
)

// Defaults of one EQ band.
const (
	DefaultType      = svf.TypeNone
	DefaultFrequency = 1000.0
	DefaultGain      = 0.0
	DefaultQ         = 0.707
	DefaultAutoQ     = false
)

// Params is the full control state of one band in plain units.
type Params struct {
	Type      svf.Type
	Frequency float64
	Gain      float64
	Q         float64
	AutoQ     bool
}

// Normalised is Params in the [0, 1] host domain. Type is spread evenly
// across the choice list and AutoQ is on above 0.5.
type Normalised struct {
	Type      float64
	Frequency float64
	Gain      float64
	Q         float64
	AutoQ     float64
}

// Default returns the band defaults.
func Default() Params {
	return Params{
		Type:      DefaultType,
		Frequency: DefaultFrequency,
		Gain:      DefaultGain,
		Q:         DefaultQ,
		AutoQ:     DefaultAutoQ,
	}
}

// Clamp limits every field to its range. When sampleRate > 0 the frequency
// is also capped at Nyquist. An invalid type becomes DefaultType.
func (p Params) Clamp(sampleRate float64) Params {
	if !p.Type.Valid() {
		p.Type = DefaultType
	}
	p.Frequency = FrequencyRange.Clamp(p.Frequency)
	if sampleRate > 0 {
		p.Frequency = math.Min(p.Frequency, 0.5*sampleRate)
	}
	p.Gain = GainRange.Clamp(p.Gain)
	p.Q = QRange.Clamp(p.Q)
	return p
}

// Validate reports the first field outside its range.
func (p Params) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: type %d", ErrOutOfRange, p.Type)
	}
	if err := FrequencyRange.check("frequency", p.Frequency); err != nil {
		return err
	}
	if err := GainRange.check("gain", p.Gain); err != nil {
		return err
	}
	return QRange.check("q", p.Q)
}

// Apply validates p and pushes it into proc. Targets land atomically per
// field; the processor picks them up at its next block. On error proc is
// left unchanged.
func (p Params) Apply(proc *svf.Processor) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("param: apply: %w", err)
	}

	// Validate covers the static ranges; the Nyquist limit of a prepared
	// processor is the only check left, so the frequency goes first.
	if err := proc.SetFrequency(p.Frequency); err != nil {
		return fmt.Errorf("param: apply: %w", err)
	}
	if err := proc.SetGain(p.Gain); err != nil {
		return fmt.Errorf("param: apply: %w", err)
	}
	if err := proc.SetQ(p.Q); err != nil {
		return fmt.Errorf("param: apply: %w", err)
	}
	if err := proc.SetType(p.Type); err != nil {
		return fmt.Errorf("param: apply: %w", err)
	}
	proc.SetAutoQ(p.AutoQ)

	return nil
}

// Options returns processor construction options matching p.
func (p Params) Options() []svf.Option {
	return []svf.Option{
		svf.WithType(p.Type),
		svf.WithFrequency(p.Frequency),
		svf.WithGain(p.Gain),
		svf.WithQ(p.Q),
		svf.WithAutoQ(p.AutoQ),
	}
}

// Normalise maps p into the host domain.
func (p Params) Normalise() Normalised {
	n := Normalised{
		Type:      float64(p.Type) / float64(len(svf.Types())-1),
		Frequency: FrequencyRange.ToNormalised(p.Frequency),
		Gain:      GainRange.ToNormalised(p.Gain),
		Q:         QRange.ToNormalised(p.Q),
	}
	if p.AutoQ {
		n.AutoQ = 1
	}
	return n
}

// Denormalise maps n back into plain units.
func (n Normalised) Denormalise() Params {
	last := len(svf.Types()) - 1
	idx := int(math.Round(clamp01(n.Type) * float64(last)))

	return Params{
		Type:      svf.Type(idx),
		Frequency: FrequencyRange.FromNormalised(n.Frequency),
		Gain:      GainRange.FromNormalised(n.Gain),
		Q:         QRange.FromNormalised(n.Q),
		AutoQ:     n.AutoQ > 0.5,
	}
}
