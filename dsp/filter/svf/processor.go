package svf

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-svf/dsp/core"
	"github.com/cwbudde/algo-svf/dsp/smooth"
)

// Processor is a smoothed, multi-channel TPT-SVF equalizer band.
//
// Parameter setters may be called from any goroutine. They publish new
// targets through atomics and raise a pending flag; the processing goroutine
// picks the targets up at the next block boundary. Frequency, gain and Q
// glide linearly toward their targets, while type and auto-Q switch at once.
//
// Prepare, Reset, SetRampDurationSeconds, Update, Skip and the Process
// methods belong to the processing goroutine and must not run concurrently
// with each other. Coefficients are regenerated at most once per block.
type Processor struct {
	sampleRate  float64
	blockSize   int
	rampSeconds float64

	filters []Filter
	coeffs  Coefficients

	filterType Type
	autoQ      bool
	frequency  smooth.LinearRamp
	gain       smooth.LinearRamp
	q          smooth.LinearRamp

	shouldUpdate bool

	// Control plane: written by setters, consumed by applyPending.
	pending     atomic.Bool
	targetType  atomic.Int32
	targetAutoQ atomic.Bool
	targetFreq  atomicFloat64
	targetGain  atomicFloat64
	targetQ     atomicFloat64
	nyquist     atomicFloat64

	// Display plane: written after each update, read by Snapshot.
	shownType  atomic.Int32
	shownAutoQ atomic.Bool
	shownFreq  atomicFloat64
	shownGain  atomicFloat64
	shownQ     atomicFloat64
	shownRate  atomicFloat64
}

// Snapshot is a consistent-enough view of the smoothed parameters for
// display code running outside the processing goroutine.
type Snapshot struct {
	Type       Type
	Frequency  float64
	Gain       float64
	Q          float64
	AutoQ      bool
	SampleRate float64
}

// NewProcessor constructs a processor. Call Prepare before processing.
func NewProcessor(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	p := &Processor{
		rampSeconds:  cfg.rampSeconds,
		filters:      []Filter{{coeffs: Passthrough()}},
		coeffs:       Passthrough(),
		filterType:   cfg.filterType,
		autoQ:        cfg.autoQ,
		frequency:    smooth.NewLinearRamp(cfg.frequency),
		gain:         smooth.NewLinearRamp(cfg.gain),
		q:            smooth.NewLinearRamp(cfg.q),
		shouldUpdate: true,
	}

	p.targetType.Store(int32(cfg.filterType))
	p.targetAutoQ.Store(cfg.autoQ)
	p.targetFreq.Store(cfg.frequency)
	p.targetGain.Store(cfg.gain)
	p.targetQ.Store(cfg.q)
	p.publish()

	return p, nil
}

// SetType selects the filter type. The change applies at the next update.
func (p *Processor) SetType(t Type) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidType, t)
	}
	p.targetType.Store(int32(t))
	p.pending.Store(true)
	return nil
}

// SetFrequency sets the target frequency in Hz. Once prepared, the value
// must not exceed Nyquist.
func (p *Processor) SetFrequency(hz float64) error {
	if err := validateFrequency(hz, 2*p.nyquist.Load()); err != nil {
		return err
	}
	p.targetFreq.Store(hz)
	p.pending.Store(true)
	return nil
}

// SetGain sets the target gain in dB.
func (p *Processor) SetGain(db float64) error {
	if err := validateGain(db); err != nil {
		return err
	}
	p.targetGain.Store(db)
	p.pending.Store(true)
	return nil
}

// SetQ sets the target resonance.
func (p *Processor) SetQ(q float64) error {
	if err := validateQ(q); err != nil {
		return err
	}
	p.targetQ.Store(q)
	p.pending.Store(true)
	return nil
}

// SetAutoQ enables or disables gain-dependent resonance.
func (p *Processor) SetAutoQ(enabled bool) {
	p.targetAutoQ.Store(enabled)
	p.pending.Store(true)
}

// SetRampDurationSeconds changes the smoothing time. A changed duration
// resets the processor, dropping any glide in flight.
func (p *Processor) SetRampDurationSeconds(seconds float64) error {
	if err := validateRamp(seconds); err != nil {
		return err
	}
	if seconds == p.rampSeconds {
		return nil
	}

	p.rampSeconds = seconds
	Logger().Debug("svf: ramp duration changed", slog.Float64("seconds", seconds))
	p.Reset()
	return nil
}

// Type returns the active filter type.
func (p *Processor) Type() Type { return p.filterType }

// AutoQ reports whether auto-Q is active.
func (p *Processor) AutoQ() bool { return p.autoQ }

// Frequency returns the current smoothed frequency in Hz.
func (p *Processor) Frequency() float64 { return p.frequency.Current() }

// Gain returns the current smoothed gain in dB.
func (p *Processor) Gain() float64 { return p.gain.Current() }

// Q returns the current smoothed resonance.
func (p *Processor) Q() float64 { return p.q.Current() }

// RampDurationSeconds returns the smoothing time.
func (p *Processor) RampDurationSeconds() float64 { return p.rampSeconds }

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// Channels returns the number of prepared channels.
func (p *Processor) Channels() int { return len(p.filters) }

// Coefficients returns the active coefficient set.
func (p *Processor) Coefficients() Coefficients { return p.coeffs }

// NeedsUpdate reports whether the next Update will regenerate coefficients
// or consume new targets.
func (p *Processor) NeedsUpdate() bool {
	return p.shouldUpdate || p.pending.Load()
}

// Prepare configures the processor for a stream and resets it.
func (p *Processor) Prepare(cfg core.ProcessorConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("svf: prepare: %w", err)
	}

	p.sampleRate = cfg.SampleRate
	p.blockSize = cfg.BlockSize

	nyquist := 0.5 * cfg.SampleRate
	p.nyquist.Store(nyquist)
	if f := p.targetFreq.Load(); f > nyquist {
		Logger().Warn("svf: frequency above Nyquist, clamping",
			slog.Float64("frequency", f), slog.Float64("nyquist", nyquist))
		p.targetFreq.Store(nyquist)
		p.pending.Store(true)
	}

	if cap(p.filters) >= cfg.Channels {
		p.filters = p.filters[:cfg.Channels]
	} else {
		p.filters = make([]Filter, cfg.Channels)
	}
	for i := range p.filters {
		p.filters[i].SetCoefficients(p.coeffs)
		p.filters[i].Prepare(cfg.SampleRate, cfg.Channels)
	}

	Logger().Debug("svf: prepared",
		slog.Float64("sampleRate", cfg.SampleRate),
		slog.Int("blockSize", cfg.BlockSize),
		slog.Int("channels", cfg.Channels))

	p.Reset()
	return nil
}

// Reset clears every channel's integrators and snaps the ramps onto their
// targets with the current duration. Coefficients are regenerated at the
// next update.
func (p *Processor) Reset() {
	for i := range p.filters {
		p.filters[i].Reset()
	}

	p.applyPending()

	if p.sampleRate != 0 {
		p.frequency.Reset(p.sampleRate, p.rampSeconds)
		p.gain.Reset(p.sampleRate, p.rampSeconds)
		p.q.Reset(p.sampleRate, p.rampSeconds)
	}

	p.shouldUpdate = true
	p.publish()

	Logger().Debug("svf: reset", slog.Int("rampSteps", p.frequency.Steps()))
}

// Skip advances all ramps by n samples without producing output.
func (p *Processor) Skip(n int) {
	p.applyPending()

	p.frequency.Skip(n)
	p.gain.Skip(n)
	p.q.Skip(n)

	p.publish()
}

// Update consumes pending targets and, if anything changed or a ramp is
// still moving, advances each ramp one step and installs a new coefficient
// set. TypeNone leaves the active set untouched.
func (p *Processor) Update() {
	p.applyPending()

	if !p.shouldUpdate {
		return
	}

	checkContract(p.sampleRate > 0, "update: processor not prepared")
	if p.sampleRate <= 0 {
		return
	}

	sf := p.frequency.Next()
	sg := p.gain.Next()
	sq := p.q.Next()

	checkContract(sf > 0, "update: smoothed frequency must be > 0")
	checkContract(sq > 0, "update: smoothed q must be > 0")

	if c, ok := Make(p.filterType, p.sampleRate, sf, sg, sq, p.autoQ); ok {
		p.coeffs = c
		for i := range p.filters {
			p.filters[i].SetCoefficients(c)
		}
	}

	p.publish()

	if !p.frequency.IsSmoothing() && !p.gain.IsSmoothing() && !p.q.IsSmoothing() {
		p.shouldUpdate = false
	}
}

// Process filters one mono block from src into dst (which may alias src)
// on channel 0. When bypassed or the type is none, the ramps skip ahead by
// the block length and src is copied through unchanged.
func (p *Processor) Process(dst, src []float64, bypassed bool) {
	checkContract(len(dst) == len(src), "process: dst and src lengths differ")

	p.applyPending()

	if bypassed || p.filterType == TypeNone {
		p.Skip(len(src))
		core.CopyInto(dst, src)
		return
	}

	p.Update()
	p.filters[0].ProcessTo(dst, src)
}

// ProcessInPlace filters buf on channel 0.
func (p *Processor) ProcessInPlace(buf []float64) {
	p.Process(buf, buf, false)
}

// ProcessChannels filters one planar block per channel. Channel i of src is
// written to channel i of dst (which may alias src). All channels share the
// same coefficient set and ramps; each has its own integrators.
func (p *Processor) ProcessChannels(dst, src [][]float64, bypassed bool) {
	checkContract(len(dst) == len(src), "process: dst and src channel counts differ")
	checkContract(len(src) <= len(p.filters), "process: more channels than prepared")

	n := 0
	if len(src) > 0 {
		n = len(src[0])
	}

	p.applyPending()

	if bypassed || p.filterType == TypeNone {
		p.Skip(n)
		for ch := range src {
			core.CopyInto(dst[ch], src[ch])
		}
		return
	}

	p.Update()

	channels := min(len(src), len(p.filters))
	for ch := range channels {
		p.filters[ch].ProcessTo(dst[ch], src[ch])
	}
}

// Snapshot returns the most recently published smoothed parameters. It is
// safe to call from any goroutine.
func (p *Processor) Snapshot() Snapshot {
	return Snapshot{
		Type:       Type(p.shownType.Load()),
		Frequency:  p.shownFreq.Load(),
		Gain:       p.shownGain.Load(),
		Q:          p.shownQ.Load(),
		AutoQ:      p.shownAutoQ.Load(),
		SampleRate: p.shownRate.Load(),
	}
}

// DisplayCoefficients rebuilds the active coefficient set from the latest
// snapshot for response rendering. Type none, or an unprepared processor,
// yields Passthrough. Safe to call from any goroutine.
func (p *Processor) DisplayCoefficients() Coefficients {
	return p.Snapshot().Coefficients()
}

// Coefficients designs the set described by the snapshot.
func (s Snapshot) Coefficients() Coefficients {
	if s.SampleRate <= 0 || s.Frequency <= 0 || s.Q <= 0 {
		return Passthrough()
	}
	freq := math.Min(s.Frequency, 0.5*s.SampleRate)
	c, ok := Make(s.Type, s.SampleRate, freq, s.Gain, s.Q, s.AutoQ)
	if !ok {
		return Passthrough()
	}
	return c
}

// MagnitudeForFrequency evaluates the display set's magnitude at freqHz.
func (p *Processor) MagnitudeForFrequency(freqHz, sampleRate float64) float64 {
	return p.DisplayCoefficients().MagnitudeForFrequency(freqHz, sampleRate)
}

// PhaseForFrequency evaluates the display set's phase at freqHz.
func (p *Processor) PhaseForFrequency(freqHz, sampleRate float64) float64 {
	return p.DisplayCoefficients().PhaseForFrequency(freqHz, sampleRate)
}

// MagnitudeForFrequencies fills dst with the display set's magnitudes.
func (p *Processor) MagnitudeForFrequencies(dst, freqs []float64, sampleRate float64) []float64 {
	return p.DisplayCoefficients().MagnitudeForFrequencies(dst, freqs, sampleRate)
}

// PhaseForFrequencies fills dst with the display set's phases.
func (p *Processor) PhaseForFrequencies(dst, freqs []float64, sampleRate float64) []float64 {
	return p.DisplayCoefficients().PhaseForFrequencies(dst, freqs, sampleRate)
}

// applyPending moves control-plane targets into the processing state.
// Discrete fields flag an update when they differ from the active value,
// ramped fields when the target differs from the current smoothed value.
func (p *Processor) applyPending() {
	if !p.pending.Swap(false) {
		return
	}

	if t := Type(p.targetType.Load()); t != p.filterType {
		p.filterType = t
		p.shouldUpdate = true
	}

	if aq := p.targetAutoQ.Load(); aq != p.autoQ {
		p.autoQ = aq
		p.shouldUpdate = true
	}

	p.retarget(&p.frequency, p.targetFreq.Load())
	p.retarget(&p.gain, p.targetGain.Load())
	p.retarget(&p.q, p.targetQ.Load())
}

func (p *Processor) retarget(r *smooth.LinearRamp, target float64) {
	if target != r.Current() {
		r.SetTarget(target)
		p.shouldUpdate = true
	}
}

func (p *Processor) publish() {
	p.shownType.Store(int32(p.filterType))
	p.shownAutoQ.Store(p.autoQ)
	p.shownFreq.Store(p.frequency.Current())
	p.shownGain.Store(p.gain.Current())
	p.shownQ.Store(p.q.Current())
	p.shownRate.Store(p.sampleRate)
}

// atomicFloat64 stores a float64 as its IEEE-754 bits.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}
