package pad

import (
	"math"
	"time"

	"DrawPad/internal/ink"
	"DrawPad/internal/state"

	"github.com/google/uuid"
)

// Defaults applied by DefaultOptions.
const (
	DefaultDotSize     = 0
	DefaultMinWidth    = 0.5
	DefaultMaxWidth    = 2.5
	DefaultPenColor    = "black"
	DefaultMinDistance = 5
	DefaultThrottle    = 16 * time.Millisecond
)

// Options is the pad configuration. Zero fields take their defaults. Set
// MinDistance, VelocityFilterWeight or Throttle negative to turn that
// behaviour off explicitly.
type Options struct {
	// DotSize is the radius of a single tap. Zero uses the mid width.
	DotSize  float64
	MinWidth float64
	MaxWidth float64
	PenColor string

	// MinDistance drops samples closer than this to the previous point.
	// Negative accepts every sample.
	MinDistance float64
	// VelocityFilterWeight blends instant and previous velocity, in [0,1].
	// Negative means 0.
	VelocityFilterWeight float64
	// BackgroundColor fills the surface on Clear. Empty is transparent.
	BackgroundColor string
	// Throttle is the minimum spacing between processed moves. Negative
	// disables throttling.
	Throttle time.Duration
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DotSize:              DefaultDotSize,
		MinWidth:             DefaultMinWidth,
		MaxWidth:             DefaultMaxWidth,
		PenColor:             DefaultPenColor,
		MinDistance:          DefaultMinDistance,
		VelocityFilterWeight: ink.DefaultVelocityFilterWeight,
		Throttle:             DefaultThrottle,
	}
}

// normalize fills unset fields with defaults and repairs out-of-range
// values so the width invariants hold. Negative switches are kept so that
// normalizing twice changes nothing.
func (o Options) normalize() Options {
	if o.DotSize < 0 || math.IsNaN(o.DotSize) {
		o.DotSize = DefaultDotSize
	}
	if o.MinWidth <= 0 || math.IsNaN(o.MinWidth) {
		o.MinWidth = DefaultMinWidth
	}
	if o.MaxWidth < o.MinWidth || math.IsNaN(o.MaxWidth) {
		o.MaxWidth = math.Max(DefaultMaxWidth, o.MinWidth)
	}
	if o.PenColor == "" {
		o.PenColor = DefaultPenColor
	}
	if o.MinDistance == 0 || math.IsNaN(o.MinDistance) {
		o.MinDistance = DefaultMinDistance
	}
	if o.VelocityFilterWeight == 0 || math.IsNaN(o.VelocityFilterWeight) {
		o.VelocityFilterWeight = ink.DefaultVelocityFilterWeight
	}
	o.VelocityFilterWeight = math.Min(o.VelocityFilterWeight, 1)
	if o.Throttle == 0 {
		o.Throttle = DefaultThrottle
	}
	return o
}

func (o Options) minDistance() float64 {
	return math.Max(o.MinDistance, 0)
}

func (o Options) velocityFilterWeight() float64 {
	return math.Max(o.VelocityFilterWeight, 0)
}

func (o Options) throttle() time.Duration {
	return max(o.Throttle, 0)
}

func (o Options) style() state.Style {
	return state.Style{
		PenColor: o.PenColor,
		DotSize:  o.DotSize,
		MinWidth: o.MinWidth,
		MaxWidth: o.MaxWidth,

		VelocityFilterWeight: o.velocityFilterWeight(),
	}
}

// Option configures a Pad during creation.
type Option func(*Pad)

// WithClock sets the clock used to stamp points and drive the throttle.
func WithClock(c state.Clock) Option {
	return func(p *Pad) {
		p.clock = c
	}
}

// WithDecoder sets the decoder used by FromDataURL.
func WithDecoder(d Decoder) Option {
	return func(p *Pad) {
		p.decoder = d
	}
}

// WithDispatcher makes the pad hand asynchronous completions (image imports
// and throttled samples) to fn, which must run them on the goroutine that
// owns the pad. Fyne hosts pass fyne.Do.
func WithDispatcher(fn func(func())) Option {
	return func(p *Pad) {
		p.dispatch = fn
	}
}

// WithIDGenerator overrides how point group IDs are made.
func WithIDGenerator(fn func() string) Option {
	return func(p *Pad) {
		p.newID = fn
	}
}

func newGroupID() string {
	return uuid.NewString()
}
