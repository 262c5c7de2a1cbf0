package ink

import (
	"DrawPad/internal/geom"
	"DrawPad/internal/state"
)

// Tracer fits the samples of one stroke into curve segments.
type Tracer struct {
	fitter geom.Fitter
	width  WidthModel
	weight float64
}

// NewTracer creates a tracer with the given velocity filter weight.
func NewTracer(weight float64) *Tracer {
	return &Tracer{weight: weight}
}

// SetWeight changes the velocity filter weight of strokes that do not carry
// their own.
func (t *Tracer) SetWeight(weight float64) {
	t.weight = weight
}

// Reset starts a new stroke.
func (t *Tracer) Reset(style state.Style) {
	t.fitter.Reset()
	t.width.Weight = t.weight
	if style.VelocityFilterWeight > 0 {
		t.width.Weight = style.VelocityFilterWeight
	}
	t.width.Reset(style)
}

// Add feeds the next sample and returns a segment when one is ready.
func (t *Tracer) Add(p geom.Point) (geom.Curve, bool) {
	return t.fitter.Add(p, t.width.Widths)
}
