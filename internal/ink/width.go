// Package ink turns stroke samples into width-annotated curve segments. The
// same code path serves live drawing, full replay and vector export, which
// keeps replayed output identical to what was drawn.
package ink

import (
	"math"

	"DrawPad/internal/geom"
	"DrawPad/internal/state"
)

// DefaultVelocityFilterWeight blends 70% of the instant velocity into the
// smoothed one.
const DefaultVelocityFilterWeight = 0.7

// WidthModel maps pointer velocity to ink width. Faster strokes get thinner
// down to MinWidth.
type WidthModel struct {
	Weight   float64
	MinWidth float64
	MaxWidth float64

	lastVelocity float64
	lastWidth    float64
}

// Reset prepares the model for a new stroke drawn with style.
func (m *WidthModel) Reset(style state.Style) {
	m.MinWidth = style.MinWidth
	m.MaxWidth = style.MaxWidth
	m.lastVelocity = 0
	m.lastWidth = (style.MinWidth + style.MaxWidth) / 2
}

// LastVelocity returns the smoothed velocity of the previous segment.
func (m *WidthModel) LastVelocity() float64 { return m.lastVelocity }

// LastWidth returns the width at the end of the previous segment.
func (m *WidthModel) LastWidth() float64 { return m.lastWidth }

// Widths returns the start and end width of the segment from start to end
// and advances the model.
func (m *WidthModel) Widths(start, end geom.Point) (float64, float64) {
	velocity := m.Weight*end.VelocityFrom(start) + (1-m.Weight)*m.lastVelocity
	width := StrokeWidth(velocity, m.MinWidth, m.MaxWidth)

	startWidth := m.lastWidth
	m.lastVelocity = velocity
	m.lastWidth = width
	return startWidth, width
}

// StrokeWidth is maxWidth/(velocity+1) floored at minWidth.
func StrokeWidth(velocity, minWidth, maxWidth float64) float64 {
	return math.Max(maxWidth/(velocity+1), minWidth)
}
