package state

import (
	"errors"
	"fmt"
	"math"

	"DrawPad/internal/geom"
)

// ErrInvalidGroup is returned when a point group breaks the record invariants.
var ErrInvalidGroup = errors.New("invalid point group")

// Style is the pen configuration captured when a stroke starts.
type Style struct {
	PenColor string  `json:"penColor"`
	DotSize  float64 `json:"dotSize"`
	MinWidth float64 `json:"minWidth"`
	MaxWidth float64 `json:"maxWidth"`
	// VelocityFilterWeight is the weight the stroke was drawn with. Zero
	// leaves the choice to whoever replays the stroke.
	VelocityFilterWeight float64 `json:"velocityFilterWeight,omitempty"`
}

// DotWidth is the radius used when a stroke is a single tap.
func (s Style) DotWidth() float64 {
	if s.DotSize > 0 {
		return s.DotSize
	}
	return (s.MinWidth + s.MaxWidth) / 2
}

// PointGroup is the vector record of one stroke. A group with one point is a
// dot, with more points it is a curve.
type PointGroup struct {
	ID string `json:"id,omitempty"`
	Style
	Points []geom.Point `json:"points"`
}

// IsDot reports whether the group renders as a single dot.
func (g PointGroup) IsDot() bool {
	return len(g.Points) == 1
}

// Clone returns a deep copy of g.
func (g PointGroup) Clone() PointGroup {
	c := g
	c.Points = append([]geom.Point(nil), g.Points...)
	return c
}

// Validate checks the width bounds and that points are time ordered.
func (g PointGroup) Validate() error {
	if g.MinWidth <= 0 || math.IsNaN(g.MinWidth) {
		return fmt.Errorf("%w: minWidth %v must be positive", ErrInvalidGroup, g.MinWidth)
	}
	if g.MaxWidth < g.MinWidth {
		return fmt.Errorf("%w: maxWidth %v below minWidth %v", ErrInvalidGroup, g.MaxWidth, g.MinWidth)
	}
	if g.VelocityFilterWeight < 0 || g.VelocityFilterWeight > 1 {
		return fmt.Errorf("%w: velocityFilterWeight %v outside [0,1]", ErrInvalidGroup, g.VelocityFilterWeight)
	}
	if g.DotSize < 0 {
		return fmt.Errorf("%w: negative dotSize %v", ErrInvalidGroup, g.DotSize)
	}
	for i := 1; i < len(g.Points); i++ {
		if g.Points[i].Time < g.Points[i-1].Time {
			return fmt.Errorf("%w: point %d goes back in time", ErrInvalidGroup, i)
		}
	}
	return nil
}
