package ink

import (
	"DrawPad/internal/geom"
	"DrawPad/internal/state"
)

// Renderer receives the primitives of a replayed record.
type Renderer interface {
	DrawCurve(c geom.Curve, style state.Style)
	DrawDot(p geom.Point, style state.Style)
}

// Replayer walks a record and regenerates the segments of every stroke.
type Replayer struct {
	Weight float64

	// LeadingDots also stamps the first point of multi-point strokes, the
	// way live drawing does. Raster replay needs it to match live output;
	// vector export does not.
	LeadingDots bool
}

// Replay renders groups in order.
func (rp Replayer) Replay(groups []state.PointGroup, r Renderer) {
	tracer := NewTracer(rp.Weight)
	for _, g := range groups {
		switch {
		case len(g.Points) == 0:
			continue
		case g.IsDot():
			r.DrawDot(g.Points[0], g.Style)
			continue
		}

		tracer.Reset(g.Style)
		if rp.LeadingDots {
			r.DrawDot(g.Points[0], g.Style)
		}
		for _, p := range g.Points {
			if c, ok := tracer.Add(p); ok {
				r.DrawCurve(c, g.Style)
			}
		}
	}
}
