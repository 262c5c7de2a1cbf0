package ink

import (
	"testing"

	"DrawPad/internal/geom"
	"DrawPad/internal/state"

	"github.com/stretchr/testify/assert"
)

func TestStrokeWidthMonotonicAndBounded(t *testing.T) {
	const minW, maxW = 0.5, 2.5

	prev := StrokeWidth(0, minW, maxW)
	assert.Equal(t, maxW, prev)
	for v := 0.05; v < 50; v += 0.05 {
		w := StrokeWidth(v, minW, maxW)
		assert.LessOrEqual(t, w, prev, "velocity %v", v)
		assert.GreaterOrEqual(t, w, minW)
		assert.LessOrEqual(t, w, maxW)
		prev = w
	}
	assert.Equal(t, minW, StrokeWidth(1000, minW, maxW))
}

func TestWidthModelSmoothsVelocity(t *testing.T) {
	m := WidthModel{Weight: 0.7}
	m.Reset(state.Style{MinWidth: 1, MaxWidth: 3})
	assert.Equal(t, 2.0, m.LastWidth())
	assert.Equal(t, 0.0, m.LastVelocity())

	start, end := m.Widths(geom.Point{X: 0, Time: 0}, geom.Point{X: 10, Time: 10})
	assert.Equal(t, 2.0, start, "first segment starts at the mid width")
	// velocity 1px/ms filtered: 0.7*1 + 0.3*0
	assert.InDelta(t, 0.7, m.LastVelocity(), 1e-12)
	assert.InDelta(t, 3/1.7, end, 1e-12)

	start, _ = m.Widths(geom.Point{X: 10, Time: 10}, geom.Point{X: 10, Time: 20})
	assert.Equal(t, end, start, "segments chain their widths")
	assert.InDelta(t, 0.21, m.LastVelocity(), 1e-12)
}

func TestWidthModelWeightOne(t *testing.T) {
	m := WidthModel{Weight: 1}
	m.Reset(state.Style{MinWidth: 1, MaxWidth: 3})
	m.Widths(geom.Point{Time: 0}, geom.Point{X: 100, Time: 1})
	_, end := m.Widths(geom.Point{Time: 0}, geom.Point{X: 0, Time: 10})
	assert.Equal(t, 3.0, end, "no history is kept with weight 1")
}
