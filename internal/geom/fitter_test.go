package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantWidths(start, end Point) (float64, float64) { return 1, 2 }

func TestFitterNeedsThreePoints(t *testing.T) {
	var f Fitter

	_, ok := f.Add(Point{X: 0, Y: 0, Time: 0}, constantWidths)
	assert.False(t, ok)
	_, ok = f.Add(Point{X: 10, Y: 0, Time: 10}, constantWidths)
	assert.False(t, ok)

	c, ok := f.Add(Point{X: 20, Y: 0, Time: 20}, constantWidths)
	require.True(t, ok)

	// the first point is duplicated, so the first segment starts there
	assert.Equal(t, Point{X: 0, Y: 0, Time: 0}, c.Start)
	assert.Equal(t, Point{X: 10, Y: 0, Time: 10}, c.End)
	assert.Equal(t, 1.0, c.StartWidth)
	assert.Equal(t, 2.0, c.EndWidth)
	assert.Equal(t, 3, f.Len())
}

func TestFitterWindowNeverExceedsFour(t *testing.T) {
	var f Fitter
	for i := 0; i < 20; i++ {
		f.Add(Point{X: float64(i) * 5, Y: float64(i%3) * 4, Time: int64(i) * 10}, constantWidths)
		assert.LessOrEqual(t, f.Len(), 3)
	}

	f.Reset()
	assert.Equal(t, 0, f.Len())
}

func TestFitterSegmentsAreContinuous(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0, Time: 0},
		{X: 10, Y: 5, Time: 10},
		{X: 22, Y: 4, Time: 20},
		{X: 30, Y: 15, Time: 30},
		{X: 33, Y: 30, Time: 40},
		{X: 25, Y: 41, Time: 50},
	}

	var f Fitter
	var curves []Curve
	for _, p := range pts {
		if c, ok := f.Add(p, constantWidths); ok {
			curves = append(curves, c)
		}
	}
	require.Len(t, curves, len(pts)-2)

	for i := 1; i < len(curves); i++ {
		prev, next := curves[i-1], curves[i]
		require.Equal(t, prev.End, next.Start)

		// incoming and outgoing tangents point the same way
		inX, inY := prev.End.X-prev.Control2.X, prev.End.Y-prev.Control2.Y
		outX, outY := next.Control1.X-next.Start.X, next.Control1.Y-next.Start.Y
		cross := inX*outY - inY*outX
		assert.InDelta(t, 0, cross, 1e-9, "segment %d", i)
		assert.Greater(t, inX*outX+inY*outY, 0.0, "segment %d", i)
	}
}

func TestCurveStraightLine(t *testing.T) {
	window := [4]Point{{X: 0}, {X: 10}, {X: 20}, {X: 30}}
	c := CurveFromWindow(window, 1, 3)

	require.True(t, c.Valid())
	assert.InDelta(t, 10, c.Length(), 1e-9)

	x, y := c.At(0)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 0.0, y)
	x, y = c.At(1)
	assert.InDelta(t, 20, x, 1e-9)
	assert.Equal(t, 0.0, y)

	assert.Equal(t, 1.0, c.WidthAt(0))
	assert.Equal(t, 1.25, c.WidthAt(0.5))
	assert.Equal(t, 3.0, c.WidthAt(1))
}

func TestCurveFromRepeatedPointsIsInvalid(t *testing.T) {
	p := Point{X: 4, Y: 4}
	c := CurveFromWindow([4]Point{p, p, p, p}, 1, 1)
	assert.False(t, c.Valid())

	c = CurveFromWindow([4]Point{{X: 0}, {X: 1}, {X: 2}, {X: 3}}, math.Inf(1), 1)
	assert.False(t, c.Valid())
}
