package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceTo(t *testing.T) {
	a := Point{X: 0, Y: 0, Pressure: 0.2, Time: 5}
	b := Point{X: 3, Y: 4, Pressure: 0.9, Time: 50}
	assert.Equal(t, 5.0, a.DistanceTo(b))
	assert.Equal(t, 5.0, b.DistanceTo(a))
}

func TestVelocityFrom(t *testing.T) {
	start := Point{X: 0, Y: 0, Time: 100}

	assert.Equal(t, 2.0, Point{X: 10, Y: 0, Time: 105}.VelocityFrom(start))
	// same timestamp is treated as one millisecond
	assert.Equal(t, 10.0, Point{X: 10, Y: 0, Time: 100}.VelocityFrom(start))
	assert.Equal(t, 0.0, start.VelocityFrom(start))
}

func TestNewPointClampsPressure(t *testing.T) {
	assert.Equal(t, 0.0, NewPoint(1, 1, -0.5, 0).Pressure)
	assert.Equal(t, 1.0, NewPoint(1, 1, 3, 0).Pressure)
	assert.Equal(t, 0.0, NewPoint(1, 1, math.NaN(), 0).Pressure)
	assert.Equal(t, 0.4, NewPoint(1, 1, 0.4, 0).Pressure)
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 1.0, Lerp(1, 3, 0))
	assert.Equal(t, 2.0, Lerp(1, 3, 0.5))
	assert.Equal(t, 3.0, Lerp(1, 3, 1))
}
