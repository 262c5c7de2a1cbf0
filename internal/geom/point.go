// Package geom holds the point and curve math shared by live drawing,
// replay and export.
package geom

import "math"

// Point is a single captured sample. Time is in milliseconds.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
	Time     int64   `json:"time"`
}

// NewPoint creates a point, clamping pressure into [0,1].
func NewPoint(x, y, pressure float64, timeMs int64) Point {
	switch {
	case pressure < 0 || math.IsNaN(pressure):
		pressure = 0
	case pressure > 1:
		pressure = 1
	}
	return Point{X: x, Y: y, Pressure: pressure, Time: timeMs}
}

// DistanceTo returns the Euclidean distance between p and q. Pressure and
// time are ignored.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// VelocityFrom returns the speed in pixels per millisecond travelled from
// start to p. Elapsed time is floored at 1ms.
func (p Point) VelocityFrom(start Point) float64 {
	elapsed := p.Time - start.Time
	if elapsed < 1 {
		elapsed = 1
	}
	return p.DistanceTo(start) / float64(elapsed)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
