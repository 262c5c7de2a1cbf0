package geom

import "math"

// lengthSteps is the number of chords used to approximate a curve's length.
const lengthSteps = 10

// Curve is a cubic Bézier segment whose width varies between StartWidth and
// EndWidth. Curves are produced by a Fitter and consumed immediately.
type Curve struct {
	Start    Point
	Control1 Point
	Control2 Point
	End      Point

	StartWidth float64
	EndWidth   float64
}

// CurveFromWindow builds the segment between window[1] and window[2]. The
// outer points only shape the tangents, which keeps consecutive segments of
// one stroke C1-continuous.
func CurveFromWindow(window [4]Point, startWidth, endWidth float64) Curve {
	_, c2 := controlPoints(window[0], window[1], window[2])
	c3, _ := controlPoints(window[1], window[2], window[3])
	return Curve{
		Start:      window[1],
		Control1:   c2,
		Control2:   c3,
		End:        window[2],
		StartWidth: startWidth,
		EndWidth:   endWidth,
	}
}

// controlPoints returns the two control points around s2 for the corner
// s1-s2-s3. The tangent at s2 is parallel to the line between the chord
// midpoints, split in proportion to the chord lengths.
func controlPoints(s1, s2, s3 Point) (c1, c2 Point) {
	dx1, dy1 := s1.X-s2.X, s1.Y-s2.Y
	dx2, dy2 := s2.X-s3.X, s2.Y-s3.Y

	m1x, m1y := (s1.X+s2.X)/2, (s1.Y+s2.Y)/2
	m2x, m2y := (s2.X+s3.X)/2, (s2.Y+s3.Y)/2

	l1 := math.Hypot(dx1, dy1)
	l2 := math.Hypot(dx2, dy2)

	// NaN when both chords are empty; Valid rejects the resulting curve.
	k := l2 / (l1 + l2)
	cmx := m2x + (m1x-m2x)*k
	cmy := m2y + (m1y-m2y)*k

	tx, ty := s2.X-cmx, s2.Y-cmy
	c1 = Point{X: m1x + tx, Y: m1y + ty, Time: s2.Time}
	c2 = Point{X: m2x + tx, Y: m2y + ty, Time: s2.Time}
	return c1, c2
}

// At evaluates the curve position at t in [0,1].
func (c Curve) At(t float64) (x, y float64) {
	return bezier(t, c.Start.X, c.Control1.X, c.Control2.X, c.End.X),
		bezier(t, c.Start.Y, c.Control1.Y, c.Control2.Y, c.End.Y)
}

// WidthAt returns the ink width at t. The width moves towards EndWidth with
// t cubed so most of the change happens near the end of the segment.
func (c Curve) WidthAt(t float64) float64 {
	return Lerp(c.StartWidth, c.EndWidth, t*t*t)
}

// Length approximates the arc length with a fixed number of chords.
func (c Curve) Length() float64 {
	var length, px, py float64
	for i := 0; i <= lengthSteps; i++ {
		t := float64(i) / lengthSteps
		x, y := c.At(t)
		if i > 0 {
			length += math.Hypot(x-px, y-py)
		}
		px, py = x, y
	}
	return length
}

// Valid reports whether every control coordinate is finite. Curves fitted
// across discontinuous input can carry NaN control points and must not be
// rendered or exported.
func (c Curve) Valid() bool {
	for _, p := range [...]Point{c.Start, c.Control1, c.Control2, c.End} {
		if !finite(p.X) || !finite(p.Y) {
			return false
		}
	}
	return finite(c.StartWidth) && finite(c.EndWidth)
}

func bezier(t, start, c1, c2, end float64) float64 {
	u := 1 - t
	return start*u*u*u + 3*c1*u*u*t + 3*c2*u*t*t + end*t*t*t
}
