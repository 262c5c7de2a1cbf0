package geom

// windowSize is the number of points a fitted segment is derived from.
const windowSize = 4

// WidthFunc returns the widths at the start and end of the segment that runs
// from start to end.
type WidthFunc func(start, end Point) (startWidth, endWidth float64)

// Fitter turns the samples of one stroke into Bézier segments using a
// rolling window of the most recent points.
type Fitter struct {
	window []Point
}

// Reset drops all buffered points. Call it at the start of each stroke.
func (f *Fitter) Reset() {
	f.window = f.window[:0]
}

// Len returns the number of buffered points.
func (f *Fitter) Len() int {
	return len(f.window)
}

// Add buffers p and returns the next segment once at least three points have
// been seen. The first fit of a stroke duplicates the first point so a curve
// is available one sample earlier.
func (f *Fitter) Add(p Point, widths WidthFunc) (Curve, bool) {
	f.window = append(f.window, p)
	if len(f.window) < 3 {
		return Curve{}, false
	}
	if len(f.window) == 3 {
		f.window = append([]Point{f.window[0]}, f.window...)
	}

	start, end := widths(f.window[1], f.window[2])
	curve := CurveFromWindow([windowSize]Point(f.window), start, end)

	f.window = append(f.window[:0], f.window[1:]...)
	return curve, true
}
