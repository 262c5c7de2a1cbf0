// Package export writes a stroke record as vector documents.
package export

import (
	"fmt"
	"html"
	"io"
	"math"

	"DrawPad/internal/geom"
	"DrawPad/internal/ink"
	"DrawPad/internal/state"

	svg "github.com/ajstarks/svgo/float"
)

// Canvas describes the surface a record was drawn on.
type Canvas struct {
	// Width and Height are in device pixels.
	Width  float64
	Height float64
	// Ratio is device pixels per client pixel. Values below 1 mean 1.
	Ratio float64
	// Background fills the page when set.
	Background string
	// VelocityFilterWeight replays strokes that do not record their own
	// weight.
	VelocityFilterWeight float64
}

func (c Canvas) ratio() float64 {
	if math.IsNaN(c.Ratio) {
		return 1
	}
	return math.Max(c.Ratio, 1)
}

// clientSize returns the canvas size in client pixels, the unit points are
// recorded in.
func (c Canvas) clientSize() (float64, float64) {
	r := c.ratio()
	return c.Width / r, c.Height / r
}

// SVG writes groups as an SVG document with a pixel-sized viewBox: one path
// per fitted segment and one circle per single-point group.
func SVG(w io.Writer, groups []state.PointGroup, c Canvas) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Decimals = 3

	cw, ch := c.clientSize()
	canvas.Startview(cw, ch, 0, 0, c.Width, c.Height)
	r := c.ratio()
	if r != 1 {
		canvas.Scale(r)
	}
	if c.Background != "" {
		canvas.Rect(0, 0, cw, ch, attr("fill", c.Background))
	}

	ink.Replayer{Weight: c.VelocityFilterWeight}.Replay(groups, svgRenderer{canvas})

	if r != 1 {
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}

type svgRenderer struct {
	canvas *svg.SVG
}

func (s svgRenderer) DrawCurve(c geom.Curve, style state.Style) {
	// discontinuous input yields NaN control points
	if !c.Valid() {
		return
	}
	d := fmt.Sprintf("M %.3f,%.3f C %.3f,%.3f %.3f,%.3f %.3f,%.3f",
		c.Start.X, c.Start.Y,
		c.Control1.X, c.Control1.Y,
		c.Control2.X, c.Control2.Y,
		c.End.X, c.End.Y)
	s.canvas.Path(d,
		fmt.Sprintf(`stroke-width="%.3f"`, c.EndWidth*2.25),
		attr("stroke", style.PenColor),
		`fill="none"`,
		`stroke-linecap="round"`)
}

func (s svgRenderer) DrawDot(p geom.Point, style state.Style) {
	s.canvas.Circle(p.X, p.Y, style.DotWidth(), attr("fill", style.PenColor))
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

// errWriter keeps the first write error; svgo ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
