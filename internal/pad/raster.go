package pad

import (
	"image"
	"image/color"
	"math"

	"DrawPad/internal/geom"
	"DrawPad/internal/state"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498307936

// rasterizer stamps discs onto a surface. All discs of one segment go into
// a single path which is filled once, so overlapping stamps do not darken.
type rasterizer struct {
	z    vector.Rasterizer
	path []disc
}

type disc struct {
	x, y, r float64
}

// drawCurve stamps the segment and reports whether anything was painted.
func (r *rasterizer) drawCurve(s *surface, c geom.Curve, style state.Style) bool {
	if !c.Valid() {
		Logger().Warn("skipping non-finite curve segment")
		return false
	}

	steps := int(math.Ceil(c.Length())) * 2
	r.path = r.path[:0]
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		x, y := c.At(t)
		w := math.Min(c.WidthAt(t), style.MaxWidth)
		r.path = append(r.path, disc{x: x, y: y, r: w})
	}
	return r.fill(s, style.PenColor)
}

// drawDot stamps a single disc for a tap.
func (r *rasterizer) drawDot(s *surface, p geom.Point, style state.Style) bool {
	r.path = append(r.path[:0], disc{x: p.X, y: p.Y, r: style.DotWidth()})
	return r.fill(s, style.PenColor)
}

func (r *rasterizer) fill(s *surface, penColor string) bool {
	if len(r.path) == 0 || !s.bound() {
		return false
	}

	// rasterize only the box covering the discs
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range r.path {
		d := &r.path[i]
		d.x, d.y, d.r = d.x*s.ratio, d.y*s.ratio, math.Max(d.r, 0)*s.ratio
		minX, minY = math.Min(minX, d.x-d.r), math.Min(minY, d.y-d.r)
		maxX, maxY = math.Max(maxX, d.x+d.r), math.Max(maxY, d.y+d.r)
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	box = box.Intersect(s.img.Rect)
	if box.Empty() {
		return true
	}

	r.z.Reset(box.Dx(), box.Dy())
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	for _, d := range r.path {
		addCircle(&r.z, d.x-ox, d.y-oy, d.r)
	}
	r.z.Draw(s.img, box, image.NewUniform(penRGBA(penColor)), image.Point{})
	return true
}

// addCircle appends a closed circle made of four cubic arcs.
func addCircle(z *vector.Rasterizer, cx, cy, radius float64) {
	if radius <= 0 {
		return
	}
	k := radius * kappa
	f := func(v float64) float32 { return float32(v) }

	z.MoveTo(f(cx+radius), f(cy))
	z.CubeTo(f(cx+radius), f(cy+k), f(cx+k), f(cy+radius), f(cx), f(cy+radius))
	z.CubeTo(f(cx-k), f(cy+radius), f(cx-radius), f(cy+k), f(cx-radius), f(cy))
	z.CubeTo(f(cx-radius), f(cy-k), f(cx-k), f(cy-radius), f(cx), f(cy-radius))
	z.CubeTo(f(cx+k), f(cy-radius), f(cx+radius), f(cy-k), f(cx+radius), f(cy))
	z.ClosePath()
}

func penRGBA(s string) color.Color {
	c, err := state.ParseColor(s)
	if err != nil {
		Logger().Warn("unknown pen color, using black", "color", s, "err", err)
		return color.Black
	}
	return c
}
