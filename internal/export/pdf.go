package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"DrawPad/internal/geom"
	"DrawPad/internal/ink"
	"DrawPad/internal/state"

	"github.com/jung-kurt/gofpdf"
)

// ErrEmptyCanvas is returned by PDF when the canvas has no area for a page.
var ErrEmptyCanvas = errors.New("canvas has no area")

// PDF writes groups as a single-page PDF sized to the canvas, one point per
// client pixel.
func PDF(w io.Writer, groups []state.PointGroup, c Canvas) error {
	cw, ch := c.clientSize()
	if cw <= 0 || ch <= 0 {
		return ErrEmptyCanvas
	}

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: cw, Ht: ch},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	if c.Background != "" {
		bg := state.MustParseColor(c.Background)
		if bg.A > 0 {
			setAlpha(p, bg)
			p.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
			p.Rect(0, 0, cw, ch, "F")
		}
	}
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	ink.Replayer{Weight: c.VelocityFilterWeight}.Replay(groups, pdfRenderer{p})

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type pdfRenderer struct {
	p *gofpdf.Fpdf
}

func (r pdfRenderer) DrawCurve(c geom.Curve, style state.Style) {
	if !c.Valid() {
		return
	}
	pen := state.MustParseColor(style.PenColor)
	setAlpha(r.p, pen)
	r.p.SetDrawColor(int(pen.R), int(pen.G), int(pen.B))
	r.p.SetLineWidth(c.EndWidth * 2.25)
	r.p.CurveBezierCubic(
		c.Start.X, c.Start.Y,
		c.Control1.X, c.Control1.Y,
		c.Control2.X, c.Control2.Y,
		c.End.X, c.End.Y,
		"D")
}

func (r pdfRenderer) DrawDot(pt geom.Point, style state.Style) {
	pen := state.MustParseColor(style.PenColor)
	setAlpha(r.p, pen)
	r.p.SetFillColor(int(pen.R), int(pen.G), int(pen.B))
	r.p.Circle(pt.X, pt.Y, style.DotWidth(), "F")
}

func setAlpha(p *gofpdf.Fpdf, c color.NRGBA) {
	p.SetAlpha(float64(c.A)/255, "Normal")
}
