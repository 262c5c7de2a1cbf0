package pad

import (
	"errors"
	"fmt"
	"image"

	"DrawPad/internal/state"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrNoSurface is returned by operations that need pixels when the pad is
// not bound to a sized element.
var ErrNoSurface = errors.New("pad has no surface")

// SignAs writes text across the surface in the pen colour using the font in
// ttf. The text starts at 60% of the height and shrinks until it fits in 90%
// of the width; its baseline sits at 60% of the height. Nothing is added to
// the stroke record.
func (p *Pad) SignAs(text string, ttf []byte) error {
	if p.closed {
		return ErrClosed
	}
	if !p.surface.bound() {
		return ErrNoSurface
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	ink, err := state.ParseColor(p.opts.PenColor)
	if err != nil {
		return err
	}

	w, h := p.surface.pixelSize()
	maxWidth := fixed.I(w * 9 / 10)
	size := 0.6 * float64(h)
	var face font.Face
	for {
		face, err = opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return fmt.Errorf("font face: %w", err)
		}
		if size <= 1 || font.MeasureString(face, text) <= maxWidth {
			break
		}
		face.Close()
		size--
	}
	defer face.Close()

	d := font.Drawer{Dst: p.surface.img, Src: image.NewUniform(ink), Face: face}
	d.Dot = fixed.Point26_6{
		X: (fixed.I(w) - d.MeasureString(text)) / 2,
		Y: fixed.I(h * 6 / 10),
	}
	d.DrawString(text)
	if text != "" {
		p.empty = false
	}

	Logger().Debug("signed as text", "size", size, "len", len(text))
	return nil
}
