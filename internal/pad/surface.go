package pad

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Rect is an on-screen box in client coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Element is the drawing surface a pad is bound to.
type Element interface {
	// Bounds returns the element's box in client coordinates.
	Bounds() Rect
	// PixelRatio returns device pixels per client pixel.
	PixelRatio() float64
}

// StaticElement is a fixed-size element for headless rendering and tests.
type StaticElement struct {
	Width  float64
	Height float64
	Ratio  float64
}

func (e StaticElement) Bounds() Rect {
	return Rect{Width: e.Width, Height: e.Height}
}

func (e StaticElement) PixelRatio() float64 {
	return e.Ratio
}

// surface is the raster backing store. Drawing happens in client units and
// is scaled by ratio into device pixels.
type surface struct {
	img    *image.RGBA
	ratio  float64
	width  float64
	height float64
}

// resize re-derives the pixel size from el. The pixels are discarded.
func (s *surface) resize(el Element) {
	s.ratio = 1
	s.width, s.height = 0, 0
	if el != nil {
		b := el.Bounds()
		s.ratio = math.Max(el.PixelRatio(), 1)
		s.width, s.height = math.Max(b.Width, 0), math.Max(b.Height, 0)
	}
	w := int(s.width * s.ratio)
	h := int(s.height * s.ratio)
	if s.img != nil && s.img.Rect.Dx() == w && s.img.Rect.Dy() == h {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (s *surface) fill(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *surface) pixelSize() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

func (s *surface) bound() bool {
	w, h := s.pixelSize()
	return w > 0 && h > 0
}
