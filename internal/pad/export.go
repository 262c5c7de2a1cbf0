package pad

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"DrawPad/internal/export"
)

// Media types understood by ToDataURL.
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeSVG  = "image/svg+xml"
)

// DefaultJPEGQuality is used when ToDataURL gets a quality outside (0,1].
const DefaultJPEGQuality = 0.92

// ToDataURL encodes the drawing as a data URL. SVG is generated from the
// stroke record, the raster types from the surface pixels. Unknown types
// fall back to PNG. It returns "" when no surface is bound.
func (p *Pad) ToDataURL(mime string, quality float64) string {
	if !p.surface.bound() {
		return ""
	}
	var buf bytes.Buffer
	var err error
	switch mime {
	case MimeSVG:
		err = p.WriteSVG(&buf)
	case MimeJPEG:
		err = p.WriteJPEG(&buf, quality)
	default:
		mime = MimePNG
		err = p.WritePNG(&buf)
	}
	if err != nil {
		Logger().Warn("export failed", "mime", mime, "err", err)
		return ""
	}
	return EncodeDataURL(mime, buf.Bytes())
}

// ToPNG returns a PNG data URL, or "" when the pad is empty.
func (p *Pad) ToPNG() string {
	if p.IsEmpty() {
		return ""
	}
	return p.ToDataURL(MimePNG, 0)
}

// ToSVG returns an SVG data URL of the stroke record.
func (p *Pad) ToSVG() string {
	return p.ToDataURL(MimeSVG, 0)
}

// ErrUnknownFormat is returned by Export for an extension it cannot write.
var ErrUnknownFormat = errors.New("unknown export format")

// Export writes the drawing in the format named by a file extension: .png,
// .jpg, .jpeg, .svg or .pdf.
func (p *Pad) Export(w io.Writer, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return p.WritePNG(w)
	case ".jpg", ".jpeg":
		return p.WriteJPEG(w, DefaultJPEGQuality)
	case ".svg":
		return p.WriteSVG(w)
	case ".pdf":
		return p.WritePDF(w)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, ext)
}

// WritePNG encodes the surface pixels as PNG.
func (p *Pad) WritePNG(w io.Writer) error {
	if !p.surface.bound() {
		return nil
	}
	return png.Encode(w, p.surface.img)
}

// WriteJPEG encodes the surface pixels as JPEG. quality is in (0,1].
func (p *Pad) WriteJPEG(w io.Writer, quality float64) error {
	if !p.surface.bound() {
		return nil
	}
	if quality <= 0 || quality > 1 || math.IsNaN(quality) {
		quality = DefaultJPEGQuality
	}
	return jpeg.Encode(w, p.surface.img, &jpeg.Options{Quality: int(math.Round(quality * 100))})
}

// WriteSVG writes the stroke record as an SVG document.
func (p *Pad) WriteSVG(w io.Writer) error {
	return export.SVG(w, p.record.Groups(), p.canvas())
}

// WritePDF writes the stroke record as a one-page PDF. Nothing is written
// when no surface is bound.
func (p *Pad) WritePDF(w io.Writer) error {
	if !p.surface.bound() {
		return nil
	}
	return export.PDF(w, p.record.Groups(), p.canvas())
}

func (p *Pad) canvas() export.Canvas {
	w, h := p.surface.pixelSize()
	return export.Canvas{
		Width:                float64(w),
		Height:               float64(h),
		Ratio:                p.surface.ratio,
		Background:           p.opts.BackgroundColor,
		VelocityFilterWeight: p.opts.velocityFilterWeight(),
	}
}
