package pad

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"sync"

	// registered for image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

var (
	// ErrDecode wraps failures to decode an imported image.
	ErrDecode = errors.New("decode image")
	// ErrUnsupportedType is returned for media types no decoder handles.
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrClosed is returned by imports that complete after Close.
	ErrClosed = errors.New("pad closed")
)

// Decoder turns an encoded image into pixels.
type Decoder interface {
	Decode(ctx context.Context, mime string, data []byte) (image.Image, error)
}

// ImageDecoder decodes PNG, JPEG, GIF, BMP, WebP and SVG.
type ImageDecoder struct{}

func (ImageDecoder) Decode(ctx context.Context, mime string, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case mime == "image/svg+xml":
		return decodeSVG(data)
	case strings.HasPrefix(mime, "image/"), mime == "application/octet-stream":
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, mime)
}

func decodeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	w, h := int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: svg has no size", ErrDecode)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// ImportOptions controls how an imported image is placed.
type ImportOptions struct {
	// Clear empties the pad before drawing.
	Clear bool
	// ShrinkToFit scales images larger than the pad down to fit.
	ShrinkToFit bool
	// StretchToFit scales images smaller than the pad up to fit.
	StretchToFit bool
}

// DefaultImportOptions clears and fits in both directions.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{Clear: true, ShrinkToFit: true, StretchToFit: true}
}

// Import is a pending background import. It resolves exactly once.
type Import struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newImport() *Import {
	return &Import{done: make(chan struct{})}
}

func (im *Import) resolve(err error) {
	im.once.Do(func() {
		im.err = err
		close(im.done)
	})
}

// Done is closed when the import has finished.
func (im *Import) Done() <-chan struct{} {
	return im.done
}

// Err returns the import result. It is nil until Done is closed.
func (im *Import) Err() error {
	select {
	case <-im.done:
		return im.err
	default:
		return nil
	}
}

// Wait blocks until the import finishes or ctx is done.
func (im *Import) Wait(ctx context.Context) error {
	select {
	case <-im.done:
		return im.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FromDataURL decodes the image in dataURL in the background and draws it
// onto the surface, centred and scaled per opts. The stroke record is not
// touched, so Undo cannot remove an imported image.
//
// Without a dispatcher the draw runs on the decoding goroutine and races
// with strokes drawn meanwhile.
func (p *Pad) FromDataURL(ctx context.Context, dataURL string, opts ImportOptions) *Import {
	im := newImport()
	mime, data, err := DecodeDataURL(dataURL)
	if err != nil {
		im.resolve(err)
		return im
	}

	decoder := p.decoder
	go func() {
		img, err := decoder.Decode(ctx, mime, data)
		p.complete(func() {
			switch {
			case err != nil:
				Logger().Warn("background import failed", "mime", mime, "err", err)
				im.resolve(fmt.Errorf("import %s: %w", mime, err))
			case p.closed:
				im.resolve(ErrClosed)
			default:
				p.drawBackground(img, opts)
				im.resolve(nil)
			}
		})
	}()
	return im
}

// complete runs fn on the pad's goroutine when a dispatcher is set.
func (p *Pad) complete(fn func()) {
	if p.dispatch != nil {
		p.dispatch(fn)
		return
	}
	fn()
}

func (p *Pad) drawBackground(img image.Image, opts ImportOptions) {
	if opts.Clear {
		p.Clear()
	}
	b := img.Bounds()
	if !p.surface.bound() || b.Empty() {
		return
	}

	iw, ih := float64(b.Dx()), float64(b.Dy())
	cw, ch := p.surface.width, p.surface.height
	factor := math.Min(cw/iw, ch/ih)
	if !opts.ShrinkToFit && factor < 1 {
		factor = 1
	}
	if !opts.StretchToFit && factor > 1 {
		factor = 1
	}

	w, h := iw*factor, ih*factor
	var x, y float64
	if cw > w {
		x = (cw - w) / 2
	}
	if ch > h {
		y = (ch - h) / 2
	}

	r := p.surface.ratio
	dst := image.Rect(
		int(math.Round(x*r)), int(math.Round(y*r)),
		int(math.Round((x+w)*r)), int(math.Round((y+h)*r)),
	)
	xdraw.CatmullRom.Scale(p.surface.img, dst, img, b, xdraw.Over, nil)
	p.empty = false

	Logger().Info("background imported", "width", b.Dx(), "height", b.Dy(), "factor", factor)
}
