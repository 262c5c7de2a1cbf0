package pad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goitalic"
)

func inkBounds(p *Pad) (minX, maxX, minY, maxY int, painted bool) {
	img := p.Image()
	minX, minY = img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			painted = true
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	return
}

func TestSignAs(t *testing.T) {
	p, _ := newTestPad(t, DefaultOptions())

	require.NoError(t, p.SignAs("Jane Q. Public", goitalic.TTF))
	assert.False(t, p.IsEmpty())
	assert.Empty(t, p.ToData(), "signing records no strokes")

	minX, maxX, minY, maxY, painted := inkBounds(p)
	require.True(t, painted)
	assert.GreaterOrEqual(t, minX, 5)
	assert.LessOrEqual(t, maxX, 195, "text fits in 90% of the width")
	assert.Less(t, minY, 60)
	assert.Greater(t, maxY, 40)
	assert.InDelta(t, 100, float64(minX+maxX), 12, "text is centred")
}

func TestSignAsShortTextKeepsFullSize(t *testing.T) {
	p, _ := newTestPad(t, DefaultOptions())
	require.NoError(t, p.SignAs("J", goitalic.TTF))

	_, _, minY, maxY, painted := inkBounds(p)
	require.True(t, painted)
	assert.Greater(t, maxY-minY, 30, "capital is drawn at 60% of the height")
}

func TestSignAsErrors(t *testing.T) {
	p, _ := newTestPad(t, DefaultOptions())
	assert.Error(t, p.SignAs("x", []byte("not a font")))
	assert.True(t, p.IsEmpty())

	assert.ErrorIs(t, New(nil, DefaultOptions()).SignAs("x", goitalic.TTF), ErrNoSurface)

	p.Close()
	assert.ErrorIs(t, p.SignAs("x", goitalic.TTF), ErrClosed)
}
