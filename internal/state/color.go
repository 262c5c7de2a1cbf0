package state

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor understands CSS colour names, #rgb, #rrggbb, #rrggbbaa,
// rgb(r,g,b), rgba(r,g,b,a) and "transparent". An empty string is transparent.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "transparent" || s == "none":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "rgb"):
		return parseFunctional(s)
	case strings.HasPrefix(s, "#") && len(s) == 9:
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: a}, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	named, ok := colornames.Map[s]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}
	return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, nil
}

// MustParseColor is ParseColor that falls back to black on error.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

// ColorString formats c so ParseColor can read it back.
func ColorString(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return "transparent"
	}
	cf, _ := colorful.MakeColor(color.NRGBA{R: n.R, G: n.G, B: n.B, A: 0xff})
	if n.A == 0xff {
		return cf.Hex()
	}
	return fmt.Sprintf("%s%02x", cf.Hex(), n.A)
}

func parseFunctional(s string) (color.NRGBA, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, fmt.Errorf("parse color %q: missing parentheses", s)
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("parse color %q: want 3 or 4 components", s)
	}

	var rgb [3]int
	for i := 0; i < 3; i++ {
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[i]), "%d", &rgb[i]); err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		rgb[i] = min(max(rgb[i], 0), 255)
	}
	alpha := 1.0
	if len(parts) == 4 {
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[3]), "%g", &alpha); err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = min(max(alpha, 0), 1)
	}
	return color.NRGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: uint8(alpha*255 + 0.5)}, nil
}
