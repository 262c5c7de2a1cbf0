package state

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"", color.NRGBA{}},
		{"transparent", color.NRGBA{}},
		{"black", color.NRGBA{A: 255}},
		{"Red", color.NRGBA{R: 255, A: 255}},
		{"#00f", color.NRGBA{B: 255, A: 255}},
		{"#336699", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}},
		{"#33669980", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0x80}},
		{"rgb(10, 20, 300)", color.NRGBA{R: 10, G: 20, B: 255, A: 255}},
		{"rgba(0,0,0,0.5)", color.NRGBA{A: 128}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"notacolor", "#12", "rgb(1,2)", "rgb(a,b,c)"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
	assert.Equal(t, color.NRGBA{A: 255}, MustParseColor("bogus"))
}

func TestColorStringParsesBack(t *testing.T) {
	for _, c := range []color.NRGBA{
		{R: 255, A: 255},
		{R: 0x12, G: 0x34, B: 0x56, A: 255},
		{R: 0x12, G: 0x34, B: 0x56, A: 0x40},
	} {
		got, err := ParseColor(ColorString(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	assert.Equal(t, "transparent", ColorString(color.Transparent))
}
