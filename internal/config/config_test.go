package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"DrawPad/internal/pad"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	o := c.Pad.Options()
	assert.Equal(t, pad.DefaultMinWidth, o.MinWidth)
	assert.Equal(t, pad.DefaultMaxWidth, o.MaxWidth)
	assert.Equal(t, pad.DefaultThrottle, o.Throttle)
	assert.Equal(t, "white", o.BackgroundColor)
	assert.Equal(t, ":8765", c.Feed.Listen)
	assert.False(t, c.Feed.Enabled)
	assert.False(t, c.Window.ReadOnly)
	assert.Empty(t, c.Window.Image)
	assert.False(t, c.IsDefined("Feed", "Listen"))
}

func TestLoadOverrides(t *testing.T) {
	c, err := Load(`
[Pad]
PenColor = "#336699"
MinWidth = 1.0
MaxWidth = 4.0
Throttle = "8ms"

[Window]
Title = "Sign here"
Palette = ["black", "navy"]
Image = "signature.png"
ReadOnly = true
SignAs = "Jane Q. Public"

[Feed]
Enabled = true
Listen = "127.0.0.1:9000"
Advertise = true
`)
	require.NoError(t, err)

	o := c.Pad.Options()
	assert.Equal(t, "#336699", o.PenColor)
	assert.Equal(t, 1.0, o.MinWidth)
	assert.Equal(t, 4.0, o.MaxWidth)
	assert.Equal(t, 8*time.Millisecond, o.Throttle)
	assert.Equal(t, float64(pad.DefaultMinDistance), o.MinDistance, "unset keys keep defaults")

	c, err = Load("[Pad]\nMinDistance = -1.0\nThrottle = \"-1ms\"\n")
	require.NoError(t, err)
	p := pad.New(nil, c.Pad.Options())
	assert.Equal(t, -1.0, p.Options().MinDistance, "negative switches survive into the pad")
	assert.Equal(t, -time.Millisecond, p.Options().Throttle)
	assert.Equal(t, "Sign here", c.Window.Title)
	assert.Equal(t, []string{"black", "navy"}, c.Window.Palette)
	assert.Equal(t, "signature.png", c.Window.Image)
	assert.True(t, c.Window.ReadOnly)
	assert.Equal(t, "Jane Q. Public", c.Window.SignAs)
	assert.True(t, c.Feed.Enabled)
	assert.True(t, c.Feed.Advertise)
	assert.True(t, c.IsDefined("Feed", "Listen"))
}

func TestLoadRejects(t *testing.T) {
	for name, conf := range map[string]string{
		"unknown key":  "[Pad]\nColour = \"red\"\n",
		"bad duration": "[Pad]\nThrottle = \"soon\"\n",
		"widths":       "[Pad]\nMinWidth = 3.0\nMaxWidth = 1.0\n",
		"weight":       "[Pad]\nVelocityFilterWeight = 2.0\n",
		"window":       "[Window]\nWidth = 0.0\n",
		"syntax":       "[Pad\n",
	} {
		_, err := Load(conf)
		assert.Error(t, err, name)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	c := Default()
	c.Feed.Enabled = true
	c.Pad.Throttle.Duration = 40 * time.Millisecond

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	assert.Contains(t, buf.String(), `Throttle = "40ms"`)

	name := filepath.Join(t.TempDir(), "drawpad.toml")
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o644))

	got, err := LoadFile(name)
	require.NoError(t, err)
	assert.Equal(t, c.Pad, got.Pad)
	assert.Equal(t, c.Window, got.Window)
	assert.Equal(t, c.Feed, got.Feed)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
