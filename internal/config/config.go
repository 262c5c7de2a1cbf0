// Package config loads the drawpad TOML configuration.
package config

import (
	"fmt"
	"io"
	"time"

	"DrawPad/internal/pad"

	"github.com/BurntSushi/toml"
)

const defaultFeedListen = ":8765"

// Config is the whole configuration file.
type Config struct {
	Pad    PadConf
	Window WindowConf
	Feed   FeedConf

	md toml.MetaData
}

// PadConf mirrors pad.Options: zero keeps the default and a negative
// MinDistance, VelocityFilterWeight or Throttle turns that behaviour off.
type PadConf struct {
	DotSize              float64
	MinWidth             float64
	MaxWidth             float64
	PenColor             string
	MinDistance          float64
	VelocityFilterWeight float64
	BackgroundColor      string
	Throttle             Duration
}

// WindowConf configures the desktop host.
type WindowConf struct {
	Title  string
	Width  float32
	Height float32
	// Palette lists the pen colour swatches.
	Palette []string
	// Image is drawn when the board opens: a file name or a data URL.
	Image string
	// ReadOnly shows the drawing without taking input.
	ReadOnly bool
	// SignAs, if set, offers to write this name as the signature.
	SignAs string
}

// FeedConf configures the read-only change feed.
type FeedConf struct {
	Enabled bool
	Listen  string
	// Advertise announces the feed over mDNS.
	Advertise bool
	// Instance is the mDNS instance name. Empty uses the host name.
	Instance string
}

// Duration is a time.Duration written as a string such as "16ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a configuration holding the built-in defaults.
func Default() *Config {
	o := pad.DefaultOptions()
	return &Config{
		Pad: PadConf{
			DotSize:              o.DotSize,
			MinWidth:             o.MinWidth,
			MaxWidth:             o.MaxWidth,
			PenColor:             o.PenColor,
			MinDistance:          o.MinDistance,
			VelocityFilterWeight: o.VelocityFilterWeight,
			BackgroundColor:      "white",
			Throttle:             Duration{Duration: o.Throttle},
		},
		Window: WindowConf{
			Title:   "DrawPad",
			Width:   1024,
			Height:  768,
			Palette: []string{"black", "#ff0000", "#00ff00", "#0000ff", "#ffff00"},
		},
		Feed: FeedConf{
			Listen: defaultFeedListen,
		},
	}
}

// LoadFile reads the TOML file at name over the defaults. Keys that do not
// map to a field are an error.
func LoadFile(name string) (*Config, error) {
	return load(name, true)
}

// Load is like LoadFile but parses conf itself.
func Load(conf string) (*Config, error) {
	return load(conf, false)
}

func load(conf string, isFileName bool) (*Config, error) {
	c := Default()
	var md toml.MetaData
	var err error
	if isFileName {
		md, err = toml.DecodeFile(conf, c)
	} else {
		md, err = toml.Decode(conf, c)
	}
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("undecoded fields in configuration: %v", undecoded)
	}
	c.md = md
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Pad.MinWidth < 0 || c.Pad.MaxWidth < 0 {
		return fmt.Errorf("pad widths must not be negative")
	}
	if c.Pad.MaxWidth > 0 && c.Pad.MaxWidth < c.Pad.MinWidth {
		return fmt.Errorf("pad MaxWidth %v is below MinWidth %v", c.Pad.MaxWidth, c.Pad.MinWidth)
	}
	if c.Pad.VelocityFilterWeight > 1 {
		return fmt.Errorf("pad VelocityFilterWeight %v is above 1", c.Pad.VelocityFilterWeight)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %vx%v must be positive", c.Window.Width, c.Window.Height)
	}
	return nil
}

// IsDefined reports whether key was set in the loaded file, e.g.
// IsDefined("Feed", "Listen").
func (c *Config) IsDefined(key ...string) bool {
	return c.md.IsDefined(key...)
}

// Options converts the pad section to engine options.
func (p PadConf) Options() pad.Options {
	return pad.Options{
		DotSize:              p.DotSize,
		MinWidth:             p.MinWidth,
		MaxWidth:             p.MaxWidth,
		PenColor:             p.PenColor,
		MinDistance:          p.MinDistance,
		VelocityFilterWeight: p.VelocityFilterWeight,
		BackgroundColor:      p.BackgroundColor,
		Throttle:             p.Throttle.Duration,
	}
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
