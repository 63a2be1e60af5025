// Package config loads depthcolor settings from TOML.
//
// Example:
//
//	palette = "jet"
//	workers = 4
//	byte_order = "little"
//	color_mode = "auto"
//	columns = 0
//
//	# plain grayscale when colorize is false
//	colorize = true
//	normalize = true
//	min = 0.0
//	max = 65535.0
//	median_window = 5
package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/depthcolor/colorize"
	"github.com/lixenwraith/depthcolor/gradient"
	"github.com/lixenwraith/depthcolor/terminal"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds colorizer and output settings
type Config struct {
	Palette   string `toml:"palette"`    // active gradient name
	Workers   int    `toml:"workers"`    // mapping pass goroutines
	ByteOrder string `toml:"byte_order"` // little or big, raw dumps only
	ColorMode string `toml:"color_mode"` // auto, truecolor or 256
	Columns   int    `toml:"columns"`    // ANSI output width, 0 = terminal width

	Colorize     bool    `toml:"colorize"`      // gradient output; false draws scaled gray
	Normalize    bool    `toml:"normalize"`     // estimate the gray range instead of min/max
	Min          float64 `toml:"min"`           // raw value drawn black
	Max          float64 `toml:"max"`           // raw value drawn white
	MedianWindow int     `toml:"median_window"` // frames in the range estimate
}

// Default returns the built-in settings
func Default() Config {
	rng := colorize.DefaultRangeOptions()
	return Config{
		Palette:   gradient.NameJet,
		Workers:   runtime.GOMAXPROCS(0),
		ByteOrder: "little",
		ColorMode: "auto",

		Colorize:     true,
		Normalize:    rng.Normalize,
		Min:          rng.Min,
		Max:          rng.Max,
		MedianWindow: rng.MedianWindow,
	}
}

// Load reads path over the defaults; keys missing from the file keep their default
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges; the palette name is checked by BuildPalette
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalid, c.Workers)
	}
	if c.Columns < 0 {
		return fmt.Errorf("%w: columns must not be negative, got %d", ErrInvalid, c.Columns)
	}
	if _, err := c.Order(); err != nil {
		return err
	}
	if _, err := terminal.ParseColorMode(c.ColorMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.RangeOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// RangeOptions returns the grayscale settings used while colorizing is off
func (c Config) RangeOptions() colorize.RangeOptions {
	return colorize.RangeOptions{
		Normalize:    c.Normalize,
		Min:          c.Min,
		Max:          c.Max,
		MedianWindow: c.MedianWindow,
	}
}

// Order resolves the configured byte order
func (c Config) Order() (binary.ByteOrder, error) {
	switch c.ByteOrder {
	case "", "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("%w: byte_order %q, want little or big", ErrInvalid, c.ByteOrder)
	}
}

// BuildPalette composes builtins plus extra host gradients and selects the configured entry
func (c Config) BuildPalette(extra ...gradient.Named) (*colorize.Palette, error) {
	entries := append(gradient.Builtin(), extra...)
	p := colorize.NewPalette(entries...)
	if err := p.SelectName(c.Palette); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return p, nil
}
