package gradient

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/depthcolor/terminal"
)

// Color holds channels on the 0-255 scale as floats so interpolation keeps precision
type Color struct {
	R, G, B float64
}

// RGB builds a Color from 8-bit channels
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r), G: float64(g), B: float64(b)}
}

// Gray returns a color with v replicated into all three channels
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b, no clamping of t
func Lerp(a, b Color, t float64) Color {
	inv := 1 - t
	return Color{
		R: a.R*inv + b.R*t,
		G: a.G*inv + b.G*t,
		B: a.B*inv + b.B*t,
	}
}

// RGB8 rounds every channel to the nearest integer and clamps it to [0, 255]
func (c Color) RGB8() terminal.RGB {
	return terminal.RGB{R: channel8(c.R), G: channel8(c.G), B: channel8(c.B)}
}

// channel8 converts float to uint8 with rounding
func channel8(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 || math.IsNaN(v) {
		return 0
	}
	return uint8(v + 0.5)
}

// ParseHex converts "#rrggbb" strings into gradient colors
func ParseHex(hexes []string) ([]Color, error) {
	colors := make([]Color, 0, len(hexes))
	for i, h := range hexes {
		h = strings.TrimSpace(h)
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("color %d %q: %w", i, hexes[i], err)
		}
		r, g, b := c.RGB255()
		colors = append(colors, RGB(r, g, b))
	}
	return colors, nil
}

// MustParseHex is ParseHex for literal tables; panics on malformed input
func MustParseHex(hexes ...string) []Color {
	colors, err := ParseHex(hexes)
	if err != nil {
		panic("gradient: " + err.Error())
	}
	return colors
}
