package terminal

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns human-readable mode name
func (m ColorMode) String() string {
	switch m {
	case ColorMode256:
		return "256"
	case ColorModeTrueColor:
		return "truecolor"
	default:
		return "unknown"
	}
}

// ParseColorMode resolves a flag/config value; "auto" and "" detect from the environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), nil
	case "true", "truecolor", "24", "24bit":
		return ColorModeTrueColor, nil
	case "256", "8":
		return ColorMode256, nil
	default:
		return 0, fmt.Errorf("unknown color mode %q", s)
	}
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			if d := abs(i - int(cubeValues[j])); d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 converts RGB to nearest 256-color palette index
// Near-gray colors are matched against the 24-step grayscale ramp (232-255) as well as the cube
func RGBTo256(c RGB) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	cr, cg, cb := cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B]
	cubeIdx := 16 + 36*cr + 6*cg + cb

	gray := (r + g + b) / 3
	if max(abs(r-gray), abs(g-gray), abs(b-gray)) >= 10 {
		return cubeIdx
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}

	grayIdx := min((gray-8)/10, 23)
	if grayIdx < 0 {
		grayIdx = 0
	}
	level := 8 + grayIdx*10
	grayDist := abs(r-level) + abs(g-level) + abs(b-level)
	cubeDist := abs(r-int(cubeValues[cr])) + abs(g-int(cubeValues[cg])) + abs(b-int(cubeValues[cb]))
	if grayDist < cubeDist {
		return uint8(232 + grayIdx)
	}
	return cubeIdx
}

// truecolorEnv are set only by terminal emulators with 24-bit support
var truecolorEnv = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_PANE",
}

// DetectColorMode reads COLORTERM, emulator markers and TERM; 256 colors when nothing matches
func DetectColorMode() ColorMode {
	switch os.Getenv("COLORTERM") {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}
	for _, key := range truecolorEnv {
		if os.Getenv(key) != "" {
			return ColorModeTrueColor
		}
	}
	term := strings.ToLower(os.Getenv("TERM"))
	for _, marker := range []string{"truecolor", "24bit", "direct"} {
		if strings.Contains(term, marker) {
			return ColorModeTrueColor
		}
	}
	return ColorMode256
}
