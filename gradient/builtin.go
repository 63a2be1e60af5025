package gradient

// Builtin gradient names, in default palette order
const (
	NameJet          = "jet"
	NameClassic      = "classic"
	NameGrayscale    = "grayscale"
	NameInvGrayscale = "inv_grayscale"
	NameBiomes       = "biomes"
	NameCold         = "cold"
	NameWarm         = "warm"
	NameQuantized    = "quantized"
	NamePattern      = "pattern"
	NameHue          = "hue"
)

// QuantizedSteps is the cache resolution of the quantized grayscale
const QuantizedSteps = 6

// patternBands is the number of alternating white/black anchors in the pattern gradient
const patternBands = 50

// Named pairs a gradient with its palette name
type Named struct {
	Name     string
	Gradient *Gradient
}

var (
	white = RGB(255, 255, 255)
	black = RGB(0, 0, 0)
)

// builtinDefs lists anchor colors and cache steps per builtin, in palette order
var builtinDefs = []struct {
	name   string
	colors func() []Color
	steps  int
}{
	{NameJet, func() []Color {
		return []Color{RGB(0, 0, 255), RGB(0, 255, 255), RGB(255, 255, 0), RGB(255, 0, 0), RGB(50, 0, 0)}
	}, DefaultSteps},
	{NameClassic, func() []Color {
		return []Color{RGB(30, 77, 203), RGB(25, 60, 192), RGB(45, 117, 220), RGB(204, 108, 191), RGB(196, 57, 178), RGB(198, 33, 24)}
	}, DefaultSteps},
	{NameGrayscale, func() []Color { return []Color{white, black} }, DefaultSteps},
	{NameInvGrayscale, func() []Color { return []Color{black, white} }, DefaultSteps},
	{NameBiomes, func() []Color {
		return []Color{RGB(0, 0, 204), RGB(204, 230, 255), RGB(255, 255, 153), RGB(170, 255, 128), RGB(0, 153, 0), RGB(230, 242, 255)}
	}, DefaultSteps},
	{NameCold, func() []Color {
		return []Color{RGB(230, 247, 255), RGB(0, 92, 230), RGB(0, 179, 179), RGB(0, 51, 153), RGB(0, 5, 15)}
	}, DefaultSteps},
	{NameWarm, func() []Color {
		return []Color{RGB(255, 255, 230), RGB(255, 204, 0), RGB(255, 136, 77), RGB(255, 51, 0), RGB(128, 0, 0), RGB(10, 0, 0)}
	}, DefaultSteps},
	{NameQuantized, func() []Color { return []Color{white, black} }, QuantizedSteps},
	{NamePattern, func() []Color {
		colors := make([]Color, patternBands)
		for i := range colors {
			if i%2 == 0 {
				colors[i] = white
			} else {
				colors[i] = black
			}
		}
		return colors
	}, DefaultSteps},
	{NameHue, func() []Color {
		return []Color{RGB(255, 0, 0), RGB(255, 255, 0), RGB(0, 255, 0), RGB(0, 255, 255), RGB(0, 0, 255), RGB(255, 0, 255), RGB(255, 0, 0)}
	}, DefaultSteps},
}

// Builtin constructs the fixed gradient set in palette order
// Every call builds fresh instances; callers own and may share the result read-only
func Builtin() []Named {
	out := make([]Named, len(builtinDefs))
	for i, def := range builtinDefs {
		out[i] = Named{Name: def.name, Gradient: New(def.colors(), def.steps)}
	}
	return out
}

// BuiltinNames lists builtin names in palette order without building caches
func BuiltinNames() []string {
	names := make([]string, len(builtinDefs))
	for i, def := range builtinDefs {
		names[i] = def.name
	}
	return names
}

// Lookup builds a single builtin gradient by name
func Lookup(name string) (*Gradient, bool) {
	for _, def := range builtinDefs {
		if def.name == name {
			return New(def.colors(), def.steps), true
		}
	}
	return nil, false
}
