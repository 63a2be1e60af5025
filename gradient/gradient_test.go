package gradient

import (
	"math"
	"testing"

	"github.com/lixenwraith/depthcolor/terminal"
)

func colorNear(a, b Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol && math.Abs(a.B-b.B) <= tol
}

func TestSampleEndpoints(t *testing.T) {
	for _, n := range Builtin() {
		t.Run(n.Name, func(t *testing.T) {
			anchors := n.Gradient.Anchors()
			first := anchors[0].Color
			last := anchors[len(anchors)-1].Color

			if got := n.Gradient.Sample(0); got != first {
				t.Errorf("Sample(0) = %+v, want %+v", got, first)
			}
			if got := n.Gradient.Sample(1); got != last {
				t.Errorf("Sample(1) = %+v, want %+v", got, last)
			}
		})
	}
}

func TestSampleClamp(t *testing.T) {
	g, _ := Lookup(NameJet)

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"Slightly below", -0.001, 0},
		{"Far below", -100, 0},
		{"Slightly above", 1.001, 1},
		{"Far above", 42, 1},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, want := g.Sample(tt.value), g.Sample(tt.want); got != want {
				t.Errorf("Sample(%v) = %+v, want %+v", tt.value, got, want)
			}
		})
	}
}

func TestSingleColorGradient(t *testing.T) {
	c := RGB(12, 34, 56)
	g := New([]Color{c}, 100)

	for _, v := range []float64{-1, 0, 0.25, 0.5, 1, 7} {
		if got := g.Sample(v); got != c {
			t.Errorf("Sample(%v) = %+v, want %+v", v, got, c)
		}
		if got := g.ColorAt(v); got != c {
			t.Errorf("ColorAt(%v) = %+v, want %+v", v, got, c)
		}
	}
	if g.Min() != g.Max() {
		t.Errorf("Expected collapsed range, got [%v, %v]", g.Min(), g.Max())
	}
}

func TestEmptyGradientIsGrayIdentity(t *testing.T) {
	g := New(nil, 10)

	if g.Len() != 0 {
		t.Errorf("Expected no cache, got %d entries", g.Len())
	}
	for _, v := range []float64{0, 0.5, 1, 200} {
		if got := g.Sample(v); got != Gray(v) {
			t.Errorf("Sample(%v) = %+v, want gray", v, got)
		}
	}
}

func TestRedBlueMidpoint(t *testing.T) {
	g := New([]Color{RGB(255, 0, 0), RGB(0, 0, 255)}, DefaultSteps)

	got := g.Sample(0.5).RGB8()
	want := terminal.RGB{R: 128, G: 0, B: 128}
	if got != want {
		t.Errorf("Sample(0.5) = %+v, want %+v", got, want)
	}
}

func TestColorAtExactAnchor(t *testing.T) {
	colors := []Color{RGB(10, 20, 30), RGB(40, 50, 60), RGB(70, 80, 90)}
	g := New(colors, DefaultSteps)

	if got := g.ColorAt(0.5); got != colors[1] {
		t.Errorf("ColorAt(0.5) = %+v, want %+v", got, colors[1])
	}
	if got := g.ColorAt(0.25); !colorNear(got, RGB(25, 35, 45), 1e-9) {
		t.Errorf("ColorAt(0.25) = %+v, want (25,35,45)", got)
	}
}

func TestCacheQuantization(t *testing.T) {
	g := New([]Color{RGB(0, 0, 0), RGB(255, 255, 255)}, DefaultSteps)

	// Cache error stays within one step of the color range
	tol := 2 * 255.0 / DefaultSteps
	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		if !colorNear(g.Sample(v), g.ColorAt(v), tol) {
			t.Errorf("Sample(%v) = %+v drifts from ColorAt %+v", v, g.Sample(v), g.ColorAt(v))
		}
	}
}

func TestNewFromAnchorsDuplicateLastWins(t *testing.T) {
	g := NewFromAnchors([]Anchor{
		{Pos: 1, Color: RGB(0, 0, 255)},
		{Pos: 0, Color: RGB(255, 0, 0)},
		{Pos: 0, Color: RGB(0, 255, 0)},
	}, 10)

	anchors := g.Anchors()
	if len(anchors) != 2 {
		t.Fatalf("Expected 2 anchors after collapse, got %d", len(anchors))
	}
	if anchors[0].Color != RGB(0, 255, 0) {
		t.Errorf("Duplicate position kept %+v, want last written green", anchors[0].Color)
	}
	if g.Sample(0) != RGB(0, 255, 0) {
		t.Errorf("Sample(0) = %+v, want green", g.Sample(0))
	}
}

func TestNewFromAnchorsOffsetRange(t *testing.T) {
	g := NewFromAnchors([]Anchor{
		{Pos: 2, Color: RGB(0, 0, 0)},
		{Pos: 4, Color: RGB(200, 200, 200)},
	}, 100)

	if g.Min() != 2 || g.Max() != 4 {
		t.Fatalf("Range = [%v, %v], want [2, 4]", g.Min(), g.Max())
	}
	if got := g.Sample(3).RGB8(); got != (terminal.RGB{R: 100, G: 100, B: 100}) {
		t.Errorf("Sample(3) = %+v, want mid gray", got)
	}
	if got := g.Sample(0); got != RGB(0, 0, 0) {
		t.Errorf("Sample below range = %+v, want black", got)
	}
}

func TestQuantizedHasSevenLevels(t *testing.T) {
	g, ok := Lookup(NameQuantized)
	if !ok {
		t.Fatal("quantized gradient missing")
	}
	if g.Len() != QuantizedSteps+1 {
		t.Fatalf("Len = %d, want %d", g.Len(), QuantizedSteps+1)
	}

	seen := make(map[terminal.RGB]bool)
	for i := 0; i <= 1000; i++ {
		seen[g.Sample(float64(i)/1000).RGB8()] = true
	}
	if len(seen) != QuantizedSteps+1 {
		t.Errorf("Distinct levels = %d, want %d", len(seen), QuantizedSteps+1)
	}
}

func TestBuiltinOrder(t *testing.T) {
	names := BuiltinNames()
	want := []string{
		NameJet, NameClassic, NameGrayscale, NameInvGrayscale, NameBiomes,
		NameCold, NameWarm, NameQuantized, NamePattern, NameHue,
	}
	if len(names) != len(want) {
		t.Fatalf("Got %d builtins, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Builtin %d = %q, want %q", i, names[i], want[i])
		}
	}

	if _, ok := Lookup("viridis"); ok {
		t.Error("Lookup of unknown name should fail")
	}
}

func TestPatternAlternates(t *testing.T) {
	g, _ := Lookup(NamePattern)
	anchors := g.Anchors()
	if len(anchors) != patternBands {
		t.Fatalf("Pattern anchors = %d, want %d", len(anchors), patternBands)
	}
	for i, a := range anchors {
		want := white
		if i%2 == 1 {
			want = black
		}
		if a.Color != want {
			t.Errorf("Anchor %d = %+v, want %+v", i, a.Color, want)
		}
	}
}

func TestRGB8Rounding(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0.49, 0},
		{0.5, 1},
		{127.5, 128},
		{254.6, 255},
		{300, 255},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := Gray(tt.in).RGB8().R; got != tt.want {
			t.Errorf("channel8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	colors, err := ParseHex([]string{"#ff0000", "00ff00", " #0000FF "})
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	want := []Color{RGB(255, 0, 0), RGB(0, 255, 0), RGB(0, 0, 255)}
	for i := range want {
		if colors[i] != want[i] {
			t.Errorf("Color %d = %+v, want %+v", i, colors[i], want[i])
		}
	}

	if _, err := ParseHex([]string{"#zzzzzz"}); err == nil {
		t.Error("Expected error for malformed hex")
	}
}

func BenchmarkSample(b *testing.B) {
	g, _ := Lookup(NameJet)
	var sink Color
	for i := 0; i < b.N; i++ {
		sink = g.Sample(float64(i&1023) / 1023)
	}
	_ = sink
}
