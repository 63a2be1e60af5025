package gradient

import (
	"sort"
)

// DefaultSteps is the cache resolution used when none is given
const DefaultSteps = 4000

// Anchor pins a color to a position on the gradient axis
type Anchor struct {
	Pos   float64
	Color Color
}

// Gradient is an immutable color lookup over [Min, Max]
// Interpolation runs once at construction; Sample only indexes the cache
type Gradient struct {
	anchors  []Anchor // sorted, unique positions
	min, max float64
	cache    []Color
}

// New builds a gradient from evenly spaced colors: color i sits at i/(N-1)
// A single color yields a constant gradient; no colors yields the grayscale identity
func New(colors []Color, steps int) *Gradient {
	anchors := make([]Anchor, len(colors))
	for i, c := range colors {
		pos := 0.0
		if len(colors) > 1 {
			pos = float64(i) / float64(len(colors)-1)
		}
		anchors[i] = Anchor{Pos: pos, Color: c}
	}
	return NewFromAnchors(anchors, steps)
}

// NewFromAnchors builds a gradient from explicit anchor positions
// Anchors are sorted by position; for equal positions the last one given wins
func NewFromAnchors(anchors []Anchor, steps int) *Gradient {
	if steps <= 0 {
		steps = DefaultSteps
	}

	g := &Gradient{anchors: normalizeAnchors(anchors)}
	if len(g.anchors) == 0 {
		return g
	}

	g.min = g.anchors[0].Pos
	g.max = g.anchors[len(g.anchors)-1].Pos

	g.cache = make([]Color, steps+1)
	span := g.max - g.min
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		g.cache[i] = g.ColorAt(g.min + t*span)
	}
	return g
}

// normalizeAnchors sorts a copy of the input and collapses duplicate positions
func normalizeAnchors(in []Anchor) []Anchor {
	if len(in) == 0 {
		return nil
	}
	out := make([]Anchor, len(in))
	copy(out, in)
	// Stable keeps input order among equals so the last duplicate can win
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })

	n := 0
	for _, a := range out {
		if n > 0 && out[n-1].Pos == a.Pos {
			out[n-1] = a
			continue
		}
		out[n] = a
		n++
	}
	return out[:n]
}

// ColorAt evaluates the gradient exactly, without the cache
func (g *Gradient) ColorAt(t float64) Color {
	n := len(g.anchors)
	if n == 0 {
		return Gray(t)
	}

	// First anchor with Pos >= t
	i := sort.Search(n, func(i int) bool { return g.anchors[i].Pos >= t })
	if i < n && g.anchors[i].Pos == t {
		return g.anchors[i].Color
	}
	if i == 0 {
		return g.anchors[0].Color
	}
	if i == n {
		return g.anchors[n-1].Color
	}

	lower, upper := g.anchors[i-1], g.anchors[i]
	f := (t - lower.Pos) / (upper.Pos - lower.Pos)
	return Lerp(lower.Color, upper.Color, f)
}

// Sample returns the cached color for value, O(1)
// Values outside [Min, Max] clamp to the end colors
func (g *Gradient) Sample(value float64) Color {
	if len(g.cache) == 0 {
		return g.ColorAt(value)
	}
	if g.max == g.min {
		return g.cache[0]
	}
	t := (value - g.min) / (g.max - g.min)
	if t < 0 || t != t {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return g.cache[int(t*float64(len(g.cache)-1))]
}

// Min returns the lowest anchor position
func (g *Gradient) Min() float64 { return g.min }

// Max returns the highest anchor position
func (g *Gradient) Max() float64 { return g.max }

// Len returns the number of cached colors (steps+1), 0 for an empty gradient
func (g *Gradient) Len() int { return len(g.cache) }

// Anchors returns a copy of the normalized anchor set
func (g *Gradient) Anchors() []Anchor {
	out := make([]Anchor, len(g.anchors))
	copy(out, g.anchors)
	return out
}

// Cache returns a copy of the lookup table
func (g *Gradient) Cache() []Color {
	out := make([]Color, len(g.cache))
	copy(out, g.cache)
	return out
}
