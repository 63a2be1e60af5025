package colorize

import (
	"fmt"

	"github.com/lixenwraith/depthcolor/gradient"
)

// Palette is an ordered set of named gradients plus the active selection
// Gradients are immutable and may be shared; the selector belongs to one palette instance
type Palette struct {
	entries []gradient.Named
	index   int
}

// NewPalette creates a palette from the given entries, first entry active
// An empty entry list falls back to the builtin set
func NewPalette(entries ...gradient.Named) *Palette {
	if len(entries) == 0 {
		entries = gradient.Builtin()
	}
	p := &Palette{entries: make([]gradient.Named, len(entries))}
	copy(p.entries, entries)
	return p
}

// DefaultPalette builds the builtin gradients with jet active
func DefaultPalette() *Palette {
	return NewPalette(gradient.Builtin()...)
}

// Clone returns a palette sharing the gradients with an independent selector
func (p *Palette) Clone() *Palette {
	return &Palette{entries: p.entries, index: p.index}
}

// Len returns the number of entries
func (p *Palette) Len() int {
	return len(p.entries)
}

// Names lists entry names in palette order
func (p *Palette) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.Name
	}
	return names
}

// Index returns the active entry index
func (p *Palette) Index() int {
	return p.index
}

// Active returns the selected entry
func (p *Palette) Active() gradient.Named {
	return p.entries[p.index]
}

// Select activates entry i
func (p *Palette) Select(i int) error {
	if i < 0 || i >= len(p.entries) {
		return fmt.Errorf("%w: index %d of %d", ErrUnknownPalette, i, len(p.entries))
	}
	p.index = i
	return nil
}

// SelectName activates the first entry with the given name
func (p *Palette) SelectName(name string) error {
	for i, e := range p.entries {
		if e.Name == name {
			p.index = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

// Next cycles forward and returns the new active entry
func (p *Palette) Next() gradient.Named {
	p.index = (p.index + 1) % len(p.entries)
	return p.entries[p.index]
}

// Prev cycles backward and returns the new active entry
func (p *Palette) Prev() gradient.Named {
	p.index = (p.index - 1 + len(p.entries)) % len(p.entries)
	return p.entries[p.index]
}
