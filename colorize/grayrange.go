package colorize

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/depthcolor/equalize"
)

// DefaultMedianWindow is the number of recent frames the estimated range is filtered over
const DefaultMedianWindow = 5

// RangeOptions shape the plain grayscale rendering used while colorizing is off
type RangeOptions struct {
	Normalize    bool    // estimate the range from recent frames instead of Min/Max
	Min          float64 // raw value drawn black when Normalize is off
	Max          float64 // raw value drawn white when Normalize is off
	MedianWindow int     // frames in the median filter over per-frame extremes
}

// DefaultRangeOptions estimates the range over a DefaultMedianWindow frame median
func DefaultRangeOptions() RangeOptions {
	return RangeOptions{
		Normalize:    true,
		Min:          0,
		Max:          equalize.MaxDepth - 1,
		MedianWindow: DefaultMedianWindow,
	}
}

// Validate checks the window and, for a fixed range, that Max lies above Min
func (o RangeOptions) Validate() error {
	if o.MedianWindow < 1 {
		return fmt.Errorf("%w: median window %d, need at least 1", ErrInvalidRange, o.MedianWindow)
	}
	if !o.Normalize && o.Max <= o.Min {
		return fmt.Errorf("%w: max %g not above min %g", ErrInvalidRange, o.Max, o.Min)
	}
	return nil
}

// medianRange filters per-frame minima and maxima through sliding medians
type medianRange struct {
	lows    []float64
	highs   []float64
	next    int
	filled  int
	scratch []float64
}

func newMedianRange(window int) medianRange {
	return medianRange{
		lows:    make([]float64, window),
		highs:   make([]float64, window),
		scratch: make([]float64, 0, window),
	}
}

// push records one frame's extremes and returns the filtered range
func (m *medianRange) push(lo, hi float64) (float64, float64) {
	m.lows[m.next] = lo
	m.highs[m.next] = hi
	m.next = (m.next + 1) % len(m.lows)
	m.filled = min(m.filled+1, len(m.lows))
	return m.current()
}

// current returns the filtered range, 0,0 before the first push
func (m *medianRange) current() (float64, float64) {
	if m.filled == 0 {
		return 0, 0
	}
	return m.median(m.lows), m.median(m.highs)
}

func (m *medianRange) median(ring []float64) float64 {
	m.scratch = append(m.scratch[:0], ring[:m.filled]...)
	slices.Sort(m.scratch)
	mid := m.filled / 2
	if m.filled%2 == 1 {
		return m.scratch[mid]
	}
	return (m.scratch[mid-1] + m.scratch[mid]) / 2
}

func (m *medianRange) reset() {
	m.next, m.filled = 0, 0
}
