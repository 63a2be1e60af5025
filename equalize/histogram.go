// Package equalize implements per-frame histogram equalization of raw depth samples.
//
// A Histogram is rebuilt from scratch for every frame: reset, accumulate, then
// prefix-summed in place into a cumulative distribution. Normalized maps a raw
// value to the fraction of the frame's non-zero samples at or below it.
//
// Index 0 means "no depth data" and never takes part in the running sum.
package equalize

// MaxDepth is the number of representable raw depth values
const MaxDepth = 65536

// maxIndex is the last histogram slot, holding the frame total after Cumulate
const maxIndex = MaxDepth - 1

// Histogram is per-frame working storage, not safe for concurrent use
// After Cumulate it is read-only until the next Reset
type Histogram struct {
	counts [MaxDepth]uint32
}

// Reset zeroes every counter
func (h *Histogram) Reset() {
	clear(h.counts[:])
}

// Add counts one sample; values past the table are clamped to the last slot
// Returns true when clamping occurred
func (h *Histogram) Add(v uint32) bool {
	if v > maxIndex {
		h.counts[maxIndex]++
		return true
	}
	h.counts[v]++
	return false
}

// Merge adds the raw counts of other into h
// Both histograms must still be in counting state, before Cumulate
func (h *Histogram) Merge(other *Histogram) {
	for i := range h.counts {
		h.counts[i] += other.counts[i]
	}
}

// Cumulate converts counts into a cumulative distribution over [1, MaxDepth-1]
// Slot 0 keeps its own count and is excluded from the running sum
func (h *Histogram) Cumulate() {
	for i := 2; i < MaxDepth; i++ {
		h.counts[i] += h.counts[i-1]
	}
}

// Build resets the histogram, counts every sample and cumulates
// Returns the number of samples clamped into the last slot
func (h *Histogram) Build(samples []uint32) int {
	h.Reset()
	clamped := 0
	for _, s := range samples {
		if h.Add(s) {
			clamped++
		}
	}
	h.Cumulate()
	return clamped
}

// Total returns the number of non-zero samples once cumulated
func (h *Histogram) Total() uint32 {
	return h.counts[maxIndex]
}

// At returns the raw slot value; after Cumulate that is the count of samples in [1, v]
func (h *Histogram) At(v uint32) uint32 {
	if v > maxIndex {
		v = maxIndex
	}
	return h.counts[v]
}

// Normalized maps a raw value to [0, 1] relative to the frame distribution
// Returns 0 for the zero sentinel and for a frame with no non-zero samples
func (h *Histogram) Normalized(v uint32) float64 {
	total := h.counts[maxIndex]
	if v == 0 || total == 0 {
		return 0
	}
	return float64(h.At(v)) / float64(total)
}
