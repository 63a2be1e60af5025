// Package colorize turns raw single-channel depth frames into RGB8 imagery.
//
// Each frame is processed in two passes: a cumulative histogram of the raw
// samples is built, then every pixel is mapped through the histogram to an
// equalized intensity and through the active gradient to a color. Raw value 0
// is the "no data" sentinel and always renders black.
//
// With colorizing switched off the histogram pass is skipped and samples are
// scaled linearly to gray between a fixed or estimated raw range.
//
// A Colorizer holds per-frame working storage and is not safe for concurrent
// use; run one instance per goroutine. Gradients are immutable and can be
// shared between instances through Palette.Clone.
package colorize

import (
	"encoding/binary"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/depthcolor/equalize"
	"github.com/lixenwraith/depthcolor/gradient"
)

// minParallelPixels is the frame size below which the mapping pass stays on one goroutine
const minParallelPixels = 1 << 14

// Stats describes the last processed frame
type Stats struct {
	Pixels    int        // whole samples decoded
	Valid     int        // samples with non-zero depth
	Clamped   int        // samples above equalize.MaxDepth-1, clamped into the last bin
	Width     PixelWidth // sample width of the frame
	Colorized bool       // false when the grayscale range pass ran
	Lo, Hi    float64    // raw range of the grayscale pass
}

// Colorizer owns the histogram, the RGB output buffer and the palette
type Colorizer struct {
	palette *Palette
	order   binary.ByteOrder
	workers int
	logger  *log.Logger

	colorizing bool
	rng        RangeOptions
	est        medianRange

	hist    equalize.Histogram
	samples []uint32
	rgb     []byte
	packed  []byte
	pixels  int

	stats Stats
}

// Option configures a Colorizer
type Option func(*Colorizer)

// WithPalette sets the gradient palette; the default is DefaultPalette
func WithPalette(p *Palette) Option {
	return func(c *Colorizer) {
		if p != nil {
			c.palette = p
		}
	}
}

// WithByteOrder sets the byte order of 16/32-bit samples; the default is little endian
func WithByteOrder(order binary.ByteOrder) Option {
	return func(c *Colorizer) {
		if order != nil {
			c.order = order
		}
	}
}

// WithWorkers splits the mapping pass across n goroutines for large frames
func WithWorkers(n int) Option {
	return func(c *Colorizer) {
		c.workers = max(n, 1)
	}
}

// WithLogger redirects diagnostics; the default is the standard logger
func WithLogger(l *log.Logger) Option {
	return func(c *Colorizer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithColorizing starts the Colorizer with colorizing on or off; the default is on
func WithColorizing(on bool) Option {
	return func(c *Colorizer) {
		c.colorizing = on
	}
}

// WithRange sets the grayscale range options; invalid options keep the defaults
func WithRange(o RangeOptions) Option {
	return func(c *Colorizer) {
		if o.Validate() == nil {
			c.rng = o
		}
	}
}

// New creates a Colorizer
func New(opts ...Option) *Colorizer {
	c := &Colorizer{
		order:      binary.LittleEndian,
		workers:    1,
		logger:     log.Default(),
		colorizing: true,
		rng:        DefaultRangeOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.palette == nil {
		c.palette = DefaultPalette()
	}
	c.est = newMedianRange(c.rng.MedianWindow)
	return c
}

// Palette returns the palette so hosts can change the active gradient between frames
func (c *Colorizer) Palette() *Palette {
	return c.palette
}

// Colorizing reports whether frames go through the gradient or the grayscale range pass
func (c *Colorizer) Colorizing() bool {
	return c.colorizing
}

// SetColorizing switches between gradient output and plain grayscale from the next frame
func (c *Colorizer) SetColorizing(on bool) {
	if on != c.colorizing {
		c.logger.Printf("colorize: colorizing %t", on)
	}
	c.colorizing = on
}

// Range returns the grayscale range options
func (c *Colorizer) Range() RangeOptions {
	return c.rng
}

// SetRange replaces the grayscale range options and restarts the median estimate
func (c *Colorizer) SetRange(o RangeOptions) error {
	if err := o.Validate(); err != nil {
		return err
	}
	c.rng = o
	c.est = newMedianRange(o.MedianWindow)
	return nil
}

// LastStats returns statistics of the most recent successful frame
func (c *Colorizer) LastStats() Stats {
	return c.stats
}

// Colorize converts raw unsigned samples to interleaved RGB8
// The returned slice is owned by the Colorizer and valid until the next call
func (c *Colorizer) Colorize(raw []byte, bytesPerPixel int) ([]byte, error) {
	width, err := ParsePixelWidth(bytesPerPixel)
	if err != nil {
		return nil, err
	}
	return c.colorize(raw, width, c.order, false)
}

// ProcessFrame replaces the raw samples in *buf with 3 bytes of RGB per pixel
// The caller keeps any encoding/stride metadata in sync itself
// On error *buf is left untouched
func (c *Colorizer) ProcessFrame(buf *[]byte, bytesPerPixel int) error {
	rgb, err := c.Colorize(*buf, bytesPerPixel)
	if err != nil {
		return err
	}
	*buf = append((*buf)[:0], rgb...)
	return nil
}

func (c *Colorizer) colorize(raw []byte, width PixelWidth, order binary.ByteOrder, signed bool) ([]byte, error) {
	n := len(raw) / width.Bytes()
	c.resize(n)
	decodeSamples(c.samples, raw, width, order, signed)

	if !c.colorizing {
		return c.gray(n, width)
	}

	clamped := c.hist.Build(c.samples)
	if clamped > 0 {
		c.logger.Printf("colorize: %d of %d %s samples exceeded %d and were clamped", clamped, n, width, equalize.MaxDepth-1)
	}

	g := c.palette.Active().Gradient
	valid, err := c.mapPixels(n, func(lo, hi int) int {
		return c.mapRange(g, lo, hi)
	})
	if err != nil {
		return nil, err
	}

	c.stats = Stats{Pixels: n, Valid: valid, Clamped: clamped, Width: width, Colorized: true}
	return c.rgb, nil
}

// gray scales samples linearly between the fixed or estimated range
func (c *Colorizer) gray(n int, width PixelWidth) ([]byte, error) {
	lo, hi := c.rng.Min, c.rng.Max
	if c.rng.Normalize {
		lo, hi = c.estimateRange()
	}

	valid, err := c.mapPixels(n, func(from, to int) int {
		return c.grayRange(lo, hi, from, to)
	})
	if err != nil {
		return nil, err
	}

	c.stats = Stats{Pixels: n, Valid: valid, Width: width, Lo: lo, Hi: hi}
	return c.rgb, nil
}

// estimateRange feeds this frame's non-zero extremes to the median filter
// A frame without depth data leaves the filter unchanged
func (c *Colorizer) estimateRange() (float64, float64) {
	var lo, hi uint32
	found := false
	for _, d := range c.samples {
		if d == 0 {
			continue
		}
		if !found {
			lo, hi, found = d, d, true
			continue
		}
		lo, hi = min(lo, d), max(hi, d)
	}
	if !found {
		return c.est.current()
	}
	return c.est.push(float64(lo), float64(hi))
}

// resize adjusts working buffers only when the pixel count changes
func (c *Colorizer) resize(n int) {
	if n == c.pixels && c.rgb != nil {
		return
	}
	if cap(c.samples) >= n {
		c.samples = c.samples[:n]
	} else {
		c.samples = make([]uint32, n)
	}
	if cap(c.rgb) >= 3*n {
		c.rgb = c.rgb[:3*n]
	} else {
		c.rgb = make([]byte, 3*n)
	}
	c.pixels = n
}

// mapRange colors pixels [lo, hi) and returns how many carried depth data
func (c *Colorizer) mapRange(g *gradient.Gradient, lo, hi int) int {
	valid := 0
	for i := lo; i < hi; i++ {
		px := c.rgb[3*i : 3*i+3]
		d := c.samples[i]
		if d == 0 {
			px[0], px[1], px[2] = 0, 0, 0
			continue
		}
		rgb := g.Sample(c.hist.Normalized(d)).RGB8()
		px[0], px[1], px[2] = rgb.R, rgb.G, rgb.B
		valid++
	}
	return valid
}

// grayRange draws pixels [from, to) black at lo through white at hi
// With an empty range everything at or above hi is white
func (c *Colorizer) grayRange(lo, hi float64, from, to int) int {
	span := hi - lo
	valid := 0
	for i := from; i < to; i++ {
		px := c.rgb[3*i : 3*i+3]
		d := c.samples[i]
		if d == 0 {
			px[0], px[1], px[2] = 0, 0, 0
			continue
		}
		var t float64
		switch {
		case span > 0:
			t = (float64(d) - lo) / span
		case float64(d) >= hi:
			t = 1
		}
		v := gradient.Gray(255 * t).RGB8().R
		px[0], px[1], px[2] = v, v, v
		valid++
	}
	return valid
}

// mapPixels runs fn over [0, n), partitioned across workers for large frames
// The histogram and range are read-only while fn runs
func (c *Colorizer) mapPixels(n int, fn func(lo, hi int) int) (int, error) {
	if c.workers <= 1 || n < minParallelPixels {
		return fn(0, n), nil
	}

	chunk := (n + c.workers - 1) / c.workers
	counts := make([]int, c.workers)

	var eg errgroup.Group
	for w := 0; w < c.workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		eg.Go(func() error {
			counts[w] = fn(lo, hi)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	valid := 0
	for _, v := range counts {
		valid += v
	}
	return valid, nil
}
