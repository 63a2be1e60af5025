package depthio

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/depthcolor/colorize"
)

var (
	// ErrShortRaw is returned when a raw dump is smaller than one frame
	ErrShortRaw = errors.New("raw data shorter than one frame")

	// ErrUnsupportedImage is returned for images that are not single-channel gray
	ErrUnsupportedImage = errors.New("unsupported image")
)

// RawLayout describes frames in a headerless raw dump
type RawLayout struct {
	Width         int
	Height        int
	BytesPerPixel int
	BigEndian     bool
}

// FrameSize returns the byte size of one frame
func (l RawLayout) FrameSize() int {
	return l.Width * l.Height * l.BytesPerPixel
}

// encoding maps the sample width to a frame encoding
func (l RawLayout) encoding() string {
	switch l.BytesPerPixel {
	case 1:
		return colorize.Encoding8UC1
	case 2:
		return colorize.Encoding16UC1
	default:
		return colorize.Encoding32UC1
	}
}

// Validate checks dimensions and sample width
func (l RawLayout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("raw layout %dx%d: dimensions must be positive", l.Width, l.Height)
	}
	if _, err := colorize.ParsePixelWidth(l.BytesPerPixel); err != nil {
		return fmt.Errorf("raw layout: %w", err)
	}
	return nil
}

// frameFromBytes copies one frame out of src so the colorizer may rewrite it
func (l RawLayout) frameFromBytes(src []byte) *colorize.Frame {
	data := make([]byte, l.FrameSize())
	copy(data, src)
	return &colorize.Frame{
		Width:     l.Width,
		Height:    l.Height,
		Step:      l.Width * l.BytesPerPixel,
		Encoding:  l.encoding(),
		BigEndian: l.BigEndian,
		Data:      data,
	}
}

// Sequence is a read-only view of back-to-back raw frames
type Sequence struct {
	layout RawLayout
	data   []byte
	count  int
	unmap  func() error
}

// OpenSequence maps a raw dump; trailing bytes short of a whole frame are ignored
func OpenSequence(path string, layout RawLayout) (*Sequence, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	data, unmap, err := mapFile(path)
	if err != nil {
		return nil, fmt.Errorf("open raw %s: %w", path, err)
	}

	count := len(data) / layout.FrameSize()
	if count == 0 {
		_ = unmap()
		return nil, fmt.Errorf("%s: %d bytes, frame needs %d: %w", path, len(data), layout.FrameSize(), ErrShortRaw)
	}

	return &Sequence{layout: layout, data: data, count: count, unmap: unmap}, nil
}

// Len returns the number of whole frames
func (s *Sequence) Len() int {
	return s.count
}

// Layout returns the frame layout
func (s *Sequence) Layout() RawLayout {
	return s.layout
}

// Frame copies frame i out of the mapping
func (s *Sequence) Frame(i int) (*colorize.Frame, error) {
	if i < 0 || i >= s.count {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", i, s.count)
	}
	size := s.layout.FrameSize()
	return s.layout.frameFromBytes(s.data[i*size : (i+1)*size]), nil
}

// Close releases the mapping; frames already returned stay valid
func (s *Sequence) Close() error {
	if s.unmap == nil {
		return nil
	}
	err := s.unmap()
	s.unmap = nil
	s.data = nil
	return err
}
