package colorize

import (
	"encoding/binary"
	"fmt"
)

// PixelWidth is the byte size of one raw depth sample
type PixelWidth uint8

const (
	Width8  PixelWidth = 1 // 8UC1, mono8
	Width16 PixelWidth = 2 // 16UC1, mono16
	Width32 PixelWidth = 4 // 32SC1, 32UC1
)

// ParsePixelWidth validates a bytes-per-pixel count
func ParsePixelWidth(bytesPerPixel int) (PixelWidth, error) {
	switch bytesPerPixel {
	case 1, 2, 4:
		return PixelWidth(bytesPerPixel), nil
	default:
		return 0, fmt.Errorf("%w: %d bytes per pixel", ErrUnsupportedPixelFormat, bytesPerPixel)
	}
}

// String returns the bit depth label
func (w PixelWidth) String() string {
	switch w {
	case Width8:
		return "8-bit"
	case Width16:
		return "16-bit"
	case Width32:
		return "32-bit"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(w))
	}
}

// Bytes returns the sample size in bytes
func (w PixelWidth) Bytes() int {
	return int(w)
}

// sampleReader reads one sample from the head of b; len(b) >= w.Bytes() is the caller's contract
type sampleReader func(b []byte) uint32

// reader selects the sample decoder once per frame
// Signed readers map negative samples to 0, the no-data sentinel
func (w PixelWidth) reader(order binary.ByteOrder, signed bool) sampleReader {
	switch {
	case w == Width8:
		return func(b []byte) uint32 { return uint32(b[0]) }
	case w == Width16 && signed:
		return func(b []byte) uint32 { return uint32(max(int16(order.Uint16(b)), 0)) }
	case w == Width16:
		return func(b []byte) uint32 { return uint32(order.Uint16(b)) }
	case signed:
		return func(b []byte) uint32 { return uint32(max(int32(order.Uint32(b)), 0)) }
	default:
		return order.Uint32
	}
}

// decodeSamples fills dst with one value per whole sample in raw
// Trailing bytes that do not form a whole sample are ignored
func decodeSamples(dst []uint32, raw []byte, w PixelWidth, order binary.ByteOrder, signed bool) {
	read := w.reader(order, signed)
	step := w.Bytes()
	for i := range dst {
		off := i * step
		dst[i] = read(raw[off : off+step])
	}
}
