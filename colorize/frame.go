package colorize

import (
	"encoding/binary"
	"fmt"
)

// Image encodings understood by ColorizeFrame
const (
	EncodingRGB8   = "rgb8"
	EncodingMono8  = "mono8"
	Encoding8UC1   = "8UC1"
	EncodingMono16 = "mono16"
	Encoding16UC1  = "16UC1"
	Encoding16SC1  = "16SC1"
	Encoding32SC1  = "32SC1"
	Encoding32UC1  = "32UC1"
)

// EncodingWidth returns the sample width of a raw depth encoding
func EncodingWidth(encoding string) (PixelWidth, bool) {
	switch encoding {
	case EncodingMono8, Encoding8UC1:
		return Width8, true
	case EncodingMono16, Encoding16UC1, Encoding16SC1:
		return Width16, true
	case Encoding32SC1, Encoding32UC1:
		return Width32, true
	default:
		return 0, false
	}
}

// encodingSigned reports whether samples of encoding are two's complement
func encodingSigned(encoding string) bool {
	return encoding == Encoding16SC1 || encoding == Encoding32SC1
}

// Frame is a host image message: raw depth in, RGB8 out
type Frame struct {
	Width     int    // pixels per row
	Height    int    // rows
	Step      int    // bytes per row
	Encoding  string // one of the Encoding constants
	BigEndian bool   // byte order of multi-byte samples
	Data      []byte
}

// sampleWidth resolves bytes per pixel
// A known encoding fixes the width and any Step beyond the packed row is padding;
// otherwise Step must be an exact multiple of Width
func (f *Frame) sampleWidth() (PixelWidth, error) {
	encWidth, known := EncodingWidth(f.Encoding)
	if f.Width <= 0 {
		if !known {
			return 0, fmt.Errorf("frame encoding %q: %w", f.Encoding, ErrUnsupportedPixelFormat)
		}
		return encWidth, nil
	}

	if known {
		if f.Step < f.Width*encWidth.Bytes() {
			return 0, fmt.Errorf("frame %dx%d %s: step %d below row size %d: %w",
				f.Width, f.Height, f.Encoding, f.Step, f.Width*encWidth.Bytes(), ErrUnsupportedPixelFormat)
		}
		return encWidth, nil
	}

	if f.Step%f.Width != 0 {
		return 0, fmt.Errorf("frame %dx%d: step %d is not a multiple of width: %w", f.Width, f.Height, f.Step, ErrUnsupportedPixelFormat)
	}
	w, err := ParsePixelWidth(f.Step / f.Width)
	if err != nil {
		return 0, fmt.Errorf("frame %dx%d step %d: %w", f.Width, f.Height, f.Step, err)
	}
	return w, nil
}

// ColorizeFrame rewrites f in place as an RGB8 image
// Row padding past Width samples is dropped; afterwards Encoding is rgb8,
// Step is Width*3 and Data holds exactly Width*Height*3 bytes
// Negative 16SC1/32SC1 samples count as no data
// On error f is left untouched
func (c *Colorizer) ColorizeFrame(f *Frame) error {
	width, err := f.sampleWidth()
	if err != nil {
		return err
	}

	rowBytes := max(f.Width, 0) * width.Bytes()
	rows := max(f.Height, 0)
	if rowBytes == 0 {
		rows = 0
	}
	if rows > 0 && len(f.Data) < f.Step*(rows-1)+rowBytes {
		return fmt.Errorf("frame %dx%d step %d holds %d bytes: %w", f.Width, f.Height, f.Step, len(f.Data), ErrShortFrame)
	}

	order := binary.ByteOrder(binary.LittleEndian)
	if f.BigEndian {
		order = binary.BigEndian
	}

	raw := c.packRows(f.Data, f.Step, rowBytes, rows)
	rgb, err := c.colorize(raw, width, order, encodingSigned(f.Encoding))
	if err != nil {
		return err
	}
	f.Data = append(f.Data[:0], rgb...)
	f.Encoding = EncodingRGB8
	f.Step = f.Width * 3
	return nil
}

// packRows returns the samples of rows without stride padding
// Already packed data is returned as a subslice, padded data is copied into scratch
func (c *Colorizer) packRows(data []byte, step, rowBytes, rows int) []byte {
	if step == rowBytes || rows <= 1 {
		return data[:rowBytes*rows]
	}
	n := rowBytes * rows
	if cap(c.packed) < n {
		c.packed = make([]byte, n)
	}
	c.packed = c.packed[:n]
	for y := 0; y < rows; y++ {
		copy(c.packed[y*rowBytes:(y+1)*rowBytes], data[y*step:y*step+rowBytes])
	}
	return c.packed
}
