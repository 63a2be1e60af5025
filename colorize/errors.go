package colorize

import "errors"

var (
	// ErrUnsupportedPixelFormat is returned for sample widths other than 1, 2 or 4 bytes
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")

	// ErrUnknownPalette is returned when selecting a gradient that is not in the palette
	ErrUnknownPalette = errors.New("unknown palette entry")

	// ErrShortFrame is returned when frame data is smaller than Step*Height implies
	ErrShortFrame = errors.New("frame data shorter than its layout")

	// ErrInvalidRange is returned for unusable grayscale range options
	ErrInvalidRange = errors.New("invalid grayscale range")
)
