package depthio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/lixenwraith/depthcolor/colorize"
)

// LoadImage decodes a single-channel depth image file
func LoadImage(path string) (*colorize.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	frame, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

// DecodeImage reads PNG, TIFF or BMP data into a raw depth frame
// 16-bit gray keeps the decoder's big-endian sample layout
func DecodeImage(r io.Reader) (*colorize.Frame, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FrameFromImage(img, format)
}

// FrameFromImage converts a decoded gray image into a raw depth frame
func FrameFromImage(img image.Image, format string) (*colorize.Frame, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray16:
		return &colorize.Frame{
			Width:     w,
			Height:    h,
			Step:      w * 2,
			Encoding:  colorize.EncodingMono16,
			BigEndian: true,
			Data:      packRows(src.Pix, src.Stride, w*2, h),
		}, nil
	case *image.Gray:
		return &colorize.Frame{
			Width:    w,
			Height:   h,
			Step:     w,
			Encoding: colorize.EncodingMono8,
			Data:     packRows(src.Pix, src.Stride, w, h),
		}, nil
	default:
		return nil, fmt.Errorf("%s with %T pixels, need 8 or 16-bit gray: %w", format, img, ErrUnsupportedImage)
	}
}

// packRows drops stride padding so samples are contiguous
func packRows(pix []byte, stride, rowBytes, rows int) []byte {
	out := make([]byte, rowBytes*rows)
	for y := 0; y < rows; y++ {
		copy(out[y*rowBytes:(y+1)*rowBytes], pix[y*stride:y*stride+rowBytes])
	}
	return out
}

// ImageFromFrame wraps an rgb8 frame as an image for encoding
func ImageFromFrame(f *colorize.Frame) (*image.RGBA, error) {
	if f.Encoding != colorize.EncodingRGB8 {
		return nil, fmt.Errorf("frame encoding %q, want %q: %w", f.Encoding, colorize.EncodingRGB8, ErrUnsupportedImage)
	}
	if len(f.Data) < f.Width*f.Height*3 {
		return nil, fmt.Errorf("frame %dx%d holds %d bytes: %w", f.Width, f.Height, len(f.Data), ErrShortRaw)
	}

	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Width*f.Height; i++ {
		img.Pix[4*i] = f.Data[3*i]
		img.Pix[4*i+1] = f.Data[3*i+1]
		img.Pix[4*i+2] = f.Data[3*i+2]
		img.Pix[4*i+3] = 0xff
	}
	return img, nil
}

// WritePNG encodes an rgb8 frame as PNG
func WritePNG(w io.Writer, f *colorize.Frame) error {
	img, err := ImageFromFrame(f)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes an rgb8 frame to path
func SavePNG(path string, f *colorize.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(out, f); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// IsImagePath reports whether path has an extension LoadImage understands
func IsImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".tif", ".tiff", ".bmp":
		return true
	default:
		return false
	}
}
