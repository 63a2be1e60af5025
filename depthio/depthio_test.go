package depthio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/lixenwraith/depthcolor/colorize"
)

func gray16Image() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, 3, 2))
	for i := 0; i < 6; i++ {
		img.SetGray16(i%3, i/3, color.Gray16{Y: uint16(i * 1000)})
	}
	return img
}

func TestDecodePNGGray16(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gray16Image()); err != nil {
		t.Fatal(err)
	}

	f, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if f.Width != 3 || f.Height != 2 || f.Step != 6 || f.Encoding != colorize.EncodingMono16 || !f.BigEndian {
		t.Fatalf("frame = %+v", f)
	}
	for i := 0; i < 6; i++ {
		if got := binary.BigEndian.Uint16(f.Data[2*i:]); got != uint16(i*1000) {
			t.Errorf("sample %d = %d, want %d", i, got, i*1000)
		}
	}
}

func TestDecodeTIFFGray16(t *testing.T) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, gray16Image(), nil); err != nil {
		t.Fatal(err)
	}

	f, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if got := binary.BigEndian.Uint16(f.Data[10:]); got != 5000 {
		t.Errorf("last sample = %d, want 5000", got)
	}
}

func TestDecodeGray8SubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)

	f, err := FrameFromImage(sub, "png")
	if err != nil {
		t.Fatalf("FrameFromImage: %v", err)
	}
	want := []byte{5, 6, 9, 10}
	if !bytes.Equal(f.Data, want) {
		t.Errorf("Data = %v, want %v", f.Data, want)
	}
	if f.Encoding != colorize.EncodingMono8 || f.Step != 2 {
		t.Errorf("frame = %+v", f)
	}
}

func TestRejectColorImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, err := FrameFromImage(img, "png"); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("err = %v, want ErrUnsupportedImage", err)
	}
}

func TestColorizeAndWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gray16Image()); err != nil {
		t.Fatal(err)
	}
	f, err := DecodeImage(&buf)
	if err != nil {
		t.Fatal(err)
	}

	c := colorize.New()
	if err := c.ColorizeFrame(f); err != nil {
		t.Fatalf("ColorizeFrame: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(path, f); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	out, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	img, err := png.Decode(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("output bounds = %v", b)
	}
	// Pixel 0 had depth 0
	if r, g, b, _ := img.At(0, 0).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("zero-depth pixel = (%d,%d,%d), want black", r, g, b)
	}
}

func TestImageFromFrameRequiresRGB8(t *testing.T) {
	f := &colorize.Frame{Width: 1, Height: 1, Step: 2, Encoding: colorize.EncodingMono16, Data: []byte{0, 1}}
	if _, err := ImageFromFrame(f); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("err = %v, want ErrUnsupportedImage", err)
	}
}

func writeRaw(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "depth.raw")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSequenceFrames(t *testing.T) {
	layout := RawLayout{Width: 2, Height: 2, BytesPerPixel: 2}
	data := make([]byte, 2*layout.FrameSize()+3)
	for i := 0; i < len(data)/2; i++ {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(i))
	}

	seq, err := OpenSequence(writeRaw(t, data), layout)
	if err != nil {
		t.Fatalf("OpenSequence: %v", err)
	}

	if seq.Len() != 2 {
		t.Fatalf("Len = %d, want 2", seq.Len())
	}

	f, err := seq.Frame(1)
	if err != nil {
		t.Fatalf("Frame(1): %v", err)
	}
	if f.Encoding != colorize.Encoding16UC1 || f.Step != 4 || f.BigEndian {
		t.Errorf("frame = %+v", f)
	}
	if got := binary.LittleEndian.Uint16(f.Data); got != 4 {
		t.Errorf("first sample of frame 1 = %d, want 4", got)
	}

	if _, err := seq.Frame(2); err == nil {
		t.Error("Frame(2) should be out of range")
	}

	if err := seq.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Frames copied before Close stay usable
	if got := binary.LittleEndian.Uint16(f.Data[6:]); got != 7 {
		t.Errorf("sample after Close = %d, want 7", got)
	}
}

func TestSequenceShortFile(t *testing.T) {
	layout := RawLayout{Width: 4, Height: 4, BytesPerPixel: 1}
	_, err := OpenSequence(writeRaw(t, make([]byte, 10)), layout)
	if !errors.Is(err, ErrShortRaw) {
		t.Errorf("err = %v, want ErrShortRaw", err)
	}

	_, err = OpenSequence(writeRaw(t, nil), layout)
	if !errors.Is(err, ErrShortRaw) {
		t.Errorf("empty file err = %v, want ErrShortRaw", err)
	}
}

func TestRawLayoutValidate(t *testing.T) {
	tests := []struct {
		name    string
		layout  RawLayout
		wantErr bool
	}{
		{"Valid 16-bit", RawLayout{Width: 640, Height: 480, BytesPerPixel: 2}, false},
		{"Valid 32-bit", RawLayout{Width: 1, Height: 1, BytesPerPixel: 4}, false},
		{"Zero width", RawLayout{Width: 0, Height: 1, BytesPerPixel: 1}, true},
		{"Three bytes", RawLayout{Width: 1, Height: 1, BytesPerPixel: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.name == "Three bytes" && !errors.Is(err, colorize.ErrUnsupportedPixelFormat) {
				t.Errorf("err = %v, want ErrUnsupportedPixelFormat", err)
			}
		})
	}
}

func TestIsImagePath(t *testing.T) {
	for path, want := range map[string]bool{
		"a.png": true, "b.TIFF": true, "c.tif": true, "d.bmp": true, "e.raw": false, "f": false,
	} {
		if got := IsImagePath(path); got != want {
			t.Errorf("IsImagePath(%q) = %v, want %v", path, got, want)
		}
	}
}
