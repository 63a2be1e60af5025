// @focus: #terminal { ansi }
package terminal

import (
	"bufio"
	"fmt"
	"io"
)

// Pre-allocated ANSI sequence fragments
var (
	csiReset = []byte("\x1b[0m")
	csiFg256 = []byte("\x1b[38;5;") // followed by N;m
	csiBg256 = []byte("\x1b[48;5;") // followed by N;m
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B;m
	csiBgRGB = []byte("\x1b[48;2;") // followed by R;G;B;m
)

// halfBlock draws the upper pixel in fg and the lower pixel in bg
const halfBlock = '▀'

// writeInt writes an integer without allocation, sized for color channel values
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	w.WriteByte(byte(n/100%10) + '0')
	w.WriteByte(byte(n/10%10) + '0')
	w.WriteByte(byte(n%10) + '0')
}

func writeColor(w *bufio.Writer, prefix256, prefixRGB []byte, c RGB, mode ColorMode) {
	if mode == ColorMode256 {
		w.Write(prefix256)
		writeInt(w, int(RGBTo256(c)))
		w.WriteByte('m')
		return
	}
	w.Write(prefixRGB)
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
	w.WriteByte('m')
}

// CellSize returns the cell grid that fits a width x height image into cols columns
// Each cell covers one pixel column and two pixel rows
func CellSize(width, height, cols int) (outW, outH int) {
	if width <= 0 || height <= 0 || cols <= 0 {
		return 0, 0
	}
	outW = min(cols, width)
	// Terminal cells are ~2:1, half blocks restore a square pixel
	outH = (height*outW/width + 1) / 2
	if outH < 1 {
		outH = 1
	}
	return outW, outH
}

// FitCells is CellSize additionally bounded by rows; 0 rows means unbounded
func FitCells(width, height, cols, rows int) (outW, outH int) {
	outW, outH = CellSize(width, height, cols)
	if rows > 0 && outH > rows {
		outW, outH = CellSize(width, height, max(width*rows*2/height, 1))
		outH = min(outH, rows)
	}
	return outW, outH
}

// ForEachCell nearest-neighbor samples an interleaved RGB8 image onto an outW x outH
// half-block grid, calling fn in row-major order with the upper and lower pixel of each cell
func ForEachCell(rgb []byte, width, height, outW, outH int, fn func(x, y int, top, bottom RGB)) {
	if outW <= 0 || outH <= 0 || width <= 0 || height <= 0 {
		return
	}
	pixelRows := outH * 2
	at := func(x, y int) RGB {
		sx := min(x*width/outW, width-1)
		sy := min(y*height/pixelRows, height-1)
		i := (sy*width + sx) * 3
		return RGB{R: rgb[i], G: rgb[i+1], B: rgb[i+2]}
	}
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			fn(x, y, at(x, 2*y), at(x, 2*y+1))
		}
	}
}

// WriteImage renders an interleaved RGB8 image as half-block cells, at most cols wide
func WriteImage(dst io.Writer, rgb []byte, width, height, cols int, mode ColorMode) error {
	if len(rgb) < width*height*3 {
		return fmt.Errorf("rgb buffer holds %d bytes, need %d for %dx%d", len(rgb), width*height*3, width, height)
	}
	outW, outH := CellSize(width, height, cols)
	if outW == 0 {
		return nil
	}

	w := bufio.NewWriter(dst)
	var lastFg, lastBg RGB
	ForEachCell(rgb, width, height, outW, outH, func(x, y int, fg, bg RGB) {
		if x == 0 || !fg.Equal(lastFg) {
			writeColor(w, csiFg256, csiFgRGB, fg, mode)
			lastFg = fg
		}
		if x == 0 || !bg.Equal(lastBg) {
			writeColor(w, csiBg256, csiBgRGB, bg, mode)
			lastBg = bg
		}
		w.WriteRune(halfBlock)
		if x == outW-1 {
			w.Write(csiReset)
			w.WriteByte('\n')
		}
	})

	return w.Flush()
}
