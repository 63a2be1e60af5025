// Package depthio loads depth frames from disk and writes colorized results.
//
// Sources:
//   - Raw sample dumps, one or more frames back to back (memory-mapped on unix)
//   - Single-channel PNG, TIFF and BMP images (8-bit gray and 16-bit gray)
//
// Every loader yields a colorize.Frame so the same colorizer path serves all inputs.
package depthio
