// Package gradient maps a normalized intensity in [0, 1] to a color.
//
// A Gradient is a sorted list of color anchors plus a precomputed table of
// evenly spaced samples. ColorAt interpolates exactly between anchors; Sample
// is the hot-path lookup into the table. Gradients never change after
// construction and may be shared across goroutines.
//
// Builtin returns the named gradients available to palettes, jet first.
package gradient
