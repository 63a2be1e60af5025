//go:build !unix

package terminal

import (
	"os"

	"golang.org/x/term"
)

// Size returns the column/row size of the terminal behind f
// Falls back to 80x24 when f is not a terminal
func Size(f *os.File) (int, int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w == 0 || h == 0 {
		return 80, 24
	}
	return w, h
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
