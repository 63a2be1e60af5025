// @focus: #sys { term }
// Package terminal writes RGB8 imagery to xterm-compatible terminals.
//
// Features:
//   - True color (24-bit) and 256-color palette output
//   - Half-block rendering: one cell carries two vertically stacked pixels
//   - Color capability detection from the environment
//   - Terminal size and tty detection via termios ioctls
//
// Output is direct ANSI, no terminfo/termcap lookup.
package terminal
