package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/depthcolor/colorize"
	"github.com/lixenwraith/depthcolor/terminal"
)

// viewer browses a frame set in the terminal, recoloring on palette changes
type viewer struct {
	screen tcell.Screen
	frames *frameSet
	c      *colorize.Colorizer
	mode   terminal.ColorMode

	index int
	frame *colorize.Frame // colorized current frame
	err   error           // last load/colorize failure, shown in the status line
}

type keyAction int

const (
	actionNone keyAction = iota
	actionQuit
	actionRecolor
	actionReload
)

func runViewer(frames *frameSet, c *colorize.Colorizer, mode terminal.ColorMode) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	v := &viewer{screen: screen, frames: frames, c: c, mode: mode}
	v.load()
	v.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch v.handleKey(ev) {
			case actionQuit:
				return nil
			case actionRecolor, actionReload:
				v.load()
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return nil
		}
		v.draw()
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) keyAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRight, tcell.KeyPgDn:
		return v.step(1)
	case tcell.KeyLeft, tcell.KeyPgUp:
		return v.step(-1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return actionQuit
		case 'p':
			log.Printf("palette -> %s", v.c.Palette().Next().Name)
			return actionRecolor
		case 'P':
			log.Printf("palette -> %s", v.c.Palette().Prev().Name)
			return actionRecolor
		case 'c', 'C':
			v.c.SetColorizing(!v.c.Colorizing())
			return actionRecolor
		case 'r', 'R':
			rng := v.c.Range()
			rng.Normalize = !rng.Normalize
			if err := v.c.SetRange(rng); err != nil {
				log.Printf("range: %v", err)
				return actionNone
			}
			return actionRecolor
		case 'n', ' ':
			return v.step(1)
		case 'N':
			return v.step(-1)
		}
	}
	return actionNone
}

// step moves the frame cursor with wraparound
func (v *viewer) step(delta int) keyAction {
	n := v.frames.Len()
	if n <= 1 {
		return actionNone
	}
	v.index = ((v.index+delta)%n + n) % n
	return actionReload
}

// load fetches and colorizes the current frame; the raw copy is discarded afterwards
func (v *viewer) load() {
	f, err := v.frames.Load(v.index)
	if err == nil {
		err = v.c.ColorizeFrame(f)
	}
	if err != nil {
		log.Printf("frame %s: %v", v.frames.Label(v.index), err)
		v.frame, v.err = nil, err
		return
	}
	v.frame, v.err = f, nil
}

func (v *viewer) cellColor(c terminal.RGB) tcell.Color {
	if v.mode == terminal.ColorMode256 {
		return tcell.PaletteColor(int(terminal.RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()

	if v.frame != nil && rows > 1 {
		f := v.frame
		outW, outH := terminal.FitCells(f.Width, f.Height, cols, rows-1)
		offX := (cols - outW) / 2
		terminal.ForEachCell(f.Data, f.Width, f.Height, outW, outH, func(x, y int, top, bottom terminal.RGB) {
			style := tcell.StyleDefault.Foreground(v.cellColor(top)).Background(v.cellColor(bottom))
			v.screen.SetContent(offX+x, y, '▀', nil, style)
		})
	}

	v.drawStatus(cols, rows-1)
	v.screen.Show()
}

func (v *viewer) drawStatus(cols, y int) {
	var text string
	if v.err != nil {
		text = fmt.Sprintf(" %s  error: %v", v.frames.Label(v.index), v.err)
	} else {
		st := v.c.LastStats()
		text = fmt.Sprintf(" [%d/%d] %s  %dx%d %s  %s  valid %d/%d",
			v.index+1, v.frames.Len(), v.frames.Label(v.index),
			v.frame.Width, v.frame.Height, st.Width, renderLabel(v.c),
			st.Valid, st.Pixels)
		if st.Clamped > 0 {
			text += fmt.Sprintf("  clamped %d", st.Clamped)
		}
	}
	text += "  (p/P palette, c color, r range, n/N frame, q quit)"

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}
}

// renderLabel names what the last frame was drawn with
func renderLabel(c *colorize.Colorizer) string {
	st := c.LastStats()
	if st.Colorized {
		return "palette: " + c.Palette().Active().Name
	}
	mode := "fixed"
	if rng := c.Range(); rng.Normalize {
		mode = fmt.Sprintf("median %d", rng.MedianWindow)
	}
	return fmt.Sprintf("gray %s [%g, %g]", mode, st.Lo, st.Hi)
}
