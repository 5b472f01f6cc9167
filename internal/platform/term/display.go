// Package term adapts a real terminal to the engine's display and
// input interfaces using termbox.
package term

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
)

var colorAttrs = map[core.Color]termbox.Attribute{
	core.ColorDefault: termbox.ColorDefault,
	core.ColorRed:     termbox.ColorRed,
	core.ColorGreen:   termbox.ColorGreen,
	core.ColorYellow:  termbox.ColorYellow,
	core.ColorBlue:    termbox.ColorBlue,
	core.ColorMagenta: termbox.ColorMagenta,
	core.ColorCyan:    termbox.ColorCyan,
	core.ColorWhite:   termbox.ColorWhite,
	core.ColorGray:    termbox.ColorDarkGray,
	core.ColorOrange:  termbox.ColorLightRed,

	core.ColorBrightRed:     termbox.ColorLightRed,
	core.ColorBrightGreen:   termbox.ColorLightGreen,
	core.ColorBrightYellow:  termbox.ColorLightYellow,
	core.ColorBrightBlue:    termbox.ColorLightBlue,
	core.ColorBrightMagenta: termbox.ColorLightMagenta,
	core.ColorBrightCyan:    termbox.ColorLightCyan,
	core.ColorBrightWhite:   termbox.ColorWhite | termbox.AttrBold,
}

func attr(c core.Color) termbox.Attribute {
	if a, ok := colorAttrs[c]; ok {
		return a
	}
	return termbox.ColorDefault
}

// Terminal owns the termbox session and serves both the display and
// input sides of a game session. Close must be called to restore the
// terminal.
type Terminal struct {
	events chan termbox.Event
	done   chan struct{}
}

// Open initializes termbox and starts the event pump.
func Open() (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("term: cannot initialize terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)

	t := &Terminal{
		events: make(chan termbox.Event, 16),
		done:   make(chan struct{}),
	}
	go t.pump()
	return t, nil
}

// pump forwards termbox events to the channel until Close interrupts
// polling.
func (t *Terminal) pump() {
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			close(t.events)
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	close(t.done)
	termbox.Interrupt()
	termbox.Close()
}

// Size reports the terminal dimensions.
func (t *Terminal) Size() (w, h int) {
	return termbox.Size()
}

// Present flushes a rendered screen to the terminal.
func (t *Terminal) Present(s *core.Screen) error {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	walkCells(s, func(x, y int, cell core.Cell) {
		termbox.SetCell(x, y, cell.Rune, attr(cell.Color), termbox.ColorDefault)
	})
	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("term: cannot flush terminal: %w", err)
	}
	return nil
}

// walkCells visits every drawable cell by column index. Wide runes
// occupy their full display width; the cell after a wide rune is
// skipped.
func walkCells(s *core.Screen, emit func(x, y int, cell core.Cell)) {
	for y := 0; y < s.Height(); y++ {
		skip := false
		for x := 0; x < s.Width(); x++ {
			if skip {
				skip = false
				continue
			}
			cell := s.GetCell(x, y)
			if cell.Rune == 0 {
				continue
			}
			emit(x, y, cell)
			if runewidth.RuneWidth(cell.Rune) > 1 {
				skip = true
			}
		}
	}
}
