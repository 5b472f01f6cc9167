package term

import (
	"time"

	"github.com/nsf/termbox-go"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
	"github.com/Querulantenkind/cli-game-collection/internal/engine"
)

var keyMap = map[termbox.Key]core.Key{
	termbox.KeyArrowUp:    core.KeyUp,
	termbox.KeyArrowDown:  core.KeyDown,
	termbox.KeyArrowLeft:  core.KeyLeft,
	termbox.KeyArrowRight: core.KeyRight,
	termbox.KeyEnter:      core.KeyEnter,
	termbox.KeyEsc:        core.KeyEscape,
	termbox.KeySpace:      core.KeySpace,
	termbox.KeyBackspace:  core.KeyBackspace,
	termbox.KeyBackspace2: core.KeyBackspace,
	termbox.KeyTab:        core.KeyTab,
	termbox.KeyCtrlC:      core.KeyCtrlC,
	termbox.KeyCtrlS:      core.KeyCtrlS,
}

// Poll waits up to timeout for a key event. An expired timeout returns
// the zero event; a closed terminal reports input unavailability.
func (t *Terminal) Poll(timeout time.Duration) (core.KeyEvent, error) {
	select {
	case ev, ok := <-t.events:
		if !ok {
			return core.KeyEvent{}, engine.ErrInputUnavailable
		}
		return translate(ev), nil
	case <-time.After(timeout):
		return core.KeyEvent{}, nil
	}
}

func translate(ev termbox.Event) core.KeyEvent {
	if ev.Type != termbox.EventKey {
		return core.KeyEvent{}
	}
	if k, ok := keyMap[ev.Key]; ok {
		return core.KeyEvent{Key: k}
	}
	if ev.Ch != 0 {
		return core.RuneEvent(ev.Ch)
	}
	return core.KeyEvent{}
}
