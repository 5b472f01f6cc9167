package engine

import (
	"time"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
)

// InputSource delivers key events to the loop. Poll waits at most
// timeout for an event and returns a zero KeyEvent when none arrived;
// it must never block indefinitely. Events arriving between polls are
// held by the source, and the engine consumes at most one per loop
// iteration.
type InputSource interface {
	Poll(timeout time.Duration) (core.KeyEvent, error)
}

// Display presents a finished frame. Size is consulted once at session
// start to validate the behavior's minimum surface.
type Display interface {
	Size() (w, h int)
	Present(s *core.Screen) error
}
