package engine

import (
	"errors"
	"fmt"
)

// ErrInputUnavailable means the host cannot poll input. The loop cannot
// make progress, so this aborts the run.
var ErrInputUnavailable = errors.New("engine: input source unavailable")

// ErrNoSave is returned by SaveService.Retrieve for an unused slot.
var ErrNoSave = errors.New("engine: no save in slot")

// DisplayTooSmallError reports a display surface below the behavior's
// declared minimum. The run never starts; the caller may resize the
// terminal and retry.
type DisplayTooSmallError struct {
	GameID        string
	Width, Height int
	MinW, MinH    int
}

func (e *DisplayTooSmallError) Error() string {
	return fmt.Sprintf("engine: display %dx%d too small for %s (needs at least %dx%d)",
		e.Width, e.Height, e.GameID, e.MinW, e.MinH)
}

// DeserializeError wraps a failed save restore. It is recoverable: the
// engine logs it and falls back to fresh initialization.
type DeserializeError struct {
	GameID string
	Slot   int
	Err    error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("engine: restore %s slot %d: %v", e.GameID, e.Slot, e.Err)
}

func (e *DeserializeError) Unwrap() error { return e.Err }
