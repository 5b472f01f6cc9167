package engine

import "time"

// Clock supplies monotonic time to the loop. Tests inject a scripted
// implementation to drive delta-time deterministically.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }
