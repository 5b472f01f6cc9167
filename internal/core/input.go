package core

// Key identifies a non-printable key. Printable keys use KeyRune with
// the Rune field set.
type Key int

const (
	KeyNone Key = iota // no event arrived within the poll window
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyTab
	KeyCtrlC
	KeyCtrlS
)

// KeyEvent is a single input event delivered to one loop iteration.
// The zero value means "no input".
type KeyEvent struct {
	Key  Key
	Rune rune
}

// None reports whether the event carries no input.
func (e KeyEvent) None() bool { return e.Key == KeyNone }

// Is reports whether the event is the given printable character,
// matching case-insensitively for letters.
func (e KeyEvent) Is(r rune) bool {
	if e.Key != KeyRune {
		return false
	}
	if e.Rune == r {
		return true
	}
	if r >= 'a' && r <= 'z' {
		return e.Rune == r-'a'+'A'
	}
	if r >= 'A' && r <= 'Z' {
		return e.Rune == r-'A'+'a'
	}
	return false
}

// RuneEvent builds a printable-character event.
func RuneEvent(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyRune:
		return "rune"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeySpace:
		return "space"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyCtrlC:
		return "ctrl+c"
	case KeyCtrlS:
		return "ctrl+s"
	default:
		return "unknown"
	}
}
