package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, '@')
	if got := s.Get(3, 2); got != '@' {
		t.Errorf("Get(3, 2) = %q, want '@'", got)
	}

	s.SetColored(4, 2, '#', ColorRed)
	cell := s.GetCell(4, 2)
	if cell.Rune != '#' || cell.Color != ColorRed {
		t.Errorf("GetCell(4, 2) = %+v, want '#' in red", cell)
	}

	// Out-of-bounds writes are silently dropped, reads return blanks.
	s.Set(-1, 0, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, 5, 'x')
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("out-of-bounds Get = %q, want space", got)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.SetColored(1, 1, 'x', ColorGreen)
	s.Clear()

	cell := s.GetCell(1, 1)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("after Clear cell = %+v, want blank default", cell)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(2, 1, "hi")
	if row := s.Row(1); row != "  hi      " {
		t.Errorf("Row(1) = %q", row)
	}

	// Clipped at the right edge.
	s.DrawText(8, 0, "long")
	if row := s.Row(0); row != "        lo" {
		t.Errorf("clipped Row(0) = %q", row)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 3)
	s.DrawTextCentered(1, "abc")
	row := s.Row(1)
	if !strings.Contains(row, "abc") {
		t.Fatalf("Row(1) = %q does not contain text", row)
	}
	if strings.Index(row, "abc") != 4 {
		t.Errorf("text starts at %d, want 4", strings.Index(row, "abc"))
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(6, 4)
	s.Set(2, 2, '*')

	s.Resize(8, 6)
	if s.Width() != 8 || s.Height() != 6 {
		t.Fatalf("size = %dx%d, want 8x6", s.Width(), s.Height())
	}
	if got := s.Get(2, 2); got != '*' {
		t.Errorf("content lost on grow: Get(2, 2) = %q", got)
	}

	s.Resize(3, 3)
	if got := s.Get(2, 2); got != '*' {
		t.Errorf("content lost on shrink: Get(2, 2) = %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	want := "a  \n  b"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorDefault)

	if s.Get(0, 0) != '┌' || s.Get(5, 0) != '┐' || s.Get(0, 3) != '└' || s.Get(5, 3) != '┘' {
		t.Error("box corners wrong")
	}
	if s.Get(2, 0) != '─' || s.Get(0, 2) != '│' {
		t.Error("box edges wrong")
	}
	if s.Get(2, 2) != ' ' {
		t.Error("box interior should stay empty")
	}
}
