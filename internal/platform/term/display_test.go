package term

import (
	"testing"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
)

type placement struct {
	x, y int
	cell core.Cell
}

func collectCells(s *core.Screen) []placement {
	var out []placement
	walkCells(s, func(x, y int, cell core.Cell) {
		out = append(out, placement{x, y, cell})
	})
	return out
}

func TestWalkCellsUsesColumnIndices(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.SetColored(0, 1, 'a', core.ColorRed)
	s.SetColored(5, 1, 'b', core.ColorGreen)

	var got []placement
	for _, p := range collectCells(s) {
		if p.cell.Rune != ' ' {
			got = append(got, p)
		}
	}
	if len(got) != 2 {
		t.Fatalf("placed %d cells, want 2", len(got))
	}
	if got[0].x != 0 || got[0].y != 1 || got[0].cell.Color != core.ColorRed {
		t.Errorf("first placement = %+v", got[0])
	}
	if got[1].x != 5 || got[1].y != 1 || got[1].cell.Color != core.ColorGreen {
		t.Errorf("second placement = %+v", got[1])
	}
}

func TestWalkCellsSkipsAfterWideRune(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.Set(0, 0, '漢') // double width
	s.Set(1, 0, 'x') // shadowed by the wide rune
	s.Set(2, 0, 'y')

	var runes []rune
	var cols []int
	walkCells(s, func(x, _ int, cell core.Cell) {
		runes = append(runes, cell.Rune)
		cols = append(cols, x)
	})

	want := []rune{'漢', 'y', ' '}
	if len(runes) != len(want) {
		t.Fatalf("emitted %d cells %q, want %d", len(runes), string(runes), len(want))
	}
	for i := range want {
		if runes[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, runes[i], want[i])
		}
	}
	if cols[1] != 2 {
		t.Errorf("rune after wide char emitted at column %d, want 2", cols[1])
	}
}

func TestWalkCellsVisitsFullBuffer(t *testing.T) {
	s := core.NewScreen(80, 24)
	n := 0
	walkCells(s, func(int, int, core.Cell) { n++ })
	if n != 80*24 {
		t.Errorf("visited %d cells on a blank 80x24 screen, want %d", n, 80*24)
	}
}
