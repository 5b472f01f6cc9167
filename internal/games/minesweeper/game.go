// Package minesweeper implements the classic mine-hunting puzzle with
// a keyboard cursor. The first reveal is always safe.
package minesweeper

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
	"github.com/Querulantenkind/cli-game-collection/internal/engine"
	"github.com/Querulantenkind/cli-game-collection/internal/registry"
	"github.com/Querulantenkind/cli-game-collection/internal/theme"
)

const (
	boardW = 9
	boardH = 9
	mines  = 10

	minHeight = 16
	minWidth  = 40

	pointsPerCell = 10
)

// Game implements the minesweeper behavior. Turn-based: Update is a
// no-op.
type Game struct {
	rng      *rand.Rand
	pal      theme.Theme
	mine     [boardH][boardW]bool
	revealed [boardH][boardW]bool
	flagged  [boardH][boardW]bool
	curX     int
	curY     int
	placed   bool // mines are placed on the first reveal
	score    int
	over     bool
	won      bool
}

func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("minesweeper", func() engine.Behavior {
		return New()
	})
}

func (g *Game) ID() string          { return "minesweeper" }
func (g *Game) Title() string       { return "Minesweeper" }
func (g *Game) MinSize() (h, w int) { return minHeight, minWidth }

func (g *Game) Init(cfg engine.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.pal = cfg.Theme

	g.mine = [boardH][boardW]bool{}
	g.revealed = [boardH][boardW]bool{}
	g.flagged = [boardH][boardW]bool{}
	g.curX, g.curY = boardW/2, boardH/2
	g.placed = false
	g.score = 0
	g.over = false
	g.won = false
	return nil
}

// placeMines seeds the board, keeping the given cell and its neighbors
// clear so the first reveal always opens an area.
func (g *Game) placeMines(safeX, safeY int) {
	placed := 0
	for placed < mines {
		x := g.rng.Intn(boardW)
		y := g.rng.Intn(boardH)
		if g.mine[y][x] || (core.Abs(x-safeX) <= 1 && core.Abs(y-safeY) <= 1) {
			continue
		}
		g.mine[y][x] = true
		placed++
	}
	g.placed = true
}

func (g *Game) HandleInput(ev core.KeyEvent) bool {
	switch {
	case ev.Key == core.KeyUp || ev.Is('w'):
		g.curY = core.Clamp(g.curY-1, 0, boardH-1)
	case ev.Key == core.KeyDown || ev.Is('s'):
		g.curY = core.Clamp(g.curY+1, 0, boardH-1)
	case ev.Key == core.KeyLeft || ev.Is('a'):
		g.curX = core.Clamp(g.curX-1, 0, boardW-1)
	case ev.Key == core.KeyRight || ev.Is('d'):
		g.curX = core.Clamp(g.curX+1, 0, boardW-1)
	case ev.Key == core.KeySpace || ev.Key == core.KeyEnter:
		g.reveal(g.curX, g.curY)
	case ev.Is('f'):
		g.toggleFlag(g.curX, g.curY)
	}
	return true
}

func (g *Game) toggleFlag(x, y int) {
	if g.revealed[y][x] {
		return
	}
	g.flagged[y][x] = !g.flagged[y][x]
}

func (g *Game) reveal(x, y int) {
	if g.revealed[y][x] || g.flagged[y][x] {
		return
	}
	if !g.placed {
		g.placeMines(x, y)
	}
	if g.mine[y][x] {
		g.revealed[y][x] = true
		g.over = true
		return
	}
	g.flood(x, y)
	if g.allClear() {
		g.over = true
		g.won = true
	}
}

// flood opens the cell and, for zero-neighbor cells, its whole region.
func (g *Game) flood(x, y int) {
	if x < 0 || x >= boardW || y < 0 || y >= boardH {
		return
	}
	if g.revealed[y][x] || g.flagged[y][x] || g.mine[y][x] {
		return
	}
	g.revealed[y][x] = true
	g.score += pointsPerCell
	if g.adjacent(x, y) > 0 {
		return
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dy != 0 {
				g.flood(x+dx, y+dy)
			}
		}
	}
}

func (g *Game) adjacent(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if nx >= 0 && nx < boardW && ny >= 0 && ny < boardH && g.mine[ny][nx] {
				n++
			}
		}
	}
	return n
}

func (g *Game) allClear() bool {
	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			if !g.mine[y][x] && !g.revealed[y][x] {
				return false
			}
		}
	}
	return true
}

func (g *Game) flagsUsed() int {
	n := 0
	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			if g.flagged[y][x] {
				n++
			}
		}
	}
	return n
}

// Update is a no-op: minesweeper only advances on input.
func (g *Game) Update(float64) {}

var countColors = []core.Color{
	core.ColorDefault, core.ColorBlue, core.ColorGreen, core.ColorRed,
	core.ColorMagenta, core.ColorYellow, core.ColorCyan, core.ColorWhite,
	core.ColorBrightRed,
}

func (g *Game) Draw(dst *core.Screen) {
	hud := fmt.Sprintf(" Minesweeper  Mines: %d  Flags: %d", mines, g.flagsUsed())
	dst.DrawTextColored(0, 0, hud, g.pal.Title)
	dst.DrawTextColored(0, 1, " move: arrows  reveal: space  flag: f", g.pal.Muted)

	offX := (dst.Width() - boardW*2) / 2
	offY := 3
	box := core.NewRect(offX-1, offY-1, boardW*2+2, boardH+2)
	dst.DrawBox(box, g.pal.Border)

	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			px, py := offX+x*2, offY+y
			ch := '·'
			col := g.pal.Muted
			switch {
			case g.revealed[y][x] && g.mine[y][x]:
				ch, col = '✹', g.pal.Danger
			case g.revealed[y][x]:
				n := g.adjacent(x, y)
				if n == 0 {
					ch, col = ' ', g.pal.Text
				} else {
					ch, col = rune('0'+n), countColors[n]
				}
			case g.flagged[y][x]:
				ch, col = '⚑', g.pal.Danger
			}
			dst.SetColored(px, py, ch, col)
			if x == g.curX && y == g.curY && !g.over {
				dst.SetColored(px-1, py, '[', g.pal.Accent)
				dst.SetColored(px+1, py, ']', g.pal.Accent)
			}
		}
	}
}

func (g *Game) DrawGameOver(dst *core.Screen, isNewHigh bool) {
	// Show the full board on loss.
	if !g.won {
		for y := 0; y < boardH; y++ {
			for x := 0; x < boardW; x++ {
				if g.mine[y][x] {
					g.revealed[y][x] = true
				}
			}
		}
	}
	g.Draw(dst)
	mid := dst.Height() - 3
	title := "BOOM!"
	if g.won {
		title = "FIELD CLEARED!"
	}
	dst.DrawTextCenteredColored(mid-1, title, g.pal.Accent)
	dst.DrawTextCenteredColored(mid, fmt.Sprintf("Final score: %d", g.score), g.pal.Text)
	if isNewHigh {
		dst.DrawTextCenteredColored(mid+1, "New high score!", g.pal.Good)
	}
}

func (g *Game) Status() engine.Status {
	return engine.Status{Score: g.score, Over: g.over, Won: g.won}
}

func (g *Game) Snapshot() map[string]any {
	return map[string]any{
		"score": g.score,
		"won":   g.won,
		"flags": g.flagsUsed(),
	}
}

type savedState struct {
	Mines    [boardH][boardW]bool `json:"mines"`
	Revealed [boardH][boardW]bool `json:"revealed"`
	Flagged  [boardH][boardW]bool `json:"flagged"`
	Placed   bool                 `json:"placed"`
	Score    int                  `json:"score"`
	CurX     int                  `json:"cur_x"`
	CurY     int                  `json:"cur_y"`
}

func (g *Game) Serialize() ([]byte, error) {
	return json.Marshal(savedState{
		Mines:    g.mine,
		Revealed: g.revealed,
		Flagged:  g.flagged,
		Placed:   g.placed,
		Score:    g.score,
		CurX:     g.curX,
		CurY:     g.curY,
	})
}

func (g *Game) Deserialize(payload []byte) error {
	var st savedState
	if err := json.Unmarshal(payload, &st); err != nil {
		return fmt.Errorf("minesweeper: corrupt save: %w", err)
	}
	g.mine = st.Mines
	g.revealed = st.Revealed
	g.flagged = st.Flagged
	g.placed = st.Placed
	g.score = st.Score
	g.curX = core.Clamp(st.CurX, 0, boardW-1)
	g.curY = core.Clamp(st.CurY, 0, boardH-1)
	g.over = false
	g.won = false
	return nil
}
