// Package t2048 implements the 2048 sliding-tile puzzle. Tiles with
// equal values merge when pushed together; the game is won at 2048 and
// keeps going until the board locks up.
package t2048

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
	boardSize = 4
	cellWidth = 7

	minHeight = 16
	minWidth  = 40
)

// Game implements the 2048 behavior. It is turn-based: Update is a
// no-op and all state changes happen in HandleInput.
type Game struct {
	rng     *rand.Rand
	pal     theme.Theme
	board   [boardSize][boardSize]int
	score   int
	maxTile int
	over    bool
	won     bool
	reached bool // 2048 already reached; keep playing
}

func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("t2048", func() engine.Behavior {
		return New()
	})
}

func (g *Game) ID() string          { return "t2048" }
func (g *Game) Title() string       { return "2048" }
func (g *Game) MinSize() (h, w int) { return minHeight, minWidth }

func (g *Game) Init(cfg engine.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.pal = cfg.Theme

	g.board = [boardSize][boardSize]int{}
	g.score = 0
	g.maxTile = 0
	g.over = false
	g.won = false
	g.reached = false
	g.spawn()
	g.spawn()
	return nil
}

// spawn places a 2 (90%) or 4 (10%) on a random empty cell.
func (g *Game) spawn() {
	var empty [][2]int
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if g.board[r][c] == 0 {
				empty = append(empty, [2]int{r, c})
			}
		}
	}
	if len(empty) == 0 {
		return
	}
	p := empty[g.rng.Intn(len(empty))]
	v := 2
	if g.rng.Float64() < 0.1 {
		v = 4
	}
	g.board[p[0]][p[1]] = v
	if v > g.maxTile {
		g.maxTile = v
	}
}

func (g *Game) HandleInput(ev core.KeyEvent) bool {
	var moved bool
	switch {
	case ev.Key == core.KeyUp || ev.Is('w'):
		moved = g.shift(0, -1)
	case ev.Key == core.KeyDown || ev.Is('s'):
		moved = g.shift(0, 1)
	case ev.Key == core.KeyLeft || ev.Is('a'):
		moved = g.shift(-1, 0)
	case ev.Key == core.KeyRight || ev.Is('d'):
		moved = g.shift(1, 0)
	default:
		return true
	}
	if moved {
		g.spawn()
		if !g.movePossible() {
			g.over = true
			g.won = g.reached
		}
	}
	return true
}

// shift pushes all tiles in the given direction, merging equal
// neighbors once per move. Returns whether anything changed.
func (g *Game) shift(dx, dy int) bool {
	moved := false
	for i := 0; i < boardSize; i++ {
		var line [boardSize]int
		for j := 0; j < boardSize; j++ {
			line[j] = g.read(i, j, dx, dy)
		}
		merged := mergeLine(line[:], &g.score)
		for j := 0; j < boardSize; j++ {
			if merged[j] != line[j] {
				moved = true
			}
			g.write(i, j, dx, dy, merged[j])
			if merged[j] > g.maxTile {
				g.maxTile = merged[j]
			}
		}
	}
	if g.maxTile >= 2048 {
		g.reached = true
	}
	return moved
}

// read/write address the board so that j==0 is the edge tiles slide
// toward, regardless of direction.
func (g *Game) read(i, j, dx, dy int) int {
	r, c := coords(i, j, dx, dy)
	return g.board[r][c]
}

func (g *Game) write(i, j, dx, dy, v int) {
	r, c := coords(i, j, dx, dy)
	g.board[r][c] = v
}

func coords(i, j, dx, dy int) (r, c int) {
	switch {
	case dx == -1: // left
		return i, j
	case dx == 1: // right
		return i, boardSize - 1 - j
	case dy == -1: // up
		return j, i
	default: // down
		return boardSize - 1 - j, i
	}
}

// mergeLine compacts a line toward index 0, merging equal adjacent
// pairs once and adding merge results to score.
func mergeLine(line []int, score *int) [boardSize]int {
	var packed []int
	for _, v := range line {
		if v != 0 {
			packed = append(packed, v)
		}
	}
	var out [boardSize]int
	k := 0
	for i := 0; i < len(packed); i++ {
		if i+1 < len(packed) && packed[i] == packed[i+1] {
			out[k] = packed[i] * 2
			*score += out[k]
			i++
		} else {
			out[k] = packed[i]
		}
		k++
	}
	return out
}

func (g *Game) movePossible() bool {
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if g.board[r][c] == 0 {
				return true
			}
			if c+1 < boardSize && g.board[r][c] == g.board[r][c+1] {
				return true
			}
			if r+1 < boardSize && g.board[r][c] == g.board[r+1][c] {
				return true
			}
		}
	}
	return false
}

var tileColors = map[int]func(t theme.Theme) core.Color{
	2:    func(t theme.Theme) core.Color { return t.Text },
	4:    func(t theme.Theme) core.Color { return t.Text },
	8:    func(t theme.Theme) core.Color { return t.Accent },
	16:   func(t theme.Theme) core.Color { return t.Accent },
	32:   func(t theme.Theme) core.Color { return t.Danger },
	64:   func(t theme.Theme) core.Color { return t.Danger },
	128:  func(t theme.Theme) core.Color { return t.Good },
	256:  func(t theme.Theme) core.Color { return t.Good },
	512:  func(t theme.Theme) core.Color { return t.Title },
	1024: func(t theme.Theme) core.Color { return t.Title },
}

func (g *Game) tileColor(v int) core.Color {
	if f, ok := tileColors[v]; ok {
		return f(g.pal)
	}
	return g.pal.Accent
}

func (g *Game) Draw(dst *core.Screen) {
	hud := fmt.Sprintf(" 2048  Score: %d  Best tile: %d", g.score, g.maxTile)
	dst.DrawTextColored(0, 0, hud, g.pal.Title)

	gridW := boardSize*cellWidth + 1
	gridH := boardSize*2 + 1
	offX := (dst.Width() - gridW) / 2
	offY := 2

	box := core.NewRect(offX, offY, gridW, gridH)
	dst.DrawBox(box, g.pal.Border)
	for r := 1; r < boardSize; r++ {
		dst.DrawHLine(offX+1, offY+r*2, gridW-2, '─', g.pal.Border)
	}
	for c := 1; c < boardSize; c++ {
		dst.DrawVLine(offX+c*cellWidth, offY+1, gridH-2, '│', g.pal.Border)
	}

	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			v := g.board[r][c]
			if v == 0 {
				continue
			}
			label := fmt.Sprintf("%d", v)
			x := offX + c*cellWidth + (cellWidth-len(label))/2 + 1
			y := offY + r*2 + 1
			dst.DrawTextColored(x, y, label, g.tileColor(v))
		}
	}

	if g.reached && !g.over {
		dst.DrawTextCenteredColored(offY+gridH+1, "2048 reached - keep going!", g.pal.Good)
	}
}

func (g *Game) DrawGameOver(dst *core.Screen, isNewHigh bool) {
	g.Draw(dst)
	mid := dst.Height() - 3
	title := "NO MOVES LEFT"
	if g.won {
		title = "YOU WIN!"
	}
	dst.DrawTextCenteredColored(mid-1, title, g.pal.Accent)
	dst.DrawTextCenteredColored(mid, fmt.Sprintf("Final score: %d", g.score), g.pal.Text)
	if isNewHigh {
		dst.DrawTextCenteredColored(mid+1, "New high score!", g.pal.Good)
	}
}

// Update is a no-op: 2048 only advances on input.
func (g *Game) Update(float64) {}

func (g *Game) Status() engine.Status {
	return engine.Status{Score: g.score, Over: g.over, Won: g.won}
}

func (g *Game) Snapshot() map[string]any {
	return map[string]any{
		"score":    g.score,
		"won":      g.won,
		"max_tile": g.maxTile,
	}
}

type savedState struct {
	Board   [boardSize][boardSize]int `json:"board"`
	Score   int                       `json:"score"`
	MaxTile int                       `json:"max_tile"`
	Reached bool                      `json:"reached"`
}

func (g *Game) Serialize() ([]byte, error) {
	return json.Marshal(savedState{
		Board:   g.board,
		Score:   g.score,
		MaxTile: g.maxTile,
		Reached: g.reached,
	})
}

func (g *Game) Deserialize(payload []byte) error {
	var st savedState
	if err := json.Unmarshal(payload, &st); err != nil {
		return fmt.Errorf("t2048: corrupt save: %w", err)
	}
	if st.MaxTile == 0 {
		return fmt.Errorf("t2048: save missing board state")
	}
	g.board = st.Board
	g.score = st.Score
	g.maxTile = st.MaxTile
	g.reached = st.Reached
	g.over = false
	g.won = false
	return nil
}
