// Package sudoku implements the number-placement puzzle: fill the 9x9
// grid so every row, column and box holds the digits 1-9. Three wrong
// placements end the game.
package sudoku

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
	gridSize = 9
	boxSize  = 3

	minHeight = 20
	minWidth  = 46

	maxMistakes = 3
	maxHints    = 3

	baseScore      = 1000
	timeBonusCap   = 500
	mistakePenalty = 100
	hintPenalty    = 50
	removedEasy    = 30
	removedNormal  = 40
	removedHard    = 50
)

// Game implements the sudoku behavior. Turn-based: Update only
// accumulates solve time.
type Game struct {
	rng *rand.Rand
	pal theme.Theme

	grid     [gridSize][gridSize]int
	solution [gridSize][gridSize]int
	fixed    [gridSize][gridSize]bool
	curX     int
	curY     int

	mistakes int
	hints    int
	elapsed  float64
	score    int
	over     bool
	won      bool
}

func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("sudoku", func() engine.Behavior {
		return New()
	})
}

func (g *Game) ID() string          { return "sudoku" }
func (g *Game) Title() string       { return "Sudoku" }
func (g *Game) MinSize() (h, w int) { return minHeight, minWidth }

func (g *Game) Init(cfg engine.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.pal = cfg.Theme

	g.curX, g.curY = 0, 0
	g.mistakes = 0
	g.hints = 0
	g.elapsed = 0
	g.score = 0
	g.over = false
	g.won = false

	g.generate(removedFor(cfg.Difficulty))
	return nil
}

// removedFor maps the difficulty factor to the number of blanked cells.
func removedFor(difficulty float64) int {
	switch {
	case difficulty > 0 && difficulty < 1:
		return removedEasy
	case difficulty > 1:
		return removedHard
	default:
		return removedNormal
	}
}

// generate builds a full valid grid, keeps it as the solution, then
// blanks cells to form the puzzle.
func (g *Game) generate(removed int) {
	g.grid = [gridSize][gridSize]int{}

	// The diagonal boxes are independent; seeding them randomly before
	// backtracking varies the puzzle.
	for box := 0; box < gridSize; box += boxSize {
		g.fillBox(box, box)
	}
	g.fillFrom(0)
	g.solution = g.grid

	for removed > 0 {
		r := g.rng.Intn(gridSize)
		c := g.rng.Intn(gridSize)
		if g.grid[r][c] != 0 {
			g.grid[r][c] = 0
			removed--
		}
	}
	for r := 0; r < gridSize; r++ {
		for c := 0; c < gridSize; c++ {
			g.fixed[r][c] = g.grid[r][c] != 0
		}
	}
}

func (g *Game) fillBox(row, col int) {
	nums := g.rng.Perm(gridSize)
	for i := 0; i < boxSize; i++ {
		for j := 0; j < boxSize; j++ {
			g.grid[row+i][col+j] = nums[i*boxSize+j] + 1
		}
	}
}

// fillFrom completes the grid by backtracking over cells in order.
func (g *Game) fillFrom(pos int) bool {
	if pos == gridSize*gridSize {
		return true
	}
	r, c := pos/gridSize, pos%gridSize
	if g.grid[r][c] != 0 {
		return g.fillFrom(pos + 1)
	}
	for _, n := range g.rng.Perm(gridSize) {
		v := n + 1
		if g.safe(r, c, v) {
			g.grid[r][c] = v
			if g.fillFrom(pos + 1) {
				return true
			}
			g.grid[r][c] = 0
		}
	}
	return false
}

func (g *Game) safe(row, col, v int) bool {
	for i := 0; i < gridSize; i++ {
		if g.grid[row][i] == v || g.grid[i][col] == v {
			return false
		}
	}
	br, bc := row/boxSize*boxSize, col/boxSize*boxSize
	for i := br; i < br+boxSize; i++ {
		for j := bc; j < bc+boxSize; j++ {
			if g.grid[i][j] == v {
				return false
			}
		}
	}
	return true
}

func (g *Game) HandleInput(ev core.KeyEvent) bool {
	switch {
	case ev.Key == core.KeyUp || ev.Is('w'):
		g.curY = core.Clamp(g.curY-1, 0, gridSize-1)
	case ev.Key == core.KeyDown || ev.Is('s'):
		g.curY = core.Clamp(g.curY+1, 0, gridSize-1)
	case ev.Key == core.KeyLeft || ev.Is('a'):
		g.curX = core.Clamp(g.curX-1, 0, gridSize-1)
	case ev.Key == core.KeyRight || ev.Is('d'):
		g.curX = core.Clamp(g.curX+1, 0, gridSize-1)
	case ev.Key == core.KeyRune && ev.Rune >= '1' && ev.Rune <= '9':
		g.place(int(ev.Rune - '0'))
	case ev.Key == core.KeySpace || ev.Key == core.KeyBackspace || ev.Is('0'):
		g.clearCell()
	case ev.Is('h'):
		g.useHint()
	}
	return true
}

func (g *Game) place(v int) {
	if g.fixed[g.curY][g.curX] {
		return
	}
	g.grid[g.curY][g.curX] = v
	if v != g.solution[g.curY][g.curX] {
		g.mistakes++
		if g.mistakes >= maxMistakes {
			g.over = true
		}
		return
	}
	if g.complete() {
		g.finish()
	}
}

func (g *Game) clearCell() {
	if !g.fixed[g.curY][g.curX] {
		g.grid[g.curY][g.curX] = 0
	}
}

// useHint fills the cursor cell from the solution, up to three times.
func (g *Game) useHint() {
	if g.hints >= maxHints || g.fixed[g.curY][g.curX] {
		return
	}
	if g.grid[g.curY][g.curX] == g.solution[g.curY][g.curX] {
		return
	}
	g.grid[g.curY][g.curX] = g.solution[g.curY][g.curX]
	g.hints++
	if g.complete() {
		g.finish()
	}
}

func (g *Game) complete() bool {
	return g.grid == g.solution
}

// finish scores the solved puzzle: faster, cleaner solves are worth
// more.
func (g *Game) finish() {
	bonus := timeBonusCap - int(g.elapsed/2)
	if bonus < 0 {
		bonus = 0
	}
	g.score = baseScore + bonus - g.mistakes*mistakePenalty - g.hints*hintPenalty
	if g.score < 0 {
		g.score = 0
	}
	g.won = true
	g.over = true
}

// Update only tracks solve time; the puzzle advances on input.
func (g *Game) Update(dt float64) {
	if !g.over {
		g.elapsed += dt
	}
}

func (g *Game) Draw(dst *core.Screen) {
	hud := fmt.Sprintf(" Sudoku  Mistakes: %d/%d  Hints left: %d",
		g.mistakes, maxMistakes, maxHints-g.hints)
	dst.DrawTextColored(0, 0, hud, g.pal.Title)
	dst.DrawTextColored(0, 1, " move: arrows  place: 1-9  clear: space  hint: h", g.pal.Muted)

	gridW := gridSize*2 + 2*2 // cells plus two box gaps
	offX := (dst.Width() - gridW) / 2
	offY := 3
	box := core.NewRect(offX-2, offY-1, gridW+4, gridSize+2+2)
	dst.DrawBox(box, g.pal.Border)

	for r := 0; r < gridSize; r++ {
		py := offY + r + r/boxSize
		for c := 0; c < gridSize; c++ {
			px := offX + c*2 + (c/boxSize)*2
			v := g.grid[r][c]
			ch := '·'
			col := g.pal.Muted
			switch {
			case v != 0 && g.fixed[r][c]:
				ch, col = rune('0'+v), g.pal.Text
			case v != 0 && v == g.solution[r][c]:
				ch, col = rune('0'+v), g.pal.Good
			case v != 0:
				ch, col = rune('0'+v), g.pal.Danger
			}
			dst.SetColored(px, py, ch, col)
			if c == g.curX && r == g.curY && !g.over {
				dst.SetColored(px-1, py, '[', g.pal.Accent)
				dst.SetColored(px+1, py, ']', g.pal.Accent)
			}
		}
	}
}

func (g *Game) DrawGameOver(dst *core.Screen, isNewHigh bool) {
	g.Draw(dst)
	mid := dst.Height() - 3
	title := "TOO MANY MISTAKES"
	if g.won {
		title = "PUZZLE SOLVED!"
	}
	dst.DrawTextCenteredColored(mid-1, title, g.pal.Accent)
	dst.DrawTextCenteredColored(mid,
		fmt.Sprintf("Final score: %d  Time: %ds", g.score, int(g.elapsed)), g.pal.Text)
	if isNewHigh {
		dst.DrawTextCenteredColored(mid+1, "New high score!", g.pal.Good)
	}
}

func (g *Game) Status() engine.Status {
	return engine.Status{Score: g.score, Over: g.over, Won: g.won}
}

func (g *Game) Snapshot() map[string]any {
	return map[string]any{
		"score":      g.score,
		"won":        g.won,
		"mistakes":   g.mistakes,
		"hints_used": g.hints,
	}
}

type savedState struct {
	Grid     [gridSize][gridSize]int  `json:"grid"`
	Solution [gridSize][gridSize]int  `json:"solution"`
	Fixed    [gridSize][gridSize]bool `json:"fixed"`
	CurX     int                      `json:"cur_x"`
	CurY     int                      `json:"cur_y"`
	Mistakes int                      `json:"mistakes"`
	Hints    int                      `json:"hints"`
	Elapsed  float64                  `json:"elapsed"`
}

func (g *Game) Serialize() ([]byte, error) {
	return json.Marshal(savedState{
		Grid:     g.grid,
		Solution: g.solution,
		Fixed:    g.fixed,
		CurX:     g.curX,
		CurY:     g.curY,
		Mistakes: g.mistakes,
		Hints:    g.hints,
		Elapsed:  g.elapsed,
	})
}

func (g *Game) Deserialize(payload []byte) error {
	var st savedState
	if err := json.Unmarshal(payload, &st); err != nil {
		return fmt.Errorf("sudoku: corrupt save: %w", err)
	}
	var empty [gridSize][gridSize]int
	if st.Solution == empty {
		return fmt.Errorf("sudoku: save missing puzzle state")
	}
	g.grid = st.Grid
	g.solution = st.Solution
	g.fixed = st.Fixed
	g.curX = core.Clamp(st.CurX, 0, gridSize-1)
	g.curY = core.Clamp(st.CurY, 0, gridSize-1)
	g.mistakes = st.Mistakes
	g.hints = st.Hints
	g.elapsed = st.Elapsed
	g.over = false
	g.won = false
	return nil
}
