// Package snake implements the classic snake game: steer the snake to
// the food, grow, and avoid walls and your own tail.
package snake

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

// Direction is the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point is a cell coordinate on the playing field.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

const (
	minHeight = 15
	minWidth  = 40

	hudHeight = 2

	// Seconds between snake moves at normal speed; speed and
	// difficulty scaling happens in the effective delta-time.
	moveInterval = 0.12

	pointsPerFood = 10
	winLength     = 50
)

// Game implements the snake behavior.
type Game struct {
	rng   *rand.Rand
	pal   theme.Theme
	w, h  int // playing field size, excluding HUD and border
	offX  int
	offY  int
	snake []Point // head first
	dir   Direction
	next  Direction
	grow  int
	food  Point
	score int
	over  bool
	won   bool
	acc   float64
}

func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() engine.Behavior {
		return New()
	})
}

func (g *Game) ID() string    { return "snake" }
func (g *Game) Title() string { return "Snake" }

func (g *Game) MinSize() (h, w int) { return minHeight, minWidth }

func (g *Game) Init(cfg engine.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.pal = cfg.Theme

	g.w = cfg.Width - 2
	g.h = cfg.Height - hudHeight - 2
	g.offX = 1
	g.offY = hudHeight + 1
	if g.w < 10 || g.h < 6 {
		return fmt.Errorf("snake: field %dx%d too small", g.w, g.h)
	}

	cx, cy := g.w/2, g.h/2
	g.snake = []Point{{cx, cy}, {cx - 1, cy}, {cx - 2, cy}}
	g.dir = DirRight
	g.next = DirRight
	g.grow = 0
	g.score = 0
	g.over = false
	g.won = false
	g.acc = 0
	g.spawnFood()
	return nil
}

func (g *Game) HandleInput(ev core.KeyEvent) bool {
	var d Direction
	switch {
	case ev.Key == core.KeyUp || ev.Is('w'):
		d = DirUp
	case ev.Key == core.KeyDown || ev.Is('s'):
		d = DirDown
	case ev.Key == core.KeyLeft || ev.Is('a'):
		d = DirLeft
	case ev.Key == core.KeyRight || ev.Is('d'):
		d = DirRight
	default:
		return true
	}
	// No instant reversal.
	if !opposite(d, g.dir) {
		g.next = d
	}
	return true
}

func opposite(a, b Direction) bool {
	return (a == DirUp && b == DirDown) ||
		(a == DirDown && b == DirUp) ||
		(a == DirLeft && b == DirRight) ||
		(a == DirRight && b == DirLeft)
}

func (g *Game) Update(dt float64) {
	g.acc += dt
	for g.acc >= moveInterval && !g.over {
		g.acc -= moveInterval
		g.step()
	}
}

func (g *Game) step() {
	g.dir = g.next
	head := g.snake[0]
	switch g.dir {
	case DirUp:
		head.Y--
	case DirDown:
		head.Y++
	case DirLeft:
		head.X--
	case DirRight:
		head.X++
	}

	if head.X < 0 || head.X >= g.w || head.Y < 0 || head.Y >= g.h {
		g.over = true
		return
	}
	// The tail cell is vacated this move unless the snake grows.
	checkLen := len(g.snake)
	if g.grow == 0 {
		checkLen--
	}
	for i := 0; i < checkLen; i++ {
		if g.snake[i] == head {
			g.over = true
			return
		}
	}

	g.snake = append([]Point{head}, g.snake...)
	if head == g.food {
		g.score += pointsPerFood
		g.grow++
		g.spawnFood()
	}
	if g.grow > 0 {
		g.grow--
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	if len(g.snake) >= winLength {
		g.over = true
		g.won = true
	}
}

func (g *Game) spawnFood() {
	var empty []Point
	occupied := make(map[Point]bool, len(g.snake))
	for _, p := range g.snake {
		occupied[p] = true
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if p := (Point{x, y}); !occupied[p] {
				empty = append(empty, p)
			}
		}
	}
	if len(empty) == 0 {
		g.food = Point{-1, -1}
		return
	}
	g.food = empty[g.rng.Intn(len(empty))]
}

func (g *Game) Draw(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake  Score: %d  Length: %d", g.score, len(g.snake))
	dst.DrawTextColored(0, 0, hud, g.pal.Title)
	dst.DrawHLine(0, hudHeight-1, dst.Width(), '─', g.pal.Border)

	field := core.NewRect(g.offX-1, g.offY-1, g.w+2, g.h+2)
	dst.DrawBox(field, g.pal.Border)

	if g.food.X >= 0 {
		dst.SetColored(g.offX+g.food.X, g.offY+g.food.Y, '*', g.pal.Danger)
	}
	for i, seg := range g.snake {
		ch := 'o'
		if i == 0 {
			ch = 'O'
		}
		dst.SetColored(g.offX+seg.X, g.offY+seg.Y, ch, g.pal.Good)
	}
}

func (g *Game) DrawGameOver(dst *core.Screen, isNewHigh bool) {
	g.Draw(dst)
	mid := dst.Height() / 2
	title := "GAME OVER"
	if g.won {
		title = "YOU WIN!"
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
		"score":  g.score,
		"won":    g.won,
		"length": len(g.snake),
	}
}

type savedState struct {
	Snake []Point   `json:"snake"`
	Dir   Direction `json:"dir"`
	Food  Point     `json:"food"`
	Score int       `json:"score"`
	Grow  int       `json:"grow"`
	W     int       `json:"w"`
	H     int       `json:"h"`
}

func (g *Game) Serialize() ([]byte, error) {
	return json.Marshal(savedState{
		Snake: g.snake,
		Dir:   g.dir,
		Food:  g.food,
		Score: g.score,
		Grow:  g.grow,
		W:     g.w,
		H:     g.h,
	})
}

func (g *Game) Deserialize(payload []byte) error {
	var st savedState
	if err := json.Unmarshal(payload, &st); err != nil {
		return fmt.Errorf("snake: corrupt save: %w", err)
	}
	if len(st.Snake) == 0 || st.W <= 0 || st.H <= 0 {
		return fmt.Errorf("snake: save missing snake state")
	}
	g.snake = st.Snake
	g.dir = st.Dir
	g.next = st.Dir
	g.food = st.Food
	g.score = st.Score
	g.grow = st.Grow
	g.over = false
	g.won = false
	return nil
}
