// Package breakout implements the brick-breaking game: keep the ball
// in play with the paddle and clear the wall.
package breakout

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
	minHeight = 18
	minWidth  = 50

	hudHeight = 2

	startLives  = 3
	brickRows   = 5
	brickWidth  = 5
	paddleWidth = 8

	paddleSpeed = 30.0
	ballSpeed   = 16.0
	ballSpeedX  = 20.0
)

// Game implements the breakout behavior.
type Game struct {
	rng  *rand.Rand
	pal  theme.Theme
	w, h int
	offX int
	offY int

	bricks  [][]bool // [row][col]
	cols    int
	paddleX float64
	dirHeld float64
	ballX   float64
	ballY   float64
	velX    float64
	velY    float64
	stuck   bool // ball waiting on the paddle for launch

	score int
	lives int
	over  bool
	won   bool
}

func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("breakout", func() engine.Behavior {
		return New()
	})
}

func (g *Game) ID() string          { return "breakout" }
func (g *Game) Title() string       { return "Breakout" }
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
	if g.w < 20 || g.h < 12 {
		return fmt.Errorf("breakout: field %dx%d too small", g.w, g.h)
	}

	g.cols = g.w / brickWidth
	g.bricks = make([][]bool, brickRows)
	for r := range g.bricks {
		g.bricks[r] = make([]bool, g.cols)
		for c := range g.bricks[r] {
			g.bricks[r][c] = true
		}
	}

	g.score = 0
	g.lives = startLives
	g.over = false
	g.won = false
	g.resetBall()
	return nil
}

func (g *Game) resetBall() {
	g.paddleX = float64(g.w-paddleWidth) / 2
	g.ballX = g.paddleX + float64(paddleWidth)/2
	g.ballY = float64(g.h - 2)
	g.velX = ballSpeedX * (g.rng.Float64() - 0.5)
	g.velY = -ballSpeed
	g.stuck = true
	g.dirHeld = 0
}

func (g *Game) HandleInput(ev core.KeyEvent) bool {
	switch {
	case ev.Key == core.KeyLeft || ev.Is('a'):
		g.dirHeld = -1
	case ev.Key == core.KeyRight || ev.Is('d'):
		g.dirHeld = 1
	case ev.Key == core.KeySpace:
		if g.stuck {
			g.stuck = false
		} else {
			g.dirHeld = 0
		}
	}
	return true
}

func (g *Game) Update(dt float64) {
	g.paddleX += g.dirHeld * paddleSpeed * dt
	g.paddleX = core.ClampF(g.paddleX, 0, float64(g.w-paddleWidth))

	if g.stuck {
		g.ballX = g.paddleX + float64(paddleWidth)/2
		return
	}

	g.ballX += g.velX * dt
	g.ballY += g.velY * dt

	if g.ballX < 0 {
		g.ballX = -g.ballX
		g.velX = -g.velX
	}
	if g.ballX > float64(g.w-1) {
		g.ballX = 2*float64(g.w-1) - g.ballX
		g.velX = -g.velX
	}
	if g.ballY < 0 {
		g.ballY = -g.ballY
		g.velY = -g.velY
	}

	// Paddle catch on the bottom row.
	if g.ballY >= float64(g.h-1) && g.velY > 0 {
		if g.ballX >= g.paddleX-0.5 && g.ballX <= g.paddleX+paddleWidth-0.5 {
			g.velY = -g.velY
			g.ballY = float64(g.h - 1)
			offset := (g.ballX - g.paddleX - float64(paddleWidth)/2) / (float64(paddleWidth) / 2)
			g.velX = ballSpeedX * offset
		} else if g.ballY > float64(g.h) {
			g.loseLife()
			return
		}
	}

	g.collideBricks()
}

func (g *Game) collideBricks() {
	row := int(g.ballY)
	col := int(g.ballX) / brickWidth
	if row < 0 || row >= brickRows || col < 0 || col >= g.cols {
		return
	}
	if !g.bricks[row][col] {
		return
	}
	g.bricks[row][col] = false
	// Higher rows are worth more.
	g.score += (brickRows - row) * 10
	g.velY = -g.velY

	if g.remaining() == 0 {
		g.over = true
		g.won = true
	}
}

func (g *Game) remaining() int {
	n := 0
	for _, row := range g.bricks {
		for _, b := range row {
			if b {
				n++
			}
		}
	}
	return n
}

func (g *Game) loseLife() {
	g.lives--
	if g.lives <= 0 {
		g.over = true
		return
	}
	g.resetBall()
}

func (g *Game) Draw(dst *core.Screen) {
	hud := fmt.Sprintf(" Breakout  Score: %d  Lives: %d  Bricks: %d",
		g.score, g.lives, g.remaining())
	dst.DrawTextColored(0, 0, hud, g.pal.Title)
	dst.DrawHLine(0, hudHeight-1, dst.Width(), '─', g.pal.Border)

	field := core.NewRect(g.offX-1, g.offY-1, g.w+2, g.h+2)
	dst.DrawBox(field, g.pal.Border)

	rowColors := []core.Color{g.pal.Danger, g.pal.Accent, g.pal.Title, g.pal.Good, g.pal.Text}
	for r, row := range g.bricks {
		for c, alive := range row {
			if !alive {
				continue
			}
			for i := 0; i < brickWidth-1; i++ {
				dst.SetColored(g.offX+c*brickWidth+i, g.offY+r, '▄', rowColors[r%len(rowColors)])
			}
		}
	}

	for i := 0; i < paddleWidth; i++ {
		dst.SetColored(g.offX+int(g.paddleX)+i, g.offY+g.h-1, '▀', g.pal.Good)
	}
	dst.SetColored(g.offX+int(g.ballX), g.offY+int(g.ballY), '●', g.pal.Accent)

	if g.stuck {
		dst.DrawTextCenteredColored(g.offY+g.h/2, "Press SPACE to launch", g.pal.Muted)
	}
}

func (g *Game) DrawGameOver(dst *core.Screen, isNewHigh bool) {
	g.Draw(dst)
	mid := dst.Height() / 2
	title := "GAME OVER"
	if g.won {
		title = "WALL CLEARED!"
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
		"lives":  g.lives,
		"bricks": g.remaining(),
	}
}

type savedState struct {
	Bricks  [][]bool `json:"bricks"`
	PaddleX float64  `json:"paddle_x"`
	BallX   float64  `json:"ball_x"`
	BallY   float64  `json:"ball_y"`
	VelX    float64  `json:"vel_x"`
	VelY    float64  `json:"vel_y"`
	Stuck   bool     `json:"stuck"`
	Score   int      `json:"score"`
	Lives   int      `json:"lives"`
}

func (g *Game) Serialize() ([]byte, error) {
	return json.Marshal(savedState{
		Bricks:  g.bricks,
		PaddleX: g.paddleX,
		BallX:   g.ballX,
		BallY:   g.ballY,
		VelX:    g.velX,
		VelY:    g.velY,
		Stuck:   g.stuck,
		Score:   g.score,
		Lives:   g.lives,
	})
}

func (g *Game) Deserialize(payload []byte) error {
	var st savedState
	if err := json.Unmarshal(payload, &st); err != nil {
		return fmt.Errorf("breakout: corrupt save: %w", err)
	}
	if len(st.Bricks) == 0 || st.Lives <= 0 {
		return fmt.Errorf("breakout: save missing field state")
	}
	g.bricks = st.Bricks
	if len(g.bricks) > 0 {
		g.cols = len(g.bricks[0])
	}
	g.paddleX = st.PaddleX
	g.ballX = st.BallX
	g.ballY = st.BallY
	g.velX = st.VelX
	g.velY = st.VelY
	g.stuck = st.Stuck
	g.score = st.Score
	g.lives = st.Lives
	g.over = false
	g.won = false
	return nil
}
