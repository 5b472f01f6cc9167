// Package pong implements single-player pong against a tracking
// computer paddle. First to five points wins the match.
package pong

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
	minHeight = 16
	minWidth  = 50

	hudHeight = 2

	winningScore = 5
	paddleSize   = 4

	paddleSpeed   = 18.0 // rows per second
	opponentSpeed = 10.0
	ballSpeedX    = 22.0 // columns per second
	ballSpeedY    = 9.0
)

// Game implements the pong behavior. Positions are floats so movement
// stays smooth under variable delta-time.
type Game struct {
	rng  *rand.Rand
	pal  theme.Theme
	w, h int // court size inside the border
	offX int
	offY int

	playerY   float64
	oppY      float64
	ballX     float64
	ballY     float64
	velX      float64
	velY      float64
	playerVel float64 // -1, 0, 1: held direction from the last input

	playerScore   int
	opponentScore int
	over          bool
	won           bool
	serveDelay    float64
}

func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("pong", func() engine.Behavior {
		return New()
	})
}

func (g *Game) ID() string          { return "pong" }
func (g *Game) Title() string       { return "Pong" }
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
	if g.w < 20 || g.h < 8 {
		return fmt.Errorf("pong: court %dx%d too small", g.w, g.h)
	}

	g.playerScore = 0
	g.opponentScore = 0
	g.over = false
	g.won = false
	g.playerY = float64(g.h-paddleSize) / 2
	g.oppY = g.playerY
	g.serve(g.rng.Intn(2) == 0)
	return nil
}

// serve resets the ball to center, moving toward the side that lost
// the point, after a short pause.
func (g *Game) serve(towardPlayer bool) {
	g.ballX = float64(g.w) / 2
	g.ballY = float64(g.h) / 2
	g.velX = ballSpeedX
	if towardPlayer {
		g.velX = -ballSpeedX
	}
	g.velY = ballSpeedY * (g.rng.Float64()*2 - 1)
	g.serveDelay = 0.8
}

func (g *Game) HandleInput(ev core.KeyEvent) bool {
	switch {
	case ev.Key == core.KeyUp || ev.Is('w'):
		g.playerVel = -1
	case ev.Key == core.KeyDown || ev.Is('s'):
		g.playerVel = 1
	case ev.Key == core.KeySpace:
		g.playerVel = 0
	}
	return true
}

func (g *Game) Update(dt float64) {
	g.playerY += g.playerVel * paddleSpeed * dt
	g.playerY = core.ClampF(g.playerY, 0, float64(g.h-paddleSize))

	// Opponent tracks the ball center.
	target := g.ballY - float64(paddleSize)/2
	if g.oppY < target {
		g.oppY = min(g.oppY+opponentSpeed*dt, target)
	} else {
		g.oppY = max(g.oppY-opponentSpeed*dt, target)
	}
	g.oppY = core.ClampF(g.oppY, 0, float64(g.h-paddleSize))

	if g.serveDelay > 0 {
		g.serveDelay -= dt
		return
	}

	g.ballX += g.velX * dt
	g.ballY += g.velY * dt

	if g.ballY < 0 {
		g.ballY = -g.ballY
		g.velY = -g.velY
	}
	if g.ballY > float64(g.h-1) {
		g.ballY = 2*float64(g.h-1) - g.ballY
		g.velY = -g.velY
	}

	// Player paddle on the left column, opponent on the right.
	if g.ballX <= 1 && g.velX < 0 {
		if g.paddleHit(g.playerY) {
			g.bounce(g.playerY)
			g.ballX = 1
		} else if g.ballX < 0 {
			g.point(false)
		}
	}
	if g.ballX >= float64(g.w-2) && g.velX > 0 {
		if g.paddleHit(g.oppY) {
			g.bounce(g.oppY)
			g.ballX = float64(g.w - 2)
		} else if g.ballX > float64(g.w-1) {
			g.point(true)
		}
	}
}

func (g *Game) paddleHit(paddleY float64) bool {
	return g.ballY >= paddleY-0.5 && g.ballY <= paddleY+paddleSize-0.5
}

// bounce reverses the ball and skews its vertical speed by where on
// the paddle it landed.
func (g *Game) bounce(paddleY float64) {
	g.velX = -g.velX
	offset := (g.ballY - paddleY - float64(paddleSize)/2) / (float64(paddleSize) / 2)
	g.velY = ballSpeedY * offset
}

func (g *Game) point(player bool) {
	if player {
		g.playerScore++
	} else {
		g.opponentScore++
	}
	if g.playerScore >= winningScore || g.opponentScore >= winningScore {
		g.over = true
		g.won = g.playerScore > g.opponentScore
		return
	}
	g.serve(!player)
}

func (g *Game) Draw(dst *core.Screen) {
	hud := fmt.Sprintf(" Pong  You: %d  CPU: %d  (first to %d)",
		g.playerScore, g.opponentScore, winningScore)
	dst.DrawTextColored(0, 0, hud, g.pal.Title)
	dst.DrawHLine(0, hudHeight-1, dst.Width(), '─', g.pal.Border)

	court := core.NewRect(g.offX-1, g.offY-1, g.w+2, g.h+2)
	dst.DrawBox(court, g.pal.Border)
	for y := 0; y < g.h; y += 2 {
		dst.SetColored(g.offX+g.w/2, g.offY+y, '┆', g.pal.Muted)
	}

	for i := 0; i < paddleSize; i++ {
		dst.SetColored(g.offX, g.offY+int(g.playerY)+i, '█', g.pal.Good)
		dst.SetColored(g.offX+g.w-1, g.offY+int(g.oppY)+i, '█', g.pal.Danger)
	}
	dst.SetColored(g.offX+int(g.ballX), g.offY+int(g.ballY), '●', g.pal.Accent)
}

func (g *Game) DrawGameOver(dst *core.Screen, isNewHigh bool) {
	g.Draw(dst)
	mid := dst.Height() / 2
	title := "YOU LOSE"
	if g.won {
		title = "YOU WIN!"
	}
	dst.DrawTextCenteredColored(mid-1, title, g.pal.Accent)
	dst.DrawTextCenteredColored(mid, fmt.Sprintf("%d : %d", g.playerScore, g.opponentScore), g.pal.Text)
	if isNewHigh {
		dst.DrawTextCenteredColored(mid+1, "New high score!", g.pal.Good)
	}
}

func (g *Game) Status() engine.Status {
	return engine.Status{Score: g.playerScore, Over: g.over, Won: g.won}
}

func (g *Game) Snapshot() map[string]any {
	return map[string]any{
		"score":          g.playerScore,
		"won":            g.won,
		"player_score":   g.playerScore,
		"opponent_score": g.opponentScore,
	}
}

type savedState struct {
	PlayerY       float64 `json:"player_y"`
	OppY          float64 `json:"opp_y"`
	BallX         float64 `json:"ball_x"`
	BallY         float64 `json:"ball_y"`
	VelX          float64 `json:"vel_x"`
	VelY          float64 `json:"vel_y"`
	PlayerScore   int     `json:"player_score"`
	OpponentScore int     `json:"opponent_score"`
}

func (g *Game) Serialize() ([]byte, error) {
	return json.Marshal(savedState{
		PlayerY:       g.playerY,
		OppY:          g.oppY,
		BallX:         g.ballX,
		BallY:         g.ballY,
		VelX:          g.velX,
		VelY:          g.velY,
		PlayerScore:   g.playerScore,
		OpponentScore: g.opponentScore,
	})
}

func (g *Game) Deserialize(payload []byte) error {
	var st savedState
	if err := json.Unmarshal(payload, &st); err != nil {
		return fmt.Errorf("pong: corrupt save: %w", err)
	}
	if st.VelX == 0 {
		return fmt.Errorf("pong: save missing ball state")
	}
	g.playerY = st.PlayerY
	g.oppY = st.OppY
	g.ballX = st.BallX
	g.ballY = st.BallY
	g.velX = st.VelX
	g.velY = st.VelY
	g.playerScore = st.PlayerScore
	g.opponentScore = st.OpponentScore
	g.over = false
	g.won = false
	g.serveDelay = 0.5
	return nil
}
