package pong

import (
	"testing"

	"github.com/Querulantenkind/cli-game-collection/internal/engine"
)

func testGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	cfg := engine.DefaultConfig()
	cfg.Width = 80
	cfg.Height = 24
	cfg.Seed = 1
	if err := g.Init(cfg); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestMatchEndsAtFive(t *testing.T) {
	g := testGame(t)

	for i := 0; i < winningScore-1; i++ {
		g.point(true)
	}
	if g.over {
		t.Fatal("match over before reaching the winning score")
	}
	g.point(true)
	if !g.over || !g.won {
		t.Errorf("over=%v won=%v at %d points", g.over, g.won, winningScore)
	}
}

func TestOpponentWinEndsMatch(t *testing.T) {
	g := testGame(t)

	for i := 0; i < winningScore; i++ {
		g.point(false)
	}
	if !g.over || g.won {
		t.Errorf("over=%v won=%v after conceding %d", g.over, g.won, winningScore)
	}
	snap := g.Snapshot()
	if snap["opponent_score"] != winningScore {
		t.Errorf("opponent_score = %v", snap["opponent_score"])
	}
}

func TestBounceSkewsByPaddleOffset(t *testing.T) {
	g := testGame(t)
	g.velX = -ballSpeedX

	// Hit at the paddle center: flat return.
	g.ballY = g.playerY + float64(paddleSize)/2
	g.bounce(g.playerY)
	if g.velX <= 0 {
		t.Error("ball not reflected")
	}
	if g.velY != 0 {
		t.Errorf("center hit velY = %v, want 0", g.velY)
	}

	// Hit near the top edge: upward skew.
	g.velX = -ballSpeedX
	g.ballY = g.playerY
	g.bounce(g.playerY)
	if g.velY >= 0 {
		t.Errorf("edge hit velY = %v, want negative", g.velY)
	}
}

func TestWallBounceKeepsBallInCourt(t *testing.T) {
	g := testGame(t)
	g.serveDelay = 0
	g.velY = -40

	for i := 0; i < 200; i++ {
		g.Update(0.02)
		if g.over {
			break
		}
		if g.ballY < -1 || g.ballY > float64(g.h) {
			t.Fatalf("ball escaped vertically: y=%v", g.ballY)
		}
	}
}
