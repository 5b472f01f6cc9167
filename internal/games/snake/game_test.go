package snake

import (
	"testing"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
	"github.com/Querulantenkind/cli-game-collection/internal/engine"
)

func testConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Width = 80
	cfg.Height = 24
	cfg.Seed = 12345
	return cfg
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs evolve identically.
	g1, g2 := New(), New()
	if err := g1.Init(testConfig()); err != nil {
		t.Fatal(err)
	}
	if err := g2.Init(testConfig()); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		if i == 20 {
			g1.HandleInput(core.KeyEvent{Key: core.KeyDown})
			g2.HandleInput(core.KeyEvent{Key: core.KeyDown})
		}
		if i == 40 {
			g1.HandleInput(core.KeyEvent{Key: core.KeyLeft})
			g2.HandleInput(core.KeyEvent{Key: core.KeyLeft})
		}
		g1.Update(0.05)
		g2.Update(0.05)
	}

	if g1.score != g2.score {
		t.Errorf("score mismatch: %d vs %d", g1.score, g2.score)
	}
	if g1.snake[0] != g2.snake[0] {
		t.Errorf("head mismatch: %v vs %v", g1.snake[0], g2.snake[0])
	}
	if g1.food != g2.food {
		t.Errorf("food mismatch: %v vs %v", g1.food, g2.food)
	}
}

func TestNoInstantReversal(t *testing.T) {
	g := New()
	if err := g.Init(testConfig()); err != nil {
		t.Fatal(err)
	}

	// Moving right; pressing left must not flip the direction.
	g.HandleInput(core.KeyEvent{Key: core.KeyLeft})
	if g.next == DirLeft {
		t.Error("instant reversal accepted")
	}
	g.HandleInput(core.KeyEvent{Key: core.KeyUp})
	if g.next != DirUp {
		t.Errorf("perpendicular turn rejected: next = %v", g.next)
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	g := New()
	if err := g.Init(testConfig()); err != nil {
		t.Fatal(err)
	}

	// Drive right until the wall.
	for i := 0; i < g.w+2; i++ {
		g.step()
		if g.over {
			break
		}
	}
	if !g.over {
		t.Fatal("snake passed through the wall")
	}
	if g.won {
		t.Error("wall death should not be a win")
	}
	if st := g.Status(); !st.Over {
		t.Error("Status does not report game over")
	}
}

func TestEatingGrowsAndScores(t *testing.T) {
	g := New()
	if err := g.Init(testConfig()); err != nil {
		t.Fatal(err)
	}

	// Plant the food directly ahead of the head.
	head := g.snake[0]
	g.food = Point{head.X + 1, head.Y}
	lenBefore := len(g.snake)

	g.step()
	if g.score != pointsPerFood {
		t.Errorf("score = %d, want %d", g.score, pointsPerFood)
	}
	g.step()
	if len(g.snake) != lenBefore+1 {
		t.Errorf("length = %d, want %d", len(g.snake), lenBefore+1)
	}
}

func TestUpdateAccumulatesFixedSteps(t *testing.T) {
	g := New()
	if err := g.Init(testConfig()); err != nil {
		t.Fatal(err)
	}

	head := g.snake[0]
	g.Update(moveInterval * 3)
	moved := g.snake[0].X - head.X
	if moved != 3 {
		t.Errorf("moved %d cells for 3 intervals, want 3", moved)
	}

	head = g.snake[0]
	g.Update(moveInterval / 2)
	if g.snake[0] != head {
		t.Error("moved on a partial interval")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	g := New()
	if err := g.Init(testConfig()); err != nil {
		t.Fatal(err)
	}
	g.Update(moveInterval * 5)
	g.score = 40

	payload, err := g.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	restored := New()
	if err := restored.Init(testConfig()); err != nil {
		t.Fatal(err)
	}
	if err := restored.Deserialize(payload); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if restored.score != 40 {
		t.Errorf("restored score = %d", restored.score)
	}
	if restored.snake[0] != g.snake[0] {
		t.Errorf("restored head = %v, want %v", restored.snake[0], g.snake[0])
	}
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	g := New()
	if err := g.Init(testConfig()); err != nil {
		t.Fatal(err)
	}
	if err := g.Deserialize([]byte("not json")); err == nil {
		t.Error("expected error for corrupt payload")
	}
	if err := g.Deserialize([]byte("{}")); err == nil {
		t.Error("expected error for empty state")
	}
}

func TestDrawFitsScreen(t *testing.T) {
	g := New()
	cfg := testConfig()
	if err := g.Init(cfg); err != nil {
		t.Fatal(err)
	}
	s := core.NewScreen(cfg.Width, cfg.Height)
	g.Draw(s)
	g.DrawGameOver(s, true)
}
