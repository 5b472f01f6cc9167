package engine_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
	"github.com/Querulantenkind/cli-game-collection/internal/engine"
	"github.com/Querulantenkind/cli-game-collection/internal/registry"

	_ "github.com/Querulantenkind/cli-game-collection/internal/games/snake"
)

type fixedDisplay struct{ w, h int }

func (d fixedDisplay) Size() (int, int)           { return d.w, d.h }
func (d fixedDisplay) Present(*core.Screen) error { return nil }

type replayInput struct {
	events []core.KeyEvent
	pos    int
}

func (in *replayInput) Poll(time.Duration) (core.KeyEvent, error) {
	if in.pos >= len(in.events) {
		return core.RuneEvent('q'), nil
	}
	ev := in.events[in.pos]
	in.pos++
	return ev, nil
}

type countingStats struct {
	starts int
	ends   int
	won    bool
}

func (s *countingStats) RecordStart(string) error { s.starts++; return nil }

func (s *countingStats) RecordEnd(_ string, _ int, won bool, _ float64) error {
	s.ends++
	s.won = won
	return nil
}

// Runs the real snake behavior through a full scripted session on an
// 80x24 surface.
func TestSnakeSessionEndToEnd(t *testing.T) {
	behavior, err := registry.Create("snake")
	require.NoError(t, err)

	stats := &countingStats{}
	input := &replayInput{events: []core.KeyEvent{
		{}, {}, {},
		core.RuneEvent('p'),
		core.RuneEvent('p'),
		core.RuneEvent('q'),
	}}

	cfg := engine.DefaultConfig()
	cfg.Seed = 42
	sess := engine.NewSession(behavior, fixedDisplay{w: 80, h: 24}, input,
		engine.Services{Stats: stats}, cfg,
		engine.WithLogger(log.New(io.Discard)))

	res, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, engine.StateTerminated, res.Final)
	assert.Equal(t, 1, stats.starts)
	assert.Equal(t, 1, stats.ends)
	assert.False(t, stats.won)
	assert.False(t, res.Won)
}

func TestSnakeRefusesSmallDisplay(t *testing.T) {
	behavior, err := registry.Create("snake")
	require.NoError(t, err)

	stats := &countingStats{}
	sess := engine.NewSession(behavior, fixedDisplay{w: 40, h: 10}, &replayInput{},
		engine.Services{Stats: stats}, engine.DefaultConfig(),
		engine.WithLogger(log.New(io.Discard)))

	_, err = sess.Run(context.Background())
	var tooSmall *engine.DisplayTooSmallError
	require.True(t, errors.As(err, &tooSmall))
	assert.Equal(t, "snake", tooSmall.GameID)

	// Running was never entered.
	assert.Zero(t, stats.starts)
	assert.Zero(t, stats.ends)
}
