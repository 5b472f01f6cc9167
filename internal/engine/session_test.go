package engine

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
)

// scriptClock advances a fixed step on every Now call and records
// requested sleeps without blocking.
type scriptClock struct {
	now    time.Time
	step   time.Duration
	sleeps []time.Duration
}

func newScriptClock(step time.Duration) *scriptClock {
	return &scriptClock{now: time.Unix(1000, 0), step: step}
}

func (c *scriptClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func (c *scriptClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
}

// scriptInput replays a fixed event sequence; once exhausted it keeps
// returning quit so every session terminates.
type scriptInput struct {
	events []core.KeyEvent
	pos    int
	err    error
}

func (in *scriptInput) Poll(time.Duration) (core.KeyEvent, error) {
	if in.err != nil {
		return core.KeyEvent{}, in.err
	}
	if in.pos >= len(in.events) {
		return core.RuneEvent('q'), nil
	}
	ev := in.events[in.pos]
	in.pos++
	return ev, nil
}

// nullDisplay satisfies Display without a terminal.
type nullDisplay struct{ w, h int }

func (d nullDisplay) Size() (int, int)           { return d.w, d.h }
func (d nullDisplay) Present(*core.Screen) error { return nil }

// recServices records every persistence bridge call.
type recServices struct {
	startCalls int
	endCalls   int
	endScore   int
	endWon     bool
	endTime    float64

	recordCalls int
	recordScore int
	newHigh     bool

	evalCalls int
	lastSnap  map[string]any

	stored      []SaveRecord
	retrieveRec *SaveRecord
	retrieveErr error

	settings map[string]string
}

func (r *recServices) Record(gameID string, score int) (bool, error) {
	r.recordCalls++
	r.recordScore = score
	return r.newHigh, nil
}

func (r *recServices) RecordStart(gameID string) error {
	r.startCalls++
	return nil
}

func (r *recServices) RecordEnd(gameID string, score int, won bool, playTime float64) error {
	r.endCalls++
	r.endScore = score
	r.endWon = won
	r.endTime = playTime
	return nil
}

func (r *recServices) Evaluate(gameID string, snap map[string]any) ([]string, error) {
	r.evalCalls++
	r.lastSnap = snap
	return nil, nil
}

func (r *recServices) Store(gameID string, slot int, meta map[string]any, payload []byte) error {
	r.stored = append(r.stored, SaveRecord{GameID: gameID, Slot: slot, Metadata: meta, Payload: payload})
	return nil
}

func (r *recServices) Retrieve(gameID string, slot int) (*SaveRecord, error) {
	if r.retrieveErr != nil {
		return nil, r.retrieveErr
	}
	if r.retrieveRec == nil {
		return nil, ErrNoSave
	}
	return r.retrieveRec, nil
}

func (r *recServices) Get(gameID, key, def string) string {
	if v, ok := r.settings[key]; ok {
		return v
	}
	return def
}

func (r *recServices) services() Services {
	return Services{Scores: r, Stats: r, Achievements: r, Saves: r, Settings: r}
}

// probeBehavior instruments every hook.
type probeBehavior struct {
	minH, minW int

	initCalls        int
	updateCalls      int
	deltas           []float64
	drawCalls        int
	gameOverDraws    int
	deserializeCalls int
	deserializeErr   error
	restored         []byte

	overAfter  int // end the game after this many updates (0 = never)
	won        bool
	stopOnStar bool // HandleInput('*') returns false

	onUpdate func()
}

func newProbeBehavior() *probeBehavior {
	return &probeBehavior{minH: 24, minW: 80}
}

func (b *probeBehavior) ID() string          { return "probe" }
func (b *probeBehavior) Title() string       { return "Probe" }
func (b *probeBehavior) MinSize() (int, int) { return b.minH, b.minW }

func (b *probeBehavior) Init(cfg Config) error {
	b.initCalls++
	return nil
}

func (b *probeBehavior) HandleInput(ev core.KeyEvent) bool {
	if b.stopOnStar && ev.Is('*') {
		return false
	}
	return true
}

func (b *probeBehavior) Update(dt float64) {
	b.updateCalls++
	b.deltas = append(b.deltas, dt)
	if b.onUpdate != nil {
		b.onUpdate()
	}
}

func (b *probeBehavior) Draw(*core.Screen) { b.drawCalls++ }

func (b *probeBehavior) DrawGameOver(*core.Screen, bool) { b.gameOverDraws++ }

func (b *probeBehavior) Status() Status {
	return Status{
		Score: b.updateCalls,
		Over:  b.overAfter > 0 && b.updateCalls >= b.overAfter,
		Won:   b.won,
	}
}

func (b *probeBehavior) Snapshot() map[string]any {
	return map[string]any{"updates": b.updateCalls}
}

func (b *probeBehavior) Serialize() ([]byte, error) { return []byte("probe-state"), nil }

func (b *probeBehavior) Deserialize(p []byte) error {
	b.deserializeCalls++
	if b.deserializeErr != nil {
		return b.deserializeErr
	}
	b.restored = p
	return nil
}

func quiet() Option {
	return WithLogger(log.New(io.Discard))
}

func newTestSession(b Behavior, in InputSource, svc Services, cfg Config, clk Clock) *Session {
	return NewSession(b, nullDisplay{w: 80, h: 24}, in, svc, cfg, WithClock(clk), quiet())
}

func events(evs ...core.KeyEvent) *scriptInput {
	return &scriptInput{events: evs}
}

var (
	evNone  = core.KeyEvent{}
	evPause = core.RuneEvent('p')
	evQuit  = core.RuneEvent('q')
)

func TestRunQuitTerminates(t *testing.T) {
	b := newProbeBehavior()
	rec := &recServices{}
	s := newTestSession(b, events(evNone, evNone, evNone, evPause, evPause, evQuit), rec.services(), Config{}, newScriptClock(10*time.Millisecond))

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateTerminated, res.Final)
	assert.Equal(t, StateTerminated, s.State())
	assert.Equal(t, 1, rec.startCalls, "RecordStart called once")
	assert.Equal(t, 1, rec.endCalls, "RecordEnd called once")
	assert.False(t, rec.endWon)
	assert.Zero(t, b.gameOverDraws, "quit skips game-over rendering")
}

func TestDisplayTooSmall(t *testing.T) {
	b := newProbeBehavior() // needs 80x24
	rec := &recServices{}
	s := NewSession(b, nullDisplay{w: 40, h: 10}, events(evQuit), rec.services(), Config{}, quiet())

	_, err := s.Run(context.Background())
	require.Error(t, err)

	var sizeErr *DisplayTooSmallError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, "probe", sizeErr.GameID)
	assert.Equal(t, 40, sizeErr.Width)
	assert.Equal(t, 10, sizeErr.Height)

	assert.Zero(t, b.initCalls, "Running never entered")
	assert.Zero(t, b.updateCalls)
	assert.Zero(t, rec.startCalls)
}

func TestPauseResumeChargesNoTime(t *testing.T) {
	b := newProbeBehavior()
	rec := &recServices{}

	var evs []core.KeyEvent
	for i := 0; i < 10; i++ {
		evs = append(evs, evPause) // alternates pause/resume
	}
	evs = append(evs, evQuit)

	// Each Now() advances one full second, so any charged pause
	// interval would show up clearly.
	s := newTestSession(b, events(evs...), rec.services(), Config{}, newScriptClock(time.Second))

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, res.PlayTime, "pause/resume cycles must not accumulate play time")
	assert.Zero(t, rec.endTime)
}

func TestNoUpdateWhilePaused(t *testing.T) {
	b := newProbeBehavior()
	s := newTestSession(b,
		events(evNone, evPause, evNone, evNone, evNone, evPause, evNone, evQuit),
		Services{}, Config{}, newScriptClock(10*time.Millisecond))

	b.onUpdate = func() {
		assert.Equal(t, StateRunning, s.State(), "Update dispatched outside Running")
	}

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	// Updates: the initial none, the resume tick, and one more none.
	assert.Equal(t, 3, b.updateCalls)
}

func TestDeltaClampedUnderStall(t *testing.T) {
	b := newProbeBehavior()
	evs := make([]core.KeyEvent, 10)
	s := newTestSession(b, events(evs...), Services{}, Config{}, newScriptClock(5*time.Second))

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, b.deltas)
	clamp := DefaultConfig().MaxDelta.Seconds()
	for _, dt := range b.deltas {
		assert.GreaterOrEqual(t, dt, 0.0)
		assert.LessOrEqual(t, dt, clamp)
	}
}

func TestBufferedBurstPacedByPollCadence(t *testing.T) {
	b := newProbeBehavior()

	// Each iteration elapses 1ms of clock time, simulating a burst of
	// buffered events returning from Poll immediately.
	clk := newScriptClock(time.Millisecond)
	evs := make([]core.KeyEvent, 8)
	s := newTestSession(b, events(evs...), Services{}, Config{}, clk)

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, clk.sleeps, "fast iterations must sleep the poll remainder")
	pollTimeout := DefaultConfig().PollTimeout
	for _, d := range clk.sleeps {
		assert.Greater(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, pollTimeout)
	}
}

func TestSlowIterationsNeverSleep(t *testing.T) {
	b := newProbeBehavior()

	// Iterations already slower than the poll cadence need no pacing.
	clk := newScriptClock(time.Second)
	s := newTestSession(b, events(evNone, evNone, evNone), Services{}, Config{}, clk)

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, clk.sleeps)
}

func TestGameOverAbsorbsUpdates(t *testing.T) {
	b := newProbeBehavior()
	b.overAfter = 3
	rec := &recServices{newHigh: true}

	// Three ticks to reach game over, idle ticks on the end screen,
	// then any key acknowledges.
	s := newTestSession(b,
		events(evNone, evNone, evNone, evNone, evNone, core.KeyEvent{Key: core.KeySpace}),
		rec.services(), Config{}, newScriptClock(10*time.Millisecond))

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, b.updateCalls, "no update after game over")
	assert.GreaterOrEqual(t, b.gameOverDraws, 1)
	assert.Equal(t, StateTerminated, res.Final)
	assert.True(t, res.NewHighScore)

	assert.Equal(t, 1, rec.recordCalls)
	assert.Equal(t, 1, rec.endCalls)
	assert.Equal(t, 1, rec.evalCalls, "achievements evaluated once at the transition")
	assert.Equal(t, true, rec.lastSnap["is_new_high"])
	assert.Equal(t, 3, rec.lastSnap["score"])
}

func TestAutoAckTerminatesWithoutInput(t *testing.T) {
	b := newProbeBehavior()
	b.overAfter = 1
	s := newTestSession(b, events(evNone, evNone, evNone), Services{}, Config{AutoAck: true}, newScriptClock(10*time.Millisecond))

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateTerminated, res.Final)
	assert.GreaterOrEqual(t, b.gameOverDraws, 1, "end screen rendered before auto-termination")
}

func TestBehaviorStopRequest(t *testing.T) {
	b := newProbeBehavior()
	b.stopOnStar = true
	rec := &recServices{}
	s := newTestSession(b, events(evNone, core.RuneEvent('*')), rec.services(), Config{}, newScriptClock(10*time.Millisecond))

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateTerminated, res.Final)
	assert.Equal(t, 1, rec.endCalls, "stop via input hook still finalizes")
}

func TestSpeedAndDifficultyScaleDelta(t *testing.T) {
	b := newProbeBehavior()
	rec := &recServices{settings: map[string]string{"speed": "fast", "difficulty": "hard"}}

	s := newTestSession(b, events(evNone, evNone), rec.services(), Config{}, newScriptClock(100*time.Millisecond))

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, b.deltas)
	// 100ms real time at fast (1.5) x hard (1.5).
	assert.InDelta(t, 0.1*1.5*1.5, b.deltas[0], 1e-9)
}

func TestResumeFromSave(t *testing.T) {
	b := newProbeBehavior()
	rec := &recServices{retrieveRec: &SaveRecord{GameID: "probe", Slot: 3, Payload: []byte("old-state")}}

	s := newTestSession(b, events(evQuit), rec.services(), Config{ResumeSlot: 3}, newScriptClock(10*time.Millisecond))

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, b.deserializeCalls)
	assert.Equal(t, []byte("old-state"), b.restored)
	assert.Equal(t, 1, b.initCalls)
}

func TestCorruptSaveFallsBackToFreshInit(t *testing.T) {
	b := newProbeBehavior()
	b.deserializeErr = errors.New("bad payload")
	rec := &recServices{retrieveRec: &SaveRecord{GameID: "probe", Slot: 2, Payload: []byte("junk")}}

	s := newTestSession(b, events(evNone, evQuit), rec.services(), Config{ResumeSlot: 2}, newScriptClock(10*time.Millisecond))

	res, err := s.Run(context.Background())
	require.NoError(t, err, "corrupt save is recoverable, not fatal")

	assert.Equal(t, 2, b.initCalls, "re-initialized after failed restore")
	assert.Equal(t, StateTerminated, res.Final)
}

func TestQuickSaveOnQuit(t *testing.T) {
	b := newProbeBehavior()
	rec := &recServices{}
	cfg := Config{QuickSaveSlot: 1, SaveOnQuit: true}

	s := newTestSession(b, events(evNone, evNone, evQuit), rec.services(), cfg, newScriptClock(10*time.Millisecond))

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rec.stored, 1)
	assert.Equal(t, 1, rec.stored[0].Slot)
	assert.Equal(t, []byte("probe-state"), rec.stored[0].Payload)
	assert.Contains(t, rec.stored[0].Metadata, "score")
}

func TestInputSourceFailureAborts(t *testing.T) {
	b := newProbeBehavior()
	rec := &recServices{}
	in := &scriptInput{err: errors.New("tty gone")}

	s := newTestSession(b, in, rec.services(), Config{}, newScriptClock(10*time.Millisecond))

	_, err := s.Run(context.Background())
	require.ErrorIs(t, err, ErrInputUnavailable)
	assert.Equal(t, 1, rec.endCalls, "outcome still recorded on abort")
}

func TestContextCancellationObservedAtBoundary(t *testing.T) {
	b := newProbeBehavior()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSession(b, events(evNone, evNone), Services{}, Config{}, newScriptClock(10*time.Millisecond))

	res, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateTerminated, res.Final)
	assert.Zero(t, b.updateCalls, "cancelled before the first iteration completed")
}

func TestSessionRunsOnce(t *testing.T) {
	b := newProbeBehavior()
	s := newTestSession(b, events(evQuit), Services{}, Config{}, newScriptClock(10*time.Millisecond))

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	require.Error(t, err, "a session is consumed by its first run")
}

// TestLifecycleTransitionGraph feeds random command sequences and
// asserts the invariants that must hold for any of them: updates only
// while running, the end screen only after the end condition, and every
// session finally terminated.
func TestLifecycleTransitionGraph(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []core.KeyEvent{
		evNone,
		evPause,
		core.RuneEvent('x'),
		{Key: core.KeySpace},
		{Key: core.KeyUp},
	}

	for seq := 0; seq < 50; seq++ {
		b := newProbeBehavior()
		if rng.Intn(2) == 0 {
			b.overAfter = 1 + rng.Intn(5)
		}

		var evs []core.KeyEvent
		for i := 0; i < rng.Intn(30); i++ {
			evs = append(evs, pool[rng.Intn(len(pool))])
		}
		evs = append(evs, evQuit) // scriptInput also quits when exhausted

		rec := &recServices{}
		s := newTestSession(b, events(evs...), rec.services(), Config{}, newScriptClock(10*time.Millisecond))
		b.onUpdate = func() {
			if s.State() != StateRunning {
				t.Fatalf("seq %d: update in state %v", seq, s.State())
			}
		}

		res, err := s.Run(context.Background())
		require.NoError(t, err, "seq %d", seq)
		assert.Equal(t, StateTerminated, res.Final, "seq %d", seq)
		assert.Equal(t, 1, rec.startCalls, "seq %d", seq)
		assert.Equal(t, 1, rec.endCalls, "seq %d", seq)
		if b.overAfter > 0 && b.updateCalls >= b.overAfter {
			assert.GreaterOrEqual(t, b.gameOverDraws, 1, "seq %d", seq)
			assert.Equal(t, b.overAfter, b.updateCalls, "seq %d: updates after game over", seq)
		} else {
			assert.Zero(t, b.gameOverDraws, "seq %d: end screen without end condition", seq)
		}
	}
}
