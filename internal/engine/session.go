package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Querulantenkind/cli-game-collection/internal/core"
)

// Session is one live run of a game under the lifecycle engine. It is
// created, run once, and discarded; Run may not be called twice.
type Session struct {
	id       string
	behavior Behavior
	display  Display
	input    InputSource
	services Services
	cfg      Config
	clock    Clock
	logger   *log.Logger

	screen   *core.Screen
	state    State
	score    int
	won      bool
	playTime float64   // accumulated Running-state seconds, pauses excluded
	last     time.Time // start of the previous iteration
	scale    float64   // effective delta-time factor

	resumed   bool // resume happened this iteration; its delta is not charged
	finalized bool
	newHigh   bool
	unlocked  []string
}

// Result summarizes a finished session.
type Result struct {
	SessionID    string
	GameID       string
	Score        int
	Won          bool
	PlayTime     float64
	NewHighScore bool
	Unlocked     []string
	Final        State
}

// Option customizes a session at creation.
type Option func(*Session)

// WithClock replaces the wall clock, used by tests to script time.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession wires a behavior to its collaborators. The session starts
// in Initializing; nothing happens until Run.
func NewSession(b Behavior, d Display, in InputSource, svc Services, cfg Config, opts ...Option) *Session {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultConfig().PollTimeout
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = DefaultConfig().MaxDelta
	}
	if cfg.Theme.ID == "" {
		cfg.Theme = DefaultConfig().Theme
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	s := &Session{
		id:       uuid.NewString(),
		behavior: b,
		display:  d,
		input:    in,
		services: svc,
		cfg:      cfg,
		clock:    SystemClock(),
		state:    StateInitializing,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "engine",
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the unique identifier of this session.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Run owns the session from initialization to termination and returns
// the outcome. Display-size and input-source faults abort the run;
// everything else (persistence write failures, corrupt saves) is logged
// and survived.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if s.state != StateInitializing {
		return nil, fmt.Errorf("engine: session %s already consumed", s.id)
	}
	gameID := s.behavior.ID()

	w, h := s.surfaceSize()
	minH, minW := s.behavior.MinSize()
	if w < minW || h < minH {
		s.state = StateTerminated
		return nil, &DisplayTooSmallError{
			GameID: gameID,
			Width:  w, Height: h,
			MinW: minW, MinH: minH,
		}
	}
	s.cfg.Width, s.cfg.Height = w, h
	s.screen = core.NewScreen(w, h)
	s.scale = s.cfg.effectiveScale(s.services.Settings, gameID)

	if err := s.initialize(gameID); err != nil {
		s.state = StateTerminated
		return nil, err
	}

	if s.services.Stats != nil {
		if err := s.services.Stats.RecordStart(gameID); err != nil {
			s.logger.Warn("stats start not recorded", "game", gameID, "err", err)
		}
	}

	s.logger.Debug("session started", "session", s.id, "game", gameID, "scale", s.scale)
	s.state = StateRunning
	s.last = s.clock.Now()

	for s.state != StateTerminated {
		select {
		case <-ctx.Done():
			s.state = StateTerminated
			continue
		default:
		}

		ev, err := s.input.Poll(s.cfg.PollTimeout)
		if err != nil {
			s.finalize()
			return s.result(), fmt.Errorf("%w: %v", ErrInputUnavailable, err)
		}

		now := s.clock.Now()
		elapsed := now.Sub(s.last)
		s.last = now
		dt := core.ClampF(elapsed.Seconds(), 0, s.cfg.MaxDelta.Seconds())

		s.dispatch(ev)
		if s.resumed {
			// The gap this delta spans was spent paused.
			dt = 0
			s.resumed = false
		}

		if s.state == StateRunning {
			s.behavior.Update(dt * s.scale)
			s.playTime += dt

			st := s.behavior.Status()
			if st.Score > s.score {
				s.score = st.Score
			}
			if st.Over {
				s.won = st.Won
				s.state = StateGameOver
				s.finalize()
			}
		}

		s.render()

		// A burst of buffered events returns from Poll immediately;
		// sleeping the remainder keeps the loop at the poll cadence.
		if wait := s.cfg.PollTimeout - elapsed; wait > 0 && s.state != StateTerminated {
			s.clock.Sleep(wait)
		}
	}

	s.finalize()
	return s.result(), nil
}

// surfaceSize resolves the display dimensions, preferring explicit
// config overrides.
func (s *Session) surfaceSize() (w, h int) {
	w, h = s.cfg.Width, s.cfg.Height
	if (w <= 0 || h <= 0) && s.display != nil {
		dw, dh := s.display.Size()
		if w <= 0 {
			w = dw
		}
		if h <= 0 {
			h = dh
		}
	}
	return w, h
}

// initialize performs fresh init, or restores a save when the config
// names a resume slot. A failed restore degrades to fresh init.
func (s *Session) initialize(gameID string) error {
	if err := s.behavior.Init(s.cfg); err != nil {
		return fmt.Errorf("engine: init %s: %w", gameID, err)
	}
	if s.cfg.ResumeSlot <= 0 || s.services.Saves == nil {
		return nil
	}

	rec, err := s.services.Saves.Retrieve(gameID, s.cfg.ResumeSlot)
	if err != nil {
		if !errors.Is(err, ErrNoSave) {
			s.logger.Warn("save not readable, starting fresh", "game", gameID, "slot", s.cfg.ResumeSlot, "err", err)
		}
		return nil
	}
	if err := s.behavior.Deserialize(rec.Payload); err != nil {
		fault := &DeserializeError{GameID: gameID, Slot: s.cfg.ResumeSlot, Err: err}
		s.logger.Warn("save restore failed, starting fresh", "err", fault)
		// Re-init: the behavior may have partially applied the payload.
		if err := s.behavior.Init(s.cfg); err != nil {
			return fmt.Errorf("engine: init %s: %w", gameID, err)
		}
	}
	return nil
}

// dispatch routes one input event. Universal commands (pause, quit,
// quick-save) are intercepted here; everything else is forwarded
// verbatim to the behavior.
func (s *Session) dispatch(ev core.KeyEvent) {
	switch s.state {
	case StateRunning, StatePaused:
		switch {
		case ev.Key == core.KeyCtrlC || ev.Is('q'):
			if s.cfg.SaveOnQuit && s.cfg.QuickSaveSlot > 0 {
				s.quickSave()
			}
			s.state = StateTerminated
		case ev.Is('p'):
			s.togglePause()
		case ev.Key == core.KeyCtrlS && s.cfg.QuickSaveSlot > 0:
			s.quickSave()
		default:
			if ev.None() {
				return
			}
			// While paused, game keys are dropped rather than queued.
			if s.state == StateRunning && !s.behavior.HandleInput(ev) {
				s.state = StateTerminated
			}
		}
	case StateGameOver:
		if s.cfg.AutoAck || !ev.None() {
			s.state = StateTerminated
		}
	}
}

// togglePause flips Running <-> Paused. Resuming resets the delta
// baseline so no time is charged for the paused interval.
func (s *Session) togglePause() {
	switch s.state {
	case StateRunning:
		s.state = StatePaused
	case StatePaused:
		s.state = StateRunning
		s.resumed = true
	}
}

// quickSave serializes the behavior into the configured quick slot.
func (s *Session) quickSave() {
	if s.services.Saves == nil {
		return
	}
	payload, err := s.behavior.Serialize()
	if err != nil {
		s.logger.Warn("quick-save serialize failed", "game", s.behavior.ID(), "err", err)
		return
	}
	meta := map[string]any{
		"score":     s.score,
		"play_time": s.playTime,
	}
	if err := s.services.Saves.Store(s.behavior.ID(), s.cfg.QuickSaveSlot, meta, payload); err != nil {
		s.logger.Warn("quick-save not persisted", "game", s.behavior.ID(), "slot", s.cfg.QuickSaveSlot, "err", err)
	}
}

// finalize runs the persistence bridge exactly once per session: score,
// statistics, then achievement evaluation. Failures are logged; none of
// them aborts anything.
func (s *Session) finalize() {
	if s.finalized {
		return
	}
	s.finalized = true
	gameID := s.behavior.ID()

	if s.services.Scores != nil {
		isNew, err := s.services.Scores.Record(gameID, s.score)
		if err != nil {
			s.logger.Warn("score not persisted", "game", gameID, "score", s.score, "err", err)
		} else {
			s.newHigh = isNew
		}
	}

	if s.services.Stats != nil {
		if err := s.services.Stats.RecordEnd(gameID, s.score, s.won, s.playTime); err != nil {
			s.logger.Warn("stats end not recorded", "game", gameID, "err", err)
		}
	}

	if s.services.Achievements != nil {
		snap := s.behavior.Snapshot()
		if snap == nil {
			snap = map[string]any{}
		}
		snap["score"] = s.score
		snap["won"] = s.won
		snap["play_time"] = s.playTime
		snap["is_new_high"] = s.newHigh
		unlocked, err := s.services.Achievements.Evaluate(gameID, snap)
		if err != nil {
			s.logger.Warn("achievement evaluation failed", "game", gameID, "err", err)
		} else {
			s.unlocked = unlocked
		}
	}
}

// render draws the frame appropriate for the current state and presents
// it. The engine owns the pause overlay; behaviors only know how to
// draw the field and the end screen.
func (s *Session) render() {
	if s.screen == nil {
		return
	}
	s.screen.Clear()
	switch s.state {
	case StateRunning:
		s.behavior.Draw(s.screen)
	case StatePaused:
		s.behavior.Draw(s.screen)
		s.drawPauseOverlay()
	case StateGameOver:
		s.behavior.DrawGameOver(s.screen, s.newHigh)
	default:
		return
	}
	if s.display != nil {
		if err := s.display.Present(s.screen); err != nil {
			s.logger.Warn("present failed", "err", err)
		}
	}
}

func (s *Session) drawPauseOverlay() {
	msg := " PAUSED - press p to resume "
	s.screen.DrawTextCenteredColored(s.screen.Height()/2, msg, s.cfg.Theme.Accent)
}

func (s *Session) result() *Result {
	return &Result{
		SessionID:    s.id,
		GameID:       s.behavior.ID(),
		Score:        s.score,
		Won:          s.won,
		PlayTime:     s.playTime,
		NewHighScore: s.newHigh,
		Unlocked:     s.unlocked,
		Final:        s.state,
	}
}
