package achievements

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Querulantenkind/cli-game-collection/internal/storage"
)

// UnlockStore persists which achievements have been unlocked.
type UnlockStore interface {
	Unlock(id string) error
	Unlocks() (map[string]time.Time, error)
}

// StatsSource feeds collection achievements.
type StatsSource interface {
	AllStats() (map[string]*storage.GameStats, error)
}

// Service evaluates the catalog against session snapshots. Unlocks are
// monotonic: once earned an achievement is never re-evaluated.
type Service struct {
	store     UnlockStore
	stats     StatsSource
	gameCount int
	logger    *log.Logger
}

// New builds a Service. gameCount is the size of the game catalog,
// used by the play-all and win-all achievements. stats may be nil, in
// which case collection achievements never unlock.
func New(store UnlockStore, stats StatsSource, gameCount int, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: store, stats: stats, gameCount: gameCount, logger: logger}
}

// Evaluate checks every locked achievement against the snapshot and
// returns the ids unlocked by this session, in catalog order.
func (s *Service) Evaluate(gameID string, snapshot map[string]any) ([]string, error) {
	unlocked, err := s.store.Unlocks()
	if err != nil {
		return nil, fmt.Errorf("achievements: load unlocks: %w", err)
	}

	snap := make(map[string]any, len(snapshot)+4)
	for k, v := range snapshot {
		snap[k] = v
	}
	snap["game"] = gameID
	s.addCollectionCounts(snap)

	var fresh []string
	for i := range Catalog {
		a := &Catalog[i]
		if _, done := unlocked[a.ID]; done {
			continue
		}
		if !a.Condition(snap) {
			continue
		}
		if err := s.store.Unlock(a.ID); err != nil {
			return fresh, fmt.Errorf("achievements: unlock %s: %w", a.ID, err)
		}
		s.logger.Info("achievement unlocked", "id", a.ID, "name", a.Name)
		fresh = append(fresh, a.ID)
	}
	return fresh, nil
}

func (s *Service) addCollectionCounts(snap map[string]any) {
	if s.stats == nil || s.gameCount == 0 {
		return
	}
	all, err := s.stats.AllStats()
	if err != nil {
		s.logger.Warn("cannot load stats for collection achievements", "err", err)
		return
	}
	var played, won int
	for _, st := range all {
		if st.GamesPlayed > 0 {
			played++
		}
		if st.GamesWon > 0 {
			won++
		}
	}
	snap["games_played_count"] = played
	snap["games_won_count"] = won
	snap["catalog_size"] = s.gameCount
}

// Entry is one catalog row with its unlock state, for display.
type Entry struct {
	Achievement
	Unlocked   bool
	UnlockedAt time.Time
}

// List returns the catalog with unlock state, in catalog order.
func (s *Service) List() ([]Entry, error) {
	unlocked, err := s.store.Unlocks()
	if err != nil {
		return nil, fmt.Errorf("achievements: load unlocks: %w", err)
	}
	out := make([]Entry, 0, len(Catalog))
	for _, a := range Catalog {
		e := Entry{Achievement: a}
		if at, ok := unlocked[a.ID]; ok {
			e.Unlocked = true
			e.UnlockedAt = at
		}
		out = append(out, e)
	}
	return out, nil
}

// Points returns earned and total achievement points.
func (s *Service) Points() (earned, total int, err error) {
	unlocked, err := s.store.Unlocks()
	if err != nil {
		return 0, 0, fmt.Errorf("achievements: load unlocks: %w", err)
	}
	for _, a := range Catalog {
		total += a.Points
		if _, ok := unlocked[a.ID]; ok {
			earned += a.Points
		}
	}
	return earned, total, nil
}
