package challenge

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Querulantenkind/cli-game-collection/internal/engine"
)

// DailyCount is how many challenges each day offers.
const DailyCount = 3

const dayLayout = "2006-01-02"

// Store persists challenge completions.
type Store interface {
	CompleteChallenge(day, challengeID string, points int) error
	CompletedOn(day string) (map[string]bool, error)
	ChallengeStreak(today time.Time) (current, best int, err error)
	ChallengePoints() (int, error)
}

// Service picks the day's challenges and applies session results to
// them. The daily selection is seeded by the date, so every run of the
// program agrees on the same set.
type Service struct {
	store  Store
	now    func() time.Time
	logger *log.Logger
}

func New(store Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: store, now: time.Now, logger: logger}
}

// Today returns the current day's challenge set.
func (s *Service) Today() []Challenge {
	return dailySet(s.now())
}

func dailySet(t time.Time) []Challenge {
	y, m, d := t.Date()
	seed := int64(y*10000 + int(m)*100 + d)
	rng := rand.New(rand.NewSource(seed))

	picks := rng.Perm(len(pool))
	n := DailyCount
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]Challenge, 0, n)
	for _, i := range picks[:n] {
		out = append(out, pool[i])
	}
	return out
}

// Apply checks a finished session against today's open challenges and
// records any completions. It returns the challenges completed by this
// session.
func (s *Service) Apply(res *engine.Result, snapshot map[string]any) ([]Challenge, error) {
	if res == nil {
		return nil, nil
	}
	day := s.now().Format(dayLayout)
	done, err := s.store.CompletedOn(day)
	if err != nil {
		return nil, fmt.Errorf("challenge: load completions: %w", err)
	}

	var fresh []Challenge
	for _, c := range s.Today() {
		if done[c.ID] || !c.Completed(res, snapshot) {
			continue
		}
		if err := s.store.CompleteChallenge(day, c.ID, c.Reward); err != nil {
			return fresh, fmt.Errorf("challenge: record %s: %w", c.ID, err)
		}
		s.logger.Info("challenge completed", "id", c.ID, "reward", c.Reward)
		fresh = append(fresh, c)
	}
	return fresh, nil
}

// Progress is the day's challenge board with overall streak totals.
type Progress struct {
	Day        string
	Challenges []Challenge
	Done       map[string]bool
	Streak     int
	BestStreak int
	Points     int
}

// TodayProgress assembles the challenge board for display.
func (s *Service) TodayProgress() (*Progress, error) {
	now := s.now()
	day := now.Format(dayLayout)

	done, err := s.store.CompletedOn(day)
	if err != nil {
		return nil, fmt.Errorf("challenge: load completions: %w", err)
	}
	streak, best, err := s.store.ChallengeStreak(now)
	if err != nil {
		return nil, fmt.Errorf("challenge: compute streak: %w", err)
	}
	points, err := s.store.ChallengePoints()
	if err != nil {
		return nil, fmt.Errorf("challenge: sum points: %w", err)
	}
	return &Progress{
		Day:        day,
		Challenges: s.Today(),
		Done:       done,
		Streak:     streak,
		BestStreak: best,
		Points:     points,
	}, nil
}
