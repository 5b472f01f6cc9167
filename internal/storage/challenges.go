package storage

import (
	"database/sql"
	"fmt"
	"time"
)

const challengeDayLayout = "2006-01-02"

// ChallengeCompletion is a single completed daily challenge.
type ChallengeCompletion struct {
	Day         string
	ChallengeID string
	Points      int
	CompletedAt time.Time
}

// CompleteChallenge records a challenge completion for the given day.
// Completing the same challenge twice on one day is a no-op.
func (s *Store) CompleteChallenge(day, challengeID string, points int) error {
	if _, err := time.Parse(challengeDayLayout, day); err != nil {
		return fmt.Errorf("storage: invalid challenge day %q: %w", day, err)
	}
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO challenge_log (day, challenge_id, points) VALUES (?, ?, ?)",
		day, challengeID, points,
	); err != nil {
		return fmt.Errorf("storage: cannot record challenge: %w", err)
	}
	return nil
}

// CompletedOn returns the ids of challenges completed on the given day.
func (s *Store) CompletedOn(day string) (map[string]bool, error) {
	rows, err := s.db.Query(
		"SELECT challenge_id FROM challenge_log WHERE day = ?", day,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query challenge day: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan challenge row: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ChallengePoints returns the sum of points across all completed challenges.
func (s *Store) ChallengePoints() (int, error) {
	var total sql.NullInt64
	if err := s.db.QueryRow(
		"SELECT SUM(points) FROM challenge_log",
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("storage: cannot sum challenge points: %w", err)
	}
	return int(total.Int64), nil
}

// ChallengeStreak computes the current and best streak of consecutive
// days with at least one completed challenge. The current streak counts
// back from today; a completion yesterday but not today still counts as
// an active streak of at least one.
func (s *Store) ChallengeStreak(today time.Time) (current, best int, err error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT day FROM challenge_log ORDER BY day",
	)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot query challenge days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return 0, 0, fmt.Errorf("storage: cannot scan challenge day: %w", err)
		}
		d, perr := time.Parse(challengeDayLayout, raw)
		if perr != nil {
			continue
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("storage: row iteration error: %w", err)
	}
	if len(days) == 0 {
		return 0, 0, nil
	}

	run := 1
	best = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	last := days[len(days)-1]
	ref, _ := time.Parse(challengeDayLayout, today.Format(challengeDayLayout))
	gap := ref.Sub(last)
	if gap == 0 || gap == 24*time.Hour {
		current = run
	}
	return current, best, nil
}

// ChallengeHistory returns completions newest first, up to limit.
func (s *Store) ChallengeHistory(limit int) ([]ChallengeCompletion, error) {
	rows, err := s.db.Query(
		"SELECT day, challenge_id, points, completed_at FROM challenge_log ORDER BY day DESC, completed_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query challenge history: %w", err)
	}
	defer rows.Close()

	var out []ChallengeCompletion
	for rows.Next() {
		var c ChallengeCompletion
		var at any
		if err := rows.Scan(&c.Day, &c.ChallengeID, &c.Points, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan challenge row: %w", err)
		}
		c.CompletedAt = parseTime(at)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
