package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Recent session summaries kept per game; the oldest are evicted first.
const sessionRingSize = 20

// GameStats is the per-game aggregate.
type GameStats struct {
	GameID        string
	GamesPlayed   int
	GamesWon      int
	GamesLost     int
	TotalScore    int64
	BestScore     int
	TotalPlayTime float64
	FirstPlayed   time.Time
	LastPlayed    time.Time
}

// SessionSummary is one entry of a game's recent-session ring.
type SessionSummary struct {
	SessionUID string
	GameID     string
	Score      int
	Won        bool
	PlayTime   float64
	CreatedAt  time.Time
}

// RecordStart counts a game start and stamps first/last played.
func (s *Store) RecordStart(gameID string) error {
	_, err := s.db.Exec(
		`INSERT INTO stats (game_id, games_played, first_played, last_played)
		 VALUES (?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
			games_played = games_played + 1,
			last_played = CURRENT_TIMESTAMP`,
		gameID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record start: %w", err)
	}
	return nil
}

// RecordEnd folds a finished session into the aggregate and appends it
// to the recent-session ring, evicting beyond the cap.
func (s *Store) RecordEnd(gameID string, score int, won bool, playTime float64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	wonInc, lostInc := 0, 1
	if won {
		wonInc, lostInc = 1, 0
	}
	if _, err := tx.Exec(
		`INSERT INTO stats (game_id, games_played, games_won, games_lost,
			total_score, best_score, total_play_time, first_played, last_played)
		 VALUES (?, 0, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
			games_won = games_won + excluded.games_won,
			games_lost = games_lost + excluded.games_lost,
			total_score = total_score + excluded.total_score,
			best_score = MAX(best_score, excluded.best_score),
			total_play_time = total_play_time + excluded.total_play_time,
			last_played = CURRENT_TIMESTAMP`,
		gameID, wonInc, lostInc, score, score, playTime,
	); err != nil {
		return fmt.Errorf("storage: cannot update stats: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO session_log (session_uid, game_id, score, won, play_time)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), gameID, score, boolInt(won), playTime,
	); err != nil {
		return fmt.Errorf("storage: cannot log session: %w", err)
	}

	if _, err := tx.Exec(
		`DELETE FROM session_log WHERE game_id = ? AND id NOT IN (
			SELECT id FROM session_log WHERE game_id = ?
			ORDER BY id DESC LIMIT ?)`,
		gameID, gameID, sessionRingSize,
	); err != nil {
		return fmt.Errorf("storage: cannot trim session log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit stats: %w", err)
	}
	return nil
}

// Stats returns the aggregate for one game; a zero aggregate for games
// never played.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}
	var first, last any
	err := s.db.QueryRow(
		`SELECT games_played, games_won, games_lost, total_score, best_score,
			total_play_time, first_played, last_played
		 FROM stats WHERE game_id = ?`,
		gameID,
	).Scan(&st.GamesPlayed, &st.GamesWon, &st.GamesLost, &st.TotalScore,
		&st.BestScore, &st.TotalPlayTime, &first, &last)
	if err == sql.ErrNoRows {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	st.FirstPlayed = parseTime(first)
	st.LastPlayed = parseTime(last)
	return st, nil
}

// AllStats returns aggregates for every game that has been played,
// keyed by game ID.
func (s *Store) AllStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, games_played, games_won, games_lost, total_score,
			best_score, total_play_time, first_played, last_played
		 FROM stats`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query all stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*GameStats)
	for rows.Next() {
		st := &GameStats{}
		var first, last any
		if err := rows.Scan(&st.GameID, &st.GamesPlayed, &st.GamesWon, &st.GamesLost,
			&st.TotalScore, &st.BestScore, &st.TotalPlayTime, &first, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.FirstPlayed = parseTime(first)
		st.LastPlayed = parseTime(last)
		out[st.GameID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// RecentSessions returns a game's recent-session ring, newest first.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionSummary, error) {
	if limit <= 0 || limit > sessionRingSize {
		limit = sessionRingSize
	}

	rows, err := s.db.Query(
		`SELECT session_uid, game_id, score, won, play_time, created_at
		 FROM session_log
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var won int
		var createdAt any
		if err := rows.Scan(&sum.SessionUID, &sum.GameID, &sum.Score, &won, &sum.PlayTime, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session row: %w", err)
		}
		sum.Won = won != 0
		sum.CreatedAt = parseTime(createdAt)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// statsView adapts the store to engine.StatsService.
type statsView struct{ s *Store }

func (v statsView) RecordStart(gameID string) error {
	return v.s.RecordStart(gameID)
}

func (v statsView) RecordEnd(gameID string, score int, won bool, playTime float64) error {
	return v.s.RecordEnd(gameID, score, won, playTime)
}
