package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Top scores kept per game; older low scores are trimmed away.
const maxScoresPerGame = 10

// ScoreEntry is a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// RecordScore stores a finished game's score and reports whether it is
// a new maximum for the game. Matching an existing maximum is not a new
// high; the first recorded score is.
func (s *Store) RecordScore(gameID string, score int) (bool, error) {
	var prev sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?", gameID,
	).Scan(&prev)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query previous high: %w", err)
	}

	if _, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, score,
	); err != nil {
		return false, fmt.Errorf("storage: cannot save score: %w", err)
	}

	// Keep only the top entries per game, ties resolved by age.
	if _, err := s.db.Exec(
		`DELETE FROM scores WHERE game_id = ? AND id NOT IN (
			SELECT id FROM scores WHERE game_id = ?
			ORDER BY score DESC, id ASC LIMIT ?)`,
		gameID, gameID, maxScoresPerGame,
	); err != nil {
		return false, fmt.Errorf("storage: cannot trim scores: %w", err)
	}

	return !prev.Valid || int64(score) > prev.Int64, nil
}

// TopScores retrieves up to limit scores for a game, best first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = maxScoresPerGame
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score for a game, 0 when none exists.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?", gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for a game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// scoresView adapts the store to engine.ScoreService.
type scoresView struct{ s *Store }

func (v scoresView) Record(gameID string, score int) (bool, error) {
	return v.s.RecordScore(gameID, score)
}
