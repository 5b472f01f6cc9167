package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Unlock marks an achievement as unlocked. Unlocking is monotonic: a
// second unlock keeps the original timestamp.
func (s *Store) Unlock(achievementID string) error {
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO achievement_unlocks (id) VALUES (?)",
		achievementID,
	); err != nil {
		return fmt.Errorf("storage: cannot unlock achievement: %w", err)
	}
	return nil
}

// IsUnlocked reports whether an achievement has been unlocked.
func (s *Store) IsUnlocked(achievementID string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM achievement_unlocks WHERE id = ?", achievementID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot query unlock: %w", err)
	}
	return true, nil
}

// Unlocks returns all unlocked achievement ids with their timestamps.
func (s *Store) Unlocks() (map[string]time.Time, error) {
	rows, err := s.db.Query("SELECT id, unlocked_at FROM achievement_unlocks")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at any
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan unlock row: %w", err)
		}
		out[id] = parseTime(at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
