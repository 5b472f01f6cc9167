package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Querulantenkind/cli-game-collection/internal/engine"
)

// MaxSaveSlots is the number of save slots per game. Writing outside
// 1..MaxSaveSlots is rejected; writing an occupied slot overwrites it.
const MaxSaveSlots = 5

// SaveInfo describes one slot for the save browser; empty slots are
// listed with Exists false.
type SaveInfo struct {
	Slot      int
	Exists    bool
	CreatedAt time.Time
	Metadata  map[string]any
}

// SaveState writes a save record. The payload is opaque to the store;
// metadata is a flat scalar map serialized as JSON.
func (s *Store) SaveState(gameID string, slot int, metadata map[string]any, payload []byte) error {
	if slot < 1 || slot > MaxSaveSlots {
		return fmt.Errorf("storage: save slot %d out of range 1..%d", slot, MaxSaveSlots)
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	meta, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("storage: cannot encode save metadata: %w", err)
	}

	if _, err := s.db.Exec(
		`INSERT INTO saves (game_id, slot, metadata, payload, created_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id, slot) DO UPDATE SET
			metadata = excluded.metadata,
			payload = excluded.payload,
			created_at = CURRENT_TIMESTAMP`,
		gameID, slot, string(meta), payload,
	); err != nil {
		return fmt.Errorf("storage: cannot write save: %w", err)
	}
	return nil
}

// LoadState reads a save record; engine.ErrNoSave for an unused slot.
func (s *Store) LoadState(gameID string, slot int) (*engine.SaveRecord, error) {
	if slot < 1 || slot > MaxSaveSlots {
		return nil, fmt.Errorf("storage: save slot %d out of range 1..%d", slot, MaxSaveSlots)
	}

	var meta string
	var payload []byte
	var createdAt any
	err := s.db.QueryRow(
		"SELECT metadata, payload, created_at FROM saves WHERE game_id = ? AND slot = ?",
		gameID, slot,
	).Scan(&meta, &payload, &createdAt)
	if err == sql.ErrNoRows {
		return nil, engine.ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read save: %w", err)
	}

	rec := &engine.SaveRecord{
		GameID:    gameID,
		Slot:      slot,
		CreatedAt: parseTime(createdAt),
		Payload:   payload,
		Metadata:  map[string]any{},
	}
	if err := json.Unmarshal([]byte(meta), &rec.Metadata); err != nil {
		return nil, fmt.Errorf("storage: corrupt save metadata: %w", err)
	}
	return rec, nil
}

// DeleteSave removes a save record; deleting an empty slot is a no-op.
func (s *Store) DeleteSave(gameID string, slot int) error {
	if slot < 1 || slot > MaxSaveSlots {
		return fmt.Errorf("storage: save slot %d out of range 1..%d", slot, MaxSaveSlots)
	}
	if _, err := s.db.Exec(
		"DELETE FROM saves WHERE game_id = ? AND slot = ?", gameID, slot,
	); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// ListSaves describes all slots of a game, including empty ones.
func (s *Store) ListSaves(gameID string) ([]SaveInfo, error) {
	rows, err := s.db.Query(
		"SELECT slot, metadata, created_at FROM saves WHERE game_id = ? ORDER BY slot",
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	bySlot := make(map[int]SaveInfo)
	for rows.Next() {
		var info SaveInfo
		var meta string
		var createdAt any
		if err := rows.Scan(&info.Slot, &meta, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan save row: %w", err)
		}
		info.Exists = true
		info.CreatedAt = parseTime(createdAt)
		info.Metadata = map[string]any{}
		//nolint:errcheck // metadata display is best-effort
		json.Unmarshal([]byte(meta), &info.Metadata)
		bySlot[info.Slot] = info
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	out := make([]SaveInfo, 0, MaxSaveSlots)
	for slot := 1; slot <= MaxSaveSlots; slot++ {
		if info, ok := bySlot[slot]; ok {
			out = append(out, info)
		} else {
			out = append(out, SaveInfo{Slot: slot, Metadata: map[string]any{}})
		}
	}
	return out, nil
}

// savesView adapts the store to engine.SaveService.
type savesView struct{ s *Store }

func (v savesView) Store(gameID string, slot int, metadata map[string]any, payload []byte) error {
	return v.s.SaveState(gameID, slot, metadata, payload)
}

func (v savesView) Retrieve(gameID string, slot int) (*engine.SaveRecord, error) {
	return v.s.LoadState(gameID, slot)
}
