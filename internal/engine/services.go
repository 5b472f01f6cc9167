package engine

import "time"

// The persistence services are external collaborators. Every field of
// Services may be nil; the engine then skips the corresponding bridge
// call, so a session can run without any backing store.

// ScoreService records final scores. Record returns whether the score
// is a new maximum for the game.
type ScoreService interface {
	Record(gameID string, score int) (isNewHigh bool, err error)
}

// StatsService tracks per-game aggregates and recent sessions.
type StatsService interface {
	RecordStart(gameID string) error
	RecordEnd(gameID string, score int, won bool, playTime float64) error
}

// AchievementService evaluates achievement predicates against a
// behavior-supplied state snapshot and returns newly unlocked ids.
type AchievementService interface {
	Evaluate(gameID string, snapshot map[string]any) ([]string, error)
}

// SaveRecord is one stored save slot.
type SaveRecord struct {
	GameID    string
	Slot      int
	CreatedAt time.Time
	Metadata  map[string]any
	Payload   []byte
}

// SaveService stores and retrieves save records. Slots run 1..5;
// storing to an occupied slot overwrites it, retrieving an unused slot
// returns ErrNoSave.
type SaveService interface {
	Store(gameID string, slot int, metadata map[string]any, payload []byte) error
	Retrieve(gameID string, slot int) (*SaveRecord, error)
}

// SettingsService answers read-only setting lookups. The engine uses it
// to derive the effective delta-time scaling.
type SettingsService interface {
	Get(gameID, key, def string) string
}

// Services bundles the persistence collaborators of one session.
type Services struct {
	Scores       ScoreService
	Stats        StatsService
	Achievements AchievementService
	Saves        SaveService
	Settings     SettingsService
}
