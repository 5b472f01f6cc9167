package achievements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Querulantenkind/cli-game-collection/internal/storage"
)

type memStore struct {
	unlocked map[string]time.Time
}

func newMemStore() *memStore {
	return &memStore{unlocked: make(map[string]time.Time)}
}

func (m *memStore) Unlock(id string) error {
	if _, ok := m.unlocked[id]; !ok {
		m.unlocked[id] = time.Now()
	}
	return nil
}

func (m *memStore) Unlocks() (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(m.unlocked))
	for k, v := range m.unlocked {
		out[k] = v
	}
	return out, nil
}

type memStats struct {
	all map[string]*storage.GameStats
}

func (m *memStats) AllStats() (map[string]*storage.GameStats, error) {
	return m.all, nil
}

func TestEvaluateUnlocksByScore(t *testing.T) {
	svc := New(newMemStore(), nil, 0, nil)

	ids, err := svc.Evaluate("snake", map[string]any{"score": 120, "won": false})
	require.NoError(t, err)
	assert.Equal(t, []string{"snake_100"}, ids)
}

func TestEvaluateMonotonic(t *testing.T) {
	svc := New(newMemStore(), nil, 0, nil)

	first, err := svc.Evaluate("snake", map[string]any{"score": 600})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"snake_100", "snake_500"}, first)

	again, err := svc.Evaluate("snake", map[string]any{"score": 600})
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestEvaluateScopedToGame(t *testing.T) {
	svc := New(newMemStore(), nil, 0, nil)

	ids, err := svc.Evaluate("pong", map[string]any{"score": 9999})
	require.NoError(t, err)
	assert.NotContains(t, ids, "snake_100")
}

func TestEvaluateMissingKeysNeverUnlock(t *testing.T) {
	svc := New(newMemStore(), nil, 0, nil)

	ids, err := svc.Evaluate("wordle", map[string]any{"won": true})
	require.NoError(t, err)
	assert.Contains(t, ids, "wordle_win")
	assert.NotContains(t, ids, "wordle_1guess")
}

func TestFirstHighScoreCrossGame(t *testing.T) {
	svc := New(newMemStore(), nil, 0, nil)

	ids, err := svc.Evaluate("minesweeper", map[string]any{"is_new_high": true})
	require.NoError(t, err)
	assert.Contains(t, ids, "first_high_score")
}

func TestCollectionAchievements(t *testing.T) {
	stats := &memStats{all: map[string]*storage.GameStats{
		"snake": {GamesPlayed: 3, GamesWon: 1},
		"pong":  {GamesPlayed: 1, GamesWon: 1},
	}}
	svc := New(newMemStore(), stats, 2, nil)

	ids, err := svc.Evaluate("pong", map[string]any{"won": true})
	require.NoError(t, err)
	assert.Contains(t, ids, "play_all")
	assert.Contains(t, ids, "win_all")
}

func TestCollectionRequiresFullCatalog(t *testing.T) {
	stats := &memStats{all: map[string]*storage.GameStats{
		"snake": {GamesPlayed: 3},
	}}
	svc := New(newMemStore(), stats, 6, nil)

	ids, err := svc.Evaluate("snake", map[string]any{})
	require.NoError(t, err)
	assert.NotContains(t, ids, "play_all")
}

func TestPoints(t *testing.T) {
	store := newMemStore()
	svc := New(store, nil, 0, nil)

	_, err := svc.Evaluate("snake", map[string]any{"score": 150})
	require.NoError(t, err)

	earned, total, err := svc.Points()
	require.NoError(t, err)
	assert.Equal(t, 10, earned)
	assert.Greater(t, total, earned)
}

func TestListMarksUnlocked(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Unlock("pong_win"))
	svc := New(store, nil, 0, nil)

	entries, err := svc.List()
	require.NoError(t, err)
	require.Len(t, entries, len(Catalog))

	var found bool
	for _, e := range entries {
		if e.ID == "pong_win" {
			found = true
			assert.True(t, e.Unlocked)
			assert.False(t, e.UnlockedAt.IsZero())
		} else {
			assert.False(t, e.Unlocked, e.ID)
		}
	}
	assert.True(t, found)
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Catalog {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.NotNil(t, a.Condition, a.ID)
		assert.Greater(t, a.Points, 0, a.ID)
	}
}
