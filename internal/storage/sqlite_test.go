package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Querulantenkind/cli-game-collection/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "arcade.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordScoreNewHigh(t *testing.T) {
	s := openTestStore(t)

	steps := []struct {
		score int
		want  bool
	}{
		{100, true},  // first score is always a new high
		{100, false}, // matching the max is not
		{90, false},
		{150, true},
		{150, false},
	}
	for i, st := range steps {
		got, err := s.RecordScore("snake", st.score)
		if err != nil {
			t.Fatalf("step %d: RecordScore: %v", i, err)
		}
		if got != st.want {
			t.Errorf("step %d: score %d: isNewHigh = %v, want %v", i, st.score, got, st.want)
		}
	}

	high, err := s.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore: %v", err)
	}
	if high != 150 {
		t.Errorf("HighScore = %d, want 150", high)
	}
}

func TestScoresIsolatedPerGame(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.RecordScore("snake", 500); err != nil {
		t.Fatal(err)
	}
	got, err := s.RecordScore("pong", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("first pong score should be a new high despite snake records")
	}
}

func TestTopScoresTrimmed(t *testing.T) {
	s := openTestStore(t)

	for i := 1; i <= 15; i++ {
		if _, err := s.RecordScore("breakout", i*10); err != nil {
			t.Fatal(err)
		}
	}

	top, err := s.TopScores("breakout", 0)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(top) != maxScoresPerGame {
		t.Fatalf("kept %d scores, want %d", len(top), maxScoresPerGame)
	}
	if top[0].Score != 150 || top[len(top)-1].Score != 60 {
		t.Errorf("top window = %d..%d, want 150..60", top[0].Score, top[len(top)-1].Score)
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Fatalf("scores not descending at %d: %d > %d", i, top[i].Score, top[i-1].Score)
		}
	}
}

func TestStatsAggregates(t *testing.T) {
	s := openTestStore(t)

	if err := s.RecordStart("snake"); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordEnd("snake", 120, false, 30.5); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordStart("snake"); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordEnd("snake", 80, true, 12.25); err != nil {
		t.Fatal(err)
	}

	st, err := s.Stats("snake")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.GamesPlayed != 2 {
		t.Errorf("GamesPlayed = %d, want 2", st.GamesPlayed)
	}
	if st.GamesWon != 1 || st.GamesLost != 1 {
		t.Errorf("won/lost = %d/%d, want 1/1", st.GamesWon, st.GamesLost)
	}
	if st.TotalScore != 200 {
		t.Errorf("TotalScore = %d, want 200", st.TotalScore)
	}
	if st.BestScore != 120 {
		t.Errorf("BestScore = %d, want 120", st.BestScore)
	}
	if st.TotalPlayTime != 42.75 {
		t.Errorf("TotalPlayTime = %v, want 42.75", st.TotalPlayTime)
	}
}

func TestStatsUnknownGameIsZero(t *testing.T) {
	s := openTestStore(t)

	st, err := s.Stats("nosuch")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.GamesPlayed != 0 || st.BestScore != 0 {
		t.Errorf("expected zero aggregate, got %+v", st)
	}
}

func TestSessionRingEvictsOldest(t *testing.T) {
	s := openTestStore(t)

	for i := 1; i <= 25; i++ {
		if err := s.RecordEnd("snake", i, false, 1); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := s.RecentSessions("snake", 0)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(recent) != sessionRingSize {
		t.Fatalf("ring holds %d sessions, want %d", len(recent), sessionRingSize)
	}
	// Newest first: scores 25 down to 6; 1..5 were evicted.
	if recent[0].Score != 25 {
		t.Errorf("newest score = %d, want 25", recent[0].Score)
	}
	if recent[len(recent)-1].Score != 6 {
		t.Errorf("oldest kept score = %d, want 6", recent[len(recent)-1].Score)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := openTestStore(t)

	meta := map[string]any{"score": float64(42), "level": float64(3)}
	payload := []byte(`{"grid":[1,2,3]}`)
	if err := s.SaveState("t2048", 2, meta, payload); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	rec, err := s.LoadState("t2048", 2)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if rec.GameID != "t2048" || rec.Slot != 2 {
		t.Errorf("record identity = %s/%d", rec.GameID, rec.Slot)
	}
	if string(rec.Payload) != string(payload) {
		t.Errorf("payload = %q, want %q", rec.Payload, payload)
	}
	if rec.Metadata["score"] != float64(42) || rec.Metadata["level"] != float64(3) {
		t.Errorf("metadata = %v", rec.Metadata)
	}
}

func TestSaveOverwrite(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveState("snake", 1, nil, []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveState("snake", 1, nil, []byte("new")); err != nil {
		t.Fatal(err)
	}

	rec, err := s.LoadState("snake", 1)
	if err != nil {
		t.Fatal(err)
	}
	if string(rec.Payload) != "new" {
		t.Errorf("payload = %q, want %q", rec.Payload, "new")
	}
}

func TestLoadAbsentSlot(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadState("snake", 3)
	if !errors.Is(err, engine.ErrNoSave) {
		t.Errorf("LoadState on empty slot: err = %v, want ErrNoSave", err)
	}
}

func TestSaveSlotBounds(t *testing.T) {
	s := openTestStore(t)

	for _, slot := range []int{0, -1, MaxSaveSlots + 1} {
		if err := s.SaveState("snake", slot, nil, nil); err == nil {
			t.Errorf("slot %d: expected error", slot)
		}
	}
}

func TestDeleteSave(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveState("wordle", 4, nil, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteSave("wordle", 4); err != nil {
		t.Fatalf("DeleteSave: %v", err)
	}
	if _, err := s.LoadState("wordle", 4); !errors.Is(err, engine.ErrNoSave) {
		t.Errorf("after delete: err = %v, want ErrNoSave", err)
	}
}

func TestListSavesCoversAllSlots(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveState("pong", 2, map[string]any{"score": float64(7)}, []byte("p")); err != nil {
		t.Fatal(err)
	}

	infos, err := s.ListSaves("pong")
	if err != nil {
		t.Fatalf("ListSaves: %v", err)
	}
	if len(infos) != MaxSaveSlots {
		t.Fatalf("listed %d slots, want %d", len(infos), MaxSaveSlots)
	}
	for i, info := range infos {
		if info.Slot != i+1 {
			t.Errorf("slot order: infos[%d].Slot = %d", i, info.Slot)
		}
		if want := info.Slot == 2; info.Exists != want {
			t.Errorf("slot %d: Exists = %v, want %v", info.Slot, info.Exists, want)
		}
	}
}

func TestAchievementUnlockIdempotent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Unlock("first_win"); err != nil {
		t.Fatal(err)
	}
	if err := s.Unlock("first_win"); err != nil {
		t.Fatalf("second unlock: %v", err)
	}

	ok, err := s.IsUnlocked("first_win")
	if err != nil || !ok {
		t.Errorf("IsUnlocked = %v, %v", ok, err)
	}
	ok, err = s.IsUnlocked("other")
	if err != nil || ok {
		t.Errorf("IsUnlocked(other) = %v, %v", ok, err)
	}

	all, err := s.Unlocks()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("Unlocks holds %d ids, want 1", len(all))
	}
}

func TestChallengeStreak(t *testing.T) {
	s := openTestStore(t)

	today := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	for _, back := range []int{0, 1, 2, 5, 6} {
		day := today.AddDate(0, 0, -back).Format("2006-01-02")
		if err := s.CompleteChallenge(day, fmt.Sprintf("c%d", back), 10); err != nil {
			t.Fatal(err)
		}
	}

	current, best, err := s.ChallengeStreak(today)
	if err != nil {
		t.Fatalf("ChallengeStreak: %v", err)
	}
	if current != 3 {
		t.Errorf("current streak = %d, want 3", current)
	}
	if best != 3 {
		t.Errorf("best streak = %d, want 3", best)
	}

	pts, err := s.ChallengePoints()
	if err != nil {
		t.Fatal(err)
	}
	if pts != 50 {
		t.Errorf("total points = %d, want 50", pts)
	}
}

func TestChallengeStreakBroken(t *testing.T) {
	s := openTestStore(t)

	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	for _, back := range []int{3, 4, 5, 6} {
		day := today.AddDate(0, 0, -back).Format("2006-01-02")
		if err := s.CompleteChallenge(day, "daily", 5); err != nil {
			t.Fatal(err)
		}
	}

	current, best, err := s.ChallengeStreak(today)
	if err != nil {
		t.Fatal(err)
	}
	if current != 0 {
		t.Errorf("current streak = %d, want 0", current)
	}
	if best != 4 {
		t.Errorf("best streak = %d, want 4", best)
	}
}

func TestChallengeCompletionIdempotent(t *testing.T) {
	s := openTestStore(t)

	if err := s.CompleteChallenge("2026-08-28", "daily", 10); err != nil {
		t.Fatal(err)
	}
	if err := s.CompleteChallenge("2026-08-28", "daily", 10); err != nil {
		t.Fatal(err)
	}

	pts, err := s.ChallengePoints()
	if err != nil {
		t.Fatal(err)
	}
	if pts != 10 {
		t.Errorf("points = %d after duplicate completion, want 10", pts)
	}
}
