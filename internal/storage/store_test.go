package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/YashSadhu/mentme/internal/model"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "mentme-test.db")
	store, err := OpenSQLite(dbPath, "test-user")
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func fullState(t *testing.T) model.State {
	t.Helper()
	completed := time.Date(2026, 8, 29, 21, 15, 0, 0, time.UTC)
	checkin := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	return model.State{
		CurrentGoal:            "write every day",
		CurrentDifficulty:      65,
		WeeklyPerformance:      []int{5, 8, 12, 7, 9, 6, 11},
		ConsecutiveMisses:      1,
		ConsecutiveCompletions: 4,
		DailyTasks: []model.DailyTask{
			{
				ID: "task-1", Date: "2026-08-29", Title: "Teach it back",
				Description: "Write 15 sentences explaining yesterday's hardest idea as if to a beginner.",
				GoalCategory: "understanding", EstimatedMinutes: 25,
				Tier: model.TierMedium, Type: model.TaskTypeCreation,
				Completed: true, CompletedAt: &completed, CompletionMinutes: 18,
				Reflection: "Harder than expected but clarifying.",
			},
			{
				ID: "task-2", Date: "2026-08-30", Title: "Pattern hunt",
				Description: "Pick 3 recent mistakes and write what they have in common and one counter-habit.",
				GoalCategory: "self-awareness", EstimatedMinutes: 20,
				Tier: model.TierMedium, Type: model.TaskTypeAnalysis,
			},
		},
		StretchChallenges: []model.StretchChallenge{
			{
				ID: "challenge-1", WeekOf: "2026-08-24", Title: "Teach a stranger",
				Description: "Explain your current learning topic to someone outside your field until they can repeat it back.",
				Rationale:   "Teaching forces compression of understanding and reveals the gaps reading hides.",
				DifficultyIncrease: 30,
			},
		},
		MoodEntries: []model.MoodEntry{
			{ID: "mood-1", At: checkin, Mood: model.MoodAnxious, AdaptedExercise: "breathe", AdaptedTone: "calm and supportive"},
		},
		Milestones: []model.Milestone{
			{ID: "milestone-1", At: completed, Type: model.MilestoneDailyTask, Title: "Finished the teach-back", Reflection: "good", Tags: []string{"focus", "courage"}},
		},
		VisionReviews: []model.VisionReview{
			{ID: "vision-1", At: checkin, Title: "Q3 review", Body: "steady", Wins: []string{"shipped"}},
		},
		LegacyLetters: []model.LegacyLetter{
			{ID: "letter-1", At: checkin, Title: "To 2027 me", Body: "keep going", Values: []string{"patience"}},
		},
	}
}

func TestSQLiteLoadMissingNamespace(t *testing.T) {
	store := setupSQLiteStore(t)
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestSQLiteSnapshotRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()
	want := fullState(t)

	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestSQLiteSaveOverwrites(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	first := model.NewState()
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := fullState(t)
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentDifficulty != second.CurrentDifficulty || len(got.DailyTasks) != len(second.DailyTasks) {
		t.Fatalf("expected second snapshot to win, got %+v", got)
	}
}

func TestSQLiteNamespacesAreIsolated(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mentme-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	alpha, err := NewSQLiteStore(db, "alpha")
	if err != nil {
		t.Fatalf("new alpha store: %v", err)
	}
	beta, err := NewSQLiteStore(db, "beta")
	if err != nil {
		t.Fatalf("new beta store: %v", err)
	}

	ctx := context.Background()
	state := fullState(t)
	if err := alpha.Save(ctx, state); err != nil {
		t.Fatalf("save alpha: %v", err)
	}
	if _, err := beta.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected beta namespace to be empty, got: %v", err)
	}
}

func TestMigrateDownThenUp(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db, "after-migrate")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save(context.Background(), model.NewState()); err != nil {
		t.Fatalf("save after re-migrate: %v", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on fresh memory store, got: %v", err)
	}

	want := fullState(t)
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("memory round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
	if store.Saves() != 1 {
		t.Fatalf("saves = %d, want 1", store.Saves())
	}
}
