package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/fitmotion/repcore/internal/exercise"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesSingletonRow(t *testing.T) {
	s := openTestStore(t)

	us, err := s.UserStats()
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if us.PushupReps != 0 || us.SquatReps != 0 || us.PlankMillis != 0 {
		t.Errorf("expected zeroed aggregates, got %+v", us)
	}
}

func TestAddExerciseCount(t *testing.T) {
	s := openTestStore(t)
	s.SetSession("test-session")

	if err := s.AddExerciseCount(exercise.Pushup, 3); err != nil {
		t.Fatalf("AddExerciseCount pushup: %v", err)
	}
	if err := s.AddExerciseCount(exercise.Squat, 2); err != nil {
		t.Fatalf("AddExerciseCount squat: %v", err)
	}
	if err := s.AddExerciseCount(exercise.Pushup, 1); err != nil {
		t.Fatalf("AddExerciseCount pushup: %v", err)
	}

	us, err := s.UserStats()
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if us.PushupReps != 4 {
		t.Errorf("expected 4 pushup reps, got %d", us.PushupReps)
	}
	if us.SquatReps != 2 {
		t.Errorf("expected 2 squat reps, got %d", us.SquatReps)
	}

	var logged int
	if err := s.QueryRow(
		`SELECT COUNT(*) FROM exercise_log WHERE session_id = ?`, "test-session",
	).Scan(&logged); err != nil {
		t.Fatalf("count log rows: %v", err)
	}
	if logged != 3 {
		t.Errorf("expected 3 log rows, got %d", logged)
	}
}

func TestAddExerciseCountRejectsPlank(t *testing.T) {
	s := openTestStore(t)
	if err := s.AddExerciseCount(exercise.Plank, 1); err == nil {
		t.Fatal("expected error for plank rep count")
	}
}

func TestAddExerciseCountIgnoresNonPositive(t *testing.T) {
	s := openTestStore(t)
	if err := s.AddExerciseCount(exercise.Pushup, 0); err != nil {
		t.Fatalf("AddExerciseCount: %v", err)
	}
	us, err := s.UserStats()
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if us.PushupReps != 0 {
		t.Errorf("expected 0 pushup reps, got %d", us.PushupReps)
	}
}

func TestAddPlankTime(t *testing.T) {
	s := openTestStore(t)

	if err := s.AddPlankTime(3 * time.Second); err != nil {
		t.Fatalf("AddPlankTime: %v", err)
	}
	if err := s.AddPlankTime(1500 * time.Millisecond); err != nil {
		t.Fatalf("AddPlankTime: %v", err)
	}
	if err := s.AddPlankTime(0); err != nil {
		t.Fatalf("AddPlankTime zero: %v", err)
	}

	us, err := s.UserStats()
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if us.PlankMillis != 4500 {
		t.Errorf("expected 4500 plank millis, got %d", us.PlankMillis)
	}
}

func TestSaveUserStats(t *testing.T) {
	s := openTestStore(t)

	want := UserStats{PushupReps: 10, SquatReps: 20, PlankMillis: 30000}
	if err := s.SaveUserStats(want); err != nil {
		t.Fatalf("SaveUserStats: %v", err)
	}

	got, err := s.UserStats()
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(UserStats{}, "UpdatedAt")); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDailyTotals(t *testing.T) {
	s := openTestStore(t)
	s.SetSession("test-session")

	if err := s.AddExerciseCount(exercise.Pushup, 5); err != nil {
		t.Fatalf("AddExerciseCount: %v", err)
	}
	if err := s.AddExerciseCount(exercise.Pushup, 3); err != nil {
		t.Fatalf("AddExerciseCount: %v", err)
	}
	if err := s.AddPlankTime(2 * time.Second); err != nil {
		t.Fatalf("AddPlankTime: %v", err)
	}

	totals, err := s.DailyTotals(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("DailyTotals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals (pushup + plank), got %d: %+v", len(totals), totals)
	}

	day := time.Now().UTC().Format("2006-01-02")
	want := []DailyTotal{
		{Day: day, Exercise: "plank", PlankMillis: 2000},
		{Day: day, Exercise: "pushup", Reps: 8},
	}
	sortTotals := cmpopts.SortSlices(func(a, b DailyTotal) bool { return a.Exercise < b.Exercise })
	if diff := cmp.Diff(want, totals, sortTotals); diff != "" {
		t.Errorf("daily totals mismatch (-want +got):\n%s", diff)
	}

	// A cutoff in the future excludes everything.
	future, err := s.DailyTotals(time.Now().Add(24 * time.Hour))
	if err != nil {
		t.Fatalf("DailyTotals future: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("expected no totals past the cutoff, got %+v", future)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}
}
