// Package stats persists per-user exercise aggregates and a per-event
// log in SQLite. It is the concrete stats collaborator behind the
// session manager's StatsRecorder interface.
package stats

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fitmotion/repcore/internal/exercise"
)

// Store wraps the stats database.
type Store struct {
	*sql.DB

	// sessionID tags log rows with the originating session. Set once
	// at startup, before concurrent use.
	sessionID string
}

// Open opens (creating if necessary) the stats database at path and
// brings the schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %w", err)
	}

	s := &Store{DB: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// SetSession tags subsequent log rows with the given session ID.
func (s *Store) SetSession(id string) {
	s.sessionID = id
}

// AddExerciseCount records n completed repetitions of ex.
func (s *Store) AddExerciseCount(ex exercise.Exercise, n int) error {
	if n <= 0 {
		return nil
	}

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin stats transaction: %w", err)
	}
	defer tx.Rollback()

	var column string
	switch ex {
	case exercise.Pushup:
		column = "pushup_reps"
	case exercise.Squat:
		column = "squat_reps"
	default:
		return fmt.Errorf("exercise %q has no rep counter", ex)
	}

	query := fmt.Sprintf(
		`UPDATE user_stats SET %s = %s + ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
		column, column)
	if _, err := tx.Exec(query, n); err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}

	if _, err := tx.Exec(
		`INSERT INTO exercise_log (session_id, exercise, reps) VALUES (?, ?, ?)`,
		s.sessionID, string(ex), n); err != nil {
		return fmt.Errorf("failed to log %s reps: %w", ex, err)
	}

	return tx.Commit()
}

// AddPlankTime records a completed plank hold.
func (s *Store) AddPlankTime(d time.Duration) error {
	if d <= 0 {
		return nil
	}

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin stats transaction: %w", err)
	}
	defer tx.Rollback()

	ms := d.Milliseconds()
	if _, err := tx.Exec(
		`UPDATE user_stats SET plank_millis = plank_millis + ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
		ms); err != nil {
		return fmt.Errorf("failed to update plank time: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO exercise_log (session_id, exercise, plank_millis) VALUES (?, ?, ?)`,
		s.sessionID, string(exercise.Plank), ms); err != nil {
		return fmt.Errorf("failed to log plank time: %w", err)
	}

	return tx.Commit()
}

// UserStats is the persistent aggregate for one user.
type UserStats struct {
	PushupReps  int       `json:"pushup_reps"`
	SquatReps   int       `json:"squat_reps"`
	PlankMillis int64     `json:"plank_ms"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserStats returns the current aggregates.
func (s *Store) UserStats() (UserStats, error) {
	var us UserStats
	err := s.QueryRow(
		`SELECT pushup_reps, squat_reps, plank_millis, updated_at FROM user_stats WHERE id = 1`,
	).Scan(&us.PushupReps, &us.SquatReps, &us.PlankMillis, &us.UpdatedAt)
	if err != nil {
		return UserStats{}, fmt.Errorf("failed to read user stats: %w", err)
	}
	return us, nil
}

// SaveUserStats overwrites the aggregates. Intended for external
// restore flows; normal updates go through AddExerciseCount and
// AddPlankTime.
func (s *Store) SaveUserStats(us UserStats) error {
	_, err := s.Exec(
		`UPDATE user_stats
		 SET pushup_reps = ?, squat_reps = ?, plank_millis = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1`,
		us.PushupReps, us.SquatReps, us.PlankMillis)
	if err != nil {
		return fmt.Errorf("failed to save user stats: %w", err)
	}
	return nil
}

// DailyTotal is one day of aggregated activity.
type DailyTotal struct {
	Day         string `json:"day"` // YYYY-MM-DD
	Exercise    string `json:"exercise"`
	Reps        int    `json:"reps"`
	PlankMillis int64  `json:"plank_ms"`
}

// DailyTotals returns per-day, per-exercise totals from the event log
// since the given time, oldest first.
func (s *Store) DailyTotals(since time.Time) ([]DailyTotal, error) {
	rows, err := s.Query(
		`SELECT date(recorded_at), exercise, SUM(reps), SUM(plank_millis)
		 FROM exercise_log
		 WHERE recorded_at >= ?
		 GROUP BY date(recorded_at), exercise
		 ORDER BY date(recorded_at)`,
		since.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var dt DailyTotal
		if err := rows.Scan(&dt.Day, &dt.Exercise, &dt.Reps, &dt.PlankMillis); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		totals = append(totals, dt)
	}
	return totals, rows.Err()
}
