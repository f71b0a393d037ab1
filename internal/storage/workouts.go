package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/formcoach/internal/models"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// SaveWorkout stores w and its rep events, assigning an ID when w has none.
func (s *Storage) SaveWorkout(w models.Workout) (string, error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}

	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workout_sessions
		(id, exercise_id, exercise_name, start_time, end_time, reps, calories, avg_rep_interval, source, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID,
		w.ExerciseID,
		w.ExerciseName,
		formatTime(w.StartTime),
		formatTime(w.EndTime),
		w.Reps,
		w.Calories,
		w.AvgRepInterval,
		w.Source,
		w.Notes,
		formatTime(w.CreatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create workout: %w", err)
	}

	for _, ev := range w.RepEvents {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO rep_events (workout_id, rep, timestamp) VALUES (?, ?, ?)",
			w.ID, ev.Rep, formatTime(ev.Timestamp),
		)
		if err != nil {
			return "", fmt.Errorf("failed to save rep %d: %w", ev.Rep, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit workout: %w", err)
	}
	return w.ID, nil
}

const workoutColumns = `id, exercise_id, exercise_name, start_time, end_time, reps, calories, avg_rep_interval, source, notes, created_at`

func scanWorkout(scan func(...any) error) (models.Workout, error) {
	var w models.Workout
	var start, end, created string
	err := scan(
		&w.ID,
		&w.ExerciseID,
		&w.ExerciseName,
		&start,
		&end,
		&w.Reps,
		&w.Calories,
		&w.AvgRepInterval,
		&w.Source,
		&w.Notes,
		&created,
	)
	if err != nil {
		return w, err
	}
	w.StartTime = parseTime(start)
	w.EndTime = parseTime(end)
	w.CreatedAt = parseTime(created)
	return w, nil
}

func (s *Storage) queryWorkouts(query string, args ...any) ([]models.Workout, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workouts: %w", err)
	}
	defer rows.Close()

	var workouts []models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// GetAllWorkouts returns every stored workout, newest first, without rep events.
func (s *Storage) GetAllWorkouts() ([]models.Workout, error) {
	return s.queryWorkouts(`SELECT ` + workoutColumns + ` FROM workout_sessions ORDER BY start_time DESC`)
}

// GetWorkoutsBetween returns the workouts that started in [from, to), newest first.
func (s *Storage) GetWorkoutsBetween(from, to time.Time) ([]models.Workout, error) {
	return s.queryWorkouts(
		`SELECT `+workoutColumns+` FROM workout_sessions
		WHERE start_time >= ? AND start_time < ?
		ORDER BY start_time DESC`,
		formatTime(from), formatTime(to),
	)
}

// GetWorkoutByID returns the workout with its rep events.
func (s *Storage) GetWorkoutByID(id string) (*models.Workout, error) {
	row := s.DB.QueryRow(`SELECT `+workoutColumns+` FROM workout_sessions WHERE id = ?`, id)
	w, err := scanWorkout(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if w.RepEvents, err = s.GetRepEvents(id); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Storage) GetRepEvents(workoutID string) ([]models.RepEvent, error) {
	rows, err := s.DB.Query(
		"SELECT rep, timestamp FROM rep_events WHERE workout_id = ? ORDER BY rep ASC",
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query rep events: %w", err)
	}
	defer rows.Close()

	var events []models.RepEvent
	for rows.Next() {
		var ev models.RepEvent
		var ts string
		if err := rows.Scan(&ev.Rep, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan rep event: %w", err)
		}
		ev.Timestamp = parseTime(ts)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// DeleteWorkout removes a workout and its rep events.
func (s *Storage) DeleteWorkout(id string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rep_events WHERE workout_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete rep events: %w", err)
	}
	res, err := tx.Exec("DELETE FROM workout_sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	return tx.Commit()
}

func (s *Storage) WorkoutExists(id string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM workout_sessions WHERE id = ?)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check workout existence: %w", err)
	}
	return exists, nil
}

// ExerciseTotals aggregates stored workouts per exercise, most recently trained first.
func (s *Storage) ExerciseTotals() ([]models.ExerciseTotals, error) {
	rows, err := s.DB.Query(`
		SELECT exercise_id, MAX(exercise_name), COUNT(*), SUM(reps), SUM(calories), MAX(start_time)
		FROM workout_sessions
		GROUP BY exercise_id
		ORDER BY MAX(start_time) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	var totals []models.ExerciseTotals
	for rows.Next() {
		var t models.ExerciseTotals
		var last string
		if err := rows.Scan(&t.ExerciseID, &t.ExerciseName, &t.Workouts, &t.Reps, &t.Calories, &last); err != nil {
			return nil, fmt.Errorf("failed to scan totals: %w", err)
		}
		t.LastWorkout = parseTime(last)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *Storage) UpdateWorkoutNotes(id, notes string) error {
	res, err := s.DB.Exec("UPDATE workout_sessions SET notes = ? WHERE id = ?", notes, id)
	if err != nil {
		return fmt.Errorf("failed to update notes: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	return nil
}
