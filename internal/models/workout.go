package models

import "time"

type Workout struct {
	ID           string    `json:"id"`
	ExerciseID   string    `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Reps         int       `json:"reps"`
	Calories     float64   `json:"calories"`
	// AvgRepInterval is in seconds, zero with fewer than two reps.
	AvgRepInterval float64 `json:"avg_rep_interval"`
	// Source is the recording the workout was tracked from.
	Source    string     `json:"source"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	RepEvents []RepEvent `json:"rep_events"`
}

func (w Workout) Duration() time.Duration {
	return w.EndTime.Sub(w.StartTime)
}

type RepEvent struct {
	Rep       int       `json:"rep"`
	Timestamp time.Time `json:"timestamp"`
}

type Profile struct {
	DisplayName        string  `json:"display_name"`
	OnboardingComplete bool    `json:"onboarding_complete"`
	WeightKg           float64 `json:"weight_kg"`
}

// ExerciseTotals aggregates the stored workouts of one exercise.
type ExerciseTotals struct {
	ExerciseID   string
	ExerciseName string
	Workouts     int
	Reps         int
	Calories     float64
	LastWorkout  time.Time
}

//
// For TOML persistence only
//

// PendingWorkout is a tracked workout that has not been saved or discarded yet.
type PendingWorkout struct {
	ExerciseID     string      `toml:"exercise_id"`
	ExerciseName   string      `toml:"exercise_name"`
	Source         string      `toml:"source"`
	Notes          string      `toml:"notes"`
	StartTime      time.Time   `toml:"start_time"`
	EndTime        time.Time   `toml:"end_time"`
	Reps           int         `toml:"reps"`
	Calories       float64     `toml:"calories"`
	AvgRepInterval float64     `toml:"avg_rep_interval"`
	RepTimes       []time.Time `toml:"rep_times"`
}

func (p PendingWorkout) Workout() Workout {
	w := Workout{
		ExerciseID:     p.ExerciseID,
		ExerciseName:   p.ExerciseName,
		StartTime:      p.StartTime,
		EndTime:        p.EndTime,
		Reps:           p.Reps,
		Calories:       p.Calories,
		AvgRepInterval: p.AvgRepInterval,
		Source:         p.Source,
		Notes:          p.Notes,
	}
	for i, ts := range p.RepTimes {
		w.RepEvents = append(w.RepEvents, RepEvent{Rep: i + 1, Timestamp: ts})
	}
	return w
}
