package utils

import (
	"testing"
	"time"

	"github.com/misterclayt0n/formcoach/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "12.3s", FormatDuration(12300*time.Millisecond))
	assert.Equal(t, "2m05s", FormatDuration(125*time.Second))
	assert.Equal(t, "1h02m03s", FormatDuration(time.Hour+2*time.Minute+3*time.Second))
}

func TestStartOfWeek(t *testing.T) {
	// 2025-03-13 is a Thursday.
	thu := time.Date(2025, 3, 13, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(thu))

	sun := time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(sun))

	mon := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, StartOfWeek(mon))
}

func TestWeekStreak(t *testing.T) {
	now := time.Date(2025, 3, 13, 12, 0, 0, 0, time.UTC)
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 8, 0, 0, 0, time.UTC) }

	assert.Zero(t, WeekStreak(nil, now))
	assert.Equal(t, 3, WeekStreak([]time.Time{day(3, 11), day(3, 4), day(2, 24), day(2, 10)}, now))
	// Nothing this week yet: the streak still counts up to last week.
	assert.Equal(t, 2, WeekStreak([]time.Time{day(3, 5), day(2, 26)}, now))
	assert.Zero(t, WeekStreak([]time.Time{day(2, 20)}, now))
}

func TestRepsPerMinute(t *testing.T) {
	assert.InDelta(t, 12.0, RepsPerMinute(30, 150*time.Second), 1e-9)
	assert.Zero(t, RepsPerMinute(0, time.Minute))
	assert.Zero(t, RepsPerMinute(10, 0))
}

func TestPendingWorkout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.False(t, PendingWorkoutExists())

	start := time.Date(2025, 3, 13, 8, 0, 0, 0, time.UTC)
	want := &models.PendingWorkout{
		ExerciseID:   "squat",
		ExerciseName: "Squat",
		Source:       "squat.jsonl",
		StartTime:    start,
		EndTime:      start.Add(time.Minute),
		Reps:         2,
		Calories:     6.125,
		RepTimes:     []time.Time{start.Add(20 * time.Second), start.Add(40 * time.Second)},
	}
	require.NoError(t, SavePendingWorkout(want))
	assert.True(t, PendingWorkoutExists())

	got, err := LoadPendingWorkout()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, ClearPendingWorkout())
	assert.False(t, PendingWorkoutExists())
}
