package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/misterclayt0n/formcoach/internal/config"
	"github.com/misterclayt0n/formcoach/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "formcoach.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testWorkout(exerciseID string, start time.Time, reps int) models.Workout {
	w := models.Workout{
		ExerciseID:     exerciseID,
		ExerciseName:   gofakeit.Word(),
		StartTime:      start,
		EndTime:        start.Add(2 * time.Minute),
		Reps:           reps,
		Calories:       float64(reps) * 0.5,
		AvgRepInterval: 3.25,
		Source:         gofakeit.Word() + ".jsonl",
		Notes:          gofakeit.Sentence(4),
	}
	for i := 0; i < reps; i++ {
		// Sub-second timestamps exercise the fixed-width time layout.
		w.RepEvents = append(w.RepEvents, models.RepEvent{
			Rep:       i + 1,
			Timestamp: start.Add(time.Duration(i+1)*3*time.Second + time.Duration(i)*time.Nanosecond),
		})
	}
	return w
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, "libsql", driverFor("libsql://db-user.turso.io?authToken=x"))
	assert.Equal(t, "libsql", driverFor("https://db-user.turso.io"))
	assert.Equal(t, "libsql", driverFor("wss://db-user.turso.io"))
	assert.Equal(t, "sqlite", driverFor("file:./local.db?cache=shared&mode=rwc"))
	assert.Equal(t, "sqlite", driverFor("/tmp/formcoach.db"))
}

func TestOpen_Migrates(t *testing.T) {
	st := newTestStorage(t)

	version, dirty, err := st.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// Reopening an up-to-date database is a no-op.
	require.NoError(t, st.MigrateUp())
}

func TestNewStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configured.db")
	st, err := NewStorage(&config.Config{DB: config.DBConfig{ConnectionString: path}})
	require.NoError(t, err)
	defer st.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPrefs(t *testing.T) {
	st := newTestStorage(t)

	_, ok, err := st.GetPref("theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.SetPref("theme", "dark"))
	require.NoError(t, st.SetPref("theme", "light"))
	v, ok, err := st.GetPref("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestProfile(t *testing.T) {
	st := newTestStorage(t)

	_, err := st.Profile()
	assert.ErrorIs(t, err, ErrNotOnboarded)

	want := models.Profile{DisplayName: gofakeit.FirstName(), OnboardingComplete: true, WeightKg: 72.5}
	require.NoError(t, st.SaveProfile(want))

	got, err := st.Profile()
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	require.NoError(t, st.SaveProfile(models.Profile{DisplayName: want.DisplayName}))
	_, err = st.Profile()
	assert.ErrorIs(t, err, ErrNotOnboarded)
}

func TestSaveAndGetWorkout(t *testing.T) {
	st := newTestStorage(t)
	start := time.Date(2025, 3, 10, 7, 30, 0, 123456789, time.UTC)

	w := testWorkout("squat", start, 3)
	id, err := st.SaveWorkout(w)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := st.GetWorkoutByID(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, w.ExerciseName, got.ExerciseName)
	assert.True(t, w.StartTime.Equal(got.StartTime))
	assert.True(t, w.EndTime.Equal(got.EndTime))
	assert.Equal(t, 3, got.Reps)
	assert.Equal(t, w.Calories, got.Calories)
	assert.Equal(t, w.AvgRepInterval, got.AvgRepInterval)
	assert.Equal(t, w.Source, got.Source)
	assert.Equal(t, w.Notes, got.Notes)
	assert.False(t, got.CreatedAt.IsZero())
	require.Len(t, got.RepEvents, 3)
	for i, ev := range got.RepEvents {
		assert.Equal(t, i+1, ev.Rep)
		assert.True(t, w.RepEvents[i].Timestamp.Equal(ev.Timestamp))
	}

	exists, err := st.WorkoutExists(id)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, st.UpdateWorkoutNotes(id, "felt strong"))
	got, err = st.GetWorkoutByID(id)
	require.NoError(t, err)
	assert.Equal(t, "felt strong", got.Notes)
	assert.ErrorIs(t, st.UpdateWorkoutNotes("missing", "x"), ErrWorkoutNotFound)

	_, err = st.GetWorkoutByID("missing")
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestGetWorkouts(t *testing.T) {
	st := newTestStorage(t)
	base := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)

	for i, ex := range []string{"squat", "pushup", "squat", "lunge"} {
		_, err := st.SaveWorkout(testWorkout(ex, base.AddDate(0, 0, i), i+1))
		require.NoError(t, err)
	}

	all, err := st.GetAllWorkouts()
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "lunge", all[0].ExerciseID)
	assert.Nil(t, all[0].RepEvents)

	between, err := st.GetWorkoutsBetween(base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, between, 2)
	assert.Equal(t, "squat", between[0].ExerciseID)
	assert.Equal(t, "pushup", between[1].ExerciseID)

	totals, err := st.ExerciseTotals()
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, "lunge", totals[0].ExerciseID)
	assert.Equal(t, "squat", totals[1].ExerciseID)
	assert.Equal(t, 2, totals[1].Workouts)
	assert.Equal(t, 4, totals[1].Reps)
	assert.InDelta(t, 2.0, totals[1].Calories, 1e-9)
	assert.True(t, base.AddDate(0, 0, 2).Equal(totals[1].LastWorkout))
}

func TestDeleteWorkout(t *testing.T) {
	st := newTestStorage(t)
	id, err := st.SaveWorkout(testWorkout("squat", time.Now(), 2))
	require.NoError(t, err)

	require.NoError(t, st.DeleteWorkout(id))
	exists, err := st.WorkoutExists(id)
	require.NoError(t, err)
	assert.False(t, exists)

	events, err := st.GetRepEvents(id)
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.ErrorIs(t, st.DeleteWorkout(id), ErrWorkoutNotFound)
}

func TestExportImport(t *testing.T) {
	src := newTestStorage(t)
	require.NoError(t, src.SaveProfile(models.Profile{DisplayName: "Ana", OnboardingComplete: true, WeightKg: 60}))
	start := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	id, err := src.SaveWorkout(testWorkout("pushup", start, 4))
	require.NoError(t, err)

	dump := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, src.ExportDBToTOML(dump))

	dst := newTestStorage(t)
	// Existing rows are replaced by the dump.
	_, err = dst.SaveWorkout(testWorkout("lunge", start, 1))
	require.NoError(t, err)
	require.NoError(t, dst.ImportDBFromTOML(dump))

	all, err := dst.GetAllWorkouts()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)

	got, err := dst.GetWorkoutByID(id)
	require.NoError(t, err)
	assert.Len(t, got.RepEvents, 4)

	profile, err := dst.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.DisplayName)
	assert.Equal(t, 60.0, profile.WeightKg)
}

func TestImportRejectsUnknownTables(t *testing.T) {
	st := newTestStorage(t)
	dump := filepath.Join(t.TempDir(), "dump.toml")

	require.NoError(t, os.WriteFile(dump, []byte("[[sqlite_master]]\nname = \"x\"\n"), 0o644))
	assert.ErrorContains(t, st.ImportDBFromTOML(dump), "unknown table")

	require.NoError(t, os.WriteFile(dump, []byte("[[user_prefs]]\nkey = \"a\"\n\"value; DROP\" = \"b\"\n"), 0o644))
	assert.ErrorContains(t, st.ImportDBFromTOML(dump), "invalid column")
}
