package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/framesource"
	"github.com/misterclayt0n/formcoach/internal/pose"
	"github.com/misterclayt0n/formcoach/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordSquats(t *testing.T, reps int) *Recorder {
	t.Helper()
	squat, err := catalog.Default().Get("squat")
	require.NoError(t, err)

	tr := session.NewTracker(session.DefaultOptions())
	tr.SetExercise(squat)
	rec := ForExercise(squat)
	for _, f := range framesource.Synthesize(squat, framesource.DefaultScript(reps)) {
		rec.Add(tr.ProcessFrame(f))
	}
	return rec
}

func TestForExercise(t *testing.T) {
	squat, err := catalog.Default().Get("squat")
	require.NoError(t, err)
	assert.Equal(t, []string{pose.LeftKneeAngle, pose.RightKneeAngle}, ForExercise(squat).Names())

	assert.Len(t, ForExercise(nil).Names(), len(pose.AngleDefinitions))
}

func TestRecorder_Add(t *testing.T) {
	rec := recordSquats(t, 2)

	assert.Positive(t, rec.Len())
	require.Len(t, rec.RepTimes(), 2)
	assert.Greater(t, rec.RepTimes()[1], rec.RepTimes()[0])
	assert.Zero(t, rec.times[0])
}

func TestRecorder_MissingAngles(t *testing.T) {
	rec := NewRecorder(pose.LeftKneeAngle)
	rec.Add(session.Update{Frame: framesource.Frame{TimestampMillis: 0}})
	rec.Add(session.Update{Dropped: true})

	require.Equal(t, 1, rec.Len())

	var buf bytes.Buffer
	require.NoError(t, rec.WriteHTML(&buf, "empty"))
	assert.True(t, math.IsNaN(rec.values[pose.LeftKneeAngle][0]))
}

func TestWriteHTML(t *testing.T) {
	rec := recordSquats(t, 2)

	var buf bytes.Buffer
	require.NoError(t, rec.WriteHTML(&buf, "Squat session"))
	html := buf.String()
	assert.Contains(t, html, "Squat session")
	assert.Contains(t, html, pose.LeftKneeAngle)
	assert.Contains(t, html, "rep 2")
}

func TestSavePlot(t *testing.T) {
	rec := recordSquats(t, 1)

	path := filepath.Join(t.TempDir(), "squat.png")
	require.NoError(t, rec.SavePlot(path, "Squat session"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
