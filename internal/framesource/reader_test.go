package framesource

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/pose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain fails the package if a test leaves goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sample = `{"timestamp_ms": 1000, "landmarks": [{"x": 0.5, "y": 0.25, "z": -0.1, "visibility": 0.9}]}

{"timestamp_ms": 1033, "landmarks": [{"x": 0.51, "y": 0.26, "z": -0.1}]}
`

func TestReader_Next(t *testing.T) {
	r := NewReader(strings.NewReader(sample))

	f, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), f.TimestampMillis)
	require.Len(t, f.Landmarks, 1)
	assert.Equal(t, 0.9, f.Landmarks[0].VisibilityScore())
	assert.Equal(t, time.UnixMilli(1000).UTC(), f.Time())

	f, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(1033), f.TimestampMillis)
	assert.Nil(t, f.Landmarks[0].Visibility)

	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReader_BadLine(t *testing.T) {
	r := NewReader(strings.NewReader("{\"timestamp_ms\": 1}\nnot json\n"))
	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	frames, err := ReadAll(path)
	require.NoError(t, err)
	assert.Len(t, frames, 2)

	_, err = ReadAll(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestStream(t *testing.T) {
	frames, errc := Stream(context.Background(), strings.NewReader(sample))

	var got []Frame
	for f := range frames {
		got = append(got, f)
	}
	assert.Len(t, got, 2)
	assert.NoError(t, <-errc)
}

func TestStream_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames, errc := Stream(ctx, strings.NewReader(sample))
	cancel()

	// Nothing is read: the producer observes the cancellation while blocked on send.
	time.Sleep(10 * time.Millisecond)
	for range frames {
	}
	err := <-errc
	if err != nil {
		assert.True(t, errors.Is(err, context.Canceled))
	}
}

func TestStream_CancelUnblocksPendingRead(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	frames, errc := Stream(ctx, pr)

	go func() {
		_, _ = pw.Write([]byte(sample))
	}()
	_, ok := <-frames
	require.True(t, ok)
	_, ok = <-frames
	require.True(t, ok)

	// The writer is idle now, so the stream is blocked reading.
	cancel()
	select {
	case _, ok := <-frames:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("frames channel still open after cancel")
	}
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestWrite_ReadBack(t *testing.T) {
	var buf bytes.Buffer
	src := []Frame{
		{TimestampMillis: 1, Landmarks: Skeleton(Standing)},
		{TimestampMillis: 2, Landmarks: Skeleton(Standing)},
	}
	require.NoError(t, Write(&buf, src))

	r := NewReader(&buf)
	for i := range src {
		f, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, src[i].TimestampMillis, f.TimestampMillis)
		assert.Len(t, f.Landmarks, pose.NumLandmarks)
	}
}

func TestSkeleton_PosesAngles(t *testing.T) {
	j := Joints{
		LeftKnee:      95,
		RightKnee:     150,
		LeftElbow:     40,
		RightElbow:    120,
		LeftShoulder:  170,
		RightShoulder: 30,
	}
	angles := pose.AllAngles(Skeleton(j))

	want := map[string]float64{
		pose.LeftKneeAngle:      95,
		pose.RightKneeAngle:     150,
		pose.LeftElbowAngle:     40,
		pose.RightElbowAngle:    120,
		pose.LeftShoulderAngle:  170,
		pose.RightShoulderAngle: 30,
	}
	for name, deg := range want {
		got, ok := angles.Value(name)
		require.True(t, ok, name)
		assert.InDelta(t, deg, got, 1e-6, name)
	}
}

func TestSynthesize(t *testing.T) {
	squat, err := catalog.Default().Get("squat")
	require.NoError(t, err)

	sc := DefaultScript(3)
	sc.StartMillis = 5000
	frames := Synthesize(squat, sc)

	perRep := len(squat.Phases) * (sc.HoldFrames + sc.MoveFrames)
	require.Len(t, frames, sc.HoldFrames+3*perRep)
	assert.Equal(t, int64(5000), frames[0].TimestampMillis)
	for i := 1; i < len(frames); i++ {
		assert.Greater(t, frames[i].TimestampMillis, frames[i-1].TimestampMillis)
	}

	// The recording starts and ends in the starting position.
	for _, f := range []Frame{frames[0], frames[len(frames)-1]} {
		assert.True(t, squat.Phases[0].Satisfied(pose.AllAngles(f.Landmarks)))
	}
}
