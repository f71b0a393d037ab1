package filter

import (
	"math"
	"testing"

	"github.com/misterclayt0n/formcoach/internal/pose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneEuro_FirstSampleUnchanged(t *testing.T) {
	f := NewDefaultOneEuro()
	assert.Equal(t, 0.42, f.Apply(0.42, 1000))
}

func TestOneEuro_ConstantInputConverges(t *testing.T) {
	f := NewDefaultOneEuro()
	var out float64
	for i := 0; i < 200; i++ {
		out = f.Apply(90, int64(i*33))
	}
	assert.InDelta(t, 90, out, 1e-9)
}

func TestOneEuro_ConvergesAfterStep(t *testing.T) {
	f := NewDefaultOneEuro()
	f.Apply(0, 0)
	var out float64
	for i := 1; i <= 300; i++ {
		out = f.Apply(1, int64(i*33))
	}
	assert.InDelta(t, 1, out, 1e-3)
}

func outlierDeviation(minCutoff float64) float64 {
	f := NewOneEuro(minCutoff, 0, DefaultDCutoff)
	ts := int64(0)
	for i := 0; i < 30; i++ {
		f.Apply(100, ts)
		ts += 33
	}
	out := f.Apply(150, ts)
	return math.Abs(out - 100)
}

func TestOneEuro_AttenuatesOutlier(t *testing.T) {
	dev := outlierDeviation(DefaultMinCutoff)
	assert.Greater(t, dev, 0.0)
	assert.Less(t, dev, 50.0)
}

func TestOneEuro_LowerMinCutoffSmoothsMore(t *testing.T) {
	high := outlierDeviation(2.0)
	mid := outlierDeviation(1.0)
	low := outlierDeviation(0.1)

	assert.Less(t, mid, high)
	assert.Less(t, low, mid)
}

func TestOneEuro_RepeatedTimestamp(t *testing.T) {
	f := NewDefaultOneEuro()
	f.Apply(10, 500)
	out := f.Apply(12, 500)
	assert.False(t, math.IsNaN(out))
	assert.False(t, math.IsInf(out, 0))
	assert.GreaterOrEqual(t, out, 10.0)
	assert.LessOrEqual(t, out, 12.0)
}

func TestOneEuro_Reset(t *testing.T) {
	f := NewDefaultOneEuro()
	f.Apply(10, 0)
	f.Apply(20, 33)
	f.Reset()
	assert.Equal(t, 5.0, f.Apply(5, 66))
}

func TestLandmarkSmoother_PassesVisibility(t *testing.T) {
	vis := 0.8
	s := NewLandmarkSmoother(DefaultMinCutoff, DefaultBeta, DefaultDCutoff)
	frame := []pose.Landmark{{X: 0.5, Y: 0.5, Z: 0, Visibility: &vis}, {X: 0.1, Y: 0.2, Z: 0.3}}

	first := s.Smooth(frame, 0)
	require.Len(t, first, 2)
	assert.Equal(t, frame, first)

	moved := []pose.Landmark{{X: 0.6, Y: 0.5, Z: 0, Visibility: &vis}, {X: 0.1, Y: 0.2, Z: 0.3}}
	second := s.Smooth(moved, 33)
	assert.Greater(t, second[0].X, 0.5)
	assert.Less(t, second[0].X, 0.6)
	assert.Equal(t, &vis, second[0].Visibility)
	assert.Nil(t, second[1].Visibility)
}

func TestLandmarkSmoother_RestartsOnCountChange(t *testing.T) {
	s := NewLandmarkSmoother(DefaultMinCutoff, DefaultBeta, DefaultDCutoff)
	s.Smooth([]pose.Landmark{{X: 0.1}}, 0)
	out := s.Smooth([]pose.Landmark{{X: 0.9}, {X: 0.3}}, 33)
	assert.Equal(t, 0.9, out[0].X)
	assert.Equal(t, 0.3, out[1].X)
}
