package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/misterclayt0n/formcoach/internal/pose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BuiltinsAreValid(t *testing.T) {
	c := Default()
	require.Equal(t, 7, c.Len())
	for _, ex := range c.List() {
		assert.NoError(t, ex.Validate(), ex.ID)
		assert.NotEmpty(t, ex.Phases, ex.ID)
		assert.Greater(t, ex.MET, 0.0, ex.ID)
		for _, p := range ex.Phases {
			for name := range p.Targets {
				assert.True(t, knownAngle(name), "%s: unknown angle %q", ex.ID, name)
			}
		}
	}
}

func knownAngle(name string) bool {
	for _, def := range pose.AngleDefinitions {
		if def.Name == name {
			return true
		}
	}
	return false
}

func TestCatalog_GetAndList(t *testing.T) {
	c := Default()

	ex, err := c.Get(" Squat ")
	require.NoError(t, err)
	assert.Equal(t, "Squat", ex.Name)
	assert.True(t, ex.RequiresPeak())

	hr, err := c.Get("hand-raise")
	require.NoError(t, err)
	assert.False(t, hr.RequiresPeak())

	_, err = c.Get("burpee")
	assert.True(t, errors.Is(err, ErrUnknownExercise))

	list := c.List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestPhase_Satisfied(t *testing.T) {
	p := Phase{Targets: map[string]Range{"a": {10, 20}, "b": {0, 5}}}

	assert.True(t, p.Satisfied(pose.Angles{"a": 10, "b": 4.9}))
	assert.False(t, p.Satisfied(pose.Angles{"a": 20, "b": 4.9}))
	assert.False(t, p.Satisfied(pose.Angles{"a": 15, "b": 5}))
	assert.False(t, p.Satisfied(pose.Angles{"a": 15}))
	assert.False(t, p.Satisfied(pose.Angles{"a": 15, "b": math.NaN()}))
	assert.True(t, Phase{}.Satisfied(nil))
	assert.Equal(t, []string{"a", "b"}, p.TargetNames())
}

func TestRange_Contains(t *testing.T) {
	r := Range{120, 160}
	assert.True(t, r.Contains(120))
	assert.True(t, r.Contains(159.9))
	assert.False(t, r.Contains(160))
	assert.False(t, r.Contains(119.9))

	top := Range{160, MaxAngle}
	assert.True(t, top.Contains(160))
	assert.True(t, top.Contains(MaxAngle))
	assert.False(t, top.Contains(180.1))
}

func TestExercise_TransitionsFrom(t *testing.T) {
	ex, err := Default().Get("squat")
	require.NoError(t, err)

	from1 := ex.TransitionsFrom(1)
	require.Len(t, from1, 2)
	assert.Equal(t, 2, from1[0].To)
	assert.Equal(t, 0, from1[1].To)
	assert.Empty(t, ex.TransitionsFrom(9))
}

func TestExercise_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ex      Exercise
		wantErr bool
	}{
		{name: "no phases is allowed", ex: Exercise{ID: "empty"}},
		{name: "missing id", ex: Exercise{Name: "x"}, wantErr: true},
		{name: "negative met", ex: Exercise{ID: "x", MET: -1}, wantErr: true},
		{
			name: "inverted range",
			ex: Exercise{ID: "x", Phases: []Phase{
				{Name: "p", Targets: map[string]Range{pose.LeftKneeAngle: {100, 10}}},
			}},
			wantErr: true,
		},
		{
			name:    "transition out of range",
			ex:      Exercise{ID: "x", Phases: []Phase{{Name: "p"}}, Transitions: []Transition{{From: 0, To: 1}}},
			wantErr: true,
		},
		{
			name:    "unknown effect",
			ex:      Exercise{ID: "x", Phases: []Phase{{Name: "a"}, {Name: "b"}}, Transitions: []Transition{{From: 0, To: 1, Effect: "explode"}}},
			wantErr: true,
		},
		{
			name:    "self transition",
			ex:      Exercise{ID: "x", Phases: []Phase{{Name: "a"}, {Name: "b"}}, Transitions: []Transition{{From: 1, To: 1, Message: "again"}}},
			wantErr: true,
		},
		{
			name:    "unknown landmark",
			ex:      Exercise{ID: "x", RequiredLandmarks: []string{"left_tail"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ex.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

const wallSitTOML = `
[[exercise]]
id = "Wall-Sit"
name = "Wall Sit"
description = "Hold a seated position against a wall."
body_part = "legs"
camera_view = "side"
met = 3.0
required_landmarks = ["left_hip", "left_knee", "left_ankle"]

[[exercise.phase]]
name = "Standing"
feedback = "Back against the wall."
[exercise.phase.targets]
"Left Knee Angle" = { min = 150.0, max = 180.0 }

[[exercise.phase]]
name = "Seated"
feedback = "Thighs parallel to the floor."
[exercise.phase.targets]
"Left Knee Angle" = { min = 70.0, max = 110.0 }

[[exercise.transition]]
from = 0
to = 1
effect = "begin_rep"
message = "Sitting down."

[[exercise.transition]]
from = 1
to = 0
effect = "complete_rep"
`

func TestDecodeTOML(t *testing.T) {
	exercises, err := DecodeTOML([]byte(wallSitTOML))
	require.NoError(t, err)
	require.Len(t, exercises, 1)

	ex := exercises[0]
	assert.Equal(t, "wall-sit", ex.ID)
	assert.Equal(t, 3.0, ex.MET)
	require.Len(t, ex.Phases, 2)
	assert.Equal(t, Range{70, 110}, ex.Phases[1].Targets[pose.LeftKneeAngle])
	require.Len(t, ex.Transitions, 2)
	assert.Equal(t, EffectBeginRep, ex.Transitions[0].Effect)
	assert.Equal(t, EffectCompleteRep, ex.Transitions[1].Effect)
}

func TestDecodeTOML_Invalid(t *testing.T) {
	_, err := DecodeTOML([]byte("[[exercise]\nid ="))
	assert.Error(t, err)

	_, err = DecodeTOML([]byte("[[exercise]]\nid = \"x\"\n[[exercise.transition]]\nfrom = 0\nto = 3\n"))
	assert.Error(t, err)
}

func TestCatalog_LoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exercises.toml")
	require.NoError(t, os.WriteFile(path, []byte(wallSitTOML), 0o644))

	c := Default()
	n, err := c.LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 8, c.Len())

	_, err = c.Get("wall-sit")
	assert.NoError(t, err)

	_, err = c.LoadTOML(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEncodeTOML_RoundTripsBuiltins(t *testing.T) {
	src := Default().List()
	data, err := EncodeTOML(src)
	require.NoError(t, err)

	decoded, err := DecodeTOML(data)
	require.NoError(t, err)
	require.Len(t, decoded, len(src))
	for i := range src {
		assert.Equal(t, src[i].ID, decoded[i].ID)
		assert.Equal(t, len(src[i].Phases), len(decoded[i].Phases))
		assert.Equal(t, src[i].Transitions, decoded[i].Transitions)
	}
}

func TestMergeTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user", "exercises.toml")

	wallSit, err := DecodeTOML([]byte(wallSitTOML))
	require.NoError(t, err)
	require.NoError(t, MergeTOML(path, wallSit))

	squat, err := Default().Get("squat")
	require.NoError(t, err)
	require.NoError(t, MergeTOML(path, []*Exercise{squat}))

	// Importing the same id again replaces the stored definition.
	wallSit[0].MET = 3.5
	require.NoError(t, MergeTOML(path, wallSit))

	c := New()
	n, err := c.LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	got, err := c.Get("wall-sit")
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.MET)
}
