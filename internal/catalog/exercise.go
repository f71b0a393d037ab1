// Package catalog holds the declarative exercise definitions the evaluator interprets.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/misterclayt0n/formcoach/internal/pose"
)

var ErrUnknownExercise = errors.New("unknown exercise")

// Effect is what a transition does to the rep cycle when it fires.
type Effect string

const (
	EffectNone        Effect = ""
	EffectBeginRep    Effect = "begin_rep"
	EffectPeak        Effect = "peak"
	EffectCompleteRep Effect = "complete_rep"
	EffectAbortRep    Effect = "abort_rep"
)

func (e Effect) Valid() bool {
	switch e {
	case EffectNone, EffectBeginRep, EffectPeak, EffectCompleteRep, EffectAbortRep:
		return true
	}
	return false
}

// MaxAngle is the largest joint angle the calculator reports.
const MaxAngle = 180.0

// Range is a half-open target interval [Min, Max) in degrees. A range whose Max
// reaches MaxAngle also includes MaxAngle, so adjacent phases sharing an
// endpoint never both match the same angle.
type Range struct {
	Min float64 `toml:"min" json:"min"`
	Max float64 `toml:"max" json:"max"`
}

func (r Range) Contains(v float64) bool {
	if v < r.Min {
		return false
	}
	return v < r.Max || (r.Max >= MaxAngle && v <= r.Max)
}

// Phase is one step of a rep cycle.
type Phase struct {
	Name     string           `toml:"name" json:"name"`
	Targets  map[string]Range `toml:"targets" json:"targets"`
	Feedback string           `toml:"feedback,omitempty" json:"feedback,omitempty"`
}

// TargetNames returns the target angle names in a stable order.
func (p Phase) TargetNames() []string {
	names := make([]string, 0, len(p.Targets))
	for name := range p.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Satisfied reports whether every target angle is present, finite and inside its range.
func (p Phase) Satisfied(angles pose.Angles) bool {
	for name, r := range p.Targets {
		v, ok := angles.Value(name)
		if !ok || !r.Contains(v) {
			return false
		}
	}
	return true
}

// Transition moves the cycle from one phase to another once the destination phase is satisfied.
type Transition struct {
	From    int    `toml:"from" json:"from"`
	To      int    `toml:"to" json:"to"`
	Effect  Effect `toml:"effect,omitempty" json:"effect,omitempty"`
	Message string `toml:"message,omitempty" json:"message,omitempty"`
}

type Exercise struct {
	ID                string       `toml:"id" json:"id"`
	Name              string       `toml:"name" json:"name"`
	Description       string       `toml:"description" json:"description"`
	BodyPart          string       `toml:"body_part" json:"body_part"`
	CameraView        string       `toml:"camera_view" json:"camera_view"`
	MET               float64      `toml:"met" json:"met"`
	Phases            []Phase      `toml:"phase" json:"phases"`
	Transitions       []Transition `toml:"transition" json:"transitions"`
	RequiredLandmarks []string     `toml:"required_landmarks" json:"required_landmarks"`
	HighPrecision     bool         `toml:"high_precision" json:"high_precision"`
}

// RequiresPeak reports whether a rep only counts after a peak transition fired.
// Cycles without a peak transition count a rep on every completed return.
func (e *Exercise) RequiresPeak() bool {
	for _, t := range e.Transitions {
		if t.Effect == EffectPeak {
			return true
		}
	}
	return false
}

// TransitionsFrom returns the transitions leaving a phase, in table order.
func (e *Exercise) TransitionsFrom(phase int) []Transition {
	var out []Transition
	for _, t := range e.Transitions {
		if t.From == phase {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks the structural consistency of a definition.
// A definition without phases is allowed: the evaluator reports it per frame.
func (e *Exercise) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("exercise %q: missing id", e.Name)
	}
	if e.MET < 0 {
		return fmt.Errorf("exercise %s: negative MET value", e.ID)
	}
	for i, p := range e.Phases {
		for name, r := range p.Targets {
			if r.Min > r.Max {
				return fmt.Errorf("exercise %s: phase %d (%s): target %s has min > max", e.ID, i, p.Name, name)
			}
		}
	}
	for i, t := range e.Transitions {
		if t.From < 0 || t.From >= len(e.Phases) || t.To < 0 || t.To >= len(e.Phases) {
			return fmt.Errorf("exercise %s: transition %d (%d -> %d) references a missing phase", e.ID, i, t.From, t.To)
		}
		if t.From == t.To {
			return fmt.Errorf("exercise %s: transition %d loops on phase %d", e.ID, i, t.From)
		}
		if !t.Effect.Valid() {
			return fmt.Errorf("exercise %s: transition %d has unknown effect %q", e.ID, i, t.Effect)
		}
	}
	for _, name := range e.RequiredLandmarks {
		if _, ok := pose.LandmarkIndex(name); !ok {
			return fmt.Errorf("exercise %s: unknown landmark %q", e.ID, name)
		}
	}
	return nil
}
