// Package evaluator runs the exercise phase state machine: it advances phases from
// per-frame joint angles, counts repetitions and produces form feedback.
package evaluator

import (
	"time"

	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/pose"
)

// Mode is either FreeMovement or Tracking.
type Mode interface {
	isMode()
}

// FreeMovement computes nothing beyond angles: no phases, no reps.
type FreeMovement struct{}

// Tracking follows one exercise definition.
type Tracking struct {
	Exercise *catalog.Exercise
	State    State
}

func (FreeMovement) isMode() {}
func (Tracking) isMode()     {}

// RepStamp records when a rep was completed.
type RepStamp struct {
	Rep int
	At  time.Time
}

// State is the mutable part of a tracking session.
// len(RepTimestamps) == RepCount and timestamps are strictly increasing.
type State struct {
	PhaseIndex    int
	RepCount      int
	RepInProgress bool
	AtPeak        bool
	RepTimestamps []RepStamp

	// Feedback is the last emitted feedback list, used to suppress repeats.
	Feedback []string
}

// Frame is one evaluation input.
type Frame struct {
	Angles pose.Angles
	Time   time.Time
	// Occluded is set when the exercise's required landmarks are missing or low-confidence.
	Occluded bool
}

// Event is one of RepCompleted, PhaseChanged or FeedbackUpdated.
type Event interface {
	isEvent()
}

type RepCompleted struct {
	Count int
	At    time.Time
}

type PhaseChanged struct {
	Index int
	Phase catalog.Phase
}

type FeedbackUpdated struct {
	Messages []string
}

func (RepCompleted) isEvent()    {}
func (PhaseChanged) isEvent()    {}
func (FeedbackUpdated) isEvent() {}

// Result is what a single evaluation produced.
type Result struct {
	Feedback   []string
	Events     []Event
	RepCount   int
	PhaseIndex int
	// Phase is nil in free movement mode or for a definition without phases.
	Phase *catalog.Phase
}
