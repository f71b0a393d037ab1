package evaluator

import (
	"slices"
	"sync"

	"github.com/misterclayt0n/formcoach/internal/catalog"
)

// Evaluator holds the mode of one tracking session. Calls are serialized.
type Evaluator struct {
	mu   sync.Mutex
	mode Mode
}

// New returns an evaluator in free movement mode.
func New() *Evaluator {
	return &Evaluator{mode: FreeMovement{}}
}

// SetExercise selects an exercise (nil for free movement) and resets all progress,
// even when the same exercise is selected again.
func (e *Evaluator) SetExercise(ex *catalog.Exercise) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	mode, res := Start(ex)
	e.mode = mode
	return res
}

// Evaluate advances the state machine by one frame.
func (e *Evaluator) Evaluate(frame Frame) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	mode, res := Step(e.mode, frame)
	e.mode = mode
	return res
}

// Exercise returns the tracked exercise, or nil in free movement mode.
func (e *Evaluator) Exercise() *catalog.Exercise {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.mode.(Tracking); ok {
		return t.Exercise
	}
	return nil
}

func (e *Evaluator) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.mode.(Tracking); ok {
		s := t.State
		s.RepTimestamps = slices.Clone(s.RepTimestamps)
		s.Feedback = slices.Clone(s.Feedback)
		return s
	}
	return State{}
}

func (e *Evaluator) RepCount() int {
	return e.State().RepCount
}

func (e *Evaluator) PhaseIndex() int {
	return e.State().PhaseIndex
}

func (e *Evaluator) RepTimestamps() []RepStamp {
	return e.State().RepTimestamps
}

// CurrentPhase returns the active phase, or false in free movement mode or for a
// definition without phases.
func (e *Evaluator) CurrentPhase() (catalog.Phase, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.mode.(Tracking)
	if !ok || t.Exercise == nil || t.State.PhaseIndex >= len(t.Exercise.Phases) {
		return catalog.Phase{}, false
	}
	return t.Exercise.Phases[t.State.PhaseIndex], true
}
