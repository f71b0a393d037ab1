package evaluator

import (
	"fmt"
	"slices"
	"time"

	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/pose"
)

const (
	FreeMovementMessage = "Free movement mode: no exercise selected."
	OccludedMessage     = "Make sure your whole body is visible to the camera."
)

// DefinitionErrorMessage is reported for every frame of an exercise without phases.
func DefinitionErrorMessage(ex *catalog.Exercise) string {
	return fmt.Sprintf("Exercise definition error: %s has no phases.", ex.Name)
}

// RepCompletedMessage is appended to the feedback when a rep is counted.
func RepCompletedMessage(n int) string {
	return fmt.Sprintf("Rep %d completed!", n)
}

// Start returns the initial mode for an exercise (nil selects free movement) and the
// feedback to show right away.
func Start(ex *catalog.Exercise) (Mode, Result) {
	if ex == nil {
		msgs := []string{FreeMovementMessage}
		return FreeMovement{}, Result{
			Feedback: msgs,
			Events:   []Event{FeedbackUpdated{Messages: msgs}},
		}
	}

	var msgs []string
	var phase *catalog.Phase
	if len(ex.Phases) == 0 {
		msgs = []string{DefinitionErrorMessage(ex)}
	} else {
		phase = &ex.Phases[0]
		msgs = []string{phaseIntro(*phase)}
	}

	mode := Tracking{Exercise: ex, State: State{Feedback: msgs}}
	return mode, Result{
		Feedback: msgs,
		Events:   []Event{FeedbackUpdated{Messages: msgs}},
		Phase:    phase,
	}
}

func phaseIntro(p catalog.Phase) string {
	if p.Feedback != "" {
		return p.Feedback
	}
	return fmt.Sprintf("Get into position: %s.", p.Name)
}

// Step evaluates one frame. It does not modify its input: the returned mode carries
// the new state.
func Step(mode Mode, frame Frame) (Mode, Result) {
	t, ok := mode.(Tracking)
	if !ok || t.Exercise == nil {
		return FreeMovement{}, Result{}
	}

	ex := t.Exercise
	s := t.State
	var events []Event
	var msgs []string

	if len(ex.Phases) == 0 {
		msgs = []string{DefinitionErrorMessage(ex)}
		if !slices.Equal(msgs, s.Feedback) {
			s.Feedback = msgs
			events = append(events, FeedbackUpdated{Messages: msgs})
		}
		return Tracking{Exercise: ex, State: s}, Result{
			Feedback: msgs,
			Events:   events,
			RepCount: s.RepCount,
		}
	}

	if s.PhaseIndex < 0 || s.PhaseIndex >= len(ex.Phases) {
		s.PhaseIndex = 0
	}

	var transitionMsgs []string
	if frame.Occluded {
		msgs = []string{OccludedMessage}
	} else {
		for _, tr := range ex.TransitionsFrom(s.PhaseIndex) {
			// A transition back into the current phase would fire on every frame.
			if tr.To == s.PhaseIndex || !ex.Phases[tr.To].Satisfied(frame.Angles) {
				continue
			}

			s.PhaseIndex = tr.To
			events = append(events, PhaseChanged{Index: tr.To, Phase: ex.Phases[tr.To]})
			if tr.Message != "" {
				transitionMsgs = append(transitionMsgs, tr.Message)
			}

			switch tr.Effect {
			case catalog.EffectBeginRep:
				s.RepInProgress = true
				s.AtPeak = false
			case catalog.EffectPeak:
				s.RepInProgress = true
				s.AtPeak = true
			case catalog.EffectCompleteRep:
				if s.RepInProgress && (s.AtPeak || !ex.RequiresPeak()) {
					stamp := nextStamp(s, frame.Time)
					s.RepCount = stamp.Rep
					s.RepTimestamps = append(slices.Clip(s.RepTimestamps), stamp)
					events = append(events, RepCompleted{Count: stamp.Rep, At: stamp.At})
					transitionMsgs = append(transitionMsgs, RepCompletedMessage(stamp.Rep))
				}
				s.RepInProgress = false
				s.AtPeak = false
			case catalog.EffectAbortRep:
				s.RepInProgress = false
				s.AtPeak = false
			}
			break
		}
		msgs = phaseFeedback(ex.Phases[s.PhaseIndex], frame.Angles)
	}
	msgs = append(msgs, transitionMsgs...)

	if !slices.Equal(msgs, s.Feedback) {
		s.Feedback = msgs
		events = append(events, FeedbackUpdated{Messages: msgs})
	}

	phase := ex.Phases[s.PhaseIndex]
	return Tracking{Exercise: ex, State: s}, Result{
		Feedback:   msgs,
		Events:     events,
		RepCount:   s.RepCount,
		PhaseIndex: s.PhaseIndex,
		Phase:      &phase,
	}
}

// nextStamp keeps rep timestamps strictly increasing even if frames share a clock reading.
func nextStamp(s State, at time.Time) RepStamp {
	if n := len(s.RepTimestamps); n > 0 {
		last := s.RepTimestamps[n-1].At
		if !at.After(last) {
			at = last.Add(time.Nanosecond)
		}
	}
	return RepStamp{Rep: s.RepCount + 1, At: at}
}

// phaseFeedback lists every unmet target of the phase, or its general message when all are met.
func phaseFeedback(p catalog.Phase, angles pose.Angles) []string {
	var msgs []string
	for _, name := range p.TargetNames() {
		r := p.Targets[name]
		v, ok := angles.Value(name)
		switch {
		case !ok:
			msgs = append(msgs, fmt.Sprintf("%s not detected.", name))
		case v < r.Min:
			msgs = append(msgs, fmt.Sprintf("%s too low: %.1f° (target %.0f°-%.0f°).", name, v, r.Min, r.Max))
		case v > r.Max:
			msgs = append(msgs, fmt.Sprintf("%s too high: %.1f° (target %.0f°-%.0f°).", name, v, r.Min, r.Max))
		}
	}
	if len(msgs) == 0 && p.Feedback != "" {
		msgs = append(msgs, p.Feedback)
	}
	return msgs
}
