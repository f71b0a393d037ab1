// Package session wires the per-frame pipeline (smoothing, angles, movement,
// evaluation) for one tracking session and summarizes the workout at the end.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/evaluator"
	"github.com/misterclayt0n/formcoach/internal/filter"
	"github.com/misterclayt0n/formcoach/internal/framesource"
	"github.com/misterclayt0n/formcoach/internal/motion"
	"github.com/misterclayt0n/formcoach/internal/pose"
	"github.com/sirupsen/logrus"
)

type Options struct {
	MinCutoff         float64
	Beta              float64
	DCutoff           float64
	DisableSmoothing  bool
	MovementThreshold float64
	// MaxFPS drops frames arriving faster than this rate. Zero disables throttling.
	MaxFPS int
}

func DefaultOptions() Options {
	return Options{
		MinCutoff:         filter.DefaultMinCutoff,
		Beta:              filter.DefaultBeta,
		DCutoff:           filter.DefaultDCutoff,
		MovementThreshold: motion.DefaultMovementThreshold,
		MaxFPS:            15,
	}
}

// Update is the outcome of one processed frame.
type Update struct {
	Frame   framesource.Frame
	Dropped bool
	Angles  pose.Angles
	Moving  motion.JointSet
	Result  evaluator.Result
}

// Tracker processes the frames of one session. At most one frame is evaluated at a time.
type Tracker struct {
	mu sync.Mutex

	opts     Options
	eval     *evaluator.Evaluator
	smoother *filter.LandmarkSmoother
	movement *motion.Detector

	exercise   *catalog.Exercise
	started    time.Time
	lastFrame  time.Time
	lastMillis int64
	accepted   int
	dropped    int
}

func NewTracker(opts Options) *Tracker {
	return &Tracker{
		opts:     opts,
		eval:     evaluator.New(),
		smoother: filter.NewLandmarkSmoother(opts.MinCutoff, opts.Beta, opts.DCutoff),
		movement: motion.NewDetector(opts.MovementThreshold),
	}
}

// SetExercise selects the exercise to track (nil for free movement) and restarts the session.
func (t *Tracker) SetExercise(ex *catalog.Exercise) evaluator.Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.exercise = ex
	t.started = time.Time{}
	t.lastFrame = time.Time{}
	t.accepted = 0
	t.dropped = 0
	t.smoother.Reset()
	t.movement.Reset()

	name := "free movement"
	if ex != nil {
		name = ex.ID
	}
	logrus.WithField("exercise", name).Debug("tracking session reset")
	return t.eval.SetExercise(ex)
}

// ProcessFrame runs one pose result through the pipeline.
func (t *Tracker) ProcessFrame(f framesource.Frame) Update {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.throttled(f.TimestampMillis) {
		t.dropped++
		return Update{Frame: f, Dropped: true}
	}
	t.accepted++
	t.lastMillis = f.TimestampMillis

	at := f.Time()
	if t.started.IsZero() {
		t.started = at
	}
	t.lastFrame = at

	landmarks := f.Landmarks
	if !t.opts.DisableSmoothing {
		landmarks = t.smoother.Smooth(landmarks, f.TimestampMillis)
	}

	angles := pose.AllAngles(landmarks)
	moving := t.movement.Update(landmarks)

	frame := evaluator.Frame{Angles: angles, Time: at}
	if t.exercise != nil {
		cutoff := motion.VisibilityCutoff(t.exercise.HighPrecision)
		frame.Occluded = len(landmarks) < pose.NumLandmarks ||
			!motion.Visible(landmarks, t.exercise.RequiredLandmarks, cutoff)
	}

	res := t.eval.Evaluate(frame)
	for _, ev := range res.Events {
		switch e := ev.(type) {
		case evaluator.PhaseChanged:
			logrus.WithFields(logrus.Fields{"phase": e.Phase.Name, "index": e.Index}).Debug("phase changed")
		case evaluator.RepCompleted:
			logrus.WithField("reps", e.Count).Debug("rep completed")
		}
	}

	return Update{
		Frame:  f,
		Angles: angles,
		Moving: moving,
		Result: res,
	}
}

func (t *Tracker) throttled(ts int64) bool {
	if t.opts.MaxFPS <= 0 || t.accepted == 0 {
		return false
	}
	return ts-t.lastMillis < int64(1000/t.opts.MaxFPS)
}

// Run consumes frames until the channel is closed or ctx is done, handing every
// update to fn in frame order.
func (t *Tracker) Run(ctx context.Context, frames <-chan framesource.Frame, fn func(Update)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			u := t.ProcessFrame(f)
			if fn != nil {
				fn(u)
			}
		}
	}
}

// Stats reports how many frames were evaluated and how many were throttled away.
func (t *Tracker) Stats() (accepted, dropped int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.accepted, t.dropped
}

// Summary describes the session so far. Start and end come from frame timestamps.
func (t *Tracker) Summary(weightKg float64) Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Summarize(t.exercise, t.eval.RepTimestamps(), t.started, t.lastFrame, weightKg)
}
