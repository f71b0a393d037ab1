// Package report turns a tracked session into angle-over-time charts.
package report

import (
	"math"
	"time"

	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/evaluator"
	"github.com/misterclayt0n/formcoach/internal/pose"
	"github.com/misterclayt0n/formcoach/internal/session"
)

// Recorder collects the angles of every evaluated frame. Missing angles are NaN.
type Recorder struct {
	names  []string
	start  time.Time
	times  []float64
	values map[string][]float64
	reps   []float64
}

// NewRecorder records the named angles. With no names it records every angle of pose.AngleDefinitions.
func NewRecorder(names ...string) *Recorder {
	if len(names) == 0 {
		for _, def := range pose.AngleDefinitions {
			names = append(names, def.Name)
		}
	}
	return &Recorder{names: names, values: make(map[string][]float64, len(names))}
}

// ForExercise records the angles the exercise's phases target.
func ForExercise(ex *catalog.Exercise) *Recorder {
	if ex == nil {
		return NewRecorder()
	}
	seen := map[string]bool{}
	var names []string
	for _, p := range ex.Phases {
		for _, name := range p.TargetNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return NewRecorder(names...)
}

// Add records one tracker update. Dropped frames are ignored.
func (r *Recorder) Add(u session.Update) {
	if u.Dropped {
		return
	}
	at := u.Frame.Time()
	if len(r.times) == 0 {
		r.start = at
	}
	r.times = append(r.times, r.seconds(at))

	for _, name := range r.names {
		v, ok := u.Angles.Value(name)
		if !ok {
			v = math.NaN()
		}
		r.values[name] = append(r.values[name], v)
	}

	for _, ev := range u.Result.Events {
		if rc, ok := ev.(evaluator.RepCompleted); ok {
			r.reps = append(r.reps, r.seconds(rc.At))
		}
	}
}

func (r *Recorder) seconds(t time.Time) float64 {
	return t.Sub(r.start).Seconds()
}

func (r *Recorder) Names() []string {
	return r.names
}

// Len is the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.times)
}

// RepTimes are the seconds since the first frame at which reps were counted.
func (r *Recorder) RepTimes() []float64 {
	return r.reps
}
