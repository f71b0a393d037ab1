// Package motion flags joints that moved between frames and checks that the
// landmarks an exercise depends on are confidently visible.
package motion

import (
	"math"
	"sort"

	"github.com/misterclayt0n/formcoach/internal/pose"
)

const (
	// DefaultMovementThreshold is the image-plane distance, in normalized units,
	// a landmark has to travel between two frames to count as moving.
	DefaultMovementThreshold = 0.005

	DefaultVisibilityCutoff       = 0.5
	HighPrecisionVisibilityCutoff = 0.7
)

// JointSet is a set of landmark indices.
type JointSet map[int]struct{}

func (s JointSet) Contains(idx int) bool {
	_, ok := s[idx]
	return ok
}

// Sorted returns the indices in ascending order.
func (s JointSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for idx := range s {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Names returns the canonical landmark names in index order.
func (s JointSet) Names() []string {
	var out []string
	for _, idx := range s.Sorted() {
		out = append(out, pose.LandmarkName(idx))
	}
	return out
}

// MovingJoints compares two frames and returns the indices that moved further than threshold.
// Frames of different length are treated as having no prior data.
func MovingJoints(prev, cur []pose.Landmark, threshold float64) JointSet {
	moving := make(JointSet)
	if len(prev) == 0 || len(prev) != len(cur) {
		return moving
	}

	for i := range cur {
		dx := cur[i].X - prev[i].X
		dy := cur[i].Y - prev[i].Y
		if math.Sqrt(dx*dx+dy*dy) > threshold {
			moving[i] = struct{}{}
		}
	}
	return moving
}

// Detector remembers the previous frame of a single stream.
type Detector struct {
	Threshold float64

	prev []pose.Landmark
}

func NewDetector(threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultMovementThreshold
	}
	return &Detector{Threshold: threshold}
}

// Update returns the joints that moved since the last frame and stores cur as the new reference.
func (d *Detector) Update(cur []pose.Landmark) JointSet {
	moving := MovingJoints(d.prev, cur, d.Threshold)
	d.prev = append(d.prev[:0], cur...)
	return moving
}

func (d *Detector) Reset() {
	d.prev = nil
}

// Visible reports whether every required landmark is in the frame with a
// visibility score at or above cutoff. Unknown names count as not visible.
func Visible(landmarks []pose.Landmark, required []string, cutoff float64) bool {
	for _, name := range required {
		idx, ok := pose.LandmarkIndex(name)
		if !ok || idx >= len(landmarks) {
			return false
		}
		if landmarks[idx].VisibilityScore() < cutoff {
			return false
		}
	}
	return true
}

// VisibilityCutoff picks the cutoff for an exercise's precision setting.
func VisibilityCutoff(highPrecision bool) float64 {
	if highPrecision {
		return HighPrecisionVisibilityCutoff
	}
	return DefaultVisibilityCutoff
}
