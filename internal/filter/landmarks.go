package filter

import "github.com/misterclayt0n/formcoach/internal/pose"

// LandmarkSmoother keeps one OneEuro filter per landmark coordinate.
type LandmarkSmoother struct {
	minCutoff float64
	beta      float64
	dCutoff   float64

	filters [][3]*OneEuro
}

func NewLandmarkSmoother(minCutoff, beta, dCutoff float64) *LandmarkSmoother {
	return &LandmarkSmoother{
		minCutoff: minCutoff,
		beta:      beta,
		dCutoff:   dCutoff,
	}
}

// Smooth returns a smoothed copy of the frame. Visibility scores are passed through.
// A frame with a different landmark count than the previous one restarts all filters.
func (s *LandmarkSmoother) Smooth(landmarks []pose.Landmark, timestampMillis int64) []pose.Landmark {
	if len(landmarks) != len(s.filters) {
		s.filters = make([][3]*OneEuro, len(landmarks))
		for i := range s.filters {
			for axis := range s.filters[i] {
				s.filters[i][axis] = NewOneEuro(s.minCutoff, s.beta, s.dCutoff)
			}
		}
	}

	out := make([]pose.Landmark, len(landmarks))
	for i, lm := range landmarks {
		out[i] = pose.Landmark{
			X:          s.filters[i][0].Apply(lm.X, timestampMillis),
			Y:          s.filters[i][1].Apply(lm.Y, timestampMillis),
			Z:          s.filters[i][2].Apply(lm.Z, timestampMillis),
			Visibility: lm.Visibility,
		}
	}
	return out
}

func (s *LandmarkSmoother) Reset() {
	s.filters = nil
}
