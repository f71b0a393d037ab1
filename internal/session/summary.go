package session

import (
	"time"

	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/evaluator"
	"github.com/misterclayt0n/formcoach/internal/models"
	"gonum.org/v1/gonum/stat"
)

// DefaultWeightKg is used for calorie estimates when the user has not set a body weight.
const DefaultWeightKg = 70.0

type Summary struct {
	ExerciseID    string
	ExerciseName  string
	Start         time.Time
	End           time.Time
	Duration      time.Duration
	Reps          int
	RepTimestamps []evaluator.RepStamp
	MET           float64
	Calories      float64
	// AvgRepInterval and RepIntervalStdDev are zero with fewer than two reps.
	AvgRepInterval    time.Duration
	RepIntervalStdDev time.Duration
}

// Summarize builds the session summary. A nil exercise is a free movement session.
func Summarize(ex *catalog.Exercise, reps []evaluator.RepStamp, start, end time.Time, weightKg float64) Summary {
	s := Summary{
		ExerciseID:    "free",
		ExerciseName:  "Free movement",
		Start:         start,
		End:           end,
		Reps:          len(reps),
		RepTimestamps: reps,
	}
	if ex != nil {
		s.ExerciseID = ex.ID
		s.ExerciseName = ex.Name
		s.MET = ex.MET
	}
	if end.After(start) {
		s.Duration = end.Sub(start)
	}
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}
	s.Calories = EstimateCalories(s.MET, weightKg, s.Duration)

	if len(reps) > 1 {
		intervals := make([]float64, len(reps)-1)
		for i := 1; i < len(reps); i++ {
			intervals[i-1] = reps[i].At.Sub(reps[i-1].At).Seconds()
		}
		mean, std := stat.MeanStdDev(intervals, nil)
		s.AvgRepInterval = secondsToDuration(mean)
		if len(intervals) > 1 {
			s.RepIntervalStdDev = secondsToDuration(std)
		}
	}
	return s
}

// EstimateCalories uses the standard MET formula: kcal/min = MET * 3.5 * kg / 200.
func EstimateCalories(met, weightKg float64, d time.Duration) float64 {
	if met <= 0 || d <= 0 {
		return 0
	}
	return met * 3.5 * weightKg / 200 * d.Minutes()
}

// Workout converts the summary into its stored form.
func (s Summary) Workout(source string) models.Workout {
	return s.Pending(source).Workout()
}

// Pending is the summary as it is kept between tracking and saving.
func (s Summary) Pending(source string) *models.PendingWorkout {
	p := &models.PendingWorkout{
		ExerciseID:     s.ExerciseID,
		ExerciseName:   s.ExerciseName,
		Source:         source,
		StartTime:      s.Start,
		EndTime:        s.End,
		Reps:           s.Reps,
		Calories:       s.Calories,
		AvgRepInterval: s.AvgRepInterval.Seconds(),
	}
	for _, r := range s.RepTimestamps {
		p.RepTimes = append(p.RepTimes, r.At)
	}
	return p
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
