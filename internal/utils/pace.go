package utils

import "time"

// RepsPerMinute is the average cadence over d.
func RepsPerMinute(reps int, d time.Duration) float64 {
	if reps == 0 || d <= 0 {
		return 0
	}
	return float64(reps) / d.Minutes()
}
