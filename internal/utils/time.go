package utils

import (
	"fmt"
	"time"
)

// FormatLocal returns t formatted in the local time zone.
func FormatLocal(t time.Time) string {
	return t.Local().Format("Mon, 02 Jan 2006 15:04")
}

// FormatDuration renders d as 1h02m03s, 2m05s or 12.3s.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm%02ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
}

// StartOfWeek returns midnight of the Monday on or before t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStreak counts consecutive weeks with at least one workout, ending with the
// week of now (or the previous week if none happened yet this week).
func WeekStreak(starts []time.Time, now time.Time) int {
	weeks := make(map[time.Time]bool, len(starts))
	for _, s := range starts {
		weeks[StartOfWeek(s.In(now.Location()))] = true
	}

	week := StartOfWeek(now)
	if !weeks[week] {
		week = week.AddDate(0, 0, -7)
	}
	streak := 0
	for weeks[week] {
		streak++
		week = week.AddDate(0, 0, -7)
	}
	return streak
}
