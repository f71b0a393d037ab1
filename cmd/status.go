package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/formcoach/internal/utils"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show totals: reps, workouts, training time, calories, week streak and reps per exercise this week",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		workouts, err := st.GetAllWorkouts()
		if err != nil {
			return fmt.Errorf("failed to retrieve workouts: %w", err)
		}

		var totalReps int
		var totalCalories float64
		var totalDuration time.Duration
		var starts []time.Time
		repsThisWeek := make(map[string]int)
		now := time.Now()
		weekStart := utils.StartOfWeek(now)

		for _, w := range workouts {
			totalReps += w.Reps
			totalCalories += w.Calories
			totalDuration += w.Duration()
			starts = append(starts, w.StartTime)
			if !w.StartTime.Before(weekStart) {
				repsThisWeek[w.ExerciseName] += w.Reps
			}
		}

		printBoxedHeader("STATUS")
		if p, err := st.Profile(); err == nil {
			printMetric("Athlete", p.DisplayName)
		}
		printMetric("Total reps", totalReps)
		printMetric("Total workouts", len(workouts))
		printMetric("Total training time", utils.FormatDuration(totalDuration))
		printMetric("Calories burned", fmt.Sprintf("%.0f kcal", totalCalories))
		printMetric("Week streak", fmt.Sprintf("%d weeks", utils.WeekStreak(starts, now)))
		fmt.Println()

		header := color.New(color.FgGreen, color.Bold).Sprintf("Reps per exercise (current week):")
		fmt.Println(header)
		var names []string
		for name := range repsThisWeek {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  • %s: %d reps\n", color.New(color.FgMagenta, color.Bold).Sprint(name), repsThisWeek[name])
		}
		if len(names) == 0 {
			fmt.Println("  Nothing yet this week.")
		}
		fmt.Println()

		totals, err := st.ExerciseTotals()
		if err != nil {
			return fmt.Errorf("failed to retrieve totals: %w", err)
		}
		if len(totals) > 0 {
			fmt.Println(color.New(color.FgGreen, color.Bold).Sprint("All time:"))
			for _, t := range totals {
				fmt.Printf("  • %-16s %4d workouts %6d reps  last %s\n", t.ExerciseName, t.Workouts, t.Reps, utils.FormatLocal(t.LastWorkout))
			}
			fmt.Println()
		}

		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// centerText centers s in a field of the given width.
func centerText(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-n-padding)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
