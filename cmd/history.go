package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/formcoach/internal/models"
	"github.com/spf13/cobra"
)

var (
	filterExercise string
	filterDay      string
)

// historyCmd shows the saved workouts grouped by day.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the workout history, optionally filtered by exercise and/or day",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		var workouts []models.Workout
		if filterDay != "" {
			var parsedDay time.Time
			parsedDay, err = time.ParseInLocation("2006-01-02", filterDay, time.Local)
			if err != nil {
				parsedDay, err = time.ParseInLocation("02/01/06", filterDay, time.Local)
			}
			if err != nil {
				return fmt.Errorf("failed to parse day: %w", err)
			}
			workouts, err = st.GetWorkoutsBetween(parsedDay, parsedDay.AddDate(0, 0, 1))
		} else {
			workouts, err = st.GetAllWorkouts()
		}
		if err != nil {
			return fmt.Errorf("failed to retrieve workouts: %w", err)
		}

		// Case insensitive filtering by exercise id or name.
		if filterExercise != "" {
			var filtered []models.Workout
			for _, w := range workouts {
				if strings.EqualFold(w.ExerciseID, filterExercise) || strings.EqualFold(w.ExerciseName, filterExercise) {
					filtered = append(filtered, w)
				}
			}
			workouts = filtered
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		grouped := make(map[string][]models.Workout)
		for _, w := range workouts {
			day := w.StartTime.Local().Format("2006-01-02")
			grouped[day] = append(grouped[day], w)
		}

		var days []string
		for d := range grouped {
			days = append(days, d)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(days)))

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		for _, d := range days {
			fmt.Println(boldGreen(d))
			list := grouped[d]
			sort.Slice(list, func(i, j int) bool {
				return list[i].StartTime.Before(list[j].StartTime)
			})
			for _, w := range list {
				fmt.Printf("  %s  %-16s %3d reps  %8s  %6.1f kcal  %s\n",
					w.StartTime.Local().Format("15:04"),
					w.ExerciseName,
					w.Reps,
					w.Duration().Round(time.Second),
					w.Calories,
					faint(w.ID),
				)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterExercise, "exercise", "e", "", "Filter by exercise id or name (case insensitive)")
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Filter by day (e.g. 2025-02-07 or 07/02/25)")
}
