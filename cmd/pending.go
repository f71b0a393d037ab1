package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/formcoach/internal/utils"
	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Show the tracked workout waiting to be saved",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.PendingWorkoutExists() {
			fmt.Println("No pending workout.")
			return nil
		}

		w, err := utils.LoadPendingWorkout()
		if err != nil {
			return fmt.Errorf("failed to load pending workout: %w", err)
		}

		printBoxedHeader("PENDING WORKOUT")
		printMetric("Exercise", w.ExerciseName)
		printMetric("Recording", w.Source)
		printMetric("Started", utils.FormatLocal(w.StartTime))
		printMetric("Duration", utils.FormatDuration(w.EndTime.Sub(w.StartTime)))
		printMetric("Reps", w.Reps)
		printMetric("Calories", fmt.Sprintf("%.1f kcal", w.Calories))
		if w.Notes != "" {
			printMetric("Notes", w.Notes)
		}

		if len(w.RepTimes) > 0 {
			fmt.Println()
			faint := color.New(color.Faint).SprintFunc()
			for i, at := range w.RepTimes {
				fmt.Printf("  Rep %-3d %s\n", i+1, faint("+"+at.Sub(w.StartTime).Round(10*time.Millisecond).String()))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}
