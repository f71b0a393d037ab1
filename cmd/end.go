package cmd

import (
	"fmt"

	"github.com/misterclayt0n/formcoach/internal/utils"
	"github.com/spf13/cobra"
)

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "Save the pending workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.PendingWorkoutExists() {
			return fmt.Errorf("no pending workout, track one with `formcoach track`")
		}

		pending, err := utils.LoadPendingWorkout()
		if err != nil {
			return fmt.Errorf("failed to load pending workout: %w", err)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		// Save to database.
		id, err := st.SaveWorkout(pending.Workout())
		if err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}

		// Clear temp file.
		if err := utils.ClearPendingWorkout(); err != nil {
			return fmt.Errorf("failed to clear pending workout: %w", err)
		}

		fmt.Printf("✅ Workout saved (%s)\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(endCmd)
}
