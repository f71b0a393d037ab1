package cmd

import (
	"fmt"

	"github.com/misterclayt0n/formcoach/internal/utils"
	"github.com/spf13/cobra"
)

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Drop the pending workout without saving it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.PendingWorkoutExists() {
			return fmt.Errorf("no pending workout to discard")
		}

		if err := utils.ClearPendingWorkout(); err != nil {
			return fmt.Errorf("failed to discard workout: %w", err)
		}

		fmt.Println("🗑️ Pending workout discarded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discardCmd)
}
