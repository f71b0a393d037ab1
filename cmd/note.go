package cmd

import (
	"fmt"
	"strings"

	"github.com/misterclayt0n/formcoach/internal/utils"
	"github.com/spf13/cobra"
)

var noteWorkoutID string

var noteCmd = &cobra.Command{
	Use:   "note [text]",
	Short: "Attach a note to the pending workout, or to a saved one with --workout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note := strings.Join(args, " ")

		if noteWorkoutID != "" {
			st, err := openStorage()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.UpdateWorkoutNotes(noteWorkoutID, note); err != nil {
				return err
			}
			fmt.Println("✅ Note saved")
			return nil
		}

		if !utils.PendingWorkoutExists() {
			return fmt.Errorf("no pending workout, use --workout to annotate a saved one")
		}
		w, err := utils.LoadPendingWorkout()
		if err != nil {
			return fmt.Errorf("failed to load pending workout: %w", err)
		}
		w.Notes = note
		if err := utils.SavePendingWorkout(w); err != nil {
			return fmt.Errorf("failed to update pending workout: %w", err)
		}

		fmt.Println("✅ Note added to the pending workout")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.Flags().StringVarP(&noteWorkoutID, "workout", "w", "", "ID of a saved workout")
}
