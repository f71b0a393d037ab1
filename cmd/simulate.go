package cmd

import (
	"fmt"
	"os"

	"github.com/misterclayt0n/formcoach/internal/framesource"
	"github.com/spf13/cobra"
)

var (
	simExercise string
	simReps     int
	simHold     int
	simMove     int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [output.jsonl]",
	Short: "Write a synthetic landmark recording of an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		ex, err := c.Get(simExercise)
		if err != nil {
			return err
		}

		script := framesource.DefaultScript(simReps)
		if simHold > 0 {
			script.HoldFrames = simHold
		}
		if simMove > 0 {
			script.MoveFrames = simMove
		}
		frames := framesource.Synthesize(ex, script)

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create recording: %w", err)
		}
		defer f.Close()

		if err := framesource.Write(f, frames); err != nil {
			return fmt.Errorf("failed to write recording: %w", err)
		}

		fmt.Printf("✅ Wrote %d frames (%d %s reps) to %s\n", len(frames), simReps, ex.Name, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVarP(&simExercise, "exercise", "e", "", "Exercise id")
	simulateCmd.Flags().IntVarP(&simReps, "reps", "r", 5, "Number of reps")
	simulateCmd.Flags().IntVar(&simHold, "hold", 0, "Frames to hold every phase (default 20)")
	simulateCmd.Flags().IntVar(&simMove, "move", 0, "Frames to move between phases (default 10)")
	simulateCmd.MarkFlagRequired("exercise")
}
