package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/formcoach/internal/models"
	"github.com/misterclayt0n/formcoach/internal/utils"
	"github.com/spf13/cobra"
)

var showWorkoutCmd = &cobra.Command{
	Use:   "show-workout [workout-id]",
	Short: "Show a saved workout with the time of every rep",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		w, err := st.GetWorkoutByID(args[0])
		if err != nil {
			return fmt.Errorf("failed to load workout: %w", err)
		}

		// Define color functions.
		cyan := color.New(color.FgCyan).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("%s\n", green(w.ExerciseName))
		fmt.Printf("\n%s %s\n", red("Workout:"), w.ID)
		fmt.Printf("%s %s\n", cyan("Started:"), utils.FormatLocal(w.StartTime))
		fmt.Printf("%s %s\n", red("Duration:"), utils.FormatDuration(w.Duration()))
		fmt.Printf("%s %d\n", cyan("Reps:"), w.Reps)
		fmt.Printf("%s %.1f kcal\n", cyan("Calories:"), w.Calories)
		if w.Source != "" {
			fmt.Printf("%s %s\n", cyan("Recording:"), w.Source)
		}
		if w.Notes != "" {
			fmt.Printf("%s %s\n", cyan("Notes:"), w.Notes)
		}
		fmt.Println()

		if len(w.RepEvents) > 0 {
			printRepTable(w, "   ")
		}
		return nil
	},
}

// printRepTable prints one row per rep: its offset from the start and the gap to the previous rep.
func printRepTable(w *models.Workout, indent string) {
	repColWidth := 6
	atColWidth := 14
	gapColWidth := 14

	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Println(indent + "┌" + strings.Repeat("─", repColWidth) + "┬" +
		strings.Repeat("─", atColWidth) + "┬" + strings.Repeat("─", gapColWidth) + "┐")
	fmt.Printf(indent+"│%-*s│%-*s│%-*s│\n", repColWidth, "Rep", atColWidth, "At", gapColWidth, "Since last")
	fmt.Println(indent + "├" + strings.Repeat("─", repColWidth) + "┼" +
		strings.Repeat("─", atColWidth) + "┼" + strings.Repeat("─", gapColWidth) + "┤")

	prev := w.StartTime
	for _, ev := range w.RepEvents {
		at := ev.Timestamp.Sub(w.StartTime).Round(10 * time.Millisecond)
		gap := ev.Timestamp.Sub(prev).Round(10 * time.Millisecond)
		prev = ev.Timestamp
		fmt.Printf(indent+"│%-*d│%-*s│%s│\n",
			repColWidth, ev.Rep,
			atColWidth, "+"+at.String(),
			yellow(fmt.Sprintf("%-*s", gapColWidth, gap.String())),
		)
	}
	fmt.Println(indent + "└" + strings.Repeat("─", repColWidth) + "┴" +
		strings.Repeat("─", atColWidth) + "┴" + strings.Repeat("─", gapColWidth) + "┘")
}

func init() {
	rootCmd.AddCommand(showWorkoutCmd)
}
