package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/utils"
	"github.com/spf13/cobra"
)

var (
	limitWorkouts int
	historyOnly   bool
)

var showExCmd = &cobra.Command{
	Use:   "show-ex [exercise-id]",
	Short: "Display an exercise definition and its workout history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		ex, err := c.Get(args[0])
		if err != nil {
			return err
		}

		// Define color functions.
		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		blue := color.New(color.FgBlue).SprintFunc()

		if !historyOnly {
			fmt.Println(boldGreen("Exercise Information:"))
			fmt.Printf("  %s: %s\n", boldCyan("Name"), ex.Name)
			fmt.Printf("  %s: %s\n", boldCyan("Description"), ex.Description)
			fmt.Printf("  %s: %s\n", boldCyan("Body Part"), ex.BodyPart)
			fmt.Printf("  %s: %s\n", boldCyan("Camera View"), ex.CameraView)
			fmt.Printf("  %s: %.1f\n", boldCyan("MET"), ex.MET)
			fmt.Printf("  %s: %s\n", boldCyan("Required Landmarks"), strings.Join(ex.RequiredLandmarks, ", "))
			if ex.HighPrecision {
				fmt.Printf("  %s: %s\n", boldCyan("Precision"), yellow("high (stricter visibility)"))
			}

			fmt.Println("\n" + boldGreen("Phases:"))
			for i, p := range ex.Phases {
				fmt.Printf("  %d. %s\n", i, boldCyan(p.Name))
				for _, name := range p.TargetNames() {
					r := p.Targets[name]
					fmt.Printf("       %-22s %5.0f° - %.0f°\n", name, r.Min, r.Max)
				}
				if p.Feedback != "" {
					fmt.Printf("       %s\n", magenta(p.Feedback))
				}
			}

			fmt.Println("\n" + boldGreen("Transitions:"))
			for _, tr := range ex.Transitions {
				effect := string(tr.Effect)
				if tr.Effect == catalog.EffectNone {
					effect = "-"
				}
				fmt.Printf("  %s → %s  %s", ex.Phases[tr.From].Name, ex.Phases[tr.To].Name, yellow(effect))
				if tr.Message != "" {
					fmt.Printf("  %q", tr.Message)
				}
				fmt.Println()
			}
			fmt.Println()
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		workouts, err := st.GetAllWorkouts()
		if err != nil {
			return fmt.Errorf("failed to retrieve workout history: %w", err)
		}

		fmt.Printf("%s %s:\n", boldGreen("History for"), ex.Name)
		shown := 0
		for _, w := range workouts {
			if w.ExerciseID != ex.ID {
				continue
			}
			if limitWorkouts > 0 && shown == limitWorkouts {
				break
			}
			shown++
			fmt.Printf("  %s  %s reps  %s  %.1f kcal  %s\n",
				blue(utils.FormatLocal(w.StartTime)),
				boldCyan(fmt.Sprintf("%3d", w.Reps)),
				w.Duration().Round(time.Second),
				w.Calories,
				magenta(w.ID),
			)
		}
		if shown == 0 {
			fmt.Println(magenta("  No workouts found."))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showExCmd)
	showExCmd.Flags().IntVarP(&limitWorkouts, "limit", "l", 5, "Number of workouts to display")
	showExCmd.Flags().BoolVarP(&historyOnly, "history-only", "H", false, "Display only the workout history")
}
