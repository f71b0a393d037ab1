package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/evaluator"
	"github.com/misterclayt0n/formcoach/internal/framesource"
	"github.com/misterclayt0n/formcoach/internal/report"
	"github.com/misterclayt0n/formcoach/internal/session"
	"github.com/misterclayt0n/formcoach/internal/storage"
	"github.com/misterclayt0n/formcoach/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	trackExercise string
	trackSave     bool
	trackQuiet    bool
	trackChart    string
	trackWeight   float64
)

var trackCmd = &cobra.Command{
	Use:   "track [frames.jsonl]",
	Short: "Track a landmark recording: count reps and print form feedback",
	Long: `Track a landmark recording (JSON lines, one pose per line, "-" for stdin).
Without --exercise the recording is tracked in free movement mode.
Unless --save is given the result is kept as a pending workout: save it with
"formcoach end" or drop it with "formcoach discard".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		var ex *catalog.Exercise
		if trackExercise != "" {
			if ex, err = c.Get(trackExercise); err != nil {
				return err
			}
		}

		var src io.Reader = os.Stdin
		source := "stdin"
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open recording: %w", err)
			}
			defer f.Close()
			src = f
			source = filepath.Base(args[0])
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		tr := session.NewTracker(trackerOptions())
		rec := report.ForExercise(ex)
		p := newEventPrinter(trackQuiet)

		p.feedback(tr.SetExercise(ex).Feedback)

		frames, errc := framesource.Stream(ctx, src)
		runErr := tr.Run(ctx, frames, func(u session.Update) {
			rec.Add(u)
			p.update(u, ex == nil)
		})
		interrupted := ctx.Err() != nil
		stop()
		// After an interrupt the reader may still be blocked on stdin; its error is not needed.
		if !interrupted {
			if err := <-errc; err != nil {
				return fmt.Errorf("failed to read recording: %w", err)
			}
		}
		if runErr != nil {
			logrus.WithError(runErr).Warn("tracking interrupted")
		}

		accepted, dropped := tr.Stats()
		logrus.WithFields(logrus.Fields{"accepted": accepted, "dropped": dropped}).Info("recording processed")

		// Storage is optional while tracking: it only provides the profile weight.
		var st *storage.Storage
		if trackSave || trackWeight <= 0 {
			if st, err = openStorage(); err != nil {
				if trackSave {
					return err
				}
				logrus.WithError(err).Warn("storage unavailable, using configured weight")
			} else {
				defer st.Close()
			}
		}
		weight := trackWeight
		if weight <= 0 {
			weight = weightKg(st)
		}

		sum := tr.Summary(weight)
		printSummary(sum, accepted, dropped)

		if trackChart != "" {
			if err := writeChart(rec, trackChart, fmt.Sprintf("%s: %s", sum.ExerciseName, source)); err != nil {
				return err
			}
			fmt.Printf("📈 Chart written to %s\n", trackChart)
		}

		if ex == nil {
			return nil
		}

		if trackSave {
			id, err := st.SaveWorkout(sum.Workout(source))
			if err != nil {
				return fmt.Errorf("failed to save workout: %w", err)
			}
			fmt.Printf("✅ Workout saved (%s)\n", id)
			return nil
		}

		if err := utils.SavePendingWorkout(sum.Pending(source)); err != nil {
			return fmt.Errorf("failed to keep pending workout: %w", err)
		}
		fmt.Println("Run `formcoach end` to save this workout or `formcoach discard` to drop it.")
		return nil
	},
}

func trackerOptions() session.Options {
	return session.Options{
		MinCutoff:         cfg.Tracking.MinCutoff,
		Beta:              cfg.Tracking.Beta,
		DCutoff:           cfg.Tracking.DCutoff,
		DisableSmoothing:  cfg.Tracking.DisableSmoothing,
		MovementThreshold: cfg.Tracking.MovementThreshold,
		MaxFPS:            cfg.Tracking.MaxFPS,
	}
}

func writeChart(rec *report.Recorder, path, title string) error {
	if strings.EqualFold(filepath.Ext(path), ".html") {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create chart: %w", err)
		}
		defer f.Close()
		return rec.WriteHTML(f, title)
	}
	return rec.SavePlot(path, title)
}

// eventPrinter prints evaluation events as they happen.
type eventPrinter struct {
	quiet  bool
	start  time.Time
	moving string

	rep    func(a ...interface{}) string
	phase  func(a ...interface{}) string
	advice func(a ...interface{}) string
	faint  func(a ...interface{}) string
	stamp  func(a ...interface{}) string
}

func newEventPrinter(quiet bool) *eventPrinter {
	return &eventPrinter{
		quiet:  quiet,
		rep:    color.New(color.FgGreen, color.Bold).SprintFunc(),
		phase:  color.New(color.FgCyan).SprintFunc(),
		advice: color.New(color.FgYellow).SprintFunc(),
		faint:  color.New(color.Faint).SprintFunc(),
		stamp:  color.New(color.FgBlue).SprintFunc(),
	}
}

func (p *eventPrinter) feedback(msgs []string) {
	if p.quiet {
		return
	}
	for _, m := range msgs {
		fmt.Printf("  %s\n", p.advice(m))
	}
}

func (p *eventPrinter) update(u session.Update, free bool) {
	if u.Dropped {
		return
	}
	if p.start.IsZero() {
		p.start = u.Frame.Time()
	}
	at := p.stamp(fmt.Sprintf("[%6.2fs]", u.Frame.Time().Sub(p.start).Seconds()))

	if free && !p.quiet {
		moving := strings.Join(u.Moving.Names(), ", ")
		if moving != p.moving {
			p.moving = moving
			if moving == "" {
				moving = "still"
			}
			fmt.Printf("%s %s %s\n", at, p.faint("moving:"), moving)
		}
	}

	for _, ev := range u.Result.Events {
		switch e := ev.(type) {
		case evaluator.RepCompleted:
			fmt.Printf("%s %s\n", at, p.rep(fmt.Sprintf("Rep %d", e.Count)))
		case evaluator.PhaseChanged:
			if !p.quiet {
				fmt.Printf("%s %s %s\n", at, p.faint("phase:"), p.phase(e.Phase.Name))
			}
		case evaluator.FeedbackUpdated:
			if !p.quiet {
				for _, m := range e.Messages {
					fmt.Printf("%s   %s\n", at, p.advice(m))
				}
			}
		}
	}
}

func printSummary(sum session.Summary, accepted, dropped int) {
	printBoxedHeader("SUMMARY")
	printMetric("Exercise", sum.ExerciseName)
	printMetric("Reps", sum.Reps)
	printMetric("Duration", utils.FormatDuration(sum.Duration))
	if sum.Reps > 1 {
		interval := fmt.Sprintf("%.1fs", sum.AvgRepInterval.Seconds())
		if sum.RepIntervalStdDev > 0 {
			interval += fmt.Sprintf(" ± %.1fs", sum.RepIntervalStdDev.Seconds())
		}
		printMetric("Rep interval", interval)
		printMetric("Cadence", fmt.Sprintf("%.1f reps/min", utils.RepsPerMinute(sum.Reps, sum.Duration)))
	}
	if sum.MET > 0 {
		printMetric("Calories", fmt.Sprintf("%.1f kcal", sum.Calories))
	}
	printMetric("Frames", fmt.Sprintf("%d evaluated, %d throttled", accepted, dropped))
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVarP(&trackExercise, "exercise", "e", "", "Exercise id (see `formcoach exercises`); empty tracks free movement")
	trackCmd.Flags().BoolVarP(&trackSave, "save", "s", false, "Save the workout right away")
	trackCmd.Flags().BoolVarP(&trackQuiet, "quiet", "q", false, "Only print reps and the summary")
	trackCmd.Flags().StringVarP(&trackChart, "chart", "c", "", "Write an angle chart (.html for interactive, .png/.svg/.pdf for static)")
	trackCmd.Flags().Float64Var(&trackWeight, "weight", 0, "Body weight in kg for this workout")
}
