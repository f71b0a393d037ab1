package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/formcoach/internal/models"
	"github.com/spf13/cobra"
)

// details is a flag to enable verbose workout details.
var details bool

// calendarCmd prints the month grid. Days with workouts are colored by the
// exercise of the day's first workout, with a legend below the calendar.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of training days colored by exercise",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Determine month and year (default to current month/year).
		now := time.Now()
		month := now.Month()
		year := now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		nextMonth := firstOfMonth.AddDate(0, 1, 0)
		lastDay := nextMonth.AddDate(0, 0, -1).Day()

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		workouts, err := st.GetWorkoutsBetween(firstOfMonth, nextMonth)
		if err != nil {
			return fmt.Errorf("failed to get workouts: %w", err)
		}

		// Group workouts by day, oldest first.
		workoutsByDay := make(map[int][]models.Workout)
		for i := len(workouts) - 1; i >= 0; i-- {
			w := workouts[i]
			day := w.StartTime.In(time.Local).Day()
			workoutsByDay[day] = append(workoutsByDay[day], w)
		}

		colorPalette := []color.Attribute{
			color.FgRed, color.FgGreen, color.FgYellow,
			color.FgBlue, color.FgMagenta, color.FgCyan,
		}
		// Assign colors in order of first appearance so the legend is stable.
		exerciseColors := make(map[string]func(a ...interface{}) string)
		var legend []string
		for day := 1; day <= lastDay; day++ {
			for _, w := range workoutsByDay[day] {
				if _, ok := exerciseColors[w.ExerciseName]; !ok {
					exerciseColors[w.ExerciseName] = color.New(colorPalette[len(legend)%len(colorPalette)]).SprintFunc()
					legend = append(legend, w.ExerciseName)
				}
			}
		}

		header := fmt.Sprintf("%s %d", month.String(), year)
		fmt.Println(centerText(header, 20))
		fmt.Println("Mo Tu We Th Fr Sa Su")

		// Weeks start on Monday.
		weekday := (int(firstOfMonth.Weekday()) + 6) % 7
		for i := 0; i < weekday; i++ {
			fmt.Print("   ")
		}

		for day := 1; day <= lastDay; day++ {
			dayStr := fmt.Sprintf("%2d", day)
			if list, ok := workoutsByDay[day]; ok {
				dayStr = exerciseColors[list[0].ExerciseName](dayStr)
			}
			fmt.Printf("%s ", dayStr)
			weekday++
			if weekday%7 == 0 {
				fmt.Println()
			}
		}
		fmt.Print("\n\n")

		if len(legend) > 0 {
			fmt.Println("Legend:")
			for _, name := range legend {
				fmt.Printf("  %s: %s\n", exerciseColors[name]("██"), name)
			}
		}

		if details {
			fmt.Println("\nWorkout Details:")
			var days []int
			for d := range workoutsByDay {
				days = append(days, d)
			}
			sort.Ints(days)
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				for _, w := range workoutsByDay[day] {
					fmt.Printf("  %s  %s  %d reps  %s\n",
						w.StartTime.Local().Format("15:04"), w.ExerciseName, w.Reps, w.ID)
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "Print additional workout details")
}
