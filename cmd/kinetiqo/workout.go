// ABOUTME: CLI commands for logging and reviewing workout sessions.
// ABOUTME: Supports log, list, show, delete, streak, and week subcommands.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Reogieakero/fitness/internal/models"
	"github.com/Reogieakero/fitness/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	workoutIntensity  string
	workoutXP         int
	workoutExercises  []string
	workoutIncomplete bool
	workoutImage      string
	workoutToday      bool
	workoutLimit      int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workout sessions",
	Long: `Track workout sessions and the XP they earn.

Every session is appended to your log, finished or not. Only Complete
sessions count toward your streak and award XP.

COMMANDS:

  log      Record a session
  list     List sessions, newest first
  show     View one session
  delete   Remove a session
  streak   Consecutive days with a completed session
  week     Sessions per day over the last seven days`,
}

var workoutLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a workout session",
	Long: `Record a workout session. Completed sessions award their XP.

EXAMPLES:

  kinetiqo workout log --intensity High --xp 50 -e Burpees -e "Jump Squats"
  kinetiqo workout log --intensity Low --xp 20 -e Plank --incomplete
  kinetiqo workout log --xp 30 -e Pushups --image file:///photos/proof.jpg`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		in := models.NewWorkoutInput(models.Intensity(workoutIntensity), workoutXP, workoutExercises...)
		if workoutIncomplete {
			in.Abandoned()
		}
		if workoutImage != "" {
			in.WithImage(workoutImage)
		}

		award, err := trk.FinishWorkout(uid, *in)
		if err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		if workoutIncomplete {
			color.Yellow("✓ Logged incomplete %s workout", workoutIntensity)
		} else {
			color.Green("✓ Logged %s workout", workoutIntensity)
		}
		fmt.Printf("  ID: %d\n", award.ID)
		printAward(award)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workout sessions",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		var workouts []*models.WorkoutSession
		if workoutToday {
			workouts, err = stores.Workouts.ListToday(uid)
		} else {
			workouts, err = stores.Workouts.ListAll(uid)
		}
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}
		if workoutLimit > 0 && len(workouts) > workoutLimit {
			workouts = workouts[:workoutLimit]
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			status := color.GreenString("✓")
			if !w.IsComplete() {
				status = color.YellowString("✗")
			}
			fmt.Printf("%s %s %s %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(w.ID), 5)),
				faint.Sprint(workoutDay(w)),
				status,
				padRight(string(w.Intensity), 8),
				padRight(fmt.Sprintf("%d XP", w.XPEarned), 7),
				truncate(strings.Join(w.Exercises, ", "), 40))
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		w, err := stores.Workouts.Get(id)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("workout not found: %d", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		color.New(color.Bold).Printf("%s workout ", w.Intensity)
		color.New(color.Faint).Printf("#%d\n", w.ID)
		fmt.Printf("  Day:    %s\n", workoutDay(w))
		fmt.Printf("  Status: %s\n", w.Status)
		fmt.Printf("  XP:     %d\n", w.XPEarned)
		if w.ImageURI != nil {
			fmt.Printf("  Image:  %s\n", *w.ImageURI)
		}
		if len(w.Exercises) > 0 {
			fmt.Println("\n  Exercises:")
			for _, e := range w.Exercises {
				fmt.Printf("    • %s\n", e)
			}
		}
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout session",
	Long: `Delete a workout session by ID.

XP already awarded for the session is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := stores.Workouts.Delete(id); errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("workout not found: %d", id)
		} else if err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted workout %d", id)
		return nil
	},
}

var workoutStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your current workout streak",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		streak, err := stores.Workouts.ComputeStreak(uid)
		if err != nil {
			return fmt.Errorf("failed to compute streak: %w", err)
		}

		unit := "days"
		if streak == 1 {
			unit = "day"
		}
		fmt.Printf("🔥 %d %s\n", streak, unit)
		return nil
	},
}

var workoutWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show sessions per day for the last seven days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		days, err := stores.Workouts.WeeklyDistribution(uid)
		if err != nil {
			return fmt.Errorf("failed to load weekly distribution: %w", err)
		}
		printWeek(days)
		return nil
	},
}

func printWeek(days []models.DayCount) {
	faint := color.New(color.Faint)
	for _, d := range days {
		fmt.Printf("%s %s %s %d\n", d.Label, faint.Sprint(d.Date), color.GreenString(bar(d.Value)), d.Value)
	}
}

func init() {
	workoutLogCmd.Flags().StringVarP(&workoutIntensity, "intensity", "i", string(models.IntensityMedium), "intensity (Low, Medium, High)")
	workoutLogCmd.Flags().IntVar(&workoutXP, "xp", 0, "XP earned by the session")
	workoutLogCmd.Flags().StringArrayVarP(&workoutExercises, "exercise", "e", nil, "exercise performed (repeatable)")
	workoutLogCmd.Flags().BoolVar(&workoutIncomplete, "incomplete", false, "record the session as abandoned")
	workoutLogCmd.Flags().StringVar(&workoutImage, "image", "", "proof photo reference")

	workoutListCmd.Flags().BoolVar(&workoutToday, "today", false, "only today's sessions")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutLogCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	workoutCmd.AddCommand(workoutStreakCmd)
	workoutCmd.AddCommand(workoutWeekCmd)
	rootCmd.AddCommand(workoutCmd)
}
