// ABOUTME: CLI commands for the nutrition log.
// ABOUTME: Supports add, list, dates, delete, and total subcommands.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Reogieakero/fitness/internal/models"
	"github.com/Reogieakero/fitness/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	mealKcal           string
	mealProtein        string
	mealCarbs          string
	mealFat            string
	mealFiber          string
	mealGrade          string
	mealRecommendation string
	mealDate           string
	mealFromJSON       string
	mealLifetime       bool
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"m"},
	Short:   "Manage the nutrition log",
	Long: `Log meals and review calories and macros per day.

Macro values may be typed as numbers or text. They are rounded to whole
numbers; anything unparseable is stored as 0.

COMMANDS:

  add      Log a meal
  list     List one day's meals with totals
  dates    List days that have meals
  delete   Remove a meal
  total    Show one day's totals`,
}

var mealAddCmd = &cobra.Command{
	Use:   "add [food]",
	Short: "Log a meal",
	Long: `Log a meal for today, or for --date.

A food analysis result can be logged directly with --from-json. The file
holds an object with foodName, calories, protein, carbs, fat, fiber,
grade, and recommendation. Use - to read it from stdin.

EXAMPLES:

  kinetiqo meal add "Chicken Rice" --kcal 550 --protein 40 --carbs 60 --fat 12
  kinetiqo meal add Banana --kcal 105 --date 2025-03-01
  kinetiqo meal add --from-json analysis.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}
		date, err := parseDate(mealDate)
		if err != nil {
			return err
		}

		var in *models.MealInput
		if mealFromJSON != "" {
			in, err = readMealJSON(mealFromJSON)
			if err != nil {
				return err
			}
		} else {
			in = &models.MealInput{}
		}

		flags := cmd.Flags()
		if len(args) == 1 {
			in.FoodName = args[0]
		}
		if flags.Changed("kcal") {
			in.Calories = models.Amount(mealKcal)
		}
		if flags.Changed("protein") {
			in.Protein = models.Amount(mealProtein)
		}
		if flags.Changed("carbs") {
			in.Carbs = models.Amount(mealCarbs)
		}
		if flags.Changed("fat") {
			in.Fat = models.Amount(mealFat)
		}
		if flags.Changed("fiber") {
			in.Fiber = models.Amount(mealFiber)
		}
		if flags.Changed("grade") {
			in.Grade = mealGrade
		}
		if flags.Changed("recommendation") {
			in.Recommendation = mealRecommendation
		}
		if in.FoodName == "" {
			return fmt.Errorf("food name is required")
		}

		id, err := stores.Meals.Append(uid, *in, date)
		if err != nil {
			return fmt.Errorf("failed to log meal: %w", err)
		}

		color.Green("✓ Logged %s", in.FoodName)
		fmt.Printf("  ID: %d\n", id)
		fmt.Printf("  %d kcal\n", in.Calories.Int())
		return nil
	},
}

func readMealJSON(path string) (*models.MealInput, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read meal: %w", err)
	}

	in, err := models.ParseMealInput(data)
	if err != nil {
		return nil, fmt.Errorf("invalid meal JSON: %w", err)
	}
	return in, nil
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List one day's meals",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}
		date, err := parseDate(mealDate)
		if err != nil {
			return err
		}
		if date == "" {
			date = db.Today()
		}

		meals, err := stores.Meals.ListByDate(uid, date)
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		if len(meals) == 0 {
			fmt.Printf("No meals logged on %s.\n", date)
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range meals {
			grade := ""
			if m.Grade != "" {
				grade = faint.Sprintf(" [%s]", m.Grade)
			}
			fmt.Printf("%s %s %s P%d C%d F%d%s\n",
				faint.Sprint(padRight(fmt.Sprint(m.ID), 5)),
				padRight(truncate(m.FoodName, 24), 24),
				padRight(fmt.Sprintf("%d kcal", m.Calories), 10),
				m.Protein, m.Carbs, m.Fat,
				grade)
		}

		totals, err := stores.Meals.DayTotals(uid, date)
		if err != nil {
			return fmt.Errorf("failed to total meals: %w", err)
		}
		fmt.Println()
		printTotals(date, totals)
		return nil
	},
}

var mealDatesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List days that have meals, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		dates, err := stores.Meals.ListDistinctDates(uid)
		if err != nil {
			return fmt.Errorf("failed to list dates: %w", err)
		}
		if len(dates) == 0 {
			fmt.Println("No meals found.")
			return nil
		}
		for _, d := range dates {
			total, err := stores.Meals.DailyTotal(uid, d)
			if err != nil {
				return fmt.Errorf("failed to total %s: %w", d, err)
			}
			fmt.Printf("%s %s\n", d, color.New(color.Faint).Sprintf("%d kcal", total))
		}
		return nil
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a meal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := stores.Meals.Delete(id); errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("meal not found: %d", id)
		} else if err != nil {
			return fmt.Errorf("failed to delete meal: %w", err)
		}

		color.Yellow("✗ Deleted meal %d", id)
		return nil
	},
}

var mealTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show calories and macros for a day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		if mealLifetime {
			totals, err := stores.Meals.LifetimeTotals(uid)
			if err != nil {
				return fmt.Errorf("failed to total meals: %w", err)
			}
			printTotals("all time", totals)
			return nil
		}

		date, err := parseDate(mealDate)
		if err != nil {
			return err
		}
		if date == "" {
			date = db.Today()
		}
		totals, err := stores.Meals.DayTotals(uid, date)
		if err != nil {
			return fmt.Errorf("failed to total meals: %w", err)
		}
		printTotals(date, totals)
		return nil
	},
}

func printTotals(label string, t models.MacroTotals) {
	color.New(color.Bold).Printf("%s: %d kcal\n", label, t.Calories)
	fmt.Printf("  Protein %dg  Carbs %dg  Fat %dg  Fiber %dg\n", t.Protein, t.Carbs, t.Fat, t.Fiber)
}

func init() {
	mealAddCmd.Flags().StringVar(&mealKcal, "kcal", "", "calories")
	mealAddCmd.Flags().StringVar(&mealProtein, "protein", "", "protein (g)")
	mealAddCmd.Flags().StringVar(&mealCarbs, "carbs", "", "carbs (g)")
	mealAddCmd.Flags().StringVar(&mealFat, "fat", "", "fat (g)")
	mealAddCmd.Flags().StringVar(&mealFiber, "fiber", "", "fiber (g)")
	mealAddCmd.Flags().StringVar(&mealGrade, "grade", "", "nutrition grade")
	mealAddCmd.Flags().StringVar(&mealRecommendation, "recommendation", "", "advice text")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "day to log on (YYYY-MM-DD, default today)")
	mealAddCmd.Flags().StringVar(&mealFromJSON, "from-json", "", "read a food analysis result from file (- for stdin)")

	mealListCmd.Flags().StringVar(&mealDate, "date", "", "day to list (YYYY-MM-DD, default today)")

	mealTotalCmd.Flags().StringVar(&mealDate, "date", "", "day to total (YYYY-MM-DD, default today)")
	mealTotalCmd.Flags().BoolVar(&mealLifetime, "all", false, "total every meal ever logged")

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealDatesCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	mealCmd.AddCommand(mealTotalCmd)
	rootCmd.AddCommand(mealCmd)
}
