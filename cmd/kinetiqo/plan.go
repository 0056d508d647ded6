// ABOUTME: CLI commands for meal plans.
// ABOUTME: Supports add, list, and delete subcommands.
package main

import (
	"errors"
	"fmt"

	"github.com/Reogieakero/fitness/internal/models"
	"github.com/Reogieakero/fitness/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	planDate    string
	planDetails string
	planFrom    string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan upcoming meals",
}

var planAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Plan a meal",
	Long: `Plan a meal for today, or for --date.

EXAMPLES:

  kinetiqo plan add "Oats and berries" --date 2025-03-05
  kinetiqo plan add "Salmon bowl" --details "200g salmon, rice, greens"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}
		date, err := parseDate(planDate)
		if err != nil {
			return err
		}

		id, err := stores.MealPlans.Add(uid, date, args[0], planDetails)
		if err != nil {
			return fmt.Errorf("failed to add meal plan: %w", err)
		}

		if date == "" {
			date = db.Today()
		}
		color.Green("✓ Planned %s for %s", args[0], date)
		fmt.Printf("  ID: %d\n", id)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List planned meals",
	Long:    `List planned meals from today onward, or for a single --date.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		var plans []*models.MealPlan
		if planDate != "" {
			date, err := parseDate(planDate)
			if err != nil {
				return err
			}
			plans, err = stores.MealPlans.ListByDate(uid, date)
			if err != nil {
				return fmt.Errorf("failed to list meal plans: %w", err)
			}
		} else {
			from, err := parseDate(planFrom)
			if err != nil {
				return err
			}
			plans, err = stores.MealPlans.ListUpcoming(uid, from)
			if err != nil {
				return fmt.Errorf("failed to list meal plans: %w", err)
			}
		}

		if len(plans) == 0 {
			fmt.Println("No meal plans found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range plans {
			details := ""
			if p.Details != "" {
				details = faint.Sprintf(" (%s)", truncate(p.Details, 40))
			}
			fmt.Printf("%s %s %s%s\n",
				faint.Sprint(padRight(fmt.Sprint(p.ID), 5)),
				faint.Sprint(p.PlanDate),
				p.Title,
				details)
		}
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a meal plan",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := stores.MealPlans.Delete(id); errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("meal plan not found: %d", id)
		} else if err != nil {
			return fmt.Errorf("failed to delete meal plan: %w", err)
		}

		color.Yellow("✗ Deleted meal plan %d", id)
		return nil
	},
}

func init() {
	planAddCmd.Flags().StringVar(&planDate, "date", "", "day of the meal (YYYY-MM-DD, default today)")
	planAddCmd.Flags().StringVar(&planDetails, "details", "", "ingredients or notes")

	planListCmd.Flags().StringVar(&planDate, "date", "", "only this day (YYYY-MM-DD)")
	planListCmd.Flags().StringVar(&planFrom, "from", "", "first day to include (YYYY-MM-DD, default today)")

	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}
