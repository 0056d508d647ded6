// ABOUTME: CLI command for the stats dashboard.
// ABOUTME: Prints level, streak, macros, quests, and weekly workouts.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your progress dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		d, err := trk.Dashboard(uid)
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		if statsJSON {
			data, err := json.MarshalIndent(d, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal stats: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Printf("Level %d ", d.Profile.Level)
		faint.Printf("%d/100 XP\n", d.Profile.XP)
		fmt.Printf("🔥 %d day streak  •  %d workouts  •  %d quests\n\n", d.Streak, d.WorkoutCount, d.LifetimeQuests)

		printTotals("Today", d.TodayMacros)
		fmt.Println()

		bold.Printf("Quests (%d/%d)\n", d.QuestsDone, len(d.TodayQuests))
		for _, q := range d.TodayQuests {
			mark := "☐"
			if q.Done {
				mark = color.GreenString("☑")
			}
			fmt.Printf("  %s %s\n", mark, q.Title)
		}
		fmt.Println()

		bold.Println("This week")
		printWeek(d.Weekly)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the dashboard as JSON")
	rootCmd.AddCommand(statsCmd)
}
