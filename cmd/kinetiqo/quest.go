// ABOUTME: CLI commands for daily quests.
// ABOUTME: Supports list, complete, and history subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var questHistoryLimit int

var questCmd = &cobra.Command{
	Use:     "quest",
	Aliases: []string{"q"},
	Short:   "Daily quests",
	Long: `Each weekday has three quests. Completing one awards its XP once per day.

The quest list comes from ~/.config/kinetiqo/quests.yaml when present,
otherwise the built-in catalog is used.`,
}

var questListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "today"},
	Short:   "Show today's quests",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		quests, err := trk.TodayQuests(uid)
		if err != nil {
			return fmt.Errorf("failed to list quests: %w", err)
		}
		if len(quests) == 0 {
			fmt.Println("No quests today.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, q := range quests {
			mark := "☐"
			if q.Done {
				mark = color.GreenString("☑")
			}
			fmt.Printf("%s %s %s %s\n", mark, faint.Sprint(padRight(q.ID, 4)), padRight(q.Title, 28), faint.Sprintf("+%d XP", q.XP))
		}
		return nil
	},
}

var questCompleteCmd = &cobra.Command{
	Use:     "complete <quest-id>",
	Aliases: []string{"done"},
	Short:   "Mark a quest done for today",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		award, err := trk.CompleteQuest(uid, args[0])
		if err != nil {
			return fmt.Errorf("failed to complete quest: %w", err)
		}

		title := trk.Catalog().Title(args[0])
		if !award.Inserted {
			color.Yellow("Already completed today: %s", title)
			return nil
		}
		color.Green("✓ Completed %s", title)
		printAward(award)
		return nil
	},
}

var questHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed quests, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		history, err := stores.Quests.History(uid)
		if err != nil {
			return fmt.Errorf("failed to load quest history: %w", err)
		}
		count, err := stores.Quests.LifetimeCount(uid)
		if err != nil {
			return fmt.Errorf("failed to count quests: %w", err)
		}

		if len(history) == 0 {
			fmt.Println("No quests completed yet.")
			return nil
		}
		if questHistoryLimit > 0 && len(history) > questHistoryLimit {
			history = history[:questHistoryLimit]
		}

		faint := color.New(color.Faint)
		cat := trk.Catalog()
		for _, h := range history {
			fmt.Printf("%s %s\n", faint.Sprint(h.CompletionDate), cat.Title(h.QuestID))
		}
		fmt.Printf("\n%d quests completed\n", count)
		return nil
	},
}

func init() {
	questHistoryCmd.Flags().IntVarP(&questHistoryLimit, "limit", "n", 20, "max number of results")

	questCmd.AddCommand(questListCmd)
	questCmd.AddCommand(questCompleteCmd)
	questCmd.AddCommand(questHistoryCmd)
	rootCmd.AddCommand(questCmd)
}
