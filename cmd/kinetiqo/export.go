// ABOUTME: CLI commands for exporting and importing a user's data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export your data",
	Long: `Export the active user's data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by day (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include data since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  kinetiqo export json                        # Export all data as JSON
  kinetiqo export json -o backup.json         # Save to file
  kinetiqo export yaml                        # Export as YAML
  kinetiqo export markdown --since 2025-01-01 # Export data from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		var data []byte
		switch args[0] {
		case "json":
			data, err = db.ExportJSON(uid)
		case "yaml":
			data, err = db.ExportYAML(uid)
		case "markdown", "md":
			since, perr := parseDate(exportSince)
			if perr != nil {
				return perr
			}
			var md string
			md, err = db.ExportMarkdown(uid, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from a JSON export",
	Long: `Import workouts, meals, quests, and meal plans from a JSON export into
the active user's log.

Profile fields and XP are not changed. Quests already completed on the
same day are skipped.

EXAMPLES:

  kinetiqo import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		sum, err := db.ImportJSON(uid, data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", args[0])
		fmt.Printf("  %d workouts, %d meals, %d quests, %d meal plans\n",
			sum.Workouts, sum.Meals, sum.Quests, sum.MealPlans)
		if sum.SkippedQuests > 0 {
			color.New(color.Faint).Printf("  %d quests already recorded\n", sum.SkippedQuests)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
