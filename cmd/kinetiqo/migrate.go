// ABOUTME: CLI command for copying a user's log between database files.
// ABOUTME: Reads from another kinetiqo database and appends into this one.
package main

import (
	"fmt"

	"github.com/Reogieakero/fitness/internal/config"
	"github.com/Reogieakero/fitness/internal/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	migrateFrom     string
	migrateFromUser int64
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy a user's data from another database",
	Long: `Copy workouts, meals, quests, and meal plans from another kinetiqo
database into the active user of this one.

The source file is opened read-write so older databases are upgraded to
the current schema first.

USAGE:

  kinetiqo migrate --from ~/old/kinetiqo.db --from-user 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := activeUser()
		if err != nil {
			return err
		}

		src, err := storage.Open(config.ExpandPath(migrateFrom), storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open source database: %w", err)
		}
		defer src.Close()

		sum, err := storage.MigrateUserData(src, db, migrateFromUser, uid)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated user %d from %s", migrateFromUser, migrateFrom)
		fmt.Printf("  %d workouts, %d meals, %d quests, %d meal plans\n",
			sum.Workouts, sum.Meals, sum.Quests, sum.MealPlans)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source database file")
	migrateCmd.Flags().Int64Var(&migrateFromUser, "from-user", 1, "user ID in the source database")
	_ = migrateCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(migrateCmd)
}
