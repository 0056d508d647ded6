// ABOUTME: Root Cobra command for the kinetiqo CLI.
// ABOUTME: Opens config, logger, storage, and tracker in PersistentPre/PostRunE.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Reogieakero/fitness/internal/catalog"
	"github.com/Reogieakero/fitness/internal/config"
	"github.com/Reogieakero/fitness/internal/logging"
	"github.com/Reogieakero/fitness/internal/storage"
	"github.com/Reogieakero/fitness/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	dbPath   string
	userFlag int64

	cfg    *config.Config
	logger *slog.Logger
	db     *storage.DB
	stores *storage.Stores
	trk    *tracker.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "kinetiqo",
	Short: "Local-first fitness tracker",
	Long: `Kinetiqo is a local-first fitness tracker with XP, levels, and daily quests.

WHAT IT TRACKS:

  Workouts     sessions with intensity, exercises, and XP earned
  Nutrition    meals with calories and macros, grouped by day
  Quests       three daily challenges per weekday, once per day each
  Meal plans   planned meals for upcoming days

QUICK START:

  $ kinetiqo register --username sam --email sam@example.com --password s3cret
  $ kinetiqo workout log --intensity High --xp 50 -e Burpees -e Squats
  $ kinetiqo meal add "Chicken Rice" --kcal 550 --protein 40
  $ kinetiqo quest list                   # Today's quests
  $ kinetiqo quest complete t1            # Mark one done
  $ kinetiqo stats                        # Level, XP, streak, weekly bars

PROGRESSION:

  Completed workouts and quests earn XP. Every 100 XP is a level, up to
  level 20. Abandoned workouts are logged but earn nothing.

MCP INTEGRATION:

  Run 'kinetiqo mcp' to start the Model Context Protocol server for use with
  MCP-compatible assistants:

  {
    "mcpServers": {
      "kinetiqo": { "command": "kinetiqo", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/kinetiqo/kinetiqo.db.
  Settings live in ~/.config/kinetiqo/config.json and may be overridden
  with KINETIQO_* environment variables or a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger = logging.New(cfg.GetLogLevel(), cfg.GetLogFormat(), os.Stderr)

		if dbPath != "" {
			opts := []storage.Option{storage.WithLogger(logger)}
			if cfg.BcryptCost > 0 {
				opts = append(opts, storage.WithBcryptCost(cfg.BcryptCost))
			}
			db, err = storage.Open(config.ExpandPath(dbPath), opts...)
		} else {
			db, err = cfg.OpenStorage(logger)
		}
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		cat, err := catalog.LoadFile(cfg.CatalogPath())
		if err != nil {
			return fmt.Errorf("failed to load quest catalog: %w", err)
		}

		stores = storage.NewStores(db)
		trk = tracker.New(stores, cat,
			tracker.WithRules(cfg.Rules()),
			tracker.WithLogger(logger))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			err := db.Close()
			db = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default: $XDG_DATA_HOME/kinetiqo/kinetiqo.db)")
	rootCmd.PersistentFlags().Int64VarP(&userFlag, "user", "u", 0, "act as this user ID instead of the logged-in user")
}
