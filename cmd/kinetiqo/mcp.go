// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server bound to the active user.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Reogieakero/fitness/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for assistant integration.

The server communicates via stdin/stdout. Tools act on the active user
unless a user_id argument is given.

CONFIGURATION:

  {
    "mcpServers": {
      "kinetiqo": {
        "command": "kinetiqo",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_workout      Record a workout session and award its XP
  list_workouts    List sessions, optionally today only
  delete_workout   Delete a session
  log_meal         Log a meal
  list_meals       List one day's meals with totals
  delete_meal      Delete a meal
  complete_quest   Complete a daily quest
  list_quests      Today's quests with completion state
  plan_meal        Plan a meal for a day
  get_stats        Stats dashboard

AVAILABLE RESOURCES:

  kinetiqo://today     Today's workouts, meals, and quests
  kinetiqo://stats     Stats dashboard
  kinetiqo://profile   Profile and upcoming meal plans`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var uid int64
		if id, err := activeUser(); err == nil {
			uid = id
		}

		server, err := mcp.NewServer(db, trk, uid)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.Info("mcp server starting", "user_id", uid, "db", db.Path())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
