// ABOUTME: Shared helpers for CLI output and argument parsing.
// ABOUTME: Resolves the acting user and formats awards and tables.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Reogieakero/fitness/internal/models"
	"github.com/Reogieakero/fitness/internal/tracker"
	"github.com/fatih/color"
)

var errNoUser = errors.New("no active user: run 'kinetiqo login' or pass --user")

// activeUser returns the --user flag when set, otherwise the logged-in user.
func activeUser() (int64, error) {
	if userFlag > 0 {
		return userFlag, nil
	}
	if cfg != nil && cfg.ActiveUserID > 0 {
		return cfg.ActiveUserID, nil
	}
	return 0, errNoUser
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func parseDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if _, err := models.ParseDay(s); err != nil {
		return "", fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return s, nil
}

func printAward(a *tracker.Award) {
	if a.XPAwarded > 0 {
		fmt.Printf("  +%d XP\n", a.XPAwarded)
	}
	fmt.Printf("  Level %d (%d XP)\n", a.Level, a.XP)
	if a.LeveledUp {
		color.Cyan("★ Level up! You reached level %d", a.Level)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func bar(n int) string {
	return strings.Repeat("█", n)
}

// workoutDay is the day a workout was logged under, as recorded by the store clock.
func workoutDay(w *models.WorkoutSession) string {
	if w.Day != "" {
		return w.Day
	}
	return models.DayKey(w.Timestamp)
}
