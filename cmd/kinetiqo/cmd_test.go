// ABOUTME: Tests for CLI commands and helpers.
// ABOUTME: Runs commands end to end against a temp database and config dir.
package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Reogieakero/fitness/internal/catalog"
	"github.com/Reogieakero/fitness/internal/config"
	"github.com/Reogieakero/fitness/internal/models"
	"github.com/Reogieakero/fitness/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string no truncation", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world this is a long string", 10, "hello w..."},
		{"empty string", "", 10, ""},
		{"very short maxLen", "hello", 3, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"needs padding", "hi", 5, "hi   "},
		{"exact length", "hello", 5, "hello"},
		{"longer than length", "hello world", 5, "hello world"},
		{"empty string", "", 5, "     "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.input, tt.length); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if got, err := parseDate(""); err != nil || got != "" {
		t.Errorf("parseDate(\"\") = %q, %v", got, err)
	}
	if got, err := parseDate("2025-03-04"); err != nil || got != "2025-03-04" {
		t.Errorf("parseDate valid = %q, %v", got, err)
	}
	if _, err := parseDate("03/04/2025"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestWorkoutDay(t *testing.T) {
	// Late evening in UTC-5 is already the next day in UTC.
	ts := time.Date(2025, 3, 5, 3, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		w    *models.WorkoutSession
		want string
	}{
		{"recorded day wins over timestamp", &models.WorkoutSession{Timestamp: ts, Day: "2025-03-04"}, "2025-03-04"},
		{"missing day falls back to timestamp", &models.WorkoutSession{Timestamp: ts}, "2025-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workoutDay(tt.w); got != tt.want {
				t.Errorf("workoutDay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "kinetiqo" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "kinetiqo")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	for _, name := range []string{"db", "user"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent *cobra.Command
		want   []string
	}{
		{rootCmd, []string{"register", "login", "logout", "profile", "workout", "meal", "quest", "plan", "stats", "export", "import", "migrate", "mcp"}},
		{workoutCmd, []string{"log", "list", "show", "delete", "streak", "week"}},
		{mealCmd, []string{"add", "list", "dates", "delete", "total"}},
		{questCmd, []string{"list", "complete", "history"}},
		{planCmd, []string{"add", "list", "delete"}},
		{profileCmd, []string{"update", "image"}},
	}

	for _, tt := range tests {
		t.Run(tt.parent.Name(), func(t *testing.T) {
			names := make(map[string]bool)
			for _, c := range tt.parent.Commands() {
				names[c.Name()] = true
			}
			for _, want := range tt.want {
				if !names[want] {
					t.Errorf("Expected subcommand %q", want)
				}
			}
		})
	}
}

func TestListLimitDefaults(t *testing.T) {
	for _, c := range []*cobra.Command{workoutListCmd, questHistoryCmd} {
		f := c.Flags().Lookup("limit")
		if f == nil {
			t.Fatalf("Expected --limit flag on %s", c.CommandPath())
		}
		if f.DefValue != "20" {
			t.Errorf("%s default limit = %s, want 20", c.CommandPath(), f.DefValue)
		}
	}
}

func TestAliases(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		alias string
	}{
		{workoutCmd, "w"},
		{mealCmd, "m"},
		{questCmd, "q"},
		{workoutDeleteCmd, "rm"},
		{questListCmd, "today"},
	}

	for _, tt := range tests {
		found := false
		for _, a := range tt.cmd.Aliases {
			if a == tt.alias {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected alias %q on %s", tt.alias, tt.cmd.Name())
		}
	}
}

// setupTestCLI points config and data at a temp directory and returns the
// database path the commands will use.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("KINETIQO_DATA_DIR", filepath.Join(tmpDir, "data"))
	t.Setenv("KINETIQO_BCRYPT_COST", "4")
	t.Setenv("KINETIQO_LOG_LEVEL", "error")
	for _, key := range []string{"KINETIQO_LOG_FORMAT", "KINETIQO_MAX_XP", "KINETIQO_MAX_LEVEL", "KINETIQO_USER_ID"} {
		t.Setenv(key, "")
	}

	t.Cleanup(func() {
		if db != nil {
			_ = db.Close()
			db = nil
		}
		resetFlags(rootCmd)
	})
	resetFlags(rootCmd)

	return filepath.Join(tmpDir, "data", "kinetiqo.db")
}

// resetFlags restores every flag to its default so one test's arguments do
// not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when RunE fails.
	if db != nil {
		_ = db.Close()
		db = nil
	}
	return err
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := run(t, args...); err != nil {
		t.Fatalf("kinetiqo %s failed: %v", strings.Join(args, " "), err)
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func openTestDB(t *testing.T, path string) (*storage.DB, *storage.Stores) {
	t.Helper()
	d, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, storage.NewStores(d)
}

func registerTestUser(t *testing.T) {
	t.Helper()
	mustRun(t, "register", "--username", "sam", "--email", "Sam@Example.com", "--password", "s3cret")
}

func TestRegisterSetsActiveUser(t *testing.T) {
	path := setupTestCLI(t)
	registerTestUser(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	if cfg.ActiveUserID == 0 {
		t.Fatal("Expected register to set the active user")
	}

	_, s := openTestDB(t, path)
	u, err := s.Accounts.Authenticate("sam@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if u.ID != cfg.ActiveUserID {
		t.Errorf("active user = %d, want %d", cfg.ActiveUserID, u.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestCLI(t)
	registerTestUser(t)

	err := run(t, "register", "--username", "other", "--email", "sam@example.com", "--password", "x")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected duplicate email error, got %v", err)
	}
}

func TestLoginAndLogout(t *testing.T) {
	setupTestCLI(t)
	registerTestUser(t)
	mustRun(t, "logout")

	if err := run(t, "stats"); err == nil {
		t.Error("expected stats to fail with no active user")
	}

	if err := run(t, "login", "sam@example.com", "-p", "wrong"); err == nil {
		t.Error("expected login with wrong password to fail")
	}
	mustRun(t, "login", "SAM@example.com", "-p", "s3cret")
	mustRun(t, "stats")
}

func TestWorkoutLogAwardsXP(t *testing.T) {
	path := setupTestCLI(t)
	registerTestUser(t)

	mustRun(t, "workout", "log", "--intensity", "High", "--xp", "50", "-e", "Burpees", "-e", "Squats")
	mustRun(t, "workout", "log", "--xp", "30", "-e", "Plank", "--incomplete")

	_, s := openTestDB(t, path)
	cfg, _ := config.Load()

	workouts, err := s.Workouts.ListAll(cfg.ActiveUserID)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(workouts))
	}

	var complete int
	for _, w := range workouts {
		if w.IsComplete() {
			complete++
			if len(w.Exercises) != 2 || w.Exercises[0] != "Burpees" {
				t.Errorf("exercises = %v", w.Exercises)
			}
		}
	}
	if complete != 1 {
		t.Errorf("expected 1 complete workout, got %d", complete)
	}

	p, err := s.Accounts.GetProfile(cfg.ActiveUserID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.XP != 50 || p.Level != 1 {
		t.Errorf("progression = (%d, %d), want (50, 1)", p.XP, p.Level)
	}
}

func TestWorkoutDeleteNotFound(t *testing.T) {
	setupTestCLI(t)
	registerTestUser(t)

	err := run(t, "workout", "delete", "999")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestMealAddAndDelete(t *testing.T) {
	path := setupTestCLI(t)
	registerTestUser(t)

	mustRun(t, "meal", "add", "Chicken Rice", "--kcal", "550.4", "--protein", "40", "--carbs", "lots")
	mustRun(t, "meal", "add", "Banana", "--kcal", "105", "--date", "2025-03-01")

	_, s := openTestDB(t, path)
	cfg, _ := config.Load()

	dates, err := s.Meals.ListDistinctDates(cfg.ActiveUserID)
	if err != nil {
		t.Fatalf("ListDistinctDates failed: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %v", dates)
	}

	meals, err := s.Meals.ListByDate(cfg.ActiveUserID, dates[0])
	if err != nil {
		t.Fatalf("ListByDate failed: %v", err)
	}
	if len(meals) != 1 || meals[0].Calories != 550 || meals[0].Protein != 40 || meals[0].Carbs != 0 {
		t.Fatalf("meals = %+v", meals)
	}

	mustRun(t, "meal", "delete", formatID(meals[0].ID))
	total, _ := s.Meals.DailyTotal(cfg.ActiveUserID, dates[0])
	if total != 0 {
		t.Errorf("total after delete = %d, want 0", total)
	}
}

func TestMealAddFromJSON(t *testing.T) {
	path := setupTestCLI(t)
	registerTestUser(t)

	file := filepath.Join(t.TempDir(), "analysis.json")
	body := `{"foodName":"Poke Bowl","calories":"612.5","protein":35,"carbs":null,"grade":"B"}`
	if err := os.WriteFile(file, []byte(body), 0600); err != nil {
		t.Fatalf("write analysis: %v", err)
	}

	mustRun(t, "meal", "add", "--from-json", file, "--fat", "18")

	d, s := openTestDB(t, path)
	cfg, _ := config.Load()
	meals, err := s.Meals.ListByDate(cfg.ActiveUserID, d.Today())
	if err != nil {
		t.Fatalf("ListByDate failed: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(meals))
	}
	m := meals[0]
	if m.FoodName != "Poke Bowl" || m.Calories != 613 || m.Protein != 35 || m.Carbs != 0 || m.Fat != 18 || m.Grade != "B" {
		t.Errorf("meal = %+v", m)
	}
}

func TestMealAddRequiresName(t *testing.T) {
	setupTestCLI(t)
	registerTestUser(t)

	if err := run(t, "meal", "add", "--kcal", "100"); err == nil {
		t.Error("expected error when food name is missing")
	}
}

func TestQuestCompleteOncePerDay(t *testing.T) {
	path := setupTestCLI(t)
	registerTestUser(t)

	_, s := openTestDB(t, path)
	cfg, _ := config.Load()

	quests := catalog.Default().ForDay(time.Now().Weekday())
	if len(quests) == 0 {
		t.Fatal("expected quests for today")
	}
	q := quests[0]

	mustRun(t, "quest", "complete", q.ID)
	mustRun(t, "quest", "complete", q.ID)

	count, _ := s.Quests.LifetimeCount(cfg.ActiveUserID)
	if count != 1 {
		t.Errorf("lifetime count = %d, want 1", count)
	}
	p, _ := s.Accounts.GetProfile(cfg.ActiveUserID)
	if p.XP != q.XP {
		t.Errorf("xp = %d, want %d", p.XP, q.XP)
	}
}

func TestPlanCommands(t *testing.T) {
	path := setupTestCLI(t)
	registerTestUser(t)

	mustRun(t, "plan", "add", "Oats", "--date", "2099-01-02", "--details", "with berries")
	mustRun(t, "plan", "list")

	_, s := openTestDB(t, path)
	cfg, _ := config.Load()
	plans, err := s.MealPlans.ListByDate(cfg.ActiveUserID, "2099-01-02")
	if err != nil {
		t.Fatalf("ListByDate failed: %v", err)
	}
	if len(plans) != 1 || plans[0].Details != "with berries" {
		t.Fatalf("plans = %+v", plans)
	}

	mustRun(t, "plan", "delete", formatID(plans[0].ID))
	if err := run(t, "plan", "delete", formatID(plans[0].ID)); err == nil {
		t.Error("expected error deleting a missing plan")
	}
}

func TestProfileUpdateOnlyChangedFields(t *testing.T) {
	path := setupTestCLI(t)
	mustRun(t, "register", "--username", "sam", "--email", "sam@example.com", "--password", "pw",
		"--age", "29", "--weight", "72", "--goal", "Lose weight")

	mustRun(t, "profile", "update", "--weight", "70")
	mustRun(t, "profile", "image", "file:///me.jpg")

	_, s := openTestDB(t, path)
	cfg, _ := config.Load()
	u, err := s.Accounts.GetFullProfile(cfg.ActiveUserID)
	if err != nil {
		t.Fatalf("GetFullProfile failed: %v", err)
	}
	if u.Weight != "70" || u.Age != "29" || u.FitnessGoal != "Lose weight" || u.Username != "sam" {
		t.Errorf("profile = %+v", u)
	}
	if u.ProfileImage == nil || *u.ProfileImage != "file:///me.jpg" {
		t.Errorf("profile image = %v", u.ProfileImage)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	path := setupTestCLI(t)
	registerTestUser(t)

	mustRun(t, "workout", "log", "--xp", "20", "-e", "Pushups")
	mustRun(t, "meal", "add", "Apple", "--kcal", "95")
	mustRun(t, "plan", "add", "Soup", "--date", "2099-05-05")

	out := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "export", "json", "-o", out)
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	for _, format := range []string{"yaml", "markdown"} {
		mustRun(t, "export", format, "-o", filepath.Join(t.TempDir(), "out."+format))
	}
	if err := run(t, "export", "csv"); err == nil {
		t.Error("expected error for unknown format")
	}

	mustRun(t, "register", "--username", "copy", "--email", "copy@example.com", "--password", "pw")
	mustRun(t, "import", out)

	_, s := openTestDB(t, path)
	cfg, _ := config.Load()
	workouts, _ := s.Workouts.ListAll(cfg.ActiveUserID)
	meals, _ := s.Meals.ListToday(cfg.ActiveUserID)
	plans, _ := s.MealPlans.ListByDate(cfg.ActiveUserID, "2099-05-05")
	if len(workouts) != 1 || len(meals) != 1 || len(plans) != 1 {
		t.Errorf("imported = %d workouts, %d meals, %d plans", len(workouts), len(meals), len(plans))
	}

	p, _ := s.Accounts.GetProfile(cfg.ActiveUserID)
	if p.XP != 0 {
		t.Errorf("import should not award XP, got %d", p.XP)
	}
}

func TestMigrateFromOtherDatabase(t *testing.T) {
	path := setupTestCLI(t)

	srcPath := filepath.Join(t.TempDir(), "old.db")
	src, err := storage.Open(srcPath)
	if err != nil {
		t.Fatalf("Failed to open source database: %v", err)
	}
	srcStores := storage.NewStores(src)
	srcUser, err := srcStores.Accounts.Register(models.Registration{
		Username: "old", Email: "old@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := srcStores.Meals.Append(srcUser, models.MealInput{FoodName: "Toast", Calories: "210"}, "2025-01-10"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	_ = src.Close()

	registerTestUser(t)
	mustRun(t, "migrate", "--from", srcPath, "--from-user", formatID(srcUser))

	_, s := openTestDB(t, path)
	cfg, _ := config.Load()
	total, _ := s.Meals.DailyTotal(cfg.ActiveUserID, "2025-01-10")
	if total != 210 {
		t.Errorf("migrated total = %d, want 210", total)
	}

	if err := run(t, "migrate", "--from", srcPath, "--from-user", "999"); err == nil {
		t.Error("expected error for unknown source user")
	}
}

func TestUserFlagOverridesActiveUser(t *testing.T) {
	path := setupTestCLI(t)
	registerTestUser(t)
	first, _ := config.Load()
	mustRun(t, "register", "--username", "kim", "--email", "kim@example.com", "--password", "pw")

	mustRun(t, "--user", formatID(first.ActiveUserID), "meal", "add", "Rice", "--kcal", "200")

	d, s := openTestDB(t, path)
	total, _ := s.Meals.DailyTotal(first.ActiveUserID, d.Today())
	if total != 200 {
		t.Errorf("first user total = %d, want 200", total)
	}
}
