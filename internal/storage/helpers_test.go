// ABOUTME: Shared test helpers for the storage package.
// ABOUTME: Provides a controllable clock and a temp-dir backed database.
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Reogieakero/fitness/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// testClock is a settable clock for day-boundary tests.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advanceDays(n int) { c.t = c.t.AddDate(0, 0, n) }

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T, clock *testClock) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "kinetiqo.db")
	db, err := Open(dbPath, WithClock(clock.now), WithBcryptCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// registerUser creates an account and returns its ID.
func registerUser(t *testing.T, db *DB, email string) int64 {
	t.Helper()

	id, err := NewAccountStore(db).Register(models.Registration{
		Username:     "tester",
		Email:        email,
		Password:     "secret",
		Age:          "30",
		Weight:       "70",
		Height:       "175",
		FitnessLevel: "Beginner",
		FitnessGoal:  "Strength",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return id
}

func recordWorkout(t *testing.T, db *DB, userID int64, in *models.WorkoutInput) int64 {
	t.Helper()

	id, err := NewWorkoutStore(db).Record(userID, *in)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	return id
}
