// ABOUTME: Tests for the account store.
// ABOUTME: Covers registration, authentication, profile edits, and progression writes.
package storage

import (
	"errors"
	"sync"
	"testing"

	"github.com/Reogieakero/fitness/internal/auth"
	"github.com/Reogieakero/fitness/internal/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupTestDB(t, newTestClock())
	accounts := NewAccountStore(db)

	id := registerUser(t, db, "a@x.com")
	if id <= 0 {
		t.Fatalf("expected positive ID, got %d", id)
	}

	u, err := accounts.Authenticate("a@x.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if u.ID != id {
		t.Errorf("ID mismatch: got %d, want %d", u.ID, id)
	}
	if u.XP != 0 || u.Level != 1 {
		t.Errorf("new user progression = (%d, %d), want (0, 1)", u.XP, u.Level)
	}
	if !auth.IsHashed(u.Password) {
		t.Errorf("password stored in plaintext: %q", u.Password)
	}
}

func TestAuthenticateEmailCaseInsensitive(t *testing.T) {
	db := setupTestDB(t, newTestClock())
	registerUser(t, db, "Mixed@Example.com")

	if _, err := NewAccountStore(db).Authenticate("mixed@EXAMPLE.com", "secret"); err != nil {
		t.Fatalf("Authenticate with different case failed: %v", err)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	db := setupTestDB(t, newTestClock())
	registerUser(t, db, "a@x.com")
	accounts := NewAccountStore(db)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "a@x.com", "nope"},
		{"unknown email", "b@x.com", "secret"},
		{"empty password", "a@x.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := accounts.Authenticate(tt.email, tt.password)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
			if u != nil {
				t.Errorf("expected no user, got %+v", u)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t, newTestClock())
	registerUser(t, db, "a@x.com")

	_, err := NewAccountStore(db).Register(models.Registration{
		Username: "other",
		Email:    "A@x.com",
		Password: "different",
	})
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}

	var n int
	if err := db.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestRegisterRequiresCredentials(t *testing.T) {
	db := setupTestDB(t, newTestClock())

	if _, err := NewAccountStore(db).Register(models.Registration{Email: "  "}); err == nil {
		t.Error("expected error for empty credentials")
	}
}

func TestLegacyPlaintextPasswordUpgrade(t *testing.T) {
	db := setupTestDB(t, newTestClock())

	_, err := db.db.Exec(`INSERT INTO users (username, email, password, xp, level) VALUES ('old', 'old@x.com', 'hunter2', 40, 2)`)
	if err != nil {
		t.Fatalf("insert legacy user: %v", err)
	}

	accounts := NewAccountStore(db)
	u, err := accounts.Authenticate("old@x.com", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate legacy user failed: %v", err)
	}
	if u.XP != 40 || u.Level != 2 {
		t.Errorf("progression = (%d, %d), want (40, 2)", u.XP, u.Level)
	}

	var stored string
	if err := db.db.QueryRow(`SELECT password FROM users WHERE id = ?`, u.ID).Scan(&stored); err != nil {
		t.Fatalf("read password: %v", err)
	}
	if !auth.IsHashed(stored) {
		t.Errorf("legacy password was not rehashed: %q", stored)
	}

	if _, err := accounts.Authenticate("old@x.com", "hunter2"); err != nil {
		t.Errorf("Authenticate after rehash failed: %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t, newTestClock())
	id := registerUser(t, db, "a@x.com")

	p, err := NewAccountStore(db).GetProfile(id)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	want := models.ProfileSnapshot{
		Age: "30", Weight: "70", Height: "175", Level: 1,
		FitnessLevel: "Beginner", FitnessGoal: "Strength", XP: 0,
	}
	if *p != want {
		t.Errorf("profile = %+v, want %+v", *p, want)
	}

	if _, err := NewAccountStore(db).GetProfile(id + 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t, newTestClock())
	accounts := NewAccountStore(db)
	id := registerUser(t, db, "a@x.com")

	err := accounts.UpdateProfile(id, models.ProfileUpdate{
		Username: "renamed", Age: "31", Weight: "68", Height: "176", FitnessGoal: "Endurance",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	u, err := accounts.GetFullProfile(id)
	if err != nil {
		t.Fatalf("GetFullProfile failed: %v", err)
	}
	if u.Username != "renamed" || u.Age != "31" || u.FitnessGoal != "Endurance" {
		t.Errorf("profile not updated: %+v", u)
	}
	if u.Email != "a@x.com" || u.FitnessLevel != "Beginner" {
		t.Errorf("non-editable fields changed: %+v", u)
	}

	if err := accounts.UpdateProfile(id+100, u.Profile()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestUpdateProfileImage(t *testing.T) {
	db := setupTestDB(t, newTestClock())
	accounts := NewAccountStore(db)
	id := registerUser(t, db, "a@x.com")

	if err := accounts.UpdateProfileImage(id, "file:///avatar.png"); err != nil {
		t.Fatalf("UpdateProfileImage failed: %v", err)
	}
	u, _ := accounts.GetFullProfile(id)
	if u.ProfileImage == nil || *u.ProfileImage != "file:///avatar.png" {
		t.Errorf("ProfileImage = %v, want file:///avatar.png", u.ProfileImage)
	}

	if err := accounts.UpdateProfileImage(id, ""); err != nil {
		t.Fatalf("clear image failed: %v", err)
	}
	u, _ = accounts.GetFullProfile(id)
	if u.ProfileImage != nil {
		t.Errorf("expected cleared image, got %q", *u.ProfileImage)
	}
}

func TestUpdateProgression(t *testing.T) {
	db := setupTestDB(t, newTestClock())
	accounts := NewAccountStore(db)
	id := registerUser(t, db, "a@x.com")

	if err := accounts.UpdateProgression(id, 10, 4); err != nil {
		t.Fatalf("UpdateProgression failed: %v", err)
	}
	p, _ := accounts.GetProfile(id)
	if p.XP != 10 || p.Level != 4 {
		t.Errorf("progression = (%d, %d), want (10, 4)", p.XP, p.Level)
	}

	if err := accounts.UpdateProgression(id+100, 1, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProgressionFuncConcurrent(t *testing.T) {
	db := setupTestDB(t, newTestClock())
	accounts := NewAccountStore(db)
	id := registerUser(t, db, "a@x.com")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := accounts.UpdateProgressionFunc(id, func(xp, level int) (int, int) {
				return xp + 5, level
			})
			if err != nil {
				t.Errorf("UpdateProgressionFunc failed: %v", err)
			}
		}()
	}
	wg.Wait()

	p, _ := accounts.GetProfile(id)
	if p.XP != 50 {
		t.Errorf("XP = %d, want 50 (lost update)", p.XP)
	}

	_, _, err := accounts.UpdateProgressionFunc(id+100, func(xp, level int) (int, int) { return xp, level })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
