// ABOUTME: Account store: registration, authentication, profile and progression.
// ABOUTME: Passwords are bcrypt-hashed; legacy plaintext rows upgrade on login.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Reogieakero/fitness/internal/auth"
	"github.com/Reogieakero/fitness/internal/models"
)

const userColumns = `id, username, email, password, COALESCE(age, ''), COALESCE(weight, ''),
	COALESCE(height, ''), COALESCE(fitnessLevel, ''), COALESCE(fitnessGoal, ''),
	COALESCE(xp, 0), COALESCE(level, 1), profileImage`

// AccountStore manages user identity, profile and progression fields.
type AccountStore struct {
	d *DB
}

// NewAccountStore returns an AccountStore backed by d.
func NewAccountStore(d *DB) *AccountStore {
	return &AccountStore{d: d}
}

// Register creates a user with xp 0 and level 1 and returns its ID.
// A taken email yields ErrConstraintViolation.
func (s *AccountStore) Register(reg models.Registration) (int64, error) {
	email := normalizeEmail(reg.Email)
	if email == "" || reg.Password == "" {
		return 0, fmt.Errorf("register user: email and password are required")
	}

	hash, err := auth.HashPassword(reg.Password, s.d.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	tx, err := s.d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("register user: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Legacy rows may keep mixed-case emails that the UNIQUE column does not
	// catch.
	var taken int
	err = tx.QueryRow(`SELECT 1 FROM users WHERE lower(email) = ? LIMIT 1`, email).Scan(&taken)
	if err == nil {
		return 0, fmt.Errorf("register user %s: %w", email, ErrConstraintViolation)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("register user: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO users (username, email, password, age, weight, height, fitnessLevel, fitnessGoal, xp, level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 1)`,
		reg.Username, email, hash, reg.Age, reg.Weight, reg.Height, reg.FitnessLevel, reg.FitnessGoal,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("register user %s: %w", email, ErrConstraintViolation)
		}
		return 0, fmt.Errorf("register user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("register user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("register user: %w", err)
	}
	return id, nil
}

// Authenticate returns the user matching email and password. Unknown emails
// and wrong passwords both yield ErrNotFound.
func (s *AccountStore) Authenticate(email, password string) (*models.User, error) {
	u, err := s.scanUser(s.d.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE lower(email) = ?`, normalizeEmail(email)))
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	ok, needsRehash := auth.VerifyPassword(u.Password, password)
	if !ok {
		return nil, fmt.Errorf("authenticate: %w", ErrNotFound)
	}

	if needsRehash {
		if err := s.setPassword(u.ID, password); err != nil {
			s.d.logger.Warn("could not upgrade legacy password", "user_id", u.ID, "error", err)
		} else {
			s.d.logger.Info("upgraded legacy plaintext password", "user_id", u.ID)
		}
	}

	return u, nil
}

// GetProfile returns the dashboard projection of a user.
func (s *AccountStore) GetProfile(userID int64) (*models.ProfileSnapshot, error) {
	var p models.ProfileSnapshot
	err := s.d.db.QueryRow(`
		SELECT COALESCE(age, ''), COALESCE(weight, ''), COALESCE(height, ''), COALESCE(level, 1),
			COALESCE(fitnessLevel, ''), COALESCE(fitnessGoal, ''), COALESCE(xp, 0)
		FROM users WHERE id = ?`, userID,
	).Scan(&p.Age, &p.Weight, &p.Height, &p.Level, &p.FitnessLevel, &p.FitnessGoal, &p.XP)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get profile %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// GetFullProfile returns every column of a user.
func (s *AccountStore) GetFullProfile(userID int64) (*models.User, error) {
	u, err := s.scanUser(s.d.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, userID))
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return u, nil
}

// UpdateProfile overwrites the editable profile fields. Email, password,
// xp and level are untouched.
func (s *AccountStore) UpdateProfile(userID int64, p models.ProfileUpdate) error {
	result, err := s.d.db.Exec(`
		UPDATE users SET username = ?, age = ?, weight = ?, height = ?, fitnessGoal = ?
		WHERE id = ?`,
		p.Username, p.Age, p.Weight, p.Height, p.FitnessGoal, userID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return checkAffected(result, "update profile", userID)
}

// UpdateProfileImage sets the avatar reference. An empty uri clears it.
func (s *AccountStore) UpdateProfileImage(userID int64, uri string) error {
	var value any
	if uri != "" {
		value = uri
	}
	result, err := s.d.db.Exec(`UPDATE users SET profileImage = ? WHERE id = ?`, value, userID)
	if err != nil {
		return fmt.Errorf("update profile image: %w", err)
	}
	return checkAffected(result, "update profile image", userID)
}

// UpdateProgression writes xp and level together. The caller computes any
// rollover beforehand; no validation happens here.
func (s *AccountStore) UpdateProgression(userID int64, xp, level int) error {
	result, err := s.d.db.Exec(`UPDATE users SET xp = ?, level = ? WHERE id = ?`, xp, level, userID)
	if err != nil {
		return fmt.Errorf("update progression: %w", err)
	}
	return checkAffected(result, "update progression", userID)
}

// UpdateProgressionFunc reads xp and level, passes them to fn, and writes
// the result back in one transaction so concurrent awards are not lost.
func (s *AccountStore) UpdateProgressionFunc(userID int64, fn func(xp, level int) (int, int)) (int, int, error) {
	tx, err := s.d.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("begin progression tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var xp, level int
	err = tx.QueryRow(`SELECT COALESCE(xp, 0), COALESCE(level, 1) FROM users WHERE id = ?`, userID).Scan(&xp, &level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, fmt.Errorf("update progression %d: %w", userID, ErrNotFound)
		}
		return 0, 0, fmt.Errorf("read progression: %w", err)
	}

	newXP, newLevel := fn(xp, level)
	if _, err := tx.Exec(`UPDATE users SET xp = ?, level = ? WHERE id = ?`, newXP, newLevel, userID); err != nil {
		return 0, 0, fmt.Errorf("write progression: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit progression: %w", err)
	}
	return newXP, newLevel, nil
}

func (s *AccountStore) setPassword(userID int64, plain string) error {
	hash, err := auth.HashPassword(plain, s.d.bcryptCost)
	if err != nil {
		return err
	}
	_, err = s.d.db.Exec(`UPDATE users SET password = ? WHERE id = ?`, hash, userID)
	return err
}

func (s *AccountStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var image sql.NullString

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Age, &u.Weight,
		&u.Height, &u.FitnessLevel, &u.FitnessGoal, &u.XP, &u.Level, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if image.Valid && image.String != "" {
		u.ProfileImage = &image.String
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
