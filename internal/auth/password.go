// ABOUTME: Password hashing and verification with bcrypt.
// ABOUTME: Recognizes legacy plaintext rows so they can be upgraded on login.
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is used when no cost is configured.
const DefaultCost = bcrypt.DefaultCost

// HashPassword returns a bcrypt hash of plain using the given cost.
// A cost outside bcrypt's accepted range falls back to DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// IsHashed reports whether stored looks like a bcrypt hash.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// VerifyPassword compares plain against a stored credential.
// needsRehash is true when the stored value is legacy plaintext that matched.
func VerifyPassword(stored, plain string) (ok, needsRehash bool) {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil, false
	}
	if stored == "" {
		return false, false
	}
	match := subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
	return match, match
}
