// Package auth implements credential handling: password hashing and policy
// checks, and signed bearer tokens.
package auth

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost the stored hashes were created with.
const BcryptCost = 10

// dummyHash is a valid bcrypt hash (of an unrelated string) verified against
// when login hits a nonexistent account, so both branches pay the same
// bcrypt cost and lookup timing does not reveal whether the email exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSymbols = "@$!%*?&"

// NormalizeEmail trims whitespace and lowercases, the canonical stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email looks like local@domain.tld. The pattern
// is deliberately permissive; real verification would need a mail loop.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword checks the password policy and returns every failing rule.
func ValidatePassword(password string) []string {
	var failures []string
	if len(password) < 8 {
		failures = append(failures, "Password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		failures = append(failures, "Password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		failures = append(failures, "Password must contain at least one number")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		failures = append(failures, "Password must contain at least one special character (@$!%*?&)")
	}
	return failures
}

// HashPassword hashes with bcrypt at the service's fixed cost.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(b), err
}

// CheckPassword verifies a candidate password against a stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckDummy burns a full bcrypt verification against a throwaway hash.
// Called on the user-not-found login path to equalize response timing.
func CheckDummy(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
