package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"smartbudget/internal/core"
)

var (
	// ErrNotFound is returned when a row does not exist or is owned by a
	// different user; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registration collides with an
	// existing account, including losing the insert race.
	ErrDuplicateEmail = errors.New("email already registered")
)

// CreateUser inserts a new account. email must already be normalized
// (trimmed, lowercased).
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (core.User, error) {
	var u core.User
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES (?, ?)
		RETURNING id, email, password_hash, created_at, updated_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.User{}, ErrDuplicateEmail
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks up an account by case-insensitive email match.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	var u core.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE lower(email) = lower(?)`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// EmailExists reports whether an account with this email already exists,
// compared case-insensitively.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE lower(email) = lower(?)`, email,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// isUniqueViolation detects the sqlite UNIQUE constraint error. The driver
// exposes no typed error for it, so the message is the contract.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
