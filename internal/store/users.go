package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/01moynul/ecofind-golang/internal/models"
)

// CreateUser inserts an account and returns its id.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		username, email, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return result.LastInsertId()
}

// GetUserByEmail looks an account up for login.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		"SELECT id, username, email, password_hash FROM users WHERE email = ?", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// GetUserByID loads the profile shown on the dashboard.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		"SELECT id, username, email, password_hash FROM users WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// UpdateProfile changes username and email. An email already used by a
// different account yields ErrDuplicateEmail.
func (s *Store) UpdateProfile(ctx context.Context, id int64, username, email string) error {
	var taken int
	err := s.db.GetContext(ctx, &taken, "SELECT 1 FROM users WHERE email = ? AND id != ?", email, id)
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check email: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE users SET username = ?, email = ? WHERE id = ?", username, email, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
