package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/storage"
)

const userColumns = "id, email, display_name, password_hash, created_at, updated_at"

// CreateUser inserts a new staff account.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.StaffUser) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO staff_users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		user.ID,
		strings.ToLower(user.Email),
		user.DisplayName,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) getUser(ctx context.Context, where string, arg any) (*models.StaffUser, error) {
	user := &models.StaffUser{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM staff_users WHERE "+where+" = ?", arg,
	).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address. Matching is case-insensitive.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	user, err := s.getUser(ctx, "email", strings.ToLower(email))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, err
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.StaffUser, error) {
	user, err := s.getUser(ctx, "id", id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, err
}
