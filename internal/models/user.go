package models

import (
	"time"

	"github.com/google/uuid"
)

// StaffUser is a clinic staff account that can sign in to the dashboard.
type StaffUser struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the login name (unique).
	Email string

	// DisplayName is shown in the dashboard header.
	DisplayName string

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewStaffUser creates a user with a fresh ID and timestamps.
func NewStaffUser(email, displayName, passwordHash string) *StaffUser {
	now := time.Now().Unix()
	return &StaffUser{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
