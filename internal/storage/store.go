// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/dentaldesk/internal/catalog"
	"github.com/mmynk/dentaldesk/internal/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist.
var ErrNotFound = errors.New("not found")

// CatalogStore serves the read-only reference data of the dashboard.
type CatalogStore interface {
	// ListProviders returns providers in lane order.
	ListProviders(ctx context.Context) ([]models.Provider, error)

	// ListAppointments returns the day's appointments ordered by ID.
	ListAppointments(ctx context.Context) ([]models.Appointment, error)

	ListWaitlist(ctx context.Context) ([]models.WaitlistEntry, error)

	// ListProcedures returns the procedure catalog ordered by ID.
	ListProcedures(ctx context.Context) ([]models.Procedure, error)

	// GetProcedure returns ErrNotFound for unknown IDs.
	GetProcedure(ctx context.Context, id int64) (*models.Procedure, error)

	ListInsuredPatients(ctx context.Context) ([]models.InsuredPatient, error)

	// GetInsuredPatient returns ErrNotFound for unknown IDs.
	GetInsuredPatient(ctx context.Context, id int64) (*models.InsuredPatient, error)

	ListPatients(ctx context.Context) ([]models.Patient, error)
}

// CartStore persists invoice cart sessions.
// This abstraction allows keeping carts in SQLite or in Redis without changing the
// service layer.
type CartStore interface {
	// CreateCart persists a new session. ID and timestamps are filled in when empty.
	CreateCart(ctx context.Context, cart *models.CartSession) error

	// GetCart returns ErrNotFound for unknown or expired sessions.
	GetCart(ctx context.Context, cartID string) (*models.CartSession, error)

	// SaveCart replaces the stored line items and patient of an existing session.
	SaveCart(ctx context.Context, cart *models.CartSession) error

	// DeleteCart returns ErrNotFound when the session does not exist.
	DeleteCart(ctx context.Context, cartID string) error
}

// UserStore persists staff accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.StaffUser) error

	// GetUserByEmail and GetUserByID return ErrNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.StaffUser, error)
	GetUserByID(ctx context.Context, id string) (*models.StaffUser, error)
}

// Store is the full persistence surface of the backend.
type Store interface {
	CatalogStore
	CartStore
	UserStore

	// Seed loads reference data. Rows that already exist are left untouched.
	Seed(ctx context.Context, seed catalog.Seed) error

	// Close releases any resources held by the store.
	Close() error
}
