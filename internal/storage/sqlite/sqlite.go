// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/dentaldesk/internal/catalog"
	"github.com/mmynk/dentaldesk/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection, not just the first one.
	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Seed loads the reference data in a single transaction. Existing rows win, so seeding
// an already populated database is a no-op.
func (s *SQLiteStore) Seed(ctx context.Context, seed catalog.Seed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, p := range seed.Providers {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO providers (id, name, role, initials, position) VALUES (?, ?, ?, ?, ?)",
			p.ID, p.Name, p.Role, p.Initials, i,
		); err != nil {
			return fmt.Errorf("failed to insert provider: %w", err)
		}
	}

	for _, a := range seed.Appointments {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO appointments
			 (id, provider_id, patient_name, treatment, start_minute, duration_minutes, type, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.ProviderID, a.PatientName, a.Treatment, a.Start.Minutes(), a.DurationMinutes,
			string(a.Type), string(a.Status),
		); err != nil {
			return fmt.Errorf("failed to insert appointment: %w", err)
		}
	}

	for _, w := range seed.Waitlist {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO waitlist (id, name, treatment, urgency, preference) VALUES (?, ?, ?, ?, ?)",
			w.ID, w.Name, w.Treatment, w.Urgency, w.Preference,
		); err != nil {
			return fmt.Errorf("failed to insert waitlist entry: %w", err)
		}
	}

	for _, p := range seed.Procedures {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO procedures (id, name, code, unit_price_cents, category) VALUES (?, ?, ?, ?, ?)",
			p.ID, p.Name, p.Code, p.UnitPrice.Cents(), p.Category,
		); err != nil {
			return fmt.Errorf("failed to insert procedure: %w", err)
		}
	}

	for _, p := range seed.InsuredPatients {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO insured_patients (id, name, insurer) VALUES (?, ?, ?)",
			p.ID, p.Name, p.Insurer,
		); err != nil {
			return fmt.Errorf("failed to insert insured patient: %w", err)
		}
	}

	for _, p := range seed.Patients {
		var next any
		if p.HasNextAppointment() {
			next = formatDay(p.NextAppointment)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO patients
			 (id, name, phone, email, age, gender, last_visit, next_appointment, next_confirmed, status, balance_cents)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Phone, p.Email, p.Age, p.Gender, formatDay(p.LastVisit), next,
			p.NextConfirmed, string(p.Status), p.Balance.Cents(),
		); err != nil {
			return fmt.Errorf("failed to insert patient: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
