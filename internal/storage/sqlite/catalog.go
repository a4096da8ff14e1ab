package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/storage"
	"github.com/mmynk/dentaldesk/internal/timegrid"
)

func formatDay(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ListProviders returns providers in lane order.
func (s *SQLiteStore) ListProviders(ctx context.Context) ([]models.Provider, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, role, initials FROM providers ORDER BY position, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer rows.Close()

	var out []models.Provider
	for rows.Next() {
		var p models.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Initials); err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate providers: %w", err)
	}
	return out, nil
}

// ListAppointments returns the day's appointments ordered by ID.
func (s *SQLiteStore) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, provider_id, patient_name, treatment, start_minute, duration_minutes, type, status
		 FROM appointments ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var out []models.Appointment
	for rows.Next() {
		var (
			a           models.Appointment
			startMinute int
			typ, status string
		)
		if err := rows.Scan(&a.ID, &a.ProviderID, &a.PatientName, &a.Treatment,
			&startMinute, &a.DurationMinutes, &typ, &status); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		a.Start = timegrid.Clock{Hour: startMinute / 60, Minute: startMinute % 60}
		a.Type = models.AppointmentType(typ)
		a.Status = models.AppointmentStatus(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return out, nil
}

// ListWaitlist returns waitlist entries ordered by ID.
func (s *SQLiteStore) ListWaitlist(ctx context.Context) ([]models.WaitlistEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, treatment, urgency, preference FROM waitlist ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	defer rows.Close()

	var out []models.WaitlistEntry
	for rows.Next() {
		var w models.WaitlistEntry
		if err := rows.Scan(&w.ID, &w.Name, &w.Treatment, &w.Urgency, &w.Preference); err != nil {
			return nil, fmt.Errorf("failed to scan waitlist entry: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate waitlist: %w", err)
	}
	return out, nil
}

const procedureColumns = "id, name, code, unit_price_cents, category"

func scanProcedure(row interface{ Scan(...any) error }) (models.Procedure, error) {
	var (
		p     models.Procedure
		cents int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &cents, &p.Category); err != nil {
		return models.Procedure{}, err
	}
	p.UnitPrice = models.Money(cents)
	return p, nil
}

// ListProcedures returns the procedure catalog ordered by ID.
func (s *SQLiteStore) ListProcedures(ctx context.Context) ([]models.Procedure, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+procedureColumns+" FROM procedures ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	defer rows.Close()

	var out []models.Procedure
	for rows.Next() {
		p, err := scanProcedure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan procedure: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate procedures: %w", err)
	}
	return out, nil
}

// GetProcedure retrieves a procedure by ID.
func (s *SQLiteStore) GetProcedure(ctx context.Context, id int64) (*models.Procedure, error) {
	p, err := scanProcedure(s.db.QueryRowContext(ctx,
		"SELECT "+procedureColumns+" FROM procedures WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("procedure %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}
	return &p, nil
}

// ListInsuredPatients returns the patients an invoice can be billed to.
func (s *SQLiteStore) ListInsuredPatients(ctx context.Context) ([]models.InsuredPatient, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, insurer FROM insured_patients ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list insured patients: %w", err)
	}
	defer rows.Close()

	var out []models.InsuredPatient
	for rows.Next() {
		var p models.InsuredPatient
		if err := rows.Scan(&p.ID, &p.Name, &p.Insurer); err != nil {
			return nil, fmt.Errorf("failed to scan insured patient: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate insured patients: %w", err)
	}
	return out, nil
}

// GetInsuredPatient retrieves an insured patient by ID.
func (s *SQLiteStore) GetInsuredPatient(ctx context.Context, id int64) (*models.InsuredPatient, error) {
	p := &models.InsuredPatient{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, insurer FROM insured_patients WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.Insurer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("insured patient %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insured patient: %w", err)
	}
	return p, nil
}

// ListPatients returns the patient directory ordered by chart ID.
func (s *SQLiteStore) ListPatients(ctx context.Context) ([]models.Patient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, email, age, gender, last_visit, next_appointment, next_confirmed, status, balance_cents
		 FROM patients ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var out []models.Patient
	for rows.Next() {
		var (
			p         models.Patient
			lastVisit string
			next      sql.NullString
			status    string
			balance   int64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.Age, &p.Gender,
			&lastVisit, &next, &p.NextConfirmed, &status, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		if p.LastVisit, err = time.Parse(time.DateOnly, lastVisit); err != nil {
			return nil, fmt.Errorf("failed to parse last visit of %s: %w", p.ID, err)
		}
		if next.Valid {
			if p.NextAppointment, err = time.Parse(time.DateOnly, next.String); err != nil {
				return nil, fmt.Errorf("failed to parse next appointment of %s: %w", p.ID, err)
			}
		}
		p.Status = models.PatientStatus(status)
		p.Balance = models.Money(balance)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patients: %w", err)
	}
	return out, nil
}
