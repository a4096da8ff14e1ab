package models

import "github.com/mmynk/dentaldesk/internal/timegrid"

// Provider is a clinician with their own lane on the schedule grid.
type Provider struct {
	// ID is the stable lane identifier (e.g., "p1").
	ID string

	// Name is the display name (e.g., "Dr. Sarah Wilson").
	Name string

	// Role is the clinical role (e.g., "Orthodontist", "Hygienist").
	Role string

	// Initials are shown in the lane header avatar.
	Initials string
}

// AppointmentStatus is display-only; nothing transitions it.
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusPending   AppointmentStatus = "pending"
	StatusArrived   AppointmentStatus = "arrived"
)

// AppointmentType selects the colour theme of an appointment block.
type AppointmentType string

const (
	TypeCheckup  AppointmentType = "checkup"
	TypeSurgery  AppointmentType = "surgery"
	TypeConsult  AppointmentType = "consult"
	TypeOrtho    AppointmentType = "ortho"
	TypeCosmetic AppointmentType = "cosmetic"
)

// Appointment is a booking on one provider's lane for the operating day.
// Appointments are seeded once and never mutated.
type Appointment struct {
	ID          int64
	ProviderID  string
	PatientName string

	// Treatment is the free-text reason shown on the block (e.g., "Root Canal").
	Treatment string

	// Start is the wall-clock start time. It need not fall inside operating hours.
	Start timegrid.Clock

	// DurationMinutes must be positive; the layout engine does not check it.
	DurationMinutes int

	Type   AppointmentType
	Status AppointmentStatus
}

// End returns the wall-clock end time of the appointment.
func (a Appointment) End() timegrid.Clock {
	return timegrid.EndTimeOf(a.Start, a.DurationMinutes)
}

// WaitlistEntry is a patient waiting for the next free slot.
type WaitlistEntry struct {
	ID         int64
	Name       string
	Treatment  string
	Urgency    string // "high", "medium", "low"
	Preference string // e.g., "ASAP", "PM Pref"
}
