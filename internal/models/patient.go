package models

import "time"

// PatientStatus is the lifecycle label shown in the patient directory.
type PatientStatus string

const (
	PatientActive      PatientStatus = "Active"
	PatientInTreatment PatientStatus = "In Treatment"
	PatientRecovery    PatientStatus = "Recovery"
	PatientArchived    PatientStatus = "Archived"
)

// Patient is one row of the patient directory.
type Patient struct {
	// ID is the chart number (e.g., "PT-1001").
	ID     string
	Name   string
	Phone  string
	Email  string
	Age    int
	Gender string

	LastVisit time.Time

	// NextAppointment is the zero time when nothing is booked.
	NextAppointment time.Time
	NextConfirmed   bool

	Status  PatientStatus
	Balance Money
}

// HasNextAppointment reports whether a follow-up is booked.
func (p Patient) HasNextAppointment() bool {
	return !p.NextAppointment.IsZero()
}
