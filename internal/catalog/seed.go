// Package catalog holds the clinic's seed data and the procedure catalog search.
package catalog

import (
	"time"

	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/timegrid"
)

// Seed is the reference data a session starts from.
type Seed struct {
	Providers       []models.Provider
	Appointments    []models.Appointment
	Waitlist        []models.WaitlistEntry
	Procedures      []models.Procedure
	InsuredPatients []models.InsuredPatient
	Patients        []models.Patient
}

// Default returns a fresh copy of the clinic's demo data.
func Default() Seed {
	return Seed{
		Providers:       providers(),
		Appointments:    appointments(),
		Waitlist:        waitlist(),
		Procedures:      procedures(),
		InsuredPatients: insuredPatients(),
		Patients:        patients(),
	}
}

func providers() []models.Provider {
	return []models.Provider{
		{ID: "p1", Name: "Dr. Sarah Wilson", Role: "Orthodontist", Initials: "SW"},
		{ID: "p2", Name: "Dr. Mike Chen", Role: "General Dentist", Initials: "MC"},
		{ID: "p3", Name: "Jessica Lee", Role: "Hygienist", Initials: "JL"},
	}
}

func appointments() []models.Appointment {
	a := func(id int64, provider, patient, tx, start string, dur int, typ models.AppointmentType, status models.AppointmentStatus) models.Appointment {
		return models.Appointment{
			ID:              id,
			ProviderID:      provider,
			PatientName:     patient,
			Treatment:       tx,
			Start:           timegrid.MustParseClock(start),
			DurationMinutes: dur,
			Type:            typ,
			Status:          status,
		}
	}
	return []models.Appointment{
		a(1, "p1", "Emma Thompson", "Braces Adjustment", "09:00", 60, models.TypeOrtho, models.StatusConfirmed),
		a(2, "p1", "Liam Johnson", "Invisalign Scan", "11:30", 30, models.TypeCheckup, models.StatusPending),
		a(3, "p1", "Mia Rodriguez", "Wire Change", "14:00", 45, models.TypeOrtho, models.StatusConfirmed),
		a(4, "p2", "Sophia Garcia", "Root Canal", "10:00", 90, models.TypeSurgery, models.StatusConfirmed),
		a(5, "p2", "James Wilson", "Emergency Checkup", "13:00", 45, models.TypeConsult, models.StatusArrived),
		a(6, "p2", "Lucas Lee", "Crown Prep", "15:30", 60, models.TypeSurgery, models.StatusPending),
		a(7, "p3", "Oliver Brown", "Deep Cleaning", "08:30", 60, models.TypeCheckup, models.StatusConfirmed),
		a(8, "p3", "Ava Martinez", "Whitening Session", "14:00", 60, models.TypeCosmetic, models.StatusConfirmed),
		a(9, "p3", "Charlotte Ng", "Fluoride Treatment", "10:30", 30, models.TypeCheckup, models.StatusConfirmed),
	}
}

func waitlist() []models.WaitlistEntry {
	return []models.WaitlistEntry{
		{ID: 101, Name: "Noah Miller", Treatment: "Extraction", Urgency: "high", Preference: "ASAP"},
		{ID: 102, Name: "Isabella Davis", Treatment: "Cleaning", Urgency: "low", Preference: "Flexible"},
		{ID: 103, Name: "Mason Wilson", Treatment: "Checkup", Urgency: "medium", Preference: "PM Pref"},
	}
}

func procedures() []models.Procedure {
	p := func(id int64, name, code string, dollars int64, category string) models.Procedure {
		return models.Procedure{ID: id, Name: name, Code: code, UnitPrice: models.Dollars(dollars), Category: category}
	}
	return []models.Procedure{
		p(1, "Routine Cleaning", "D1110", 120, models.CategoryGeneral),
		p(2, "Comprehensive Exam", "D0150", 85, models.CategoryGeneral),
		p(3, "Dental X-Ray (Full)", "D0210", 150, models.CategoryGeneral),
		p(4, "Fluoride Treatment", "D1206", 45, models.CategoryGeneral),
		p(5, "Tooth Filling (Composite)", "D2391", 225, models.CategoryGeneral),
		p(6, "Zirconia Crown", "D2740", 1200, models.CategoryGeneral),
		p(7, "Braces (Full Treatment)", "D8080", 5500, models.CategoryOrthodontics),
		p(8, "Invisalign Aligner", "D8040", 4800, models.CategoryOrthodontics),
		p(9, "Retainer (Hawley)", "D8680", 350, models.CategoryOrthodontics),
		p(10, "Bracket Replacement", "D8670", 75, models.CategoryOrthodontics),
		p(11, "Root Canal (Anterior)", "D3310", 950, models.CategorySurgery),
		p(12, "Root Canal (Molar)", "D3330", 1350, models.CategorySurgery),
		p(13, "Tooth Extraction", "D7140", 275, models.CategorySurgery),
		p(14, "Wisdom Tooth Removal", "D7230", 450, models.CategorySurgery),
		p(15, "Bone Graft", "D7953", 800, models.CategorySurgery),
		p(16, "Teeth Whitening", "D9972", 550, models.CategoryCosmetic),
		p(17, "Porcelain Veneer", "D2962", 1500, models.CategoryCosmetic),
		p(18, "Dental Bonding", "D2330", 350, models.CategoryCosmetic),
		p(19, "Gum Contouring", "D4210", 900, models.CategoryCosmetic),
	}
}

func insuredPatients() []models.InsuredPatient {
	return []models.InsuredPatient{
		{ID: 1, Name: "James Wilson", Insurer: "BlueCross PPO"},
		{ID: 2, Name: "Emma Thompson", Insurer: "Delta Dental"},
		{ID: 3, Name: "Sophia Garcia", Insurer: "Cigna DHMO"},
	}
}

func day(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func patients() []models.Patient {
	p := func(id, name, phone, email string, age int, gender, last, next string, confirmed bool, status models.PatientStatus, balance int64) models.Patient {
		return models.Patient{
			ID:              id,
			Name:            name,
			Phone:           phone,
			Email:           email,
			Age:             age,
			Gender:          gender,
			LastVisit:       day(last),
			NextAppointment: day(next),
			NextConfirmed:   confirmed,
			Status:          status,
			Balance:         models.Dollars(balance),
		}
	}
	return []models.Patient{
		p("PT-1001", "James Wilson", "+1 (555) 234-5678", "james.wilson@email.com", 34, "M", "2025-10-24", "2026-03-05", true, models.PatientActive, 150),
		p("PT-1002", "Emily Chen", "+1 (555) 876-1234", "emily.chen@email.com", 28, "F", "2025-11-02", "2026-02-28", true, models.PatientInTreatment, 480),
		p("PT-1003", "Michael Brown", "+1 (555) 345-9012", "michael.b@email.com", 45, "M", "2025-09-18", "2026-03-12", false, models.PatientActive, 0),
		p("PT-1004", "Sarah Johnson", "+1 (555) 789-4561", "sarahj@email.com", 31, "F", "2025-12-05", "2026-02-20", true, models.PatientRecovery, 75),
		p("PT-1005", "David Martinez", "+1 (555) 567-8901", "david.m@email.com", 52, "M", "2025-08-30", "", false, models.PatientArchived, 0),
		p("PT-1006", "Aisha Khan", "+1 (555) 123-7890", "aisha.khan@email.com", 24, "F", "2026-01-15", "2026-03-01", true, models.PatientActive, 320),
		p("PT-1007", "Robert Taylor", "+1 (555) 432-6543", "rob.taylor@email.com", 61, "M", "2025-11-20", "2026-04-10", false, models.PatientInTreatment, 1250),
		p("PT-1008", "Lisa Park", "+1 (555) 654-3210", "lisa.park@email.com", 29, "F", "2026-02-01", "2026-02-22", true, models.PatientActive, 0),
		p("PT-1009", "Omar Hassan", "+1 (555) 321-0987", "omar.h@email.com", 38, "M", "2025-10-10", "2026-03-18", false, models.PatientRecovery, 200),
		p("PT-1010", "Catherine Lee", "+1 (555) 210-8765", "cat.lee@email.com", 42, "F", "2025-12-28", "2026-02-25", true, models.PatientActive, 90),
	}
}
