package api

import "google.golang.org/protobuf/types/known/timestamppb"

type Grid struct {
	StartHour      int     `json:"startHour"`
	EndHour        int     `json:"endHour"`
	PixelsPerSlot  float64 `json:"pixelsPerSlot"`
	MinutesPerSlot int     `json:"minutesPerSlot"`
	Height         float64 `json:"height"`
}

type Provider struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Initials string `json:"initials"`
}

// Slot is one labelled row of the time column.
type Slot struct {
	Time  string  `json:"time"`
	Label string  `json:"label"`
	Top   float64 `json:"top"`
}

// AppointmentBlock is an appointment together with its rectangle on the grid.
type AppointmentBlock struct {
	Id              int64   `json:"id"`
	ProviderId      string  `json:"providerId"`
	PatientName     string  `json:"patientName"`
	Treatment       string  `json:"treatment"`
	Start           string  `json:"start"`
	End             string  `json:"end"`
	StartLabel      string  `json:"startLabel"`
	DurationMinutes int     `json:"durationMinutes"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	Top             float64 `json:"top"`
	Height          float64 `json:"height"`
}

type NowMarker struct {
	Visible bool                   `json:"visible"`
	Offset  float64                `json:"offset"`
	At      *timestamppb.Timestamp `json:"at,omitempty"`
}

type WaitlistEntry struct {
	Id         int64  `json:"id"`
	Name       string `json:"name"`
	Treatment  string `json:"treatment"`
	Urgency    string `json:"urgency"`
	Preference string `json:"preference"`
}

// Overlap flags two appointments of one provider that share time.
type Overlap struct {
	ProviderId string `json:"providerId"`
	FirstId    int64  `json:"firstId"`
	SecondId   int64  `json:"secondId"`
	Minutes    int    `json:"minutes"`
}

type GetDayScheduleRequest struct {
	// At overrides the instant the now marker is computed for. Defaults to the server clock.
	At *timestamppb.Timestamp `json:"at,omitempty"`
}

type GetDayScheduleResponse struct {
	Grid         Grid               `json:"grid"`
	Providers    []Provider         `json:"providers"`
	Slots        []Slot             `json:"slots"`
	Appointments []AppointmentBlock `json:"appointments"`
	NowMarker    NowMarker          `json:"nowMarker"`
	Waitlist     []WaitlistEntry    `json:"waitlist"`
	Overlaps     []Overlap          `json:"overlaps"`
}

type WatchNowMarkerRequest struct{}

type WatchNowMarkerResponse struct {
	Marker NowMarker `json:"marker"`
}
