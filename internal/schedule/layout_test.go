package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/timegrid"
)

func appt(id int64, provider, start string, dur int) models.Appointment {
	return models.Appointment{
		ID:              id,
		ProviderID:      provider,
		Start:           timegrid.MustParseClock(start),
		DurationMinutes: dur,
	}
}

var lanes = []models.Provider{
	{ID: "p1", Name: "Dr. Sarah Wilson"},
	{ID: "p2", Name: "Dr. Mike Chen"},
}

func TestLayout_SingleLaneScenario(t *testing.T) {
	g := timegrid.DefaultGrid()
	rects := Layout(g, []models.Appointment{
		appt(1, "p1", "09:00", 60),
		appt(2, "p1", "10:30", 30),
	}, lanes, DefaultStyle())

	require.Len(t, rects, 2)

	// 60 min past 08:00 at 64px/30min
	assert.Equal(t, Rect{AppointmentID: 1, LaneID: "p1", Top: 128, Height: 124}, rects[0])
	// 150 min past 08:00; 64px block minus the 4px gap
	assert.Equal(t, Rect{AppointmentID: 2, LaneID: "p1", Top: 320, Height: 60}, rects[1])

	assert.LessOrEqual(t, rects[0].Bottom(), rects[1].Top, "blocks must not overlap")
}

func TestLayout_LaneOrderFollowsProviders(t *testing.T) {
	g := timegrid.DefaultGrid()
	rects := Layout(g, []models.Appointment{
		appt(1, "p2", "10:00", 90),
		appt(2, "p1", "11:30", 30),
		appt(3, "p2", "08:00", 30),
	}, lanes, DefaultStyle())

	require.Len(t, rects, 3)
	assert.Equal(t, []int64{2, 1, 3}, []int64{rects[0].AppointmentID, rects[1].AppointmentID, rects[2].AppointmentID})
	assert.Equal(t, "p1", rects[0].LaneID)
	assert.Equal(t, "p2", rects[1].LaneID)
}

func TestLayout_MinimumHeight(t *testing.T) {
	g := timegrid.DefaultGrid()
	tests := []struct {
		name string
		dur  int
		want float64
	}{
		{"five minutes hits the floor", 5, 24},
		{"zero duration hits the floor", 0, 24},
		{"negative duration hits the floor", -30, 24},
		{"fourteen minutes is just above the floor", 14, 14*g.PixelsPerMinute() - 4},
		{"ninety minutes", 90, 188},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Position(g, appt(1, "p1", "09:00", tt.dur), DefaultStyle())
			assert.InDelta(t, tt.want, r.Height, 1e-9)
		})
	}
}

func TestLayout_OutOfGridIsNotClipped(t *testing.T) {
	g := timegrid.DefaultGrid()
	rects := Layout(g, []models.Appointment{
		appt(1, "p1", "07:00", 30),
		appt(2, "p1", "18:30", 30),
	}, lanes, DefaultStyle())

	require.Len(t, rects, 2)
	assert.Equal(t, -128.0, rects[0].Top)
	assert.Greater(t, rects[1].Top, g.Height())
}

func TestLayout_UnknownProviderIsSkipped(t *testing.T) {
	g := timegrid.DefaultGrid()
	rects := Layout(g, []models.Appointment{
		appt(1, "p1", "09:00", 30),
		appt(2, "ghost", "09:00", 30),
	}, lanes, DefaultStyle())

	require.Len(t, rects, 1)
	assert.Equal(t, int64(1), rects[0].AppointmentID)
}

func TestLayout_DuplicateProviderGetsOneLane(t *testing.T) {
	g := timegrid.DefaultGrid()
	providers := []models.Provider{{ID: "p1"}, {ID: "p1"}}
	rects := Layout(g, []models.Appointment{appt(1, "p1", "09:00", 30)}, providers, DefaultStyle())
	assert.Len(t, rects, 1)
}

func TestLayout_OverlapIsPreserved(t *testing.T) {
	g := timegrid.DefaultGrid()
	rects := Layout(g, []models.Appointment{
		appt(1, "p1", "09:00", 60),
		appt(2, "p1", "09:30", 30),
	}, lanes, DefaultStyle())

	require.Len(t, rects, 2)
	assert.Greater(t, rects[0].Bottom(), rects[1].Top, "overlapping bookings render overlapping blocks")
}

func TestFindOverlaps(t *testing.T) {
	overlaps := FindOverlaps([]models.Appointment{
		appt(1, "p1", "09:00", 60),
		appt(2, "p1", "09:30", 60),
		appt(3, "p1", "10:00", 30),
		appt(4, "p2", "09:00", 30),
		appt(5, "p2", "09:30", 30),
		appt(6, "p1", "11:00", 0),
	})

	assert.Equal(t, []Overlap{
		{ProviderID: "p1", FirstID: 1, SecondID: 2, Minutes: 30},
		{ProviderID: "p1", FirstID: 2, SecondID: 3, Minutes: 30},
	}, overlaps)
}

func TestFindOverlaps_None(t *testing.T) {
	assert.Empty(t, FindOverlaps([]models.Appointment{
		appt(1, "p1", "09:00", 60),
		appt(2, "p1", "10:00", 30),
	}))
}
