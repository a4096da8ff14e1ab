// Package schedule lays a day's appointments out on the provider lanes of the time grid
// and tracks the "now" marker.
package schedule

import (
	"sort"

	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/timegrid"
)

// Style holds the visual constants applied to appointment blocks.
type Style struct {
	// GapPx is trimmed from every block so adjacent bookings don't touch.
	GapPx float64

	// MinHeightPx keeps short appointments legible.
	MinHeightPx float64
}

// DefaultStyle is a 4px gap with a 24px floor.
func DefaultStyle() Style {
	return Style{GapPx: 4, MinHeightPx: 24}
}

// Rect is the positioned block of one appointment.
type Rect struct {
	AppointmentID int64
	LaneID        string
	Top           float64
	Height        float64
}

// Bottom is Top + Height.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Layout positions appointments on the lanes of the given providers. Lanes follow the
// provider order and blocks keep the input order within a lane.
//
// Appointments are partitioned by ProviderID only. Overlapping bookings on one lane
// produce overlapping blocks; use FindOverlaps to report them. Appointments whose
// provider has no lane are left out.
func Layout(g timegrid.Grid, appointments []models.Appointment, providers []models.Provider, style Style) []Rect {
	lanes := make(map[string][]models.Appointment, len(providers))
	for _, a := range appointments {
		lanes[a.ProviderID] = append(lanes[a.ProviderID], a)
	}

	rects := make([]Rect, 0, len(appointments))
	for _, p := range providers {
		for _, a := range lanes[p.ID] {
			rects = append(rects, Position(g, a, style))
		}
		// A provider listed twice gets a single lane.
		delete(lanes, p.ID)
	}
	return rects
}

// Position computes the block of a single appointment.
func Position(g timegrid.Grid, a models.Appointment, style Style) Rect {
	h := g.HeightOf(a.DurationMinutes) - style.GapPx
	if h < style.MinHeightPx {
		h = style.MinHeightPx
	}
	return Rect{
		AppointmentID: a.ID,
		LaneID:        a.ProviderID,
		Top:           g.OffsetOf(a.Start),
		Height:        h,
	}
}

// Overlap is a pair of bookings on the same lane whose time ranges intersect.
type Overlap struct {
	ProviderID string
	FirstID    int64
	SecondID   int64
	Minutes    int
}

// FindOverlaps reports every pair of same-provider appointments that share at least one
// minute. Pairs are ordered by provider, then by the start of the earlier booking.
func FindOverlaps(appointments []models.Appointment) []Overlap {
	byProvider := make(map[string][]models.Appointment)
	var providerIDs []string
	for _, a := range appointments {
		if _, ok := byProvider[a.ProviderID]; !ok {
			providerIDs = append(providerIDs, a.ProviderID)
		}
		byProvider[a.ProviderID] = append(byProvider[a.ProviderID], a)
	}
	sort.Strings(providerIDs)

	var out []Overlap
	for _, pid := range providerIDs {
		lane := byProvider[pid]
		sort.SliceStable(lane, func(i, j int) bool {
			return lane[i].Start.Minutes() < lane[j].Start.Minutes()
		})
		for i := 0; i < len(lane); i++ {
			aStart := lane[i].Start.Minutes()
			aEnd := aStart + lane[i].DurationMinutes
			for j := i + 1; j < len(lane); j++ {
				bStart := lane[j].Start.Minutes()
				if bStart >= aEnd {
					break
				}
				shared := min(aEnd, bStart+lane[j].DurationMinutes) - bStart
				if shared <= 0 {
					continue
				}
				out = append(out, Overlap{
					ProviderID: pid,
					FirstID:    lane[i].ID,
					SecondID:   lane[j].ID,
					Minutes:    shared,
				})
			}
		}
	}
	return out
}
