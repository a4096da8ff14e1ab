package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/dentaldesk/internal/metrics"
	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/schedule"
	"github.com/mmynk/dentaldesk/internal/storage"
	"github.com/mmynk/dentaldesk/internal/timegrid"
	"github.com/mmynk/dentaldesk/pkg/api"
	"github.com/mmynk/dentaldesk/pkg/api/apiconnect"
)

var _ apiconnect.ScheduleServiceHandler = (*ScheduleService)(nil)

// ScheduleOptions configures the grid and the now-marker clock.
type ScheduleOptions struct {
	Grid            timegrid.Grid
	Style           schedule.Style
	Location        *time.Location
	RefreshInterval time.Duration

	// Now replaces the wall clock in tests.
	Now func() time.Time
}

// ScheduleService implements the Connect ScheduleService.
type ScheduleService struct {
	store   storage.CatalogStore
	opts    ScheduleOptions
	metrics *metrics.Metrics
}

// NewScheduleService creates a ScheduleService. Zero options fall back to the default
// grid, style, local time zone and one-minute refresh.
func NewScheduleService(store storage.CatalogStore, opts ScheduleOptions, m *metrics.Metrics) *ScheduleService {
	if opts.Grid == (timegrid.Grid{}) {
		opts.Grid = timegrid.DefaultGrid()
	}
	if opts.Style == (schedule.Style{}) {
		opts.Style = schedule.DefaultStyle()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = schedule.DefaultRefreshInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ScheduleService{store: store, opts: opts, metrics: m}
}

// GetDaySchedule returns the laid-out day: lanes, blocks, row labels, the now marker and
// the waitlist.
func (s *ScheduleService) GetDaySchedule(ctx context.Context, req *connect.Request[api.GetDayScheduleRequest]) (*connect.Response[api.GetDayScheduleResponse], error) {
	providers, err := s.store.ListProviders(ctx)
	if err != nil {
		slog.Error("ListProviders failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	appointments, err := s.store.ListAppointments(ctx)
	if err != nil {
		slog.Error("ListAppointments failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	waitlist, err := s.store.ListWaitlist(ctx)
	if err != nil {
		slog.Error("ListWaitlist failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	at := s.opts.Now()
	if req.Msg.At != nil {
		if err := req.Msg.At.CheckValid(); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		at = req.Msg.At.AsTime()
	}

	g := s.opts.Grid
	resp := &api.GetDayScheduleResponse{
		Grid: api.Grid{
			StartHour:      g.StartHour,
			EndHour:        g.EndHour,
			PixelsPerSlot:  g.PixelsPerSlot,
			MinutesPerSlot: g.MinutesPerSlot,
			Height:         g.Height(),
		},
		Providers:    make([]api.Provider, 0, len(providers)),
		Slots:        make([]api.Slot, 0),
		Appointments: make([]api.AppointmentBlock, 0, len(appointments)),
		NowMarker:    toAPIMarker(schedule.MarkerAt(g, at.In(s.opts.Location))),
		Waitlist:     make([]api.WaitlistEntry, 0, len(waitlist)),
		Overlaps:     make([]api.Overlap, 0),
	}

	for _, p := range providers {
		resp.Providers = append(resp.Providers, toAPIProvider(p))
	}
	for _, slot := range g.Slots() {
		resp.Slots = append(resp.Slots, api.Slot{
			Time:  slot.Clock.String(),
			Label: slot.Clock.Label(),
			Top:   slot.Top,
		})
	}

	byID := make(map[int64]models.Appointment, len(appointments))
	for _, a := range appointments {
		byID[a.ID] = a
	}
	for _, r := range schedule.Layout(g, appointments, providers, s.opts.Style) {
		a := byID[r.AppointmentID]
		resp.Appointments = append(resp.Appointments, api.AppointmentBlock{
			Id:              a.ID,
			ProviderId:      r.LaneID,
			PatientName:     a.PatientName,
			Treatment:       a.Treatment,
			Start:           a.Start.String(),
			End:             a.End().String(),
			StartLabel:      a.Start.Label(),
			DurationMinutes: a.DurationMinutes,
			Type:            string(a.Type),
			Status:          string(a.Status),
			Top:             r.Top,
			Height:          r.Height,
		})
	}

	for _, o := range schedule.FindOverlaps(appointments) {
		resp.Overlaps = append(resp.Overlaps, api.Overlap{
			ProviderId: o.ProviderID,
			FirstId:    o.FirstID,
			SecondId:   o.SecondID,
			Minutes:    o.Minutes,
		})
	}
	if len(resp.Overlaps) > 0 {
		slog.Warn("Schedule has overlapping appointments", "count", len(resp.Overlaps))
	}

	for _, w := range waitlist {
		resp.Waitlist = append(resp.Waitlist, api.WaitlistEntry{
			Id:         w.ID,
			Name:       w.Name,
			Treatment:  w.Treatment,
			Urgency:    w.Urgency,
			Preference: w.Preference,
		})
	}

	slog.Debug("GetDaySchedule successful",
		"providers", len(resp.Providers),
		"appointments", len(resp.Appointments),
		"now_visible", resp.NowMarker.Visible,
	)
	return connect.NewResponse(resp), nil
}

// WatchNowMarker sends the current marker right away and then once per refresh interval.
// The ticker stops when the client goes away.
func (s *ScheduleService) WatchNowMarker(ctx context.Context, req *connect.Request[api.WatchNowMarkerRequest], stream *connect.ServerStream[api.WatchNowMarkerResponse]) error {
	s.metrics.WatcherStarted()
	defer s.metrics.WatcherStopped()

	ticker := schedule.NewTicker(s.opts.Grid, schedule.TickerConfig{
		Interval: s.opts.RefreshInterval,
		Location: s.opts.Location,
		Now:      s.opts.Now,
	})

	err := ticker.Run(ctx, func(m schedule.Marker) error {
		return stream.Send(&api.WatchNowMarkerResponse{Marker: toAPIMarker(m)})
	})
	if err != nil {
		slog.Debug("Now marker stream ended", "error", err)
		return err
	}
	return nil
}
