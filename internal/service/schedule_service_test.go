package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/dentaldesk/pkg/api"
)

func TestGetDaySchedule(t *testing.T) {
	clients, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := clients.schedule.GetDaySchedule(context.Background(), connect.NewRequest(&api.GetDayScheduleRequest{}))
	if err != nil {
		t.Fatalf("GetDaySchedule failed: %v", err)
	}
	day := resp.Msg

	if day.Grid.Height != 1280 {
		t.Errorf("expected grid height 1280, got %v", day.Grid.Height)
	}
	if len(day.Providers) != 3 || day.Providers[0].Id != "p1" {
		t.Errorf("unexpected providers: %+v", day.Providers)
	}
	if len(day.Slots) != 21 {
		t.Fatalf("expected 21 slots, got %d", len(day.Slots))
	}
	if day.Slots[0].Label != "8:00 AM" || day.Slots[20].Time != "18:00" || day.Slots[20].Top != 1280 {
		t.Errorf("unexpected slot bounds: %+v .. %+v", day.Slots[0], day.Slots[20])
	}
	if len(day.Waitlist) != 3 {
		t.Errorf("expected 3 waitlist entries, got %d", len(day.Waitlist))
	}
	if len(day.Overlaps) != 0 {
		t.Errorf("expected no overlaps in the seed, got %+v", day.Overlaps)
	}

	if len(day.Appointments) != 9 {
		t.Fatalf("expected 9 appointments, got %d", len(day.Appointments))
	}
	tests := []struct {
		idx    int
		id     int64
		top    float64
		height float64
		end    string
	}{
		{0, 1, 128, 124, "10:00"}, // 09:00 for 60 minutes
		{1, 2, 448, 60, "12:00"},  // 11:30 for 30 minutes
		{3, 4, 256, 188, "11:30"}, // first block of the second lane: 10:00 for 90 minutes
		{6, 7, 64, 124, "09:30"},  // 08:30 for 60 minutes
	}
	for _, tt := range tests {
		b := day.Appointments[tt.idx]
		if b.Id != tt.id || b.Top != tt.top || b.Height != tt.height || b.End != tt.end {
			t.Errorf("block %d: got id=%d top=%v height=%v end=%s, want id=%d top=%v height=%v end=%s",
				tt.idx, b.Id, b.Top, b.Height, b.End, tt.id, tt.top, tt.height, tt.end)
		}
	}

	if !day.NowMarker.Visible || day.NowMarker.Offset != 288 {
		t.Errorf("expected visible marker at 288, got %+v", day.NowMarker)
	}
}

func TestGetDaySchedule_MarkerOutsideHours(t *testing.T) {
	clients, cleanup := setupTestServer(t)
	defer cleanup()

	evening := time.Date(2024, 5, 6, 19, 0, 0, 0, time.UTC)
	resp, err := clients.schedule.GetDaySchedule(context.Background(), connect.NewRequest(&api.GetDayScheduleRequest{
		At: timestamppb.New(evening),
	}))
	if err != nil {
		t.Fatalf("GetDaySchedule failed: %v", err)
	}
	if resp.Msg.NowMarker.Visible {
		t.Errorf("expected no marker at 19:00, got %+v", resp.Msg.NowMarker)
	}
	if !resp.Msg.NowMarker.At.AsTime().Equal(evening) {
		t.Errorf("expected marker time %v, got %v", evening, resp.Msg.NowMarker.At.AsTime())
	}
}

func TestGetDaySchedule_RequiresToken(t *testing.T) {
	clients, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := clients.anonSchedule.GetDaySchedule(context.Background(), connect.NewRequest(&api.GetDayScheduleRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestWatchNowMarker(t *testing.T) {
	clients, cleanup := setupTestServer(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := clients.schedule.WatchNowMarker(ctx, connect.NewRequest(&api.WatchNowMarkerRequest{}))
	if err != nil {
		t.Fatalf("WatchNowMarker failed: %v", err)
	}

	received := 0
	for received < 3 && stream.Receive() {
		m := stream.Msg().Marker
		if !m.Visible || m.Offset != 288 {
			t.Errorf("unexpected marker: %+v", m)
		}
		received++
	}
	if received != 3 {
		t.Fatalf("expected 3 markers, got %d (err: %v)", received, stream.Err())
	}

	if err := stream.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestWatchNowMarker_RequiresToken(t *testing.T) {
	clients, cleanup := setupTestServer(t)
	defer cleanup()

	stream, err := clients.anonSchedule.WatchNowMarker(context.Background(), connect.NewRequest(&api.WatchNowMarkerRequest{}))
	if err != nil {
		assertCode(t, err, connect.CodeUnauthenticated)
		return
	}
	defer stream.Close()

	if stream.Receive() {
		t.Fatal("expected no markers without a token")
	}
	assertCode(t, stream.Err(), connect.CodeUnauthenticated)
}
