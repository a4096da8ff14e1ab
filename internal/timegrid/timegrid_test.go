package timegrid

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: Clock{9, 0}},
		{in: "8:30", want: Clock{8, 30}},
		{in: " 23:59 ", want: Clock{23, 59}},
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "1030", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOffsetOf(t *testing.T) {
	g := DefaultGrid()

	tests := []struct {
		clock string
		want  float64
	}{
		{"08:00", 0},
		{"08:30", 64},
		{"09:00", 128},
		{"10:30", 320},
		{"18:00", 1280},
		{"07:00", -128},
	}
	for _, tt := range tests {
		if got := g.OffsetOf(MustParseClock(tt.clock)); got != tt.want {
			t.Errorf("OffsetOf(%s) = %v, want %v", tt.clock, got, tt.want)
		}
	}
}

func TestOffsetOf_Monotonic(t *testing.T) {
	g := DefaultGrid()
	prev := g.OffsetOf(Clock{Hour: g.StartHour})
	for h := g.StartHour; h < g.EndHour; h++ {
		for m := 0; m < 60; m++ {
			cur := g.OffsetOf(Clock{Hour: h, Minute: m})
			if cur < prev {
				t.Fatalf("offset decreased at %02d:%02d: %v < %v", h, m, cur, prev)
			}
			prev = cur
		}
	}
}

func TestEndTimeOf(t *testing.T) {
	tests := []struct {
		start string
		dur   int
		want  string
	}{
		{"09:00", 90, "10:30"},
		{"09:45", 30, "10:15"},
		{"11:30", 30, "12:00"},
		{"23:45", 30, "00:15"},
		{"14:00", 0, "14:00"},
	}
	for _, tt := range tests {
		got := EndTimeOf(MustParseClock(tt.start), tt.dur)
		if got.String() != tt.want {
			t.Errorf("EndTimeOf(%s, %d) = %s, want %s", tt.start, tt.dur, got, tt.want)
		}
	}
}

func TestEndTimeOf_RoundTrip(t *testing.T) {
	for _, start := range []string{"00:00", "08:15", "09:00", "12:59", "23:45"} {
		for _, dur := range []int{1, 15, 30, 59, 60, 90, 600} {
			c := MustParseClock(start)
			if got := EndTimeOf(c, dur).Sub(dur); got != c {
				t.Errorf("EndTimeOf(%s, %d).Sub(%d) = %s, want %s", start, dur, dur, got, c)
			}
		}
	}
}

func TestHeightOf_Linear(t *testing.T) {
	g := DefaultGrid()
	for _, d := range []int{0, 1, 15, 30, 45, 90} {
		if g.HeightOf(2*d) != 2*g.HeightOf(d) {
			t.Errorf("HeightOf(%d) = %v, want %v", 2*d, g.HeightOf(2*d), 2*g.HeightOf(d))
		}
	}
	if got := g.HeightOf(60); got != 128 {
		t.Errorf("HeightOf(60) = %v, want 128", got)
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"00:05": "12:05 AM",
		"09:00": "9:00 AM",
		"12:00": "12:00 PM",
		"12:30": "12:30 PM",
		"15:45": "3:45 PM",
	}
	for in, want := range tests {
		if got := MustParseClock(in).Label(); got != want {
			t.Errorf("Label(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestSlots(t *testing.T) {
	g := DefaultGrid()
	slots := g.Slots()
	if len(slots) != 21 {
		t.Fatalf("len(Slots()) = %d, want 21", len(slots))
	}
	if slots[0].Clock != (Clock{8, 0}) || slots[0].Top != 0 {
		t.Errorf("first slot = %+v", slots[0])
	}
	if slots[1].Clock != (Clock{8, 30}) || slots[1].Top != 64 {
		t.Errorf("second slot = %+v", slots[1])
	}
	last := slots[len(slots)-1]
	if last.Clock != (Clock{18, 0}) || last.Top != g.Height() {
		t.Errorf("last slot = %+v, grid height %v", last, g.Height())
	}
}

func TestGridValidate(t *testing.T) {
	if err := DefaultGrid().Validate(); err != nil {
		t.Fatalf("DefaultGrid().Validate() = %v", err)
	}
	bad := []Grid{
		{StartHour: 18, EndHour: 8, PixelsPerSlot: 64, MinutesPerSlot: 30},
		{StartHour: 8, EndHour: 18, PixelsPerSlot: 0, MinutesPerSlot: 30},
		{StartHour: 8, EndHour: 18, PixelsPerSlot: 64, MinutesPerSlot: 0},
		{StartHour: -1, EndHour: 18, PixelsPerSlot: 64, MinutesPerSlot: 30},
	}
	for _, g := range bad {
		if err := g.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", g)
		}
	}
}
