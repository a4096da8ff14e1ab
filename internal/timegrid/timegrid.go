// Package timegrid maps wall-clock times onto the pixel rows of the schedule grid.
package timegrid

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Clock is a wall-clock time within a single operating day, at minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Clock{}, fmt.Errorf("invalid clock %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid clock %q: hour out of range", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("invalid clock %q: minute out of range", s)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// MustParseClock is ParseClock for static seed data. It panics on malformed input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Minutes returns the minutes elapsed since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Label formats the clock the way the dashboard prints it, e.g. "9:00 AM" or "12:30 PM".
func (c Clock) Label() string {
	suffix := "AM"
	if c.Hour >= 12 {
		suffix = "PM"
	}
	h := c.Hour
	switch {
	case h == 0:
		h = 12
	case h > 12:
		h -= 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, suffix)
}

// Sub returns the clock the given number of minutes earlier, wrapping past midnight.
// It is the inverse of EndTimeOf.
func (c Clock) Sub(minutes int) Clock {
	return EndTimeOf(c, -minutes)
}

// EndTimeOf returns the wall-clock time durationMinutes after start. Hour boundaries roll
// over and the result wraps past midnight (23:45 + 30 is 00:15); day bounds are not checked.
func EndTimeOf(start Clock, durationMinutes int) Clock {
	total := (start.Minutes() + durationMinutes) % minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return Clock{Hour: total / 60, Minute: total % 60}
}

// Grid is the fixed-scale vertical timeline the schedule is drawn on.
type Grid struct {
	StartHour      int
	EndHour        int
	PixelsPerSlot  float64
	MinutesPerSlot int
}

// DefaultGrid is the clinic's operating day: 08:00 to 18:00 at 64px per half hour.
func DefaultGrid() Grid {
	return Grid{
		StartHour:      8,
		EndHour:        18,
		PixelsPerSlot:  64,
		MinutesPerSlot: 30,
	}
}

// Validate reports configuration errors that would make the grid meaningless.
func (g Grid) Validate() error {
	if g.StartHour < 0 || g.StartHour > 23 {
		return fmt.Errorf("start hour %d out of range", g.StartHour)
	}
	if g.EndHour <= g.StartHour || g.EndHour > 24 {
		return fmt.Errorf("end hour %d must be after start hour %d and at most 24", g.EndHour, g.StartHour)
	}
	if g.PixelsPerSlot <= 0 {
		return fmt.Errorf("pixels per slot must be positive")
	}
	if g.MinutesPerSlot <= 0 {
		return fmt.Errorf("minutes per slot must be positive")
	}
	return nil
}

// PixelsPerMinute is the vertical scale of the grid.
func (g Grid) PixelsPerMinute() float64 {
	return g.PixelsPerSlot / float64(g.MinutesPerSlot)
}

// OffsetOf returns the distance in pixels from the top of the grid to c.
// Times outside the grid give a negative offset or one beyond Height; callers clip.
func (g Grid) OffsetOf(c Clock) float64 {
	return g.HeightOf(c.Minutes() - g.StartHour*60)
}

// HeightOf returns the pixel height of a span of durationMinutes.
// Multiplying before dividing keeps whole-slot spans exact.
func (g Grid) HeightOf(durationMinutes int) float64 {
	return float64(durationMinutes) * g.PixelsPerSlot / float64(g.MinutesPerSlot)
}

// Height is the pixel height of the whole operating day.
func (g Grid) Height() float64 {
	return g.HeightOf((g.EndHour - g.StartHour) * 60)
}

// Contains reports whether c falls in [StartHour, EndHour).
func (g Grid) Contains(c Clock) bool {
	return c.Hour >= g.StartHour && c.Hour < g.EndHour
}

// Slot is one labelled row of the grid.
type Slot struct {
	Clock Clock
	Top   float64
}

// Slots returns the row labels from StartHour to EndHour inclusive, one per MinutesPerSlot.
func (g Grid) Slots() []Slot {
	if g.MinutesPerSlot <= 0 || g.EndHour <= g.StartHour {
		return nil
	}
	n := (g.EndHour-g.StartHour)*60/g.MinutesPerSlot + 1
	slots := make([]Slot, 0, n)
	start := Clock{Hour: g.StartHour}
	for i := 0; i < n; i++ {
		minutes := start.Minutes() + i*g.MinutesPerSlot
		c := Clock{Hour: minutes / 60, Minute: minutes % 60}
		slots = append(slots, Slot{Clock: c, Top: float64(i) * g.PixelsPerSlot})
	}
	return slots
}
