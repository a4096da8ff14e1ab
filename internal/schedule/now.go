package schedule

import (
	"context"
	"time"

	"github.com/mmynk/dentaldesk/internal/timegrid"
)

// DefaultRefreshInterval is how often the now marker is recomputed. Wall-clock time has no
// change notification, so the marker is polled.
const DefaultRefreshInterval = time.Minute

// Marker is the position of the current time on the grid.
type Marker struct {
	// Offset is the pixel offset from the top of the grid. Only meaningful when Visible.
	Offset float64

	// Visible is false outside operating hours; no marker is drawn then.
	Visible bool

	// At is the wall-clock instant the marker was computed for.
	At time.Time
}

// NowMarker places now on the grid. ok is false when the hour falls outside
// [StartHour, EndHour).
func NowMarker(g timegrid.Grid, now time.Time) (offset float64, ok bool) {
	c := timegrid.Clock{Hour: now.Hour(), Minute: now.Minute()}
	if !g.Contains(c) {
		return 0, false
	}
	return g.OffsetOf(c), true
}

// MarkerAt computes the Marker for now.
func MarkerAt(g timegrid.Grid, now time.Time) Marker {
	offset, ok := NowMarker(g, now)
	return Marker{Offset: offset, Visible: ok, At: now}
}

// Ticker recomputes the now marker on a fixed interval for one view.
type Ticker struct {
	grid     timegrid.Grid
	interval time.Duration
	now      func() time.Time
	loc      *time.Location
}

// TickerConfig configures a Ticker. Zero values fall back to the defaults.
type TickerConfig struct {
	Interval time.Duration

	// Location is the clinic's time zone. Defaults to time.Local.
	Location *time.Location

	// Now replaces the wall clock in tests.
	Now func() time.Time
}

// NewTicker creates a Ticker for grid g.
func NewTicker(g timegrid.Grid, cfg TickerConfig) *Ticker {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultRefreshInterval
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Ticker{grid: g, interval: cfg.Interval, now: cfg.Now, loc: cfg.Location}
}

// Current computes the marker for the present moment.
func (t *Ticker) Current() Marker {
	return MarkerAt(t.grid, t.now().In(t.loc))
}

// Run delivers the current marker to fn immediately and then once per interval until ctx
// is cancelled, which stops the underlying timer. fn runs on the caller's goroutine; if fn
// returns an error, Run stops and returns it. Cancellation returns nil.
func (t *Ticker) Run(ctx context.Context, fn func(Marker) error) error {
	if err := fn(t.Current()); err != nil {
		return err
	}

	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			// select picks at random when a tick and cancellation are both ready.
			if ctx.Err() != nil {
				return nil
			}
			if err := fn(t.Current()); err != nil {
				return err
			}
		}
	}
}
