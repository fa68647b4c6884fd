// Package daterange maps calendar date intervals onto the range encodings
// search providers accept.
package daterange

import "time"

// Range is a calendar date interval. Whether End is inclusive depends on
// the provider consuming it; the value is passed through unchanged.
type Range struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// EpochDays returns the start and end as whole days since the Unix epoch.
func (r Range) EpochDays() (start, end int64) {
	return EpochDays(r.Start), EpochDays(r.End)
}

// ClosestPreset is shorthand for Closest(presets, r.Duration()).
func (r Range) ClosestPreset(presets []Preset) (string, bool) {
	return Closest(presets, r.Duration())
}

// Preset is a discrete range bucket such as "past week".
type Preset struct {
	Span  time.Duration
	Value string
}

// Common preset spans.
const (
	Hour  = time.Hour
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 30 * Day
	Year  = 365 * Day
)

// Closest returns the value of the preset whose span is nearest to d.
// Presets must be in ascending span order; on a tie the earlier one wins.
func Closest(presets []Preset, d time.Duration) (string, bool) {
	if len(presets) == 0 {
		return "", false
	}
	best := 0
	bestDist := distance(presets[0].Span, d)
	for i := 1; i < len(presets); i++ {
		if dist := distance(presets[i].Span, d); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return presets[best].Value, true
}

func distance(a, b time.Duration) time.Duration {
	if a > b {
		return a - b
	}
	return b - a
}

// EpochDays returns the number of days between 1970-01-01 UTC and t,
// rounded towards negative infinity.
func EpochDays(t time.Time) int64 {
	secs := t.Unix()
	days := secs / 86400
	if secs%86400 < 0 {
		days--
	}
	return days
}

// Date is a convenience constructor for a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}
