package domain

import (
	"fmt"
	"time"
)

// Clock is a time of day. Hour 24 with Minute 0 denotes end of day.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int { return c.Hour*60 + c.Minute }

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// ParseClock parses "HH:MM" (24:00 allowed).
func ParseClock(s string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if c.Hour < 0 || c.Hour > 24 || c.Minute < 0 || c.Minute > 59 || (c.Hour == 24 && c.Minute != 0) {
		return Clock{}, fmt.Errorf("parse clock %q: out of range", s)
	}
	return c, nil
}

// DateRange is a calendar-date pair with optional time-of-day bounds.
// From and To are midnights in the caller's location. When both clocks are
// set and FromTime is after ToTime the range is an overnight wrap and To is
// the day after From.
type DateRange struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	FromTime *Clock    `json:"from_time,omitempty"`
	ToTime   *Clock    `json:"to_time,omitempty"`
	Label    string    `json:"label,omitempty"`
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// HasTimes reports whether both time-of-day bounds are present.
func (r DateRange) HasTimes() bool { return r.FromTime != nil && r.ToTime != nil }

// Overnight reports whether the time window wraps past midnight.
func (r DateRange) Overnight() bool {
	return r.HasTimes() && r.FromTime.Minutes() > r.ToTime.Minutes()
}

// Normalize puts the range in canonical form: day-truncated bounds,
// From <= To, and To = From + 1 day for overnight windows.
func (r DateRange) Normalize() DateRange {
	r.From = Day(r.From)
	r.To = Day(r.To)
	if r.To.Before(r.From) {
		r.From, r.To = r.To, r.From
	}
	if r.FromTime == nil || r.ToTime == nil {
		r.FromTime, r.ToTime = nil, nil
	}
	if r.Overnight() {
		r.To = r.From.AddDate(0, 0, 1)
	}
	return r
}

// Start returns the first instant covered by the range.
func (r DateRange) Start() time.Time {
	if r.FromTime != nil {
		return r.From.Add(time.Duration(r.FromTime.Minutes()) * time.Minute)
	}
	return r.From
}

// End returns the last instant covered by the range.
func (r DateRange) End() time.Time {
	if r.ToTime != nil {
		return r.To.Add(time.Duration(r.ToTime.Minutes()) * time.Minute)
	}
	return r.To.AddDate(0, 0, 1).Add(-time.Millisecond)
}
