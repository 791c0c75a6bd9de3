package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayFormat is the format used to represent days as strings in ISO-8601 format.
const DayFormat = "2006-01-02"

// Day represents a UTC calendar day with no finer granularity.
// It keys snapshots and bounds as-of valuations: an observation timestamped
// anywhere within a day counts for that day's valuation.
type Day struct {
	y int
	m time.Month
	d int
}

// NewDay returns a normalized Day for the given year, month, and day.
func NewDay(year int, month time.Month, day int) Day {
	d := Day{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) Day {
	return NewDay(t.UTC().Date())
}

// Time returns the canonical representation of the day: midnight UTC.
func (d Day) Time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// End returns the exclusive upper bound of the day: midnight of the next day.
// ValueAsOf uses it so that an observation timestamped on the day itself counts.
func (d Day) End() time.Time { return d.Add(1).Time() }

// Add returns a new Day with the given number of days added.
func (d Day) Add(days int) Day { return NewDay(d.y, d.m, d.d+days) }

// Before reports whether d falls before x.
func (d Day) Before(x Day) bool { return d.Time().Before(x.Time()) }

// After reports whether d falls after x.
func (d Day) After(x Day) bool { return d.Time().After(x.Time()) }

// String formats the day in its standard format.
func (d Day) String() string { return d.Time().Format(DayFormat) }

// ParseDay parses a Day from its standard string format.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q want format %q: %w", s, DayFormat, err)
	}
	return DayOf(t), nil
}

// MarshalJSON encodes the day as its standard string format.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes the day from its standard string format.
func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	day, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = day
	return nil
}
