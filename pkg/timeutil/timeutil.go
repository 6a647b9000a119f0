// Package timeutil provides the clock and the date/time text formats used by
// the registrar: the ctime-style stamp of error log lines, the DD/MM/YY date
// token and the zero padded HH:MM slot time.
package timeutil

import (
	"fmt"
	"time"
)

// Layouts.
const (
	// StampLayout matches C ctime output without the trailing newline.
	StampLayout = "Mon Jan _2 15:04:05 2006"

	// DateTokenLayout is the DD/MM/YY date token.
	DateTokenLayout = "02/01/06"

	// SlotTimeLayout is the fixed width time used by schedule slots.
	SlotTimeLayout = "15:04"
)

// Clock abstracts the current time so tests can pin it.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location.
type SystemClock struct {
	Location *time.Location
}

// Now implements Clock.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// LoadLocation resolves a zone name. An empty name means local time.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timeutil: unknown location %q: %w", name, err)
	}
	return loc, nil
}

// Stamp formats t for an error log line.
func Stamp(t time.Time) string {
	return t.Format(StampLayout)
}

// DateToken formats t as DD/MM/YY.
func DateToken(t time.Time) string {
	return t.Format(DateTokenLayout)
}

// SlotTime formats t as HH:MM.
func SlotTime(t time.Time) string {
	return t.Format(SlotTimeLayout)
}

// ParseSlotTime reads an "HH:MM" or "H:MM" time and returns it zero padded.
// Trailing text such as seconds or an AM/PM suffix is rejected.
func ParseSlotTime(s string) (string, error) {
	t, err := time.Parse(SlotTimeLayout, s)
	if err != nil {
		return "", fmt.Errorf("timeutil: slot time %q: %w", s, err)
	}
	return SlotTime(t), nil
}

// NormalizeSlotTime reformats a loose "9:05" style time into "09:05" so it
// compares correctly as a string. Input ParseSlotTime rejects is returned
// unchanged.
func NormalizeSlotTime(s string) string {
	if v, err := ParseSlotTime(s); err == nil {
		return v
	}
	return s
}

// ShortWeekday returns the three letter weekday name used as a slot day.
func ShortWeekday(t time.Time) string {
	return t.Weekday().String()[:3]
}
