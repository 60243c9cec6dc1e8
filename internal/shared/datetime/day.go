package datetime

import "time"

// Attendance is kept at calendar-day granularity. Both the write path
// (storing a mark) and the read path (filtering a day) normalize through the
// same two functions; keeping a single definition is what guarantees the
// stored instant always falls inside the queried window.

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// DayWindow returns the inclusive [start, end] bounds of t's calendar day.
func DayWindow(t time.Time) (time.Time, time.Time) {
	return StartOfDay(t), EndOfDay(t)
}

// ParseDate accepts the formats callers actually send: a plain YYYY-MM-DD
// date or a full RFC 3339 timestamp. The result is interpreted in the
// server's local zone so day bounds line up with stored values.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}
