package core

import "time"

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	dateTimeLayout = "2006-01-02T15:04"
)

// ParseDate parses a calendar date in ISO form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Timestamp combines the entry's date and time-of-day into a single instant.
// An empty time-of-day is treated as midnight.
func (t Transaction) Timestamp() (time.Time, error) {
	if t.Time == "" {
		return ParseDate(t.Date)
	}
	return time.Parse(dateTimeLayout, t.Date+"T"+t.Time)
}
