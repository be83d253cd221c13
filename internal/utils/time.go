package contextutils

import (
	"time"
)

// DateLayout is the calendar-date format used for daily keys and API dates
const DateLayout = "2006-01-02"

// LoadLocationOrUTC resolves an IANA timezone name, falling back to UTC when the
// name is empty or unknown. The effective name is returned alongside the location.
func LoadLocationOrUTC(name string) (*time.Location, string) {
	if name == "" || name == "UTC" {
		return time.UTC, "UTC"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, "UTC"
	}
	return loc, name
}

// DateKey formats t as the calendar date observed in loc
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as local midnight in loc.
// Errors carry the INVALID_FORMAT code.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	date, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, NewAppErrorWithCause(ErrInvalidFormat.Code, ErrInvalidFormat.Severity, "invalid date format", dateStr, err)
	}
	return date, nil
}

// StartOfDay returns midnight of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
