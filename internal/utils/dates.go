package utils

import (
	"time"

	"github.com/reserfast/reserfast-api/internal/constants"
)

// DateOf truncates t to its calendar date in t's location and returns that
// date as midnight UTC. All reservation dates are stored in this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}

// Today returns the current calendar date as seen in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// LoadLocation resolves a time zone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		Logger.Warnf("unknown time zone %q, using UTC", name)
		return time.UTC
	}
	return loc
}

// AgeOn returns the number of whole years between birth and on.
func AgeOn(birth, on time.Time) int {
	age := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		age--
	}
	return age
}
