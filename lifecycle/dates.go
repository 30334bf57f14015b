package lifecycle

import (
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the calendar date format used on the API surface.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date into a UTC instant at
// midnight. The empty string is an error; pivotal dates are required.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("date is empty")
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid date '%s', expected YYYY-MM-DD", s)
	}
	return t, nil
}

// parsePivot converts a required pivotal date string, mapping absence or
// malformed input to a MissingDateError carrying the field name.
func parsePivot(field, s string) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, MissingDateErrorFmt("%s is required as YYYY-MM-DD", field)
	}
	return t, nil
}

// parseOptionalDate parses a date that may legitimately be absent.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
