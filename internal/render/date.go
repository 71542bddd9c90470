package render

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultDateLayout renders like "Mon, Jan 2".
const DefaultDateLayout = "Mon, Jan 2"

// ErrInvalidDate is returned when a date string matches no accepted layout.
var ErrInvalidDate = errors.New("invalid date")

var dateInputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps and ISO dates with or without a time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatDate parses s and formats it with layout. An empty layout uses
// DefaultDateLayout.
func FormatDate(s, layout string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout), nil
}
