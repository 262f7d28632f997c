package types

import (
	"encoding/json"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing date strings. Resumes and
// scraped profiles rarely agree on a format.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"Jan 2006",
	"January 2006",
	"01/2006",
	"2006",
}

// Date is a calendar date with lenient parsing. A zero Date means the value
// was missing or could not be parsed; unparseable input is never an error.
type Date struct {
	time.Time
}

// ParseDate parses a date string using a set of common resume formats.
// Returns a zero Date for empty or unparseable input.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "present") || strings.EqualFold(s, "current") {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}
		}
	}
	return Date{}
}

// IsAbsent reports whether the date is missing.
func (d Date) IsAbsent() bool {
	return d.IsZero()
}

// MarshalJSON renders the date as "YYYY-MM-DD", or null when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsAbsent() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON accepts null or a date string in any supported layout.
// Malformed dates decode to an absent Date rather than failing.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = Date{}
		return nil
	}
	*d = ParseDate(s)
	return nil
}
