package utils

import (
	"strconv"
	"strings"
	"time"
)

// Epoch is the sentinel returned by ParseSheetDate for any value that cannot
// be parsed as a calendar date. Callers must compare against it explicitly;
// there is no separate error channel because sheet cells are hand-edited and
// must never block a data load.
var Epoch = time.Unix(0, 0).UTC()

var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// genericLayouts are tried as a last resort before giving up on a cell,
// mirroring what a free-form date constructor would still accept.
var genericLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseSheetDate parses a spreadsheet date cell written in either MM/DD/YYYY
// or DD-Mon-YYYY (e.g. "12-Nov-2025"). The sheet is hand-edited in one format
// and machine-written in the other, so both must round-trip to the same
// calendar date. Invalid input yields Epoch.
func ParseSheetDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return Epoch
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == '-' || r == '/'
	})
	if len(parts) == 3 {
		if t, ok := parseThreePart(parts); ok {
			return t
		}
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return Epoch
}

// parseThreePart handles the two supported explicit formats. A non-numeric
// middle part selects DD-Mon-YYYY, otherwise MM/DD/YYYY.
func parseThreePart(parts []string) (time.Time, bool) {
	var day, year int
	var month time.Month

	if _, err := strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		// DD-Mon-YYYY
		d, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return time.Time{}, false
		}
		name := strings.ToLower(strings.TrimSpace(parts[1]))
		if len(name) > 3 {
			name = name[:3]
		}
		m, ok := monthAbbrevs[name]
		if !ok {
			return time.Time{}, false
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return time.Time{}, false
		}
		day, month, year = d, m, y
	} else {
		// MM/DD/YYYY
		m, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return time.Time{}, false
		}
		d, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return time.Time{}, false
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return time.Time{}, false
		}
		day, month, year = d, time.Month(m), y
	}

	if day < 1 || day > 31 || month < time.January || month > time.December || year <= 1900 {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject dates that normalize away, e.g. Feb 30 rolling into March.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// IsValidDate reports whether t is a real parsed date rather than the
// invalid-cell sentinel or an unset zero value.
func IsValidDate(t time.Time) bool {
	return !t.IsZero() && !t.Equal(Epoch)
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Today truncates an instant to midnight UTC.
func Today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SheetDate formats a date the way machine-written cells are stored.
func SheetDate(t time.Time) string {
	return t.Format("02-Jan-2006")
}
