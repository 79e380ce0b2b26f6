package utils

import (
	"strings"
	"time"
)

// Day-first layouts come before month-first ones so that an ambiguous value
// such as 03/04/2024 resolves to 3 April.
var mixedDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"02/01/06",
	"2 Jan 2006",
	"02 Jan 2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006",
}

// ParseMixedDate parses a date written in any of the supported layouts,
// preferring day-first interpretations. The boolean is false when the value
// is empty or matches no layout.
func ParseMixedDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range mixedDateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// TruncateToDate drops the clock part of t, keeping its location.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
