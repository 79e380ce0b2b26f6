package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CompareIdentifiers orders two identifiers. Integer identifiers compare
// numerically and sort before non-integer ones, empty identifiers sort last,
// and everything else compares lexicographically.
func CompareIdentifiers(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// NormalizeKey returns the join form of an identifier: trimmed, and for
// numeric identifiers the canonical decimal text so that "101" and "101.0"
// match.
func NormalizeKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d.String()
	}
	return s
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
