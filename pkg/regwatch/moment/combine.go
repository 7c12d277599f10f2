package moment

import (
	"fmt"
	"math"
	"strings"
)

// CombinePolicy decides how a separate time-of-day cell joins its date cell.
type CombinePolicy string

const (
	// CombineSum adds a time-only value onto the date. A time cell that is
	// not smaller than the date is taken to carry the full date-time.
	CombineSum CombinePolicy = "sum"
	// CombineReplace keeps the whole day of the date cell and replaces its
	// time of day with the fractional part of the time cell.
	CombineReplace CombinePolicy = "replace"
)

// ParseCombinePolicy parses "sum" or "replace". Empty input yields CombineSum.
func ParseCombinePolicy(s string) (CombinePolicy, error) {
	switch CombinePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CombineSum:
		return CombineSum, nil
	case CombineReplace:
		return CombineReplace, nil
	default:
		return "", fmt.Errorf("moment: invalid combine policy %q (must be sum or replace)", s)
	}
}

// Combine joins a date serial with a time serial according to policy.
// A non-positive clock leaves the date untouched.
func Combine(date, clock float64, policy CombinePolicy) float64 {
	if clock <= 0 {
		return date
	}
	switch policy {
	case CombineReplace:
		_, frac := math.Modf(clock)
		return math.Floor(date) + frac
	default:
		if clock < date {
			return date + clock
		}
		return clock
	}
}
