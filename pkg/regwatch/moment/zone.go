package moment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Zone is the fixed offset label appended to formatted timestamps.
// The zero value renders as "+00:00".
type Zone struct {
	minutes    int
	designator bool
}

// UTC renders with the "Z" designator.
var UTC = Zone{designator: true}

// FixedZone returns a zone offset from UTC by the given number of minutes.
func FixedZone(minutes int) Zone {
	return Zone{minutes: minutes}
}

// ParseZone accepts "Z", "UTC", "+HH:MM", "-HH:MM" and "+HHMM".
func ParseZone(s string) (Zone, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "Z", "UTC":
		return UTC, nil
	case "":
		return Zone{}, fmt.Errorf("moment: empty zone")
	}

	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return Zone{}, fmt.Errorf("moment: invalid zone %q", s)
	}

	digits := strings.ReplaceAll(s[1:], ":", "")
	if len(digits) != 4 {
		return Zone{}, fmt.Errorf("moment: invalid zone %q", s)
	}
	hh, err := strconv.Atoi(digits[:2])
	if err != nil {
		return Zone{}, fmt.Errorf("moment: invalid zone %q: %w", s, err)
	}
	mm, err := strconv.Atoi(digits[2:])
	if err != nil {
		return Zone{}, fmt.Errorf("moment: invalid zone %q: %w", s, err)
	}
	if hh > 14 || mm > 59 {
		return Zone{}, fmt.Errorf("moment: zone %q out of range", s)
	}
	return FixedZone(sign * (hh*60 + mm)), nil
}

// String returns "Z" for the UTC designator, otherwise "±HH:MM".
func (z Zone) String() string {
	if z.designator {
		return "Z"
	}
	sign := '+'
	m := z.minutes
	if m < 0 {
		sign = '-'
		m = -m
	}
	return fmt.Sprintf("%c%02d:%02d", sign, m/60, m%60)
}

// Offset returns the zone offset from UTC.
func (z Zone) Offset() time.Duration {
	return time.Duration(z.minutes) * time.Minute
}

// Location returns a fixed time.Location for the zone.
func (z Zone) Location() *time.Location {
	return time.FixedZone(z.String(), z.minutes*60)
}
