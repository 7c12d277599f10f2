// Package moment converts Unix seconds and spreadsheet serial dates into
// civil date-time values.
//
// The leap-year rule is the four-year cycle counted from 1969, which agrees
// with the Gregorian calendar between 1970 and 2099 only.
package moment

import (
	"errors"
	"fmt"
)

const (
	// SecondsPerDay is the number of seconds in a civil day.
	SecondsPerDay = 86400
	// secondsPerYear is the length of a 365-day year.
	secondsPerYear = 31536000
	epochYear      = 1970
)

// ErrBeforeEpoch indicates a value that precedes 1970-01-01T00:00:00.
var ErrBeforeEpoch = errors.New("moment: value is before the unix epoch")

// ErrOutOfRange indicates a value past the last representable date or a
// day of year that no month can hold.
var ErrOutOfRange = errors.New("moment: day of year out of range")

// Moment is a civil date-time without an attached offset.
type Moment struct {
	Year       int
	Month      int
	Day        int
	Hour       int
	Minute     int
	Second     int
	IsLeapYear bool
}

// monthEnds holds the cumulative day count at the end of each month
// of a 365-day year.
var monthEnds = [12]int{31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// FromUnix decomposes seconds since the Unix epoch into a Moment.
func FromUnix(secs int64) (Moment, error) {
	if secs < 0 {
		return Moment{}, ErrBeforeEpoch
	}

	y := year(secs)
	leaps := extraDays(y)
	leap := IsLeapYear(int(y))

	days := secs / SecondsPerDay
	doy := dayOfYear(y, days, leaps)

	inDay := secs - days*SecondsPerDay
	hours := inDay / 3600
	minutes := (inDay - hours*3600) / 60
	seconds := inDay - hours*3600 - minutes*60

	day, month, ok := dayAndMonth(doy, leap)
	if !ok {
		return Moment{}, fmt.Errorf("%w: day %d of %d", ErrOutOfRange, doy, y)
	}

	return Moment{
		Year:       int(y),
		Month:      month,
		Day:        day,
		Hour:       int(hours),
		Minute:     int(minutes),
		Second:     int(seconds),
		IsLeapYear: leap,
	}, nil
}

// IsLeapYear reports whether year is a leap year under the 1969-anchored
// four-year cycle: 1972, 1976, ... 2020, 2024.
func IsLeapYear(year int) bool {
	return (year-1969)%4 == 3
}

// Format renders m as YYYY-MM-DDTHH:MM:SS followed by the zone designator.
func (m Moment) Format(z Zone) string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d%s",
		m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second, z)
}

// year estimates the year by average year length, then corrects for the
// leap days accumulated since the epoch.
func year(secs int64) int64 {
	ext := extraDays(secs/secondsPerYear + epochYear)
	return (secs-ext*SecondsPerDay)/secondsPerYear + epochYear
}

// extraDays counts the leap days in the years before year.
func extraDays(year int64) int64 {
	return (year - 1969) / 4
}

// dayOfYear returns the 1-based day within year.
func dayOfYear(year, daysSinceEpoch, leaps int64) int {
	before := (year-epochYear-leaps)*365 + leaps*366
	return int(daysSinceEpoch - before + 1)
}

// dayAndMonth maps a 1-based day of year to a day of month and month.
func dayAndMonth(doy int, leap bool) (day, month int, ok bool) {
	if doy < 1 {
		return 0, 0, false
	}
	shift := 0
	prev := 0
	for i, end := range monthEnds {
		if leap && i >= 1 {
			shift = 1
		}
		if doy <= end+shift {
			return doy - prev, i + 1, true
		}
		prev = end + shift
	}
	return 0, 0, false
}
