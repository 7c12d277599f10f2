package moment

import (
	"fmt"
	"math"
	"time"
)

// SerialEpochOffset is the number of days between the spreadsheet epoch
// (1899-12-30) and the Unix epoch.
const SerialEpochOffset = 25569

// MaxSerial is the first serial past the last spreadsheet date, 9999-12-31.
const MaxSerial = 2958466

// FromSerial converts a spreadsheet serial date into a Moment. Serial values
// at or before the Unix epoch are reported as ErrBeforeEpoch and should be
// treated as missing; values from MaxSerial on return ErrOutOfRange.
func FromSerial(serial float64) (Moment, error) {
	if serial <= 0 || math.IsNaN(serial) || math.IsInf(serial, -1) {
		return Moment{}, ErrBeforeEpoch
	}
	if serial >= MaxSerial {
		return Moment{}, fmt.Errorf("%w: serial %g", ErrOutOfRange, serial)
	}
	days := serial - SerialEpochOffset
	secs := math.Round(days * SecondsPerDay)
	if secs < 0 {
		return Moment{}, ErrBeforeEpoch
	}
	return FromUnix(int64(secs))
}

// FormatSerial converts serial and renders it with zone z.
func FormatSerial(serial float64, z Zone) (string, error) {
	m, err := FromSerial(serial)
	if err != nil {
		return "", err
	}
	return m.Format(z), nil
}

// SerialFromUnix converts seconds since the Unix epoch into a serial date.
func SerialFromUnix(secs int64) float64 {
	return float64(secs)/SecondsPerDay + SerialEpochOffset
}

// Serial converts the wall-clock reading of t, in t's own location, into a
// serial date. Spreadsheet serials carry no offset, so the wall clock is
// what a cell would hold.
func Serial(t time.Time) float64 {
	_, offset := t.Zone()
	return SerialFromUnix(t.Unix() + int64(offset))
}
