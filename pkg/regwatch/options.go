// Package regwatch extracts active purchase records from a registry workbook.
package regwatch

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/events"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/moment"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/parser"
)

// MissingColumns selects what happens when a registry field has no defined name.
type MissingColumns string

const (
	// MissingColumnsWarn reports unresolved fields and extracts them as zero values.
	MissingColumnsWarn MissingColumns = "warn"
	// MissingColumnsFail aborts extraction with ErrUnresolvedColumns.
	MissingColumnsFail MissingColumns = "fail"
)

// ParseMissingColumns parses "warn" or "fail". Empty input yields MissingColumnsWarn.
func ParseMissingColumns(s string) (MissingColumns, error) {
	switch MissingColumns(strings.ToLower(strings.TrimSpace(s))) {
	case "", MissingColumnsWarn:
		return MissingColumnsWarn, nil
	case MissingColumnsFail:
		return MissingColumnsFail, nil
	default:
		return "", fmt.Errorf("invalid missing columns policy %q (must be warn or fail)", s)
	}
}

// Options configures extraction behavior.
type Options struct {
	// Zone is the offset written on every timestamp.
	Zone moment.Zone
	// Combine decides how separate time cells join their date cells.
	Combine moment.CombinePolicy
	// LookbackDays drops rows whose bidding date is older than this many
	// days. Zero disables the filter.
	LookbackDays int
	// MaxRows overrides the row limit when positive.
	MaxRows int
	// MissingColumns selects the policy for fields without a defined name.
	MissingColumns MissingColumns
	// Now returns the current time. If nil, time.Now is used.
	Now func() time.Time
	// Sink receives extraction events. If nil, events are discarded.
	Sink events.Sink
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Zone:           moment.UTC,
		Combine:        moment.CombineSum,
		LookbackDays:   parser.DefaultLookbackDays,
		MissingColumns: MissingColumnsWarn,
	}
}

// ShouldFailOnMissingColumns returns whether unresolved fields abort extraction.
func (o Options) ShouldFailOnMissingColumns() bool {
	return o.MissingColumns == MissingColumnsFail
}

// ShouldFilterRecent returns whether the look-back window applies.
func (o Options) ShouldFilterRecent() bool {
	return o.LookbackDays > 0
}

func (o Options) sink() events.Sink {
	if o.Sink == nil {
		return events.Discard
	}
	return o.Sink
}

// today returns the current date in the configured zone as a whole serial day.
func (o Options) today() float64 {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return math.Floor(moment.Serial(now().In(o.Zone.Location())))
}

func (o Options) recordOptions(sheet string) parser.RecordOptions {
	combine := o.Combine
	if combine == "" {
		combine = moment.CombineSum
	}
	sink := o.sink()

	ro := parser.RecordOptions{
		Zone:    o.Zone,
		Combine: combine,
		MaxRows: o.MaxRows,
		Warn: func(row int, msg string) {
			sink.Emit(events.Warn(msg).With("sheet", sheet).With("row", row))
		},
	}
	if o.ShouldFilterRecent() {
		ro.LookbackDays = o.LookbackDays
		ro.Today = o.today()
	}
	return ro
}
