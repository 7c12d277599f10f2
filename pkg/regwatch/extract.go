package regwatch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/events"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/parser"
	"github.com/xuri/excelize/v2"
)

// Open opens a registry workbook, classifying failures as ErrFileNotFound
// or ErrInvalidFormat.
func Open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFormat, path, err)
	}
	return f, nil
}

// Extract returns the active purchase records of a registry workbook.
// An empty result means that no row is active.
func Extract(path string, opts Options) ([]models.Purchase, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ExtractFile(f, opts)
}

// ExtractFile extracts records from an already opened workbook. The sheet
// read is the one the status defined name refers to.
func ExtractFile(f *excelize.File, opts Options) ([]models.Purchase, error) {
	sink := opts.sink()

	ranges := parser.NamedRanges(f)
	cols, err := parser.ResolveColumns(ranges)
	if err != nil {
		return nil, NewExtractionError("", ComponentNamedRanges, err)
	}

	sheet, ok := parser.SheetOf(ranges, models.FieldStatus)
	if !ok || !cols.Resolved(models.FieldStatus) {
		return nil, NewExtractionError("", ComponentColumns, ErrStatusColumnMissing)
	}

	if missing := cols.Unresolved(); len(missing) > 0 {
		labels := fieldLabels(missing)
		if opts.ShouldFailOnMissingColumns() {
			return nil, NewExtractionError(sheet, ComponentColumns,
				fmt.Errorf("%w: %s", ErrUnresolvedColumns, strings.Join(labels, ", ")))
		}
		sink.Emit(events.Warn("unresolved columns").
			With("sheet", sheet).
			With("fields", labels))
	}

	records, err := parser.ExtractRecords(f, sheet, cols, opts.recordOptions(sheet))
	if err != nil {
		return nil, NewExtractionError(sheet, ComponentRecords, err)
	}

	sink.Emit(events.Debug("records extracted").
		With("sheet", sheet).
		With("columns", cols.Len()).
		With("records", len(records)))

	return records, nil
}

func fieldLabels(fields []models.Field) []string {
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label()
	}
	return labels
}
