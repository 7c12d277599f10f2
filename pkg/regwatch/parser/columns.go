package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
)

// TotalColumns is the maximum number of columns in a worksheet.
const TotalColumns = excelize.MaxColumns

// ErrInvalidColumnName indicates a column reference that is empty, not
// alphabetic, or beyond TotalColumns.
var ErrInvalidColumnName = errors.New("invalid column name")

// ColumnIndex converts a column reference such as "A", "$AB" or "$C$2" into
// a zero-based column index.
func ColumnIndex(token string) (int, error) {
	name := strings.ReplaceAll(token, "$", "")
	name = strings.TrimRight(name, "0123456789")
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidColumnName, token, err)
	}
	return n - 1, nil
}

// leftColumn returns the column part of the first cell of a range:
// "$B:$B" -> "$B", "$C$2:$C$90" -> "$C$2".
func leftColumn(rng string) string {
	if idx := strings.Index(rng, ":"); idx >= 0 {
		return rng[:idx]
	}
	return rng
}

// ResolveColumns maps each named range to the index of its left column.
// A malformed column reference is an error; fields without a named range
// stay unresolved in the returned map.
func ResolveColumns(ranges []models.NamedRange) (models.ColumnMap, error) {
	var cols models.ColumnMap
	for _, nr := range ranges {
		col, err := ColumnIndex(leftColumn(nr.Range))
		if err != nil {
			return models.ColumnMap{}, fmt.Errorf("defined name %q (%s): %w", nr.Name, nr.Range, err)
		}
		cols.Set(nr.Field, col)
	}
	return cols, nil
}
