package regwatch

import (
	"errors"
	"fmt"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/output"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrUnresolvedColumns indicates registry fields without a defined name
// under the fail policy.
var ErrUnresolvedColumns = errors.New("unresolved columns")

// ErrInvalidColumnName indicates a defined name with a malformed column reference.
var ErrInvalidColumnName = parser.ErrInvalidColumnName

// ErrStatusColumnMissing indicates that the status field has no defined name.
var ErrStatusColumnMissing = parser.ErrStatusColumnMissing

// ErrSerialization indicates a JSON encoding or decoding failure.
var ErrSerialization = output.ErrSerialization

// Extraction components reported by ExtractionError.
const (
	ComponentNamedRanges = "named_ranges"
	ComponentColumns     = "columns"
	ComponentRecords     = "records"
)

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "named_ranges", "columns", "records"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
