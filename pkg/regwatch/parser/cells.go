package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/xuri/nfp"
)

type cellKind int

const (
	kindEmpty cellKind = iota
	kindText
	kindNumber
	kindDate
	kindOther
)

// dateNumFmts lists built-in number format ids that render dates or times,
// including the East Asian locale variants.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// cellReader classifies the cells of one worksheet. Style lookups are
// cached per style index.
type cellReader struct {
	f          *excelize.File
	sheet      string
	dateStyles map[int]bool
}

func newCellReader(f *excelize.File, sheet string) *cellReader {
	return &cellReader{
		f:          f,
		sheet:      sheet,
		dateStyles: make(map[int]bool),
	}
}

// cellAt returns the raw value at a zero-based column, or "" past the end
// of a short row.
func cellAt(cells []string, col int) string {
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}

// classify determines the kind of the cell at (col, row), where col is
// zero-based and row is one-based, and returns its raw value.
func (r *cellReader) classify(cells []string, col, row int) (cellKind, string, error) {
	raw := cellAt(cells, col)
	if raw == "" {
		return kindEmpty, "", nil
	}

	name, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return kindOther, raw, err
	}

	typ, err := r.f.GetCellType(r.sheet, name)
	if err != nil {
		return kindOther, raw, err
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return kindText, raw, nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return kindOther, raw, nil
		}
		isDate, err := r.isDateCell(name)
		if err != nil {
			return kindOther, raw, err
		}
		if isDate {
			return kindDate, raw, nil
		}
		return kindNumber, raw, nil
	default:
		return kindOther, raw, nil
	}
}

func (r *cellReader) isDateCell(name string) (bool, error) {
	idx, err := r.f.GetCellStyle(r.sheet, name)
	if err != nil {
		return false, err
	}
	if isDate, ok := r.dateStyles[idx]; ok {
		return isDate, nil
	}

	isDate := false
	if style, err := r.f.GetStyle(idx); err == nil && style != nil {
		isDate = dateNumFmts[style.NumFmt]
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	r.dateStyles[idx] = isDate
	return isDate, nil
}

// isDateFormatCode reports whether a custom number format renders a date or
// time in any of its sections, elapsed-time codes such as [h] included.
func isDateFormatCode(code string) bool {
	p := nfp.NumberFormatParser()
	for _, section := range p.Parse(code) {
		for _, token := range section.Items {
			switch token.TType {
			case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
				return true
			}
		}
	}
	return false
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
