// Package parser resolves registry columns from workbook defined names and
// reads purchase records from the worksheet they point to.
package parser

import (
	"strings"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
	"github.com/xuri/excelize/v2"
)

// NamedRanges returns the whitelisted defined names of a workbook.
func NamedRanges(f *excelize.File) []models.NamedRange {
	return FilterNamedRanges(f.GetDefinedName())
}

// FilterNamedRanges keeps only defined names bound to a registry field.
// When a name is defined more than once (e.g. with sheet scope), the first
// definition wins.
func FilterNamedRanges(defs []excelize.DefinedName) []models.NamedRange {
	var result []models.NamedRange
	seen := make(map[models.Field]bool)

	for _, dn := range defs {
		field, ok := models.FieldByLabel(dn.Name)
		if !ok || seen[field] {
			continue
		}
		seen[field] = true

		sheet, rng := parseReference(dn.RefersTo)
		result = append(result, models.NamedRange{
			Name:  dn.Name,
			Field: field,
			Sheet: sheet,
			Range: rng,
		})
	}

	return result
}

// SheetOf returns the sheet that field's defined name refers to.
func SheetOf(ranges []models.NamedRange, field models.Field) (string, bool) {
	for _, nr := range ranges {
		if nr.Field == field && nr.Sheet != "" {
			return nr.Sheet, true
		}
	}
	return "", false
}

// parseReference splits a reference like 'Реестр 2021'!$B:$B into the
// sheet name and the range. Only the first area of a multi-area reference
// is kept.
func parseReference(ref string) (string, string) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")

	var sheet string
	if strings.HasPrefix(ref, "'") {
		end := closingQuote(ref)
		if end < 0 || end+1 >= len(ref) || ref[end+1] != '!' {
			return "", firstArea(ref)
		}
		sheet = strings.ReplaceAll(ref[1:end], "''", "'")
		ref = ref[end+2:]
	} else {
		idx := strings.Index(ref, "!")
		if idx < 0 {
			return "", firstArea(ref)
		}
		sheet = ref[:idx]
		ref = ref[idx+1:]
	}

	return sheet, firstArea(ref)
}

// closingQuote returns the index of the quote ending a quoted sheet name,
// skipping doubled quotes, or -1.
func closingQuote(ref string) int {
	for i := 1; i < len(ref); i++ {
		if ref[i] != '\'' {
			continue
		}
		if i+1 < len(ref) && ref[i+1] == '\'' {
			i++
			continue
		}
		return i
	}
	return -1
}

func firstArea(rng string) string {
	if idx := strings.Index(rng, ","); idx >= 0 {
		return rng[:idx]
	}
	return rng
}
