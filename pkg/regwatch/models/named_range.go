package models

import "sort"

// NamedRange is a whitelisted workbook defined name.
type NamedRange struct {
	// Name is the defined name as written in the workbook.
	Name string `json:"name"`
	// Field is the business field the name is bound to.
	Field Field `json:"field"`
	// Sheet is the worksheet the name refers to.
	Sheet string `json:"sheet"`
	// Range is the cell range without the sheet prefix (e.g. $B:$B).
	Range string `json:"range"`
}

// ColumnMap maps fields to zero-based worksheet column indexes.
// Fields without a defined name stay unresolved.
type ColumnMap struct {
	cols map[Field]int
}

// Set binds field f to column col.
func (m *ColumnMap) Set(f Field, col int) {
	if m.cols == nil {
		m.cols = make(map[Field]int, fieldCount)
	}
	m.cols[f] = col
}

// Column returns the column index of f and whether f is resolved.
func (m ColumnMap) Column(f Field) (int, bool) {
	col, ok := m.cols[f]
	return col, ok
}

// Resolved reports whether f has a column.
func (m ColumnMap) Resolved(f Field) bool {
	_, ok := m.cols[f]
	return ok
}

// Unresolved returns the fields without a column, in declaration order.
func (m ColumnMap) Unresolved() []Field {
	var missing []Field
	for _, f := range AllFields() {
		if !m.Resolved(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Len returns the number of resolved fields.
func (m ColumnMap) Len() int {
	return len(m.cols)
}

// MaxColumn returns the largest resolved column index, or -1 if none.
func (m ColumnMap) MaxColumn() int {
	highest := -1
	for _, col := range m.cols {
		if col > highest {
			highest = col
		}
	}
	return highest
}

// Fields returns the resolved fields in declaration order.
func (m ColumnMap) Fields() []Field {
	fields := make([]Field, 0, len(m.cols))
	for f := range m.cols {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
