// Package table holds the tabular model produced by the extractor: an ordered
// column header plus ordered rows of optional string cells.
package table

// Row maps column names to cell values. A column missing from the map is an
// absent cell, which is rendered empty.
type Row struct {
	cells map[string]string
}

// Get returns the cell for column and whether it is present.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.cells[column]
	return v, ok
}

// Len is the number of present cells.
func (r Row) Len() int {
	return len(r.cells)
}

// Table is a finalized, read-only table.
type Table struct {
	name    string
	columns []string
	rows    []Row
}

// Name is the table's display name, used as the sheet name.
func (t *Table) Name() string {
	return t.name
}

// Columns returns a copy of the header in discovery order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// NumColumns is len(Columns()) without the copy.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// NumRows is the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns the i-th data row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Values renders row i against the header: one string per column, with
// absent cells as "".
func (t *Table) Values(i int) []string {
	out := make([]string, len(t.columns))
	for j, col := range t.columns {
		out[j], _ = t.rows[i].Get(col)
	}
	return out
}

// Records renders every row as Values would.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.Values(i)
	}
	return out
}

// IsEmpty reports a table with neither header nor rows.
func (t *Table) IsEmpty() bool {
	return len(t.columns) == 0 && len(t.rows) == 0
}
