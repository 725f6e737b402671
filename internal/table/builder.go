package table

// Builder accumulates columns and rows for one table. Columns keep first-seen
// order and are unique by exact name; rows keep insertion order. A Builder is
// owned by a single goroutine.
type Builder struct {
	name    string
	columns []string
	index   map[string]int
	rows    []Row
}

// NewBuilder starts an empty table named name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:  name,
		index: make(map[string]int),
	}
}

// AddColumn appends column unless it is already present. It reports whether
// the column was new.
func (b *Builder) AddColumn(column string) bool {
	if _, ok := b.index[column]; ok {
		return false
	}
	b.index[column] = len(b.columns)
	b.columns = append(b.columns, column)
	return true
}

// HasColumn reports whether column has been added.
func (b *Builder) HasColumn(column string) bool {
	_, ok := b.index[column]
	return ok
}

// Columns returns a copy of the columns added so far.
func (b *Builder) Columns() []string {
	out := make([]string, len(b.columns))
	copy(out, b.columns)
	return out
}

// AddRow appends a row. Keys that are not known columns are dropped so every
// row always fits the header.
func (b *Builder) AddRow(cells map[string]string) {
	row := Row{cells: make(map[string]string, len(cells))}
	for k, v := range cells {
		if b.HasColumn(k) {
			row.cells[k] = v
		}
	}
	b.rows = append(b.rows, row)
}

// Build returns the finalized table. Later changes to the builder do not
// affect tables already built.
func (b *Builder) Build() *Table {
	t := &Table{
		name:    b.name,
		columns: make([]string, len(b.columns)),
		rows:    make([]Row, len(b.rows)),
	}
	copy(t.columns, b.columns)
	copy(t.rows, b.rows)
	return t
}
