package isatab

import (
	"fmt"
	"sort"
)

// Table is an ordered-column table: column names in declaration order,
// cells as one slice per column. Every column always holds the same
// number of cells; ops that would break that invariant backfill with
// empty strings.
type Table struct {
	columns []string
	cells   map[string][]string
}

// NewTable creates an empty table with the given initial columns.
func NewTable(columns ...string) *Table {
	t := &Table{cells: make(map[string][]string)}
	for _, c := range columns {
		t.EnsureColumn(c)
	}
	return t
}

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cells[name]
	return ok
}

// EnsureColumn creates the column if absent, backfilled with empty
// cells so existing rows stay rectangular. Returns true if created.
func (t *Table) EnsureColumn(name string) bool {
	if _, ok := t.cells[name]; ok {
		return false
	}
	t.columns = append(t.columns, name)
	t.cells[name] = make([]string, t.RowCount())
	return true
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.cells[t.columns[0]])
}

// AppendRow adds one row from column name to value. Columns named in
// the row are created on first use (in sorted order, so output stays
// deterministic); columns absent from the row get an empty cell.
func (t *Table) AppendRow(row map[string]string) int {
	n := t.RowCount()
	for _, c := range t.columns {
		t.cells[c] = append(t.cells[c], row[c])
	}
	var created []string
	for c := range row {
		if !t.HasColumn(c) {
			created = append(created, c)
		}
	}
	sort.Strings(created)
	for _, c := range created {
		t.columns = append(t.columns, c)
		col := make([]string, n+1)
		col[n] = row[c]
		t.cells[c] = col
	}
	return n
}

// Set writes a cell. The column is created on first use.
func (t *Table) Set(column string, row int, value string) error {
	t.EnsureColumn(column)
	if row < 0 || row >= t.RowCount() {
		return fmt.Errorf("row %d out of range (table has %d rows)", row, t.RowCount())
	}
	t.cells[column][row] = value
	return nil
}

// Value reads a cell; missing column or out-of-range row yields "".
func (t *Table) Value(column string, row int) string {
	col, ok := t.cells[column]
	if !ok || row < 0 || row >= len(col) {
		return ""
	}
	return col[row]
}

// Column returns a copy of a column's cells, or nil if absent.
func (t *Table) Column(name string) []string {
	col, ok := t.cells[name]
	if !ok {
		return nil
	}
	out := make([]string, len(col))
	copy(out, col)
	return out
}

// FindRow returns the index of the first row whose cell in the given
// column equals value, or -1.
func (t *Table) FindRow(column, value string) int {
	for i, v := range t.cells[column] {
		if v == value {
			return i
		}
	}
	return -1
}
