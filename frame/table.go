package frame

import "fmt"

// Row is an owned, fixed-length sequence of values.
type Row struct {
	values []Value
}

// NewRow returns a row holding a copy of values
func NewRow(values ...Value) Row {
	return Row{values: append([]Value(nil), values...)}
}

// Len returns the number of values in the row
func (r Row) Len() int {
	return len(r.values)
}

// At returns the value at position i
func (r Row) At(i int) (Value, error) {
	if i < 0 || i >= len(r.values) {
		return Missing(), fmt.Errorf("%w: column %d (row has %d)", ErrIndexOutOfRange, i, len(r.values))
	}
	return r.values[i], nil
}

// Values returns a copy of the row's values
func (r Row) Values() []Value {
	return append([]Value(nil), r.values...)
}

// Strings renders every value of the row
func (r Row) Strings() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = v.String()
	}
	return out
}

// Table stores rows of a fixed width in one contiguous cell slice.
//
// Row i occupies cells[i*columns : (i+1)*columns]. Tables only grow by
// appending complete rows.
type Table struct {
	columns int
	rows    int
	cells   []Value
}

// NewTable creates an empty table whose rows must have exactly columns values
func NewTable(columns int) *Table {
	if columns < 0 {
		columns = 0
	}
	return &Table{columns: columns}
}

// Append adds a row to the table.
//
// A row whose width differs from the table's column count is rejected with
// ErrLengthMismatch and the table is left unchanged.
func (t *Table) Append(row Row) error {
	if row.Len() != t.columns {
		return fmt.Errorf("%w: expected %d columns, found %d", ErrLengthMismatch, t.columns, row.Len())
	}
	t.cells = append(t.cells, row.values...)
	t.rows++
	return nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	return t.rows
}

// Columns returns the fixed column count
func (t *Table) Columns() int {
	return t.columns
}

// Shape returns (rows, columns)
func (t *Table) Shape() (int, int) {
	return t.rows, t.columns
}

// Row returns a copy of row i
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= t.rows {
		return Row{}, fmt.Errorf("%w: row %d (table has %d)", ErrIndexOutOfRange, i, t.rows)
	}
	return NewRow(t.row(i)...), nil
}

// At returns the cell at (row, col)
func (t *Table) At(row, col int) (Value, error) {
	if row < 0 || row >= t.rows {
		return Missing(), fmt.Errorf("%w: row %d (table has %d)", ErrIndexOutOfRange, row, t.rows)
	}
	if col < 0 || col >= t.columns {
		return Missing(), fmt.Errorf("%w: column %d (table has %d)", ErrIndexOutOfRange, col, t.columns)
	}
	return t.cells[row*t.columns+col], nil
}

// row returns the backing cells of row i without copying
func (t *Table) row(i int) []Value {
	return t.cells[i*t.columns : (i+1)*t.columns]
}

// project builds a new table from the given row and column positions.
// Positions must already be validated by the caller.
func (t *Table) project(rows, cols []int) *Table {
	out := &Table{
		columns: len(cols),
		rows:    len(rows),
		cells:   make([]Value, 0, len(rows)*len(cols)),
	}
	for _, r := range rows {
		src := t.row(r)
		for _, c := range cols {
			out.cells = append(out.cells, src[c])
		}
	}
	return out
}
