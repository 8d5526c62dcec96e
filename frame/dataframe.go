package frame

import (
	"fmt"
	"strings"
)

// DefaultPreviewRows is the row count used by Head and Tail callers that do
// not pick one
const DefaultPreviewRows = 5

// Presenter renders a block of rows for display. It receives the column names
// and every cell already rendered as text.
type Presenter interface {
	Present(columns []string, rows [][]string) error
}

// DataFrame is a table with named columns.
//
// A DataFrame is never modified after construction: every selection, filter
// or slice returns a new frame that owns a fresh copy of its cells.
type DataFrame struct {
	table   *Table
	columns []string
	index   map[string]int
}

// New wraps table with the given column names.
//
// The number of names must match the table's column count and names must be
// unique. The table is owned by the returned frame afterwards.
func New(columns []string, table *Table) (*DataFrame, error) {
	if table == nil {
		table = NewTable(len(columns))
	}
	if len(columns) != table.Columns() {
		return nil, fmt.Errorf("%w: %d column names for %d columns", ErrLengthMismatch, len(columns), table.Columns())
	}

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		index[name] = i
	}

	return &DataFrame{
		table:   table,
		columns: append([]string(nil), columns...),
		index:   index,
	}, nil
}

// Empty returns a frame with no columns and no rows
func Empty() *DataFrame {
	return &DataFrame{table: NewTable(0), index: map[string]int{}}
}

// Shape returns (rows, columns)
func (df *DataFrame) Shape() (int, int) {
	return df.table.Shape()
}

// Len returns the number of rows
func (df *DataFrame) Len() int {
	return df.table.Len()
}

// Columns returns a copy of the column names in order
func (df *DataFrame) Columns() []string {
	return append([]string(nil), df.columns...)
}

// HasColumn reports whether name is a column of the frame
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.index[name]
	return ok
}

// Kinds returns the resolved kind of every column
func (df *DataFrame) Kinds() []Kind {
	kinds := make([]Kind, len(df.columns))
	for r := 0; r < df.table.Len(); r++ {
		for c, v := range df.table.row(r) {
			kinds[c] = Widen(kinds[c], v.Kind())
		}
	}
	return kinds
}

// Row returns a copy of row i
func (df *DataFrame) Row(i int) (Row, error) {
	return df.table.Row(i)
}

// Rows returns a copy of every row
func (df *DataFrame) Rows() []Row {
	rows := make([]Row, df.table.Len())
	for i := range rows {
		rows[i] = NewRow(df.table.row(i)...)
	}
	return rows
}

// Cells returns every row rendered as text
func (df *DataFrame) Cells() [][]string {
	cells := make([][]string, df.table.Len())
	for i := range cells {
		row := df.table.row(i)
		rendered := make([]string, len(row))
		for j, v := range row {
			rendered[j] = v.String()
		}
		cells[i] = rendered
	}
	return cells
}

// Equal reports whether both frames have the same columns and cells
func (df *DataFrame) Equal(other *DataFrame) bool {
	if other == nil {
		return false
	}
	if len(df.columns) != len(other.columns) || df.table.Len() != other.table.Len() {
		return false
	}
	for i, name := range df.columns {
		if other.columns[i] != name {
			return false
		}
	}
	for i, v := range df.table.cells {
		if !v.Equal(other.table.cells[i]) {
			return false
		}
	}
	return true
}

// columnIndex resolves a column name
func (df *DataFrame) columnIndex(name string) (int, error) {
	i, ok := df.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q (available: %s)", ErrNameNotFound, name, strings.Join(df.columns, ", "))
	}
	return i, nil
}

// Column extracts the named column as a detached Series
func (df *DataFrame) Column(name string) (*Series, error) {
	c, err := df.columnIndex(name)
	if err != nil {
		return nil, err
	}

	values := make([]Value, df.table.Len())
	for r := range values {
		values[r] = df.table.cells[r*df.table.columns+c]
	}
	return &Series{values: values}, nil
}

// Select returns a frame restricted to the named columns, in the order given
func (df *DataFrame) Select(names ...string) (*DataFrame, error) {
	return df.SelectAs(names, names)
}

// SelectAs projects the columns named in from and labels them with the
// matching entries of to. An empty label keeps the source name. Labels are
// checked once, on the finished frame, so columns may swap names or appear
// twice under different labels.
func (df *DataFrame) SelectAs(from, to []string) (*DataFrame, error) {
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w: %d columns for %d names", ErrLengthMismatch, len(from), len(to))
	}

	cols := make([]int, len(from))
	labels := make([]string, len(from))
	for i, name := range from {
		c, err := df.columnIndex(name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
		labels[i] = name
		if to[i] != "" {
			labels[i] = to[i]
		}
	}
	return New(labels, df.table.project(df.allRows(), cols))
}

// Rename returns a copy of df with column from renamed to to
func (df *DataFrame) Rename(from, to string) (*DataFrame, error) {
	c, err := df.columnIndex(from)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(df.columns))
	labels[c] = to
	return df.SelectAs(df.Columns(), labels)
}

// Filter returns the rows where mask is true, in their original order
func (df *DataFrame) Filter(mask Mask) (*DataFrame, error) {
	if len(mask) != df.table.Len() {
		return nil, fmt.Errorf("%w: mask has %d entries for %d rows", ErrLengthMismatch, len(mask), df.table.Len())
	}
	return df.derive(mask.Indices(), df.allColumns())
}

// Take returns the rows at the given positions, in the order given.
// Positions may repeat.
func (df *DataFrame) Take(indices []int) (*DataFrame, error) {
	for _, i := range indices {
		if i < 0 || i >= df.table.Len() {
			return nil, fmt.Errorf("%w: row %d (frame has %d)", ErrIndexOutOfRange, i, df.table.Len())
		}
	}
	return df.derive(indices, df.allColumns())
}

// ILoc returns the rectangle spanning rows startRow..endRow and columns
// startCol..endCol, all bounds inclusive.
//
// A negative endRow selects through the last row. Empty column names default
// to the first and last column.
func (df *DataFrame) ILoc(startRow, endRow int, startCol, endCol string) (*DataFrame, error) {
	if len(df.columns) == 0 {
		return nil, fmt.Errorf("%w: frame has no columns", ErrInvalidRange)
	}
	if startCol == "" {
		startCol = df.columns[0]
	}
	if endCol == "" {
		endCol = df.columns[len(df.columns)-1]
	}

	first, err := df.columnIndex(startCol)
	if err != nil {
		return nil, err
	}
	last, err := df.columnIndex(endCol)
	if err != nil {
		return nil, err
	}
	if first > last {
		return nil, fmt.Errorf("%w: column %q comes after %q", ErrInvalidRange, startCol, endCol)
	}

	if endRow < 0 {
		endRow = df.table.Len() - 1
	}
	if startRow < 0 || endRow >= df.table.Len() {
		return nil, fmt.Errorf("%w: rows %d..%d (frame has %d)", ErrIndexOutOfRange, startRow, endRow, df.table.Len())
	}
	if startRow > endRow {
		return nil, fmt.Errorf("%w: start row %d after end row %d", ErrInvalidRange, startRow, endRow)
	}

	return df.derive(span(startRow, endRow), span(first, last))
}

// Head returns the first n rows, clamped to the frame length
func (df *DataFrame) Head(n int) *DataFrame {
	n = df.clamp(n)
	out, _ := df.derive(span(0, n-1), df.allColumns())
	return out
}

// Tail returns the last n rows, clamped to the frame length
func (df *DataFrame) Tail(n int) *DataFrame {
	n = df.clamp(n)
	rows := df.table.Len()
	out, _ := df.derive(span(rows-n, rows-1), df.allColumns())
	return out
}

// ShowHead renders the first n rows through p
func (df *DataFrame) ShowHead(p Presenter, n int) error {
	return df.Head(n).Show(p)
}

// ShowTail renders the last n rows through p
func (df *DataFrame) ShowTail(p Presenter, n int) error {
	return df.Tail(n).Show(p)
}

// Show renders the whole frame through p
func (df *DataFrame) Show(p Presenter) error {
	return p.Present(df.Columns(), df.Cells())
}

func (df *DataFrame) clamp(n int) int {
	if n < 0 {
		return 0
	}
	return min(n, df.table.Len())
}

// derive builds a new frame from validated row and column positions
func (df *DataFrame) derive(rows, cols []int) (*DataFrame, error) {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = df.columns[c]
	}
	return New(names, df.table.project(rows, cols))
}

func (df *DataFrame) allRows() []int {
	return span(0, df.table.Len()-1)
}

func (df *DataFrame) allColumns() []int {
	return span(0, len(df.columns)-1)
}

// span returns the positions from..to inclusive; empty when to < from
func span(from, to int) []int {
	if to < from {
		return []int{}
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
