package output

import (
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/tabcat/frame"
)

// ellipsis marks a truncated cell
const ellipsis = "…"

// TableFormatter renders frames as a bordered text grid.
//
// It also implements frame.Presenter, so it can back DataFrame.Show,
// ShowHead and ShowTail directly.
type TableFormatter struct {
	writer   io.Writer
	maxWidth int
}

// NewTableFormatter creates a grid formatter writing to w
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// SetMaxWidth truncates cells wider than n display columns. Zero or less
// disables truncation.
func (t *TableFormatter) SetMaxWidth(n int) {
	t.maxWidth = n
}

// Format writes df as a grid. Missing values render as empty cells.
func (t *TableFormatter) Format(df *frame.DataFrame) error {
	return df.Show(t)
}

// Present writes a header row followed by rows
func (t *TableFormatter) Present(columns []string, rows [][]string) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(t.fit(columns))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	fitted := make([][]string, len(rows))
	for i, row := range rows {
		fitted[i] = t.fit(row)
	}
	table.AppendBulk(fitted)
	table.Render()
	return nil
}

// fit truncates each cell to the configured width
func (t *TableFormatter) fit(cells []string) []string {
	if t.maxWidth <= 0 {
		return cells
	}
	out := make([]string, len(cells))
	for i, c := range cells {
		if runewidth.StringWidth(c) > t.maxWidth {
			c = runewidth.Truncate(c, t.maxWidth, ellipsis)
		}
		out[i] = c
	}
	return out
}
