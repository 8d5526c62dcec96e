package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/tabcat/frame"
)

// CSVFormatter outputs frames as delimited text with a header row
type CSVFormatter struct {
	writer io.Writer
	comma  rune
}

// NewCSVFormatter creates a new CSV formatter using a comma delimiter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w, comma: ','}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// SetDelimiter changes the field delimiter
func (c *CSVFormatter) SetDelimiter(r rune) {
	c.comma = r
}

// Format writes the header and every row of df. Missing values are empty
// fields.
func (c *CSVFormatter) Format(df *frame.DataFrame) error {
	csvWriter := csv.NewWriter(c.writer)
	csvWriter.Comma = c.comma

	columns := df.Columns()
	if len(columns) > 0 {
		if err := csvWriter.Write(columns); err != nil {
			return err
		}
	}

	for _, row := range df.Rows() {
		values := row.Values()
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// formatValue renders a value for CSV output. Text that a spreadsheet would
// treat as a formula is prefixed with a single quote.
func formatValue(v frame.Value) string {
	s, ok := v.Text()
	if !ok {
		return v.String()
	}
	if len(s) > 0 {
		switch s[0] {
		case '=', '+', '-', '@', '\t', '\r', '\n', '|':
			return "'" + strings.ReplaceAll(s, "'", "''")
		}
	}
	return s
}
