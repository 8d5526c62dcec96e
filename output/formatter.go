package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/tabcat/frame"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a frame in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes every row of df, columns in frame order
	Format(df *frame.DataFrame) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Format names accepted by New
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// New returns the formatter registered under name, writing to w.
// "json" and "jsonl" both produce JSON Lines.
func New(name string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(name) {
	case FormatTable, "":
		return NewTableFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatJSON, FormatJSONL:
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, csv, json or jsonl)", name)
	}
}
