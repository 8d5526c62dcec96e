// Package output writes frames in human and machine readable formats.
//
// Every formatter satisfies the Formatter interface and keeps the frame's
// column order.
//
// # Supported Formats
//
//   - table: bordered text grid, one line per row (also a frame.Presenter)
//   - csv: delimited text with a header row
//   - json / jsonl: JSON Lines, one object per row
//
// # Basic Usage
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(df); err != nil {
//	    log.Fatal(err)
//	}
//
// Previewing the first rows of a frame through the grid formatter:
//
//	df.ShowHead(output.NewTableFormatter(os.Stdout), frame.DefaultPreviewRows)
//
// # Missing Values
//
// Missing values are empty cells in table and CSV output and null in JSON.
package output
