// Package reader loads delimited text and parquet files into frames.
//
// # Delimited Text
//
// LoadCSV reads a file in two passes. The first pass splits every line,
// honouring double-quoted fields that contain the delimiter, and resolves
// one kind per column from all of its tokens (Integer < Float < Text). The
// second pass converts the cached tokens into that kind, so a column never
// mixes kinds. Empty fields are Missing.
//
//	df, err := reader.LoadCSV("data.csv",
//	    reader.WithDelimiter(';'),
//	    reader.WithHeaderLine(1),
//	)
//
// Supply the names instead of reading them from the file:
//
//	df, err := reader.LoadCSV("data.csv", reader.WithNames("id", "name"))
//
// # Compressed Inputs
//
// Files ending in .gz, .zst, .br or .lz4 are decompressed while reading.
//
// # Parquet
//
// LoadParquet reads one file or a glob pattern:
//
//	df, err := reader.LoadParquet("logs/*.parquet")
//
// # Unavailable Inputs
//
// When an input cannot be opened the loaders log a warning through
// log/slog and return an empty frame with a nil error. Content errors, such
// as a row with the wrong number of fields, are returned to the caller.
package reader
