package reader

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/tabcat/frame"
)

// FileColumn is the column added to rows read through a glob pattern,
// holding the path each row came from
const FileColumn = "_file"

// Reader reads parquet files and returns rows as maps.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error
// wrapping ErrUnavailable if the file cannot be opened.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: failed to stat file: %w", ErrUnavailable, err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads all rows from the parquet file into memory.
//
// Each row is returned as a map where keys are column names and values are
// the column values.
func (r *Reader) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// ColumnNames returns the top-level field names in schema order
func (r *Reader) ColumnNames() []string {
	fields := r.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	return names
}

// Frame reads every row into a DataFrame. Column kinds are resolved over all
// rows the same way CSV columns are.
func (r *Reader) Frame() (*frame.DataFrame, error) {
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return FromRecords(r.ColumnNames(), rows)
}

// Close closes the parquet reader and releases associated resources.
//
// It is safe to call Close multiple times.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// LoadParquet loads a parquet file, or every file matching a glob pattern,
// into a DataFrame.
//
// Inputs that cannot be opened follow the LoadCSV policy: a diagnostic is
// logged and an empty frame is returned. Rows read through a pattern carry
// a FileColumn with their source path.
func LoadParquet(pattern string, opts ...Option) (*frame.DataFrame, error) {
	o := newOptions(opts)

	var (
		df  *frame.DataFrame
		err error
	)
	if isGlob(pattern) {
		df, err = loadParquetGlob(pattern)
	} else {
		df, err = loadParquetFile(pattern)
	}
	if errors.Is(err, ErrUnavailable) {
		o.Logger.Warn("unable to load input", "path", pattern, "error", err)
		return frame.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pattern, err)
	}

	rows, cols := df.Shape()
	o.Logger.Debug("loaded parquet", "path", pattern, "rows", rows, "columns", cols)
	return df, nil
}

func loadParquetFile(path string) (*frame.DataFrame, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.Frame()
}

// loadParquetGlob reads every file matching pattern and tags each row with
// its source file
func loadParquetGlob(pattern string) (*frame.DataFrame, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no files match pattern: %s", ErrUnavailable, pattern)
	}

	// Limit number of files to prevent resource exhaustion
	const maxFiles = 1000
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	var (
		columns []string
		seen    = make(map[string]bool)
		allRows []map[string]interface{}
	)
	for _, path := range matches {
		r, err := NewReader(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		rows, readErr := r.ReadAll()
		names := r.ColumnNames()
		closeErr := r.Close()

		if readErr != nil {
			return nil, fmt.Errorf("failed to read rows from %s: %w", path, readErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
		}

		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
		for i := range rows {
			rows[i][FileColumn] = path
		}
		allRows = append(allRows, rows...)
	}

	if !seen[FileColumn] {
		columns = append(columns, FileColumn)
	}
	return FromRecords(columns, allRows)
}

// isGlob reports whether pattern contains glob wildcards
func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[]")
}

// FromRecords builds a DataFrame from rows keyed by column name. Absent keys
// are Missing. Every column resolves to the widest kind among its values and
// narrower values are coerced into it.
func FromRecords(columns []string, rows []map[string]interface{}) (*frame.DataFrame, error) {
	kinds := make([]frame.Kind, len(columns))
	converted := make([][]frame.Value, len(rows))

	for r, row := range rows {
		values := make([]frame.Value, len(columns))
		for c, name := range columns {
			v := fromNative(row[name])
			kinds[c] = frame.Widen(kinds[c], v.Kind())
			values[c] = v
		}
		converted[r] = values
	}

	table := frame.NewTable(len(columns))
	for _, values := range converted {
		for c, v := range values {
			values[c] = frame.Coerce(v, kinds[c])
		}
		if err := table.Append(frame.NewRow(values...)); err != nil {
			return nil, err
		}
	}

	return frame.New(columns, table)
}

// fromNative maps a decoded parquet value onto a frame value. Booleans and
// any nested or unknown values are kept as text.
func fromNative(v interface{}) frame.Value {
	switch val := v.(type) {
	case nil:
		return frame.Missing()
	case int:
		return frame.Int(int64(val))
	case int8:
		return frame.Int(int64(val))
	case int16:
		return frame.Int(int64(val))
	case int32:
		return frame.Int(int64(val))
	case int64:
		return frame.Int(val)
	case uint8:
		return frame.Int(int64(val))
	case uint16:
		return frame.Int(int64(val))
	case uint32:
		return frame.Int(int64(val))
	case uint64:
		if val > math.MaxInt64 {
			return frame.Float(float64(val))
		}
		return frame.Int(int64(val))
	case float32:
		return frame.Float(float64(val))
	case float64:
		return frame.Float(val)
	case string:
		return frame.Text(val)
	case []byte:
		return frame.Text(string(val))
	case bool:
		return frame.Text(strconv.FormatBool(val))
	default:
		return frame.Text(fmt.Sprintf("%v", val))
	}
}
