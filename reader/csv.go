package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vegasq/tabcat/frame"
)

// quote encloses fields that contain the delimiter
const quote = `"`

// LoadCSV loads a delimited text file into a DataFrame.
//
// If the file cannot be opened, LoadCSV logs a diagnostic and returns an
// empty frame with a nil error, so callers do not need to branch on I/O.
// Malformed content is still reported: a row whose width differs from the
// column count fails with frame.ErrLengthMismatch.
//
// Example:
//
//	df, err := reader.LoadCSV("titanic.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadCSV(path string, opts ...Option) (*frame.DataFrame, error) {
	o := newOptions(opts)

	rc, err := Open(path)
	if err != nil {
		o.Logger.Warn("unable to load input", "path", path, "error", err)
		return frame.Empty(), nil
	}
	defer func() { _ = rc.Close() }()

	df, err := readCSV(rc, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rows, cols := df.Shape()
	o.Logger.Debug("loaded csv", "path", path, "rows", rows, "columns", cols)
	return df, nil
}

// ReadCSV loads delimited text from r into a DataFrame
func ReadCSV(r io.Reader, opts ...Option) (*frame.DataFrame, error) {
	return readCSV(r, newOptions(opts))
}

func readCSV(r io.Reader, o Options) (*frame.DataFrame, error) {
	l := &csvLoader{opts: o}
	if err := l.scan(r); err != nil {
		return nil, err
	}
	return l.build()
}

// record is one data line split into raw tokens
type record struct {
	line   int
	fields []string
}

// csvLoader loads a file in two passes. The first pass splits every line and
// widens each column's kind over all of its tokens; the second converts the
// cached tokens once every column kind is final.
type csvLoader struct {
	opts    Options
	columns []string
	kinds   []frame.Kind
	records []record
}

// scan is the first pass
func (l *csvLoader) scan(r io.Reader) error {
	if len(l.opts.Names) > 0 {
		l.setColumns(l.opts.Names)
	}

	br := bufio.NewReader(r)
	for lineNo := 0; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: line %d: %w", ErrUnavailable, lineNo+1, err)
		}
		if line == "" && err != nil {
			return nil
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		switch {
		case lineNo < l.opts.HeaderLine:
			// preamble before the header
		case lineNo == l.opts.HeaderLine:
			l.setColumns(headerNames(SplitFields(line, l.opts.Delimiter)))
		case line == "":
			// blank lines carry no row
		default:
			l.observe(lineNo, SplitFields(line, l.opts.Delimiter))
		}

		if err != nil {
			return nil
		}
	}
}

// setColumns fixes the column names and resets the kinds
func (l *csvLoader) setColumns(names []string) {
	l.columns = append([]string(nil), names...)
	l.kinds = make([]frame.Kind, len(names))
}

// observe caches a data line and widens the kinds of its columns
func (l *csvLoader) observe(lineNo int, fields []string) {
	if l.columns == nil {
		// no header and no names: the first data line decides the width
		names := make([]string, len(fields))
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
		l.setColumns(names)
	}

	for i, tok := range fields {
		if i >= len(l.kinds) || tok == "" {
			continue
		}
		kind, _ := frame.Classify(tok)
		l.kinds[i] = frame.Widen(l.kinds[i], kind)
	}
	l.records = append(l.records, record{line: lineNo, fields: fields})
}

// build is the second pass
func (l *csvLoader) build() (*frame.DataFrame, error) {
	if l.columns == nil {
		return frame.Empty(), nil
	}

	table := frame.NewTable(len(l.columns))
	for _, rec := range l.records {
		values := make([]frame.Value, len(rec.fields))
		for i, tok := range rec.fields {
			kind := frame.KindText
			if i < len(l.kinds) {
				kind = l.kinds[i]
			}
			v, err := frame.Convert(tok, kind)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", rec.line+1, err)
			}
			values[i] = v
		}
		if err := table.Append(frame.NewRow(values...)); err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.line+1, err)
		}
	}

	return frame.New(l.columns, table)
}

// SplitFields splits one line on delim.
//
// A field starting with a double quote runs until the first field that ends
// with one; the spanned fields are joined back with the delimiter and the
// enclosing quotes removed. Doubled quotes inside a quoted field collapse to
// one. A line ending on the delimiter yields a trailing empty field, and an
// unterminated quote takes the rest of the line.
func SplitFields(line string, delim rune) []string {
	sep := string(delim)
	raw := strings.Split(line, sep)
	fields := make([]string, 0, len(raw))

	for i := 0; i < len(raw); i++ {
		f := raw[i]
		if !strings.HasPrefix(f, quote) {
			fields = append(fields, f)
			continue
		}
		if len(f) >= 2 && strings.HasSuffix(f, quote) {
			fields = append(fields, unquote(f[1:len(f)-1]))
			continue
		}

		end := i + 1
		for end < len(raw) && !strings.HasSuffix(raw[end], quote) {
			end++
		}
		if end == len(raw) {
			joined := strings.Join(raw[i:], sep)
			fields = append(fields, unquote(joined[1:]))
			break
		}
		joined := strings.Join(raw[i:end+1], sep)
		fields = append(fields, unquote(joined[1:len(joined)-1]))
		i = end
	}

	return fields
}

// unquote collapses doubled quotes inside a quoted field
func unquote(s string) string {
	return strings.ReplaceAll(s, `""`, quote)
}

// headerNames turns header fields into unique column names. Blank names become
// "Unnamed: i" and repeats get a ".n" suffix: a, a.1, a.2.
func headerNames(fields []string) []string {
	names := make([]string, len(fields))
	seen := make(map[string]bool, len(fields))

	for i, f := range fields {
		name := f
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if seen[name] {
			for n := 1; ; n++ {
				candidate := name + "." + strconv.Itoa(n)
				if !seen[candidate] {
					name = candidate
					break
				}
			}
		}
		seen[name] = true
		names[i] = name
	}

	return names
}
