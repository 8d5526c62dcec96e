package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/vegasq/tabcat/frame"
	"github.com/vegasq/tabcat/internal/logging"
	"github.com/vegasq/tabcat/output"
	"github.com/vegasq/tabcat/query"
	"github.com/vegasq/tabcat/reader"
)

// config holds the parsed command line
type config struct {
	query     string
	format    string
	limit     int
	delimiter string
	header    int
	names     string
	head      int
	tail      int
	schema    bool
	describe  bool
	width     int
	logLevel  string
	logFormat string
	file      string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := logging.Setup(stderr, cfg.logLevel, cfg.logFormat)

	if err := execute(cfg, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("tabcat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.query, "q", "", "Query (e.g., \"select * from data.csv where age > 30\" or just \"age > 30\")")
	fs.StringVar(&cfg.format, "f", output.FormatTable, "Output format: table, csv, json, jsonl")
	fs.IntVar(&cfg.limit, "limit", 0, "Limit number of rows (0 = unlimited)")
	fs.StringVar(&cfg.delimiter, "d", ",", "Field delimiter for delimited text (\\t for tab)")
	fs.IntVar(&cfg.header, "header", 0, "Zero-based header line (-1 = no header)")
	fs.StringVar(&cfg.names, "names", "", "Comma-separated column names (overrides the header)")
	fs.IntVar(&cfg.head, "head", 0, "Show only the first n rows")
	fs.IntVar(&cfg.tail, "tail", 0, "Show only the last n rows")
	fs.BoolVar(&cfg.schema, "schema", false, "Show schema information instead of data")
	fs.BoolVar(&cfg.describe, "describe", false, "Show summary statistics of numeric columns")
	fs.IntVar(&cfg.width, "width", 0, "Maximum cell width for table output (0 = unlimited)")
	fs.StringVar(&cfg.logLevel, "log-level", envOr("TABCAT_LOG_LEVEL", "warn"), "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.logFormat, "log-format", envOr("TABCAT_LOG_FORMAT", "text"), "Log format: text, json")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tabcat [options] <file>\n\n")
		fmt.Fprintf(stderr, "A tool to read and query CSV and Parquet files.\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE file arguments.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  tabcat data.csv\n")
		fmt.Fprintf(stderr, "  tabcat -f jsonl data.csv.gz\n")
		fmt.Fprintf(stderr, "  tabcat -q \"age > 30 and city in ('Oslo', 'Lima')\" data.csv\n")
		fmt.Fprintf(stderr, "  tabcat -q \"select dept, avg(salary) from data.parquet group by dept\"\n")
		fmt.Fprintf(stderr, "  tabcat -d ';' -header -1 -names id,name,score data.txt\n")
		fmt.Fprintf(stderr, "  tabcat --schema 'logs/*.parquet'\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.limit < 0 {
		return nil, fmt.Errorf("-limit must be non-negative, got %d", cfg.limit)
	}
	if cfg.head < 0 || cfg.tail < 0 {
		return nil, fmt.Errorf("-head and -tail must be non-negative")
	}
	if cfg.head > 0 && cfg.tail > 0 {
		return nil, fmt.Errorf("-head and -tail cannot be used together")
	}
	if cfg.schema && (cfg.query != "" || cfg.describe) {
		return nil, fmt.Errorf("--schema cannot be combined with -q or --describe")
	}
	if cfg.header < reader.NoHeader {
		return nil, fmt.Errorf("-header must be -1 or a line index, got %d", cfg.header)
	}
	if _, err := delimiterRune(cfg.delimiter); err != nil {
		return nil, err
	}

	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected a single input file, got %d", fs.NArg())
	}
	cfg.file = fs.Arg(0)
	return cfg, nil
}

func execute(cfg *config, stdout io.Writer, logger *slog.Logger) error {
	formatter, err := output.New(cfg.format, stdout)
	if err != nil {
		return err
	}
	if t, ok := formatter.(*output.TableFormatter); ok && cfg.width > 0 {
		t.SetMaxWidth(cfg.width)
	}

	var q *query.Query
	if cfg.query != "" {
		q, err = query.Parse(cfg.query)
		if err != nil {
			return fmt.Errorf("parsing query: %w", err)
		}
		if cfg.file == "" {
			cfg.file = q.TableName
		}
	}
	if cfg.file == "" {
		return fmt.Errorf("missing input file argument")
	}

	if cfg.schema {
		return showSchema(cfg, formatter, logger)
	}

	df, err := load(cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("input loaded", "file", cfg.file, "rows", df.Len())

	if q != nil {
		df, err = query.Execute(q, df)
		if err != nil {
			return fmt.Errorf("executing query: %w", err)
		}
	}

	if cfg.describe {
		df, err = describe(df)
		if err != nil {
			return err
		}
	}

	// -limit only applies when the query does not bound the rows itself
	if cfg.limit > 0 && (q == nil || q.Limit == nil) {
		df = df.Head(cfg.limit)
	}
	switch {
	case cfg.head > 0:
		df = df.Head(cfg.head)
	case cfg.tail > 0:
		df = df.Tail(cfg.tail)
	}

	return formatter.Format(df)
}

// load reads the input with the loader matching its extension
func load(cfg *config, logger *slog.Logger) (*frame.DataFrame, error) {
	if isParquet(cfg.file) {
		return reader.LoadParquet(cfg.file, reader.WithLogger(logger))
	}

	delim, _ := delimiterRune(cfg.delimiter)
	opts := []reader.Option{
		reader.WithDelimiter(delim),
		reader.WithHeaderLine(cfg.header),
		reader.WithLogger(logger),
	}
	if cfg.names != "" {
		opts = append(opts, reader.WithNames(splitNames(cfg.names)...))
	}
	return reader.LoadCSV(cfg.file, opts...)
}

func showSchema(cfg *config, formatter output.Formatter, logger *slog.Logger) error {
	var (
		infos []reader.SchemaInfo
		err   error
	)
	if isParquet(cfg.file) && !strings.ContainsAny(cfg.file, "*?[") {
		infos, err = reader.ExtractSchemaInfo(cfg.file)
		if err != nil {
			return err
		}
	} else {
		df, err := load(cfg, logger)
		if err != nil {
			return err
		}
		infos = reader.FrameSchema(df)
	}

	df, err := reader.SchemaFrame(infos)
	if err != nil {
		return err
	}
	return formatter.Format(df)
}

// describe summarizes every numeric column of df, one row per column
func describe(df *frame.DataFrame) (*frame.DataFrame, error) {
	table := frame.NewTable(9)
	for i, kind := range df.Kinds() {
		if !kind.Numeric() {
			continue
		}
		name := df.Columns()[i]
		s, err := df.Column(name)
		if err != nil {
			return nil, err
		}

		summary, err := s.Describe()
		if errors.Is(err, frame.ErrEmpty) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		row := frame.NewRow(
			frame.Text(name),
			frame.Int(int64(summary.Count)),
			frame.Float(summary.Mean),
			frame.Float(summary.Std),
			frame.Float(summary.Min),
			frame.Float(summary.Q25),
			frame.Float(summary.Q50),
			frame.Float(summary.Q75),
			frame.Float(summary.Max),
		)
		if err := table.Append(row); err != nil {
			return nil, err
		}
	}
	return frame.New([]string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}, table)
}

func isParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".parquet")
}

func delimiterRune(s string) (rune, error) {
	if s == `\t` || strings.EqualFold(s, "tab") {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("-d must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func splitNames(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
