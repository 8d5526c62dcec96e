package reader

import "log/slog"

// NoHeader disables the header line; columns are then named by position
// unless names are supplied
const NoHeader = -1

// Options configures how delimited text is loaded.
type Options struct {
	// Delimiter separates fields (default ',')
	Delimiter rune

	// HeaderLine is the zero-based line holding column names (default 0).
	// Lines before it are skipped. NoHeader treats every line as data.
	HeaderLine int

	// Names overrides the column names; when set no line is used as header
	Names []string

	// Logger receives diagnostics (default slog.Default())
	Logger *slog.Logger
}

// Option mutates Options
type Option func(*Options)

// WithDelimiter sets the field delimiter
func WithDelimiter(d rune) Option {
	return func(o *Options) {
		o.Delimiter = d
	}
}

// WithHeaderLine sets the line index holding the column names
func WithHeaderLine(n int) Option {
	return func(o *Options) {
		o.HeaderLine = n
	}
}

// WithNames supplies the column names explicitly
func WithNames(names ...string) Option {
	return func(o *Options) {
		o.Names = append([]string(nil), names...)
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// newOptions applies opts over the defaults
func newOptions(opts []Option) Options {
	o := Options{
		Delimiter:  ',',
		HeaderLine: 0,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.Names) > 0 {
		o.HeaderLine = NoHeader
	}
	if o.HeaderLine < 0 {
		o.HeaderLine = NoHeader
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
