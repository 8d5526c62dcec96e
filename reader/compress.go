package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrUnavailable is returned when an input cannot be opened or read
var ErrUnavailable = errors.New("input unavailable")

// Open opens path for reading and decompresses it transparently when the
// extension names a supported codec: .gz, .zst/.zstd, .br or .lz4.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	rc, err := decompress(file, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
	}
	return rc, nil
}

// decompress wraps file with the decoder registered for ext
func decompress(file *os.File, ext string) (io.ReadCloser, error) {
	switch ext {
	case ".gz":
		zr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &codecReader{Reader: zr, closers: []io.Closer{zr, file}}, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		rc := zr.IOReadCloser()
		return &codecReader{Reader: rc, closers: []io.Closer{rc, file}}, nil
	case ".br":
		return &codecReader{Reader: brotli.NewReader(file), closers: []io.Closer{file}}, nil
	case ".lz4":
		return &codecReader{Reader: lz4.NewReader(file), closers: []io.Closer{file}}, nil
	default:
		return file, nil
	}
}

// codecReader reads from a decoder and closes the decoder and the file
// underneath it in order
type codecReader struct {
	io.Reader
	closers []io.Closer
}

// Close closes every layer and returns the first error
func (c *codecReader) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
