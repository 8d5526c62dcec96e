package reader

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/tabcat/frame"
)

// person is the fixture row; fields are declared in name order so the
// schema column order is the same whichever way the library walks them
type person struct {
	Age   int64   `parquet:"age"`
	Name  string  `parquet:"name"`
	Score float64 `parquet:"score"`
}

// writeParquet writes rows to dir/name and returns the path
func writeParquet[T any](t *testing.T, dir, name string, rows []T) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	return path
}

func TestLoadParquet_SingleFile(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "people.parquet", []person{
		{Age: 30, Name: "Alice", Score: 95.5},
		{Age: 25, Name: "Bob", Score: 80},
	})

	df, err := LoadParquet(path)
	if err != nil {
		t.Fatalf("LoadParquet() error = %v", err)
	}

	if rows, cols := df.Shape(); rows != 2 || cols != 3 {
		t.Fatalf("Shape() = (%d, %d), want (2, 3)", rows, cols)
	}

	// single file reads must not add the source column
	if df.HasColumn(FileColumn) {
		t.Errorf("single file load added %s column", FileColumn)
	}

	wantKinds := map[string]frame.Kind{
		"age":   frame.KindInteger,
		"name":  frame.KindText,
		"score": frame.KindFloat,
	}
	kinds := df.Kinds()
	for i, name := range df.Columns() {
		if kinds[i] != wantKinds[name] {
			t.Errorf("column %s kind = %v, want %v", name, kinds[i], wantKinds[name])
		}
	}

	age, err := df.Column("age")
	if err != nil {
		t.Fatalf("Column(age) error = %v", err)
	}
	if sum, _ := age.Sum(); sum != 55 {
		t.Errorf("age.Sum() = %v, want 55", sum)
	}
}

func TestLoadParquet_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	files := []struct {
		name string
		rows []person
	}{
		{"file1.parquet", []person{{Age: 1, Name: "Alice"}}},
		{"file2.parquet", []person{{Age: 2, Name: "Bob"}}},
		{"file3.parquet", []person{{Age: 3, Name: "Charlie"}}},
	}
	for _, f := range files {
		writeParquet(t, dir, f.name, f.rows)
	}

	df, err := LoadParquet(filepath.Join(dir, "*.parquet"))
	if err != nil {
		t.Fatalf("LoadParquet() error = %v", err)
	}

	if df.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", df.Len())
	}
	src, err := df.Column(FileColumn)
	if err != nil {
		t.Fatalf("Column(%s) error = %v", FileColumn, err)
	}

	seen := make(map[string]bool)
	for _, v := range src.Values() {
		path, ok := v.Text()
		if !ok {
			t.Fatalf("%s value %v is not text", FileColumn, v)
		}
		seen[filepath.Base(path)] = true
	}
	for _, f := range files {
		if !seen[f.name] {
			t.Errorf("no rows tagged with %s", f.name)
		}
	}
}

func TestLoadParquet_GlobUnionOfColumns(t *testing.T) {
	type narrow struct {
		Age int64 `parquet:"age"`
	}
	type wide struct {
		Age   int64  `parquet:"age"`
		Extra string `parquet:"extra"`
	}

	dir := t.TempDir()
	writeParquet(t, dir, "a.parquet", []narrow{{Age: 1}})
	writeParquet(t, dir, "b.parquet", []wide{{Age: 2, Extra: "x"}})

	df, err := LoadParquet(filepath.Join(dir, "*.parquet"))
	if err != nil {
		t.Fatalf("LoadParquet() error = %v", err)
	}

	want := []string{"age", "extra", FileColumn}
	if got := df.Columns(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Columns() = %q, want %q", got, want)
	}

	extra, _ := df.Column("extra")
	if extra.Count() != 1 {
		t.Errorf("extra present count = %d, want 1", extra.Count())
	}
}

func TestLoadParquet_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"missing file", "does-not-exist.parquet"},
		{"glob without matches", "*.nothing-matches"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			df, err := LoadParquet(filepath.Join(t.TempDir(), tt.pattern), WithLogger(logger))
			if err != nil {
				t.Fatalf("LoadParquet() error = %v, want nil", err)
			}
			if rows, cols := df.Shape(); rows != 0 || cols != 0 {
				t.Errorf("Shape() = (%d, %d), want (0, 0)", rows, cols)
			}
			if !strings.Contains(logs.String(), "unable to load input") {
				t.Errorf("no diagnostic logged")
			}
		})
	}
}

func TestLoadParquet_NotParquet(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fake.parquet", "a,b\n1,2\n")

	if _, err := LoadParquet(path); err == nil {
		t.Error("LoadParquet() expected error for non-parquet content")
	}
}

func TestReader_CloseTwice(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "people.parquet", []person{{Age: 1, Name: "A"}})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestFromRecords(t *testing.T) {
	rows := []map[string]interface{}{
		{"n": int32(1), "flag": true, "label": "a"},
		{"n": 2.5, "label": []byte("b")},
		{"n": nil, "flag": false},
	}

	df, err := FromRecords([]string{"n", "flag", "label"}, rows)
	if err != nil {
		t.Fatalf("FromRecords() error = %v", err)
	}

	n, _ := df.Column("n")
	want := []frame.Value{frame.Float(1), frame.Float(2.5), frame.Missing()}
	if got := n.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("n = %v, want %v", got, want)
	}

	flag, _ := df.Column("flag")
	want = []frame.Value{frame.Text("true"), frame.Missing(), frame.Text("false")}
	if got := flag.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("flag = %v, want %v", got, want)
	}

	label, _ := df.Column("label")
	want = []frame.Value{frame.Text("a"), frame.Text("b"), frame.Missing()}
	if got := label.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("label = %v, want %v", got, want)
	}
}
