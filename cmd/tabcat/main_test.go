package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
)

const staffCSV = `name,dept,age,salary
alice,eng,30,50000.5
bob,ops,25,45000
charlie,eng,35,
diana,ops,,52000
`

// TestRow defines a simple parquet record
type TestRow struct {
	ID   int64  `parquet:"id"`
	Name string `parquet:"name"`
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// createTestParquetFile creates a parquet file with rows in dir
func createTestParquetFile(t *testing.T, dir, filename string, rows []TestRow) string {
	t.Helper()
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[TestRow](f)
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

// runCLI runs the command and returns its exit code, stdout and stderr
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_CSV(t *testing.T) {
	file := writeCSV(t, t.TempDir(), "staff.csv", staffCSV)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "whole file",
			args: []string{"-f", "csv", file},
			want: staffCSV,
		},
		{
			name: "bare filter",
			args: []string{"-f", "csv", "-q", "age > 26", file},
			want: "name,dept,age,salary\nalice,eng,30,50000.5\ncharlie,eng,35,\n",
		},
		{
			name: "table name from query",
			args: []string{"-f", "csv", "-q", "select name from '" + file + "' where dept = 'ops'"},
			want: "name\nbob\ndiana\n",
		},
		{
			name: "group by",
			args: []string{"-f", "csv", "-q", "select dept, count(*) as n from '" + file + "' group by dept"},
			want: "dept,n\neng,2\nops,2\n",
		},
		{
			name: "limit flag",
			args: []string{"-f", "csv", "-limit", "1", file},
			want: "name,dept,age,salary\nalice,eng,30,50000.5\n",
		},
		{
			name: "query limit wins over flag",
			args: []string{"-f", "csv", "-limit", "1", "-q", "dept = 'eng' limit 2", file},
			want: "name,dept,age,salary\nalice,eng,30,50000.5\ncharlie,eng,35,\n",
		},
		{
			name: "tail",
			args: []string{"-f", "csv", "-tail", "1", file},
			want: "name,dept,age,salary\ndiana,ops,,52000\n",
		},
		{
			name: "head",
			args: []string{"-f", "csv", "-head", "2", "-q", "salary IS NOT NULL", file},
			want: "name,dept,age,salary\nalice,eng,30,50000.5\nbob,ops,25,45000\n",
		},
		{
			name: "jsonl",
			args: []string{"-f", "jsonl", "-q", "name IN ('bob')", file},
			want: `{"name":"bob","dept":"ops","age":25,"salary":45000}` + "\n",
		},
		{
			name: "schema",
			args: []string{"-f", "csv", "-schema", file},
			want: "name,type,physical_type,count,missing\n" +
				"name,string,,4,0\n" +
				"dept,string,,4,0\n" +
				"age,int,,3,1\n" +
				"salary,float,,3,1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != 0 {
				t.Fatalf("run() = %d, stderr: %s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout =\n%s\nwant\n%s", stdout, tt.want)
			}
		})
	}
}

func TestRun_OrderByWithOffset(t *testing.T) {
	file := writeCSV(t, t.TempDir(), "staff.csv", staffCSV)

	code, stdout, stderr := runCLI(t, "-f", "csv", "-q", "select name from staff order by age desc limit 2 offset 1", file)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}
	if want := "name\nalice\nbob\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_HeaderOptions(t *testing.T) {
	file := writeCSV(t, t.TempDir(), "scores.txt", "1;\"x;y\";2.5\n2;z;3\n")

	code, stdout, stderr := runCLI(t, "-f", "csv", "-d", ";", "-header", "-1", "-names", "id, label, score", "-q", "score > 2.6", file)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}
	if want := "id,label,score\n2,z,3\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_Describe(t *testing.T) {
	file := writeCSV(t, t.TempDir(), "staff.csv", staffCSV)

	code, stdout, stderr := runCLI(t, "-f", "csv", "-describe", file)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus age and salary:\n%s", len(lines), stdout)
	}
	if lines[0] != "column,count,mean,std,min,25%,50%,75%,max" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "age,3,30,5,25,") || !strings.HasSuffix(lines[1], ",35") {
		t.Errorf("age row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "salary,3,") || !strings.HasSuffix(lines[2], ",52000") {
		t.Errorf("salary row = %q", lines[2])
	}
}

func TestRun_Parquet(t *testing.T) {
	dir := t.TempDir()
	file := createTestParquetFile(t, dir, "test.parquet", []TestRow{
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b"},
		{ID: 3, Name: "c"},
	})

	code, stdout, stderr := runCLI(t, "-f", "jsonl", "-q", "select id, name from '"+file+"' where id >= 2")
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}
	want := `{"id":2,"name":"b"}` + "\n" + `{"id":3,"name":"c"}` + "\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestRun_ParquetSchema(t *testing.T) {
	file := createTestParquetFile(t, t.TempDir(), "test.parquet", []TestRow{{ID: 1, Name: "a"}})

	code, stdout, stderr := runCLI(t, "-f", "jsonl", "-schema", file)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"name":"id","type":"int","physical_type":"INT64"`) {
		t.Errorf("schema output missing id column:\n%s", stdout)
	}
	if !strings.Contains(stdout, `"physical_type":"BYTE_ARRAY"`) {
		t.Errorf("schema output missing name column:\n%s", stdout)
	}
}

func TestRun_TableOutput(t *testing.T) {
	file := writeCSV(t, t.TempDir(), "staff.csv", staffCSV)

	code, stdout, stderr := runCLI(t, "-width", "4", "-head", "1", file)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"name", "ali…", "500…"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("table output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_UnavailableInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")

	code, stdout, stderr := runCLI(t, "-f", "csv", missing)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "unable to load input") {
		t.Errorf("stderr = %q, want a load warning", stderr)
	}
}

func TestRun_Errors(t *testing.T) {
	file := writeCSV(t, t.TempDir(), "staff.csv", staffCSV)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"negative limit", []string{"-limit", "-1", file}, 2, "-limit must be non-negative"},
		{"head and tail", []string{"-head", "1", "-tail", "1", file}, 2, "cannot be used together"},
		{"schema with query", []string{"-schema", "-q", "age > 1", file}, 2, "--schema cannot be combined"},
		{"bad delimiter", []string{"-d", "ab", file}, 2, "-d must be a single character"},
		{"bad header", []string{"-header", "-2", file}, 2, "-header must be -1"},
		{"unknown flag", []string{"-bogus", file}, 2, "flag provided but not defined"},
		{"two files", []string{file, file}, 2, "expected a single input file"},
		{"no file", []string{"-f", "csv"}, 1, "missing input file"},
		{"unknown format", []string{"-f", "xml", file}, 1, "unknown output format"},
		{"bad query", []string{"-q", "age >", file}, 1, "parsing query"},
		{"unknown column", []string{"-q", "height > 1", file}, 1, "column not found"},
		{"aggregate on text", []string{"-q", "select sum(name) from x", file}, 1, "type mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI(t, "-h")
	if code != 0 {
		t.Errorf("run(-h) = %d, want 0", code)
	}
	if !strings.Contains(stderr, "Usage: tabcat") {
		t.Errorf("usage not printed: %q", stderr)
	}
}
