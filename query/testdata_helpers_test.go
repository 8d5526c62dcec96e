package query

import (
	"strings"
	"testing"

	"github.com/vegasq/tabcat/frame"
	"github.com/vegasq/tabcat/reader"
)

// staffCSV has a missing age, salary and city
const staffCSV = `name,dept,age,salary,city
alice,eng,30,50000.5,Oslo
bob,ops,25,45000,Lima
charlie,eng,35,,Oslo
diana,ops,,52000,Quito
eve,eng,28,48000,
`

// staffFrame loads staffCSV
func staffFrame(t *testing.T) *frame.DataFrame {
	t.Helper()
	df, err := reader.ReadCSV(strings.NewReader(staffCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	return df
}

// names returns the name column of df as plain strings
func names(t *testing.T, df *frame.DataFrame) []string {
	t.Helper()
	s, err := df.Column("name")
	if err != nil {
		t.Fatalf("Column(name) error = %v", err)
	}
	out := make([]string, 0, s.Len())
	for _, v := range s.Values() {
		out = append(out, v.String())
	}
	return out
}
