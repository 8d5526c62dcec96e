package frame

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSeries_SumAndMean(t *testing.T) {
	tests := []struct {
		name     string
		series   *Series
		wantSum  float64
		wantMean float64
	}{
		{"ints", NewSeries(Int(1), Int(2), Int(3)), 6, 2},
		{"mixed", NewSeries(Float(2.5), Int(4)), 6.5, 3.25},
		// Mean divides by every position, Missing included.
		{"missing counts in denominator", NewSeries(Int(1), Missing(), Int(3), Missing()), 4, 1},
		{"all missing", NewSeries(Missing(), Missing()), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, err := tt.series.Sum()
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if !approxEqual(sum, tt.wantSum) {
				t.Errorf("Sum() = %v, want %v", sum, tt.wantSum)
			}
			mean, err := tt.series.Mean()
			if err != nil {
				t.Fatalf("Mean() error = %v", err)
			}
			if !approxEqual(mean, tt.wantMean) {
				t.Errorf("Mean() = %v, want %v", mean, tt.wantMean)
			}
		})
	}
}

func TestSeries_AggregationsRejectText(t *testing.T) {
	s := NewSeries(Int(1), Text("x"), Int(3))

	if _, err := s.Sum(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Sum() error = %v, want ErrTypeMismatch", err)
	}
	if _, err := s.Mean(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Mean() error = %v, want ErrTypeMismatch", err)
	}
	if _, err := s.Median(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Median() error = %v, want ErrTypeMismatch", err)
	}
	if _, err := s.Describe(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Describe() error = %v, want ErrTypeMismatch", err)
	}
}

func TestSeries_EmptyReductions(t *testing.T) {
	empty := NewSeries()
	if _, err := empty.Mean(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Mean() error = %v, want ErrEmpty", err)
	}
	if sum, err := empty.Sum(); err != nil || sum != 0 {
		t.Errorf("Sum() = %v, %v, want 0", sum, err)
	}

	missing := NewSeries(Missing())
	if _, err := missing.Median(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Median() error = %v, want ErrEmpty", err)
	}
	if _, err := missing.Mode(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Mode() error = %v, want ErrEmpty", err)
	}
	if _, err := missing.Max(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Max() error = %v, want ErrEmpty", err)
	}
}

func TestSeries_Median(t *testing.T) {
	tests := []struct {
		name   string
		series *Series
		want   Value
	}{
		{"odd", NewSeries(Int(3), Int(1), Int(2)), Int(2)},
		// index n/2 of the sorted values, no averaging
		{"even", NewSeries(Int(4), Int(1), Int(3), Int(2)), Int(3)},
		{"skips missing", NewSeries(Missing(), Float(9.5), Int(1), Missing()), Float(9.5)},
		{"single", NewSeries(Float(-1)), Float(-1)},
		{"integer element keeps its kind", NewSeries(Float(0.5), Int(7), Float(9)), Int(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.series.Median()
			if err != nil {
				t.Fatalf("Median() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Median() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSeries_Mode(t *testing.T) {
	tests := []struct {
		name   string
		series *Series
		want   string
	}{
		{"most frequent", NewSeries(Int(1), Int(2), Int(2), Int(3)), "2"},
		{"tie keeps first seen", NewSeries(Text("b"), Text("a"), Text("a"), Text("b")), "b"},
		{"float rendering", NewSeries(Float(2.5), Float(2.50), Float(1)), "2.5"},
		{"int and whole float share rendering", NewSeries(Int(4), Float(4), Int(1)), "4"},
		{"missing ignored", NewSeries(Missing(), Missing(), Text("x")), "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.series.Mode()
			if err != nil {
				t.Fatalf("Mode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Mode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeries_ModeAs(t *testing.T) {
	ints := NewSeries(Int(7), Int(7), Int(1))
	v, err := ints.ModeAs(KindInteger)
	if err != nil || !v.Equal(Int(7)) {
		t.Errorf("ModeAs(int) = %v, %v", v, err)
	}
	v, err = ints.ModeAs(KindFloat)
	if err != nil || !v.Equal(Float(7)) {
		t.Errorf("ModeAs(float) = %v, %v", v, err)
	}

	floats := NewSeries(Float(1.5), Float(1.5))
	if _, err := floats.ModeAs(KindInteger); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("ModeAs(int) on 1.5 error = %v, want ErrTypeMismatch", err)
	}

	words := NewSeries(Text("a"))
	if _, err := words.ModeAs(KindFloat); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("ModeAs(float) on text error = %v, want ErrTypeMismatch", err)
	}
}

func TestSeries_Describe(t *testing.T) {
	s := NewSeries(Int(1), Int(2), Missing(), Int(3), Int(4), Int(5))

	summary, err := s.Describe()
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if summary.Count != 5 {
		t.Errorf("Count = %d, want 5", summary.Count)
	}
	if !approxEqual(summary.Mean, 3) {
		t.Errorf("Mean = %v, want 3", summary.Mean)
	}
	if !approxEqual(summary.Std, math.Sqrt(2.5)) {
		t.Errorf("Std = %v, want %v", summary.Std, math.Sqrt(2.5))
	}
	if summary.Min != 1 || summary.Max != 5 {
		t.Errorf("Min/Max = %v/%v, want 1/5", summary.Min, summary.Max)
	}
	if summary.Q25 > summary.Q50 || summary.Q50 > summary.Q75 {
		t.Errorf("quartiles not ordered: %v %v %v", summary.Q25, summary.Q50, summary.Q75)
	}
}

func TestSeries_Quantile(t *testing.T) {
	s := NewSeries(Int(10), Int(20), Int(30))

	if q, err := s.Quantile(0); err != nil || q != 10 {
		t.Errorf("Quantile(0) = %v, %v", q, err)
	}
	if q, err := s.Quantile(1); err != nil || q != 30 {
		t.Errorf("Quantile(1) = %v, %v", q, err)
	}
	if _, err := s.Quantile(1.5); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Quantile(1.5) error = %v, want ErrInvalidRange", err)
	}
}

func TestSeries_MinMaxStd(t *testing.T) {
	s := NewSeries(Float(2.5), Int(-1), Missing(), Int(7))

	if v, err := s.Min(); err != nil || v != -1 {
		t.Errorf("Min() = %v, %v", v, err)
	}
	if v, err := s.Max(); err != nil || v != 7 {
		t.Errorf("Max() = %v, %v", v, err)
	}
	if v, err := NewSeries(Int(3)).Std(); err != nil || v != 0 {
		t.Errorf("Std() of one value = %v, %v", v, err)
	}
}

func TestSeries_SumValue(t *testing.T) {
	tests := []struct {
		name    string
		series  *Series
		want    Value
		wantErr error
	}{
		{"ints stay integer", NewSeries(Int(1), Missing(), Int(2)), Int(3), nil},
		{"max int64", NewSeries(Int(math.MaxInt64)), Int(math.MaxInt64), nil},
		{"exact beyond 2^53", NewSeries(Int(1<<53), Int(1)), Int(1<<53 + 1), nil},
		{"back into range", NewSeries(Int(math.MaxInt64), Int(-1), Int(1)), Int(math.MaxInt64), nil},
		{"min int64", NewSeries(Int(math.MinInt64), Int(0)), Int(math.MinInt64), nil},
		{"float widens", NewSeries(Int(1), Float(0.5)), Float(1.5), nil},
		{"all missing", NewSeries(Missing()), Int(0), nil},
		{"overflow", NewSeries(Int(math.MaxInt64), Int(1)), Missing(), ErrOverflow},
		{"underflow", NewSeries(Int(math.MinInt64), Int(-1)), Missing(), ErrOverflow},
		{"text", NewSeries(Int(1), Text("x")), Missing(), ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.series.SumValue()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("SumValue() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SumValue() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("SumValue() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
