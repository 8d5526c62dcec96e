package frame

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// numbers collects the non-missing values as float64.
// Any Text value fails the whole collection with ErrTypeMismatch.
func (s *Series) numbers() ([]float64, error) {
	out := make([]float64, 0, len(s.values))
	for i, v := range s.values {
		switch v.Kind() {
		case KindMissing:
			continue
		case KindInteger, KindFloat:
			f, _ := v.AsFloat()
			out = append(out, f)
		default:
			return nil, fmt.Errorf("%w: %v value %q at position %d", ErrTypeMismatch, v.Kind(), v.String(), i)
		}
	}
	return out, nil
}

// sortedNumbers is numbers sorted ascending, failing with ErrEmpty when there
// is nothing to sort
func (s *Series) sortedNumbers() ([]float64, error) {
	x, err := s.numbers()
	if err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, ErrEmpty
	}
	sort.Float64s(x)
	return x, nil
}

// Sum adds every numeric value, skipping Missing
func (s *Series) Sum() (float64, error) {
	x, err := s.numbers()
	if err != nil {
		return 0, err
	}
	return floats.Sum(x), nil
}

// SumValue adds every numeric value, skipping Missing, and keeps the kind of
// the inputs. Without Float values the total is accumulated exactly in int64
// and ErrOverflow is returned when it leaves that range; with any Float value
// the result is Sum as a Float.
func (s *Series) SumValue() (Value, error) {
	x, err := s.numbers()
	if err != nil {
		return Missing(), err
	}

	if s.Kind() == KindFloat {
		return Float(floats.Sum(x)), nil
	}

	var total int64
	for i, v := range s.values {
		n, ok := v.Int()
		if !ok {
			continue
		}
		next := total + n
		if (n > 0 && next < total) || (n < 0 && next > total) {
			return Missing(), fmt.Errorf("%w: sum passes int64 range at position %d", ErrOverflow, i)
		}
		total = next
	}
	return Int(total), nil
}

// Mean returns Sum divided by Len.
//
// The denominator is the total number of positions, Missing included, so
// missing cells pull the mean towards zero. Divide Sum by Count for the mean
// over present values only.
func (s *Series) Mean() (float64, error) {
	if len(s.values) == 0 {
		return 0, ErrEmpty
	}
	sum, err := s.Sum()
	if err != nil {
		return 0, err
	}
	return sum / float64(len(s.values)), nil
}

// Median returns the element at index n/2 of the non-missing values sorted
// numerically. For an even count that is the upper of the two middle
// elements; the two are not averaged. The element keeps its kind.
func (s *Series) Median() (Value, error) {
	if _, err := s.numbers(); err != nil {
		return Missing(), err
	}

	present := make([]Value, 0, len(s.values))
	for _, v := range s.values {
		if !v.IsMissing() {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return Missing(), ErrEmpty
	}

	sort.SliceStable(present, func(i, j int) bool {
		a, _ := present[i].AsFloat()
		b, _ := present[j].AsFloat()
		return a < b
	})
	return present[len(present)/2], nil
}

// Min returns the smallest numeric value
func (s *Series) Min() (float64, error) {
	x, err := s.sortedNumbers()
	if err != nil {
		return 0, err
	}
	return x[0], nil
}

// Max returns the largest numeric value
func (s *Series) Max() (float64, error) {
	x, err := s.sortedNumbers()
	if err != nil {
		return 0, err
	}
	return x[len(x)-1], nil
}

// Std returns the sample standard deviation of the numeric values
func (s *Series) Std() (float64, error) {
	x, err := s.numbers()
	if err != nil {
		return 0, err
	}
	switch len(x) {
	case 0:
		return 0, ErrEmpty
	case 1:
		return 0, nil
	}
	return stat.StdDev(x, nil), nil
}

// Quantile returns the p-quantile of the numeric values using linear
// interpolation. p must lie in [0, 1].
func (s *Series) Quantile(p float64) (float64, error) {
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: quantile %v outside [0, 1]", ErrInvalidRange, p)
	}
	x, err := s.sortedNumbers()
	if err != nil {
		return 0, err
	}
	switch p {
	case 0:
		return x[0], nil
	case 1:
		return x[len(x)-1], nil
	}
	return stat.Quantile(p, stat.LinInterp, x, nil), nil
}

// Mode returns the most frequent rendering among non-missing values.
// On a tie the value seen first wins.
func (s *Series) Mode() (string, error) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, v := range s.values {
		if v.IsMissing() {
			continue
		}
		key := v.String()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	if len(order) == 0 {
		return "", ErrEmpty
	}

	best, bestCount := order[0], counts[order[0]]
	for _, key := range order[1:] {
		if counts[key] > bestCount {
			best, bestCount = key, counts[key]
		}
	}
	return best, nil
}

// ModeAs returns Mode parsed back into the requested kind
func (s *Series) ModeAs(kind Kind) (Value, error) {
	mode, err := s.Mode()
	if err != nil {
		return Missing(), err
	}

	switch kind {
	case KindInteger:
		i, err := strconv.ParseInt(mode, 10, 64)
		if err != nil {
			return Missing(), fmt.Errorf("%w: mode %q is not an integer", ErrTypeMismatch, mode)
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(mode, 64)
		if err != nil {
			return Missing(), fmt.Errorf("%w: mode %q is not a float", ErrTypeMismatch, mode)
		}
		return Float(f), nil
	case KindText:
		return Text(mode), nil
	default:
		return Missing(), fmt.Errorf("%w: cannot return mode as %v", ErrTypeMismatch, kind)
	}
}

// Summary holds descriptive statistics of a numeric column.
type Summary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe computes a Summary over the non-missing numeric values.
// Unlike Series.Mean, the mean here is taken over present values only.
func (s *Series) Describe() (Summary, error) {
	x, err := s.sortedNumbers()
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Count: len(x),
		Mean:  stat.Mean(x, nil),
		Min:   x[0],
		Q25:   stat.Quantile(0.25, stat.LinInterp, x, nil),
		Q50:   stat.Quantile(0.5, stat.LinInterp, x, nil),
		Q75:   stat.Quantile(0.75, stat.LinInterp, x, nil),
		Max:   x[len(x)-1],
	}
	if len(x) > 1 {
		summary.Std = stat.StdDev(x, nil)
	}
	return summary, nil
}
