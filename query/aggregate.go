package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vegasq/tabcat/frame"
)

// group is a set of rows sharing the same grouping key
type group struct {
	rows []int
}

// HasAggregateFunction reports whether any select item is an aggregate
func HasAggregateFunction(selectList []SelectItem) bool {
	for _, item := range selectList {
		if item.Aggregate != AggNone {
			return true
		}
	}
	return false
}

// ApplyGroupByAndAggregate reduces df to one row per group.
//
// Without grouping columns the whole frame is a single group and the result
// has exactly one row, even when df is empty. Groups appear in the order
// their first row appears in df. A plain column in the select list must be
// one of the grouping columns.
func ApplyGroupByAndAggregate(df *frame.DataFrame, groupBy []string, selectList []SelectItem) (*frame.DataFrame, error) {
	if err := validateSelectListWithGroupBy(selectList, groupBy); err != nil {
		return nil, err
	}

	groups, err := groupRows(df, groupBy)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(selectList))
	for i, item := range selectList {
		names[i] = item.Name()
	}

	table := frame.NewTable(len(selectList))
	for _, g := range groups {
		sub, err := df.Take(g.rows)
		if err != nil {
			return nil, err
		}

		values := make([]frame.Value, len(selectList))
		for i, item := range selectList {
			v, err := evaluateItem(item, sub)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", item.Name(), err)
			}
			values[i] = v
		}
		if err := table.Append(frame.NewRow(values...)); err != nil {
			return nil, err
		}
	}

	return frame.New(names, table)
}

// groupRows partitions the rows of df by the values of the grouping columns
func groupRows(df *frame.DataFrame, groupBy []string) ([]*group, error) {
	if len(groupBy) == 0 {
		all := make([]int, df.Len())
		for i := range all {
			all[i] = i
		}
		return []*group{{rows: all}}, nil
	}

	keys := make([][]frame.Value, len(groupBy))
	for i, col := range groupBy {
		s, err := df.Column(col)
		if err != nil {
			return nil, err
		}
		keys[i] = s.Values()
	}

	var (
		groups []*group
		byKey  = make(map[string]*group)
	)
	for r := 0; r < df.Len(); r++ {
		key := groupKey(keys, r)
		g, ok := byKey[key]
		if !ok {
			g = &group{}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, r)
	}

	return groups, nil
}

// groupKey renders the grouping values of row r. The kind is part of the key
// so Int(1) and Text("1") land in different groups; missing values form a
// group of their own.
func groupKey(keys [][]frame.Value, r int) string {
	var sb strings.Builder
	for _, col := range keys {
		v := col[r]
		sb.WriteString(v.Kind().String())
		sb.WriteByte(':')
		sb.WriteString(v.String())
		sb.WriteByte(0)
	}
	return sb.String()
}

// validateSelectListWithGroupBy checks that every plain column is grouped
func validateSelectListWithGroupBy(selectList []SelectItem, groupBy []string) error {
	if len(selectList) == 0 {
		return fmt.Errorf("%w: SELECT * cannot be combined with aggregation", ErrSyntax)
	}

	grouped := make(map[string]bool, len(groupBy))
	for _, col := range groupBy {
		grouped[col] = true
	}

	for _, item := range selectList {
		if item.Aggregate == AggNone && !grouped[item.Column] {
			if len(groupBy) == 0 {
				return fmt.Errorf("%w: column %q must be aggregated when other columns are", ErrSyntax, item.Column)
			}
			return fmt.Errorf("%w: column %q must appear in GROUP BY or be aggregated", ErrSyntax, item.Column)
		}
	}
	return nil
}

// evaluateItem computes one output cell for the rows of a single group
func evaluateItem(item SelectItem, rows *frame.DataFrame) (frame.Value, error) {
	if item.Aggregate == AggCount && item.Column == "*" {
		return frame.Int(int64(rows.Len())), nil
	}

	s, err := rows.Column(item.Column)
	if err != nil {
		return frame.Missing(), err
	}

	if item.Aggregate == AggNone {
		// grouping column: identical across the group
		if s.Len() == 0 {
			return frame.Missing(), nil
		}
		return s.At(0)
	}

	v, err := evaluateAggregate(item.Aggregate, s)
	if errors.Is(err, frame.ErrEmpty) {
		return frame.Missing(), nil
	}
	return v, err
}

// evaluateAggregate applies fn to a column.
//
// avg averages present values only, while mean follows Series.Mean and
// divides by every position.
func evaluateAggregate(fn AggregateFunc, s *frame.Series) (frame.Value, error) {
	switch fn {
	case AggCount:
		return frame.Int(int64(s.Count())), nil
	case AggSum:
		return s.SumValue()
	case AggAvg:
		if s.Count() == 0 {
			return frame.Missing(), frame.ErrEmpty
		}
		sum, err := s.Sum()
		if err != nil {
			return frame.Missing(), err
		}
		return frame.Float(sum / float64(s.Count())), nil
	case AggMean:
		mean, err := s.Mean()
		return frame.Float(mean), err
	case AggMedian:
		return s.Median()
	case AggStd:
		std, err := s.Std()
		return frame.Float(std), err
	case AggMin:
		return extremum(s, -1)
	case AggMax:
		return extremum(s, 1)
	case AggMode:
		return s.ModeAs(s.Kind())
	default:
		return frame.Missing(), fmt.Errorf("%w: unknown aggregate %q", ErrSyntax, fn)
	}
}

// extremum returns the smallest (sign -1) or largest (sign 1) present value,
// ordered as ORDER BY orders them
func extremum(s *frame.Series, sign int) (frame.Value, error) {
	best := frame.Missing()
	for _, v := range s.Values() {
		if v.IsMissing() {
			continue
		}
		if best.IsMissing() || compareValues(v, best)*sign > 0 {
			best = v
		}
	}
	if best.IsMissing() {
		return best, frame.ErrEmpty
	}
	return frame.Coerce(best, s.Kind()), nil
}
