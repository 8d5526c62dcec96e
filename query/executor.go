package query

import (
	"fmt"

	"github.com/vegasq/tabcat/frame"
)

// Execute runs q against df.
//
// The stages run in this order: WHERE, then either GROUP BY/aggregation or
// ORDER BY followed by projection, then LIMIT/OFFSET. Without aggregation
// rows are sorted before projection, so ORDER BY may name a column that is
// not selected. With aggregation ORDER BY refers to output names. q.TableName
// is ignored; the caller loads the source.
func Execute(q *Query, df *frame.DataFrame) (*frame.DataFrame, error) {
	out, err := ApplyFilter(df, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to apply filter: %w", err)
	}

	if len(q.GroupBy) > 0 || HasAggregateFunction(q.SelectList) {
		out, err = ApplyGroupByAndAggregate(out, q.GroupBy, q.SelectList)
		if err != nil {
			return nil, fmt.Errorf("failed to apply aggregation: %w", err)
		}
		out, err = ApplyOrderBy(out, q.OrderBy)
		if err != nil {
			return nil, fmt.Errorf("failed to apply ORDER BY: %w", err)
		}
	} else {
		out, err = ApplyOrderBy(out, q.OrderBy)
		if err != nil {
			return nil, fmt.Errorf("failed to apply ORDER BY: %w", err)
		}
		out, err = ApplySelectList(out, q.SelectList)
		if err != nil {
			return nil, fmt.Errorf("failed to apply select list: %w", err)
		}
	}

	return ApplyLimitOffset(out, q.Limit, q.Offset), nil
}

// ApplySelectList projects df onto the select list, labelling each column
// with its alias when one is given. An empty list keeps every column.
func ApplySelectList(df *frame.DataFrame, selectList []SelectItem) (*frame.DataFrame, error) {
	if len(selectList) == 0 {
		return df, nil
	}

	columns := make([]string, len(selectList))
	labels := make([]string, len(selectList))
	for i, item := range selectList {
		columns[i] = item.Column
		labels[i] = item.Alias
	}
	return df.SelectAs(columns, labels)
}

// ApplyLimitOffset skips offset rows and keeps at most limit of the rest.
// A nil pointer disables that bound.
func ApplyLimitOffset(df *frame.DataFrame, limit, offset *int64) *frame.DataFrame {
	if offset != nil && *offset > 0 {
		skip := int(min(*offset, int64(df.Len())))
		df = df.Tail(df.Len() - skip)
	}
	if limit != nil {
		df = df.Head(int(min(*limit, int64(df.Len()))))
	}
	return df
}
