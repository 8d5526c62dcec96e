package query

import (
	"cmp"
	"fmt"
	"sort"

	"github.com/vegasq/tabcat/frame"
)

// operators maps comparison tokens onto frame operators
var operators = map[TokenType]frame.Op{
	TokenEqual:        frame.OpEqual,
	TokenNotEqual:     frame.OpNotEqual,
	TokenLess:         frame.OpLess,
	TokenLessEqual:    frame.OpLessEqual,
	TokenGreater:      frame.OpGreater,
	TokenGreaterEqual: frame.OpGreaterEqual,
}

// Evaluate combines both sides row by row
func (b *BinaryExpr) Evaluate(df *frame.DataFrame) (frame.Mask, error) {
	left, err := b.Left.Evaluate(df)
	if err != nil {
		return nil, err
	}

	right, err := b.Right.Evaluate(df)
	if err != nil {
		return nil, err
	}

	switch b.Operator {
	case TokenAnd:
		return left.And(right)
	case TokenOr:
		return left.Or(right)
	default:
		return nil, fmt.Errorf("%w: %v is not a boolean operator", ErrSyntax, b.Operator)
	}
}

// Evaluate inverts the inner condition. Rows with missing values that fail
// the inner condition therefore pass.
func (n *NotExpr) Evaluate(df *frame.DataFrame) (frame.Mask, error) {
	mask, err := n.Expr.Evaluate(df)
	if err != nil {
		return nil, err
	}
	return mask.Not(), nil
}

// Evaluate compares every value of the column against the literal. Missing
// values never match, whatever the operator.
func (c *ComparisonExpr) Evaluate(df *frame.DataFrame) (frame.Mask, error) {
	op, ok := operators[c.Operator]
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a comparison operator", ErrSyntax, c.Operator)
	}

	s, err := df.Column(c.Column)
	if err != nil {
		return nil, err
	}
	return s.Compare(op, c.Value), nil
}

// Evaluate marks rows whose value is among the list. The negated form keeps
// only present values outside the list.
func (in *InExpr) Evaluate(df *frame.DataFrame) (frame.Mask, error) {
	s, err := df.Column(in.Column)
	if err != nil {
		return nil, err
	}

	mask, err := s.IsIn(in.Values...)
	if err != nil {
		return nil, err
	}
	if !in.Negate {
		return mask, nil
	}
	return mask.Not().And(s.NotMissing())
}

// Evaluate marks missing (or, negated, present) values
func (n *NullExpr) Evaluate(df *frame.DataFrame) (frame.Mask, error) {
	s, err := df.Column(n.Column)
	if err != nil {
		return nil, err
	}
	if n.Negate {
		return s.NotMissing(), nil
	}
	return s.IsMissing(), nil
}

// ApplyFilter returns the rows of df matching filter, in their original
// order. A nil filter returns df unchanged.
func ApplyFilter(df *frame.DataFrame, filter Expression) (*frame.DataFrame, error) {
	if filter == nil {
		return df, nil
	}

	mask, err := filter.Evaluate(df)
	if err != nil {
		return nil, err
	}
	return df.Filter(mask)
}

// ApplyOrderBy sorts the rows of df by the given columns. The sort is
// stable, missing values sort last in both directions, and numbers sort
// before text.
func ApplyOrderBy(df *frame.DataFrame, orderBy []OrderByItem) (*frame.DataFrame, error) {
	if df.Len() == 0 || len(orderBy) == 0 {
		return df, nil
	}

	keys := make([][]frame.Value, len(orderBy))
	for i, item := range orderBy {
		s, err := df.Column(item.Column)
		if err != nil {
			return nil, err
		}
		keys[i] = s.Values()
	}

	order := make([]int, df.Len())
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := order[a], order[b]
		for k, item := range orderBy {
			va, vb := keys[k][ra], keys[k][rb]

			// missing values go last regardless of direction
			if va.IsMissing() || vb.IsMissing() {
				if va.IsMissing() && vb.IsMissing() {
					continue
				}
				return vb.IsMissing()
			}

			c := compareValues(va, vb)
			if c != 0 {
				if item.Desc {
					return c > 0
				}
				return c < 0
			}
		}
		return false
	})

	return df.Take(order)
}

// compareValues orders two present values: numbers numerically, text
// lexically, and any number before any text
func compareValues(a, b frame.Value) int {
	fa, aNum := a.AsFloat()
	fb, bNum := b.AsFloat()

	switch {
	case aNum && bNum:
		ia, aInt := a.Int()
		ib, bInt := b.Int()
		if aInt && bInt {
			return cmp.Compare(ia, ib)
		}
		return cmp.Compare(fa, fb)
	case aNum:
		return -1
	case bNum:
		return 1
	}

	sa, _ := a.Text()
	sb, _ := b.Text()
	return cmp.Compare(sa, sb)
}
