package frame

import "fmt"

// Series is a detached copy of one column's values. It does not know its
// column name and never writes back into the frame it came from.
type Series struct {
	values []Value
}

// NewSeries returns a series holding a copy of values
func NewSeries(values ...Value) *Series {
	return &Series{values: append([]Value(nil), values...)}
}

// Len returns the number of values, Missing included
func (s *Series) Len() int {
	return len(s.values)
}

// At returns the value at position i
func (s *Series) At(i int) (Value, error) {
	if i < 0 || i >= len(s.values) {
		return Missing(), fmt.Errorf("%w: position %d (series has %d)", ErrIndexOutOfRange, i, len(s.values))
	}
	return s.values[i], nil
}

// Values returns a copy of the series values
func (s *Series) Values() []Value {
	return append([]Value(nil), s.values...)
}

// Kind returns the widest kind among non-missing values, or KindMissing if
// every value is missing
func (s *Series) Kind() Kind {
	kind := KindMissing
	for _, v := range s.values {
		kind = Widen(kind, v.Kind())
	}
	return kind
}

// Count returns the number of non-missing values
func (s *Series) Count() int {
	n := 0
	for _, v := range s.values {
		if !v.IsMissing() {
			n++
		}
	}
	return n
}

// Compare evaluates "value op target" at every position.
// See Value.Compare for the promotion rules.
func (s *Series) Compare(op Op, target Value) Mask {
	mask := make(Mask, len(s.values))
	for i, v := range s.values {
		mask[i] = v.Compare(op, target)
	}
	return mask
}

// Equal marks positions equal to target
func (s *Series) Equal(target Value) Mask { return s.Compare(OpEqual, target) }

// NotEqual marks positions not equal to target. Missing positions stay false.
func (s *Series) NotEqual(target Value) Mask { return s.Compare(OpNotEqual, target) }

// Less marks positions less than target
func (s *Series) Less(target Value) Mask { return s.Compare(OpLess, target) }

// LessEqual marks positions less than or equal to target
func (s *Series) LessEqual(target Value) Mask { return s.Compare(OpLessEqual, target) }

// Greater marks positions greater than target
func (s *Series) Greater(target Value) Mask { return s.Compare(OpGreater, target) }

// GreaterEqual marks positions greater than or equal to target
func (s *Series) GreaterEqual(target Value) Mask { return s.Compare(OpGreaterEqual, target) }

// IsIn marks positions equal to any of the candidates.
//
// Candidates must all share one kind (Integer, Float or Text). Equality
// follows Compare, so an Integer column matches Float candidates after
// promotion and Missing positions never match.
func (s *Series) IsIn(candidates ...Value) (Mask, error) {
	mask := make(Mask, len(s.values))
	if len(candidates) == 0 {
		return mask, nil
	}

	kind := candidates[0].Kind()
	for _, c := range candidates {
		if c.Kind() != kind || c.IsMissing() {
			return nil, fmt.Errorf("%w: candidates must share one non-missing kind, found %v and %v", ErrTypeMismatch, kind, c.Kind())
		}
	}

	for i, v := range s.values {
		for _, c := range candidates {
			if v.Compare(OpEqual, c) {
				mask[i] = true
				break
			}
		}
	}
	return mask, nil
}

// IsMissing marks missing positions
func (s *Series) IsMissing() Mask {
	mask := make(Mask, len(s.values))
	for i, v := range s.values {
		mask[i] = v.IsMissing()
	}
	return mask
}

// NotMissing marks positions holding a value
func (s *Series) NotMissing() Mask {
	return s.IsMissing().Not()
}

// Mask is a boolean sequence aligned with the rows of a frame.
type Mask []bool

// Len returns the mask length
func (m Mask) Len() int {
	return len(m)
}

// Count returns the number of true positions
func (m Mask) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// Indices returns the true positions in ascending order
func (m Mask) Indices() []int {
	out := make([]int, 0, m.Count())
	for i, b := range m {
		if b {
			out = append(out, i)
		}
	}
	return out
}

// Not returns the element-wise negation
func (m Mask) Not() Mask {
	out := make(Mask, len(m))
	for i, b := range m {
		out[i] = !b
	}
	return out
}

// And returns the element-wise conjunction
func (m Mask) And(other Mask) (Mask, error) {
	return m.combine(other, func(a, b bool) bool { return a && b })
}

// Or returns the element-wise disjunction
func (m Mask) Or(other Mask) (Mask, error) {
	return m.combine(other, func(a, b bool) bool { return a || b })
}

func (m Mask) combine(other Mask, fn func(a, b bool) bool) (Mask, error) {
	if len(m) != len(other) {
		return nil, fmt.Errorf("%w: mask lengths %d and %d", ErrLengthMismatch, len(m), len(other))
	}
	out := make(Mask, len(m))
	for i := range m {
		out[i] = fn(m[i], other[i])
	}
	return out, nil
}
