package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the category of a cell value.
type Kind int

// Kinds other than KindMissing are ranked in declaration order; a column
// holding values of several kinds resolves to the highest one.
const (
	KindMissing Kind = iota
	KindInteger
	KindFloat
	KindText
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "string"
	case KindMissing:
		return "missing"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Numeric reports whether values of the kind take part in arithmetic
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

// Op is a comparison operator used to build masks.
type Op int

const (
	OpEqual Op = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

// String returns the operator symbol
func (o Op) String() string {
	switch o {
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// floatPrecision is the number of fractional digits used when rendering floats
const floatPrecision = 12

// Value is a single immutable cell: an int64, a float64, a string or Missing.
//
// The zero Value is Missing.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int returns an Integer value
func Int(v int64) Value {
	return Value{kind: KindInteger, i: v}
}

// Float returns a Float value
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Text returns a Text value
func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

// Missing returns the missing-value marker
func Missing() Value {
	return Value{kind: KindMissing}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the value is the missing marker
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Int returns the integer payload and whether the value is an Integer
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// Float returns the float payload and whether the value is a Float
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Text returns the string payload and whether the value is Text
func (v Value) Text() (string, bool) {
	return v.s, v.kind == KindText
}

// AsFloat returns the value promoted to float64 if it is numeric
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// String renders the value the way it is displayed in a cell.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindText:
		return v.s
	default:
		return ""
	}
}

// formatFloat renders f with fixed precision and strips insignificant zeros
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', floatPrecision, 64)
	if !strings.Contains(s, ".") {
		// NaN and infinities
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Equal reports structural identity: same kind and same payload.
// Missing is equal to Missing; Int(1) is not equal to Float(1).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindText:
		return v.s == other.s
	default:
		return true
	}
}

// Compare evaluates "v op target".
//
// Integers compare exactly with integers; any mix of Integer and Float is
// promoted to float64. Text compares with Text byte-wise. Every other pairing,
// including any Missing operand, is false for all operators.
func (v Value) Compare(op Op, target Value) bool {
	switch v.kind {
	case KindInteger:
		switch target.kind {
		case KindInteger:
			return compareOrdered(v.i, op, target.i)
		case KindFloat:
			return compareOrdered(float64(v.i), op, target.f)
		}
	case KindFloat:
		switch target.kind {
		case KindInteger:
			return compareOrdered(v.f, op, float64(target.i))
		case KindFloat:
			return compareOrdered(v.f, op, target.f)
		}
	case KindText:
		if target.kind == KindText {
			return compareOrdered(v.s, op, target.s)
		}
	}
	return false
}

// compareOrdered applies op to two values of the same ordered type
func compareOrdered[T int64 | float64 | string](left T, op Op, right T) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	case OpLess:
		return left < right
	case OpLessEqual:
		return left <= right
	case OpGreater:
		return left > right
	case OpGreaterEqual:
		return left >= right
	default:
		return false
	}
}
