package frame

import (
	"fmt"
	"strconv"
)

// Classify decides the narrowest kind that can hold token and returns the
// converted value. Integer is tried first, then Float, otherwise the token is
// Text. A kind only applies when the whole token is consumed.
//
// Callers treat the empty token as Missing and do not classify it.
func Classify(token string) (Kind, Value) {
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return KindInteger, Int(i)
	}
	if looksDecimal(token) {
		if f, err := strconv.ParseFloat(token, 64); err == nil {
			return KindFloat, Float(f)
		}
	}
	return KindText, Text(token)
}

// looksDecimal reports whether token is made of characters that can appear in
// a decimal float literal and contains at least one digit. It keeps words such
// as "inf" or "NaN" and hex literals out of numeric columns.
func looksDecimal(token string) bool {
	digits := 0
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return digits > 0
}

// Widen returns the higher ranked of two kinds. Missing carries no evidence
// and never raises a column's kind.
func Widen(a, b Kind) Kind {
	if a == KindMissing {
		return b
	}
	if b == KindMissing {
		return a
	}
	if b > a {
		return b
	}
	return a
}

// Convert parses token as a value of the resolved column kind.
// The empty token is always Missing.
func Convert(token string, kind Kind) (Value, error) {
	if token == "" {
		return Missing(), nil
	}

	switch kind {
	case KindInteger:
		i, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Missing(), fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, token)
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Missing(), fmt.Errorf("%w: %q is not a float", ErrTypeMismatch, token)
		}
		return Float(f), nil
	case KindText:
		return Text(token), nil
	default:
		return Missing(), fmt.Errorf("%w: cannot convert %q to %v", ErrTypeMismatch, token, kind)
	}
}

// Coerce lifts an already typed value into a column of the given kind.
// Integers become floats in Float columns and any value is rendered in a Text
// column. Values that cannot be lifted are returned unchanged.
func Coerce(v Value, kind Kind) Value {
	if v.IsMissing() || v.Kind() == kind {
		return v
	}

	switch kind {
	case KindFloat:
		if f, ok := v.AsFloat(); ok {
			return Float(f)
		}
	case KindText:
		return Text(v.String())
	}
	return v
}
