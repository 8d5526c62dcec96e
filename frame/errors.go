package frame

import "errors"

var (
	// ErrNameNotFound is returned when a column name is not part of a frame
	ErrNameNotFound = errors.New("column not found")

	// ErrIndexOutOfRange is returned when a row or column position is outside the valid bounds
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidRange is returned when the start of a range lies after its end
	ErrInvalidRange = errors.New("invalid range")

	// ErrLengthMismatch is returned when a row or mask does not match the expected width
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrTypeMismatch is returned when an operation is not defined for a value kind
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDuplicateColumn is returned when a frame would carry the same column name twice
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrEmpty is returned when a reduction has no values to work on
	ErrEmpty = errors.New("no values")

	// ErrOverflow is returned when an integer result does not fit in int64
	ErrOverflow = errors.New("integer overflow")
)
