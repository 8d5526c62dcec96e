package query

import (
	"errors"
	"fmt"
)

// Limits bounding the work a single query can cause
const (
	MaxQueryLength      = 1024 * 1024 // bytes
	MaxTokens           = 1000
	MaxExpressionDepth  = 100
	MaxColumnNameLength = 256
	MaxTableNameLength  = 4096 // long file paths and glob patterns
	MaxListItems        = 256  // entries in an IN list
)

var (
	ErrQueryTooLong      = errors.New("query too long")
	ErrTooManyTokens     = errors.New("too many tokens in query")
	ErrExpressionTooDeep = errors.New("expression nesting too deep")
	ErrColumnNameTooLong = errors.New("column name too long")
	ErrTableNameTooLong  = errors.New("table name too long")
	ErrEmptyTableName    = errors.New("table name cannot be empty")
	ErrListTooLong       = errors.New("IN list too long")

	// ErrSyntax is returned when a query does not follow the grammar
	ErrSyntax = errors.New("syntax error")
)

// tokenize checks the query size, splits it and checks the token count
func tokenize(query string) ([]Token, error) {
	if len(query) > MaxQueryLength {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(query), MaxQueryLength)
	}

	tokens := Tokenize(query)
	if len(tokens) > MaxTokens {
		return nil, fmt.Errorf("%w: %d tokens (max %d)", ErrTooManyTokens, len(tokens), MaxTokens)
	}
	if last := tokens[len(tokens)-1]; last.Type == TokenError {
		return nil, fmt.Errorf("%w: unexpected character %q", ErrSyntax, last.Value)
	}
	return tokens, nil
}

// checkTableName rejects empty and oversized FROM targets
func checkTableName(name string) error {
	if name == "" {
		return ErrEmptyTableName
	}
	if len(name) > MaxTableNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrTableNameTooLong, len(name), MaxTableNameLength)
	}
	return nil
}

// checkColumnName rejects empty and oversized column references
func checkColumnName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty column name", ErrSyntax)
	}
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}

// depthGuard tracks expression nesting while parsing
type depthGuard struct {
	depth int
}

// enter increments depth and fails once MaxExpressionDepth is passed
func (g *depthGuard) enter() error {
	g.depth++
	if g.depth > MaxExpressionDepth {
		return fmt.Errorf("%w: %d (max %d)", ErrExpressionTooDeep, g.depth, MaxExpressionDepth)
	}
	return nil
}

func (g *depthGuard) exit() {
	g.depth--
}
