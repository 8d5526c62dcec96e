package query

import (
	"strings"

	"github.com/vegasq/tabcat/frame"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenFrom
	TokenWhere
	TokenAnd
	TokenOr
	TokenNot
	TokenIn
	TokenIs
	TokenNull
	TokenGroup
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenLimit
	TokenOffset
	TokenAs

	// Operators
	TokenEqual        // =
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Punctuation
	TokenLParen
	TokenRParen
	TokenComma

	// Literals
	TokenString
	TokenNumber
	TokenIdent
	TokenBool

	// Special
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenSelect:       "SELECT",
	TokenFrom:         "FROM",
	TokenWhere:        "WHERE",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenNot:          "NOT",
	TokenIn:           "IN",
	TokenIs:           "IS",
	TokenNull:         "NULL",
	TokenGroup:        "GROUP",
	TokenOrder:        "ORDER",
	TokenBy:           "BY",
	TokenAsc:          "ASC",
	TokenDesc:         "DESC",
	TokenLimit:        "LIMIT",
	TokenOffset:       "OFFSET",
	TokenAs:           "AS",
	TokenEqual:        "=",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenComma:        ",",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenIdent:        "identifier",
	TokenBool:         "boolean",
	TokenEOF:          "end of query",
	TokenError:        "invalid character",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Query represents a parsed query.
//
// A query without a SELECT clause is a bare filter: TableName is empty and
// SelectList is nil.
type Query struct {
	TableName  string        // Source named after FROM
	SelectList []SelectItem  // Empty means every column
	Filter     Expression    // WHERE condition, nil keeps every row
	GroupBy    []string      // Grouping columns
	OrderBy    []OrderByItem // Sort specification
	Limit      *int64        // Row limit
	Offset     *int64        // Row offset
}

// OrderByItem represents a column to sort by
type OrderByItem struct {
	Column string // Column name or alias
	Desc   bool   // DESC vs ASC (default)
}

// AggregateFunc names a reduction applied to a column
type AggregateFunc string

const (
	AggNone   AggregateFunc = ""
	AggCount  AggregateFunc = "count"
	AggSum    AggregateFunc = "sum"
	AggAvg    AggregateFunc = "avg"
	AggMean   AggregateFunc = "mean"
	AggMin    AggregateFunc = "min"
	AggMax    AggregateFunc = "max"
	AggMedian AggregateFunc = "median"
	AggStd    AggregateFunc = "std"
	AggMode   AggregateFunc = "mode"
)

// aggregateFuncs lists the recognized function names
var aggregateFuncs = map[string]AggregateFunc{
	"count":  AggCount,
	"sum":    AggSum,
	"avg":    AggAvg,
	"mean":   AggMean,
	"min":    AggMin,
	"max":    AggMax,
	"median": AggMedian,
	"std":    AggStd,
	"mode":   AggMode,
}

// SelectItem represents a column or aggregate in the SELECT list
type SelectItem struct {
	Column    string        // Column name, or "*" inside count(*)
	Aggregate AggregateFunc // AggNone for a plain column
	Alias     string        // Optional alias (AS name)
}

// Name returns the output column name of the item
func (s SelectItem) Name() string {
	if s.Alias != "" {
		return s.Alias
	}
	if s.Aggregate != AggNone {
		return string(s.Aggregate) + "(" + s.Column + ")"
	}
	return s.Column
}

// Expression represents a boolean condition over the rows of a frame.
// Evaluate returns one mask entry per row.
type Expression interface {
	Evaluate(df *frame.DataFrame) (frame.Mask, error)
	String() string
}

// BinaryExpr represents a binary expression (AND/OR)
type BinaryExpr struct {
	Left     Expression
	Operator TokenType // TokenAnd or TokenOr
	Right    Expression
}

// NotExpr negates a condition
type NotExpr struct {
	Expr Expression
}

// ComparisonExpr represents a comparison expression
type ComparisonExpr struct {
	Column   string
	Operator TokenType
	Value    frame.Value
}

// InExpr represents col [NOT] IN (v1, v2, ...)
type InExpr struct {
	Column string
	Values []frame.Value
	Negate bool
}

// NullExpr represents col IS [NOT] NULL
type NullExpr struct {
	Column string
	Negate bool
}

func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Operator.String() + " " + b.Right.String() + ")"
}

func (n *NotExpr) String() string {
	return "NOT " + n.Expr.String()
}

func (c *ComparisonExpr) String() string {
	return c.Column + " " + c.Operator.String() + " " + literal(c.Value)
}

func (in *InExpr) String() string {
	items := make([]string, len(in.Values))
	for i, v := range in.Values {
		items[i] = literal(v)
	}
	op := " IN ("
	if in.Negate {
		op = " NOT IN ("
	}
	return in.Column + op + strings.Join(items, ", ") + ")"
}

func (n *NullExpr) String() string {
	if n.Negate {
		return n.Column + " IS NOT NULL"
	}
	return n.Column + " IS NULL"
}

// literal renders a value the way it would be written in a query
func literal(v frame.Value) string {
	if s, ok := v.Text(); ok {
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	}
	return v.String()
}
