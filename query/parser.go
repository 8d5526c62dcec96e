package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vegasq/tabcat/frame"
)

// Parser parses token streams into queries and expressions
type Parser struct {
	tokens []Token
	pos    int
	guard  depthGuard
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// expect checks if current token matches expected type and advances
func (p *Parser) expect(tokType TokenType) error {
	if p.current().Type != tokType {
		return p.errorf("expected %v, got %s", tokType, p.describe())
	}
	p.advance()
	return nil
}

// errorf builds a syntax error
func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

// describe renders the current token for error messages
func (p *Parser) describe() string {
	tok := p.current()
	if tok.Type == TokenEOF {
		return tok.Type.String()
	}
	return fmt.Sprintf("%v %q", tok.Type, tok.Value)
}

// Parse parses a full query.
//
// The SELECT ... FROM ... prefix is optional: "age > 30 LIMIT 5" is a bare
// filter over whatever frame the query is executed against.
//
//	SELECT cols|* FROM name [WHERE expr] [GROUP BY cols] [ORDER BY col [ASC|DESC], ...] [LIMIT n [OFFSET m]]
//	expr [ORDER BY ...] [LIMIT n [OFFSET m]]
func Parse(query string) (*Query, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).parseQuery()
}

// ParseFilter parses a bare condition such as "age >= 18 AND city IN ('Oslo', 'Lima')"
func ParseFilter(expr string) (Expression, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}

	p := NewParser(tokens)
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return e, nil
}

// parseQuery parses either statement form
func (p *Parser) parseQuery() (*Query, error) {
	q := &Query{}

	switch p.current().Type {
	case TokenEOF:
		return nil, p.errorf("empty query")
	case TokenSelect:
		if err := p.parseSelect(q); err != nil {
			return nil, err
		}
	case TokenOrder, TokenLimit:
		// no condition, only ordering or paging
	default:
		filter, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		q.Filter = filter
	}

	if err := p.parseTail(q); err != nil {
		return nil, err
	}
	if err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return q, nil
}

// parseSelect parses: SELECT list FROM table [WHERE expr] [GROUP BY cols]
func (p *Parser) parseSelect(q *Query) error {
	p.advance() // SELECT

	items, err := p.parseSelectList()
	if err != nil {
		return err
	}
	q.SelectList = items

	if err := p.expect(TokenFrom); err != nil {
		return err
	}

	tok := p.current()
	if tok.Type != TokenIdent && tok.Type != TokenString {
		return p.errorf("expected table name after FROM, got %s", p.describe())
	}
	if err := checkTableName(tok.Value); err != nil {
		return err
	}
	q.TableName = tok.Value
	p.advance()

	if p.current().Type == TokenWhere {
		p.advance()
		filter, err := p.parseOr()
		if err != nil {
			return err
		}
		q.Filter = filter
	}

	if p.current().Type == TokenGroup {
		p.advance()
		if err := p.expect(TokenBy); err != nil {
			return err
		}
		cols, err := p.parseColumnList()
		if err != nil {
			return err
		}
		q.GroupBy = cols
	}

	return nil
}

// parseSelectList parses "*" or a comma separated list of items
func (p *Parser) parseSelectList() ([]SelectItem, error) {
	if p.current().Type == TokenIdent && p.current().Value == "*" {
		p.advance()
		return nil, nil
	}

	var items []SelectItem
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.current().Type != TokenComma {
			return items, nil
		}
		p.advance()
	}
}

// parseSelectItem parses: col | fn(col) | fn(*), each with an optional AS alias
func (p *Parser) parseSelectItem() (SelectItem, error) {
	tok := p.current()
	if tok.Type != TokenIdent || tok.Value == "*" {
		return SelectItem{}, p.errorf("expected column name, got %s", p.describe())
	}
	p.advance()

	var item SelectItem
	if p.current().Type == TokenLParen {
		fn, ok := aggregateFuncs[strings.ToLower(tok.Value)]
		if !ok {
			return SelectItem{}, p.errorf("unknown function %q", tok.Value)
		}
		p.advance()

		arg := p.current()
		if arg.Type != TokenIdent {
			return SelectItem{}, p.errorf("expected column name in %s(), got %s", fn, p.describe())
		}
		if arg.Value == "*" && fn != AggCount {
			return SelectItem{}, p.errorf("%s(*) is not supported", fn)
		}
		p.advance()
		if err := p.expect(TokenRParen); err != nil {
			return SelectItem{}, err
		}
		item = SelectItem{Column: arg.Value, Aggregate: fn}
	} else {
		if err := checkColumnName(tok.Value); err != nil {
			return SelectItem{}, err
		}
		item = SelectItem{Column: tok.Value}
	}

	if p.current().Type == TokenAs {
		p.advance()
		alias := p.current()
		if alias.Type != TokenIdent && alias.Type != TokenString {
			return SelectItem{}, p.errorf("expected alias after AS, got %s", p.describe())
		}
		if err := checkColumnName(alias.Value); err != nil {
			return SelectItem{}, err
		}
		item.Alias = alias.Value
		p.advance()
	}

	return item, nil
}

// parseColumnList parses one or more comma separated column names
func (p *Parser) parseColumnList() ([]string, error) {
	var cols []string
	for {
		name, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)

		if p.current().Type != TokenComma {
			return cols, nil
		}
		p.advance()
	}
}

// parseColumn parses a single column reference
func (p *Parser) parseColumn() (string, error) {
	tok := p.current()
	if tok.Type != TokenIdent || tok.Value == "*" {
		return "", p.errorf("expected column name, got %s", p.describe())
	}
	if err := checkColumnName(tok.Value); err != nil {
		return "", err
	}
	p.advance()
	return tok.Value, nil
}

// parseTail parses the optional ORDER BY and LIMIT/OFFSET clauses
func (p *Parser) parseTail(q *Query) error {
	if p.current().Type == TokenOrder {
		p.advance()
		if err := p.expect(TokenBy); err != nil {
			return err
		}
		for {
			col, err := p.parseColumn()
			if err != nil {
				return err
			}
			item := OrderByItem{Column: col}
			switch p.current().Type {
			case TokenAsc:
				p.advance()
			case TokenDesc:
				item.Desc = true
				p.advance()
			}
			q.OrderBy = append(q.OrderBy, item)

			if p.current().Type != TokenComma {
				break
			}
			p.advance()
		}
	}

	if p.current().Type == TokenLimit {
		p.advance()
		n, err := p.parseCount("LIMIT")
		if err != nil {
			return err
		}
		q.Limit = &n

		if p.current().Type == TokenOffset {
			p.advance()
			m, err := p.parseCount("OFFSET")
			if err != nil {
				return err
			}
			q.Offset = &m
		}
	}

	return nil
}

// parseCount parses a non-negative integer
func (p *Parser) parseCount(clause string) (int64, error) {
	tok := p.current()
	if tok.Type != TokenNumber {
		return 0, p.errorf("expected number after %s, got %s", clause, p.describe())
	}
	n, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil || n < 0 {
		return 0, p.errorf("%s must be a non-negative integer, got %q", clause, tok.Value)
	}
	p.advance()
	return n, nil
}

// parseOr parses OR expressions (lowest precedence)
func (p *Parser) parseOr() (Expression, error) {
	if err := p.guard.enter(); err != nil {
		return nil, err
	}
	defer p.guard.exit()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: TokenOr, Right: right}
	}

	return left, nil
}

// parseAnd parses AND expressions (higher precedence than OR)
func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: TokenAnd, Right: right}
	}

	return left, nil
}

// parseNot parses a prefix NOT
func (p *Parser) parseNot() (Expression, error) {
	if p.current().Type != TokenNot {
		return p.parsePrimary()
	}

	if err := p.guard.enter(); err != nil {
		return nil, err
	}
	defer p.guard.exit()

	p.advance()
	inner, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return &NotExpr{Expr: inner}, nil
}

// parsePrimary parses a parenthesized expression or a single condition
func (p *Parser) parsePrimary() (Expression, error) {
	if p.current().Type != TokenLParen {
		return p.parseCondition()
	}

	p.advance()
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseCondition parses: col op literal | col [NOT] IN (...) | col IS [NOT] NULL
func (p *Parser) parseCondition() (Expression, error) {
	column, err := p.parseColumn()
	if err != nil {
		return nil, err
	}

	switch p.current().Type {
	case TokenIs:
		p.advance()
		negate := false
		if p.current().Type == TokenNot {
			negate = true
			p.advance()
		}
		if err := p.expect(TokenNull); err != nil {
			return nil, err
		}
		return &NullExpr{Column: column, Negate: negate}, nil

	case TokenNot, TokenIn:
		negate := p.current().Type == TokenNot
		if negate {
			p.advance()
		}
		if err := p.expect(TokenIn); err != nil {
			return nil, err
		}
		values, err := p.parseList()
		if err != nil {
			return nil, err
		}
		return &InExpr{Column: column, Values: values, Negate: negate}, nil

	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		operator := p.current().Type
		p.advance()
		if p.current().Type == TokenNull {
			return nil, p.errorf("use IS NULL or IS NOT NULL to test for missing values")
		}
		value, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &ComparisonExpr{Column: column, Operator: operator, Value: value}, nil

	default:
		return nil, p.errorf("expected comparison operator, got %s", p.describe())
	}
}

// parseList parses a parenthesized literal list. Integers are widened to
// floats when the list also holds a float; text and numbers cannot mix.
func (p *Parser) parseList() ([]frame.Value, error) {
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var (
		values []frame.Value
		kind   frame.Kind
	)
	for {
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if kind != frame.KindMissing && kind.Numeric() != v.Kind().Numeric() {
			return nil, fmt.Errorf("%w: IN list mixes %v and %v", frame.ErrTypeMismatch, kind, v.Kind())
		}
		kind = frame.Widen(kind, v.Kind())
		values = append(values, v)

		if len(values) > MaxListItems {
			return nil, fmt.Errorf("%w: more than %d items", ErrListTooLong, MaxListItems)
		}
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	for i, v := range values {
		values[i] = frame.Coerce(v, kind)
	}
	return values, nil
}

// parseLiteral parses a string, number or boolean. Booleans become the text
// values "true" and "false".
func (p *Parser) parseLiteral() (frame.Value, error) {
	tok := p.current()

	var value frame.Value
	switch tok.Type {
	case TokenString:
		value = frame.Text(tok.Value)
	case TokenNumber:
		if i, err := strconv.ParseInt(tok.Value, 10, 64); err == nil {
			value = frame.Int(i)
		} else if f, err := strconv.ParseFloat(tok.Value, 64); err == nil {
			value = frame.Float(f)
		} else {
			return frame.Missing(), p.errorf("invalid number: %s", tok.Value)
		}
	case TokenBool:
		value = frame.Text(strings.ToLower(tok.Value))
	default:
		return frame.Missing(), p.errorf("expected value (string, number, or bool), got %s", p.describe())
	}

	p.advance()
	return value, nil
}
