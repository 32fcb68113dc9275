package parser

import (
	"strconv"

	"relo/pkg/sql/lexer"
	"relo/pkg/types"
)

// Parser is a recursive-descent parser with a two-token (current/peek)
// lookahead, following the grammar and precedence documented in
// SPEC_FULL.md §4.2: OR binds loosest, then AND, then comparison/LIKE,
// with parentheses overriding both.
type Parser struct {
	lex *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token
}

// New creates a Parser over the given query text.
func New(input string) (*Parser, error) {
	p := &Parser{lex: lexer.New(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// ParseStatement parses exactly one statement, rejecting trailing input
// other than an optional terminating ';'.
func (p *Parser) ParseStatement() (Statement, error) {
	var (
		stmt Statement
		err  error
	)
	switch p.cur.Type {
	case lexer.SELECT:
		stmt, err = p.parseSelect()
	case lexer.SHOW:
		stmt, err = p.parseShowTables()
	case lexer.DESCRIBE:
		stmt, err = p.parseDescribeTable()
	default:
		return nil, p.unexpected(UnexpectedToken)
	}
	if err != nil {
		return nil, err
	}

	if p.cur.Type == lexer.SEMICOLON {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.cur.Type != lexer.EOF {
		return nil, &ParseError{Kind: TrailingInput, Pos: p.cur.Pos, Token: p.cur.Literal}
	}
	return stmt, nil
}

func (p *Parser) unexpected(kind ParseErrorKind) error {
	lit := p.cur.Literal
	if lit == "" {
		lit = p.cur.Type.String()
	}
	return &ParseError{Kind: kind, Pos: p.cur.Pos, Token: lit}
}

func (p *Parser) expect(tt lexer.TokenType, kind ParseErrorKind) error {
	if p.cur.Type != tt {
		return p.unexpected(kind)
	}
	return p.advance()
}

// --- statements ---

func (p *Parser) parseSelect() (*SelectStmt, error) {
	if err := p.expect(lexer.SELECT, ExpectedKeyword); err != nil {
		return nil, err
	}
	projection, err := p.parseProjection()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.FROM, ExpectedKeyword); err != nil {
		return nil, err
	}
	source, err := p.parseSource()
	if err != nil {
		return nil, err
	}

	stmt := &SelectStmt{Projection: projection, Source: source}

	if p.cur.Type == lexer.WHERE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		filter, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Filter = filter
	}

	if p.cur.Type == lexer.ORDER {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.BY, ExpectedKeyword); err != nil {
			return nil, err
		}
		keys, err := p.parseSortKeys()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = keys
	}

	if p.cur.Type == lexer.LIMIT {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.INT {
			return nil, p.unexpected(MalformedLiteral)
		}
		n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return nil, p.unexpected(MalformedLiteral)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt.Limit = &n
	}

	return stmt, nil
}

func (p *Parser) parseShowTables() (*ShowTablesStmt, error) {
	if err := p.expect(lexer.SHOW, ExpectedKeyword); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TABLES, ExpectedKeyword); err != nil {
		return nil, err
	}
	return &ShowTablesStmt{}, nil
}

func (p *Parser) parseDescribeTable() (*DescribeTableStmt, error) {
	if err := p.expect(lexer.DESCRIBE, ExpectedKeyword); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TABLE, ExpectedKeyword); err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return nil, p.unexpected(ExpectedIdentifier)
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &DescribeTableStmt{Table: name}, nil
}

// --- projection ---

func (p *Parser) parseProjection() (Projection, error) {
	if p.cur.Type == lexer.STAR {
		if err := p.advance(); err != nil {
			return Projection{}, err
		}
		return Projection{Wildcard: true}, nil
	}
	var cols []ColumnRef
	for {
		ref, err := p.parseColumnRef()
		if err != nil {
			return Projection{}, err
		}
		cols = append(cols, ref)
		if p.cur.Type != lexer.COMMA {
			break
		}
		if err := p.advance(); err != nil {
			return Projection{}, err
		}
	}
	return Projection{Columns: cols}, nil
}

func (p *Parser) parseColumnRef() (ColumnRef, error) {
	if p.cur.Type != lexer.IDENT {
		return ColumnRef{}, p.unexpected(ExpectedIdentifier)
	}
	first := p.cur.Literal
	if err := p.advance(); err != nil {
		return ColumnRef{}, err
	}
	if p.cur.Type == lexer.DOT {
		if err := p.advance(); err != nil {
			return ColumnRef{}, err
		}
		if p.cur.Type != lexer.IDENT {
			return ColumnRef{}, p.unexpected(ExpectedIdentifier)
		}
		second := p.cur.Literal
		if err := p.advance(); err != nil {
			return ColumnRef{}, err
		}
		return ColumnRef{Qualifier: first, Name: second}, nil
	}
	return ColumnRef{Name: first}, nil
}

// --- source: table_ref { JOIN table_ref ON expr } ---

func (p *Parser) parseSource() (TableSource, error) {
	left, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	var source TableSource = left
	for p.cur.Type == lexer.JOIN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.ON, ExpectedKeyword); err != nil {
			return nil, err
		}
		on, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		source = &Join{Left: source, Right: right, On: on}
	}
	return source, nil
}

func (p *Parser) parseTableRef() (*Table, error) {
	if p.cur.Type != lexer.IDENT {
		return nil, p.unexpected(ExpectedIdentifier)
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	alias := ""
	if p.cur.Type == lexer.AS {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.IDENT {
			return nil, p.unexpected(ExpectedIdentifier)
		}
		alias = p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &Table{Name: name, Alias: alias}, nil
}

// --- ORDER BY ---

func (p *Parser) parseSortKeys() ([]SortKey, error) {
	var keys []SortKey
	for {
		col, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		dir := Asc
		switch p.cur.Type {
		case lexer.ASC:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case lexer.DESC:
			dir = Desc
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		keys = append(keys, SortKey{Column: col, Direction: dir})
		if p.cur.Type != lexer.COMMA {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// --- expr := or_expr; or_expr := and_expr { OR and_expr }; ---
// --- and_expr := unary { AND unary } ---

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.OR {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.AND {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
	return left, nil
}

// unary := '(' expr ')' | comparison
func (p *Parser) parseUnary() (Expr, error) {
	if p.cur.Type == lexer.LPAREN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN, UnexpectedToken); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return p.parseComparison()
}

// comparison := column_ref (=|!=|<|<=|>|>=) literal | column_ref LIKE string_literal
func (p *Parser) parseComparison() (Expr, error) {
	col, err := p.parseColumnRef()
	if err != nil {
		return nil, err
	}

	if p.cur.Type == lexer.LIKE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.STRING {
			return nil, p.unexpected(MalformedLiteral)
		}
		pattern := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Like{Column: col, Pattern: pattern}, nil
	}

	op, ok := compareOp(p.cur.Type)
	if !ok {
		return nil, p.unexpected(UnexpectedToken)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return &Compare{Column: col, Op: op, Value: lit}, nil
}

func compareOp(tt lexer.TokenType) (CompareOp, bool) {
	switch tt {
	case lexer.EQ:
		return OpEq, true
	case lexer.NEQ:
		return OpNeq, true
	case lexer.LT:
		return OpLt, true
	case lexer.LTE:
		return OpLte, true
	case lexer.GT:
		return OpGt, true
	case lexer.GTE:
		return OpGte, true
	default:
		return 0, false
	}
}

func (p *Parser) parseLiteral() (Literal, error) {
	switch p.cur.Type {
	case lexer.INT:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return Literal{}, p.unexpected(MalformedLiteral)
		}
		if err := p.advance(); err != nil {
			return Literal{}, err
		}
		return Literal{Value: types.NewInt(n)}, nil
	case lexer.STRING:
		s := p.cur.Literal
		if err := p.advance(); err != nil {
			return Literal{}, err
		}
		return Literal{Value: types.NewText(s)}, nil
	case lexer.BOOL:
		b := p.cur.Literal == "TRUE"
		if err := p.advance(); err != nil {
			return Literal{}, err
		}
		return Literal{Value: types.NewBool(b)}, nil
	case lexer.NULL:
		if err := p.advance(); err != nil {
			return Literal{}, err
		}
		return Literal{Value: types.NewNull()}, nil
	default:
		return Literal{}, p.unexpected(MalformedLiteral)
	}
}
