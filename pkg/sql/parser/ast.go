// Package parser turns a lexer.Token stream into an AST: Select,
// ShowTables, or DescribeTable.
package parser

import "relo/pkg/types"

// Statement is the root AST node: one of Select, ShowTables, or
// DescribeTable.
type Statement interface{ stmt() }

// ColumnRef is a possibly-qualified column reference ("t.col" or "col").
type ColumnRef struct {
	Qualifier string // "" if unqualified
	Name      string
}

// Projection is either a wildcard ('*') or an explicit, ordered column
// list.
type Projection struct {
	Wildcard bool
	Columns  []ColumnRef
}

// TableSource is the FROM clause's join tree: a leaf Table or a Join
// node. Multi-table FROM ... JOIN ... JOIN ... parses left-deep.
type TableSource interface{ source() }

// Table is a leaf table reference, optionally aliased.
type Table struct {
	Name  string
	Alias string // "" if none
}

// Join is an inner join of Left and Right, on the boolean predicate On.
type Join struct {
	Left  TableSource
	Right TableSource
	On    Expr
}

func (*Table) source() {}
func (*Join) source()  {}

// Direction is a sort key's ordering.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// SortKey is one ORDER BY key.
type SortKey struct {
	Column    ColumnRef
	Direction Direction
}

// CompareOp is a comparison operator.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

// Expr is a boolean expression tree: And/Or of Compare/Like leaves,
// grouped by parentheses during parsing.
type Expr interface{ expr() }

// Literal is a literal value appearing on the right-hand side of a
// comparison.
type Literal struct {
	Value types.ColumnValue
}

// Compare compares Column against Value using Op. Per spec grammar, the
// left-hand side of a comparison is always a column reference and the
// right-hand side is always a literal.
type Compare struct {
	Column ColumnRef
	Op     CompareOp
	Value  Literal
}

// Like matches Column's text value against Pattern (caller-supplied
// regex syntax, unanchored).
type Like struct {
	Column  ColumnRef
	Pattern string
}

// And and Or combine two boolean sub-expressions.
type And struct{ Left, Right Expr }
type Or struct{ Left, Right Expr }

func (*Compare) expr() {}
func (*Like) expr()    {}
func (*And) expr()     {}
func (*Or) expr()      {}

// SelectStmt is a SELECT statement.
type SelectStmt struct {
	Projection Projection
	Source     TableSource
	Filter     Expr // nil if no WHERE
	OrderBy    []SortKey
	Limit      *int64 // nil if no LIMIT
}

// ShowTablesStmt is SHOW TABLES.
type ShowTablesStmt struct{}

// DescribeTableStmt is DESCRIBE TABLE <name>.
type DescribeTableStmt struct {
	Table string
}

func (*SelectStmt) stmt()        {}
func (*ShowTablesStmt) stmt()    {}
func (*DescribeTableStmt) stmt() {}
