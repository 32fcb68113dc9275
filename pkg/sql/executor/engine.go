package executor

import (
	"relo/pkg/catalog"
	"relo/pkg/row"
	"relo/pkg/schema"
	"relo/pkg/sql/parser"
	"relo/pkg/sql/planner"
)

// Engine ties the lexer, parser, planner, and executor together behind the
// three operations an external collaborator (the thin client facade, the
// insertion API) actually needs: create a table, insert a row, run a
// query. It owns a Catalog and never mutates table contents itself outside
// of CreateTable/Insert.
type Engine struct {
	cat *catalog.Catalog
}

// New returns an Engine backed by an empty catalog.
func New() *Engine {
	return &Engine{cat: catalog.New()}
}

// Catalog exposes the underlying catalog, e.g. for LoadYAML bootstrap.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// CreateTable registers name with the given schema.
func (e *Engine) CreateTable(name string, s *schema.Schema) error {
	return e.cat.CreateTable(name, s)
}

// Insert validates and appends a row to name.
func (e *Engine) Insert(name string, r row.Row) (row.RowId, error) {
	return e.cat.Insert(name, r)
}

// Execute parses, plans, and opens sql, returning a QueryResult the caller
// pulls rows from. Lex/parse/plan errors are returned here, before any row
// is produced.
func (e *Engine) Execute(sql string) (*QueryResult, error) {
	p, err := parser.New(sql)
	if err != nil {
		return nil, err
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	plan, err := planner.Build(stmt, e.cat)
	if err != nil {
		return nil, err
	}
	rs, err := Compile(plan, e.cat)
	if err != nil {
		return nil, err
	}
	if err := rs.Open(); err != nil {
		return nil, err
	}
	return &QueryResult{rs: rs}, nil
}

// QueryResult is the handle Execute returns: a schema plus a one-row-at-a-
// time iteration contract. A per-row EvalError does not make the
// QueryResult unusable; the caller may keep calling Next.
type QueryResult struct {
	rs ResultSet
}

// Schema returns the result's composite output schema.
func (q *QueryResult) Schema() []planner.ResolvedColumn { return q.rs.Schema() }

// Next returns the next row, or io.EOF once exhausted.
func (q *QueryResult) Next() (row.RowView, error) {
	return q.rs.Next()
}

// Close releases any buffered state (e.g. a Sort's materialized rows).
func (q *QueryResult) Close() error { return q.rs.Close() }
