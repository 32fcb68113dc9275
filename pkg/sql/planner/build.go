package planner

import (
	"log/slog"

	"relo/pkg/catalog"
	"relo/pkg/row"
	"relo/pkg/sql/parser"
)

// Predicate is a validated boolean expression: Build has already confirmed
// every column reference it contains resolves, unambiguously, against the
// schema of the plan node it is attached to. The executor evaluates it
// directly against a row.RowView at runtime.
type Predicate = parser.Expr

// Build turns a parsed statement into a logical plan, resolving every
// column and table reference against cat.
func Build(stmt parser.Statement, cat *catalog.Catalog) (PlanNode, error) {
	switch s := stmt.(type) {
	case *parser.SelectStmt:
		return buildSelect(s, cat)
	case *parser.ShowTablesStmt:
		return &ShowTablesNode{}, nil
	case *parser.DescribeTableStmt:
		sch, _, err := cat.Lookup(s.Table)
		if err != nil {
			return nil, &PlanError{Kind: UnknownTable, Detail: s.Table}
		}
		return &DescribeTableNode{Table: s.Table, Target: sch}, nil
	default:
		return nil, &PlanError{Kind: InvalidProjection, Detail: "unrecognized statement"}
	}
}

func buildSelect(s *parser.SelectStmt, cat *catalog.Catalog) (PlanNode, error) {
	source, err := buildSource(s.Source, cat)
	if err != nil {
		return nil, err
	}
	var node PlanNode = source

	if s.Filter != nil {
		if err := validateExpr(s.Filter, node.Schema()); err != nil {
			return nil, err
		}
		if _, singleTable := node.(*ScanNode); singleTable {
			slog.Debug("planner: filter pushed directly above single-table scan", "table", node.(*ScanNode).Table)
		}
		node = &FilterNode{Input: node, Predicate: s.Filter}
	}

	if len(s.OrderBy) > 0 {
		keys := make([]ResolvedSortKey, len(s.OrderBy))
		for i, k := range s.OrderBy {
			idx, err := resolveIndex(k.Column, node.Schema())
			if err != nil {
				return nil, err
			}
			keys[i] = ResolvedSortKey{Index: idx, Ascending: k.Direction == parser.Asc}
		}
		node = &SortNode{Input: node, Keys: keys}
	}

	if s.Limit != nil {
		node = &LimitNode{Input: node, Count: *s.Limit}
	}

	refs, cols, err := resolveProjection(s.Projection, node.Schema())
	if err != nil {
		return nil, err
	}
	return &ProjectNode{Input: node, Refs: refs, Columns: cols}, nil
}

func buildSource(src parser.TableSource, cat *catalog.Catalog) (PlanNode, error) {
	switch t := src.(type) {
	case *parser.Table:
		sch, _, err := cat.Lookup(t.Name)
		if err != nil {
			return nil, &PlanError{Kind: UnknownTable, Detail: t.Name}
		}
		return &ScanNode{Table: t.Name, Alias: t.Alias, TableSchema: sch}, nil
	case *parser.Join:
		left, err := buildSource(t.Left, cat)
		if err != nil {
			return nil, err
		}
		right, err := buildSource(t.Right, cat)
		if err != nil {
			return nil, err
		}
		combined := append(append([]ResolvedColumn{}, left.Schema()...), right.Schema()...)
		if err := validateExpr(t.On, combined); err != nil {
			return nil, err
		}
		return &JoinNode{Left: left, Right: right, On: t.On}, nil
	default:
		return nil, &PlanError{Kind: InvalidProjection, Detail: "unrecognized table source"}
	}
}

// validateExpr walks a boolean expression tree, checking every column
// reference resolves unambiguously against schema.
func validateExpr(e parser.Expr, schema []ResolvedColumn) error {
	switch x := e.(type) {
	case *parser.And:
		if err := validateExpr(x.Left, schema); err != nil {
			return err
		}
		return validateExpr(x.Right, schema)
	case *parser.Or:
		if err := validateExpr(x.Left, schema); err != nil {
			return err
		}
		return validateExpr(x.Right, schema)
	case *parser.Compare:
		_, err := resolveIndex(x.Column, schema)
		return err
	case *parser.Like:
		_, err := resolveIndex(x.Column, schema)
		return err
	default:
		return &PlanError{Kind: InvalidProjection, Detail: "unrecognized expression"}
	}
}

// resolveIndex finds ref's position in schema, case-sensitively, returning
// PlanError{UnresolvedColumn} or PlanError{AmbiguousColumn} as appropriate.
func resolveIndex(ref parser.ColumnRef, schema []ResolvedColumn) (int, error) {
	if ref.Qualifier != "" {
		for i, c := range schema {
			if c.Qualifier == ref.Qualifier && c.Column.Name == ref.Name {
				return i, nil
			}
		}
		return 0, &PlanError{Kind: UnresolvedColumn, Detail: ref.Qualifier + "." + ref.Name}
	}
	found := -1
	for i, c := range schema {
		if c.Column.Name != ref.Name {
			continue
		}
		if found >= 0 {
			return 0, &PlanError{Kind: AmbiguousColumn, Detail: ref.Name}
		}
		found = i
	}
	if found < 0 {
		return 0, &PlanError{Kind: UnresolvedColumn, Detail: ref.Name}
	}
	return found, nil
}

// resolveProjection expands a wildcard to schema's full column list, in
// order, or validates and translates an explicit column list into
// row.ColumnRef values the executor's RowView.Project can consume.
func resolveProjection(p parser.Projection, schema []ResolvedColumn) ([]row.ColumnRef, []ResolvedColumn, error) {
	if p.Wildcard {
		refs := make([]row.ColumnRef, len(schema))
		for i, c := range schema {
			refs[i] = row.ColumnRef{Qualifier: c.Qualifier, Name: c.Column.Name}
		}
		cols := make([]ResolvedColumn, len(schema))
		copy(cols, schema)
		return refs, cols, nil
	}

	refs := make([]row.ColumnRef, len(p.Columns))
	cols := make([]ResolvedColumn, len(p.Columns))
	for i, ref := range p.Columns {
		idx, err := resolveIndex(ref, schema)
		if err != nil {
			return nil, nil, err
		}
		refs[i] = row.ColumnRef{Qualifier: ref.Qualifier, Name: ref.Name}
		cols[i] = ResolvedColumn{Qualifier: schema[idx].Qualifier, Column: schema[idx].Column}
	}
	return refs, cols, nil
}
