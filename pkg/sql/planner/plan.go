// Package planner turns a parser.Statement into a tree of PlanNodes: the
// logical plan the executor walks to build a pull-based ResultSet. Column
// references are resolved here, against the catalog, once — the executor
// never has to ask "does this column exist".
package planner

import (
	"relo/pkg/row"
	"relo/pkg/schema"
	"relo/pkg/types"
)

// ResolvedColumn is one column of a plan node's output schema, tagged with
// the qualifier (alias, or table name if unaliased) it is exposed under.
type ResolvedColumn struct {
	Qualifier string
	Column    schema.Column
}

// PlanNode is one node of the logical plan tree.
type PlanNode interface {
	// Schema returns the node's output columns, in exposure order.
	Schema() []ResolvedColumn
	planNode()
}

// ScanNode reads every row of one base table, in storage order.
type ScanNode struct {
	Table       string
	Alias       string // "" if unaliased
	TableSchema *schema.Schema
}

func (n *ScanNode) Schema() []ResolvedColumn {
	return qualify(qualifierOf(n.Table, n.Alias), n.TableSchema)
}
func (*ScanNode) planNode() {}

// FilterNode keeps only rows for which Predicate evaluates true. Predicate
// is a validated parser.Expr: Build has already confirmed every column
// reference it contains resolves, unambiguously, against Input's schema.
type FilterNode struct {
	Input     PlanNode
	Predicate Predicate
}

func (n *FilterNode) Schema() []ResolvedColumn { return n.Input.Schema() }
func (*FilterNode) planNode()                  {}

// JoinNode is an inner, nested-loop join of Left and Right on predicate On.
type JoinNode struct {
	Left, Right PlanNode
	On          Predicate
}

func (n *JoinNode) Schema() []ResolvedColumn {
	out := make([]ResolvedColumn, 0, len(n.Left.Schema())+len(n.Right.Schema()))
	out = append(out, n.Left.Schema()...)
	out = append(out, n.Right.Schema()...)
	return out
}
func (*JoinNode) planNode() {}

// SortNode produces Input's rows in ascending or descending order of Keys,
// breaking ties by input order (a stable sort).
type SortNode struct {
	Input PlanNode
	Keys  []ResolvedSortKey
}

// ResolvedSortKey is one ORDER BY key, resolved to a position in Input's
// schema.
type ResolvedSortKey struct {
	Index     int
	Ascending bool
}

func (n *SortNode) Schema() []ResolvedColumn { return n.Input.Schema() }
func (*SortNode) planNode()                  {}

// LimitNode yields at most Count of Input's rows.
type LimitNode struct {
	Input PlanNode
	Count int64
}

func (n *LimitNode) Schema() []ResolvedColumn { return n.Input.Schema() }
func (*LimitNode) planNode()                  {}

// ProjectNode narrows Input's rows to Refs, in the given order. Refs is
// always fully resolved: wildcard expansion already happened in Build.
type ProjectNode struct {
	Input   PlanNode
	Refs    []row.ColumnRef
	Columns []ResolvedColumn
}

func (n *ProjectNode) Schema() []ResolvedColumn { return n.Columns }
func (*ProjectNode) planNode()                  {}

// ShowTablesNode lists every table name registered in the catalog.
type ShowTablesNode struct{}

func (*ShowTablesNode) Schema() []ResolvedColumn {
	return []ResolvedColumn{{Column: schema.Column{Name: "table_name", Type: types.Text}}}
}
func (*ShowTablesNode) planNode() {}

// DescribeTableNode lists one table's column definitions.
type DescribeTableNode struct {
	Table  string
	Target *schema.Schema
}

func (*DescribeTableNode) Schema() []ResolvedColumn {
	return []ResolvedColumn{
		{Column: schema.Column{Name: "column_name", Type: types.Text}},
		{Column: schema.Column{Name: "column_type", Type: types.Text}},
	}
}
func (*DescribeTableNode) planNode() {}

func qualifierOf(table, alias string) string {
	if alias != "" {
		return alias
	}
	return table
}

func qualify(qualifier string, s *schema.Schema) []ResolvedColumn {
	out := make([]ResolvedColumn, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = ResolvedColumn{Qualifier: qualifier, Column: c}
	}
	return out
}
