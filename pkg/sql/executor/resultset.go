// Package executor compiles a planner.PlanNode tree into a pull-based
// ResultSet tree: open() prepares state, next() yields one row.RowView at
// a time or end-of-stream, schema() reports the composite schema exposed.
package executor

import (
	"fmt"
	"io"

	"relo/pkg/catalog"
	"relo/pkg/row"
	"relo/pkg/sql/planner"
)

// ResultSet is a pull-based row iterator. Next returns io.EOF once the
// stream is exhausted; that is terminal. An *EvalError returned from
// Next is not terminal: it is surfaced for that one step (so the caller
// sees the bad row) but does not poison iteration — calling Next again
// resumes with the next underlying row. The one exception is a
// SortResultSet comparator failure: that *EvalError is not row-local and
// is returned again on every later Next. Any other error is fatal.
type ResultSet interface {
	Open() error
	Next() (row.RowView, error)
	Schema() []planner.ResolvedColumn
	Close() error
}

// Compile turns a plan node into its executing ResultSet tree. cat is
// consulted read-only, for scans and metadata operators.
func Compile(node planner.PlanNode, cat *catalog.Catalog) (ResultSet, error) {
	switch n := node.(type) {
	case *planner.ScanNode:
		return newScanResultSet(n, cat)
	case *planner.FilterNode:
		return newFilterResultSet(n, cat)
	case *planner.ProjectNode:
		return newProjectResultSet(n, cat)
	case *planner.LimitNode:
		return newLimitResultSet(n, cat)
	case *planner.SortNode:
		return newSortResultSet(n, cat)
	case *planner.JoinNode:
		return newJoinResultSet(n, cat)
	case *planner.ShowTablesNode:
		return newShowTablesResultSet(cat), nil
	case *planner.DescribeTableNode:
		return newDescribeTableResultSet(n), nil
	default:
		return nil, fmt.Errorf("executor: unrecognized plan node %T", node)
	}
}

// ScanResultSet streams a TableStore in row-id order.
type ScanResultSet struct {
	node  *planner.ScanNode
	store *row.TableStore
	ids   []row.RowId
	pos   int
}

func newScanResultSet(n *planner.ScanNode, cat *catalog.Catalog) (*ScanResultSet, error) {
	_, store, err := cat.Lookup(n.Table)
	if err != nil {
		return nil, err
	}
	return &ScanResultSet{node: n, store: store}, nil
}

func (s *ScanResultSet) Open() error {
	s.ids = s.store.Scan()
	s.pos = 0
	return nil
}

func (s *ScanResultSet) Next() (row.RowView, error) {
	if s.pos >= len(s.ids) {
		return row.RowView{}, io.EOF
	}
	id := s.ids[s.pos]
	data, _ := s.store.Lookup(id)
	s.pos++
	return row.NewRowView(s.node.Table, s.node.Alias, s.node.TableSchema, data, id), nil
}

func (s *ScanResultSet) Schema() []planner.ResolvedColumn { return s.node.Schema() }
func (s *ScanResultSet) Close() error                     { return nil }

// FilterResultSet yields child rows for which Predicate evaluates true.
// A predicate evaluation failure on one row (e.g. LIKE against a
// non-Text column) is returned as that row's error rather than silently
// skipped, per the per-row EvalError contract; the next Next() call
// continues with the following child row.
type FilterResultSet struct {
	node     *planner.FilterNode
	child    ResultSet
	compiled compiledExpr
}

func newFilterResultSet(n *planner.FilterNode, cat *catalog.Catalog) (*FilterResultSet, error) {
	child, err := Compile(n.Input, cat)
	if err != nil {
		return nil, err
	}
	return &FilterResultSet{node: n, child: child}, nil
}

func (f *FilterResultSet) Open() error {
	if err := f.child.Open(); err != nil {
		return err
	}
	c, err := compile(f.node.Predicate)
	if err != nil {
		return err
	}
	f.compiled = c
	return nil
}

func (f *FilterResultSet) Next() (row.RowView, error) {
	for {
		v, err := f.child.Next()
		if err != nil {
			return row.RowView{}, err
		}
		match, err := f.compiled.eval(v)
		if err != nil {
			return row.RowView{}, err
		}
		if match {
			return v, nil
		}
	}
}

func (f *FilterResultSet) Schema() []planner.ResolvedColumn { return f.node.Schema() }
func (f *FilterResultSet) Close() error                     { return f.child.Close() }

// ProjectResultSet narrows each child row to Refs, in order.
type ProjectResultSet struct {
	node  *planner.ProjectNode
	child ResultSet
}

func newProjectResultSet(n *planner.ProjectNode, cat *catalog.Catalog) (*ProjectResultSet, error) {
	child, err := Compile(n.Input, cat)
	if err != nil {
		return nil, err
	}
	return &ProjectResultSet{node: n, child: child}, nil
}

func (p *ProjectResultSet) Open() error { return p.child.Open() }

func (p *ProjectResultSet) Next() (row.RowView, error) {
	v, err := p.child.Next()
	if err != nil {
		return row.RowView{}, err
	}
	return v.Project(p.node.Refs), nil
}

func (p *ProjectResultSet) Schema() []planner.ResolvedColumn { return p.node.Schema() }
func (p *ProjectResultSet) Close() error                     { return p.child.Close() }

// LimitResultSet stops after Count rows.
type LimitResultSet struct {
	node  *planner.LimitNode
	child ResultSet
	seen  int64
}

func newLimitResultSet(n *planner.LimitNode, cat *catalog.Catalog) (*LimitResultSet, error) {
	child, err := Compile(n.Input, cat)
	if err != nil {
		return nil, err
	}
	return &LimitResultSet{node: n, child: child}, nil
}

func (l *LimitResultSet) Open() error { l.seen = 0; return l.child.Open() }

func (l *LimitResultSet) Next() (row.RowView, error) {
	if l.seen >= l.node.Count {
		return row.RowView{}, io.EOF
	}
	v, err := l.child.Next()
	if err != nil {
		return row.RowView{}, err
	}
	l.seen++
	return v, nil
}

func (l *LimitResultSet) Schema() []planner.ResolvedColumn { return l.node.Schema() }
func (l *LimitResultSet) Close() error                     { return l.child.Close() }
