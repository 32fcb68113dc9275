package executor

import (
	"io"
	"log/slog"
	"sort"

	"relo/pkg/catalog"
	"relo/pkg/row"
	"relo/pkg/sql/planner"
	"relo/pkg/types"
)

// SortResultSet materializes all child rows on the first Next() call, sorts
// them with a stable comparator built from Keys, then streams the buffered
// rows. Blocking: the whole child must be exhausted before any row is
// returned.
type SortResultSet struct {
	node  *planner.SortNode
	child ResultSet

	buffered bool
	rows     []row.RowView
	pos      int
	sortErr  error
}

func newSortResultSet(n *planner.SortNode, cat *catalog.Catalog) (*SortResultSet, error) {
	child, err := Compile(n.Input, cat)
	if err != nil {
		return nil, err
	}
	return &SortResultSet{node: n, child: child}, nil
}

func (s *SortResultSet) Open() error { return s.child.Open() }

func (s *SortResultSet) Next() (row.RowView, error) {
	if !s.buffered {
		if err := s.materialize(); err != nil {
			return row.RowView{}, err
		}
	}
	if s.sortErr != nil {
		return row.RowView{}, s.sortErr
	}
	if s.pos >= len(s.rows) {
		return row.RowView{}, io.EOF
	}
	v := s.rows[s.pos]
	s.pos++
	return v, nil
}

func (s *SortResultSet) materialize() error {
	for {
		v, err := s.child.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		s.rows = append(s.rows, v)
	}
	s.buffered = true
	slog.Debug("sort: materialized child rows", "rows", len(s.rows))

	sort.SliceStable(s.rows, func(i, j int) bool {
		less, ok := s.less(s.rows[i], s.rows[j])
		if !ok {
			return false
		}
		return less
	})
	return nil
}

// less applies Keys in order, breaking ties with the next key and
// finally with each row's RowId, lexicographically across the sides a
// composite (joined) view is built from — a deterministic tiebreak
// rather than a reliance on sort.SliceStable's own input-order
// guarantee. A false ok means some key's values were not comparable
// (differing types, or either side NULL); per spec this aborts the
// whole sort.
func (s *SortResultSet) less(a, b row.RowView) (less bool, ok bool) {
	for _, key := range s.node.Keys {
		av, bv := a.At(key.Index), b.At(key.Index)
		if av.IsNull() || bv.IsNull() || !types.SameType(av, bv) {
			s.sortErr = &EvalError{Kind: TypeMismatch, Detail: "sort key values are not comparable"}
			return false, false
		}
		cmp, ok := types.Compare(av, bv)
		if !ok {
			s.sortErr = &EvalError{Kind: TypeMismatch, Detail: "sort key values are not comparable"}
			return false, false
		}
		if cmp == 0 {
			continue
		}
		if key.Ascending {
			return cmp < 0, true
		}
		return cmp > 0, true
	}
	return lessByRowID(a, b), true
}

// lessByRowID compares two views' RowIDs side by side, in exposure
// order, returning at the first side whose ids differ.
func lessByRowID(a, b row.RowView) bool {
	aIDs, bIDs := a.RowIDs(), b.RowIDs()
	n := len(aIDs)
	if len(bIDs) < n {
		n = len(bIDs)
	}
	for i := 0; i < n; i++ {
		if aIDs[i] != bIDs[i] {
			return aIDs[i].Less(bIDs[i])
		}
	}
	return false
}

func (s *SortResultSet) Schema() []planner.ResolvedColumn { return s.node.Schema() }
func (s *SortResultSet) Close() error {
	s.rows = nil
	return s.child.Close()
}
