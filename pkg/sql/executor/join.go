package executor

import (
	"io"
	"log/slog"

	"relo/pkg/catalog"
	"relo/pkg/row"
	"relo/pkg/sql/planner"
)

// JoinResultSet is an inner nested-loop join. The right side must be
// independently re-openable for every left row: it stores the right plan
// node (not a live iterator) and the catalog, and builds a fresh
// ResultSet per restart via Compile, so no cursor state survives across
// left rows. An On-predicate evaluation failure on one (left, right) pair
// is returned as that pair's error; the next Next() call resumes with the
// following right row (or the next left row, restarting the right side).
type JoinResultSet struct {
	node  *planner.JoinNode
	cat   *catalog.Catalog
	left  ResultSet
	right ResultSet

	compiled compiledExpr
	leftRow  row.RowView
	haveLeft bool
}

func newJoinResultSet(n *planner.JoinNode, cat *catalog.Catalog) (*JoinResultSet, error) {
	left, err := Compile(n.Left, cat)
	if err != nil {
		return nil, err
	}
	return &JoinResultSet{node: n, cat: cat, left: left}, nil
}

func (j *JoinResultSet) Open() error {
	if err := j.left.Open(); err != nil {
		return err
	}
	c, err := compile(j.node.On)
	if err != nil {
		return err
	}
	j.compiled = c
	return j.restartRight()
}

// restartRight builds a fresh ResultSet from the stored right plan node,
// independent of any previous pass over the right side.
func (j *JoinResultSet) restartRight() error {
	right, err := Compile(j.node.Right, j.cat)
	if err != nil {
		return err
	}
	if err := right.Open(); err != nil {
		return err
	}
	j.right = right
	slog.Debug("join: restarted right-hand side")
	return nil
}

func (j *JoinResultSet) Next() (row.RowView, error) {
	if !j.haveLeft {
		v, err := j.left.Next()
		if err != nil {
			return row.RowView{}, err
		}
		j.leftRow = v
		j.haveLeft = true
	}

	for {
		rv, err := j.right.Next()
		if err == io.EOF {
			if err := j.right.Close(); err != nil {
				return row.RowView{}, err
			}
			v, err := j.left.Next()
			if err != nil {
				return row.RowView{}, err
			}
			j.leftRow = v
			if err := j.restartRight(); err != nil {
				return row.RowView{}, err
			}
			continue
		}
		if err != nil {
			return row.RowView{}, err
		}

		merged := row.Merge(j.leftRow, rv)
		match, err := j.compiled.eval(merged)
		if err != nil {
			return row.RowView{}, err
		}
		if match {
			return merged, nil
		}
	}
}

func (j *JoinResultSet) Schema() []planner.ResolvedColumn { return j.node.Schema() }

func (j *JoinResultSet) Close() error {
	if err := j.left.Close(); err != nil {
		return err
	}
	if j.right != nil {
		return j.right.Close()
	}
	return nil
}
