package executor

import (
	"io"

	"relo/pkg/catalog"
	"relo/pkg/row"
	"relo/pkg/schema"
	"relo/pkg/sql/planner"
	"relo/pkg/types"
)

// ShowTablesResultSet yields one single-column row per table name, in
// catalog insertion order.
type ShowTablesResultSet struct {
	cat   *catalog.Catalog
	sch   *schema.Schema
	names []string
	pos   int
}

func newShowTablesResultSet(cat *catalog.Catalog) *ShowTablesResultSet {
	sch, _ := schema.NewSchema([]schema.Column{{Name: "table_name", Type: types.Text}}, "")
	return &ShowTablesResultSet{cat: cat, sch: sch}
}

func (s *ShowTablesResultSet) Open() error {
	s.names = s.cat.TableNames()
	s.pos = 0
	return nil
}

func (s *ShowTablesResultSet) Next() (row.RowView, error) {
	if s.pos >= len(s.names) {
		return row.RowView{}, io.EOF
	}
	data := row.Row{types.NewText(s.names[s.pos])}
	id := row.RowId(s.pos)
	s.pos++
	return row.NewRowView("", "", s.sch, data, id), nil
}

func (s *ShowTablesResultSet) Schema() []planner.ResolvedColumn {
	return []planner.ResolvedColumn{{Column: s.sch.Columns[0]}}
}
func (s *ShowTablesResultSet) Close() error { return nil }

// DescribeTableResultSet yields one (column_name, column_type) row per
// column of the named table.
type DescribeTableResultSet struct {
	node *planner.DescribeTableNode
	sch  *schema.Schema
	pos  int
}

func newDescribeTableResultSet(n *planner.DescribeTableNode) *DescribeTableResultSet {
	sch, _ := schema.NewSchema([]schema.Column{
		{Name: "column_name", Type: types.Text},
		{Name: "column_type", Type: types.Text},
	}, "")
	return &DescribeTableResultSet{node: n, sch: sch}
}

func (d *DescribeTableResultSet) Open() error { d.pos = 0; return nil }

func (d *DescribeTableResultSet) Next() (row.RowView, error) {
	if d.pos >= d.node.Target.Len() {
		return row.RowView{}, io.EOF
	}
	col := d.node.Target.Columns[d.pos]
	data := row.Row{types.NewText(col.Name), types.NewText(col.Type.String())}
	id := row.RowId(d.pos)
	d.pos++
	return row.NewRowView("", "", d.sch, data, id), nil
}

func (d *DescribeTableResultSet) Schema() []planner.ResolvedColumn {
	return []planner.ResolvedColumn{{Column: d.sch.Columns[0]}, {Column: d.sch.Columns[1]}}
}
func (d *DescribeTableResultSet) Close() error { return nil }
