package parser

import "testing"

func parseSelect(t *testing.T, sql string) *SelectStmt {
	t.Helper()
	p, err := New(sql)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("ParseStatement(%q): %v", sql, err)
	}
	sel, ok := stmt.(*SelectStmt)
	if !ok {
		t.Fatalf("ParseStatement(%q) = %T, want *SelectStmt", sql, stmt)
	}
	return sel
}

func TestParseWildcardSelect(t *testing.T) {
	sel := parseSelect(t, "SELECT * FROM employees")
	if !sel.Projection.Wildcard {
		t.Errorf("expected wildcard projection")
	}
	tbl, ok := sel.Source.(*Table)
	if !ok || tbl.Name != "employees" {
		t.Fatalf("Source = %+v, want Table{employees}", sel.Source)
	}
}

func TestParseProjectionList(t *testing.T) {
	sel := parseSelect(t, "SELECT id, name FROM employees")
	if sel.Projection.Wildcard {
		t.Fatalf("did not expect wildcard")
	}
	want := []ColumnRef{{Name: "id"}, {Name: "name"}}
	if len(sel.Projection.Columns) != len(want) {
		t.Fatalf("Columns = %+v", sel.Projection.Columns)
	}
	for i := range want {
		if sel.Projection.Columns[i] != want[i] {
			t.Errorf("Columns[%d] = %+v, want %+v", i, sel.Projection.Columns[i], want[i])
		}
	}
}

func TestParseWhereComparison(t *testing.T) {
	sel := parseSelect(t, "SELECT name FROM employees WHERE id >= 2")
	cmp, ok := sel.Filter.(*Compare)
	if !ok {
		t.Fatalf("Filter = %T, want *Compare", sel.Filter)
	}
	if cmp.Column.Name != "id" || cmp.Op != OpGte || cmp.Value.Value.Int() != 2 {
		t.Errorf("Filter = %+v", cmp)
	}
}

func TestParseAndOrPrecedence(t *testing.T) {
	// A OR B AND C must parse as A OR (B AND C).
	sel := parseSelect(t, "SELECT * FROM t WHERE a = 1 OR b = 2 AND c = 3")
	or, ok := sel.Filter.(*Or)
	if !ok {
		t.Fatalf("Filter = %T, want *Or", sel.Filter)
	}
	if _, ok := or.Left.(*Compare); !ok {
		t.Errorf("Or.Left = %T, want *Compare", or.Left)
	}
	and, ok := or.Right.(*And)
	if !ok {
		t.Fatalf("Or.Right = %T, want *And", or.Right)
	}
	if _, ok := and.Left.(*Compare); !ok {
		t.Errorf("And.Left = %T, want *Compare", and.Left)
	}
	if _, ok := and.Right.(*Compare); !ok {
		t.Errorf("And.Right = %T, want *Compare", and.Right)
	}
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	// (a = 1 OR a = 2) AND b = 3
	sel := parseSelect(t, "SELECT * FROM t WHERE (a = 1 OR a = 2) AND b = 3")
	and, ok := sel.Filter.(*And)
	if !ok {
		t.Fatalf("Filter = %T, want *And", sel.Filter)
	}
	if _, ok := and.Left.(*Or); !ok {
		t.Errorf("And.Left = %T, want *Or", and.Left)
	}
	if _, ok := and.Right.(*Compare); !ok {
		t.Errorf("And.Right = %T, want *Compare", and.Right)
	}
}

func TestParseLike(t *testing.T) {
	sel := parseSelect(t, "SELECT name FROM employees WHERE name LIKE 'A.*'")
	like, ok := sel.Filter.(*Like)
	if !ok || like.Column.Name != "name" || like.Pattern != "A.*" {
		t.Fatalf("Filter = %+v", sel.Filter)
	}
}

func TestParseOrderByLimit(t *testing.T) {
	sel := parseSelect(t, "SELECT name FROM employees ORDER BY name DESC LIMIT 1")
	if len(sel.OrderBy) != 1 || sel.OrderBy[0].Column.Name != "name" || sel.OrderBy[0].Direction != Desc {
		t.Fatalf("OrderBy = %+v", sel.OrderBy)
	}
	if sel.Limit == nil || *sel.Limit != 1 {
		t.Fatalf("Limit = %v, want 1", sel.Limit)
	}
}

func TestParseJoinLeftDeep(t *testing.T) {
	sel := parseSelect(t, "SELECT * FROM a JOIN b ON a.x = b.x JOIN c ON b.y = c.y")
	outer, ok := sel.Source.(*Join)
	if !ok {
		t.Fatalf("Source = %T, want *Join", sel.Source)
	}
	if tbl, ok := outer.Right.(*Table); !ok || tbl.Name != "c" {
		t.Fatalf("outer.Right = %+v, want Table{c}", outer.Right)
	}
	inner, ok := outer.Left.(*Join)
	if !ok {
		t.Fatalf("outer.Left = %T, want *Join (left-deep)", outer.Left)
	}
	if tbl, ok := inner.Left.(*Table); !ok || tbl.Name != "a" {
		t.Fatalf("inner.Left = %+v, want Table{a}", inner.Left)
	}
	if tbl, ok := inner.Right.(*Table); !ok || tbl.Name != "b" {
		t.Fatalf("inner.Right = %+v, want Table{b}", inner.Right)
	}
}

func TestParseTableAlias(t *testing.T) {
	sel := parseSelect(t, "SELECT * FROM employees AS e")
	tbl, ok := sel.Source.(*Table)
	if !ok || tbl.Name != "employees" || tbl.Alias != "e" {
		t.Fatalf("Source = %+v", sel.Source)
	}
}

func TestParseShowTables(t *testing.T) {
	p, err := New("SHOW TABLES")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	if _, ok := stmt.(*ShowTablesStmt); !ok {
		t.Fatalf("stmt = %T, want *ShowTablesStmt", stmt)
	}
}

func TestParseDescribeTable(t *testing.T) {
	p, err := New("DESCRIBE TABLE employees")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("ParseStatement: %v", err)
	}
	d, ok := stmt.(*DescribeTableStmt)
	if !ok || d.Table != "employees" {
		t.Fatalf("stmt = %+v", stmt)
	}
}

func TestParseTrailingInputError(t *testing.T) {
	p, err := New("SELECT * FROM t WHERE a = 1 GARBAGE")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = p.ParseStatement()
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != TrailingInput {
		t.Fatalf("err = %v, want ParseError{TrailingInput}", err)
	}
}

func TestParseExpectedIdentifierError(t *testing.T) {
	_, err := New("SELECT FROM t")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, _ := New("SELECT FROM t")
	_, err = p.ParseStatement()
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ExpectedIdentifier {
		t.Fatalf("err = %v, want ParseError{ExpectedIdentifier}", err)
	}
}
