package row

import (
	"testing"

	"relo/pkg/schema"
	"relo/pkg/types"
)

func mustSchema(t *testing.T, cols []schema.Column, pk string) *schema.Schema {
	t.Helper()
	s, err := schema.NewSchema(cols, pk)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return s
}

func TestTableStoreInsertAndScan(t *testing.T) {
	s := mustSchema(t, []schema.Column{{Name: "id", Type: types.Int}, {Name: "name", Type: types.Text}}, "id")
	ts := NewTableStore(s)

	id1, err := ts.Insert(Row{types.NewInt(1), types.NewText("Alice")})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	id2, err := ts.Insert(Row{types.NewInt(2), types.NewText("Bob")})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id1 >= id2 {
		t.Errorf("expected monotonically increasing ids, got %v then %v", id1, id2)
	}
	if ts.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ts.Len())
	}
	ids := ts.Scan()
	if len(ids) != 2 || ids[0] != id1 || ids[1] != id2 {
		t.Errorf("Scan() = %v, want [%v %v]", ids, id1, id2)
	}
}

func TestTableStoreRowArity(t *testing.T) {
	s := mustSchema(t, []schema.Column{{Name: "id", Type: types.Int}}, "")
	ts := NewTableStore(s)
	if _, err := ts.Insert(Row{types.NewInt(1), types.NewInt(2)}); err != ErrRowArity {
		t.Errorf("Insert() error = %v, want ErrRowArity", err)
	}
}

func TestTableStoreDuplicatePrimaryKey(t *testing.T) {
	s := mustSchema(t, []schema.Column{{Name: "id", Type: types.Int}}, "id")
	ts := NewTableStore(s)
	if _, err := ts.Insert(Row{types.NewInt(1)}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := ts.Insert(Row{types.NewInt(1)}); err != ErrDuplicatePrimaryKey {
		t.Errorf("Insert() error = %v, want ErrDuplicatePrimaryKey", err)
	}
	if ts.Len() != 1 {
		t.Errorf("duplicate insert should not modify state; Len() = %d, want 1", ts.Len())
	}
}
