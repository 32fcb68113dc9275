package catalog

import (
	"strings"
	"testing"

	"relo/pkg/row"
	"relo/pkg/schema"
	"relo/pkg/types"
)

func employeesSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.NewSchema([]schema.Column{
		{Name: "id", Type: types.Int},
		{Name: "name", Type: types.Text},
	}, "id")
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return s
}

func TestCreateTableDuplicate(t *testing.T) {
	c := New()
	s := employeesSchema(t)
	if err := c.CreateTable("employees", s); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	err := c.CreateTable("employees", s)
	ce, ok := err.(*CatalogError)
	if !ok || ce.Kind != TableAlreadyExists {
		t.Fatalf("CreateTable() error = %v, want TableAlreadyExists", err)
	}
}

func TestInsertValidatesArityAndType(t *testing.T) {
	c := New()
	s := employeesSchema(t)
	if err := c.CreateTable("employees", s); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	if _, err := c.Insert("employees", row.Row{types.NewInt(1)}); err == nil {
		t.Errorf("expected RowArity error for short row")
	} else if ce := err.(*CatalogError); ce.Kind != RowArity {
		t.Errorf("error kind = %v, want RowArity", ce.Kind)
	}

	if _, err := c.Insert("employees", row.Row{types.NewText("x"), types.NewText("Alice")}); err == nil {
		t.Errorf("expected ColumnTypeMismatch error")
	} else if ce := err.(*CatalogError); ce.Kind != ColumnTypeMismatch {
		t.Errorf("error kind = %v, want ColumnTypeMismatch", ce.Kind)
	}

	if _, err := c.Insert("employees", row.Row{types.NewInt(1), types.NewText("Alice")}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := c.Insert("employees", row.Row{types.NewInt(1), types.NewText("Dup")}); err == nil {
		t.Errorf("expected DuplicatePrimaryKey error")
	} else if ce := err.(*CatalogError); ce.Kind != DuplicatePrimaryKey {
		t.Errorf("error kind = %v, want DuplicatePrimaryKey", ce.Kind)
	}

	_, store, err := c.Lookup("employees")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("store.Len() = %d, want 1 (failed inserts must not modify state)", store.Len())
	}
}

func TestTableNamesOrder(t *testing.T) {
	c := New()
	for _, name := range []string{"t1", "t2", "t3"} {
		s, err := schema.NewSchema([]schema.Column{{Name: "a", Type: types.Int}}, "")
		if err != nil {
			t.Fatalf("NewSchema: %v", err)
		}
		if err := c.CreateTable(name, s); err != nil {
			t.Fatalf("CreateTable(%s): %v", name, err)
		}
	}
	got := c.TableNames()
	want := []string{"t1", "t2", "t3"}
	if len(got) != len(want) {
		t.Fatalf("TableNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TableNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
tables:
  - name: employees
    primary_key: id
    columns:
      - name: id
        type: int
      - name: name
        type: text
  - name: orders
    columns:
      - name: user_id
        type: int
      - name: total
        type: int
`
	c := New()
	if err := c.LoadYAML(strings.NewReader(doc)); err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	names := c.TableNames()
	if len(names) != 2 || names[0] != "employees" || names[1] != "orders" {
		t.Fatalf("TableNames() = %v", names)
	}
	s, _, err := c.Lookup("employees")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !s.HasPrimaryKey() || s.PrimaryKey != "id" {
		t.Errorf("employees schema primary key = %q, want id", s.PrimaryKey)
	}
}

func TestLoadYAMLUnknownType(t *testing.T) {
	doc := `
tables:
  - name: t
    columns:
      - name: a
        type: vector
`
	c := New()
	err := c.LoadYAML(strings.NewReader(doc))
	if err == nil {
		t.Fatalf("expected error for unknown column type")
	}
	ce, ok := err.(*CatalogError)
	if !ok || ce.Kind != InvalidSchema {
		t.Fatalf("error = %v, want CatalogError{InvalidSchema}", err)
	}
}
