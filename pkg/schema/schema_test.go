package schema

import (
	"errors"
	"testing"

	"relo/pkg/types"
)

func TestNewSchemaValid(t *testing.T) {
	s, err := NewSchema([]Column{
		{Name: "id", Type: types.Int},
		{Name: "name", Type: types.Text},
	}, "id")
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.HasPrimaryKey() || s.PrimaryKeyIndex() != 0 {
		t.Fatalf("primary key not resolved to index 0")
	}
}

func TestNewSchemaNoPrimaryKey(t *testing.T) {
	s, err := NewSchema([]Column{{Name: "a", Type: types.Int}}, "")
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	if s.HasPrimaryKey() {
		t.Fatalf("HasPrimaryKey() = true, want false")
	}
}

func TestNewSchemaDuplicateColumn(t *testing.T) {
	_, err := NewSchema([]Column{
		{Name: "a", Type: types.Int},
		{Name: "a", Type: types.Text},
	}, "")
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Fatalf("err = %v, want ErrDuplicateColumn", err)
	}
}

func TestNewSchemaPrimaryKeyNotColumn(t *testing.T) {
	_, err := NewSchema([]Column{{Name: "a", Type: types.Int}}, "missing")
	if !errors.Is(err, ErrPrimaryKeyNotColumn) {
		t.Fatalf("err = %v, want ErrPrimaryKeyNotColumn", err)
	}
}
