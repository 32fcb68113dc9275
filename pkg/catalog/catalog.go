// Package catalog registers tables by name and is the only component
// that mutates table contents: a Catalog is created once per engine
// instance and consulted read-only by the executor during query
// execution.
package catalog

import (
	"fmt"

	"relo/pkg/row"
	"relo/pkg/schema"
	"relo/pkg/types"
)

// entry bundles a table's schema with its backing store.
type entry struct {
	schema *schema.Schema
	store  *row.TableStore
}

// Catalog is a thread-unsafe map of table name to (Schema, TableStore).
// It is not safe for concurrent mutation; spec scope is a single writer.
type Catalog struct {
	tables map[string]*entry
	order  []string // table names in creation order, for SHOW TABLES
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{tables: make(map[string]*entry)}
}

// CreateTable registers a new table under name. Returns
// CatalogError{TableAlreadyExists} if name is already registered.
func (c *Catalog) CreateTable(name string, s *schema.Schema) error {
	if _, exists := c.tables[name]; exists {
		return &CatalogError{Kind: TableAlreadyExists, Detail: name}
	}
	c.tables[name] = &entry{schema: s, store: row.NewTableStore(s)}
	c.order = append(c.order, name)
	return nil
}

// Lookup returns the schema and store registered for name.
func (c *Catalog) Lookup(name string) (*schema.Schema, *row.TableStore, error) {
	e, ok := c.tables[name]
	if !ok {
		return nil, nil, &CatalogError{Kind: TableNotFound, Detail: name}
	}
	return e.schema, e.store, nil
}

// TableNames returns registered table names in creation order.
func (c *Catalog) TableNames() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Insert validates r against name's schema (row arity, per-column type,
// and primary-key uniqueness) and appends it, returning the new RowId.
func (c *Catalog) Insert(name string, r row.Row) (row.RowId, error) {
	e, ok := c.tables[name]
	if !ok {
		return 0, &CatalogError{Kind: TableNotFound, Detail: name}
	}
	if len(r) != e.schema.Len() {
		return 0, &CatalogError{Kind: RowArity, Detail: fmt.Sprintf("table %q expects %d columns, got %d", name, e.schema.Len(), len(r))}
	}
	for i, v := range r {
		col := e.schema.Columns[i]
		if !types.MatchesColumnType(v, col.Type) {
			return 0, &CatalogError{Kind: ColumnTypeMismatch, Detail: fmt.Sprintf("column %q expects %s", col.Name, col.Type)}
		}
	}
	id, err := e.store.Insert(r)
	if err != nil {
		return 0, &CatalogError{Kind: DuplicatePrimaryKey, Detail: fmt.Sprintf("table %q", name)}
	}
	return id, nil
}
