package row

import (
	"errors"

	"relo/pkg/schema"
)

// ErrRowArity is returned when a row's length doesn't match the store's
// schema.
var ErrRowArity = errors.New("row length does not match schema")

// ErrDuplicatePrimaryKey is returned when an inserted row's primary-key
// value already exists in the store.
var ErrDuplicatePrimaryKey = errors.New("duplicate primary key")

// TableStore is an ordered in-memory map of RowId to Row, plus an
// optional primary-key index for uniqueness checking. It performs no
// per-column type checking — that's the Catalog's job at insert time;
// TableStore only enforces row arity and primary-key uniqueness, which
// it must enforce itself to keep its index consistent.
type TableStore struct {
	schema  *schema.Schema
	rows    map[RowId]Row
	order   []RowId // insertion order == RowId order, kept for cheap ordered scans
	nextID  RowId
	pkIndex map[pkKey]RowId // present only when schema has a primary key
}

// pkKey is a comparable encoding of a primary-key ColumnValue, used as a
// Go map key (types.ColumnValue is already comparable for Int/Text/Bool,
// but we key on its string form to keep the index type-agnostic and
// avoid exposing types internals here).
type pkKey string

// NewTableStore creates an empty store bound to the given schema.
func NewTableStore(s *schema.Schema) *TableStore {
	ts := &TableStore{
		schema: s,
		rows:   make(map[RowId]Row),
	}
	if s.HasPrimaryKey() {
		ts.pkIndex = make(map[pkKey]RowId)
	}
	return ts
}

// Insert appends row, returning its newly assigned RowId. Returns
// ErrRowArity if row's length doesn't match the schema, or
// ErrDuplicatePrimaryKey if the schema declares a primary key and its
// value already exists in the store.
func (ts *TableStore) Insert(r Row) (RowId, error) {
	if len(r) != ts.schema.Len() {
		return 0, ErrRowArity
	}
	var key pkKey
	if ts.pkIndex != nil {
		key = pkKey(r[ts.schema.PrimaryKeyIndex()].String())
		if _, exists := ts.pkIndex[key]; exists {
			return 0, ErrDuplicatePrimaryKey
		}
	}
	id := ts.nextID
	ts.nextID++
	ts.rows[id] = r.Clone()
	ts.order = append(ts.order, id)
	if ts.pkIndex != nil {
		ts.pkIndex[key] = id
	}
	return id, nil
}

// Lookup returns the row stored under id.
func (ts *TableStore) Lookup(id RowId) (Row, bool) {
	r, ok := ts.rows[id]
	return r, ok
}

// Len returns the number of rows currently stored.
func (ts *TableStore) Len() int { return len(ts.rows) }

// Schema returns the schema the store was created with.
func (ts *TableStore) Schema() *schema.Schema { return ts.schema }

// Scan returns row ids in ascending RowId order (== insertion order,
// since ids are assigned monotonically and rows are never removed).
// The returned slice is a snapshot; mutating the store afterward does not
// affect it.
func (ts *TableStore) Scan() []RowId {
	ids := make([]RowId, len(ts.order))
	copy(ids, ts.order)
	return ids
}
