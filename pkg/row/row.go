// Package row holds the physical row representation, the in-memory
// TableStore that owns rows, and the zero-copy RowView projections the
// executor hands to callers.
package row

import "relo/pkg/types"

// Row is an ordered sequence of column values, one per schema column.
type Row []types.ColumnValue

// Clone returns an independent copy of the row's values.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// RowId is the opaque, monotonically increasing identifier a TableStore
// assigns at insert. Stable for the lifetime of the store.
type RowId uint64

// Less gives RowId a total order, used to break Sort ties by input order
// independent of slice-index happenstance (spec: Sort is stable).
func (id RowId) Less(other RowId) bool { return id < other }
