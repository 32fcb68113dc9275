package row

import (
	"relo/pkg/schema"
	"relo/pkg/types"
)

// side describes one schema "prefix" a RowView exposes: a base table's
// schema, the alias it's qualified under (if any), and the backing row
// whose values this side's visible positions index into.
type side struct {
	alias  string // "" if no alias; the schema-qualifying prefix otherwise
	name   string // table name, used for qualification when alias == ""
	schema *schema.Schema
	data   Row
	id     RowId
	// visible holds, for each exposed column, its index into data. For an
	// unprojected view this is 0..len(data)-1; Project narrows it.
	visible []int
}

// RowView is a read-only, schema-qualified projection over one or more
// physical rows. It never copies row contents: it borrows the Row slices
// handed to it and the Schema pointers of its sides.
type RowView struct {
	sides []side
}

// NewRowView builds a single-sided view over one backing row, optionally
// qualified by alias (if alias == "", the table's own name qualifies it).
// id is the row's identity, used by Sort to break ORDER BY ties
// deterministically.
func NewRowView(tableName, alias string, s *schema.Schema, data Row, id RowId) RowView {
	visible := make([]int, s.Len())
	for i := range visible {
		visible[i] = i
	}
	return RowView{sides: []side{{alias: alias, name: tableName, schema: s, data: data, id: id, visible: visible}}}
}

// Merge concatenates left's visible columns followed by right's,
// producing a composite view. Both inputs may themselves already be
// composite (this is how left-deep multi-joins accumulate sides).
func Merge(left, right RowView) RowView {
	sides := make([]side, 0, len(left.sides)+len(right.sides))
	sides = append(sides, left.sides...)
	sides = append(sides, right.sides...)
	return RowView{sides: sides}
}

// Width returns the number of visible columns in the view.
func (v RowView) Width() int {
	n := 0
	for _, s := range v.sides {
		n += len(s.visible)
	}
	return n
}

// At returns the value at the view's i-th visible column, in exposure
// order (left-to-right across sides).
func (v RowView) At(i int) types.ColumnValue {
	for _, s := range v.sides {
		if i < len(s.visible) {
			return s.data[s.visible[i]]
		}
		i -= len(s.visible)
	}
	panic("row: RowView index out of range")
}

// Values materializes the view's visible columns as a plain slice, in
// exposure order, for callers that need a concrete, detached row (e.g.
// to print or compare query results).
func (v RowView) Values() Row {
	out := make(Row, 0, v.Width())
	for _, s := range v.sides {
		for _, pos := range s.visible {
			out = append(out, s.data[pos])
		}
	}
	return out
}

// RowIDs returns one RowId per side the view is composed of, in side
// order (not per exposed column). A single-table scan's view has one;
// a view built by Merge across a join chain has one per joined side.
// Sort uses this as a final, deterministic ORDER BY tiebreaker.
func (v RowView) RowIDs() []RowId {
	ids := make([]RowId, len(v.sides))
	for i, s := range v.sides {
		ids[i] = s.id
	}
	return ids
}

// Lookup resolves a possibly-qualified column reference ("t.col" or
// "col") against the view. Qualified lookups select the side whose alias
// (or, lacking an alias, table name) matches qualifier. Unqualified
// lookups scan sides left-to-right and report ambiguous=true if more than
// one side exposes a column by that name.
func (v RowView) Lookup(qualifier, name string) (value types.ColumnValue, colType types.ColumnType, found, ambiguous bool) {
	if qualifier != "" {
		for _, s := range v.sides {
			if sideQualifier(s) != qualifier {
				continue
			}
			pos, ok := indexInVisible(s, name)
			if !ok {
				return types.ColumnValue{}, 0, false, false
			}
			return s.data[s.visible[pos]], s.schema.Columns[s.visible[pos]].Type, true, false
		}
		return types.ColumnValue{}, 0, false, false
	}

	var (
		val     types.ColumnValue
		ct      types.ColumnType
		matches int
	)
	for _, s := range v.sides {
		pos, ok := indexInVisible(s, name)
		if !ok {
			continue
		}
		matches++
		val = s.data[s.visible[pos]]
		ct = s.schema.Columns[s.visible[pos]].Type
	}
	if matches == 0 {
		return types.ColumnValue{}, 0, false, false
	}
	if matches > 1 {
		return types.ColumnValue{}, 0, true, true
	}
	return val, ct, true, false
}

func sideQualifier(s side) string {
	if s.alias != "" {
		return s.alias
	}
	return s.name
}

func indexInVisible(s side, name string) (int, bool) {
	for i, pos := range s.visible {
		if s.schema.Columns[pos].Name == name {
			return i, true
		}
	}
	return 0, false
}

// ColumnRef is a possibly-qualified column reference handed to Project.
type ColumnRef struct {
	Qualifier string // "" if unqualified
	Name      string
}

// Project returns a new view exposing only the named (qualifier, name)
// column references, in the given order. Unknown references are the
// caller's responsibility to have already resolved (the planner rejects
// them before the executor ever builds a ProjectResultSet).
func (v RowView) Project(refs []ColumnRef) RowView {
	projected := make([]side, 0, len(v.sides))
	for _, ref := range refs {
		s, pos, ok := v.locateSide(ref)
		if !ok {
			continue
		}
		projected = appendVisible(projected, s, pos)
	}
	return RowView{sides: projected}
}

func (v RowView) locateSide(ref ColumnRef) (side, int, bool) {
	if ref.Qualifier != "" {
		for _, s := range v.sides {
			if sideQualifier(s) != ref.Qualifier {
				continue
			}
			if pos, ok := indexInVisible(s, ref.Name); ok {
				return s, s.visible[pos], true
			}
		}
		return side{}, 0, false
	}
	for _, s := range v.sides {
		if pos, ok := indexInVisible(s, ref.Name); ok {
			return s, s.visible[pos], true
		}
	}
	return side{}, 0, false
}

// appendVisible adds column at backing position pos (within s's schema)
// to the last side in `into` if that side has s's qualifier, creating a
// new side otherwise, so that consecutive projections from the same
// underlying table fold into a single side with an extended visible list
// while Width/Values exposure order still follows the requested order.
func appendVisible(into []side, s side, pos int) []side {
	if n := len(into); n > 0 && into[n-1].schema == s.schema && sideQualifier(into[n-1]) == sideQualifier(s) {
		into[n-1].visible = append(into[n-1].visible, pos)
		return into
	}
	return append(into, side{alias: s.alias, name: s.name, schema: s.schema, data: s.data, id: s.id, visible: []int{pos}})
}
