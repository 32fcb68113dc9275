package types

// MatchesColumnType reports whether v is acceptable for a column declared
// as t: either v is Null (absence is always allowed — the data model has
// no NOT NULL constraint) or v's own type equals t exactly. No coercion
// is performed between column types; spec: "cross-type comparisons fail
// with a type error".
func MatchesColumnType(v ColumnValue, t ColumnType) bool {
	if v.IsNull() {
		return true
	}
	vt, ok := v.Type()
	if !ok {
		return false
	}
	return vt == t
}
