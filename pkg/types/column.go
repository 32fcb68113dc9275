// Package types defines the column type system shared by the schema,
// row, and SQL packages: column types and the tagged column value that
// carries them.
package types

import "fmt"

// ColumnType is one of the column types a Schema column can declare.
type ColumnType int

const (
	Int ColumnType = iota
	Text
	Bool
)

// String returns the keyword spelling of the type, as used in DESCRIBE output.
func (t ColumnType) String() string {
	switch t {
	case Int:
		return "INT"
	case Text:
		return "TEXT"
	case Bool:
		return "BOOL"
	default:
		return "UNKNOWN"
	}
}

// kind tags which field of ColumnValue is live.
type kind int

const (
	kindNull kind = iota
	kindInt
	kindText
	kindBool
)

// ColumnValue is a tagged variant over {Int, Text, Bool, Null}. The zero
// value is Null.
type ColumnValue struct {
	k    kind
	i    int64
	s    string
	b    bool
}

// NewNull returns the Null value.
func NewNull() ColumnValue { return ColumnValue{k: kindNull} }

// NewInt returns an Int value.
func NewInt(i int64) ColumnValue { return ColumnValue{k: kindInt, i: i} }

// NewText returns a Text value.
func NewText(s string) ColumnValue { return ColumnValue{k: kindText, s: s} }

// NewBool returns a Bool value.
func NewBool(b bool) ColumnValue { return ColumnValue{k: kindBool, b: b} }

// IsNull reports whether the value is Null.
func (v ColumnValue) IsNull() bool { return v.k == kindNull }

// Type returns the ColumnType of the value. Null has no type of its own;
// callers that need to type-check a Null against a column should consult
// the column's declared type instead.
func (v ColumnValue) Type() (ColumnType, bool) {
	switch v.k {
	case kindInt:
		return Int, true
	case kindText:
		return Text, true
	case kindBool:
		return Bool, true
	default:
		return 0, false
	}
}

// Int returns the int64 payload. Only meaningful when Type() is Int.
func (v ColumnValue) Int() int64 { return v.i }

// Text returns the string payload. Only meaningful when Type() is Text.
func (v ColumnValue) Text() string { return v.s }

// Bool returns the bool payload. Only meaningful when Type() is Bool.
func (v ColumnValue) Bool() bool { return v.b }

// String renders the value for diagnostics and DescribeTable-ish output.
func (v ColumnValue) String() string {
	switch v.k {
	case kindNull:
		return "NULL"
	case kindInt:
		return fmt.Sprintf("%d", v.i)
	case kindText:
		return v.s
	case kindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	default:
		return "?"
	}
}

// Equal reports whether v and other are the same type and value. Null is
// never equal to anything, including another Null — callers implementing
// three-valued-as-false semantics should check IsNull first (spec: NULL
// never matches).
func (v ColumnValue) Equal(other ColumnValue) (bool, bool) {
	if v.k != other.k || v.k == kindNull {
		return false, v.k == other.k && v.k != kindNull
	}
	switch v.k {
	case kindInt:
		return v.i == other.i, true
	case kindText:
		return v.s == other.s, true
	case kindBool:
		return v.b == other.b, true
	default:
		return false, false
	}
}

// Compare orders v against other within a single column type. The second
// return value is false when the two values don't share a type (including
// either being Null), in which case the ordering is undefined.
func Compare(v, other ColumnValue) (cmp int, ok bool) {
	if v.k != other.k || v.k == kindNull {
		return 0, false
	}
	switch v.k {
	case kindInt:
		switch {
		case v.i < other.i:
			return -1, true
		case v.i > other.i:
			return 1, true
		default:
			return 0, true
		}
	case kindText:
		switch {
		case v.s < other.s:
			return -1, true
		case v.s > other.s:
			return 1, true
		default:
			return 0, true
		}
	case kindBool:
		switch {
		case v.b == other.b:
			return 0, true
		case !v.b && other.b:
			return -1, true
		default:
			return 1, true
		}
	default:
		return 0, false
	}
}

// SameType reports whether two values carry the same underlying type. Two
// Nulls are considered the same "type" here only for the purpose of type
// coercion checks in the evaluator; comparisons against Null are handled
// separately (NULL never matches).
func SameType(v, other ColumnValue) bool {
	return v.k == other.k
}
