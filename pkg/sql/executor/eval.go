package executor

import (
	"fmt"
	"regexp"

	"relo/pkg/row"
	"relo/pkg/sql/parser"
	"relo/pkg/types"
)

// compiledExpr is a parser.Expr with its LIKE patterns precompiled once, at
// the owning ResultSet's Open(), rather than per row.
type compiledExpr interface {
	eval(v row.RowView) (bool, error)
}

// compile walks a validated parser.Expr (the planner has already confirmed
// every column reference resolves) and precompiles any LIKE patterns.
func compile(e parser.Expr) (compiledExpr, error) {
	switch x := e.(type) {
	case *parser.And:
		left, err := compile(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := compile(x.Right)
		if err != nil {
			return nil, err
		}
		return &compiledAnd{left: left, right: right}, nil
	case *parser.Or:
		left, err := compile(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := compile(x.Right)
		if err != nil {
			return nil, err
		}
		return &compiledOr{left: left, right: right}, nil
	case *parser.Compare:
		return &compiledCompare{col: x.Column, op: x.Op, value: x.Value.Value}, nil
	case *parser.Like:
		re, err := regexp.Compile(x.Pattern)
		if err != nil {
			return nil, &EvalError{Kind: InvalidPattern, Detail: err.Error()}
		}
		return &compiledLike{col: x.Column, re: re}, nil
	default:
		return nil, &EvalError{Kind: TypeMismatch, Detail: fmt.Sprintf("unsupported expression %T", e)}
	}
}

type compiledAnd struct{ left, right compiledExpr }

func (c *compiledAnd) eval(v row.RowView) (bool, error) {
	left, err := c.left.eval(v)
	if err != nil || !left {
		return false, err
	}
	return c.right.eval(v)
}

type compiledOr struct{ left, right compiledExpr }

func (c *compiledOr) eval(v row.RowView) (bool, error) {
	left, err := c.left.eval(v)
	if err != nil {
		return false, err
	}
	if left {
		return true, nil
	}
	return c.right.eval(v)
}

type compiledCompare struct {
	col   parser.ColumnRef
	op    parser.CompareOp
	value types.ColumnValue
}

func (c *compiledCompare) eval(v row.RowView) (bool, error) {
	val, _, found, ambiguous := v.Lookup(c.col.Qualifier, c.col.Name)
	if ambiguous {
		return false, &EvalError{Kind: UnknownColumn, Detail: "ambiguous column " + c.col.Name}
	}
	if !found {
		return false, &EvalError{Kind: UnknownColumn, Detail: c.col.Name}
	}
	if val.IsNull() || c.value.IsNull() {
		return false, nil
	}
	if !types.SameType(val, c.value) {
		return false, &EvalError{Kind: TypeMismatch, Detail: "comparison across differing column types"}
	}

	switch c.op {
	case parser.OpEq:
		eq, _ := val.Equal(c.value)
		return eq, nil
	case parser.OpNeq:
		eq, _ := val.Equal(c.value)
		return !eq, nil
	default:
		cmp, ok := types.Compare(val, c.value)
		if !ok {
			return false, &EvalError{Kind: TypeMismatch, Detail: "values are not ordered"}
		}
		switch c.op {
		case parser.OpLt:
			return cmp < 0, nil
		case parser.OpLte:
			return cmp <= 0, nil
		case parser.OpGt:
			return cmp > 0, nil
		case parser.OpGte:
			return cmp >= 0, nil
		default:
			return false, &EvalError{Kind: TypeMismatch, Detail: "unknown comparison operator"}
		}
	}
}

type compiledLike struct {
	col parser.ColumnRef
	re  *regexp.Regexp
}

func (c *compiledLike) eval(v row.RowView) (bool, error) {
	val, colType, found, ambiguous := v.Lookup(c.col.Qualifier, c.col.Name)
	if ambiguous {
		return false, &EvalError{Kind: UnknownColumn, Detail: "ambiguous column " + c.col.Name}
	}
	if !found {
		return false, &EvalError{Kind: UnknownColumn, Detail: c.col.Name}
	}
	if val.IsNull() {
		return false, nil
	}
	if colType != types.Text {
		return false, &EvalError{Kind: TypeMismatch, Detail: "LIKE requires a Text column"}
	}
	return c.re.MatchString(val.Text()), nil
}
