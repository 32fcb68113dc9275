package planner

import "fmt"

// PlanErrorKind classifies a PlanError.
type PlanErrorKind int

const (
	UnresolvedColumn PlanErrorKind = iota
	AmbiguousColumn
	UnknownTable
	InvalidProjection
)

func (k PlanErrorKind) String() string {
	switch k {
	case UnresolvedColumn:
		return "UnresolvedColumn"
	case AmbiguousColumn:
		return "AmbiguousColumn"
	case UnknownTable:
		return "UnknownTable"
	case InvalidProjection:
		return "InvalidProjection"
	default:
		return "Unknown"
	}
}

// PlanError reports a column or table reference that Build could not
// resolve against the schema available at that point in the plan.
type PlanError struct {
	Kind   PlanErrorKind
	Detail string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("plan error (%s): %s", e.Kind, e.Detail)
}
