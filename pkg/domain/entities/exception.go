package entities

import "fmt"

// ExceptionKind classifies plan-level exceptions. Exceptions are recorded
// on the plan result and never abort a run.
type ExceptionKind int

const (
	PastDue ExceptionKind = iota
	Cycle
	Shortage
)

// String method for ExceptionKind enum
func (k ExceptionKind) String() string {
	switch k {
	case PastDue:
		return "PastDue"
	case Cycle:
		return "Cycle"
	case Shortage:
		return "Shortage"
	default:
		return "Unknown"
	}
}

// Exception records a plan-level condition the caller must decide on:
// an order that would have to be released before the horizon start, or an
// item still short at horizon end.
type Exception struct {
	ItemID ItemID
	Period Period
	Kind   ExceptionKind
	Detail string
}

func (e Exception) String() string {
	return fmt.Sprintf("%s %s@%d: %s", e.Kind, e.ItemID, e.Period, e.Detail)
}
