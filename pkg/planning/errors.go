package planning

import (
	"fmt"

	"github.com/plansim/plansim/pkg/domain/entities"
)

// LateDemandPushError reports a dependent-demand push landing before work
// already netted for the receiving item. It indicates a broken processing
// order and is always fatal; it cannot occur under a correct topological
// traversal.
type LateDemandPushError struct {
	ItemID entities.ItemID
	Period entities.Period
	Cursor entities.Period
}

func (e *LateDemandPushError) Error() string {
	return fmt.Sprintf("late dependent demand push for %s at period %d: item already netted through period %d",
		e.ItemID, e.Period, e.Cursor)
}

// NotYetComputedError reports a projected-balance read for a period the
// engine has not netted yet. Like LateDemandPushError it flags a processing
// order bug and is always fatal.
type NotYetComputedError struct {
	ItemID entities.ItemID
	Period entities.Period
}

func (e *NotYetComputedError) Error() string {
	return fmt.Sprintf("projected balance for %s at period %d is not yet computed", e.ItemID, e.Period)
}
