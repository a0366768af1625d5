package planning

import (
	"sort"

	"github.com/plansim/plansim/pkg/domain/entities"
)

// PlanResult is the immutable output of one simulation run: planned orders,
// inventory projections and exceptions, tagged with the run identity and the
// input snapshot identity that produced it. The engine seals it in canonical
// order before returning, so identical snapshots yield identical results.
type PlanResult struct {
	RunID           string
	ScenarioID      string
	SnapshotVersion string

	PlannedOrders []entities.PlannedOrder
	Projections   []entities.InventoryProjection
	Exceptions    []entities.Exception
}

// OrdersFor returns the planned orders of one item in due-period order.
func (r *PlanResult) OrdersFor(itemID entities.ItemID) []entities.PlannedOrder {
	var out []entities.PlannedOrder
	for _, order := range r.PlannedOrders {
		if order.ItemID == itemID {
			out = append(out, order)
		}
	}
	return out
}

// ProjectionFor returns the projected balance of one item at a period,
// reporting whether the item is part of the plan.
func (r *PlanResult) ProjectionFor(itemID entities.ItemID, period entities.Period) (entities.Quantity, bool) {
	for _, row := range r.Projections {
		if row.ItemID == itemID && row.Period == period {
			return row.Projected, true
		}
	}
	return 0, false
}

// ExceptionsOf returns all exceptions of one kind.
func (r *PlanResult) ExceptionsOf(kind entities.ExceptionKind) []entities.Exception {
	var out []entities.Exception
	for _, ex := range r.Exceptions {
		if ex.Kind == kind {
			out = append(out, ex)
		}
	}
	return out
}

// seal sorts every collection into canonical order. Called exactly once by
// the engine before the result is handed out.
func (r *PlanResult) seal() {
	sort.Slice(r.PlannedOrders, func(i, j int) bool {
		a, b := r.PlannedOrders[i], r.PlannedOrders[j]
		if a.ItemID != b.ItemID {
			return a.ItemID < b.ItemID
		}
		if a.Due != b.Due {
			return a.Due < b.Due
		}
		return a.Quantity > b.Quantity
	})
	sort.Slice(r.Projections, func(i, j int) bool {
		a, b := r.Projections[i], r.Projections[j]
		if a.ItemID != b.ItemID {
			return a.ItemID < b.ItemID
		}
		return a.Period < b.Period
	})
	sort.Slice(r.Exceptions, func(i, j int) bool {
		a, b := r.Exceptions[i], r.Exceptions[j]
		if a.ItemID != b.ItemID {
			return a.ItemID < b.ItemID
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.Kind < b.Kind
	})
}
