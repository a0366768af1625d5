package planning

import (
	"sync"

	"github.com/plansim/plansim/pkg/domain/entities"
)

// DemandAggregator merges independent demand with the dependent demand the
// netting engine pushes down from parent orders. One aggregator belongs to
// exactly one run.
//
// Pushes are append-only and synchronized: parents on the same BOM level may
// propagate to a shared child concurrently. The per-item cursor tracks how
// far netting has advanced; a push behind the cursor is a fatal invariant
// violation.
type DemandAggregator struct {
	grid entities.TimeGrid

	mu          sync.Mutex
	independent map[entities.ItemID][]entities.Quantity
	dependent   map[entities.ItemID][]entities.Quantity
	cursor      map[entities.ItemID]int // next period index to net
}

// NewDemandAggregator seeds an aggregator with the snapshot's independent
// demand. Rows must already be validated against the grid.
func NewDemandAggregator(grid entities.TimeGrid, items []*entities.Item, rows []*entities.DemandRow) *DemandAggregator {
	a := &DemandAggregator{
		grid:        grid,
		independent: make(map[entities.ItemID][]entities.Quantity, len(items)),
		dependent:   make(map[entities.ItemID][]entities.Quantity, len(items)),
		cursor:      make(map[entities.ItemID]int, len(items)),
	}
	for _, item := range items {
		a.independent[item.ID] = make([]entities.Quantity, grid.Len())
		a.dependent[item.ID] = make([]entities.Quantity, grid.Len())
	}
	for _, row := range rows {
		a.independent[row.ItemID][grid.Index(row.Period)] += row.Quantity
	}
	return a
}

// GrossRequirement returns independent plus accumulated dependent demand for
// an item in a period.
func (a *DemandAggregator) GrossRequirement(itemID entities.ItemID, period entities.Period) entities.Quantity {
	if !a.grid.Contains(period) {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := a.grid.Index(period)
	return a.independent[itemID][idx] + a.dependent[itemID][idx]
}

// PushDependentDemand appends dependent demand generated from a parent's
// planned order. The period is the parent's release period; pushing behind
// the child's netting cursor fails with *LateDemandPushError.
func (a *DemandAggregator) PushDependentDemand(childID entities.ItemID, period entities.Period, qty entities.Quantity) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := a.grid.Index(period)
	if idx < a.cursor[childID] {
		return &LateDemandPushError{
			ItemID: childID,
			Period: period,
			Cursor: a.grid.Start + entities.Period(a.cursor[childID]) - 1,
		}
	}
	a.dependent[childID][idx] += qty
	return nil
}

// advanceCursor marks one more period of an item as netted. Only the
// engine's single owner of the item advances it, but the cursor map is
// shared with concurrent pushers and stays under the lock.
func (a *DemandAggregator) advanceCursor(itemID entities.ItemID) {
	a.mu.Lock()
	a.cursor[itemID]++
	a.mu.Unlock()
}
