package planning

import (
	"github.com/plansim/plansim/pkg/domain/entities"
)

// itemBalances holds the supply-side state of one item: immutable inputs
// (opening balance, scheduled receipts) and the running projected balance
// the engine fills in period by period. Each item is netted by exactly one
// goroutine, so per-item state needs no lock; the owning map is read-only
// after seeding.
type itemBalances struct {
	opening   entities.Quantity
	receipts  []entities.Quantity
	projected []entities.Quantity
	computed  int // number of periods already netted
}

// SupplyLedger tracks on-hand inventory and scheduled receipts per item per
// period, and maintains the projected running balance as the netting engine
// advances. One ledger belongs to exactly one run.
type SupplyLedger struct {
	grid  entities.TimeGrid
	byItm map[entities.ItemID]*itemBalances
}

// NewSupplyLedger seeds a ledger from the snapshot's opening balances and
// scheduled receipts. Rows must already be validated against the grid.
func NewSupplyLedger(grid entities.TimeGrid, items []*entities.Item, receipts []*entities.ScheduledReceipt) *SupplyLedger {
	l := &SupplyLedger{
		grid:  grid,
		byItm: make(map[entities.ItemID]*itemBalances, len(items)),
	}
	for _, item := range items {
		l.byItm[item.ID] = &itemBalances{
			opening:   item.OnHand,
			receipts:  make([]entities.Quantity, grid.Len()),
			projected: make([]entities.Quantity, grid.Len()),
		}
	}
	for _, rcpt := range receipts {
		l.byItm[rcpt.ItemID].receipts[grid.Index(rcpt.Period)] += rcpt.Quantity
	}
	return l
}

// OpeningBalance returns the external on-hand quantity at horizon start.
func (l *SupplyLedger) OpeningBalance(itemID entities.ItemID) entities.Quantity {
	return l.byItm[itemID].opening
}

// ScheduledReceipt returns the committed external receipts for an item in a
// period.
func (l *SupplyLedger) ScheduledReceipt(itemID entities.ItemID, period entities.Period) entities.Quantity {
	if !l.grid.Contains(period) {
		return 0
	}
	return l.byItm[itemID].receipts[l.grid.Index(period)]
}

// ProjectedBalance returns the projected on-hand balance at the close of a
// period. Reading a period the engine has not netted yet fails with
// *NotYetComputedError.
func (l *SupplyLedger) ProjectedBalance(itemID entities.ItemID, period entities.Period) (entities.Quantity, error) {
	b := l.byItm[itemID]
	idx := l.grid.Index(period)
	if idx < 0 || idx >= b.computed {
		return 0, &NotYetComputedError{ItemID: itemID, Period: period}
	}
	return b.projected[idx], nil
}

// priorBalance returns the balance carried into a period index: the opening
// balance for the first period, otherwise the previous period's projection.
func (l *SupplyLedger) priorBalance(itemID entities.ItemID, idx int) entities.Quantity {
	b := l.byItm[itemID]
	if idx == 0 {
		return b.opening
	}
	return b.projected[idx-1]
}

// setProjected records the netted balance for a period index and advances
// the item's computed watermark.
func (l *SupplyLedger) setProjected(itemID entities.ItemID, idx int, balance entities.Quantity) {
	b := l.byItm[itemID]
	b.projected[idx] = balance
	b.computed = idx + 1
}
