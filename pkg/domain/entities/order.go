package entities

import "fmt"

// OrderKind represents the kind of planned order
type OrderKind int

const (
	Production OrderKind = iota
	Purchase
)

// String method for OrderKind enum
func (k OrderKind) String() string {
	switch k {
	case Production:
		return "Production"
	case Purchase:
		return "Purchase"
	default:
		return "Unknown"
	}
}

// PlannedOrder represents a planned production or purchase order. The due
// period is the period in which the net requirement occurs; the release
// period is due minus lead time, clamped to the horizon start.
type PlannedOrder struct {
	ItemID   ItemID
	Release  Period
	Due      Period
	Quantity Quantity
	Kind     OrderKind
}

// NewPlannedOrder creates a validated PlannedOrder
func NewPlannedOrder(itemID ItemID, release, due Period, qty Quantity, kind OrderKind) (*PlannedOrder, error) {
	if string(itemID) == "" {
		return nil, fmt.Errorf("item ID cannot be empty")
	}
	if qty <= 0 {
		return nil, fmt.Errorf("order quantity must be positive, got %d", qty)
	}
	if release > due {
		return nil, fmt.Errorf("release period %d cannot follow due period %d", release, due)
	}
	return &PlannedOrder{
		ItemID:   itemID,
		Release:  release,
		Due:      due,
		Quantity: qty,
		Kind:     kind,
	}, nil
}

// InventoryProjection is the running projected on-hand balance for an item
// at the close of a period.
type InventoryProjection struct {
	ItemID    ItemID
	Period    Period
	Projected Quantity
}
