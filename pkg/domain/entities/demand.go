package entities

import "fmt"

// DemandSource distinguishes externally supplied demand from demand the
// netting engine generates for components.
type DemandSource int

const (
	Independent DemandSource = iota
	Dependent
)

// String method for DemandSource enum
func (s DemandSource) String() string {
	switch s {
	case Independent:
		return "Independent"
	case Dependent:
		return "Dependent"
	default:
		return "Unknown"
	}
}

// DemandRow represents demand for an item in a period
type DemandRow struct {
	ItemID   ItemID
	Period   Period
	Quantity Quantity
	Source   DemandSource
	Origin   string // forecast name, sales order, or parent item ID
}

// NewDemandRow creates a validated independent DemandRow. Dependent rows are
// produced only by the netting engine.
func NewDemandRow(itemID ItemID, period Period, qty Quantity, origin string) (*DemandRow, error) {
	if string(itemID) == "" {
		return nil, fmt.Errorf("item ID cannot be empty")
	}
	if qty <= 0 {
		return nil, fmt.Errorf("demand quantity must be positive, got %d", qty)
	}
	return &DemandRow{
		ItemID:   itemID,
		Period:   period,
		Quantity: qty,
		Source:   Independent,
		Origin:   origin,
	}, nil
}

// ScheduledReceipt represents an already committed open production or
// purchase order. Immutable input.
type ScheduledReceipt struct {
	ItemID   ItemID
	Period   Period
	Quantity Quantity
	OrderRef string
}

// NewScheduledReceipt creates a validated ScheduledReceipt
func NewScheduledReceipt(itemID ItemID, period Period, qty Quantity, orderRef string) (*ScheduledReceipt, error) {
	if string(itemID) == "" {
		return nil, fmt.Errorf("item ID cannot be empty")
	}
	if qty <= 0 {
		return nil, fmt.Errorf("receipt quantity must be positive, got %d", qty)
	}
	return &ScheduledReceipt{
		ItemID:   itemID,
		Period:   period,
		Quantity: qty,
		OrderRef: orderRef,
	}, nil
}
