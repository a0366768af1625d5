package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemID represents a unique item identifier
type ItemID string

// Quantity represents an integer quantity value for discrete manufacturing units
type Quantity int64

// ItemType classifies an item within the material flow
type ItemType int

const (
	RawMaterial ItemType = iota
	Component
	FinishedGood
)

// String method for ItemType enum
func (t ItemType) String() string {
	switch t {
	case RawMaterial:
		return "RawMaterial"
	case Component:
		return "Component"
	case FinishedGood:
		return "FinishedGood"
	default:
		return "Unknown"
	}
}

// LotSizeRule represents the lot sizing rule for an item
type LotSizeRule int

const (
	LotForLot LotSizeRule = iota
	FixedQuantity
	MinMax
)

// String method for LotSizeRule enum
func (l LotSizeRule) String() string {
	switch l {
	case LotForLot:
		return "LotForLot"
	case FixedQuantity:
		return "FixedQuantity"
	case MinMax:
		return "MinMax"
	default:
		return "Unknown"
	}
}

// LotSizePolicy pairs a lot sizing rule with its parameters.
// FixedQty is the fixed order quantity for FixedQuantity items;
// MinQty/MaxQty bound order sizes for MinMax items (MaxQty 0 = unbounded).
type LotSizePolicy struct {
	Rule     LotSizeRule
	FixedQty Quantity
	MinQty   Quantity
	MaxQty   Quantity
}

// Validate checks lot sizing parameters for internal consistency.
func (p LotSizePolicy) Validate() error {
	switch p.Rule {
	case LotForLot:
		return nil
	case FixedQuantity:
		if p.FixedQty <= 0 {
			return fmt.Errorf("fixed quantity must be positive, got %d", p.FixedQty)
		}
		return nil
	case MinMax:
		if p.MinQty < 0 {
			return fmt.Errorf("min quantity cannot be negative, got %d", p.MinQty)
		}
		if p.MaxQty < 0 {
			return fmt.Errorf("max quantity cannot be negative, got %d", p.MaxQty)
		}
		if p.MaxQty > 0 && p.MinQty > p.MaxQty {
			return fmt.Errorf("min quantity %d exceeds max quantity %d", p.MinQty, p.MaxQty)
		}
		return nil
	default:
		return fmt.Errorf("unknown lot size rule: %d", p.Rule)
	}
}

// Item represents an item master record. Immutable for the duration of a run.
type Item struct {
	ID            ItemID
	Name          string
	Type          ItemType
	UnitOfMeasure string
	LeadTime      int // periods between release and receipt
	LotPolicy     LotSizePolicy
	SafetyStock   Quantity
	OnHand        Quantity // opening balance at horizon start
	UnitCost      decimal.Decimal
}

// NewItem creates a validated Item
func NewItem(
	id ItemID,
	name string,
	itemType ItemType,
	uom string,
	leadTime int,
	lotPolicy LotSizePolicy,
	safetyStock Quantity,
	onHand Quantity,
	unitCost decimal.Decimal,
) (*Item, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("item ID cannot be empty")
	}
	if leadTime < 0 {
		return nil, fmt.Errorf("lead time cannot be negative, got %d", leadTime)
	}
	if safetyStock < 0 {
		return nil, fmt.Errorf("safety stock cannot be negative, got %d", safetyStock)
	}
	if onHand < 0 {
		return nil, fmt.Errorf("opening on-hand cannot be negative, got %d", onHand)
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative, got %s", unitCost)
	}
	if err := lotPolicy.Validate(); err != nil {
		return nil, fmt.Errorf("item %s: %w", id, err)
	}

	return &Item{
		ID:            id,
		Name:          name,
		Type:          itemType,
		UnitOfMeasure: uom,
		LeadTime:      leadTime,
		LotPolicy:     lotPolicy,
		SafetyStock:   safetyStock,
		OnHand:        onHand,
		UnitCost:      unitCost,
	}, nil
}
