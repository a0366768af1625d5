package entities

import "fmt"

// Effectivity defines the period range for which a BOM edge applies.
// A zero To means open ended.
type Effectivity struct {
	From Period
	To   Period // 0 = open ended
}

// InEffect reports whether the edge applies at period p.
func (e Effectivity) InEffect(p Period) bool {
	if p < e.From {
		return false
	}
	if e.To != 0 && p > e.To {
		return false
	}
	return true
}

// BOMEdge represents a parent->child usage edge in the bill of materials.
// The set of edges over all items forms a directed graph which must be
// acyclic.
type BOMEdge struct {
	ParentID    ItemID
	ChildID     ItemID
	QtyPer      Quantity
	Effectivity Effectivity
}

// NewBOMEdge creates a validated BOMEdge
func NewBOMEdge(parentID, childID ItemID, qtyPer Quantity, effectivity Effectivity) (*BOMEdge, error) {
	if string(parentID) == "" {
		return nil, fmt.Errorf("parent item ID cannot be empty")
	}
	if string(childID) == "" {
		return nil, fmt.Errorf("child item ID cannot be empty")
	}
	if parentID == childID {
		return nil, fmt.Errorf("parent and child item IDs cannot be the same: %s", parentID)
	}
	if qtyPer <= 0 {
		return nil, fmt.Errorf("quantity per must be positive, got %d", qtyPer)
	}
	if effectivity.To != 0 && effectivity.To < effectivity.From {
		return nil, fmt.Errorf("effectivity range inverted: from %d to %d", effectivity.From, effectivity.To)
	}

	return &BOMEdge{
		ParentID:    parentID,
		ChildID:     childID,
		QtyPer:      qtyPer,
		Effectivity: effectivity,
	}, nil
}
