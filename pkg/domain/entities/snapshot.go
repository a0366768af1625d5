package entities

import "fmt"

// PlanSnapshot is the complete input to one simulation run: master data,
// independent demand and committed supply, frozen at a point in time. The
// engine never reads a store; the calling layer assembles a snapshot and
// hands it over.
//
// ScenarioID and SnapshotVersion are opaque identifiers passed through to
// the plan result for traceability.
type PlanSnapshot struct {
	ScenarioID      string
	SnapshotVersion string
	Grid            TimeGrid
	Items           []*Item
	Edges           []*BOMEdge
	Demands         []*DemandRow
	Receipts        []*ScheduledReceipt
}

// Validate performs the fatal pre-flight checks: structural and parameter
// errors abort a run before any netting occurs, with no partial result.
func (s *PlanSnapshot) Validate() error {
	if s.Grid.End < s.Grid.Start {
		return fmt.Errorf("horizon end %d precedes start %d", s.Grid.End, s.Grid.Start)
	}
	if len(s.Items) == 0 {
		return fmt.Errorf("snapshot has no items")
	}

	known := make(map[ItemID]bool, len(s.Items))
	for _, item := range s.Items {
		if item == nil {
			return fmt.Errorf("snapshot contains nil item")
		}
		if string(item.ID) == "" {
			return fmt.Errorf("item ID cannot be empty")
		}
		if known[item.ID] {
			return fmt.Errorf("duplicate item: %s", item.ID)
		}
		known[item.ID] = true

		if item.LeadTime < 0 {
			return fmt.Errorf("item %s: lead time cannot be negative", item.ID)
		}
		if item.SafetyStock < 0 {
			return fmt.Errorf("item %s: safety stock cannot be negative", item.ID)
		}
		if item.OnHand < 0 {
			return fmt.Errorf("item %s: opening on-hand cannot be negative", item.ID)
		}
		if err := item.LotPolicy.Validate(); err != nil {
			return fmt.Errorf("item %s: %w", item.ID, err)
		}
	}

	for _, edge := range s.Edges {
		if !known[edge.ParentID] {
			return fmt.Errorf("BOM edge references unknown parent: %s", edge.ParentID)
		}
		if !known[edge.ChildID] {
			return fmt.Errorf("BOM edge references unknown child: %s", edge.ChildID)
		}
		if edge.QtyPer <= 0 {
			return fmt.Errorf("BOM edge %s->%s: quantity per must be positive", edge.ParentID, edge.ChildID)
		}
	}

	for _, row := range s.Demands {
		if !known[row.ItemID] {
			return fmt.Errorf("demand references unknown item: %s", row.ItemID)
		}
		if row.Source != Independent {
			return fmt.Errorf("snapshot demand for %s must be independent", row.ItemID)
		}
		if row.Quantity <= 0 {
			return fmt.Errorf("demand for %s: quantity must be positive", row.ItemID)
		}
		if !s.Grid.Contains(row.Period) {
			return fmt.Errorf("demand for %s at period %d is outside the horizon", row.ItemID, row.Period)
		}
	}

	for _, rcpt := range s.Receipts {
		if !known[rcpt.ItemID] {
			return fmt.Errorf("scheduled receipt references unknown item: %s", rcpt.ItemID)
		}
		if rcpt.Quantity <= 0 {
			return fmt.Errorf("scheduled receipt for %s: quantity must be positive", rcpt.ItemID)
		}
		if !s.Grid.Contains(rcpt.Period) {
			return fmt.Errorf("scheduled receipt for %s at period %d is outside the horizon", rcpt.ItemID, rcpt.Period)
		}
	}

	return nil
}

// ItemIndex returns the snapshot's items keyed by ID. Validate must have
// passed for the index to be unambiguous.
func (s *PlanSnapshot) ItemIndex() map[ItemID]*Item {
	index := make(map[ItemID]*Item, len(s.Items))
	for _, item := range s.Items {
		index[item.ID] = item
	}
	return index
}
