package planning

import (
	"errors"
	"testing"

	"github.com/plansim/plansim/pkg/domain/entities"
)

func TestDemandAggregator_MergesSources(t *testing.T) {
	g := grid(t, 0, 5)
	items := []*entities.Item{testItem(t, "A", 0, lotForLot(), 0, 0)}
	rows := []*entities.DemandRow{
		demand(t, "A", 2, 10),
		demand(t, "A", 2, 5),
		demand(t, "A", 4, 7),
	}
	agg := NewDemandAggregator(g, items, rows)

	if got := agg.GrossRequirement("A", 2); got != 15 {
		t.Errorf("expected merged independent demand 15, got %d", got)
	}

	if err := agg.PushDependentDemand("A", 2, 8); err != nil {
		t.Fatalf("PushDependentDemand failed: %v", err)
	}
	if got := agg.GrossRequirement("A", 2); got != 23 {
		t.Errorf("expected 15 independent + 8 dependent = 23, got %d", got)
	}
	if got := agg.GrossRequirement("A", 3); got != 0 {
		t.Errorf("expected no demand at period 3, got %d", got)
	}
}

func TestDemandAggregator_LateDemandPush(t *testing.T) {
	g := grid(t, 0, 5)
	items := []*entities.Item{testItem(t, "A", 0, lotForLot(), 0, 0)}
	agg := NewDemandAggregator(g, items, nil)

	// Net periods 0 and 1, then push behind the cursor.
	agg.advanceCursor("A")
	agg.advanceCursor("A")

	err := agg.PushDependentDemand("A", 1, 5)
	if err == nil {
		t.Fatal("expected LateDemandPushError")
	}
	var late *LateDemandPushError
	if !errors.As(err, &late) {
		t.Fatalf("expected *LateDemandPushError, got %T", err)
	}
	if late.ItemID != "A" || late.Period != 1 {
		t.Errorf("unexpected error detail: %+v", late)
	}

	// At the cursor is still legal.
	if err := agg.PushDependentDemand("A", 2, 5); err != nil {
		t.Errorf("push at the cursor should succeed, got %v", err)
	}
}
