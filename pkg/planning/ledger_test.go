package planning

import (
	"errors"
	"testing"

	"github.com/plansim/plansim/pkg/domain/entities"
)

func TestSupplyLedger_SeedsInputs(t *testing.T) {
	g := grid(t, 3, 8)
	items := []*entities.Item{testItem(t, "A", 0, lotForLot(), 0, 40)}
	receipts := []*entities.ScheduledReceipt{
		receipt(t, "A", 5, 10),
		receipt(t, "A", 5, 2),
	}
	ledger := NewSupplyLedger(g, items, receipts)

	if got := ledger.OpeningBalance("A"); got != 40 {
		t.Errorf("expected opening balance 40, got %d", got)
	}
	if got := ledger.ScheduledReceipt("A", 5); got != 12 {
		t.Errorf("expected merged receipts 12, got %d", got)
	}
	if got := ledger.ScheduledReceipt("A", 4); got != 0 {
		t.Errorf("expected no receipt at period 4, got %d", got)
	}
}

func TestSupplyLedger_FutureReadFails(t *testing.T) {
	g := grid(t, 0, 4)
	items := []*entities.Item{testItem(t, "A", 0, lotForLot(), 0, 0)}
	ledger := NewSupplyLedger(g, items, nil)

	ledger.setProjected("A", 0, 9)
	ledger.setProjected("A", 1, 7)

	if got, err := ledger.ProjectedBalance("A", 1); err != nil || got != 7 {
		t.Errorf("expected balance 7 for a netted period, got %d (%v)", got, err)
	}

	_, err := ledger.ProjectedBalance("A", 2)
	if err == nil {
		t.Fatal("expected NotYetComputedError for a future period")
	}
	var notYet *NotYetComputedError
	if !errors.As(err, &notYet) {
		t.Fatalf("expected *NotYetComputedError, got %T", err)
	}
	if notYet.ItemID != "A" || notYet.Period != 2 {
		t.Errorf("unexpected error detail: %+v", notYet)
	}
}

func TestSupplyLedger_PriorBalance(t *testing.T) {
	g := grid(t, 0, 4)
	items := []*entities.Item{testItem(t, "A", 0, lotForLot(), 0, 25)}
	ledger := NewSupplyLedger(g, items, nil)

	if got := ledger.priorBalance("A", 0); got != 25 {
		t.Errorf("first period carries the opening balance, got %d", got)
	}
	ledger.setProjected("A", 0, 18)
	if got := ledger.priorBalance("A", 1); got != 18 {
		t.Errorf("later periods carry the previous projection, got %d", got)
	}
}
