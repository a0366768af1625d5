package planning

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/domain/services"
)

func grid(t *testing.T, start, end entities.Period) entities.TimeGrid {
	t.Helper()
	g, err := entities.NewTimeGrid(start, end, "day")
	if err != nil {
		t.Fatalf("NewTimeGrid failed: %v", err)
	}
	return *g
}

func lotForLot() entities.LotSizePolicy {
	return entities.LotSizePolicy{Rule: entities.LotForLot}
}

func testItem(t *testing.T, id entities.ItemID, leadTime int, policy entities.LotSizePolicy, safetyStock, onHand entities.Quantity) *entities.Item {
	t.Helper()
	item, err := entities.NewItem(id, string(id), entities.Component, "EA",
		leadTime, policy, safetyStock, onHand, decimal.Zero)
	if err != nil {
		t.Fatalf("NewItem(%s) failed: %v", id, err)
	}
	return item
}

func edge(t *testing.T, parent, child entities.ItemID, qtyPer entities.Quantity) *entities.BOMEdge {
	t.Helper()
	e, err := entities.NewBOMEdge(parent, child, qtyPer, entities.Effectivity{})
	if err != nil {
		t.Fatalf("NewBOMEdge(%s->%s) failed: %v", parent, child, err)
	}
	return e
}

func demand(t *testing.T, id entities.ItemID, period entities.Period, qty entities.Quantity) *entities.DemandRow {
	t.Helper()
	row, err := entities.NewDemandRow(id, period, qty, "FORECAST")
	if err != nil {
		t.Fatalf("NewDemandRow(%s) failed: %v", id, err)
	}
	return row
}

func receipt(t *testing.T, id entities.ItemID, period entities.Period, qty entities.Quantity) *entities.ScheduledReceipt {
	t.Helper()
	rcpt, err := entities.NewScheduledReceipt(id, period, qty, "PO-TEST")
	if err != nil {
		t.Fatalf("NewScheduledReceipt(%s) failed: %v", id, err)
	}
	return rcpt
}

// runSnapshot validates, builds the graph and executes one run with the
// given worker count.
func runSnapshot(t *testing.T, snapshot *entities.PlanSnapshot, workers int) *PlanResult {
	t.Helper()
	if err := snapshot.Validate(); err != nil {
		t.Fatalf("snapshot validation failed: %v", err)
	}
	graph, err := services.BuildGraph(snapshot.Items, snapshot.Edges)
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	engine := NewEngine(snapshot, graph, Config{Workers: workers})
	result, err := engine.Run(context.Background(), "RUN-TEST")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return result
}
