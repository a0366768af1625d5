package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/infrastructure/events"
	"github.com/plansim/plansim/pkg/infrastructure/metrics"
	"github.com/plansim/plansim/pkg/infrastructure/repositories/memory"
	"github.com/plansim/plansim/pkg/planning"
)

type capturingStore struct {
	saved []*planning.PlanResult
}

func (c *capturingStore) SaveResult(_ context.Context, result *planning.PlanResult) error {
	c.saved = append(c.saved, result)
	return nil
}

func testItem(t *testing.T, id entities.ItemID, itemType entities.ItemType, leadTime int, onHand entities.Quantity) *entities.Item {
	t.Helper()
	item, err := entities.NewItem(id, string(id), itemType, "EA", leadTime,
		entities.LotSizePolicy{Rule: entities.LotForLot}, 0, onHand, decimal.NewFromInt(1))
	require.NoError(t, err)
	return item
}

func widgetSnapshot(t *testing.T) *entities.PlanSnapshot {
	t.Helper()
	grid, err := entities.NewTimeGrid(0, 10, "week")
	require.NoError(t, err)

	edge, err := entities.NewBOMEdge("WIDGET", "BOLT", 4, entities.Effectivity{})
	require.NoError(t, err)
	demand, err := entities.NewDemandRow("WIDGET", 5, 10, "FC-1")
	require.NoError(t, err)

	return &entities.PlanSnapshot{
		ScenarioID:      "baseline",
		SnapshotVersion: "v1",
		Grid:            *grid,
		Items: []*entities.Item{
			testItem(t, "WIDGET", entities.FinishedGood, 2, 0),
			testItem(t, "BOLT", entities.RawMaterial, 1, 0),
		},
		Edges:   []*entities.BOMEdge{edge},
		Demands: []*entities.DemandRow{demand},
	}
}

func TestPlanService_RunPlan(t *testing.T) {
	store := events.NewInMemoryStore()
	results := &capturingStore{}
	m := metrics.New("plansim_test")
	svc := NewPlanService(PlanServiceConfig{
		Logger:  zerolog.Nop(),
		Events:  store,
		Metrics: m,
		Results: results,
	})

	outcome, err := svc.RunPlan(context.Background(), widgetSnapshot(t))
	require.NoError(t, err)
	require.NotNil(t, outcome)

	result := outcome.Result
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "baseline", result.ScenarioID)

	// Demand of 10 widgets at period 5 plans a widget order and a
	// dependent bolt order of 40.
	widgetOrders := result.OrdersFor("WIDGET")
	require.Len(t, widgetOrders, 1)
	assert.Equal(t, entities.Quantity(10), widgetOrders[0].Quantity)
	assert.Equal(t, entities.Production, widgetOrders[0].Kind)

	boltOrders := result.OrdersFor("BOLT")
	require.Len(t, boltOrders, 1)
	assert.Equal(t, entities.Quantity(40), boltOrders[0].Quantity)
	assert.Equal(t, entities.Purchase, boltOrders[0].Kind)

	assert.NotEmpty(t, outcome.KPIs)

	// The run's event stream carries start, one event per order, completion.
	stream, err := store.Stream(result.RunID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, stream)
	assert.Equal(t, events.RunStartedEvent, stream[0].Type)
	assert.Equal(t, events.RunCompletedEvent, stream[len(stream)-1].Type)

	var orderEvents int
	for _, e := range stream {
		if e.Type == events.OrderPlannedEvent {
			orderEvents++
		}
	}
	assert.Equal(t, len(result.PlannedOrders), orderEvents)

	// The sealed result was persisted.
	require.Len(t, results.saved, 1)
	assert.Equal(t, result.RunID, results.saved[0].RunID)
}

func TestPlanService_RunPlan_ValidationFailure(t *testing.T) {
	store := events.NewInMemoryStore()
	svc := NewPlanService(PlanServiceConfig{Logger: zerolog.Nop(), Events: store})

	snapshot := widgetSnapshot(t)
	snapshot.Demands[0].Period = 99 // outside the horizon

	_, err := svc.RunPlan(context.Background(), snapshot)
	require.Error(t, err)

	all, err := store.All(0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, events.RunFailedEvent, all[0].Type)
}

func TestPlanService_RunPlan_CycleFailsRun(t *testing.T) {
	svc := NewPlanService(PlanServiceConfig{Logger: zerolog.Nop()})

	snapshot := widgetSnapshot(t)
	back, err := entities.NewBOMEdge("BOLT", "WIDGET", 1, entities.Effectivity{})
	require.NoError(t, err)
	snapshot.Edges = append(snapshot.Edges, back)

	_, err = svc.RunPlan(context.Background(), snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestPlanService_RunPlan_NoCollaborators(t *testing.T) {
	// Events, metrics and result store are all optional.
	svc := NewPlanService(PlanServiceConfig{Logger: zerolog.Nop()})

	outcome, err := svc.RunPlan(context.Background(), widgetSnapshot(t))
	require.NoError(t, err)
	assert.NotEmpty(t, outcome.Result.PlannedOrders)
}

func TestPlanService_BuildSnapshot(t *testing.T) {
	itemRepo := memory.NewItemRepository(2)
	require.NoError(t, itemRepo.LoadItems([]*entities.Item{
		testItem(t, "WIDGET", entities.FinishedGood, 2, 0),
		testItem(t, "BOLT", entities.RawMaterial, 1, 20),
	}))

	bomRepo := memory.NewBOMRepository(1)
	edge, err := entities.NewBOMEdge("WIDGET", "BOLT", 4, entities.Effectivity{})
	require.NoError(t, err)
	require.NoError(t, bomRepo.LoadEdges([]*entities.BOMEdge{edge}))

	demandRepo := memory.NewDemandRepository(1)
	demand, err := entities.NewDemandRow("WIDGET", 5, 10, "FC-1")
	require.NoError(t, err)
	require.NoError(t, demandRepo.LoadDemands([]*entities.DemandRow{demand}))

	supplyRepo := memory.NewSupplyRepository(1)
	rcpt, err := entities.NewScheduledReceipt("BOLT", 2, 100, "PO-1")
	require.NoError(t, err)
	require.NoError(t, supplyRepo.LoadReceipts([]*entities.ScheduledReceipt{rcpt}))

	grid, err := entities.NewTimeGrid(0, 10, "week")
	require.NoError(t, err)

	svc := NewPlanService(PlanServiceConfig{Logger: zerolog.Nop()})
	snapshot, err := svc.BuildSnapshot("baseline", "v2", *grid, itemRepo, bomRepo, demandRepo, supplyRepo)
	require.NoError(t, err)

	assert.Equal(t, "baseline", snapshot.ScenarioID)
	assert.Equal(t, "v2", snapshot.SnapshotVersion)
	assert.Len(t, snapshot.Items, 2)
	assert.Len(t, snapshot.Edges, 1)
	assert.Len(t, snapshot.Demands, 1)
	assert.Len(t, snapshot.Receipts, 1)
	require.NoError(t, snapshot.Validate())

	outcome, err := svc.RunPlan(context.Background(), snapshot)
	require.NoError(t, err)
	assert.NotEmpty(t, outcome.Result.PlannedOrders)
}

func TestPlanService_RunScenarios(t *testing.T) {
	svc := NewPlanService(PlanServiceConfig{Logger: zerolog.Nop()})

	first := widgetSnapshot(t)
	second := widgetSnapshot(t)
	second.ScenarioID = "expedite"
	second.Demands[0].Quantity = 25

	outcomes, err := svc.RunScenarios(context.Background(), []*entities.PlanSnapshot{first, second})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, "baseline", outcomes[0].Result.ScenarioID)
	assert.Equal(t, "expedite", outcomes[1].Result.ScenarioID)

	baseline := outcomes[0].Result.OrdersFor("WIDGET")
	expedite := outcomes[1].Result.OrdersFor("WIDGET")
	require.Len(t, baseline, 1)
	require.Len(t, expedite, 1)
	assert.Equal(t, entities.Quantity(10), baseline[0].Quantity)
	assert.Equal(t, entities.Quantity(25), expedite[0].Quantity)

	// Runs get distinct IDs even for identical inputs.
	assert.NotEqual(t, outcomes[0].Result.RunID, outcomes[1].Result.RunID)
}

func TestPlanService_RunScenarios_FirstErrorWins(t *testing.T) {
	svc := NewPlanService(PlanServiceConfig{Logger: zerolog.Nop()})

	good := widgetSnapshot(t)
	bad := widgetSnapshot(t)
	bad.ScenarioID = "broken"
	bad.Items = nil

	_, err := svc.RunScenarios(context.Background(), []*entities.PlanSnapshot{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
