package planning

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/domain/services"
)

// Config holds engine tuning knobs.
type Config struct {
	// Workers bounds the pool netting items of one BOM level concurrently.
	// <= 1 disables level parallelism.
	Workers int
	Logger  zerolog.Logger
}

// DefaultConfig returns the configuration used when the caller has no
// opinion.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  zerolog.Nop(),
	}
}

// Engine performs time-phased netting over one snapshot: items are visited
// in low-level-code order, each netted period by period against the supply
// ledger, with planned orders lot-sized, lead-time offset and their
// component demand pushed down to the demand aggregator.
//
// An engine owns its aggregator and ledger and serves exactly one run;
// concurrent runs each build their own engine and share nothing.
type Engine struct {
	grid     entities.TimeGrid
	graph    *services.Graph
	demand   *DemandAggregator
	ledger   *SupplyLedger
	scenario string
	version  string
	cfg      Config
}

// NewEngine seeds an engine from a validated snapshot and its BOM graph.
func NewEngine(snapshot *entities.PlanSnapshot, graph *services.Graph, cfg Config) *Engine {
	if cfg.Workers == 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	return &Engine{
		grid:     snapshot.Grid,
		graph:    graph,
		demand:   NewDemandAggregator(snapshot.Grid, snapshot.Items, snapshot.Demands),
		ledger:   NewSupplyLedger(snapshot.Grid, snapshot.Items, snapshot.Receipts),
		scenario: snapshot.ScenarioID,
		version:  snapshot.SnapshotVersion,
		cfg:      cfg,
	}
}

// Ledger exposes the run's supply ledger for post-run inspection.
func (e *Engine) Ledger() *SupplyLedger {
	return e.ledger
}

// itemResult collects one item's contribution to the plan. Results are
// assembled per item so goroutine timing cannot influence the output.
type itemResult struct {
	orders      []entities.PlannedOrder
	projections []entities.InventoryProjection
	exceptions  []entities.Exception
}

// Run executes the netting pass and returns the sealed plan result.
// Cancellation is cooperative and checked at each level boundary; a
// cancelled run returns no partial result.
func (e *Engine) Run(ctx context.Context, runID string) (*PlanResult, error) {
	results := make(map[entities.ItemID]*itemResult, len(e.graph.PlanningOrder()))

	for levelIdx, level := range e.graph.Levels() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s cancelled at level %d: %w", runID, levelIdx, err)
		}
		e.cfg.Logger.Debug().
			Str("run_id", runID).
			Int("level", levelIdx).
			Int("items", len(level)).
			Msg("netting level")
		if err := e.runLevel(level, results); err != nil {
			return nil, err
		}
	}

	result := &PlanResult{
		RunID:           runID,
		ScenarioID:      e.scenario,
		SnapshotVersion: e.version,
	}
	for _, id := range e.graph.PlanningOrder() {
		r := results[id]
		result.PlannedOrders = append(result.PlannedOrders, r.orders...)
		result.Projections = append(result.Projections, r.projections...)
		result.Exceptions = append(result.Exceptions, r.exceptions...)
	}
	result.seal()

	e.cfg.Logger.Info().
		Str("run_id", runID).
		Str("scenario", e.scenario).
		Int("planned_orders", len(result.PlannedOrders)).
		Int("exceptions", len(result.Exceptions)).
		Msg("netting complete")

	return result, nil
}

// runLevel nets all items of one BOM level. Items within a level have no
// BOM relationship to each other, so they may run concurrently; the wait at
// the end is the barrier that lets children observe fully propagated
// dependent demand.
func (e *Engine) runLevel(level []entities.ItemID, results map[entities.ItemID]*itemResult) error {
	if e.cfg.Workers <= 1 || len(level) < 2 {
		for _, id := range level {
			r, err := e.netItem(e.graph.Item(id))
			if err != nil {
				return err
			}
			results[id] = r
		}
		return nil
	}

	workers := e.cfg.Workers
	if workers > len(level) {
		workers = len(level)
	}

	jobs := make(chan entities.ItemID)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				r, err := e.netItem(e.graph.Item(id))
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					results[id] = r
				}
				mu.Unlock()
			}
		}()
	}

	for _, id := range level {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	return firstErr
}

// netItem runs the per-period netting loop for one item. By the time an
// item is netted, every parent has finished propagating, so its gross
// requirements are final.
func (e *Engine) netItem(item *entities.Item) (*itemResult, error) {
	res := &itemResult{
		projections: make([]entities.InventoryProjection, 0, e.grid.Len()),
	}

	kind := entities.Purchase
	if e.graph.HasChildren(item.ID) {
		kind = entities.Production
	}

	for idx, period := range e.grid.Periods() {
		gross := e.demand.GrossRequirement(item.ID, period)
		available := e.ledger.priorBalance(item.ID, idx) + e.ledger.ScheduledReceipt(item.ID, period)

		// The safety stock floor is part of the requirement target but never
		// part of the balance arithmetic.
		net := gross + item.SafetyStock - available

		if net <= 0 {
			e.closePeriod(item, idx, period, available-gross, res)
			continue
		}

		release := period - entities.Period(item.LeadTime)
		if release < e.grid.Start {
			res.exceptions = append(res.exceptions, entities.Exception{
				ItemID: item.ID,
				Period: period,
				Kind:   entities.PastDue,
				Detail: fmt.Sprintf("release period %d precedes horizon start %d; clamped", release, e.grid.Start),
			})
			release = e.grid.Start
		}

		var ordered entities.Quantity
		for _, qty := range lotSizes(item.LotPolicy, net) {
			order, err := entities.NewPlannedOrder(item.ID, release, period, qty, kind)
			if err != nil {
				return nil, fmt.Errorf("item %s period %d: %w", item.ID, period, err)
			}
			res.orders = append(res.orders, *order)
			ordered += qty

			// Components must be on hand when production of the parent
			// begins, so dependent demand lands at the release period.
			for _, edge := range e.graph.Children(item.ID) {
				if !edge.Effectivity.InEffect(release) {
					continue
				}
				if err := e.demand.PushDependentDemand(edge.ChildID, release, qty*edge.QtyPer); err != nil {
					return nil, err
				}
			}
		}

		e.closePeriod(item, idx, period, available-gross+ordered, res)
	}

	return res, nil
}

// closePeriod records the projected balance, advances the demand cursor and
// flags any balance the horizon could not remedy.
func (e *Engine) closePeriod(item *entities.Item, idx int, period entities.Period, balance entities.Quantity, res *itemResult) {
	e.ledger.setProjected(item.ID, idx, balance)
	e.demand.advanceCursor(item.ID)
	res.projections = append(res.projections, entities.InventoryProjection{
		ItemID:    item.ID,
		Period:    period,
		Projected: balance,
	})
	if balance < 0 {
		res.exceptions = append(res.exceptions, entities.Exception{
			ItemID: item.ID,
			Period: period,
			Kind:   entities.Shortage,
			Detail: fmt.Sprintf("projected on-hand %d after netting", balance),
		})
	}
}
