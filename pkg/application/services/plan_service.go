package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/domain/repositories"
	domainservices "github.com/plansim/plansim/pkg/domain/services"
	"github.com/plansim/plansim/pkg/infrastructure/events"
	"github.com/plansim/plansim/pkg/infrastructure/metrics"
	"github.com/plansim/plansim/pkg/planning"
)

// ResultStore persists sealed plan results.
type ResultStore interface {
	SaveResult(ctx context.Context, result *planning.PlanResult) error
}

// PlanServiceConfig wires the service's collaborators. Events, Metrics and
// Results are optional; a nil field disables that concern.
type PlanServiceConfig struct {
	Workers int
	Logger  zerolog.Logger
	Events  events.Store
	Metrics *metrics.Metrics
	Results ResultStore
}

// PlanService orchestrates simulation runs: it validates the snapshot,
// builds the BOM graph, executes the netting engine and fans the outcome
// out to the event log, metrics and the result store.
type PlanService struct {
	cfg PlanServiceConfig
}

// NewPlanService creates a plan service.
func NewPlanService(cfg PlanServiceConfig) *PlanService {
	return &PlanService{cfg: cfg}
}

// PlanOutcome bundles the result of one run with its derived indicators.
type PlanOutcome struct {
	Result *planning.PlanResult
	KPIs   []planning.KPIValue
}

// BuildSnapshot assembles a snapshot from the repositories. The snapshot is
// frozen at assembly time: later repository changes do not affect it.
func (s *PlanService) BuildSnapshot(
	scenarioID, snapshotVersion string,
	grid entities.TimeGrid,
	itemRepo repositories.ItemRepository,
	bomRepo repositories.BOMRepository,
	demandRepo repositories.DemandRepository,
	supplyRepo repositories.SupplyRepository,
) (*entities.PlanSnapshot, error) {
	items, err := itemRepo.GetAllItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	edges, err := bomRepo.GetAllEdges()
	if err != nil {
		return nil, fmt.Errorf("failed to load BOM: %w", err)
	}
	demands, err := demandRepo.GetDemands()
	if err != nil {
		return nil, fmt.Errorf("failed to load demands: %w", err)
	}
	receipts, err := supplyRepo.GetReceipts()
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}

	return &entities.PlanSnapshot{
		ScenarioID:      scenarioID,
		SnapshotVersion: snapshotVersion,
		Grid:            grid,
		Items:           items,
		Edges:           edges,
		Demands:         demands,
		Receipts:        receipts,
	}, nil
}

// RunPlan executes one simulation run over a snapshot and returns the
// sealed result with its KPIs. Validation or cycle errors fail the run
// before any netting occurs; no partial result is produced.
func (s *PlanService) RunPlan(ctx context.Context, snapshot *entities.PlanSnapshot) (*PlanOutcome, error) {
	runID := uuid.NewString()
	logger := s.cfg.Logger.With().
		Str("run_id", runID).
		Str("scenario_id", snapshot.ScenarioID).
		Logger()

	if err := snapshot.Validate(); err != nil {
		s.failRun(runID, err)
		return nil, fmt.Errorf("snapshot validation failed: %w", err)
	}

	graph, err := domainservices.BuildGraph(snapshot.Items, snapshot.Edges)
	if err != nil {
		s.failRun(runID, err)
		return nil, fmt.Errorf("BOM graph build failed: %w", err)
	}

	s.appendEvent(runID, events.RunStartedEvent, events.RunStarted{
		RunID:           runID,
		ScenarioID:      snapshot.ScenarioID,
		SnapshotVersion: snapshot.SnapshotVersion,
		ItemCount:       len(snapshot.Items),
	})
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordRunStarted()
	}

	engine := planning.NewEngine(snapshot, graph, planning.Config{
		Workers: s.cfg.Workers,
		Logger:  logger,
	})

	started := time.Now()
	result, err := engine.Run(ctx, runID)
	if err != nil {
		s.failRun(runID, err)
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.RecordRunCompleted("failed", time.Since(started), 0)
		}
		return nil, err
	}
	elapsed := time.Since(started)

	for _, order := range result.PlannedOrders {
		s.appendEvent(runID, events.OrderPlannedEvent, events.OrderPlanned{Order: order})
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.RecordOrderPlanned(order.Kind.String())
		}
	}
	for _, ex := range result.Exceptions {
		s.appendEvent(runID, events.ExceptionRaisedEvent, events.ExceptionRaised{Exception: ex})
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.RecordException(ex.Kind.String())
		}
	}
	s.appendEvent(runID, events.RunCompletedEvent, events.RunCompleted{
		RunID:          runID,
		OrderCount:     len(result.PlannedOrders),
		ExceptionCount: len(result.Exceptions),
		DurationMillis: elapsed.Milliseconds(),
	})
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordRunCompleted("success", elapsed, len(snapshot.Items))
	}

	if s.cfg.Results != nil {
		if err := s.cfg.Results.SaveResult(ctx, result); err != nil {
			return nil, fmt.Errorf("failed to persist run %s: %w", runID, err)
		}
	}

	logger.Info().
		Int("orders", len(result.PlannedOrders)).
		Int("exceptions", len(result.Exceptions)).
		Dur("elapsed", elapsed).
		Msg("planning run completed")

	return &PlanOutcome{
		Result: result,
		KPIs:   planning.ComputeKPIs(snapshot, result),
	}, nil
}

// RunScenarios executes several snapshots concurrently, one engine per
// snapshot. Outcomes line up with the input order. The first failure wins;
// remaining runs are cancelled.
func (s *PlanService) RunScenarios(ctx context.Context, snapshots []*entities.PlanSnapshot) ([]*PlanOutcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]*PlanOutcome, len(snapshots))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, snapshot := range snapshots {
		wg.Add(1)
		go func(i int, snapshot *entities.PlanSnapshot) {
			defer wg.Done()
			outcome, err := s.RunPlan(ctx, snapshot)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Cancellation of a sibling run must not mask the error
				// that triggered it.
				if firstErr == nil ||
					(errors.Is(firstErr, context.Canceled) && !errors.Is(err, context.Canceled)) {
					firstErr = fmt.Errorf("scenario %s: %w", snapshot.ScenarioID, err)
				}
				cancel()
				return
			}
			outcomes[i] = outcome
		}(i, snapshot)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return outcomes, nil
}

func (s *PlanService) appendEvent(runID, eventType string, data interface{}) {
	if s.cfg.Events == nil {
		return
	}
	if err := s.cfg.Events.Append(runID, eventType, data); err != nil {
		s.cfg.Logger.Warn().Err(err).Str("event", eventType).Msg("failed to append event")
	}
}

func (s *PlanService) failRun(runID string, cause error) {
	s.appendEvent(runID, events.RunFailedEvent, events.RunFailed{
		RunID:  runID,
		Reason: cause.Error(),
	})
	s.cfg.Logger.Error().Err(cause).Str("run_id", runID).Msg("planning run failed")
}
