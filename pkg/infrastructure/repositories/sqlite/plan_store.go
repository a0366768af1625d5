// Package sqlite persists sealed plan results. Runs are append-only: a
// result row is written once per run ID and never updated, so the store is
// a durable history of every simulation executed against a scenario.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/planning"
)

// PlanStore stores plan results in SQLite. Use ":memory:" as the path for
// an ephemeral store.
type PlanStore struct {
	db *sql.DB
}

// RunSummary is one row of the run history listing.
type RunSummary struct {
	RunID           string
	ScenarioID      string
	SnapshotVersion string
	OrderCount      int
	ExceptionCount  int
	CreatedAt       time.Time
}

// NewPlanStore opens (and if needed migrates) a plan store.
func NewPlanStore(dbPath string) (*PlanStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &PlanStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *PlanStore) Close() error {
	return s.db.Close()
}

func (s *PlanStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plan_runs (
		run_id TEXT PRIMARY KEY,
		scenario_id TEXT NOT NULL,
		snapshot_version TEXT NOT NULL,
		order_count INTEGER NOT NULL,
		exception_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plan_runs_scenario
		ON plan_runs(scenario_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS planned_orders (
		run_id TEXT NOT NULL REFERENCES plan_runs(run_id),
		item_id TEXT NOT NULL,
		release_period INTEGER NOT NULL,
		due_period INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		kind TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_planned_orders_run
		ON planned_orders(run_id, item_id, due_period);

	CREATE TABLE IF NOT EXISTS projections (
		run_id TEXT NOT NULL REFERENCES plan_runs(run_id),
		item_id TEXT NOT NULL,
		period INTEGER NOT NULL,
		projected INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_projections_run
		ON projections(run_id, item_id, period);

	CREATE TABLE IF NOT EXISTS exceptions (
		run_id TEXT NOT NULL REFERENCES plan_runs(run_id),
		item_id TEXT NOT NULL,
		period INTEGER NOT NULL,
		kind TEXT NOT NULL,
		detail TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exceptions_run
		ON exceptions(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveResult persists a sealed plan result atomically.
func (s *PlanStore) SaveResult(ctx context.Context, result *planning.PlanResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO plan_runs
		(run_id, scenario_id, snapshot_version, order_count, exception_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.ScenarioID,
		result.SnapshotVersion,
		len(result.PlannedOrders),
		len(result.Exceptions),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", result.RunID, err)
	}

	for _, order := range result.PlannedOrders {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO planned_orders
			(run_id, item_id, release_period, due_period, quantity, kind)
			VALUES (?, ?, ?, ?, ?, ?)`,
			result.RunID, string(order.ItemID), int(order.Release), int(order.Due),
			int64(order.Quantity), order.Kind.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert order for %s: %w", order.ItemID, err)
		}
	}

	for _, row := range result.Projections {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO projections (run_id, item_id, period, projected)
			VALUES (?, ?, ?, ?)`,
			result.RunID, string(row.ItemID), int(row.Period), int64(row.Projected),
		)
		if err != nil {
			return fmt.Errorf("failed to insert projection for %s: %w", row.ItemID, err)
		}
	}

	for _, ex := range result.Exceptions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO exceptions (run_id, item_id, period, kind, detail)
			VALUES (?, ?, ?, ?, ?)`,
			result.RunID, string(ex.ItemID), int(ex.Period), ex.Kind.String(), ex.Detail,
		)
		if err != nil {
			return fmt.Errorf("failed to insert exception for %s: %w", ex.ItemID, err)
		}
	}

	return tx.Commit()
}

// GetResult loads a persisted plan result by run ID.
func (s *PlanStore) GetResult(ctx context.Context, runID string) (*planning.PlanResult, error) {
	result := &planning.PlanResult{RunID: runID}

	err := s.db.QueryRowContext(ctx, `
		SELECT scenario_id, snapshot_version FROM plan_runs WHERE run_id = ?`,
		runID,
	).Scan(&result.ScenarioID, &result.SnapshotVersion)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %s: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, release_period, due_period, quantity, kind
		FROM planned_orders WHERE run_id = ?
		ORDER BY item_id, due_period, quantity DESC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var itemID, kind string
		var release, due int
		var qty int64
		if err := rows.Scan(&itemID, &release, &due, &qty, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result.PlannedOrders = append(result.PlannedOrders, entities.PlannedOrder{
			ItemID:   entities.ItemID(itemID),
			Release:  entities.Period(release),
			Due:      entities.Period(due),
			Quantity: entities.Quantity(qty),
			Kind:     parseOrderKind(kind),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	projRows, err := s.db.QueryContext(ctx, `
		SELECT item_id, period, projected FROM projections
		WHERE run_id = ? ORDER BY item_id, period`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projections: %w", err)
	}
	defer projRows.Close()
	for projRows.Next() {
		var itemID string
		var period int
		var projected int64
		if err := projRows.Scan(&itemID, &period, &projected); err != nil {
			return nil, fmt.Errorf("failed to scan projection: %w", err)
		}
		result.Projections = append(result.Projections, entities.InventoryProjection{
			ItemID:    entities.ItemID(itemID),
			Period:    entities.Period(period),
			Projected: entities.Quantity(projected),
		})
	}
	if err := projRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projections: %w", err)
	}

	exRows, err := s.db.QueryContext(ctx, `
		SELECT item_id, period, kind, detail FROM exceptions
		WHERE run_id = ? ORDER BY item_id, period, kind`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exceptions: %w", err)
	}
	defer exRows.Close()
	for exRows.Next() {
		var itemID, kind, detail string
		var period int
		if err := exRows.Scan(&itemID, &period, &kind, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan exception: %w", err)
		}
		result.Exceptions = append(result.Exceptions, entities.Exception{
			ItemID: entities.ItemID(itemID),
			Period: entities.Period(period),
			Kind:   parseExceptionKind(kind),
			Detail: detail,
		})
	}
	if err := exRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exceptions: %w", err)
	}

	return result, nil
}

// ListRuns returns the run history of one scenario, newest first. An empty
// scenario ID lists every run.
func (s *PlanStore) ListRuns(ctx context.Context, scenarioID string) ([]RunSummary, error) {
	query := `
		SELECT run_id, scenario_id, snapshot_version, order_count, exception_count, created_at
		FROM plan_runs`
	args := []any{}
	if scenarioID != "" {
		query += " WHERE scenario_id = ?"
		args = append(args, scenarioID)
	}
	query += " ORDER BY created_at DESC, run_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var sum RunSummary
		var createdAt string
		if err := rows.Scan(&sum.RunID, &sum.ScenarioID, &sum.SnapshotVersion,
			&sum.OrderCount, &sum.ExceptionCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		sum.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

func parseOrderKind(s string) entities.OrderKind {
	if s == "Purchase" {
		return entities.Purchase
	}
	return entities.Production
}

func parseExceptionKind(s string) entities.ExceptionKind {
	switch s {
	case "Cycle":
		return entities.Cycle
	case "Shortage":
		return entities.Shortage
	default:
		return entities.PastDue
	}
}
