package dto

import (
	"github.com/plansim/plansim/pkg/domain/entities"
	"github.com/plansim/plansim/pkg/planning"
)

// PlanReport is the serializable view of one planning run, used by the CLI
// JSON output and by anything that ships results over a wire.
type PlanReport struct {
	RunID           string          `json:"run_id"`
	ScenarioID      string          `json:"scenario_id"`
	SnapshotVersion string          `json:"snapshot_version"`
	Orders          []OrderRow      `json:"orders"`
	Projections     []ProjectionRow `json:"projections"`
	Exceptions      []ExceptionRow  `json:"exceptions"`
	KPIs            []KPIRow        `json:"kpis"`
}

type OrderRow struct {
	ItemID   string `json:"item_id"`
	Release  int    `json:"release_period"`
	Due      int    `json:"due_period"`
	Quantity int64  `json:"quantity"`
	Kind     string `json:"kind"`
}

type ProjectionRow struct {
	ItemID    string `json:"item_id"`
	Period    int    `json:"period"`
	Projected int64  `json:"projected"`
}

type ExceptionRow struct {
	ItemID string `json:"item_id"`
	Period int    `json:"period"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

type KPIRow struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Unit   string `json:"unit"`
	Target string `json:"target"`
	Status string `json:"status"`
}

// NewPlanReport flattens a sealed plan result and its KPIs into the
// serializable report form.
func NewPlanReport(result *planning.PlanResult, kpis []planning.KPIValue) *PlanReport {
	report := &PlanReport{
		RunID:           result.RunID,
		ScenarioID:      result.ScenarioID,
		SnapshotVersion: result.SnapshotVersion,
		Orders:          make([]OrderRow, 0, len(result.PlannedOrders)),
		Projections:     make([]ProjectionRow, 0, len(result.Projections)),
		Exceptions:      make([]ExceptionRow, 0, len(result.Exceptions)),
		KPIs:            make([]KPIRow, 0, len(kpis)),
	}

	for _, order := range result.PlannedOrders {
		report.Orders = append(report.Orders, OrderRow{
			ItemID:   string(order.ItemID),
			Release:  int(order.Release),
			Due:      int(order.Due),
			Quantity: int64(order.Quantity),
			Kind:     order.Kind.String(),
		})
	}
	for _, row := range result.Projections {
		report.Projections = append(report.Projections, ProjectionRow{
			ItemID:    string(row.ItemID),
			Period:    int(row.Period),
			Projected: int64(row.Projected),
		})
	}
	for _, ex := range result.Exceptions {
		report.Exceptions = append(report.Exceptions, ExceptionRow{
			ItemID: string(ex.ItemID),
			Period: int(ex.Period),
			Kind:   ex.Kind.String(),
			Detail: ex.Detail,
		})
	}
	for _, kpi := range kpis {
		report.KPIs = append(report.KPIs, KPIRow{
			Name:   kpi.Name,
			Value:  kpi.Value.String(),
			Unit:   kpi.Unit,
			Target: kpi.Target.String(),
			Status: string(kpi.Status),
		})
	}
	return report
}

// ShortagesOnly filters the report's exceptions down to projected shortages.
func (r *PlanReport) ShortagesOnly() []ExceptionRow {
	var out []ExceptionRow
	for _, ex := range r.Exceptions {
		if ex.Kind == entities.Shortage.String() {
			out = append(out, ex)
		}
	}
	return out
}
