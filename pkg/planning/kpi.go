package planning

import (
	"github.com/shopspring/decimal"

	"github.com/plansim/plansim/pkg/domain/entities"
)

// AlertStatus is the traffic-light rating attached to a KPI.
type AlertStatus string

const (
	AlertGreen AlertStatus = "GREEN"
	AlertAmber AlertStatus = "AMBER"
	AlertRed   AlertStatus = "RED"
)

// KPIValue is one computed plan indicator.
type KPIValue struct {
	Name   string
	Value  decimal.Decimal
	Unit   string
	Target decimal.Decimal
	Status AlertStatus
}

var hundred = decimal.NewFromInt(100)

// ComputeKPIs derives summary indicators from a sealed plan result:
// demand coverage, on-time release rate, exception pressure, production
// volume, and the procurement value of planned purchase orders at item
// unit cost.
func ComputeKPIs(snapshot *entities.PlanSnapshot, result *PlanResult) []KPIValue {
	costs := make(map[entities.ItemID]decimal.Decimal, len(snapshot.Items))
	leadTimes := make(map[entities.ItemID]int, len(snapshot.Items))
	for _, item := range snapshot.Items {
		costs[item.ID] = item.UnitCost
		leadTimes[item.ID] = item.LeadTime
	}

	var productionQty, pastDueOrders int64
	procurementValue := decimal.Zero
	for _, order := range result.PlannedOrders {
		// An order whose unclamped release would precede the horizon was
		// released late; split orders in a past-due period each count.
		if order.Due-entities.Period(leadTimes[order.ItemID]) < snapshot.Grid.Start {
			pastDueOrders++
		}
		switch order.Kind {
		case entities.Production:
			productionQty += int64(order.Quantity)
		case entities.Purchase:
			qty := decimal.NewFromInt(int64(order.Quantity))
			procurementValue = procurementValue.Add(qty.Mul(costs[order.ItemID]))
		}
	}

	onTimePct := hundred
	if n := int64(len(result.PlannedOrders)); n > 0 {
		onTime := decimal.NewFromInt(n - pastDueOrders)
		onTimePct = onTime.Div(decimal.NewFromInt(n)).Mul(hundred).Round(2)
	}

	var totalDemand, coveredDemand int64
	for _, row := range snapshot.Demands {
		totalDemand += int64(row.Quantity)
		if balance, ok := result.ProjectionFor(row.ItemID, row.Period); ok && balance >= 0 {
			coveredDemand += int64(row.Quantity)
		}
	}
	coveragePct := hundred
	if totalDemand > 0 {
		coveragePct = decimal.NewFromInt(coveredDemand).
			Div(decimal.NewFromInt(totalDemand)).Mul(hundred).Round(2)
	}

	kpis := []KPIValue{
		{
			Name:   "Demand Coverage %",
			Value:  coveragePct,
			Unit:   "%",
			Target: hundred,
			Status: rateStatus(coveragePct, 98, 90),
		},
		{
			Name:   "On-Time Release %",
			Value:  onTimePct,
			Unit:   "%",
			Target: decimal.NewFromInt(95),
			Status: rateStatus(onTimePct, 95, 90),
		},
		{
			Name:   "Plan Exceptions",
			Value:  decimal.NewFromInt(int64(len(result.Exceptions))),
			Unit:   "count",
			Target: decimal.Zero,
			Status: countStatus(len(result.Exceptions)),
		},
		{
			Name:   "Planned Production Volume",
			Value:  decimal.NewFromInt(productionQty),
			Unit:   "units",
			Target: decimal.Zero,
			Status: AlertGreen,
		},
		{
			Name:   "Procurement Value",
			Value:  procurementValue.Round(2),
			Unit:   "currency",
			Target: decimal.Zero,
			Status: AlertGreen,
		},
	}
	return kpis
}

func rateStatus(value decimal.Decimal, green, amber int64) AlertStatus {
	if value.GreaterThanOrEqual(decimal.NewFromInt(green)) {
		return AlertGreen
	}
	if value.GreaterThanOrEqual(decimal.NewFromInt(amber)) {
		return AlertAmber
	}
	return AlertRed
}

func countStatus(n int) AlertStatus {
	if n == 0 {
		return AlertGreen
	}
	return AlertAmber
}
