package events

import "github.com/plansim/plansim/pkg/domain/entities"

const (
	RunStartedEvent      = "run.started"
	RunCompletedEvent    = "run.completed"
	RunFailedEvent       = "run.failed"
	OrderPlannedEvent    = "order.planned"
	ExceptionRaisedEvent = "exception.raised"
)

type RunStarted struct {
	RunID           string `json:"run_id"`
	ScenarioID      string `json:"scenario_id"`
	SnapshotVersion string `json:"snapshot_version"`
	ItemCount       int    `json:"item_count"`
}

type RunCompleted struct {
	RunID          string `json:"run_id"`
	OrderCount     int    `json:"order_count"`
	ExceptionCount int    `json:"exception_count"`
	DurationMillis int64  `json:"duration_millis"`
}

type RunFailed struct {
	RunID  string `json:"run_id"`
	Reason string `json:"reason"`
}

type OrderPlanned struct {
	Order entities.PlannedOrder `json:"order"`
}

type ExceptionRaised struct {
	Exception entities.Exception `json:"exception"`
}
