package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plansim/plansim/pkg/domain/entities"
)

const baselineScenario = `
scenario_id: baseline
snapshot_version: v1
horizon:
  start: 0
  end: 12
  granularity: week
items:
  - id: WIDGET
    name: Widget
    type: finished_good
    uom: EA
    lead_time: 2
    lot_rule: lot_for_lot
    unit_cost: "120.50"
  - id: BOLT
    name: Hex Bolt
    type: raw
    uom: EA
    lead_time: 1
    lot_rule: fixed
    fixed_qty: 50
    safety_stock: 5
    on_hand: 20
    unit_cost: "0.35"
bom:
  - parent: WIDGET
    child: BOLT
    qty_per: 4
demands:
  - item: WIDGET
    period: 5
    quantity: 10
    origin: FC-2026-Q1
receipts:
  - item: BOLT
    period: 2
    quantity: 100
    order_ref: PO-1001
`

func TestParse_Baseline(t *testing.T) {
	snapshot, err := Parse([]byte(baselineScenario))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if snapshot.ScenarioID != "baseline" || snapshot.SnapshotVersion != "v1" {
		t.Errorf("Scenario identity parsed incorrectly: %s/%s",
			snapshot.ScenarioID, snapshot.SnapshotVersion)
	}
	if snapshot.Grid.Len() != 13 {
		t.Errorf("Expected 13 periods, got %d", snapshot.Grid.Len())
	}
	if len(snapshot.Items) != 2 || len(snapshot.Edges) != 1 {
		t.Fatalf("Expected 2 items and 1 edge, got %d and %d",
			len(snapshot.Items), len(snapshot.Edges))
	}

	bolt := snapshot.Items[1]
	if bolt.LotPolicy.Rule != entities.FixedQuantity || bolt.LotPolicy.FixedQty != 50 {
		t.Errorf("Bolt lot policy parsed incorrectly: %+v", bolt.LotPolicy)
	}
	if bolt.OnHand != 20 || bolt.SafetyStock != 5 {
		t.Errorf("Bolt stock levels parsed incorrectly: %+v", bolt)
	}

	if snapshot.Edges[0].QtyPer != 4 {
		t.Errorf("Expected qty_per 4, got %d", snapshot.Edges[0].QtyPer)
	}
	if !snapshot.Edges[0].Effectivity.InEffect(12) {
		t.Error("Edge without effectivity bounds should always be in effect")
	}

	// A parsed scenario must pass snapshot validation as-is.
	if err := snapshot.Validate(); err != nil {
		t.Errorf("Parsed snapshot failed validation: %v", err)
	}
}

func TestParse_MissingScenarioID(t *testing.T) {
	if _, err := Parse([]byte("horizon:\n  start: 0\n  end: 5\n")); err == nil {
		t.Error("Expected error for missing scenario_id")
	}
}

func TestParse_InvalidHorizon(t *testing.T) {
	content := "scenario_id: bad\nhorizon:\n  start: 5\n  end: 2\n"
	if _, err := Parse([]byte(content)); err == nil {
		t.Error("Expected error for inverted horizon")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("scenario_id: [unclosed")); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "baseline.yaml")
	if err := os.WriteFile(path, []byte(baselineScenario), 0o644); err != nil {
		t.Fatalf("Failed to write scenario file: %v", err)
	}

	snapshot, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snapshot.ScenarioID != "baseline" {
		t.Errorf("Expected scenario baseline, got %s", snapshot.ScenarioID)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
