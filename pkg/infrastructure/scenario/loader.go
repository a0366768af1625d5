// Package scenario loads complete planning scenarios from YAML files. A
// scenario file bundles the horizon, item master, BOM structure, demand and
// committed supply into one self-contained snapshot definition, which makes
// simulation inputs easy to version and diff.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/plansim/plansim/pkg/domain/entities"
)

type scenarioFile struct {
	ScenarioID      string       `yaml:"scenario_id"`
	SnapshotVersion string       `yaml:"snapshot_version"`
	Horizon         horizonDef   `yaml:"horizon"`
	Items           []itemDef    `yaml:"items"`
	BOM             []bomEdgeDef `yaml:"bom"`
	Demands         []demandDef  `yaml:"demands"`
	Receipts        []receiptDef `yaml:"receipts"`
}

type horizonDef struct {
	Start       int    `yaml:"start"`
	End         int    `yaml:"end"`
	Granularity string `yaml:"granularity"`
}

type itemDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	UOM         string `yaml:"uom"`
	LeadTime    int    `yaml:"lead_time"`
	LotRule     string `yaml:"lot_rule"`
	FixedQty    int64  `yaml:"fixed_qty"`
	MinQty      int64  `yaml:"min_qty"`
	MaxQty      int64  `yaml:"max_qty"`
	SafetyStock int64  `yaml:"safety_stock"`
	OnHand      int64  `yaml:"on_hand"`
	UnitCost    string `yaml:"unit_cost"`
}

type bomEdgeDef struct {
	Parent        string `yaml:"parent"`
	Child         string `yaml:"child"`
	QtyPer        int64  `yaml:"qty_per"`
	EffectiveFrom int    `yaml:"effective_from"`
	EffectiveTo   int    `yaml:"effective_to"`
}

type demandDef struct {
	Item     string `yaml:"item"`
	Period   int    `yaml:"period"`
	Quantity int64  `yaml:"quantity"`
	Origin   string `yaml:"origin"`
}

type receiptDef struct {
	Item     string `yaml:"item"`
	Period   int    `yaml:"period"`
	Quantity int64  `yaml:"quantity"`
	OrderRef string `yaml:"order_ref"`
}

// Load reads a scenario YAML file and assembles a snapshot from it.
func Load(filename string) (*entities.PlanSnapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", filename, err)
	}
	return Parse(data)
}

// Parse assembles a snapshot from scenario YAML content.
func Parse(data []byte) (*entities.PlanSnapshot, error) {
	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	if file.ScenarioID == "" {
		return nil, fmt.Errorf("scenario_id is required")
	}

	grid, err := entities.NewTimeGrid(entities.Period(file.Horizon.Start),
		entities.Period(file.Horizon.End), file.Horizon.Granularity)
	if err != nil {
		return nil, fmt.Errorf("scenario horizon: %w", err)
	}

	snapshot := &entities.PlanSnapshot{
		ScenarioID:      file.ScenarioID,
		SnapshotVersion: file.SnapshotVersion,
		Grid:            *grid,
	}

	for _, def := range file.Items {
		item, err := buildItem(def)
		if err != nil {
			return nil, fmt.Errorf("scenario item %s: %w", def.ID, err)
		}
		snapshot.Items = append(snapshot.Items, item)
	}

	for _, def := range file.BOM {
		eff := entities.Effectivity{
			From: entities.Period(def.EffectiveFrom),
			To:   entities.Period(def.EffectiveTo),
		}
		edge, err := entities.NewBOMEdge(entities.ItemID(def.Parent),
			entities.ItemID(def.Child), entities.Quantity(def.QtyPer), eff)
		if err != nil {
			return nil, fmt.Errorf("scenario BOM edge %s->%s: %w", def.Parent, def.Child, err)
		}
		snapshot.Edges = append(snapshot.Edges, edge)
	}

	for _, def := range file.Demands {
		row, err := entities.NewDemandRow(entities.ItemID(def.Item),
			entities.Period(def.Period), entities.Quantity(def.Quantity), def.Origin)
		if err != nil {
			return nil, fmt.Errorf("scenario demand for %s: %w", def.Item, err)
		}
		snapshot.Demands = append(snapshot.Demands, row)
	}

	for _, def := range file.Receipts {
		rcpt, err := entities.NewScheduledReceipt(entities.ItemID(def.Item),
			entities.Period(def.Period), entities.Quantity(def.Quantity), def.OrderRef)
		if err != nil {
			return nil, fmt.Errorf("scenario receipt for %s: %w", def.Item, err)
		}
		snapshot.Receipts = append(snapshot.Receipts, rcpt)
	}

	return snapshot, nil
}

func buildItem(def itemDef) (*entities.Item, error) {
	itemType, err := parseItemType(def.Type)
	if err != nil {
		return nil, err
	}
	rule, err := parseLotRule(def.LotRule)
	if err != nil {
		return nil, err
	}

	unitCost := decimal.Zero
	if def.UnitCost != "" {
		unitCost, err = decimal.NewFromString(def.UnitCost)
		if err != nil {
			return nil, fmt.Errorf("invalid unit cost: %w", err)
		}
	}

	policy := entities.LotSizePolicy{
		Rule:     rule,
		FixedQty: entities.Quantity(def.FixedQty),
		MinQty:   entities.Quantity(def.MinQty),
		MaxQty:   entities.Quantity(def.MaxQty),
	}
	return entities.NewItem(entities.ItemID(def.ID), def.Name, itemType, def.UOM,
		def.LeadTime, policy, entities.Quantity(def.SafetyStock),
		entities.Quantity(def.OnHand), unitCost)
}

func parseItemType(s string) (entities.ItemType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "raw_material":
		return entities.RawMaterial, nil
	case "", "component":
		return entities.Component, nil
	case "finished", "finished_good":
		return entities.FinishedGood, nil
	default:
		return 0, fmt.Errorf("unknown item type: %s", s)
	}
}

func parseLotRule(s string) (entities.LotSizeRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lot_for_lot", "l4l":
		return entities.LotForLot, nil
	case "fixed", "fixed_quantity":
		return entities.FixedQuantity, nil
	case "min_max", "minmax":
		return entities.MinMax, nil
	default:
		return 0, fmt.Errorf("unknown lot size rule: %s", s)
	}
}
