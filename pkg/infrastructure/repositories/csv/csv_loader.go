package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/plansim/plansim/pkg/domain/entities"
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadItems loads item master records from a CSV file
func (l *Loader) LoadItems(filename string) ([]*entities.Item, error) {
	records, err := readAll(filename, "items")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"item_id", "name", "type", "uom", "lead_time",
		"lot_rule", "fixed_qty", "min_qty", "max_qty", "safety_stock", "on_hand", "unit_cost"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("items CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var items []*entities.Item
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("items CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadBOM loads BOM edges from a CSV file
func (l *Loader) LoadBOM(filename string) ([]*entities.BOMEdge, error) {
	records, err := readAll(filename, "BOM")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"parent_id", "child_id", "qty_per", "effective_from", "effective_to"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("BOM CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var edges []*entities.BOMEdge
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("BOM CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		edge, err := parseBOMEdge(record)
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: %w", i+2, err)
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// LoadDemands loads independent demand rows from a CSV file
func (l *Loader) LoadDemands(filename string) ([]*entities.DemandRow, error) {
	records, err := readAll(filename, "demands")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"item_id", "period", "quantity", "origin"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("demands CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var demands []*entities.DemandRow
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("demands CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		period, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("demands CSV row %d: invalid period: %w", i+2, err)
		}
		qty, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("demands CSV row %d: invalid quantity: %w", i+2, err)
		}
		row, err := entities.NewDemandRow(entities.ItemID(record[0]), entities.Period(period), entities.Quantity(qty), record[3])
		if err != nil {
			return nil, fmt.Errorf("demands CSV row %d: %w", i+2, err)
		}
		demands = append(demands, row)
	}
	return demands, nil
}

// LoadReceipts loads scheduled receipts from a CSV file
func (l *Loader) LoadReceipts(filename string) ([]*entities.ScheduledReceipt, error) {
	records, err := readAll(filename, "receipts")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"item_id", "period", "quantity", "order_ref"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("receipts CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var receipts []*entities.ScheduledReceipt
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("receipts CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		period, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: invalid period: %w", i+2, err)
		}
		qty, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: invalid quantity: %w", i+2, err)
		}
		rcpt, err := entities.NewScheduledReceipt(entities.ItemID(record[0]), entities.Period(period), entities.Quantity(qty), record[3])
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: %w", i+2, err)
		}
		receipts = append(receipts, rcpt)
	}
	return receipts, nil
}

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return false
		}
	}
	return true
}

func parseItem(record []string) (*entities.Item, error) {
	itemType, err := parseItemType(record[2])
	if err != nil {
		return nil, err
	}

	leadTime, err := strconv.Atoi(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid lead time: %w", err)
	}

	rule, err := parseLotRule(record[5])
	if err != nil {
		return nil, err
	}
	fixedQty, err := parseQuantity(record[6], "fixed quantity")
	if err != nil {
		return nil, err
	}
	minQty, err := parseQuantity(record[7], "min quantity")
	if err != nil {
		return nil, err
	}
	maxQty, err := parseQuantity(record[8], "max quantity")
	if err != nil {
		return nil, err
	}

	safetyStock, err := parseQuantity(record[9], "safety stock")
	if err != nil {
		return nil, err
	}
	onHand, err := parseQuantity(record[10], "on-hand")
	if err != nil {
		return nil, err
	}

	unitCost := decimal.Zero
	if record[11] != "" {
		unitCost, err = decimal.NewFromString(record[11])
		if err != nil {
			return nil, fmt.Errorf("invalid unit cost: %w", err)
		}
	}

	policy := entities.LotSizePolicy{
		Rule:     rule,
		FixedQty: fixedQty,
		MinQty:   minQty,
		MaxQty:   maxQty,
	}
	return entities.NewItem(entities.ItemID(record[0]), record[1], itemType,
		record[3], leadTime, policy, safetyStock, onHand, unitCost)
}

func parseBOMEdge(record []string) (*entities.BOMEdge, error) {
	qtyPer, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid qty_per: %w", err)
	}

	var eff entities.Effectivity
	if record[3] != "" {
		from, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("invalid effective_from: %w", err)
		}
		eff.From = entities.Period(from)
	}
	if record[4] != "" {
		to, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid effective_to: %w", err)
		}
		eff.To = entities.Period(to)
	}

	return entities.NewBOMEdge(entities.ItemID(record[0]), entities.ItemID(record[1]),
		entities.Quantity(qtyPer), eff)
}

func parseItemType(s string) (entities.ItemType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw", "raw_material", "rawmaterial":
		return entities.RawMaterial, nil
	case "component":
		return entities.Component, nil
	case "finished", "finished_good", "finishedgood":
		return entities.FinishedGood, nil
	default:
		return 0, fmt.Errorf("unknown item type: %s", s)
	}
}

func parseLotRule(s string) (entities.LotSizeRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lot_for_lot", "lotforlot", "l4l":
		return entities.LotForLot, nil
	case "fixed", "fixed_quantity", "fixedquantity":
		return entities.FixedQuantity, nil
	case "min_max", "minmax":
		return entities.MinMax, nil
	default:
		return 0, fmt.Errorf("unknown lot size rule: %s", s)
	}
}

func parseQuantity(s, field string) (entities.Quantity, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	return entities.Quantity(v), nil
}
