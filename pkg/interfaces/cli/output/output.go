// Package output renders plan reports for the CLI in text, JSON and CSV
// form. Writers take an io.Writer so commands and tests share one path.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/plansim/plansim/pkg/application/dto"
)

// Config holds output generation options
type Config struct {
	Format  string
	Verbose bool
}

// Generate writes a plan report in the configured format.
func Generate(w io.Writer, report *dto.PlanReport, config Config) error {
	switch config.Format {
	case "", "text":
		return writeText(w, report, config.Verbose)
	case "json":
		return writeJSON(w, report)
	case "csv":
		return writeCSV(w, report)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writeText(w io.Writer, report *dto.PlanReport, verbose bool) error {
	fmt.Fprintf(w, "Plan Run %s\n", report.RunID)
	fmt.Fprintf(w, "Scenario: %s (snapshot %s)\n\n", report.ScenarioID, report.SnapshotVersion)

	fmt.Fprintf(w, "Planned Orders: %d\n", len(report.Orders))
	fmt.Fprintf(w, "Exceptions: %d\n\n", len(report.Exceptions))

	if len(report.Orders) > 0 {
		fmt.Fprintf(w, "Planned Orders:\n")
		fmt.Fprintf(w, "%-15s %-10s %-8s %-8s %-12s\n",
			"Item", "Qty", "Release", "Due", "Kind")
		fmt.Fprintf(w, "%-15s %-10s %-8s %-8s %-12s\n",
			"---------------", "----------", "--------", "--------", "------------")
		for _, order := range report.Orders {
			fmt.Fprintf(w, "%-15s %-10d %-8d %-8d %-12s\n",
				order.ItemID, order.Quantity, order.Release, order.Due, order.Kind)
		}
		fmt.Fprintln(w)
	}

	if len(report.Exceptions) > 0 {
		fmt.Fprintf(w, "Exceptions:\n")
		for _, ex := range report.Exceptions {
			fmt.Fprintf(w, "  [%s] %s @ period %d: %s\n", ex.Kind, ex.ItemID, ex.Period, ex.Detail)
		}
		fmt.Fprintln(w)
	}

	if len(report.KPIs) > 0 {
		fmt.Fprintf(w, "KPIs:\n")
		for _, kpi := range report.KPIs {
			fmt.Fprintf(w, "  %-28s %10s %-9s [%s]\n", kpi.Name, kpi.Value, kpi.Unit, kpi.Status)
		}
		fmt.Fprintln(w)
	}

	if verbose && len(report.Projections) > 0 {
		fmt.Fprintf(w, "Projected On-Hand:\n")
		fmt.Fprintf(w, "%-15s %-8s %-12s\n", "Item", "Period", "Projected")
		for _, row := range report.Projections {
			fmt.Fprintf(w, "%-15s %-8d %-12d\n", row.ItemID, row.Period, row.Projected)
		}
	}
	return nil
}

func writeJSON(w io.Writer, report *dto.PlanReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeCSV(w io.Writer, report *dto.PlanReport) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"record", "item_id", "period", "release", "due", "quantity", "kind", "detail"}); err != nil {
		return err
	}
	for _, order := range report.Orders {
		row := []string{"order", order.ItemID, "",
			strconv.Itoa(order.Release), strconv.Itoa(order.Due),
			strconv.FormatInt(order.Quantity, 10), order.Kind, ""}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	for _, proj := range report.Projections {
		row := []string{"projection", proj.ItemID, strconv.Itoa(proj.Period), "", "",
			strconv.FormatInt(proj.Projected, 10), "", ""}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	for _, ex := range report.Exceptions {
		row := []string{"exception", ex.ItemID, strconv.Itoa(ex.Period), "", "", "",
			ex.Kind, ex.Detail}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
