package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plansim/plansim/pkg/domain/services"
)

func newValidateCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a scenario without running it",
		Long: `Validate loads a scenario, runs the snapshot pre-flight checks and
builds the BOM graph. It reports the low-level code of every item, or the
cycle that makes the structure unplannable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(opts)
			if err != nil {
				return err
			}

			if err := snapshot.Validate(); err != nil {
				return fmt.Errorf("snapshot invalid: %w", err)
			}

			graph, err := services.BuildGraph(snapshot.Items, snapshot.Edges)
			if err != nil {
				return fmt.Errorf("BOM structure invalid: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scenario %s is valid.\n", snapshot.ScenarioID)
			fmt.Fprintf(out, "Items: %d  BOM edges: %d  Demands: %d  Receipts: %d\n",
				len(snapshot.Items), len(snapshot.Edges), len(snapshot.Demands), len(snapshot.Receipts))
			fmt.Fprintf(out, "Horizon: periods %d..%d (%s)\n\n",
				snapshot.Grid.Start, snapshot.Grid.End, snapshot.Grid.Granularity)

			fmt.Fprintln(out, "Planning levels:")
			for level, items := range graph.Levels() {
				fmt.Fprintf(out, "  %d: %v\n", level, items)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.scenarioFile, "scenario", "s", "", "scenario YAML file")
	cmd.Flags().StringVar(&opts.itemsFile, "items", "", "items CSV file")
	cmd.Flags().StringVar(&opts.bomFile, "bom", "", "BOM CSV file")
	cmd.Flags().StringVar(&opts.demandsFile, "demands", "", "demands CSV file")
	cmd.Flags().StringVar(&opts.receiptsFile, "receipts", "", "scheduled receipts CSV file")
	cmd.Flags().IntVar(&opts.horizonStart, "horizon-start", 0, "first period of the horizon (CSV mode)")
	cmd.Flags().IntVar(&opts.horizonEnd, "horizon-end", 0, "last period of the horizon (CSV mode)")
	cmd.Flags().StringVar(&opts.granularity, "granularity", "week", "period granularity label (CSV mode)")
	cmd.Flags().StringVar(&opts.scenarioID, "scenario-id", "adhoc", "scenario identifier (CSV mode)")

	return cmd
}
