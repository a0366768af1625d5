package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plansim/plansim/pkg/application/dto"
	"github.com/plansim/plansim/pkg/infrastructure/repositories/sqlite"
	"github.com/plansim/plansim/pkg/interfaces/cli/output"
)

func newHistoryCommand() *cobra.Command {
	var dbPath, scenarioID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List persisted planning runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(dbPath, "db"); err != nil {
				return err
			}

			store, err := sqlite.NewPlanStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), scenarioID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}

			fmt.Fprintf(out, "%-38s %-16s %-10s %-8s %-10s %s\n",
				"Run ID", "Scenario", "Snapshot", "Orders", "Exceptions", "Created")
			for _, run := range runs {
				fmt.Fprintf(out, "%-38s %-16s %-10s %-8d %-10d %s\n",
					run.RunID, run.ScenarioID, run.SnapshotVersion,
					run.OrderCount, run.ExceptionCount,
					run.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database with persisted runs")
	cmd.Flags().StringVar(&scenarioID, "scenario-id", "", "only list runs of this scenario")

	return cmd
}

func newShowCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a persisted planning run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(dbPath, "db"); err != nil {
				return err
			}

			store, err := sqlite.NewPlanStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.GetResult(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			report := dto.NewPlanReport(result, nil)
			return output.Generate(cmd.OutOrStdout(), report, output.Config{
				Format:  formatFlag,
				Verbose: verboseFlag,
			})
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database with persisted runs")

	return cmd
}
