package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/plansim/plansim/pkg/application/dto"
	appservices "github.com/plansim/plansim/pkg/application/services"
	"github.com/plansim/plansim/pkg/domain/entities"
	csvrepo "github.com/plansim/plansim/pkg/infrastructure/repositories/csv"
	"github.com/plansim/plansim/pkg/infrastructure/repositories/sqlite"
	"github.com/plansim/plansim/pkg/infrastructure/scenario"
	"github.com/plansim/plansim/pkg/interfaces/cli/output"
)

type runOptions struct {
	scenarioFile string
	itemsFile    string
	bomFile      string
	demandsFile  string
	receiptsFile string
	horizonStart int
	horizonEnd   int
	granularity  string
	scenarioID   string
	workers      int
	dbPath       string
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a planning simulation",
		Long: `Run executes one simulation over a scenario. The scenario comes either
from a single YAML file (--scenario) or from CSV inputs (--items, --bom,
--demands, --receipts) combined with horizon flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(opts)
			if err != nil {
				return err
			}

			cfg := appservices.PlanServiceConfig{
				Workers: opts.workers,
				Logger:  log.Logger,
			}
			if opts.dbPath != "" {
				store, err := sqlite.NewPlanStore(opts.dbPath)
				if err != nil {
					return err
				}
				defer store.Close()
				cfg.Results = store
			}

			svc := appservices.NewPlanService(cfg)
			outcome, err := svc.RunPlan(cmd.Context(), snapshot)
			if err != nil {
				return err
			}

			report := dto.NewPlanReport(outcome.Result, outcome.KPIs)
			return output.Generate(cmd.OutOrStdout(), report, output.Config{
				Format:  formatFlag,
				Verbose: verboseFlag,
			})
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
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "worker pool size (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite database to persist the run")

	return cmd
}

func loadSnapshot(opts *runOptions) (*entities.PlanSnapshot, error) {
	if opts.scenarioFile != "" {
		return scenario.Load(opts.scenarioFile)
	}

	if err := requireFlag(opts.itemsFile, "items"); err != nil {
		return nil, fmt.Errorf("either --scenario or CSV inputs must be given: %w", err)
	}
	if err := requireFlag(opts.demandsFile, "demands"); err != nil {
		return nil, err
	}

	grid, err := entities.NewTimeGrid(entities.Period(opts.horizonStart),
		entities.Period(opts.horizonEnd), opts.granularity)
	if err != nil {
		return nil, err
	}

	loader := csvrepo.NewLoader()
	snapshot := &entities.PlanSnapshot{
		ScenarioID:      opts.scenarioID,
		SnapshotVersion: "csv",
		Grid:            *grid,
	}

	if snapshot.Items, err = loader.LoadItems(opts.itemsFile); err != nil {
		return nil, err
	}
	if opts.bomFile != "" {
		if snapshot.Edges, err = loader.LoadBOM(opts.bomFile); err != nil {
			return nil, err
		}
	}
	if snapshot.Demands, err = loader.LoadDemands(opts.demandsFile); err != nil {
		return nil, err
	}
	if opts.receiptsFile != "" {
		if snapshot.Receipts, err = loader.LoadReceipts(opts.receiptsFile); err != nil {
			return nil, err
		}
	}
	return snapshot, nil
}
