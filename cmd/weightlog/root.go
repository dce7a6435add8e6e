package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"weightlog/internal/adapter/filestore"
	"weightlog/internal/adapter/postgres"
	"weightlog/internal/app"
	"weightlog/internal/config"
	"weightlog/internal/domain"
)

// Execute builds the command tree and runs it.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:   "weightlog",
		Short: "Personal weight tracking and trend analytics",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(serveCmd())
	root.AddCommand(addCmd())
	root.AddCommand(latestCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(goalCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(importCmd())

	return root.Execute()
}

// backend bundles the repositories behind whichever storage the config
// selects: PostgreSQL when DATABASE_URL is set, the CSV filestore otherwise.
type backend struct {
	obs   domain.ObservationRepository
	goals domain.GoalRepository
	close func() error
}

func openBackend(cfg *config.AppConfig) (*backend, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &backend{obs: db, goals: db, close: db.Close}, nil
	}
	store, err := filestore.Open(cfg.DataFile, cfg.GoalFile)
	if err != nil {
		return nil, err
	}
	return &backend{obs: store, goals: store, close: func() error { return nil }}, nil
}

func (b *backend) services(cfg *config.AppConfig) (*app.ObservationService, *app.GoalService, *app.ReportService) {
	obs := app.NewObservationService(b.obs).
		WithFutureTolerance(cfg.Analytics.FutureTolerance.Std())
	goals := app.NewGoalService(b.goals)
	reports := app.NewReportService(b.obs, b.goals, cfg.ReportConfig())
	return obs, goals, reports
}
