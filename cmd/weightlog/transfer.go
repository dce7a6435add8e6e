package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"weightlog/internal/adapter/filestore"
	"weightlog/internal/config"
)

// Transfer commands work against any backend by going through the CSV codec,
// so a PostgreSQL deployment can still be dumped to or loaded from a file.

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export all observations to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			b, err := openBackend(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = b.close() }()

			wide := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
			obs, err := b.obs.Range(cmd.Context(), wide, time.Now().UTC().AddDate(1, 0, 0))
			if err != nil {
				return err
			}
			if err := filestore.NewLog(args[0]).Save(cmd.Context(), obs); err != nil {
				return err
			}
			fmt.Printf("exported %d observations to %s\n", len(obs), args[0])
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import observations from a CSV file, superseding same-date entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			b, err := openBackend(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = b.close() }()

			obs, err := filestore.NewLog(args[0]).Load(cmd.Context())
			if err != nil {
				return err
			}
			for _, o := range obs {
				if o.RecordedAt.IsZero() {
					o.RecordedAt = time.Now().UTC()
				}
				if err := b.obs.Upsert(cmd.Context(), o); err != nil {
					return err
				}
			}
			fmt.Printf("imported %d observations from %s\n", len(obs), args[0])
			return nil
		},
	}
}
