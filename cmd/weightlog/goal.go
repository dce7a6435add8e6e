package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"weightlog/internal/config"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage the target weight",
	}
	cmd.AddCommand(goalSetCmd())
	cmd.AddCommand(goalShowCmd())
	return cmd
}

func goalSetCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "set <weight>",
		Short: "Set the target weight in kg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse target %q: %w", args[0], err)
			}
			var targetDate *time.Time
			if date != "" {
				d, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parse date %q: %w", date, err)
				}
				targetDate = &d
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			b, err := openBackend(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = b.close() }()
			_, goals, _ := b.services(cfg)

			g, err := goals.Set(cmd.Context(), target, targetDate)
			if err != nil {
				return err
			}
			fmt.Printf("goal set to %.1f kg\n", g.TargetWeight)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "target date (YYYY-MM-DD, optional)")
	return cmd
}

func goalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current goal",
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
			_, goals, _ := b.services(cfg)

			g, err := goals.Current(cmd.Context())
			if err != nil {
				return err
			}
			if g.TargetDate != nil {
				fmt.Printf("target %.1f kg by %s\n", g.TargetWeight, g.TargetDate.Format("2006-01-02"))
			} else {
				fmt.Printf("target %.1f kg\n", g.TargetWeight)
			}
			return nil
		},
	}
}
