package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"weightlog/internal/config"
	"weightlog/internal/domain"
)

func addCmd() *cobra.Command {
	var (
		date   string
		height float64
		unit   string
	)
	cmd := &cobra.Command{
		Use:   "add <weight>",
		Short: "Record a weight observation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse weight %q: %w", args[0], err)
			}
			if unit != "kg" && unit != "lb" {
				return fmt.Errorf("unknown unit %q (want kg or lb)", unit)
			}
			weight = domain.ConvertWeight(weight, unit, "kg")

			day := time.Now().UTC()
			if date != "" {
				day, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parse date %q: %w", date, err)
				}
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
			obs, _, _ := b.services(cfg)

			rec, err := obs.Record(cmd.Context(), day, weight, height)
			if err != nil {
				return err
			}
			fmt.Printf("recorded %.1f kg on %s\n", rec.Weight, rec.Date.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "observation date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&height, "height", 0, "height in meters (optional)")
	cmd.Flags().StringVar(&unit, "unit", "kg", "input unit (kg or lb)")
	return cmd
}

func latestCmd() *cobra.Command {
	var unit string
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent observation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if unit != "kg" && unit != "lb" {
				return fmt.Errorf("unknown unit %q (want kg or lb)", unit)
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
			obs, _, _ := b.services(cfg)

			latest, err := obs.Latest(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s  %.1f %s\n",
				latest.Date.Format("2006-01-02"),
				domain.ConvertWeight(latest.Weight, "kg", unit), unit)
			return nil
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "kg", "display unit (kg or lb)")
	return cmd
}
