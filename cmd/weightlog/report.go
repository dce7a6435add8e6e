package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightlog/internal/config"
	"weightlog/internal/domain"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print a full progress report",
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
			_, _, reports := b.services(cfg)

			r, err := reports.Build(cmd.Context())
			if err != nil {
				return err
			}
			printReport(r)
			return nil
		},
	}
}

func printReport(r *domain.Report) {
	fmt.Printf("Report %s (generated %s)\n", r.ID, r.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Printf("First:  %s  %.1f kg\n", r.First.Date.Format("2006-01-02"), r.First.Weight)
	fmt.Printf("Latest: %s  %.1f kg\n", r.Latest.Date.Format("2006-01-02"), r.Latest.Weight)
	fmt.Printf("Change: %+.1f kg (%+.1f%%)\n", r.TotalChange.Kilograms, r.TotalChange.Percent)

	if r.BMI != nil {
		fmt.Printf("BMI:    %.1f (%s)\n", r.BMI.Value, r.BMI.Category)
	} else {
		fmt.Println("BMI:    unavailable (no height on record)")
	}

	switch r.Projection.Outcome {
	case domain.OutcomeProjected:
		fmt.Printf("Goal:   %.1f kg, projected %s (%.2f kg/week, window %s to %s)\n",
			r.Goal.TargetWeight,
			r.Projection.Date.Format("2006-01-02"),
			r.Projection.RatePerWeek,
			r.Projection.Earliest.Format("2006-01-02"),
			r.Projection.Latest.Format("2006-01-02"))
	case domain.OutcomeWrongDirection:
		fmt.Printf("Goal:   %.1f kg, trend is moving away from the target\n", r.Goal.TargetWeight)
	case domain.OutcomeInsufficientData:
		fmt.Println("Goal:   not enough observations to project")
	case domain.OutcomeNoGoal:
		fmt.Println("Goal:   none set")
	}

	fmt.Println("\nWeekly:")
	printSummaries(r.Weekly)
	fmt.Println("\nMonthly:")
	printSummaries(r.Monthly)
}

func printSummaries(items []domain.PeriodSummary) {
	for _, s := range items {
		if !s.HasData {
			fmt.Printf("  %-10s  no data\n", s.Key)
			continue
		}
		line := fmt.Sprintf("  %-10s  mean %.1f  min %.1f  max %.1f  n=%d",
			s.Key, s.Mean, s.Min, s.Max, s.Count)
		if s.NetChange != nil {
			line += fmt.Sprintf("  net %+.1f", *s.NetChange)
		}
		fmt.Println(line)
	}
}
