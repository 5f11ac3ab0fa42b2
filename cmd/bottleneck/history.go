package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mscrnt/project_bottleneck/pkg/db"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved analyses",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	var (
		limit     int
		component string
		mode      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved analyses, newest first",
		Long: `List saved analyses from the history database.

Examples:
  # Last 50 analyses
  bottleneck history list

  # Only runs where the GPU held the system back
  bottleneck history list --component gpu

  # Last 10 baseline runs
  bottleneck history list --mode baseline --limit 10`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			analyses, err := database.ListAnalyses(db.AnalysisFilter{
				Bottleneck: component,
				ScoreMode:  mode,
				Limit:      limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list analyses: %w", err)
			}

			if len(analyses) == 0 {
				fmt.Println("No analyses found")
				return nil
			}

			fmt.Printf("%-6s %-20s %-9s %-10s %8s %8s %8s %8s\n",
				"ID", "Taken", "Mode", "Verdict", "CPU", "GPU", "RAM", "SSD")
			fmt.Println(strings.Repeat("-", 84))
			for _, a := range analyses {
				fmt.Printf("%-6d %-20s %-9s %-10s %8.1f %8.1f %8.1f %8.1f\n",
					a.ID,
					a.TakenAt.Format("2006-01-02 15:04:05"),
					a.ScoreMode,
					a.Bottleneck,
					a.CPUScore, a.GPUScore, a.RAMScore, a.SSDScore,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of analyses to show")
	cmd.Flags().StringVarP(&component, "component", "c", "", "Filter by bottleneck (cpu, gpu, ram, ssd, balanced, unknown)")
	cmd.Flags().StringVar(&mode, "score-mode", "", "Filter by score mode (live or baseline)")

	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved analysis with its recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			a, err := database.GetAnalysis(id)
			if err != nil {
				return lookupError(id, err)
			}
			recs, err := database.GetRecommendations(id)
			if err != nil {
				return fmt.Errorf("failed to get recommendations: %w", err)
			}

			fmt.Printf("Analysis #%d\n", a.ID)
			fmt.Printf("Taken:      %s\n", a.TakenAt.Format("2006-01-02 15:04:05"))
			if a.Hostname != "" {
				fmt.Printf("Host:       %s\n", a.Hostname)
			}
			fmt.Printf("Score mode: %s\n\n", a.ScoreMode)
			fmt.Printf("CPU: %s (usage %s) score %.1f\n", a.CPUModel, db.UsageText(a.CPUUsage), a.CPUScore)
			fmt.Printf("GPU: %s score %.1f\n", a.GPUModel, a.GPUScore)
			fmt.Printf("RAM: %s (usage %s) score %.1f\n", a.RAMModel, db.UsageText(a.RAMUsage), a.RAMScore)
			fmt.Printf("Disk: %s [%s] (usage %s) score %.1f\n", a.DiskModel, a.DiskKind, db.UsageText(a.DiskUsage), a.SSDScore)
			fmt.Printf("\nBottleneck: %s\n", a.Label)

			if len(recs) > 0 {
				fmt.Println("\nRecommendations:")
				for _, r := range recs {
					switch {
					case r.TopTier:
						fmt.Printf("  %-4s %s is top-tier\n", r.Component, r.CurrentModel)
					case r.Improvement != nil:
						fmt.Printf("  %-4s %s -> %s (+%.1f%%)\n", r.Component, r.CurrentModel, r.CandidateModel, *r.Improvement)
					default:
						fmt.Printf("  %-4s %s -> %s\n", r.Component, r.CurrentModel, r.CandidateModel)
					}
				}
			}
			return nil
		},
	}
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := database.DeleteAnalysis(id); err != nil {
				return lookupError(id, err)
			}
			fmt.Printf("Deleted analysis #%d\n", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid analysis id %q", s)
	}
	return id, nil
}

func lookupError(id int64, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("analysis %d not found", id)
	}
	return fmt.Errorf("failed to get analysis %d: %w", id, err)
}
