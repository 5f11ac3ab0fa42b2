package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/db"
	"github.com/mscrnt/project_bottleneck/pkg/recommend"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var (
		save    bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze this machine and name the bottleneck",
		Long: `Probe the CPU, GPU, RAM and system disk, score them against the
benchmark tables and print the bottleneck verdict.

Examples:
  # Analyze with live scores
  bottleneck analyze

  # Use the generic baseline rows for CPU, RAM and SSD
  bottleneck analyze --mode baseline

  # Store the run (with upgrade suggestions) in history
  bottleneck analyze --save

  # Machine readable output
  bottleneck analyze --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, a, err := newAnalyzer()
			if err != nil {
				return err
			}

			res := a.Analyze(cmd.Context())
			recs := recommend.All(a.Catalog(), res.Snapshot, a.Mode())

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				out := struct {
					analyzer.Result
					Recommendations []recommend.Recommendation `json:"recommendations"`
				}{res, recs}
				if err := enc.Encode(out); err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
			} else {
				printResult(res)
			}

			if !save {
				return nil
			}

			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			record := db.NewAnalysis(res)
			if err := database.SaveAnalysis(record, db.NewRecommendations(recs)); err != nil {
				return fmt.Errorf("failed to save analysis: %w", err)
			}
			if !jsonOut {
				fmt.Printf("\nSaved as analysis #%d\n", record.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the analysis to history")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")

	return cmd
}

func printResult(res analyzer.Result) {
	fmt.Println(res.Text())
	fmt.Printf("\nScores (%s mode):\n", res.Mode)
	fmt.Print(res.ScoreTable())
	fmt.Printf("CPU/GPU ratio: %s\n", res.Verdict.RatioText())
}
