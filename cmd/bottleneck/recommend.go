package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func recommendCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:       "recommend <cpu|gpu|ram|ssd|all>",
		Short:     "Suggest an upgrade for a component",
		ValidArgs: []string{"cpu", "gpu", "ram", "ssd", "all"},
		Args:      cobra.ExactArgs(1),
		Long: `Probe the machine and propose the best scoring part that beats the
installed one on both benchmark and rank.

Examples:
  # Suggest a faster GPU
  bottleneck recommend gpu

  # Suggestions for every component
  bottleneck recommend all --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := newAnalyzer()
			if err != nil {
				return err
			}

			res := a.Analyze(cmd.Context())
			recs, err := a.Recommend(res.Snapshot, args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(recs); err != nil {
					return fmt.Errorf("failed to encode recommendations: %w", err)
				}
				return nil
			}

			for _, r := range recs {
				fmt.Println(r.Text())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the recommendations as JSON")

	return cmd
}
