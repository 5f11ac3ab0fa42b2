package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mscrnt/project_bottleneck/pkg/catalog"
	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the benchmark tables",
		Long:  "Inspect the CPU, GPU, RAM, SSD, HDD and USB benchmark tables",
	}

	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogSearchCmd())
	cmd.AddCommand(catalogStatsCmd())

	return cmd
}

func catalogListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list <category>",
		Short: "List the best ranked parts of a table",
		Args:  cobra.ExactArgs(1),
		Long: `List the best ranked parts of one benchmark table.

Examples:
  # Top 20 GPUs
  bottleneck catalog list gpu

  # Every SSD row
  bottleneck catalog list ssd --limit 0`,
		RunE: func(_ *cobra.Command, args []string) error {
			cat, err := parseCategory(args[0])
			if err != nil {
				return err
			}
			c, err := loadCatalog()
			if err != nil {
				return err
			}

			recs := c.Top(cat, limit)
			if len(recs) == 0 {
				fmt.Printf("No %s benchmarks loaded from %s\n", cat, c.Dir())
				return nil
			}
			printRecords(os.Stdout, recs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of rows (0 for all)")

	return cmd
}

func catalogSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <category> <query>",
		Short: "Find parts whose model contains the query",
		Args:  cobra.MinimumNArgs(2),
		Long: `Search a benchmark table by model substring, ignoring case.

Examples:
  bottleneck catalog search cpu i7-9700k
  bottleneck catalog search gpu "rtx 4070"`,
		RunE: func(_ *cobra.Command, args []string) error {
			cat, err := parseCategory(args[0])
			if err != nil {
				return err
			}
			c, err := loadCatalog()
			if err != nil {
				return err
			}

			query := strings.Join(args[1:], " ")
			recs := c.Search(cat, query, limit)
			if len(recs) == 0 {
				fmt.Printf("No %s parts match %q\n", cat, query)
				return nil
			}
			printRecords(os.Stdout, recs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of rows (0 for all)")

	return cmd
}

func catalogStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many rows each table holds",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}

			fmt.Printf("Benchmarks: %s\n\n", c.Dir())
			fmt.Printf("%-6s %8s  %s\n", "Table", "Rows", "Best part")
			fmt.Println(strings.Repeat("-", 60))
			for _, cat := range catalog.Categories {
				best := "-"
				if top := c.Top(cat, 1); len(top) > 0 {
					best = top[0].Name()
				}
				fmt.Printf("%-6s %8d  %s\n", cat, c.Len(cat), best)
			}
			return nil
		},
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Load(cfg.BenchmarksDir), nil
}

func parseCategory(s string) (catalog.Category, error) {
	cat, ok := catalog.ParseCategory(s)
	if !ok {
		return "", fmt.Errorf("unknown category %q (want cpu, gpu, ram, ssd, hdd or usb)", s)
	}
	return cat, nil
}

func printRecords(w io.Writer, recs []catalog.Record) {
	fmt.Fprintf(w, "%-6s %-45s %10s %8s\n", "Rank", "Part", "Benchmark", "Samples")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, r := range recs {
		rank := "-"
		if r.Rank > 0 {
			rank = fmt.Sprintf("%d", r.Rank)
		}
		fmt.Fprintf(w, "%-6s %-45s %10.1f %8d\n", rank, truncate(r.Name(), 45), r.Benchmark, r.Samples)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
