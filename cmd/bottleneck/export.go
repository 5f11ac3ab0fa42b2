package main

import (
	"fmt"

	"github.com/mscrnt/project_bottleneck/pkg/db"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved analyses",
		Long:  "Export saved analyses and their recommendations as CSV or JSON",
	}

	cmd.AddCommand(exportFormatCmd(db.ExportFormatCSV, `Export analyses to CSV format.

Examples:
  # Export one analysis to a file
  bottleneck export csv --run 42 --out analysis.csv

  # Export every analysis to stdout
  bottleneck export csv --all`))
	cmd.AddCommand(exportFormatCmd(db.ExportFormatJSON, `Export analyses to JSON format.

Examples:
  # Export one analysis with its recommendations
  bottleneck export json --run 42 --out analysis.json

  # Export the whole history
  bottleneck export json --all --out history.json`))

	return cmd
}

func exportFormatCmd(format db.ExportFormat, long string) *cobra.Command {
	var (
		runID  int64
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   string(format),
		Short: fmt.Sprintf("Export analyses to %s format", format),
		Long:  long,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !all && runID == 0 {
				return fmt.Errorf("either --run or --all must be specified")
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

			if !all {
				if _, err := database.GetAnalysis(runID); err != nil {
					return lookupError(runID, err)
				}
			}

			out, closeOut, err := outputWriter(output)
			if err != nil {
				return err
			}
			defer closeOut()

			switch {
			case format == db.ExportFormatCSV && all:
				err = database.ExportAllCSV(out)
			case format == db.ExportFormatCSV:
				err = database.ExportCSV(out, runID)
			case all:
				err = database.ExportAllJSON(out)
			default:
				err = database.ExportJSON(out, runID)
			}
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", format, err)
			}

			if output != "" {
				if all {
					fmt.Printf("Exported all analyses to %s\n", output)
				} else {
					fmt.Printf("Exported analysis %d to %s\n", runID, output)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&runID, "run", 0, "Analysis ID to export")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&all, "all", false, "Export all analyses")

	return cmd
}
