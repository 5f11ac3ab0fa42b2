package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/db"
	"github.com/mscrnt/project_bottleneck/pkg/report"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate analysis reports",
		Long:  "Generate HTML and PDF reports from saved analyses",
	}

	cmd.AddCommand(reportGenerateCmd())

	return cmd
}

func reportGenerateCmd() *cobra.Command {
	var (
		format    string
		output    string
		runID     int64
		latest    bool
		landscape bool
		pageSize  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report",
		Long: `Generate an HTML or PDF report from a saved analysis.

PDF output needs Chrome or Chromium installed.

Examples:
  # HTML report for the latest analysis
  bottleneck report generate --latest

  # PDF report for a specific analysis
  bottleneck report generate --run 42 --format pdf --output report.pdf

  # Landscape A4 PDF
  bottleneck report generate --latest --format pdf --landscape --page-size A4`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !latest && runID == 0 {
				return fmt.Errorf("either --latest or --run must be specified")
			}
			format = strings.ToLower(format)
			if format != "html" && format != "pdf" {
				return fmt.Errorf("format must be either 'html' or 'pdf'")
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

			var analysis *db.Analysis
			if latest {
				analysis, err = database.LatestAnalysis()
				if errors.Is(err, db.ErrNotFound) {
					return fmt.Errorf("no analyses found, run 'bottleneck analyze --save' first")
				}
			} else {
				analysis, err = database.GetAnalysis(runID)
			}
			if err != nil {
				return lookupError(runID, err)
			}
			runID = analysis.ID

			if output == "" {
				timestamp := time.Now().Format("20060102_150405")
				output = filepath.Join(cfg.Report.OutputDir, fmt.Sprintf("bottleneck_report_%d_%s.%s", runID, timestamp, format))
			}

			generator := report.NewGenerator(database)
			switch format {
			case "html":
				html, err := generator.GenerateHTML(runID)
				if err != nil {
					return fmt.Errorf("failed to generate HTML report: %w", err)
				}
				if err := os.WriteFile(output, []byte(html), 0o600); err != nil {
					return fmt.Errorf("failed to write HTML file: %w", err)
				}

			case "pdf":
				options := report.DefaultPDFOptions()
				options.Landscape = landscape
				options.Timeout = cfg.PDFTimeout()
				if err := applyPageSize(&options, pageSize); err != nil {
					return err
				}
				if err := generator.GeneratePDF(runID, output, &options); err != nil {
					return fmt.Errorf("failed to generate PDF report: %w", err)
				}
			}

			absPath, _ := filepath.Abs(output)

			fmt.Printf("Generated %s report for analysis #%d\n", strings.ToUpper(format), runID)
			fmt.Printf("Date: %s\n", analysis.TakenAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Verdict: %s\n", analysis.Label)
			fmt.Printf("Output: %s\n", absPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format (html or pdf)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().Int64Var(&runID, "run", 0, "Analysis ID to report on")
	cmd.Flags().BoolVar(&latest, "latest", false, "Use the latest analysis")
	cmd.Flags().BoolVar(&landscape, "landscape", false, "Generate PDF in landscape mode")
	cmd.Flags().StringVar(&pageSize, "page-size", "LETTER", "PDF page size (A3, A4, LETTER, LEGAL)")

	return cmd
}

// applyPageSize sets the paper dimensions in inches
func applyPageSize(options *report.PDFOptions, size string) error {
	switch strings.ToUpper(strings.TrimSpace(size)) {
	case "", "LETTER":
		options.PaperWidth = 8.5
		options.PaperHeight = 11.0
	case "A4":
		options.PaperWidth = 8.27
		options.PaperHeight = 11.69
	case "A3":
		options.PaperWidth = 11.69
		options.PaperHeight = 16.54
	case "LEGAL":
		options.PaperWidth = 8.5
		options.PaperHeight = 14.0
	default:
		return fmt.Errorf("unsupported page size: %s", size)
	}
	return nil
}
