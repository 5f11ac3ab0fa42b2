package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/schedule"
	"github.com/spf13/cobra"
)

const watchJobName = "analysis"

func watchCmd() *cobra.Command {
	var (
		cronExpr string
		logFile  string
		preview  int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Analyze periodically and save every run to history",
		Long: `Run an analysis on a cron schedule and store each result, with upgrade
suggestions for every component, in the history database.

Cron expressions have five fields (minute hour day month weekday) and
also accept descriptors such as @hourly, @daily or @every 30m. The
default comes from watch.cron in the config file.

The watcher runs until interrupted.

Examples:
  # Analyze every hour
  bottleneck watch

  # Analyze every 15 minutes and log to a file
  bottleneck watch --cron "*/15 * * * *" --log watch.log

  # Analyze every day at 2 AM
  bottleneck watch --cron "0 2 * * *"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			logger := log.New(os.Stdout, "", log.LstdFlags)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- logFile is a user-specified path from a command line flag
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer func() { _ = f.Close() }()
				logger = log.New(f, "", log.LstdFlags)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cronExpr == "" {
				cronExpr = cfg.Watch.Cron
			}

			if preview < 0 {
				preview = 0
			}
			next, err := schedule.NextRuns(cronExpr, time.Now(), preview)
			if err != nil {
				return err
			}

			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			a := analyzer.FromConfig(cfg, analyzer.WithLogger(logger))
			runner := schedule.NewRunner(logger)
			if err := runner.Add(watchJobName, cronExpr, schedule.AnalysisJob(a, database, logger)); err != nil {
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			runner.Start()
			fmt.Printf("Watching with %q, saving to %s. Press Ctrl+C to stop.\n", cronExpr, database.Path())
			for _, t := range next {
				fmt.Printf("  next run: %s\n", t.Format("2006-01-02 15:04:05"))
			}

			<-sigChan
			logger.Println("[SCHEDULE] received shutdown signal")
			runner.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&cronExpr, "cron", "", "Cron expression (default: watch.cron from config)")
	cmd.Flags().StringVar(&logFile, "log", "", "Log file path (default: stdout)")
	cmd.Flags().IntVar(&preview, "preview", 3, "Number of upcoming runs to print")

	return cmd
}
