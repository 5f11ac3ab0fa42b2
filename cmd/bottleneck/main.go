package main

import (
	"fmt"
	"os"

	"github.com/mscrnt/project_bottleneck/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Build variables set by ldflags
	buildVersion string
	buildCommit  string
	buildTime    string

	// Persistent flags
	configPath    string
	benchmarksDir string
	scoreMode     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bottleneck",
		Short: "Bottleneck - PC hardware bottleneck analyzer",
		Long: `Bottleneck inspects the local machine, scores its CPU, GPU, RAM and
system disk against benchmark tables, names the weakest component and
suggests an upgrade for it.`,
		Version:       version.GetVersion(buildVersion, buildCommit, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.bottleneck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&benchmarksDir, "benchmarks", "", "Directory holding the *_UserBenchmarks.csv tables")
	rootCmd.PersistentFlags().StringVar(&scoreMode, "mode", "", "Score mode (live or baseline)")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(recommendCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(guiCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.GetDetailedVersion(buildVersion, buildCommit, buildTime))
		},
	}
}
