package main

import (
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/mscrnt/project_bottleneck/internal/version"
	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/config"
	"github.com/mscrnt/project_bottleneck/pkg/gui"
	"github.com/spf13/pflag"
)

var (
	// Build variables set by ldflags
	buildVersion string
	buildCommit  string
	buildTime    string
)

func main() {
	configPath := pflag.String("config", config.DefaultPath(), "Config file")
	noHistory := pflag.Bool("no-history", false, "Disable the history database")
	pflag.Parse()

	if err := run(*configPath, *noHistory); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run holds the single-instance lock for the lifetime of the window and
// releases it on every return path
func run(configPath string, noHistory bool) error {
	// Fix locale issue in WSL/minimal environments
	lang := os.Getenv("LANG")
	if lang == "" || lang == "C" {
		_ = os.Setenv("LANG", "en_US.UTF-8")
		_ = os.Setenv("LC_ALL", "en_US.UTF-8")
	}

	release, ok := gui.AcquireSingleInstance()
	if !ok {
		return errors.New("Bottleneck Analyzer is already running")
	}
	defer release()

	cfg, dbPath, err := loadSettings(configPath, noHistory)
	if err != nil {
		return err
	}
	gui.DebugLog("CONFIG", "benchmarks=%s mode=%s db=%s", cfg.BenchmarksDir, cfg.ScoreMode, dbPath)

	myApp := app.NewWithID("com.bottleneck.analyzer")
	myApp.SetIcon(theme.ComputerIcon())

	g := gui.NewBottleneckGUI(myApp, analyzer.FromConfig(cfg), dbPath, version.GetVersion(buildVersion, buildCommit, buildTime))
	g.ShowAndRun()
	return nil
}

// loadSettings writes a default config on first start, loads it and
// returns the history path, empty when history is disabled
func loadSettings(path string, noHistory bool) (*config.Config, string, error) {
	if err := config.EnsureExists(path); err != nil {
		gui.DebugLog("CONFIG", "failed to write default config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if noHistory {
		return cfg, "", nil
	}
	return cfg, cfg.DBPath, nil
}
