package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/config"
	"github.com/mscrnt/project_bottleneck/pkg/db"
)

// loadConfig reads the config file and applies the persistent flag
// overrides on top of it
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cfg, benchmarksDir, scoreMode)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// applyFlags lets non-empty flag values win over the file and environment
func applyFlags(cfg *config.Config, benchmarks, mode string) {
	if benchmarks != "" {
		cfg.BenchmarksDir = benchmarks
	}
	if mode != "" {
		cfg.ScoreMode = mode
	}
}

// newAnalyzer loads the config and the benchmark tables
func newAnalyzer() (*config.Config, *analyzer.Analyzer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, analyzer.FromConfig(cfg), nil
}

// openDB opens the history database named by the config
func openDB(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// outputWriter returns stdout for an empty path, otherwise a new file. The
// returned close func is always safe to call.
func outputWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path) // #nosec G304 -- path is a user-specified output file from a command line flag
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
