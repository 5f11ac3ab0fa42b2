// Package config loads the analyzer settings from ~/.bottleneck/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/bottleneck"
	"gopkg.in/yaml.v3"
)

const (
	// EnvBenchmarksDir overrides benchmarks_dir
	EnvBenchmarksDir = "BOTTLENECK_BENCHMARKS_DIR"
	// EnvDBPath overrides db_path
	EnvDBPath = "BOTTLENECK_DB_PATH"
	// EnvScoreMode overrides score_mode
	EnvScoreMode = "BOTTLENECK_SCORE_MODE"

	dirName  = ".bottleneck"
	fileName = "config.yaml"
)

// Config holds every setting of the analyzer
type Config struct {
	BenchmarksDir string                `yaml:"benchmarks_dir"`
	DBPath        string                `yaml:"db_path"`
	ScoreMode     string                `yaml:"score_mode"`
	Thresholds    bottleneck.Thresholds `yaml:"thresholds"`
	Probe         ProbeConfig           `yaml:"probe"`
	Watch         WatchConfig           `yaml:"watch"`
	Report        ReportConfig          `yaml:"report"`
}

// ProbeConfig controls hardware sampling
type ProbeConfig struct {
	// CPUSampleMS is how long CPU utilization is averaged over
	CPUSampleMS int `yaml:"cpu_sample_ms"`
	// DiskPath is the volume whose usage is reported; empty means the
	// system drive
	DiskPath string `yaml:"disk_path"`
}

// WatchConfig is used by the watch command
type WatchConfig struct {
	Cron string `yaml:"cron"`
}

// ReportConfig holds report output defaults
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
	// PDFTimeoutSec bounds headless Chrome rendering
	PDFTimeoutSec int `yaml:"pdf_timeout_sec"`
}

// Dir returns ~/.bottleneck, or the current directory when no home
// directory is available
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, dirName)
}

// DefaultPath returns the config file location
func DefaultPath() string {
	return filepath.Join(Dir(), fileName)
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		BenchmarksDir: "Benchmarks",
		DBPath:        filepath.Join(Dir(), "bottleneck.db"),
		ScoreMode:     string(bottleneck.ModeLive),
		Thresholds:    bottleneck.DefaultThresholds(),
		Probe: ProbeConfig{
			CPUSampleMS: 500,
		},
		Watch: WatchConfig{
			Cron: "0 * * * *",
		},
		Report: ReportConfig{
			OutputDir:     ".",
			PDFTimeoutSec: 30,
		},
	}
}

// EnsureExists writes the default config when path does not exist.
// An existing file is never overwritten.
func EnsureExists(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return Save(path, Default())
}

// Load reads path over the defaults, fills in zeroed values and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path) // #nosec G304 -- path is the user's config file
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.ApplyDefaults()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, b, 0o600)
}

// ApplyDefaults fills zero values left by a partial file
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.BenchmarksDir == "" {
		c.BenchmarksDir = d.BenchmarksDir
	}
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.ScoreMode == "" {
		c.ScoreMode = d.ScoreMode
	}
	if c.Thresholds.CPUWeakRatio == 0 {
		c.Thresholds.CPUWeakRatio = d.Thresholds.CPUWeakRatio
	}
	if c.Thresholds.GPUWeakRatio == 0 {
		c.Thresholds.GPUWeakRatio = d.Thresholds.GPUWeakRatio
	}
	if c.Thresholds.RAMFraction == 0 {
		c.Thresholds.RAMFraction = d.Thresholds.RAMFraction
	}
	if c.Thresholds.SSDFraction == 0 {
		c.Thresholds.SSDFraction = d.Thresholds.SSDFraction
	}
	if c.Probe.CPUSampleMS == 0 {
		c.Probe.CPUSampleMS = d.Probe.CPUSampleMS
	}
	if c.Watch.Cron == "" {
		c.Watch.Cron = d.Watch.Cron
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = d.Report.OutputDir
	}
	if c.Report.PDFTimeoutSec == 0 {
		c.Report.PDFTimeoutSec = d.Report.PDFTimeoutSec
	}
}

// ApplyEnv applies the BOTTLENECK_* environment overrides
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBenchmarksDir); v != "" {
		c.BenchmarksDir = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvScoreMode); v != "" {
		c.ScoreMode = v
	}
}

// Validate checks the settings
func (c *Config) Validate() error {
	if c.BenchmarksDir == "" {
		return errors.New("benchmarks_dir is required")
	}
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	if _, err := bottleneck.ParseScoreMode(c.ScoreMode); err != nil {
		return fmt.Errorf("score_mode: %w", err)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	if c.Probe.CPUSampleMS < 0 {
		return errors.New("probe.cpu_sample_ms must be >= 0")
	}
	if c.Report.PDFTimeoutSec <= 0 {
		return errors.New("report.pdf_timeout_sec must be > 0")
	}
	return nil
}

// Mode returns the parsed score mode. Validate has already rejected bad
// values, so an unknown mode falls back to live.
func (c *Config) Mode() bottleneck.ScoreMode {
	m, err := bottleneck.ParseScoreMode(c.ScoreMode)
	if err != nil {
		return bottleneck.ModeLive
	}
	return m
}

// SampleInterval returns the CPU sampling window
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.Probe.CPUSampleMS) * time.Millisecond
}

// PDFTimeout returns the headless Chrome deadline
func (c *Config) PDFTimeout() time.Duration {
	return time.Duration(c.Report.PDFTimeoutSec) * time.Second
}
