package main

import (
	"strings"
	"testing"

	"github.com/mscrnt/project_bottleneck/pkg/config"
	"github.com/mscrnt/project_bottleneck/pkg/report"
)

func TestApplyPageSize(t *testing.T) {
	tests := []struct {
		size          string
		width, height float64
		wantErr       bool
	}{
		{"", 8.5, 11.0, false},
		{"letter", 8.5, 11.0, false},
		{"A4", 8.27, 11.69, false},
		{"a3", 11.69, 16.54, false},
		{"Legal", 8.5, 14.0, false},
		{"B5", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			opts := report.DefaultPDFOptions()
			err := applyPageSize(&opts, tt.size)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("applyPageSize(%q) succeeded, want error", tt.size)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyPageSize(%q) failed: %v", tt.size, err)
			}
			if opts.PaperWidth != tt.width || opts.PaperHeight != tt.height {
				t.Errorf("paper = %vx%v, want %vx%v", opts.PaperWidth, opts.PaperHeight, tt.width, tt.height)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"#7", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, "", "")
	if cfg.BenchmarksDir != "Benchmarks" || cfg.ScoreMode != "live" {
		t.Errorf("empty flags changed config: %+v", cfg)
	}

	applyFlags(cfg, "/data/bench", "baseline")
	if cfg.BenchmarksDir != "/data/bench" {
		t.Errorf("BenchmarksDir = %q", cfg.BenchmarksDir)
	}
	if cfg.ScoreMode != "baseline" {
		t.Errorf("ScoreMode = %q", cfg.ScoreMode)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvBenchmarksDir, "")
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvScoreMode, "")

	configPath = dir + "/config.yaml"
	benchmarksDir = dir
	scoreMode = "nonsense"
	defer func() { configPath, benchmarksDir, scoreMode = "", "", "" }()

	if _, err := loadConfig(); err == nil {
		t.Fatal("loadConfig accepted an invalid --mode")
	}

	scoreMode = "baseline"
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.BenchmarksDir != dir || cfg.Mode() != "baseline" {
		t.Errorf("flags not applied: dir=%q mode=%q", cfg.BenchmarksDir, cfg.Mode())
	}
}

func TestGUIEnv(t *testing.T) {
	base := []string{"PATH=/usr/bin"}

	env := guiEnv(base, "", "")
	if len(env) != 1 {
		t.Errorf("guiEnv without flags = %v", env)
	}

	env = guiEnv(base, "/data/bench", "baseline")
	joined := strings.Join(env, "\n")
	for _, want := range []string{
		config.EnvBenchmarksDir + "=/data/bench",
		config.EnvScoreMode + "=baseline",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("guiEnv missing %q in %v", want, env)
		}
	}
	if len(base) != 1 {
		t.Error("guiEnv modified its input")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("AMD Ryzen 9 7950X3D 16-Core", 10); got != "AMD Ryz..." {
		t.Errorf("truncate = %q", got)
	}
}
