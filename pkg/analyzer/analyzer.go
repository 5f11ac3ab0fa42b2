// Package analyzer ties the probe, the benchmark catalog, the bottleneck
// ladder and the recommendation engine together. The CLI, the GUI and the
// scheduler all go through it.
package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/bottleneck"
	"github.com/mscrnt/project_bottleneck/pkg/catalog"
	"github.com/mscrnt/project_bottleneck/pkg/config"
	"github.com/mscrnt/project_bottleneck/pkg/probe"
	"github.com/mscrnt/project_bottleneck/pkg/recommend"
)

// All selects every component in Recommend
const All = "all"

// Analyzer runs analyses against one loaded catalog
type Analyzer struct {
	catalog    *catalog.Catalog
	prober     *probe.Prober
	mode       bottleneck.ScoreMode
	thresholds bottleneck.Thresholds
	logger     *log.Logger

	// used to build the prober when none is given
	source    probe.Source
	probeOpts []probe.Option
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithProber replaces the local machine prober
func WithProber(p *probe.Prober) Option {
	return func(a *Analyzer) { a.prober = p }
}

// WithSource builds the prober over src instead of the local machine
func WithSource(src probe.Source) Option {
	return func(a *Analyzer) { a.source = src }
}

// withProbeOptions configures the prober built by New
func withProbeOptions(opts ...probe.Option) Option {
	return func(a *Analyzer) { a.probeOpts = append(a.probeOpts, opts...) }
}

// WithMode sets the score mode
func WithMode(m bottleneck.ScoreMode) Option {
	return func(a *Analyzer) { a.mode = m }
}

// WithThresholds sets the decision ladder constants
func WithThresholds(t bottleneck.Thresholds) Option {
	return func(a *Analyzer) { a.thresholds = t }
}

// WithLogger sets the logger. It also reaches the prober unless one is
// given with WithProber.
func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// New creates an Analyzer over cat
func New(cat *catalog.Catalog, opts ...Option) *Analyzer {
	a := &Analyzer{
		catalog:    cat,
		mode:       bottleneck.ModeLive,
		thresholds: bottleneck.DefaultThresholds(),
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.prober == nil {
		src := a.source
		if src == nil {
			src = probe.SystemSource()
		}
		opts := append(append([]probe.Option(nil), a.probeOpts...), probe.WithLogger(a.logger))
		a.prober = probe.NewWithSource(src, opts...)
	}
	return a
}

// FromConfig loads the catalog from cfg.BenchmarksDir and builds an
// Analyzer with the configured mode, thresholds and probe settings. Later
// options override the config.
func FromConfig(cfg *config.Config, opts ...Option) *Analyzer {
	probeOpts := []probe.Option{probe.WithSampleInterval(cfg.SampleInterval())}
	if cfg.Probe.DiskPath != "" {
		probeOpts = append(probeOpts, probe.WithRoot(cfg.Probe.DiskPath))
	}

	base := []Option{
		WithMode(cfg.Mode()),
		WithThresholds(cfg.Thresholds),
		withProbeOptions(probeOpts...),
	}
	return New(catalog.Load(cfg.BenchmarksDir), append(base, opts...)...)
}

// Catalog returns the loaded benchmark tables
func (a *Analyzer) Catalog() *catalog.Catalog {
	return a.catalog
}

// Mode returns the active score mode
func (a *Analyzer) Mode() bottleneck.ScoreMode {
	return a.mode
}

// Result is one completed analysis
type Result struct {
	Snapshot probe.Snapshot       `json:"snapshot"`
	Mode     bottleneck.ScoreMode `json:"mode"`
	Verdict  bottleneck.Verdict   `json:"verdict"`
	Matches  []bottleneck.Match   `json:"matches"`
	Duration time.Duration        `json:"duration_ns"`
}

// Analyze probes the machine and evaluates it
func (a *Analyzer) Analyze(ctx context.Context) Result {
	start := time.Now()
	res := a.Evaluate(a.prober.Probe(ctx))
	res.Duration = time.Since(start)
	a.logger.Printf("[ANALYZE] %s in %s (cpu/gpu ratio %s)", res.Verdict.Component, res.Duration.Round(time.Millisecond), res.Verdict.RatioText())
	return res
}

// Evaluate scores an existing snapshot without probing
func (a *Analyzer) Evaluate(snap probe.Snapshot) Result {
	verdict, matches := bottleneck.Analyze(a.catalog, snap, a.mode, a.thresholds)
	for _, m := range matches {
		if !m.Found && m.Query != "" {
			a.logger.Printf("[ANALYZE] %s %q not found in %s table", m.Component, m.Query, m.Category)
		}
	}
	return Result{
		Snapshot: snap,
		Mode:     a.mode,
		Verdict:  verdict,
		Matches:  matches,
	}
}

// Recommend proposes upgrades for target, which is a component name such
// as "gpu" or All
func (a *Analyzer) Recommend(snap probe.Snapshot, target string) ([]recommend.Recommendation, error) {
	if strings.EqualFold(strings.TrimSpace(target), All) {
		return recommend.All(a.catalog, snap, a.mode), nil
	}
	c, ok := bottleneck.ParseComponent(target)
	if !ok {
		return nil, fmt.Errorf("unknown component %q (want cpu, gpu, ram, ssd or all)", target)
	}
	return []recommend.Recommendation{recommend.For(a.catalog, snap, c, a.mode)}, nil
}

// Text renders the snapshot summary followed by the verdict
func (r Result) Text() string {
	var b strings.Builder
	b.WriteString(r.Snapshot.Summary())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Bottleneck: %s\n", r.Verdict.Label)
	b.WriteString(r.Verdict.Advice())
	return b.String()
}

// ScoreTable renders the matched catalog rows, one line per component
func (r Result) ScoreTable() string {
	var b strings.Builder
	for _, m := range r.Matches {
		if m.Found {
			fmt.Fprintf(&b, "%-4s %-40s score %7.1f  rank %d\n", m.Component, m.Record.Name(), m.Record.Benchmark, m.Record.Rank)
			continue
		}
		q := m.Query
		if q == "" {
			q = "not detected"
		}
		fmt.Fprintf(&b, "%-4s %-40s not in %s table\n", m.Component, q, m.Category)
	}
	return strings.TrimRight(b.String(), "\n")
}
