package schedule

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/catalog"
	"github.com/mscrnt/project_bottleneck/pkg/db"
	"github.com/mscrnt/project_bottleneck/pkg/probe"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestNextRuns(t *testing.T) {
	from := time.Date(2025, 3, 1, 10, 17, 0, 0, time.UTC)
	runs, err := NextRuns("0 * * * *", from, 3)
	if err != nil {
		t.Fatalf("NextRuns error: %v", err)
	}
	want := []time.Time{
		time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC),
	}
	if len(runs) != len(want) {
		t.Fatalf("NextRuns returned %d times, want %d", len(runs), len(want))
	}
	for i := range want {
		if !runs[i].Equal(want[i]) {
			t.Errorf("run %d = %v, want %v", i, runs[i], want[i])
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"*/15 * * * *", false},
		{"0 9 * * 1-5", false},
		{"@hourly", false},
		{"@every 30m", false},
		{"* * * * * *", true},
		{"61 * * * *", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Parse(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestRunnerAddRemove(t *testing.T) {
	r := NewRunner(quietLogger())
	noop := func(context.Context) error { return nil }

	if err := r.Add("bad", "not a schedule", noop); err == nil {
		t.Error("Add should reject an invalid expression")
	}
	if err := r.Add("hourly", "0 * * * *", noop); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := r.Add("hourly", "30 * * * *", noop); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if r.Len() != 1 || len(r.ListJobs()) != 1 {
		t.Errorf("replacing a job left %d jobs / %d entries", r.Len(), len(r.ListJobs()))
	}

	r.Remove("hourly")
	if r.Len() != 0 || len(r.ListJobs()) != 0 {
		t.Errorf("Remove left %d jobs", r.Len())
	}
}

func TestRunnerRunsJobAndLogsErrors(t *testing.T) {
	var mu sync.Mutex
	var buf strings.Builder
	logger := log.New(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	}), "", 0)

	r := NewRunner(logger)
	r.SetStopTimeout(5 * time.Second)

	ran := make(chan struct{}, 4)
	err := r.Add("failing", "@every 1s", func(context.Context) error {
		ran <- struct{}{}
		return errors.New("probe exploded")
	})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	r.Start()
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
	r.Stop()

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(buf.String(), `job "failing" failed: probe exploded`) {
		t.Errorf("job error not logged:\n%s", buf.String())
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

type fakeSource struct{}

func (fakeSource) Host(context.Context) (probe.HostDetails, error) {
	return probe.HostDetails{Hostname: "bench-01"}, nil
}
func (fakeSource) CPU(context.Context) (probe.CPUDetails, error) {
	return probe.CPUDetails{Model: "AMD Ryzen 5 3600 6-Core Processor"}, nil
}
func (fakeSource) CPUUsage(context.Context, time.Duration) (float64, error) { return 5, nil }
func (fakeSource) MemoryModules(context.Context) ([]probe.MemoryModule, error) {
	return nil, errors.New("no SMBIOS")
}
func (fakeSource) MemoryUsage(context.Context) (probe.MemoryUsage, error) {
	return probe.MemoryUsage{TotalBytes: 8 << 30, UsedPercent: 50}, nil
}
func (fakeSource) GPUName(context.Context) (string, error) { return "NVIDIA GeForce GTX 1060 6GB", nil }
func (fakeSource) Disk(context.Context) (probe.DiskInfo, error) {
	return probe.DiskInfo{}, errors.New("no disks")
}
func (fakeSource) DiskUsage(context.Context, string) (float64, error) { return 10, nil }

type memorySaver struct {
	analyses []*db.Analysis
	recs     [][]*db.Recommendation
}

func (m *memorySaver) SaveAnalysis(a *db.Analysis, recs []*db.Recommendation) error {
	a.ID = int64(len(m.analyses) + 1)
	m.analyses = append(m.analyses, a)
	m.recs = append(m.recs, recs)
	return nil
}

func TestAnalysisJob(t *testing.T) {
	cat := catalog.New(map[catalog.Category][]catalog.Record{
		catalog.CategoryCPU: {
			{Brand: "AMD", Model: "Ryzen 5 3600", Benchmark: 80, Rank: 60},
			{Brand: "AMD", Model: "Ryzen 7 5800X3D", Benchmark: 110, Rank: 20},
		},
		catalog.CategoryGPU: {{Brand: "Nvidia", Model: "GTX 1060-6GB", Benchmark: 60, Rank: 90}},
	})
	prober := probe.NewWithSource(fakeSource{}, probe.WithLogger(quietLogger()), probe.WithSampleInterval(0))
	a := analyzer.New(cat, analyzer.WithProber(prober), analyzer.WithLogger(quietLogger()))

	saver := &memorySaver{}
	job := AnalysisJob(a, saver, quietLogger())
	if err := job(context.Background()); err != nil {
		t.Fatalf("job error: %v", err)
	}

	if len(saver.analyses) != 1 {
		t.Fatalf("saved %d analyses, want 1", len(saver.analyses))
	}
	got := saver.analyses[0]
	if got.CPUScore != 80 || got.Hostname != "bench-01" {
		t.Errorf("saved analysis = %+v", got)
	}
	if len(saver.recs[0]) != 4 {
		t.Fatalf("saved %d recommendations, want 4", len(saver.recs[0]))
	}
	if saver.recs[0][0].CandidateModel != "AMD Ryzen 7 5800X3D" {
		t.Errorf("CPU candidate = %q", saver.recs[0][0].CandidateModel)
	}
}
