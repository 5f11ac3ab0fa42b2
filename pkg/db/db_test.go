package db

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/bottleneck"
	"github.com/mscrnt/project_bottleneck/pkg/catalog"
	"github.com/mscrnt/project_bottleneck/pkg/probe"
	"github.com/mscrnt/project_bottleneck/pkg/recommend"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sub", "history.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleAnalysis(takenAt time.Time, verdict string) *Analysis {
	return &Analysis{
		TakenAt:    takenAt,
		Hostname:   "bench-01",
		CPUModel:   "Intel Core i5-9400",
		CPUUsage:   23.5,
		RAMModel:   "Kingston DDR4 2666MHz",
		RAMUsage:   -1,
		GPUModel:   "NVIDIA GeForce RTX 3070",
		DiskModel:  "Samsung SSD 860 EVO",
		DiskKind:   "ssd",
		DiskUsage:  61,
		ScoreMode:  "live",
		CPUScore:   70,
		GPUScore:   140,
		RAMScore:   80,
		SSDScore:   60,
		Bottleneck: verdict,
		Label:      verdict + " label",
		Details:    JSONData{"logical_cores": 6},
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	db := openTestDB(t)
	taken := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	gain := 50.0
	a := sampleAnalysis(taken, "Balanced")
	recs := []*Recommendation{
		{Component: "CPU", CurrentModel: "Intel Core i5-9400", CurrentScore: 80, CandidateModel: "Intel Core i9-9900K", CandidateScore: 120, Improvement: &gain},
		{Component: "SSD", CurrentModel: "Mystery Disk", CandidateModel: "Samsung 990 PRO"},
		{Component: "GPU", CurrentModel: "RTX 4090", TopTier: true},
	}
	if err := db.SaveAnalysis(a, recs); err != nil {
		t.Fatalf("SaveAnalysis error: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("SaveAnalysis did not set the ID")
	}

	got, err := db.GetAnalysis(a.ID)
	if err != nil {
		t.Fatalf("GetAnalysis error: %v", err)
	}
	if !got.TakenAt.Equal(taken) {
		t.Errorf("TakenAt = %v, want %v", got.TakenAt, taken)
	}
	if got.CPUModel != a.CPUModel || got.GPUScore != 140 || got.RAMUsage != -1 {
		t.Errorf("GetAnalysis = %+v", got)
	}
	if got.Details["logical_cores"] != float64(6) {
		t.Errorf("Details = %v", got.Details)
	}

	stored, err := db.GetRecommendations(a.ID)
	if err != nil {
		t.Fatalf("GetRecommendations error: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("GetRecommendations returned %d, want 3", len(stored))
	}
	if stored[0].Improvement == nil || *stored[0].Improvement != 50 {
		t.Errorf("CPU improvement = %v, want 50", stored[0].Improvement)
	}
	if stored[1].Improvement != nil {
		t.Errorf("SSD improvement = %v, want nil", *stored[1].Improvement)
	}
	if !stored[2].TopTier {
		t.Error("GPU should be top-tier")
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.GetAnalysis(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAnalysis error = %v, want ErrNotFound", err)
	}
	if _, err := db.LatestAnalysis(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestAnalysis error = %v, want ErrNotFound", err)
	}
}

func TestListAnalyses(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	verdicts := []string{"CPU", "GPU", "CPU", "Balanced"}
	for i, v := range verdicts {
		if err := db.SaveAnalysis(sampleAnalysis(base.Add(time.Duration(i)*time.Hour), v), nil); err != nil {
			t.Fatalf("SaveAnalysis error: %v", err)
		}
	}

	all, err := db.ListAnalyses(AnalysisFilter{})
	if err != nil {
		t.Fatalf("ListAnalyses error: %v", err)
	}
	if len(all) != 4 || all[0].Bottleneck != "Balanced" {
		t.Fatalf("ListAnalyses should return newest first, got %d rows", len(all))
	}

	cpu, err := db.ListAnalyses(AnalysisFilter{Bottleneck: "cpu"})
	if err != nil {
		t.Fatalf("ListAnalyses error: %v", err)
	}
	if len(cpu) != 2 {
		t.Errorf("CPU filter returned %d, want 2", len(cpu))
	}

	since := base.Add(90 * time.Minute)
	recent, err := db.ListAnalyses(AnalysisFilter{Since: &since, Limit: 1})
	if err != nil {
		t.Fatalf("ListAnalyses error: %v", err)
	}
	if len(recent) != 1 || recent[0].Bottleneck != "Balanced" {
		t.Errorf("Since+Limit filter = %+v", recent)
	}

	latest, err := db.LatestAnalysis()
	if err != nil {
		t.Fatalf("LatestAnalysis error: %v", err)
	}
	if latest.ID != all[0].ID {
		t.Errorf("LatestAnalysis = %d, want %d", latest.ID, all[0].ID)
	}
}

func TestDeleteAnalysisCascades(t *testing.T) {
	db := openTestDB(t)
	a := sampleAnalysis(time.Now().UTC(), "GPU")
	if err := db.SaveAnalysis(a, []*Recommendation{{Component: "GPU", TopTier: true}}); err != nil {
		t.Fatalf("SaveAnalysis error: %v", err)
	}
	if err := db.DeleteAnalysis(a.ID); err != nil {
		t.Fatalf("DeleteAnalysis error: %v", err)
	}
	recs, err := db.GetRecommendations(a.ID)
	if err != nil {
		t.Fatalf("GetRecommendations error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("recommendations left after delete: %d", len(recs))
	}
	if err := db.DeleteAnalysis(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestExportCSV(t *testing.T) {
	db := openTestDB(t)
	a := sampleAnalysis(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), "CPU")
	if err := db.SaveAnalysis(a, nil); err != nil {
		t.Fatalf("SaveAnalysis error: %v", err)
	}

	var buf bytes.Buffer
	if err := db.ExportCSV(&buf, a.ID); err != nil {
		t.Fatalf("ExportCSV error: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("CSV has %d rows, want 2", len(rows))
	}
	row := strings.Join(rows[1], "|")
	for _, want := range []string{"2025-03-01 10:00:00", "23.5%", "N/A", "CPU label"} {
		if !strings.Contains(row, want) {
			t.Errorf("CSV row missing %q: %s", want, row)
		}
	}

	buf.Reset()
	if err := db.ExportCSV(&buf, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("ExportCSV(999) error = %v, want ErrNotFound", err)
	}
}

func TestExportAll(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 3; i++ {
		a := sampleAnalysis(time.Date(2025, 3, 1, i, 0, 0, 0, time.UTC), "GPU")
		if err := db.SaveAnalysis(a, []*Recommendation{{Component: "GPU", TopTier: true}}); err != nil {
			t.Fatalf("SaveAnalysis error: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := db.ExportAllCSV(&buf); err != nil {
		t.Fatalf("ExportAllCSV error: %v", err)
	}
	if n := strings.Count(strings.TrimSpace(buf.String()), "\n"); n != 3 {
		t.Errorf("ExportAllCSV wrote %d data rows, want 3", n)
	}

	buf.Reset()
	if err := db.ExportAllJSON(&buf); err != nil {
		t.Fatalf("ExportAllJSON error: %v", err)
	}
	var docs []Export
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("ExportAllJSON output does not parse: %v", err)
	}
	if len(docs) != 3 || len(docs[0].Recommendations) != 1 {
		t.Errorf("ExportAllJSON = %+v", docs)
	}
}

func TestExportJSONEmptyRecommendations(t *testing.T) {
	db := openTestDB(t)
	a := sampleAnalysis(time.Now().UTC(), "Balanced")
	if err := db.SaveAnalysis(a, nil); err != nil {
		t.Fatalf("SaveAnalysis error: %v", err)
	}
	var buf bytes.Buffer
	if err := db.ExportJSON(&buf, a.ID); err != nil {
		t.Fatalf("ExportJSON error: %v", err)
	}
	if !strings.Contains(buf.String(), `"recommendations": []`) {
		t.Errorf("ExportJSON = %s", buf.String())
	}
}

func TestNewAnalysisAndRecommendations(t *testing.T) {
	cat := catalog.New(map[catalog.Category][]catalog.Record{
		catalog.CategoryCPU: {
			{Brand: "Intel", Model: "Core i5-9400", Benchmark: 80, Rank: 10},
			{Brand: "Intel", Model: "Core i9-9900K", Benchmark: 120, Rank: 5},
		},
		catalog.CategoryGPU: {{Brand: "Nvidia", Model: "RTX 3070", Benchmark: 140, Rank: 1}},
	})
	snap := probe.Snapshot{
		TakenAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		CPUModel:  "Intel Core i5-9400",
		CPUUsage:  probe.NewPercent(12),
		RAMModel:  probe.UnknownRAM,
		RAMUsage:  probe.Unavailable,
		GPUModel:  "NVIDIA GeForce RTX 3070",
		DiskModel: probe.UnknownDisk,
		DiskUsage: probe.Unavailable,
	}
	verdict, matches := bottleneck.Analyze(cat, snap, bottleneck.ModeLive, bottleneck.DefaultThresholds())
	res := analyzer.Result{Snapshot: snap, Mode: bottleneck.ModeLive, Verdict: verdict, Matches: matches}

	a := NewAnalysis(res)
	if a.Bottleneck != string(verdict.Component) || a.CPUScore != 80 || a.GPUScore != 140 {
		t.Errorf("NewAnalysis = %+v", a)
	}
	if a.RAMUsage != -1 || a.ScoreMode != "live" {
		t.Errorf("NewAnalysis usage/mode = %v/%s", a.RAMUsage, a.ScoreMode)
	}

	recs := NewRecommendations(recommend.All(cat, snap, bottleneck.ModeLive))
	if len(recs) != 4 {
		t.Fatalf("NewRecommendations returned %d, want 4", len(recs))
	}
	if recs[0].CandidateModel != "Intel Core i9-9900K" || recs[0].Improvement == nil || *recs[0].Improvement != 50 {
		t.Errorf("CPU recommendation = %+v", recs[0])
	}
	if !recs[1].TopTier || recs[1].CandidateModel != "" {
		t.Errorf("GPU recommendation = %+v", recs[1])
	}

	db := openTestDB(t)
	if err := db.SaveAnalysis(a, recs); err != nil {
		t.Fatalf("SaveAnalysis error: %v", err)
	}
}
