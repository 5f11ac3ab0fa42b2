package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/db"
)

func TestGenerateHTML(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer func() { _ = database.Close() }()

	gain := 25.0
	a := &db.Analysis{
		TakenAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Hostname:   "bench-01",
		CPUModel:   "Intel Core i5-9400",
		CPUUsage:   10,
		RAMModel:   "Unknown RAM",
		RAMUsage:   -1,
		GPUModel:   "NVIDIA GeForce RTX 4090",
		DiskModel:  "Samsung <SSD> 860",
		DiskUsage:  50,
		ScoreMode:  "live",
		CPUScore:   60,
		GPUScore:   300,
		Bottleneck: "CPU",
		Label:      "CPU (significantly weaker than GPU)",
	}
	recs := []*db.Recommendation{
		{Component: "CPU", CurrentModel: "Intel Core i5-9400", CandidateModel: "Intel Core i9-13900K", Improvement: &gain},
		{Component: "GPU", CurrentModel: "Nvidia RTX 4090", TopTier: true},
		{Component: "RAM", CandidateModel: "G.Skill Trident Z5"},
	}
	if err := database.SaveAnalysis(a, recs); err != nil {
		t.Fatalf("SaveAnalysis error: %v", err)
	}

	html, err := NewGenerator(database).GenerateHTML(a.ID)
	if err != nil {
		t.Fatalf("GenerateHTML error: %v", err)
	}

	for _, want := range []string{
		"Bottleneck Report - Analysis #1",
		"2025-03-01 10:00:00",
		`class="verdict bottleneck"`,
		`class="limiting"`,
		"Intel Core i9-13900K",
		"&#43;25.0%", // html/template escapes "+"
		"Already top-tier",
		"n/a",
		"not found",
		"N/A",
		"Samsung &lt;SSD&gt; 860",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestGenerateHTMLMissingAnalysis(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer func() { _ = database.Close() }()

	if _, err := NewGenerator(database).GenerateHTML(7); err == nil {
		t.Error("GenerateHTML should fail for a missing analysis")
	}
}

func TestRenderBalancedWithoutRecommendations(t *testing.T) {
	data := NewReportData(&db.Analysis{ID: 3, Bottleneck: "Balanced", Label: "Balanced system (no significant bottleneck)"}, nil)
	html, err := RenderHTML(data)
	if err != nil {
		t.Fatalf("RenderHTML error: %v", err)
	}
	if !strings.Contains(html, `class="verdict balanced"`) {
		t.Error("balanced verdict class missing")
	}
	if strings.Contains(html, "Upgrade Recommendations") || strings.Contains(html, `class="limiting"`) {
		t.Error("balanced report should have no recommendations and no highlighted row")
	}
}

func TestDefaultPDFOptions(t *testing.T) {
	opts := DefaultPDFOptions()
	if opts.Timeout != 30*time.Second || !opts.PrintBackground {
		t.Errorf("DefaultPDFOptions() = %+v", opts)
	}
}
