package db

import (
	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/recommend"
)

// NewAnalysis converts an analyzer result into a storable record
func NewAnalysis(res analyzer.Result) *Analysis {
	snap := res.Snapshot
	v := res.Verdict

	details := JSONData{
		"os":             snap.OS,
		"platform":       snap.Platform,
		"physical_cores": snap.PhysicalCores,
		"logical_cores":  snap.LogicalCores,
		"ram_total_gb":   snap.RAMTotalGB,
		"cpu_gpu_ratio":  v.RatioText(),
	}
	if snap.CPUMaxMHz > 0 {
		details["cpu_max_mhz"] = snap.CPUMaxMHz
	}
	matched := map[string]interface{}{}
	for _, m := range res.Matches {
		if m.Found {
			matched[string(m.Component)] = m.Record.Name()
		}
	}
	details["matched"] = matched

	return &Analysis{
		TakenAt:    snap.TakenAt,
		Hostname:   snap.Hostname,
		CPUModel:   snap.CPUModel,
		CPUUsage:   float64(snap.CPUUsage),
		RAMModel:   snap.RAMModel,
		RAMUsage:   float64(snap.RAMUsage),
		GPUModel:   snap.GPUModel,
		DiskModel:  snap.DiskModel,
		DiskKind:   string(snap.DiskKind),
		DiskUsage:  float64(snap.DiskUsage),
		ScoreMode:  string(res.Mode),
		CPUScore:   v.Scores.CPU,
		GPUScore:   v.Scores.GPU,
		RAMScore:   v.Scores.RAM,
		SSDScore:   v.Scores.SSD,
		Bottleneck: string(v.Component),
		Label:      v.Label,
		Details:    details,
	}
}

// NewRecommendations converts engine output into storable records
func NewRecommendations(recs []recommend.Recommendation) []*Recommendation {
	out := make([]*Recommendation, 0, len(recs))
	for _, r := range recs {
		rec := &Recommendation{
			Component:    string(r.Component),
			CurrentModel: r.Current.Query,
			CurrentScore: r.Current.Score(),
			TopTier:      r.TopTier,
		}
		if r.Current.Found {
			rec.CurrentModel = r.Current.Record.Name()
		}
		if !r.TopTier {
			rec.CandidateModel = r.Candidate.Name()
			rec.CandidateScore = r.Candidate.Benchmark
		}
		if r.HasImprovement {
			v := r.Improvement
			rec.Improvement = &v
		}
		out = append(out, rec)
	}
	return out
}
