package bottleneck

import (
	"fmt"
	"strings"

	"github.com/mscrnt/project_bottleneck/pkg/catalog"
	"github.com/mscrnt/project_bottleneck/pkg/probe"
)

// ScoreMode selects what each component is compared by
type ScoreMode string

const (
	// ModeLive looks every component up by the model detected on this machine
	ModeLive ScoreMode = "live"
	// ModeBaseline scores CPU, RAM and SSD by their class average row
	// ("Generic CPU" and so on) and only the GPU by its detected model
	ModeBaseline ScoreMode = "baseline"
)

// ParseScoreMode validates a mode name. The empty string selects ModeLive.
func ParseScoreMode(s string) (ScoreMode, error) {
	switch ScoreMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLive:
		return ModeLive, nil
	case ModeBaseline:
		return ModeBaseline, nil
	}
	return "", fmt.Errorf("unknown score mode %q (want live or baseline)", s)
}

// BaselineLabel returns the class-average row name used in ModeBaseline
func BaselineLabel(c Component) string {
	return "Generic " + string(c)
}

// Category returns the catalog table a component is scored from. Spinning
// system disks are scored from the HDD table.
func Category(c Component, snap probe.Snapshot) catalog.Category {
	switch c {
	case CPU:
		return catalog.CategoryCPU
	case GPU:
		return catalog.CategoryGPU
	case RAM:
		return catalog.CategoryRAM
	case SSD:
		if snap.DiskKind == probe.DiskKindHDD {
			return catalog.CategoryHDD
		}
		return catalog.CategorySSD
	}
	return ""
}

// Query returns the name a component is looked up by under mode
func Query(c Component, snap probe.Snapshot, mode ScoreMode) string {
	if mode == ModeBaseline && c != GPU {
		return BaselineLabel(c)
	}
	switch c {
	case CPU:
		return detected(snap.CPUModel, probe.UnknownCPU)
	case GPU:
		return detected(snap.GPUModel, probe.UnknownGPU)
	case RAM:
		return detected(snap.RAMModel, probe.UnknownRAM)
	case SSD:
		return detected(snap.DiskModel, probe.UnknownDisk)
	}
	return ""
}

// detected drops probe placeholders so they never match a catalog row
func detected(name, placeholder string) string {
	if name == placeholder {
		return ""
	}
	return name
}

// Match is the catalog row a component resolved to
type Match struct {
	Component Component        `json:"component"`
	Category  catalog.Category `json:"category"`
	Query     string           `json:"query"`
	Record    catalog.Record   `json:"record"`
	Found     bool             `json:"found"`
}

// Score returns the matched benchmark, zero when nothing matched
func (m Match) Score() float64 {
	if !m.Found {
		return 0
	}
	return m.Record.Benchmark
}

// Lookup resolves one component of snap against cat. Baseline labels are
// matched literally; detected names go through catalog.Find.
func Lookup(cat *catalog.Catalog, snap probe.Snapshot, c Component, mode ScoreMode) Match {
	m := Match{
		Component: c,
		Category:  Category(c, snap),
		Query:     Query(c, snap, mode),
	}
	if m.Query == "" {
		return m
	}

	if mode == ModeBaseline && c != GPU {
		m.Record, m.Found = cat.Lookup(m.Category, m.Query)
		return m
	}
	m.Record, _, m.Found = cat.Find(m.Category, m.Query)
	return m
}

// LookupAll resolves every component in ladder order
func LookupAll(cat *catalog.Catalog, snap probe.Snapshot, mode ScoreMode) []Match {
	matches := make([]Match, 0, len(Components))
	for _, c := range Components {
		matches = append(matches, Lookup(cat, snap, c, mode))
	}
	return matches
}

// ScoresOf collects the scores of matches
func ScoresOf(matches []Match) Scores {
	var s Scores
	for _, m := range matches {
		switch m.Component {
		case CPU:
			s.CPU = m.Score()
		case GPU:
			s.GPU = m.Score()
		case RAM:
			s.RAM = m.Score()
		case SSD:
			s.SSD = m.Score()
		}
	}
	return s
}

// Analyze looks up every component of snap and runs the decision ladder
func Analyze(cat *catalog.Catalog, snap probe.Snapshot, mode ScoreMode, t Thresholds) (Verdict, []Match) {
	matches := LookupAll(cat, snap, mode)
	return Evaluate(ScoresOf(matches), t), matches
}
