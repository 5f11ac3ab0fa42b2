// Package recommend proposes upgrade parts from the benchmark catalog.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mscrnt/project_bottleneck/pkg/bottleneck"
	"github.com/mscrnt/project_bottleneck/pkg/catalog"
	"github.com/mscrnt/project_bottleneck/pkg/probe"
)

// Recommendation is the proposed upgrade for one component
type Recommendation struct {
	Component bottleneck.Component `json:"component"`
	Current   bottleneck.Match     `json:"current"`
	Candidate catalog.Record       `json:"candidate"`
	// TopTier is set when no row beats the current part
	TopTier bool `json:"top_tier"`
	// Improvement is the candidate's score gain in percent; valid only
	// when HasImprovement is set
	Improvement    float64 `json:"improvement"`
	HasImprovement bool    `json:"has_improvement"`
	Notes          []Note  `json:"notes,omitempty"`
}

// Better reports whether rec is a strictly better part than current: a
// higher benchmark and a lower rank. A current rank of zero means the part
// is unranked and any ranked row beats it on rank. Unranked rows are never
// better.
func Better(rec, current catalog.Record) bool {
	if rec.Rank <= 0 {
		return false
	}
	if rec.Benchmark <= current.Benchmark {
		return false
	}
	return current.Rank <= 0 || rec.Rank < current.Rank
}

// Candidates returns every row better than current, best first: highest
// benchmark, ties broken by lowest rank.
func Candidates(records []catalog.Record, current catalog.Record) []catalog.Record {
	var out []catalog.Record
	for _, r := range records {
		if Better(r, current) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Benchmark != out[j].Benchmark {
			return out[i].Benchmark > out[j].Benchmark
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// Upgrade returns the best candidate for current. The boolean is false
// when the current part is top-tier.
func Upgrade(records []catalog.Record, current catalog.Record) (catalog.Record, bool) {
	c := Candidates(records, current)
	if len(c) == 0 {
		return catalog.Record{}, false
	}
	return c[0], true
}

// Improvement returns the candidate's gain over current in percent. It
// reports false when the current score is zero and no ratio exists.
func Improvement(current, candidate float64) (float64, bool) {
	if current <= 0 {
		return 0, false
	}
	return (candidate - current) * 100 / current, true
}

// Current looks up the part installed for c. The match scores zero when
// the part is not in the catalog.
func Current(cat *catalog.Catalog, snap probe.Snapshot, c bottleneck.Component, mode bottleneck.ScoreMode) bottleneck.Match {
	return bottleneck.Lookup(cat, snap, c, mode)
}

// For recommends an upgrade for one component of snap
func For(cat *catalog.Catalog, snap probe.Snapshot, c bottleneck.Component, mode bottleneck.ScoreMode) Recommendation {
	cur := Current(cat, snap, c, mode)
	rec := Recommendation{Component: c, Current: cur}

	best, ok := Upgrade(cat.Records(cur.Category), cur.Record)
	if !ok {
		rec.TopTier = true
		return rec
	}

	rec.Candidate = best
	rec.Improvement, rec.HasImprovement = Improvement(cur.Score(), best.Benchmark)
	rec.Notes = Compatibility(c, currentName(cur), best)
	return rec
}

// All recommends an upgrade for every component in ladder order
func All(cat *catalog.Catalog, snap probe.Snapshot, mode bottleneck.ScoreMode) []Recommendation {
	recs := make([]Recommendation, 0, len(bottleneck.Components))
	for _, c := range bottleneck.Components {
		recs = append(recs, For(cat, snap, c, mode))
	}
	return recs
}

// currentName is the best description available of the current part
func currentName(m bottleneck.Match) string {
	if m.Found {
		return m.Record.Name()
	}
	return m.Query
}

// Text renders the recommendation as shown to the user
func (r Recommendation) Text() string {
	cur := currentName(r.Current)
	if cur == "" {
		cur = "unknown part"
	}

	var b strings.Builder
	switch {
	case r.TopTier && r.Current.Found:
		fmt.Fprintf(&b, "%s: %s (score %.1f, rank %d) is top-tier. No better part in the benchmark table.",
			r.Component, cur, r.Current.Record.Benchmark, r.Current.Record.Rank)
	case r.TopTier:
		fmt.Fprintf(&b, "%s: %s not found and the %s table has no ranked parts.", r.Component, cur, r.Current.Category)
	case !r.Current.Found:
		fmt.Fprintf(&b, "%s: %s not found in the benchmark table. Best available: %s (score %.1f, rank %d).",
			r.Component, cur, r.Candidate.Name(), r.Candidate.Benchmark, r.Candidate.Rank)
	default:
		fmt.Fprintf(&b, "%s: upgrade %s (score %.1f, rank %d) to %s (score %.1f, rank %d)",
			r.Component, cur, r.Current.Record.Benchmark, r.Current.Record.Rank,
			r.Candidate.Name(), r.Candidate.Benchmark, r.Candidate.Rank)
		if r.HasImprovement {
			fmt.Fprintf(&b, ", about %.1f%% faster.", r.Improvement)
		} else {
			b.WriteString(", improvement n/a.")
		}
	}

	for _, n := range r.Notes {
		fmt.Fprintf(&b, "\n  note: %s", n.Message)
	}
	return b.String()
}

// Summary renders several recommendations, one block per component
func Summary(recs []Recommendation) string {
	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, r.Text())
	}
	return strings.Join(lines, "\n")
}
