// Package catalog loads the static hardware benchmark tables and answers
// model lookups against them.
package catalog

import (
	"sort"
	"strings"
)

// Category identifies one benchmark table
type Category string

const (
	CategoryCPU Category = "CPU"
	CategoryGPU Category = "GPU"
	CategoryRAM Category = "RAM"
	CategorySSD Category = "SSD"
	CategoryHDD Category = "HDD"
	CategoryUSB Category = "USB"
)

// Categories lists every table in load order
var Categories = []Category{
	CategoryCPU,
	CategoryGPU,
	CategoryRAM,
	CategorySSD,
	CategoryHDD,
	CategoryUSB,
}

// ParseCategory converts user input such as "gpu" to a Category
func ParseCategory(s string) (Category, bool) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c) == want {
			return c, true
		}
	}
	return "", false
}

// FileName returns the CSV file name holding the category's benchmarks
func (c Category) FileName() string {
	return string(c) + "_UserBenchmarks.csv"
}

// Record is a single benchmark table row. Rank is ordinal with 1 as the
// best part; zero means the row carried no usable rank.
type Record struct {
	Category   Category `json:"category"`
	Type       string   `json:"type"`
	PartNumber string   `json:"part_number"`
	Brand      string   `json:"brand"`
	Model      string   `json:"model"`
	Rank       int      `json:"rank"`
	Benchmark  float64  `json:"benchmark"`
	Samples    int      `json:"samples"`
	URL        string   `json:"url"`
}

// Name returns the brand and model joined for display
func (r Record) Name() string {
	if r.Brand == "" {
		return r.Model
	}
	if strings.HasPrefix(strings.ToLower(r.Model), strings.ToLower(r.Brand)) {
		return r.Model
	}
	return r.Brand + " " + r.Model
}

// Matches reports whether name is contained in the record's model,
// ignoring case. An empty name never matches.
func (r Record) Matches(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(r.Model), name)
}

// Catalog holds the loaded benchmark tables. It is never modified after
// construction and is safe for concurrent readers.
type Catalog struct {
	tables map[Category][]Record
	dir    string
}

// New builds a catalog from already parsed records
func New(tables map[Category][]Record) *Catalog {
	c := &Catalog{tables: make(map[Category][]Record, len(tables))}
	for cat, recs := range tables {
		cp := make([]Record, len(recs))
		copy(cp, recs)
		c.tables[cat] = cp
	}
	return c
}

// Dir returns the directory the catalog was loaded from, if any
func (c *Catalog) Dir() string {
	return c.dir
}

// Records returns a copy of the rows for a category
func (c *Catalog) Records(cat Category) []Record {
	recs := c.tables[cat]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

// Len returns the number of rows loaded for a category
func (c *Catalog) Len(cat Category) int {
	return len(c.tables[cat])
}

// Lookup returns the first row, in file order, whose model contains name
func (c *Catalog) Lookup(cat Category, name string) (Record, bool) {
	for _, r := range c.tables[cat] {
		if r.Matches(name) {
			return r, true
		}
	}
	return Record{}, false
}

// Search returns every row matching query, best ranked first. A limit of
// zero or less returns all matches.
func (c *Catalog) Search(cat Category, query string, limit int) []Record {
	var out []Record
	for _, r := range c.tables[cat] {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	SortByRank(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Top returns the n best ranked rows of a category
func (c *Catalog) Top(cat Category, n int) []Record {
	recs := c.Records(cat)
	SortByRank(recs)
	if n > 0 && len(recs) > n {
		recs = recs[:n]
	}
	return recs
}

// SortByRank orders records by ascending rank with unranked rows last,
// then by descending benchmark
func SortByRank(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := recs[i].Rank, recs[j].Rank
		if (ri == 0) != (rj == 0) {
			return rj == 0
		}
		if ri != rj {
			return ri < rj
		}
		return recs[i].Benchmark > recs[j].Benchmark
	})
}
