package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cpuCSV = `Type,Part Number,Brand,Model,Rank,Benchmark,Samples,URL
CPU,BX80684I79700K,Intel,Core i7-9700K,45,102.5,301234,https://cpu.userbenchmark.com/Intel-Core-i7-9700K/Rating/4026
CPU,100-100000065BOX,AMD,Ryzen 7 3700X,60,96.1,412000,https://cpu.userbenchmark.com/AMD-Ryzen-7-3700X/Rating/4043
CPU,BX80677I77700K,Intel,Core i7-7700K,120,88.0,1002000,https://cpu.userbenchmark.com/Intel-Core-i7-7700K/Rating/3885
`

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeCSV(t, t.TempDir(), "CPU_UserBenchmarks.csv", cpuCSV)

	recs, err := LoadCSV(p, CategoryCPU)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("LoadCSV() returned %d records, want 3", len(recs))
	}

	got := recs[0]
	want := Record{
		Category:   CategoryCPU,
		Type:       "CPU",
		PartNumber: "BX80684I79700K",
		Brand:      "Intel",
		Model:      "Core i7-9700K",
		Rank:       45,
		Benchmark:  102.5,
		Samples:    301234,
		URL:        "https://cpu.userbenchmark.com/Intel-Core-i7-9700K/Rating/4026",
	}
	if got != want {
		t.Errorf("LoadCSV()[0] = %+v, want %+v", got, want)
	}
	if recs[2].Benchmark != 88.0 || recs[2].Rank != 120 {
		t.Errorf("LoadCSV()[2] numeric fields = (%d, %v), want (120, 88)", recs[2].Rank, recs[2].Benchmark)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	recs, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), CategoryGPU)
	if err != nil {
		t.Fatalf("LoadCSV() on missing file error = %v, want nil", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("LoadCSV() on missing file = %v, want empty slice", recs)
	}
}

func TestReadCSVCoercesMalformedFields(t *testing.T) {
	input := `Model,Benchmark,Rank,Samples,Brand
Mystery Part,,abc,
Half Row
Float Rank,55.5,12.0,7,Acme
Bad Score,NaN,3,1,Acme
`
	recs, err := ReadCSV(strings.NewReader(input), CategorySSD)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("ReadCSV() returned %d records, want 4", len(recs))
	}

	tests := []struct {
		idx       int
		model     string
		rank      int
		benchmark float64
		samples   int
	}{
		{0, "Mystery Part", 0, 0, 0},
		{1, "Half Row", 0, 0, 0},
		{2, "Float Rank", 12, 55.5, 7},
		{3, "Bad Score", 3, 0, 1},
	}
	for _, tt := range tests {
		r := recs[tt.idx]
		if r.Model != tt.model || r.Rank != tt.rank || r.Benchmark != tt.benchmark || r.Samples != tt.samples {
			t.Errorf("record %d = %+v, want model=%q rank=%d benchmark=%v samples=%d",
				tt.idx, r, tt.model, tt.rank, tt.benchmark, tt.samples)
		}
		if r.Category != CategorySSD {
			t.Errorf("record %d category = %s, want SSD", tt.idx, r.Category)
		}
	}
}

func TestReadCSVEmpty(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(""), CategoryUSB)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("ReadCSV() = %v, want empty", recs)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, CategoryCPU.FileName(), cpuCSV)

	c := Load(dir)
	if c.Len(CategoryCPU) != 3 {
		t.Errorf("Len(CPU) = %d, want 3", c.Len(CategoryCPU))
	}
	for _, cat := range []Category{CategoryGPU, CategoryRAM, CategorySSD, CategoryHDD, CategoryUSB} {
		if c.Len(cat) != 0 {
			t.Errorf("Len(%s) = %d, want 0 for missing file", cat, c.Len(cat))
		}
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestLookupCaseInsensitiveSubstring(t *testing.T) {
	c := New(map[Category][]Record{
		CategoryCPU: {
			{Model: "Intel Core i7-9700K", Benchmark: 102.5},
			{Model: "Intel Core i7-9700", Benchmark: 95},
		},
	})

	tests := []struct {
		name    string
		query   string
		want    string
		wantHit bool
	}{
		{"lowercase detected name", "i7-9700k", "Intel Core i7-9700K", true},
		{"first row in file order wins", "i7-9700", "Intel Core i7-9700K", true},
		{"no match", "Ryzen", "", false},
		{"empty never matches", "  ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Lookup(CategoryCPU, tt.query)
			if ok != tt.wantHit {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.query, ok, tt.wantHit)
			}
			if got.Model != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.query, got.Model, tt.want)
			}
		})
	}
}

func TestSearchAndTop(t *testing.T) {
	c := New(map[Category][]Record{
		CategoryGPU: {
			{Model: "GeForce RTX 3060", Rank: 40, Benchmark: 90},
			{Model: "GeForce RTX 4090", Rank: 1, Benchmark: 300},
			{Model: "GeForce GTX 1060", Rank: 0, Benchmark: 50},
			{Model: "Radeon RX 6800", Rank: 20, Benchmark: 150},
		},
	})

	got := c.Search(CategoryGPU, "geforce", 0)
	if len(got) != 3 {
		t.Fatalf("Search() returned %d rows, want 3", len(got))
	}
	if got[0].Model != "GeForce RTX 4090" || got[2].Model != "GeForce GTX 1060" {
		t.Errorf("Search() order = %v, want ranked first and unranked last", got)
	}

	if n := len(c.Search(CategoryGPU, "geforce", 2)); n != 2 {
		t.Errorf("Search() with limit returned %d rows, want 2", n)
	}

	top := c.Top(CategoryGPU, 2)
	if len(top) != 2 || top[0].Rank != 1 || top[1].Rank != 20 {
		t.Errorf("Top(2) = %v", top)
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory(" gpu "); !ok || c != CategoryGPU {
		t.Errorf("ParseCategory(gpu) = %v, %v", c, ok)
	}
	if _, ok := ParseCategory("psu"); ok {
		t.Error("ParseCategory(psu) should fail")
	}
}

func TestRecordName(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{Record{Brand: "Intel", Model: "Core i7-9700K"}, "Intel Core i7-9700K"},
		{Record{Brand: "Intel", Model: "Intel Core i7-9700K"}, "Intel Core i7-9700K"},
		{Record{Model: "Generic SSD"}, "Generic SSD"},
	}
	for _, tt := range tests {
		if got := tt.rec.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}
