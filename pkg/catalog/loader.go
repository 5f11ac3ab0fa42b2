package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column headers of the benchmark CSV files
const (
	colType       = "Type"
	colPartNumber = "Part Number"
	colBrand      = "Brand"
	colModel      = "Model"
	colRank       = "Rank"
	colBenchmark  = "Benchmark"
	colSamples    = "Samples"
	colURL        = "URL"
)

// Load reads all six benchmark tables from dir. Each table is loaded
// independently; a missing or unreadable file leaves that category empty.
func Load(dir string) *Catalog {
	c := &Catalog{
		tables: make(map[Category][]Record, len(Categories)),
		dir:    dir,
	}

	for _, cat := range Categories {
		path := filepath.Join(dir, cat.FileName())
		recs, err := LoadCSV(path, cat)
		if err != nil {
			log.Printf("[CATALOG] error while reading %s: %v", path, err)
		}
		c.tables[cat] = recs
	}

	return c
}

// LoadCSV reads one benchmark table. A file that does not exist yields an
// empty slice and a nil error. On a read error the rows parsed so far are
// returned together with the error.
func LoadCSV(path string, cat Category) ([]Record, error) {
	f, err := os.Open(path) // #nosec G304 -- benchmark directory is user configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[CATALOG] benchmark file %s not found", path)
			return []Record{}, nil
		}
		return []Record{}, fmt.Errorf("failed to open benchmark file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f, cat)
}

// ReadCSV parses benchmark rows from r. Columns are located by header name
// so their order does not matter. Numeric fields that are empty or invalid
// are stored as zero.
func ReadCSV(r io.Reader, cat Category) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	recs := []Record{}

	header, err := reader.Read()
	if err == io.EOF {
		return recs, nil
	}
	if err != nil {
		return recs, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		// Strip a UTF-8 BOM left by spreadsheet exports
		h = strings.TrimPrefix(h, "\ufeff")
		index[strings.TrimSpace(h)] = i
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return recs, fmt.Errorf("failed to read row %d: %w", len(recs)+1, err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		recs = append(recs, Record{
			Category:   cat,
			Type:       field(colType),
			PartNumber: field(colPartNumber),
			Brand:      field(colBrand),
			Model:      field(colModel),
			Rank:       parseInt(field(colRank)),
			Benchmark:  parseFloat(field(colBenchmark)),
			Samples:    parseInt(field(colSamples)),
			URL:        field(colURL),
		})
	}

	return recs, nil
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Some exports write integer columns as "12.0"
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
