package db

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

var csvHeaders = []string{
	"Analysis ID", "Taken At", "Hostname", "Score Mode",
	"CPU", "CPU Usage", "CPU Score",
	"GPU", "GPU Score",
	"RAM", "RAM Usage", "RAM Score",
	"Disk", "Disk Usage", "SSD Score",
	"Bottleneck", "Label",
}

func csvRow(a *Analysis) []string {
	return []string{
		strconv.FormatInt(a.ID, 10),
		a.TakenAt.Format("2006-01-02 15:04:05"),
		a.Hostname,
		a.ScoreMode,
		a.CPUModel, UsageText(a.CPUUsage), fmt.Sprintf("%.1f", a.CPUScore),
		a.GPUModel, fmt.Sprintf("%.1f", a.GPUScore),
		a.RAMModel, UsageText(a.RAMUsage), fmt.Sprintf("%.1f", a.RAMScore),
		a.DiskModel, UsageText(a.DiskUsage), fmt.Sprintf("%.1f", a.SSDScore),
		a.Bottleneck,
		a.Label,
	}
}

// ExportCSV exports one analysis to CSV format
func (db *DB) ExportCSV(w io.Writer, id int64) error {
	a, err := db.GetAnalysis(id)
	if err != nil {
		return err
	}
	return writeCSV(w, []*Analysis{a})
}

// ExportAllCSV exports every analysis to CSV format, newest first
func (db *DB) ExportAllCSV(w io.Writer) error {
	analyses, err := db.ListAnalyses(AnalysisFilter{})
	if err != nil {
		return err
	}
	return writeCSV(w, analyses)
}

func writeCSV(w io.Writer, analyses []*Analysis) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(csvHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, a := range analyses {
		if err := csvWriter.Write(csvRow(a)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// Export is the JSON document for one analysis
type Export struct {
	Analysis        *Analysis         `json:"analysis"`
	Recommendations []*Recommendation `json:"recommendations"`
}

func (db *DB) export(a *Analysis) (Export, error) {
	recs, err := db.GetRecommendations(a.ID)
	if err != nil {
		return Export{}, err
	}
	if recs == nil {
		recs = []*Recommendation{}
	}
	return Export{Analysis: a, Recommendations: recs}, nil
}

// ExportJSON exports one analysis with its recommendations to JSON format
func (db *DB) ExportJSON(w io.Writer, id int64) error {
	a, err := db.GetAnalysis(id)
	if err != nil {
		return err
	}
	doc, err := db.export(a)
	if err != nil {
		return err
	}
	return encodeJSON(w, doc)
}

// ExportAllJSON exports every analysis as a JSON array
func (db *DB) ExportAllJSON(w io.Writer) error {
	analyses, err := db.ListAnalyses(AnalysisFilter{})
	if err != nil {
		return err
	}
	docs := make([]Export, 0, len(analyses))
	for _, a := range analyses {
		doc, err := db.export(a)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	return encodeJSON(w, docs)
}

func encodeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
