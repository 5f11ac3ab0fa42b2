package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Analysis is one stored bottleneck analysis
type Analysis struct {
	ID        int64     `json:"id"`
	TakenAt   time.Time `json:"taken_at"`
	Hostname  string    `json:"hostname"`
	CPUModel  string    `json:"cpu_model"`
	CPUUsage  float64   `json:"cpu_usage"`
	RAMModel  string    `json:"ram_model"`
	RAMUsage  float64   `json:"ram_usage"`
	GPUModel  string    `json:"gpu_model"`
	DiskModel string    `json:"disk_model"`
	DiskKind  string    `json:"disk_kind"`
	DiskUsage float64   `json:"disk_usage"`
	ScoreMode string    `json:"score_mode"`
	CPUScore  float64   `json:"cpu_score"`
	GPUScore  float64   `json:"gpu_score"`
	RAMScore  float64   `json:"ram_score"`
	SSDScore  float64   `json:"ssd_score"`
	// Bottleneck is the verdict component: CPU, GPU, RAM, SSD, Balanced
	// or Unknown
	Bottleneck string    `json:"bottleneck"`
	Label      string    `json:"label"`
	Details    JSONData  `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Recommendation is an upgrade proposal stored with an analysis
type Recommendation struct {
	ID             int64   `json:"id"`
	AnalysisID     int64   `json:"analysis_id"`
	Component      string  `json:"component"`
	CurrentModel   string  `json:"current_model"`
	CurrentScore   float64 `json:"current_score"`
	CandidateModel string  `json:"candidate_model"`
	CandidateScore float64 `json:"candidate_score"`
	// Improvement is nil when the current part had no score
	Improvement *float64  `json:"improvement"`
	TopTier     bool      `json:"top_tier"`
	CreatedAt   time.Time `json:"created_at"`
}

// JSONData is a custom type for storing JSON in SQLite
type JSONData map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSONData) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSONData) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan type %T into JSONData", value)
	}

	return json.Unmarshal(data, j)
}

// UsageText formats a stored utilization, which is negative when it was
// unavailable
func UsageText(v float64) string {
	if v < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", v)
}

// AnalysisFilter represents filters for querying analyses
type AnalysisFilter struct {
	Bottleneck string
	ScoreMode  string
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Offset     int
}

// ExportFormat represents the format for exporting data
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
)
