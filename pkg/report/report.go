// Package report renders stored analyses as HTML and PDF.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/mscrnt/project_bottleneck/pkg/db"
)

// ReportData contains all data needed for report generation
type ReportData struct {
	Analysis        *db.Analysis
	Recommendations []*db.Recommendation
	Components      []ComponentRow
	GeneratedAt     time.Time
}

// ComponentRow is one line of the score table
type ComponentRow struct {
	Name       string
	Model      string
	Usage      string
	Score      float64
	Bottleneck bool
}

// Generator creates reports from stored analyses
type Generator struct {
	database *db.DB
}

// NewGenerator creates a new report generator
func NewGenerator(database *db.DB) *Generator {
	return &Generator{
		database: database,
	}
}

// GenerateHTML generates an HTML report for an analysis
func (g *Generator) GenerateHTML(id int64) (string, error) {
	data, err := g.loadReportData(id)
	if err != nil {
		return "", err
	}
	return RenderHTML(data)
}

// RenderHTML executes the report template for data
func RenderHTML(data *ReportData) (string, error) {
	tmpl, err := loadHTMLTemplate()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// loadReportData loads all data needed for a report
func (g *Generator) loadReportData(id int64) (*ReportData, error) {
	a, err := g.database.GetAnalysis(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	recs, err := g.database.GetRecommendations(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	return NewReportData(a, recs), nil
}

// NewReportData prepares a stored analysis for rendering
func NewReportData(a *db.Analysis, recs []*db.Recommendation) *ReportData {
	return &ReportData{
		Analysis:        a,
		Recommendations: recs,
		Components:      componentRows(a),
		GeneratedAt:     time.Now(),
	}
}

func componentRows(a *db.Analysis) []ComponentRow {
	rows := []ComponentRow{
		{Name: "CPU", Model: a.CPUModel, Usage: db.UsageText(a.CPUUsage), Score: a.CPUScore},
		{Name: "GPU", Model: a.GPUModel, Usage: "-", Score: a.GPUScore},
		{Name: "RAM", Model: a.RAMModel, Usage: db.UsageText(a.RAMUsage), Score: a.RAMScore},
		{Name: "SSD", Model: a.DiskModel, Usage: db.UsageText(a.DiskUsage), Score: a.SSDScore},
	}
	for i := range rows {
		rows[i].Bottleneck = rows[i].Name == a.Bottleneck
	}
	return rows
}

// loadHTMLTemplate loads the HTML report template
func loadHTMLTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
		"score": func(v float64) string {
			if v == 0 {
				return "not found"
			}
			return fmt.Sprintf("%.1f", v)
		},
		"improvement": func(v *float64) string {
			if v == nil {
				return "n/a"
			}
			return fmt.Sprintf("+%.1f%%", *v)
		},
		"verdictClass": func(component string) string {
			switch component {
			case "Balanced":
				return "balanced"
			case "Unknown":
				return "unknown"
			}
			return "bottleneck"
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return tmpl, nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Bottleneck Report - Analysis #{{.Analysis.ID}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1000px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            background-color: white;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            padding: 30px;
        }
        h1, h2 {
            color: #2c3e50;
        }
        .header {
            border-bottom: 3px solid #3B82F6;
            padding-bottom: 20px;
            margin-bottom: 30px;
        }
        .verdict {
            display: inline-block;
            padding: 5px 15px;
            border-radius: 4px;
            font-weight: bold;
            color: white;
        }
        .verdict.bottleneck { background-color: #EF4444; }
        .verdict.balanced { background-color: #10B981; }
        .verdict.unknown { background-color: #6B7280; }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 25px;
        }
        th, td {
            padding: 10px;
            text-align: left;
            border-bottom: 1px solid #e0e0e0;
        }
        th {
            background-color: #f8f9fa;
            font-weight: 600;
        }
        tr.limiting td {
            background-color: #FEF2F2;
            font-weight: 600;
        }
        .footer {
            margin-top: 40px;
            color: #666;
            font-size: 0.9em;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Bottleneck Report</h1>
            <p>Analysis #{{.Analysis.ID}} taken {{formatTime .Analysis.TakenAt}}{{if .Analysis.Hostname}} on {{.Analysis.Hostname}}{{end}} ({{.Analysis.ScoreMode}} scores)</p>
            <span class="verdict {{verdictClass .Analysis.Bottleneck}}">{{.Analysis.Label}}</span>
        </div>

        <h2>Components</h2>
        <table>
            <thead>
                <tr><th>Component</th><th>Model</th><th>Usage</th><th>Benchmark</th></tr>
            </thead>
            <tbody>
                {{range .Components}}
                <tr{{if .Bottleneck}} class="limiting"{{end}}>
                    <td>{{.Name}}</td>
                    <td>{{.Model}}</td>
                    <td>{{.Usage}}</td>
                    <td>{{score .Score}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>

        {{if .Recommendations}}
        <h2>Upgrade Recommendations</h2>
        <table>
            <thead>
                <tr><th>Component</th><th>Current</th><th>Suggested</th><th>Improvement</th></tr>
            </thead>
            <tbody>
                {{range .Recommendations}}
                <tr>
                    <td>{{.Component}}</td>
                    <td>{{.CurrentModel}}</td>
                    {{if .TopTier}}<td>Already top-tier</td><td>-</td>{{else}}<td>{{.CandidateModel}}</td><td>{{improvement .Improvement}}</td>{{end}}
                </tr>
                {{end}}
            </tbody>
        </table>
        {{end}}

        <div class="footer">
            <p>Generated by Bottleneck on {{formatTime .GeneratedAt}}</p>
        </div>
    </div>
</body>
</html>
`
