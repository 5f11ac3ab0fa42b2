package gui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/mscrnt/project_bottleneck/pkg/db"
	"github.com/mscrnt/project_bottleneck/pkg/report"
)

var historyHeaders = []string{"ID", "Taken At", "Mode", "CPU", "GPU", "Bottleneck", "Actions"}

// History represents the analysis history view
type History struct {
	content fyne.CanvasObject
	dbPath  string
	window  fyne.Window

	table    *widget.Table
	analyses []*db.Analysis

	bottleneckFilter *widget.Select
	limitFilter      *widget.Select
}

// NewHistory creates a new history view
func NewHistory(dbPath string, window fyne.Window) *History {
	h := &History{
		dbPath:   dbPath,
		window:   window,
		analyses: make([]*db.Analysis, 0),
	}
	h.build()
	return h
}

// build creates the history UI
func (h *History) build() {
	h.bottleneckFilter = widget.NewSelect([]string{"All", "CPU", "GPU", "RAM", "SSD", "Balanced", "Unknown"}, func(string) {
		h.Refresh()
	})
	h.limitFilter = widget.NewSelect([]string{"50", "100", "250", "500"}, func(string) {
		h.Refresh()
	})

	filterBar := container.NewHBox(
		widget.NewLabel("Bottleneck:"),
		h.bottleneckFilter,
		widget.NewLabel("Limit:"),
		h.limitFilter,
		widget.NewButton("Refresh", h.Refresh),
	)

	h.table = widget.NewTable(
		func() (int, int) {
			return len(h.analyses) + 1, len(historyHeaders) // +1 for header
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(i widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if i.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(historyHeaders[i.Col])
				return
			}
			label.TextStyle = fyne.TextStyle{}
			label.SetText(historyCell(h.analyses[i.Row-1], i.Col))
		},
	)

	h.table.SetColumnWidth(0, 50)  // ID
	h.table.SetColumnWidth(1, 150) // Taken At
	h.table.SetColumnWidth(2, 80)  // Mode
	h.table.SetColumnWidth(3, 220) // CPU
	h.table.SetColumnWidth(4, 220) // GPU
	h.table.SetColumnWidth(5, 100) // Bottleneck
	h.table.SetColumnWidth(6, 80)  // Actions

	h.table.OnSelected = func(id widget.TableCellID) {
		if id.Row > 0 && id.Row <= len(h.analyses) {
			h.showDetails(h.analyses[id.Row-1])
		}
		h.table.UnselectAll()
	}

	h.content = container.NewBorder(filterBar, nil, nil, nil, h.table)

	// Setting the selection triggers the first load
	h.bottleneckFilter.SetSelected("All")
	h.limitFilter.SetSelected("50")
}

func historyCell(a *db.Analysis, col int) string {
	switch col {
	case 0:
		return strconv.FormatInt(a.ID, 10)
	case 1:
		return a.TakenAt.Local().Format("2006-01-02 15:04:05")
	case 2:
		return a.ScoreMode
	case 3:
		return a.CPUModel
	case 4:
		return a.GPUModel
	case 5:
		return a.Bottleneck
	default:
		return "View"
	}
}

// Content returns the history content
func (h *History) Content() fyne.CanvasObject {
	return h.content
}

// filter builds the query from the selected filters
func (h *History) filter() db.AnalysisFilter {
	filter := db.AnalysisFilter{}
	if sel := h.bottleneckFilter.Selected; sel != "" && sel != "All" {
		filter.Bottleneck = sel
	}
	if limit, err := strconv.Atoi(h.limitFilter.Selected); err == nil {
		filter.Limit = limit
	}
	return filter
}

// Refresh reloads analyses from the database
func (h *History) Refresh() {
	if h.table == nil || h.limitFilter == nil || h.dbPath == "" {
		return
	}

	database, err := db.Open(h.dbPath)
	if err != nil {
		DebugLog("HISTORY", "failed to open database: %v", err)
		return
	}
	defer func() { _ = database.Close() }()

	analyses, err := database.ListAnalyses(h.filter())
	if err != nil {
		DebugLog("HISTORY", "failed to list analyses: %v", err)
		return
	}

	h.analyses = analyses
	h.table.Refresh()
}

// showDetails shows one analysis with its recommendations
func (h *History) showDetails(a *db.Analysis) {
	database, err := db.Open(h.dbPath)
	if err != nil {
		dialog.ShowError(err, h.window)
		return
	}
	defer func() { _ = database.Close() }()

	recs, err := database.GetRecommendations(a.ID)
	if err != nil {
		dialog.ShowError(err, h.window)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CPU: %s (%s, score %.1f)\n", a.CPUModel, db.UsageText(a.CPUUsage), a.CPUScore)
	fmt.Fprintf(&b, "GPU: %s (score %.1f)\n", a.GPUModel, a.GPUScore)
	fmt.Fprintf(&b, "RAM: %s (%s, score %.1f)\n", a.RAMModel, db.UsageText(a.RAMUsage), a.RAMScore)
	fmt.Fprintf(&b, "Disk: %s (%s, score %.1f)\n\n", a.DiskModel, db.UsageText(a.DiskUsage), a.SSDScore)
	fmt.Fprintf(&b, "Bottleneck: %s\n", a.Label)
	if len(recs) > 0 {
		b.WriteString("\nRecommendations:\n")
	}
	for _, r := range recs {
		if r.TopTier {
			fmt.Fprintf(&b, "%s: %s is top-tier\n", r.Component, r.CurrentModel)
			continue
		}
		gain := "n/a"
		if r.Improvement != nil {
			gain = fmt.Sprintf("+%.1f%%", *r.Improvement)
		}
		fmt.Fprintf(&b, "%s: %s -> %s (%s)\n", r.Component, r.CurrentModel, r.CandidateModel, gain)
	}

	details := widget.NewLabel(b.String())
	details.Wrapping = fyne.TextWrapWord

	exportButton := widget.NewButton("Export HTML Report...", func() {
		h.exportReport(a, recs)
	})

	content := container.NewBorder(nil, exportButton, nil, nil, container.NewVScroll(details))
	d := dialog.NewCustom(fmt.Sprintf("Analysis #%d", a.ID), "Close", content, h.window)
	d.Resize(fyne.NewSize(600, 450))
	d.Show()
}

// exportReport writes an HTML report chosen through a save dialog
func (h *History) exportReport(a *db.Analysis, recs []*db.Recommendation) {
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, h.window)
			return
		}
		if w == nil {
			return
		}
		defer func() { _ = w.Close() }()

		html, err := report.RenderHTML(report.NewReportData(a, recs))
		if err != nil {
			dialog.ShowError(err, h.window)
			return
		}
		if _, err := w.Write([]byte(html)); err != nil {
			dialog.ShowError(fmt.Errorf("failed to write report: %w", err), h.window)
		}
	}, h.window)
	save.SetFileName(fmt.Sprintf("bottleneck-report-%d.html", a.ID))
	save.Show()
}
