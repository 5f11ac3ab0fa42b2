package gui

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/db"
	"github.com/mscrnt/project_bottleneck/pkg/probe"
	"github.com/mscrnt/project_bottleneck/pkg/recommend"
)

// Initial label texts
const (
	systemPlaceholder     = "System Information: Not detected yet"
	bottleneckPlaceholder = "Bottleneck: Not analyzed yet"
	recommendPlaceholder  = "Upgrade recommendation will appear here"
	selectPlaceholder     = "Select component"
)

// componentOptions are the choices of the component selector
var componentOptions = []string{"CPU", "GPU", "RAM", "SSD", "All"}

// AnalyzerForm is the analysis view: system summary, verdict and
// upgrade recommendation
type AnalyzerForm struct {
	content  fyne.CanvasObject
	analyzer *analyzer.Analyzer
	dbPath   string

	systemLabel     *widget.Label
	bottleneckLabel *widget.Label
	recommendLabel  *widget.Label
	analyzeButton   *widget.Button
	recommendButton *widget.Button
	componentSelect *widget.Select
	saveCheck       *widget.Check

	mu   sync.Mutex
	busy bool
	// last holds the most recent analysis; it replaces the previous one
	last *analyzer.Result

	// OnSaved is called on the UI goroutine after an analysis is stored
	OnSaved func(id int64)
}

// NewAnalyzerForm creates the analysis view. Results are stored in the
// database at dbPath when the save box is checked.
func NewAnalyzerForm(a *analyzer.Analyzer, dbPath string) *AnalyzerForm {
	f := &AnalyzerForm{
		analyzer: a,
		dbPath:   dbPath,
	}
	f.build()
	return f
}

func (f *AnalyzerForm) build() {
	f.systemLabel = widget.NewLabel(systemPlaceholder)
	f.bottleneckLabel = widget.NewLabel(bottleneckPlaceholder)
	f.bottleneckLabel.TextStyle = fyne.TextStyle{Bold: true}

	f.recommendLabel = widget.NewLabel(recommendPlaceholder)
	f.recommendLabel.Wrapping = fyne.TextWrapWord

	f.analyzeButton = widget.NewButton("Analyze System", f.analyze)
	f.analyzeButton.Importance = widget.HighImportance

	f.componentSelect = widget.NewSelect(componentOptions, nil)
	f.componentSelect.PlaceHolder = selectPlaceholder

	f.recommendButton = widget.NewButton("Recommend Upgrade", f.recommend)

	f.saveCheck = widget.NewCheck("Save to history", nil)
	f.saveCheck.SetChecked(f.dbPath != "")
	if f.dbPath == "" {
		f.saveCheck.Disable()
	}

	f.content = container.NewVScroll(container.NewVBox(
		f.systemLabel,
		widget.NewSeparator(),
		f.bottleneckLabel,
		container.NewHBox(f.analyzeButton, f.saveCheck),
		widget.NewSeparator(),
		f.componentSelect,
		f.recommendButton,
		f.recommendLabel,
	))
}

// Content returns the form content
func (f *AnalyzerForm) Content() fyne.CanvasObject {
	return f.content
}

// begin marks the form busy. It returns false when work is already running.
func (f *AnalyzerForm) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return false
	}
	f.busy = true
	return true
}

func (f *AnalyzerForm) end() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
	safeSetEnabled(true, f.analyzeButton, f.recommendButton)
}

// analyze probes the machine off the UI goroutine
func (f *AnalyzerForm) analyze() {
	if !f.begin() {
		return
	}
	f.analyzeButton.Disable()
	f.recommendButton.Disable()
	f.bottleneckLabel.SetText("Bottleneck: Analyzing...")
	save := f.saveCheck.Checked

	go func() {
		defer f.end()

		res := f.analyzer.Analyze(context.Background())

		f.mu.Lock()
		f.last = &res
		f.mu.Unlock()

		safeSetText(f.systemLabel, "System Information:\n"+res.Snapshot.Summary())
		safeSetText(f.bottleneckLabel, "Bottleneck: "+res.Verdict.Label)
		safeSetText(f.recommendLabel, "Upgrade Recommendations:\n"+res.Verdict.Advice())

		if save {
			f.save(res)
		}
	}()
}

// save stores res with a recommendation for every component
func (f *AnalyzerForm) save(res analyzer.Result) {
	recs, err := f.analyzer.Recommend(res.Snapshot, analyzer.All)
	if err != nil {
		DebugLog("HISTORY", "recommend failed: %v", err)
		return
	}

	database, err := db.Open(f.dbPath)
	if err != nil {
		DebugLog("HISTORY", "failed to open database: %v", err)
		return
	}
	defer func() { _ = database.Close() }()

	record := db.NewAnalysis(res)
	if err := database.SaveAnalysis(record, db.NewRecommendations(recs)); err != nil {
		DebugLog("HISTORY", "failed to save analysis: %v", err)
		return
	}
	DebugLog("HISTORY", "saved analysis %d", record.ID)

	if f.OnSaved != nil {
		id := record.ID
		fyne.Do(func() { f.OnSaved(id) })
	}
}

// snapshot returns the last analyzed snapshot, if any
func (f *AnalyzerForm) snapshot() (probe.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		return probe.Snapshot{}, false
	}
	return f.last.Snapshot, true
}

// recommend runs the recommendation engine for the selected component
// against the last analysis
func (f *AnalyzerForm) recommend() {
	target := f.componentSelect.Selected
	if target == "" {
		f.recommendLabel.SetText("Please select a component first.")
		return
	}

	snap, ok := f.snapshot()
	if !ok {
		f.recommendLabel.SetText("Please analyze the system first.")
		return
	}

	recs, err := f.analyzer.Recommend(snap, target)
	if err != nil {
		f.recommendLabel.SetText(err.Error())
		return
	}
	f.recommendLabel.SetText(recommend.Summary(recs))
}
