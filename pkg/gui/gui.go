// Package gui is the desktop front end of the analyzer.
package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/mscrnt/project_bottleneck/pkg/analyzer"
	"github.com/mscrnt/project_bottleneck/pkg/catalog"
)

// WindowTitle is the main window title
const WindowTitle = "Bottleneck Analyzer"

// BottleneckGUI represents the main GUI application
type BottleneckGUI struct {
	app    fyne.App
	window fyne.Window

	form    *AnalyzerForm
	history *History

	analyzer *analyzer.Analyzer
	dbPath   string
	version  string
}

// NewBottleneckGUI creates the main window. History is disabled when
// dbPath is empty.
func NewBottleneckGUI(app fyne.App, a *analyzer.Analyzer, dbPath, ver string) *BottleneckGUI {
	g := &BottleneckGUI{
		app:      app,
		window:   app.NewWindow(WindowTitle),
		analyzer: a,
		dbPath:   dbPath,
		version:  ver,
	}

	g.setup()
	return g
}

// setup initializes the GUI layout
func (g *BottleneckGUI) setup() {
	g.app.Settings().SetTheme(BottleneckTheme{})

	g.window.Resize(fyne.NewSize(900, 640))
	g.window.CenterOnScreen()

	g.createMenu()

	g.form = NewAnalyzerForm(g.analyzer, g.dbPath)
	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Analyze", theme.ComputerIcon(), g.form.Content()),
	)

	if g.dbPath != "" {
		g.history = NewHistory(g.dbPath, g.window)
		g.form.OnSaved = func(int64) { g.history.Refresh() }
		tabs.Append(container.NewTabItemWithIcon("History", theme.ListIcon(), g.history.Content()))
	}

	g.window.SetContent(tabs)
}

// createMenu creates the application menu
func (g *BottleneckGUI) createMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Benchmark Tables...", g.showCatalogStats),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			g.app.Quit()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", g.showAbout),
	)

	g.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// ShowAndRun displays the window and runs the application
func (g *BottleneckGUI) ShowAndRun() {
	g.window.ShowAndRun()
}

func (g *BottleneckGUI) showCatalogStats() {
	cat := g.analyzer.Catalog()
	var b strings.Builder
	fmt.Fprintf(&b, "Directory: %s\n\n", cat.Dir())
	for _, c := range catalog.Categories {
		fmt.Fprintf(&b, "%s: %d rows\n", c.FileName(), cat.Len(c))
	}
	dialog.ShowInformation("Benchmark Tables", b.String(), g.window)
}

func (g *BottleneckGUI) showAbout() {
	card := widget.NewCard(
		"About "+WindowTitle,
		"Version "+g.version,
		widget.NewLabel("Finds the component that limits your PC by comparing\n"+
			"it against UserBenchmark tables, and suggests upgrades."),
	)
	dialog.ShowCustom("About", "Close", card, g.window)
}
