package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// safeSetText safely updates a label's text from any goroutine
func safeSetText(label *widget.Label, text string) {
	if label == nil {
		return
	}
	fyne.Do(func() {
		label.SetText(text)
	})
}

// safeSetEnabled enables or disables buttons from any goroutine
func safeSetEnabled(enabled bool, buttons ...*widget.Button) {
	fyne.Do(func() {
		for _, b := range buttons {
			if b == nil {
				continue
			}
			if enabled {
				b.Enable()
			} else {
				b.Disable()
			}
		}
	})
}
