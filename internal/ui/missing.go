package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/youtube-dl-gui/internal/i18n"
)

// NewMissingDependenciesWindow builds the window shown instead of the form when
// the downloader or ffmpeg cannot be found. Closing it quits the app.
func NewMissingDependenciesWindow(app fyne.App, localization *i18n.Localization, message string) fyne.Window {
	window := app.NewWindow(localization.GetText(i18n.KeyMissingTools))

	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	quit := widget.NewButton(localization.GetText(i18n.KeyQuit), app.Quit)
	quit.Importance = widget.HighImportance

	window.SetContent(container.NewBorder(nil, container.NewCenter(quit), nil, nil, label))
	window.Resize(fyne.NewSize(ErrorDialogWidth, 0))
	window.SetMaster()
	return window
}
