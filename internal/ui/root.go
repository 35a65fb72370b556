package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/youtube-dl-gui/internal/config"
	"github.com/ytget/youtube-dl-gui/internal/i18n"
	"github.com/ytget/youtube-dl-gui/internal/model"
	"github.com/ytget/youtube-dl-gui/internal/session"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *i18n.Localization
	controller   *session.Controller
	log          zerolog.Logger

	urlEntry     *widget.Entry
	folderLabel  *widget.Label
	folderEntry  *widget.Entry
	browseBtn    *widget.Button
	formatLabel  *widget.Label
	formatSelect *widget.Select
	statusLabel  *widget.Label
	progressBar  *widget.ProgressBar
	logLabel     *widget.Label
	logEntry     *widget.Entry
	downloadBtn  *widget.Button
	openBtn      *widget.Button
	settingsBtn  *widget.Button

	formats  []model.Format
	logLines []string
	status   model.Status
}

var _ session.View = (*RootUI)(nil)

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, factory session.Factory, logger zerolog.Logger) *RootUI {
	localization := i18n.NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		log:          logger.With().Str("component", "ui").Logger(),
		formats:      model.Formats(),
		status:       model.StatusIdle,
	}
	ui.controller = session.NewController(ui, settings, localization, factory, logger)

	window.SetTitle(localization.GetText(i18n.KeyAppTitle))
	if icon, err := LoadLogoResource(); err == nil {
		window.SetIcon(icon)
	}

	ui.setupUI()
	ui.controller.Init()

	// Closing the window stops the running download first
	window.SetCloseIntercept(func() {
		ui.controller.Close()
		window.Close()
	})

	ui.log.Debug().Msg("root UI initialized")
	return ui
}

// Controller returns the session behind the window
func (ui *RootUI) Controller() *session.Controller {
	return ui.controller
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(i18n.KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnChanged = ui.controller.SetURL
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.folderLabel = widget.NewLabel(ui.localization.GetText(i18n.KeyFolder))
	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetText(ui.controller.Directory())
	ui.folderEntry.OnChanged = ui.controller.SetDirectory
	ui.browseBtn = widget.NewButton(IconFolder+" "+ui.localization.GetText(i18n.KeyBrowse), ui.onBrowseFolder)

	ui.formatLabel = widget.NewLabel(ui.localization.GetText(i18n.KeyFormat))
	labels := make([]string, len(ui.formats))
	for i, f := range ui.formats {
		labels[i] = f.Label()
	}
	ui.formatSelect = widget.NewSelect(labels, nil)
	ui.formatSelect.SetSelectedIndex(ui.formatIndex(ui.controller.Format()))
	ui.formatSelect.OnChanged = func(string) {
		if i := ui.formatSelect.SelectedIndex(); i >= 0 && i < len(ui.formats) {
			ui.controller.SetFormat(ui.formats[i])
		}
	}

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis
	ui.progressBar = widget.NewProgressBar()

	ui.logLabel = widget.NewLabel(ui.localization.GetText(i18n.KeyLog))
	ui.logEntry = widget.NewMultiLineEntry()
	ui.logEntry.Wrapping = fyne.TextWrapBreak
	ui.logEntry.SetMinRowsVisible(LogVisibleLines)
	ui.logEntry.Disable()

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(i18n.KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.openBtn = widget.NewButton(ui.localization.GetText(i18n.KeyOpen), ui.onOpenClick)
	ui.openBtn.Disable()

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	urlRow := container.NewBorder(nil, nil, ui.settingsBtn, nil, ui.urlEntry)
	folderRow := container.NewBorder(nil, nil, ui.folderLabel, ui.browseBtn, ui.folderEntry)
	formatRow := container.NewBorder(nil, nil, ui.formatLabel, container.NewHBox(ui.openBtn, ui.downloadBtn), ui.formatSelect)

	top := container.NewVBox(
		urlRow,
		folderRow,
		formatRow,
		widget.NewSeparator(),
		ui.statusLabel,
		ui.progressBar,
		ui.logLabel,
	)

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.logEntry))
}

func (ui *RootUI) formatIndex(format model.Format) int {
	for i, f := range ui.formats {
		if f == format {
			return i
		}
	}
	return 0
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(i18n.KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(i18n.KeyLanguage))
	available := ui.localization.GetAvailableLanguages()
	for _, code := range ui.localization.LanguageCodes() {
		langCode := code
		langItem := fyne.NewMenuItem(available[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(i18n.KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(i18n.KeyAppTitle))

	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(i18n.KeyEnterURL))
	ui.folderLabel.SetText(ui.localization.GetText(i18n.KeyFolder))
	ui.browseBtn.SetText(IconFolder + " " + ui.localization.GetText(i18n.KeyBrowse))
	ui.formatLabel.SetText(ui.localization.GetText(i18n.KeyFormat))
	ui.logLabel.SetText(ui.localization.GetText(i18n.KeyLog))
	ui.downloadBtn.SetText(ui.localization.GetText(i18n.KeyDownload))
	ui.openBtn.SetText(ui.localization.GetText(i18n.KeyOpen))

	if !ui.status.IsActive() {
		ui.controller.SetURL(ui.urlEntry.Text)
	}
}

// validateURL marks the entry invalid; empty input is allowed
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	_, err := model.ValidateURL(input)
	return err
}

func (ui *RootUI) onDownloadClick() {
	if err := ui.controller.Submit(); err != nil {
		ui.log.Debug().Err(err).Msg("download not started")
	}
}

func (ui *RootUI) onOpenClick() {
	if err := ui.controller.OpenLast(); err != nil {
		ui.log.Debug().Err(err).Msg("file not opened")
	}
}

func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.folderEntry.SetText(uri.Path())
	}, ui.window)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

func (ui *RootUI) onSettingsSaved() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	ui.folderEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.formatSelect.SetSelectedIndex(ui.formatIndex(ui.settings.GetFormat()))

	ui.app.Settings().SetTheme(NewMaterialTheme(ui.settings.GetThemeAccent()))
}

// SetStatus implements session.View
func (ui *RootUI) SetStatus(status model.Status, text string) {
	fyne.Do(func() {
		ui.status = status
		ui.statusLabel.SetText(text)
		if status == model.StatusError {
			ui.statusLabel.Importance = widget.DangerImportance
		} else {
			ui.statusLabel.Importance = widget.MediumImportance
		}
		ui.statusLabel.Refresh()
	})
}

// SetProgress implements session.View
func (ui *RootUI) SetProgress(fraction float64) {
	fyne.Do(func() {
		ui.progressBar.SetValue(fraction)
	})
}

// AppendLog implements session.View
func (ui *RootUI) AppendLog(line string) {
	fyne.Do(func() {
		ui.logLines = append(ui.logLines, line)
		if len(ui.logLines) > MaxLogLines {
			ui.logLines = ui.logLines[len(ui.logLines)-MaxLogLines:]
		}
		ui.logEntry.SetText(strings.Join(ui.logLines, "\n"))
		ui.logEntry.CursorRow = len(ui.logLines)
		ui.logEntry.Refresh()
	})
}

// SetInputEnabled implements session.View
func (ui *RootUI) SetInputEnabled(enabled bool) {
	fyne.Do(func() {
		for _, w := range []fyne.Disableable{ui.urlEntry, ui.folderEntry, ui.browseBtn, ui.formatSelect, ui.settingsBtn} {
			if enabled {
				w.Enable()
			} else {
				w.Disable()
			}
		}
		if enabled && ui.controller.LastSaved() != "" {
			ui.openBtn.Enable()
		} else {
			ui.openBtn.Disable()
		}
	})
}

// SetDownloadEnabled implements session.View
func (ui *RootUI) SetDownloadEnabled(enabled bool) {
	fyne.Do(func() {
		if enabled {
			ui.downloadBtn.Enable()
		} else {
			ui.downloadBtn.Disable()
		}
	})
}

// ShowError implements session.View
func (ui *RootUI) ShowError(title, message string) {
	fyne.Do(func() {
		label := widget.NewLabel(message)
		label.Wrapping = fyne.TextWrapWord

		d := dialog.NewCustom(title, ui.localization.GetText(i18n.KeyOK), container.NewVScroll(label), ui.window)
		d.Resize(fyne.NewSize(ErrorDialogWidth, 0))
		d.Show()
	})
}

// ShowCompleted implements session.View
func (ui *RootUI) ShowCompleted(path string) {
	fyne.Do(func() {
		if path != "" {
			ui.openBtn.Enable()
		}
		ui.app.SendNotification(&fyne.Notification{
			Title:   ui.localization.GetText(i18n.KeyAppTitle),
			Content: ui.localization.Format(i18n.KeyStatusSavedAs, path),
		})
	})
}
