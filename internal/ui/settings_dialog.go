package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/youtube-dl-gui/internal/config"
	"github.com/ytget/youtube-dl-gui/internal/download"
	"github.com/ytget/youtube-dl-gui/internal/i18n"
	"github.com/ytget/youtube-dl-gui/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *i18n.Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry *widget.Entry
	formatSelect     *widget.Select
	filenameEntry    *widget.Entry
	executableEntry  *widget.Entry
	ffmpegEntry      *widget.Entry
	extraArgsEntry   *widget.Entry
	squareCoverCheck *widget.Check
	autoRevealCheck  *widget.Check
	languageSelect   *widget.Select
	accentSelect     *widget.Select

	formats       []model.Format
	languageCodes []string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values have been written.
func NewSettingsDialog(settings *config.Settings, localization *i18n.Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
		formats:      settings.GetFormatOptions(),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(i18n.KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	formatOptions := make([]string, len(sd.formats))
	for i, f := range sd.formats {
		formatOptions[i] = f.Label()
	}
	sd.formatSelect = widget.NewSelect(formatOptions, nil)

	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder(config.DefaultFilenameTemplate)

	sd.executableEntry = widget.NewEntry()
	sd.executableEntry.SetPlaceHolder("yt-dlp")

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder("ffmpeg")

	sd.extraArgsEntry = widget.NewEntry()
	sd.extraArgsEntry.SetPlaceHolder("--limit-rate 2M")
	sd.extraArgsEntry.Validator = func(s string) error {
		_, err := download.SplitExtraArgs(s)
		return err
	}

	sd.squareCoverCheck = widget.NewCheck(text(i18n.KeySquareCover), nil)
	sd.autoRevealCheck = widget.NewCheck(text(i18n.KeyAutoReveal), nil)

	languageLabels := sd.settings.GetLanguageOptions()
	for code := range languageLabels {
		sd.languageCodes = append(sd.languageCodes, code)
	}
	sort.Strings(sd.languageCodes)
	languageOptions := make([]string, len(sd.languageCodes))
	for i, code := range sd.languageCodes {
		languageOptions[i] = languageLabels[code]
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.accentSelect = widget.NewSelect(config.GetThemeAccentOptions(), nil)

	form := widget.NewForm(
		widget.NewFormItem(text(i18n.KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(text(i18n.KeyFormat), sd.formatSelect),
		widget.NewFormItem(text(i18n.KeyFilenameTemplate), sd.filenameEntry),
		widget.NewFormItem(text(i18n.KeyExecutable), sd.executableEntry),
		widget.NewFormItem(text(i18n.KeyFFmpegLocation), sd.ffmpegEntry),
		widget.NewFormItem(text(i18n.KeyExtraArgs), sd.extraArgsEntry),
		widget.NewFormItem("", sd.squareCoverCheck),
		widget.NewFormItem("", sd.autoRevealCheck),
		widget.NewFormItem(text(i18n.KeyLanguage), sd.languageSelect),
		widget.NewFormItem(text(i18n.KeyTheme), sd.accentSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(i18n.KeySettings),
		text(i18n.KeySave),
		text(i18n.KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	for i, f := range sd.formats {
		if f == sd.settings.GetFormat() {
			sd.formatSelect.SetSelectedIndex(i)
		}
	}
	sd.filenameEntry.SetText(sd.settings.GetFilenameTemplate())
	sd.executableEntry.SetText(sd.settings.GetExecutable())
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegLocation())
	sd.extraArgsEntry.SetText(sd.settings.GetExtraArgs())
	sd.squareCoverCheck.SetChecked(sd.settings.GetSquareCover())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	for i, code := range sd.languageCodes {
		if code == sd.settings.GetLanguage() {
			sd.languageSelect.SetSelectedIndex(i)
		}
	}
	sd.accentSelect.SetSelected(sd.settings.GetThemeAccent())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(i18n.KeySettings), sd.localization.GetText(i18n.KeySettingsSaved), sd.window)
}

// save writes the form values to settings
func (sd *SettingsDialog) save() {
	if sd.downloadDirEntry.Text != "" {
		sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)
	}

	if i := sd.formatSelect.SelectedIndex(); i >= 0 && i < len(sd.formats) {
		sd.settings.SetFormat(sd.formats[i])
	}

	sd.settings.SetFilenameTemplate(sd.filenameEntry.Text)
	sd.settings.SetExecutable(sd.executableEntry.Text)
	sd.settings.SetFFmpegLocation(sd.ffmpegEntry.Text)
	sd.settings.SetExtraArgs(sd.extraArgsEntry.Text)
	sd.settings.SetSquareCover(sd.squareCoverCheck.Checked)
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if i := sd.languageSelect.SelectedIndex(); i >= 0 && i < len(sd.languageCodes) {
		sd.settings.SetLanguage(sd.languageCodes[i])
	}

	if sd.accentSelect.Selected != "" {
		sd.settings.SetThemeAccent(sd.accentSelect.Selected)
	}
}
