package lite

import (
	"fmt"
	"strings"
	"sync"

	"github.com/AllenDang/giu"
	"github.com/rs/zerolog"

	"github.com/ytget/youtube-dl-gui/internal/config"
	"github.com/ytget/youtube-dl-gui/internal/i18n"
	"github.com/ytget/youtube-dl-gui/internal/model"
	"github.com/ytget/youtube-dl-gui/internal/session"
)

// Window sizing
const (
	WindowWidth  = 640
	WindowHeight = 420

	ProgressHeight = 20
	MaxLogLines    = 500
)

const errorPopupID = "##errorPopup"

// viewState is written by the controller from any goroutine
type viewState struct {
	status          model.Status
	statusText      string
	progress        float32
	logLines        []string
	inputEnabled    bool
	downloadEnabled bool
	saved           string

	errTitle   string
	errMessage string
	errPending bool

	logVersion int
}

// Window is the immediate-mode frontend
type Window struct {
	settings     *config.Settings
	localization *i18n.Localization
	controller   *session.Controller
	log          zerolog.Logger

	// refresh asks the toolkit to redraw once the master window exists
	refresh func()

	mu    sync.Mutex
	state viewState

	// Touched only by the UI thread
	url        string
	folder     string
	formatIdx  int32
	formats    []model.Format
	labels     []string
	logText    string
	logSeen    int
	showError  bool
	popupTitle string
	popupText  string
}

var _ session.View = (*Window)(nil)

// New creates the window and its controller. Call Run to show it.
func New(settings *config.Settings, factory session.Factory, logger zerolog.Logger) *Window {
	localization := i18n.NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	w := &Window{
		settings:     settings,
		localization: localization,
		log:          logger.With().Str("component", "lite").Logger(),
		formats:      model.Formats(),
	}
	for _, f := range w.formats {
		w.labels = append(w.labels, f.Label())
	}

	w.controller = session.NewController(w, settings, localization, factory, logger)
	w.folder = w.controller.Directory()
	w.formatIdx = int32(w.formatIndex(w.controller.Format()))
	w.state.inputEnabled = true

	w.controller.Init()
	return w
}

// Controller returns the session behind the window
func (w *Window) Controller() *session.Controller {
	return w.controller
}

// Run shows the window and blocks until it is closed
func (w *Window) Run() {
	wnd := giu.NewMasterWindow(w.localization.GetText(i18n.KeyAppTitle), WindowWidth, WindowHeight, 0)
	wnd.SetBgColor(colorBackground)
	w.refresh = giu.Update
	wnd.SetCloseCallback(func() bool {
		w.controller.Close()
		return true
	})

	w.log.Debug().Msg("lite window started")
	wnd.Run(w.loop)
}

func (w *Window) formatIndex(format model.Format) int {
	for i, f := range w.formats {
		if f == format {
			return i
		}
	}
	return 0
}

func (w *Window) snapshot() viewState {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.state
	s.logLines = nil
	w.state.errPending = false
	if w.state.logVersion != w.logSeen {
		w.logText = strings.Join(w.state.logLines, "\n")
		w.logSeen = w.state.logVersion
	}
	return s
}

// loop builds one frame. No lock is held while widget callbacks run.
func (w *Window) loop() {
	s := w.snapshot()
	text := w.localization.GetText

	if s.errPending {
		w.popupTitle = s.errTitle
		w.popupText = s.errMessage
		w.showError = true
	}

	popupName := w.popupTitle + errorPopupID

	downloadBtn := giu.Button(text(i18n.KeyDownload)).
		OnClick(w.onDownload).
		Disabled(!s.downloadEnabled)
	openBtn := giu.Button(text(i18n.KeyOpen)).
		OnClick(w.onOpen).
		Disabled(!s.inputEnabled || s.saved == "")

	giu.SingleWindow().Layout(themed(
		giu.Label(text(i18n.KeyURL)),
		giu.InputText(&w.url).
			Hint(text(i18n.KeyEnterURL)).
			Size(giu.Auto).
			Flags(readOnlyFlag(!s.inputEnabled)).
			OnChange(func() { w.controller.SetURL(w.url) }),
		giu.Label(text(i18n.KeyFolder)),
		giu.InputText(&w.folder).
			Size(giu.Auto).
			Flags(readOnlyFlag(!s.inputEnabled)).
			OnChange(func() { w.controller.SetDirectory(w.folder) }),
		giu.Row(
			giu.Label(text(i18n.KeyFormat)),
			giu.Style().SetDisabled(!s.inputEnabled).To(
				giu.Combo("##format", w.labels[w.formatIdx], w.labels, &w.formatIdx).
					Size(260).
					OnChange(w.onFormatChange),
			),
			openBtn,
			accentButton(downloadBtn),
		),
		giu.Dummy(0, 4),
		giu.Separator(),
		giu.Style().SetColor(giu.StyleColorText, statusColor(s.status == model.StatusError)).To(
			giu.Label(s.statusText),
		),
		giu.ProgressBar(s.progress).
			Overlay(fmt.Sprintf("%.0f%%", s.progress*100)).
			Size(giu.Auto, ProgressHeight),
		giu.Label(text(i18n.KeyLog)),
		giu.InputTextMultiline(&w.logText).
			Size(giu.Auto, giu.Auto).
			Flags(giu.InputTextFlagsReadOnly),
		giu.Custom(func() {
			if s.errPending {
				giu.OpenPopup(popupName)
			}
		}),
		giu.PopupModal(popupName).
			IsOpen(&w.showError).
			Flags(giu.WindowFlagsAlwaysAutoResize).
			Layout(
				giu.Label(w.popupText).Wrapped(true),
				giu.Button(text(i18n.KeyOK)).OnClick(func() {
					w.showError = false
					giu.CloseCurrentPopup()
				}),
			),
	))
}

func readOnlyFlag(readOnly bool) giu.InputTextFlags {
	if readOnly {
		return giu.InputTextFlagsReadOnly
	}
	return giu.InputTextFlagsNone
}

// onFormatChange applies the combo selection. While a download runs the
// selection snaps back to the active format.
func (w *Window) onFormatChange() {
	if w.controller.Busy() || w.formatIdx < 0 || int(w.formatIdx) >= len(w.formats) {
		w.formatIdx = int32(w.formatIndex(w.controller.Format()))
		return
	}
	w.controller.SetFormat(w.formats[w.formatIdx])
}

func (w *Window) onOpen() {
	if err := w.controller.OpenLast(); err != nil {
		w.log.Debug().Err(err).Msg("file not opened")
	}
}

func (w *Window) onDownload() {
	if err := w.controller.Submit(); err != nil {
		w.log.Debug().Err(err).Msg("download not started")
	}
}

func (w *Window) update(fn func(s *viewState)) {
	w.mu.Lock()
	fn(&w.state)
	w.mu.Unlock()

	if w.refresh != nil {
		w.refresh()
	}
}

// SetStatus implements session.View
func (w *Window) SetStatus(status model.Status, text string) {
	w.update(func(s *viewState) {
		s.status = status
		s.statusText = text
	})
}

// SetProgress implements session.View
func (w *Window) SetProgress(fraction float64) {
	w.update(func(s *viewState) {
		s.progress = float32(fraction)
	})
}

// AppendLog implements session.View
func (w *Window) AppendLog(line string) {
	w.update(func(s *viewState) {
		s.logLines = append(s.logLines, line)
		if len(s.logLines) > MaxLogLines {
			s.logLines = s.logLines[len(s.logLines)-MaxLogLines:]
		}
		s.logVersion++
	})
}

// SetInputEnabled implements session.View
func (w *Window) SetInputEnabled(enabled bool) {
	w.update(func(s *viewState) {
		s.inputEnabled = enabled
	})
}

// SetDownloadEnabled implements session.View
func (w *Window) SetDownloadEnabled(enabled bool) {
	w.update(func(s *viewState) {
		s.downloadEnabled = enabled
	})
}

// ShowError implements session.View
func (w *Window) ShowError(title, message string) {
	w.update(func(s *viewState) {
		s.errTitle = title
		s.errMessage = message
		s.errPending = true
	})
}

// ShowCompleted implements session.View. The status line already names the file.
func (w *Window) ShowCompleted(path string) {
	w.log.Debug().Str("path", path).Msg("download completed")
	w.update(func(s *viewState) {
		s.saved = path
	})
}

// RunMissingDependencies shows message in a small window with a quit button
func RunMissingDependencies(localization *i18n.Localization, message string) {
	wnd := giu.NewMasterWindow(localization.GetText(i18n.KeyMissingTools), 460, 140, giu.MasterWindowFlagsNotResizable)
	wnd.SetBgColor(colorBackground)
	wnd.Run(func() {
		giu.SingleWindow().Layout(themed(
			giu.Label(message).Wrapped(true),
			giu.Dummy(0, 8),
			giu.Button(localization.GetText(i18n.KeyQuit)).OnClick(wnd.Close),
		))
	})
}
