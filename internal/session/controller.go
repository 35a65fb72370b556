package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ytget/youtube-dl-gui/internal/config"
	"github.com/ytget/youtube-dl-gui/internal/download"
	"github.com/ytget/youtube-dl-gui/internal/i18n"
	"github.com/ytget/youtube-dl-gui/internal/model"
	"github.com/ytget/youtube-dl-gui/internal/platform"
)

var (
	// ErrBusy is returned by Submit while a download is running
	ErrBusy = errors.New("a download is already running")
	// ErrClosed is returned by Submit after Close
	ErrClosed = errors.New("session closed")
	// ErrNothingToOpen is returned by OpenLast before a download has completed
	ErrNothingToOpen = errors.New("no downloaded file to open")
)

// View is implemented by each frontend. Calls arrive from background
// goroutines; implementations marshal them onto their UI thread.
type View interface {
	SetStatus(status model.Status, text string)
	SetProgress(fraction float64)
	AppendLog(line string)
	SetInputEnabled(enabled bool)
	SetDownloadEnabled(enabled bool)
	ShowError(title, message string)
	ShowCompleted(path string)
}

// Factory builds the downloader for the current settings
type Factory func(settings *config.Settings) (download.Downloader, error)

// ServiceFactory resolves the configured executable and builds a download.Service.
// extraArgs are appended after the arguments from settings.
func ServiceFactory(logger zerolog.Logger, extraArgs ...string) Factory {
	return func(settings *config.Settings) (download.Downloader, error) {
		exe, err := download.ResolveExecutable(settings.GetExecutable())
		if err != nil {
			return nil, err
		}

		saved, err := download.SplitExtraArgs(settings.GetExtraArgs())
		if err != nil {
			return nil, err
		}

		opts := download.Options{
			Flavor:         download.FlavorOf(exe),
			OutputTemplate: settings.GetFilenameTemplate(),
			FFmpegLocation: download.FFmpegLocation(settings.GetFFmpegLocation()),
			SquareCover:    settings.GetSquareCover(),
			ExtraArgs:      append(saved, extraArgs...),
		}
		return download.NewService(exe, opts, logger), nil
	}
}

// Controller owns the form state and the single in-flight download
type Controller struct {
	mu sync.Mutex

	view     View
	settings *config.Settings
	loc      *i18n.Localization
	factory  Factory
	reveal   func(path string) error
	open     func(path string) error
	log      zerolog.Logger

	url       string
	directory string
	format    model.Format
	saved     string

	busy   bool
	closed bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController creates a controller with the folder and format restored from settings
func NewController(view View, settings *config.Settings, loc *i18n.Localization, factory Factory, logger zerolog.Logger) *Controller {
	return &Controller{
		view:      view,
		settings:  settings,
		loc:       loc,
		factory:   factory,
		reveal:    platform.OpenFileInManager,
		open:      platform.OpenFileWithDefaultApp,
		log:       logger.With().Str("component", "session").Logger(),
		directory: settings.GetDownloadDirectory(),
		format:    settings.GetFormat(),
	}
}

// SetRevealer replaces the function used to show a finished file
func (c *Controller) SetRevealer(reveal func(path string) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reveal = reveal
}

// SetOpener replaces the function used by OpenLast
func (c *Controller) SetOpener(open func(path string) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = open
}

// LastSaved returns the file written by the last successful download
func (c *Controller) LastSaved() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved
}

// OpenLast opens the last downloaded file with the default application
func (c *Controller) OpenLast() error {
	c.mu.Lock()
	path, open := c.saved, c.open
	c.mu.Unlock()

	if path == "" || open == nil {
		return ErrNothingToOpen
	}
	if err := open(path); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("failed to open file")
		c.view.AppendLog(fmt.Sprintf("%s: %v", c.loc.GetText(i18n.KeyErrorOpeningFile), err))
		return err
	}
	return nil
}

// Directory returns the current download folder
func (c *Controller) Directory() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.directory
}

// Format returns the current format
func (c *Controller) Format() model.Format {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format
}

// Busy reports whether a download is running
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Init pushes the initial readiness state to the view
func (c *Controller) Init() {
	c.SetURL("")
}

// SetURL records the URL field and updates readiness.
// While a download runs the status and button are left alone.
func (c *Controller) SetURL(raw string) {
	c.mu.Lock()
	c.url = raw
	busy := c.busy
	c.mu.Unlock()

	if busy {
		return
	}

	status, text, ready := c.readiness(raw)
	c.view.SetStatus(status, text)
	c.view.SetDownloadEnabled(ready)
}

func (c *Controller) readiness(raw string) (model.Status, string, bool) {
	_, err := model.ValidateURL(raw)
	switch {
	case errors.Is(err, model.ErrEmptyURL):
		return model.StatusIdle, c.loc.GetText(i18n.KeyStatusNoURL), false
	case err != nil:
		return model.StatusIdle, c.loc.GetText(i18n.KeyStatusInvalidURL), false
	default:
		return model.StatusReady, c.loc.GetText(i18n.KeyStatusCanDownload), true
	}
}

// SetDirectory records and persists the download folder
func (c *Controller) SetDirectory(dir string) {
	dir = strings.TrimSpace(dir)

	c.mu.Lock()
	c.directory = dir
	c.mu.Unlock()

	if dir != "" {
		c.settings.SetDownloadDirectory(dir)
	}
}

// SetFormat records and persists the format
func (c *Controller) SetFormat(format model.Format) {
	if !format.IsValid() {
		format = config.DefaultFormat
	}

	c.mu.Lock()
	c.format = format
	c.mu.Unlock()

	c.settings.SetFormat(format)
}

// Submit validates the form and starts the download in the background.
// Validation errors are returned before any subprocess is spawned.
func (c *Controller) Submit() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	rawURL, directory, format := c.url, c.directory, c.format
	c.mu.Unlock()

	req, err := model.NewRequest(rawURL, directory, format)
	if err != nil {
		c.rejectRequest(err)
		return err
	}

	if err := platform.CreateDirectoryIfNotExists(req.Directory); err != nil {
		err = fmt.Errorf("failed to create download folder: %w", err)
		c.view.ShowError(c.loc.GetText(i18n.KeyStatusError), err.Error())
		return err
	}

	downloader, err := c.factory(c.settings)
	if err != nil {
		c.log.Error().Err(err).Msg("downloader unavailable")
		title, message := c.loc.GetText(i18n.KeyStatusError), err.Error()
		if missing := download.DetectMissing(c.settings.GetExecutable(), c.settings.GetFFmpegLocation()); len(missing) > 0 {
			title, message = c.loc.GetText(i18n.KeyMissingTools), download.MissingMessage(missing)
		}
		c.view.ShowError(title, message)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	if c.closed || c.busy {
		c.mu.Unlock()
		cancel()
		if c.closed {
			return ErrClosed
		}
		return ErrBusy
	}
	c.busy = true
	c.cancel = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	c.log.Info().
		Str("request_id", req.ID).
		Str("url", req.URL).
		Str("format", req.Format.String()).
		Msg("download submitted")

	c.view.SetInputEnabled(false)
	c.view.SetDownloadEnabled(false)
	c.view.SetProgress(0)
	c.view.SetStatus(model.StatusStarting, c.loc.GetText(i18n.KeyStatusInitializing))

	go c.run(ctx, downloader, req)
	return nil
}

func (c *Controller) rejectRequest(err error) {
	switch {
	case errors.Is(err, model.ErrEmptyURL):
		c.view.SetStatus(model.StatusIdle, c.loc.GetText(i18n.KeyStatusNoURL))
		c.view.SetDownloadEnabled(false)
	case errors.Is(err, model.ErrInvalidURL):
		c.view.SetStatus(model.StatusIdle, c.loc.GetText(i18n.KeyStatusInvalidURL))
		c.view.SetDownloadEnabled(false)
	default:
		c.view.ShowError(c.loc.GetText(i18n.KeyStatusError), err.Error())
	}
}

func (c *Controller) run(ctx context.Context, downloader download.Downloader, req *model.Request) {
	defer c.wg.Done()

	result, err := downloader.Download(ctx, req, c.handleEvent)
	c.finish(req, result, err)
}

func (c *Controller) handleEvent(ev download.Event) {
	switch ev.Kind {
	case download.EventProgress:
		c.view.SetStatus(model.StatusDownloading,
			c.loc.Format(i18n.KeyStatusDownloading, ev.Progress.Summary()))
		c.view.SetProgress(ev.Progress.Fraction())
		return
	case download.EventPostprocess:
		c.view.SetStatus(model.StatusPostprocessing, c.loc.GetText(i18n.KeyStatusPostprocessing))
	case download.EventDestination:
		// Merger and ffmpeg steps announce their output file once the transfer is done
		if ev.Step != "" {
			c.view.SetStatus(model.StatusPostprocessing, c.loc.GetText(i18n.KeyStatusPostprocessing))
		}
	}
	c.view.AppendLog(ev.Line)
}

func (c *Controller) finish(req *model.Request, result *download.Result, err error) {
	log := c.log.With().Str("request_id", req.ID).Logger()

	var exitErr *download.ExitError
	switch {
	case err == nil:
		path := ""
		if result != nil {
			path = result.OutputPath
		}
		if found, findErr := platform.FindFileWithFallback(path); findErr == nil {
			path = found
		}

		log.Info().Str("output", path).Msg("download finished")
		c.view.SetProgress(1)
		c.view.SetStatus(model.StatusCompleted, c.loc.Format(i18n.KeyStatusSavedAs, path))
		c.view.ShowCompleted(path)

		c.mu.Lock()
		reveal := c.reveal
		closed := c.closed
		c.saved = path
		c.mu.Unlock()
		if path != "" && !closed && reveal != nil && c.settings.GetAutoRevealOnComplete() {
			if revealErr := reveal(path); revealErr != nil {
				log.Warn().Err(revealErr).Msg("failed to reveal file")
				c.view.AppendLog(fmt.Sprintf("%s: %v", c.loc.GetText(i18n.KeyErrorOpeningFile), revealErr))
			}
		}

	case errors.Is(err, context.Canceled):
		log.Info().Msg("download cancelled")
		c.view.SetStatus(model.StatusCancelled, c.loc.GetText(i18n.KeyStatusCancelled))

	case errors.As(err, &exitErr):
		log.Warn().Int("exit_code", exitErr.Code).Msg("downloader failed")
		c.view.SetStatus(model.StatusError, c.loc.GetText(i18n.KeyStatusError))
		c.view.ShowError(c.loc.GetText(i18n.KeyStatusError), exitErr.Error())

	default:
		log.Error().Err(err).Msg("download failed")
		c.view.SetStatus(model.StatusError, c.loc.GetText(i18n.KeyStatusError))
		c.view.ShowError(c.loc.GetText(i18n.KeyStatusError), err.Error())
	}

	c.mu.Lock()
	c.busy = false
	c.cancel = nil
	rawURL := c.url
	c.mu.Unlock()

	_, _, ready := c.readiness(rawURL)
	c.view.SetInputEnabled(true)
	c.view.SetDownloadEnabled(ready)
}

// Cancel stops the running download, if any
func (c *Controller) Cancel() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the running download has finished
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels any running download and waits for it to exit
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.Cancel()
	c.Wait()
}
