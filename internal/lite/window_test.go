package lite

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/youtube-dl-gui/internal/config"
	"github.com/ytget/youtube-dl-gui/internal/download"
	"github.com/ytget/youtube-dl-gui/internal/model"
)

type stubDownloader struct {
	err     error
	output  string
	started chan struct{}
}

func (d *stubDownloader) Download(ctx context.Context, req *model.Request, onEvent func(download.Event)) (*download.Result, error) {
	onEvent(download.Event{Kind: download.EventLine, Line: "[generic] " + req.URL})
	onEvent(download.Event{Kind: download.EventProgress, Progress: model.Progress{Percent: 40}})
	if d.started != nil {
		close(d.started)
		<-ctx.Done()
		return &download.Result{}, ctx.Err()
	}
	return &download.Result{OutputPath: d.output}, d.err
}

func newTestWindow(t *testing.T, dl *stubDownloader) *Window {
	t.Helper()

	store, err := config.NewFileStore(filepath.Join(t.TempDir(), config.PreferencesFileName), zerolog.Nop())
	require.NoError(t, err)

	settings := config.NewSettings(store)
	settings.SetDownloadDirectory(t.TempDir())
	settings.SetAutoRevealOnComplete(false)
	settings.SetFormat(model.FormatAudio)
	settings.SetLanguage("en")

	factory := func(*config.Settings) (download.Downloader, error) { return dl, nil }
	return New(settings, factory, zerolog.Nop())
}

func TestWindow_InitialState(t *testing.T) {
	w := newTestWindow(t, &stubDownloader{})

	s := w.snapshot()
	assert.Equal(t, "No URL", s.statusText)
	assert.False(t, s.downloadEnabled)
	assert.True(t, s.inputEnabled)
	assert.Equal(t, w.controller.Directory(), w.folder)
	assert.Equal(t, model.FormatAudio, w.formats[w.formatIdx])
	assert.Len(t, w.labels, len(model.Formats()))
}

func TestWindow_RefreshCalledOnUpdate(t *testing.T) {
	w := newTestWindow(t, &stubDownloader{})

	var calls atomic.Int32
	w.refresh = func() { calls.Add(1) }

	w.SetProgress(0.5)
	w.SetStatus(model.StatusDownloading, "Downloading 50.0%")

	assert.Equal(t, int32(2), calls.Load())
	s := w.snapshot()
	assert.InDelta(t, 0.5, s.progress, 0.0001)
	assert.Equal(t, "Downloading 50.0%", s.statusText)
}

func TestWindow_DownloadFlow(t *testing.T) {
	w := newTestWindow(t, &stubDownloader{})

	w.url = "https://youtu.be/abc"
	w.controller.SetURL(w.url)
	require.True(t, w.snapshot().downloadEnabled)

	w.onDownload()
	w.controller.Wait()

	s := w.snapshot()
	assert.Equal(t, model.StatusCompleted, s.status)
	assert.InDelta(t, 1.0, s.progress, 0.0001)
	assert.True(t, s.inputEnabled)
	assert.Contains(t, w.logText, "[generic] https://www.youtube.com/watch?v=abc")
}

func TestWindow_ErrorPopupIsConsumedOnce(t *testing.T) {
	w := newTestWindow(t, &stubDownloader{err: &download.ExitError{Code: 2, Stderr: "ERROR: boom"}})

	w.url = "https://youtu.be/abc"
	w.controller.SetURL(w.url)
	w.onDownload()
	w.controller.Wait()

	first := w.snapshot()
	assert.True(t, first.errPending)
	assert.Equal(t, "ERROR: boom", first.errMessage)
	assert.Equal(t, model.StatusError, first.status)

	second := w.snapshot()
	assert.False(t, second.errPending)
}

func TestWindow_FormatChangePersists(t *testing.T) {
	w := newTestWindow(t, &stubDownloader{})

	w.formatIdx = int32(w.formatIndex(model.FormatLow))
	w.onFormatChange()

	assert.Equal(t, model.FormatLow, w.controller.Format())
	assert.Equal(t, model.FormatLow, w.settings.GetFormat())
}

func TestWindow_FormatLockedWhileBusy(t *testing.T) {
	dl := &stubDownloader{started: make(chan struct{})}
	w := newTestWindow(t, dl)

	w.url = "https://youtu.be/abc"
	w.controller.SetURL(w.url)
	w.onDownload()
	<-dl.started

	assert.False(t, w.snapshot().inputEnabled)

	w.formatIdx = int32(w.formatIndex(model.FormatLow))
	w.onFormatChange()

	assert.Equal(t, model.FormatAudio, w.formats[w.formatIdx])
	assert.Equal(t, model.FormatAudio, w.controller.Format())
	assert.Equal(t, model.FormatAudio, w.settings.GetFormat())

	w.controller.Cancel()
	w.controller.Wait()
	assert.Equal(t, model.StatusCancelled, w.snapshot().status)
}

func TestWindow_OpenAfterDownload(t *testing.T) {
	output := filepath.Join(t.TempDir(), "Clip.mp4")
	require.NoError(t, os.WriteFile(output, []byte("x"), 0o644))

	w := newTestWindow(t, &stubDownloader{output: output})
	assert.Empty(t, w.snapshot().saved)

	var opened string
	w.controller.SetOpener(func(path string) error {
		opened = path
		return nil
	})

	w.url = "https://youtu.be/abc"
	w.controller.SetURL(w.url)
	w.onDownload()
	w.controller.Wait()

	assert.Equal(t, output, w.snapshot().saved)
	w.onOpen()
	assert.Equal(t, output, opened)
}

func TestWindow_LogIsBounded(t *testing.T) {
	w := newTestWindow(t, &stubDownloader{})

	for i := 0; i < MaxLogLines+5; i++ {
		w.AppendLog("x")
	}

	w.mu.Lock()
	n := len(w.state.logLines)
	w.mu.Unlock()
	assert.Equal(t, MaxLogLines, n)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, colorError, statusColor(true))
	assert.Equal(t, colorText, statusColor(false))
}
