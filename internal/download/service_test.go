package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/youtube-dl-gui/internal/model"
)

// writeFakeTool writes an executable shell script standing in for youtube-dl
func writeFakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake downloader is a shell script")
	}

	path := filepath.Join(t.TempDir(), "youtube-dl")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) kinds(kind EventKind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, ev := range r.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func TestService_DownloadSuccess(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	tool := writeFakeTool(t, `
for a in "$@"; do echo "$a" >> "`+argsFile+`"; done
echo "[youtube] abc: Downloading webpage"
echo "[download] Destination: `+dir+`/Clip.webm"
echo "[download]  50.0% of 2.00MiB at 1.00MiB/s ETA 00:01"
echo "[download] 100% of 2.00MiB in 00:02"
exit 0`)

	req, err := model.NewRequest("https://youtu.be/abc", dir, model.FormatBest)
	require.NoError(t, err)

	svc := NewService(tool, Options{}, zerolog.Nop())
	rec := &eventRecorder{}

	result, err := svc.Download(context.Background(), req, rec.record)
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, req.ID, result.RequestID)
	assert.Equal(t, filepath.Join(dir, "Clip.webm"), result.OutputPath)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))

	progress := rec.kinds(EventProgress)
	require.Len(t, progress, 2)
	assert.InDelta(t, 50.0, progress[0].Progress.Percent, 0.001)
	assert.InDelta(t, 100.0, progress[1].Progress.Percent, 0.001)

	recorded, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, svc.Args(req), strings.Split(strings.TrimSpace(string(recorded)), "\n"))
}

func TestService_DownloadNonZeroExit(t *testing.T) {
	tool := writeFakeTool(t, `
echo "[youtube] abc: Downloading webpage"
echo "WARNING: falling back to generic extractor" 1>&2
echo "ERROR: [youtube] abc: Video unavailable" 1>&2
exit 1`)

	req, err := model.NewRequest("https://youtu.be/abc", t.TempDir(), model.FormatAudio)
	require.NoError(t, err)

	svc := NewService(tool, Options{}, zerolog.Nop())
	rec := &eventRecorder{}

	result, err := svc.Download(context.Background(), req, rec.record)
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T", err)
	assert.Equal(t, 1, exitErr.Code)
	assert.Equal(t, "ERROR: [youtube] abc: Video unavailable", exitErr.Error())
	assert.Equal(t, 1, result.ExitCode)

	errs := rec.kinds(EventError)
	require.Len(t, errs, 1)
	assert.True(t, errs[0].Stderr)
}

func TestService_DownloadNonZeroExitWithoutErrorLine(t *testing.T) {
	tool := writeFakeTool(t, `
echo "something odd happened" 1>&2
exit 3`)

	req, err := model.NewRequest("https://youtu.be/abc", t.TempDir(), model.FormatBest)
	require.NoError(t, err)

	_, err = NewService(tool, Options{}, zerolog.Nop()).Download(context.Background(), req, nil)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "something odd happened", exitErr.Error())
}

func TestService_DownloadCancelled(t *testing.T) {
	tool := writeFakeTool(t, `
echo "[download]   1.0% of 2.00MiB at 1.00KiB/s ETA 10:00"
sleep 30`)

	req, err := model.NewRequest("https://youtu.be/abc", t.TempDir(), model.FormatBest)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	svc := NewService(tool, Options{}, zerolog.Nop())

	started := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		_, err := svc.Download(ctx, req, func(ev Event) {
			if ev.Kind == EventProgress {
				select {
				case started <- struct{}{}:
				default:
				}
			}
		})
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(10 * time.Second):
		t.Fatal("downloader never reported progress")
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Second):
		t.Fatal("download did not stop after cancel")
	}
}

func TestService_MissingExecutable(t *testing.T) {
	req, err := model.NewRequest("https://youtu.be/abc", t.TempDir(), model.FormatBest)
	require.NoError(t, err)

	svc := NewService(filepath.Join(t.TempDir(), "does-not-exist"), Options{}, zerolog.Nop())
	_, err = svc.Download(context.Background(), req, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")
}

func TestService_CommandLine(t *testing.T) {
	req, err := model.NewRequest("https://youtu.be/abc", "/My Videos", model.FormatBest)
	require.NoError(t, err)

	svc := NewService("/usr/bin/yt-dlp", Options{}, zerolog.Nop())
	line := svc.CommandLine(req)

	assert.True(t, strings.HasPrefix(line, "/usr/bin/yt-dlp --newline"), line)
	assert.Contains(t, line, "'/My Videos/%(title)s.%(ext)s'")
	assert.True(t, strings.HasSuffix(line, "-- 'https://www.youtube.com/watch?v=abc'"), line)
}

func TestLineTail(t *testing.T) {
	tail := newLineTail(2)
	tail.add(Event{Kind: EventLine, Line: "one"})
	tail.add(Event{Kind: EventLine, Line: "two"})
	tail.add(Event{Kind: EventLine, Line: "three"})
	assert.Equal(t, "two\nthree", tail.message())

	tail.add(Event{Kind: EventError, Line: "ERROR: boom"})
	assert.Equal(t, "ERROR: boom", tail.message())
}
