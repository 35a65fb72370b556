package download

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePath installs a lookPath that only knows the given commands and an
// empty install cache. It returns the cache directory.
func fakePath(t *testing.T, known ...string) string {
	t.Helper()
	origLook, origCache := lookPath, cacheDir
	t.Cleanup(func() {
		lookPath = origLook
		cacheDir = origCache
	})

	cache := t.TempDir()
	cacheDir = func() (string, error) { return cache, nil }

	lookPath = func(name string) (string, error) {
		for _, k := range known {
			if k == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
	return cache
}

// writeBinary creates an empty file named like an executable in dir
func writeBinary(t *testing.T, dir, name string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0o755))
	return path
}

func TestResolveExecutable(t *testing.T) {
	tests := []struct {
		name      string
		known     []string
		preferred string
		expected  string
		wantErr   error
	}{
		{"prefers yt-dlp", []string{CommandYtDLP, CommandYoutubeDL}, "", "/usr/bin/yt-dlp", nil},
		{"falls back to youtube-dl", []string{CommandYoutubeDL}, "", "/usr/bin/youtube-dl", nil},
		{"configured wins", []string{CommandYtDLP, CommandYoutubeDL}, "youtube-dl", "/usr/bin/youtube-dl", nil},
		{"configured missing", []string{CommandYtDLP}, "youtube-dl", "", exec.ErrNotFound},
		{"nothing installed", nil, "", "", ErrDownloaderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakePath(t, tt.known...)

			path, err := ResolveExecutable(tt.preferred)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestDetectMissing(t *testing.T) {
	tests := []struct {
		name     string
		known    []string
		expected []string
	}{
		{"all present", []string{CommandYtDLP, CommandFFmpeg}, nil},
		{"youtube-dl alone is enough", []string{CommandYoutubeDL, CommandFFmpeg}, nil},
		{"ffmpeg missing", []string{CommandYtDLP}, []string{CommandFFmpeg}},
		{"everything missing", nil, []string{CommandYoutubeDL, CommandFFmpeg}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakePath(t, tt.known...)
			assert.Equal(t, tt.expected, DetectMissing("", ""))
		})
	}
}

func TestDetectMissing_ConfiguredFFmpeg(t *testing.T) {
	fakePath(t, CommandYtDLP)

	dir := t.TempDir()
	binary := writeBinary(t, dir, CommandFFmpeg)

	assert.Empty(t, DetectMissing("", binary), "binary path")
	assert.Empty(t, DetectMissing("", dir), "directory holding ffmpeg")
	assert.Equal(t, []string{CommandFFmpeg}, DetectMissing("", filepath.Join(dir, "nope")))
	assert.Equal(t, []string{CommandFFmpeg}, DetectMissing("", t.TempDir()), "directory without ffmpeg")
}

func TestResolve_InstallCache(t *testing.T) {
	cache := fakePath(t)
	ytdlpPath := writeBinary(t, cache, CommandYtDLP)
	ffmpegPath := writeBinary(t, cache, CommandFFmpeg)

	path, err := ResolveExecutable("")
	require.NoError(t, err)
	assert.Equal(t, ytdlpPath, path)

	path, err = ResolveFFmpeg("")
	require.NoError(t, err)
	assert.Equal(t, ffmpegPath, path)

	assert.Empty(t, DetectMissing("", ""))
	assert.Equal(t, ffmpegPath, FFmpegLocation(""))
}

func TestFFmpegLocation(t *testing.T) {
	fakePath(t, CommandFFmpeg)

	assert.Equal(t, "/opt/ffmpeg", FFmpegLocation(" /opt/ffmpeg "))
	assert.Empty(t, FFmpegLocation(""), "ffmpeg on PATH needs no flag")
}

func TestMissingMessage(t *testing.T) {
	tests := []struct {
		missing  []string
		expected string
	}{
		{nil, ""},
		{[]string{"ffmpeg"}, "ffmpeg is required for this program to run. Install it and try again."},
		{[]string{"youtube-dl", "ffmpeg"}, "youtube-dl, ffmpeg are required for this program to run. Install it and try again."},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, MissingMessage(test.missing))
	}
}
