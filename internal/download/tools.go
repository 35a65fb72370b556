package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// ErrDownloaderNotFound is returned when neither yt-dlp nor youtube-dl is installed
var ErrDownloaderNotFound = errors.New("no downloader executable found")

// DownloaderCommands are tried in order when no executable is configured
var DownloaderCommands = []string{CommandYtDLP, CommandYoutubeDL}

// Swapped in tests
var (
	lookPath = exec.LookPath
	cacheDir = ytdlp.GetCacheDir
)

// ResolveExecutable returns the path of the downloader to run.
// A configured value wins. Otherwise yt-dlp is preferred over youtube-dl,
// first on PATH and then in the install cache used by Install.
func ResolveExecutable(preferred string) (string, error) {
	if preferred = strings.TrimSpace(preferred); preferred != "" {
		path, err := lookPath(preferred)
		if err != nil {
			return "", fmt.Errorf("configured downloader %q: %w", preferred, err)
		}
		return path, nil
	}

	for _, name := range DownloaderCommands {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}
	if path, ok := findCached(CommandYtDLP); ok {
		return path, nil
	}
	return "", ErrDownloaderNotFound
}

// ResolveFFmpeg returns the ffmpeg to use. location may name the binary or
// the directory holding it, as --ffmpeg-location does; when it does not
// exist PATH and the install cache are searched.
func ResolveFFmpeg(location string) (string, error) {
	if location = strings.TrimSpace(location); location != "" {
		if path, ok := ffmpegAt(location); ok {
			return path, nil
		}
	}

	if path, err := lookPath(CommandFFmpeg); err == nil {
		return path, nil
	}
	if path, ok := findCached(CommandFFmpeg); ok {
		return path, nil
	}
	return "", fmt.Errorf("%s: %w", CommandFFmpeg, exec.ErrNotFound)
}

// FFmpegLocation returns the value for --ffmpeg-location. A configured
// location is kept; otherwise a cached ffmpeg is used when none is on PATH.
func FFmpegLocation(configured string) string {
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured
	}
	if _, err := lookPath(CommandFFmpeg); err == nil {
		return ""
	}
	if path, ok := findCached(CommandFFmpeg); ok {
		return path
	}
	return ""
}

func ffmpegAt(location string) (string, bool) {
	info, err := os.Stat(location)
	if err != nil {
		return "", false
	}
	if !info.IsDir() {
		return location, true
	}
	return executableIn(location, CommandFFmpeg)
}

// findCached looks for name in the go-ytdlp cache directory
func findCached(name string) (string, bool) {
	dir, err := cacheDir()
	if err != nil {
		return "", false
	}
	return executableIn(dir, name)
}

func executableIn(dir, name string) (string, bool) {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	return "", false
}

// DetectMissing lists the external commands that cannot be found.
// The downloader counts as present when any of its names resolves.
func DetectMissing(preferred, ffmpegLocation string) []string {
	var missing []string

	if _, err := ResolveExecutable(preferred); err != nil {
		name := strings.TrimSpace(preferred)
		if name == "" {
			name = CommandYoutubeDL
		}
		missing = append(missing, name)
	}

	if _, err := ResolveFFmpeg(ffmpegLocation); err != nil {
		missing = append(missing, CommandFFmpeg)
	}

	return missing
}

// MissingMessage explains which commands must be installed
func MissingMessage(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	verb := "are"
	if len(missing) == 1 {
		verb = "is"
	}
	return fmt.Sprintf("%s %s required for this program to run. Install it and try again.",
		strings.Join(missing, ", "), verb)
}

// Install downloads a yt-dlp build into the user cache and returns its path and version
func Install(ctx context.Context) (string, string, error) {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to install %s: %w", CommandYtDLP, err)
	}
	return resolved.Executable, resolved.Version, nil
}

// InstallFFmpeg downloads an ffmpeg build into the user cache and returns its path and version
func InstallFFmpeg(ctx context.Context) (string, string, error) {
	resolved, err := ytdlp.InstallFFmpeg(ctx, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to install %s: %w", CommandFFmpeg, err)
	}
	return resolved.Executable, resolved.Version, nil
}
