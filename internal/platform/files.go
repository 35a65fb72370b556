package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/adrg/xdg"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// File extensions left behind by unfinished downloads
var (
	SkippedExtensions = []string{".part", ".ytdl", ".temp"}
)

// ErrFileNotFound is returned when neither the path nor a sibling with the same stem exists
var ErrFileNotFound = errors.New("file not found")

// runCommand is swapped in tests
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	foundPath, err := FindFileWithFallback(filePath)
	if err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	absPath, err := filepath.Abs(foundPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return runCommand(OpenCommand, MacOSSelectFlag, absPath)
	case OSWindows:
		return runCommand(ExplorerCommand, WindowsSelectParam+absPath)
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens the directory containing the file.
// File selection is not standardized on Linux.
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := runCommand(XDGOpenCommand, dir); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return runCommand(fm, dir)
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	foundPath, err := FindFileWithFallback(filePath)
	if err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	absPath, err := filepath.Abs(foundPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return runCommand(OpenCommand, absPath)
	case OSWindows:
		return runCommand(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath)
	case OSLinux:
		return runCommand(XDGOpenCommand, absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the user's Downloads directory
func GetHomeDownloadsDir() (string, error) {
	if dir := strings.TrimSpace(xdg.UserDirs.Download); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// FindFileWithFallback returns filePath when it exists. Otherwise it looks in
// the same directory for a finished file sharing the stem, which covers audio
// extraction replacing the container reported during the download.
func FindFileWithFallback(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", fmt.Errorf("file path is empty")
	}

	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", filePath, ErrFileNotFound)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || isSkippedFile(entry.Name()) {
			continue
		}
		name := entry.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) == stem {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%s: %w", filePath, ErrFileNotFound)
	}

	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), nil
}

func isSkippedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, skipped := range SkippedExtensions {
		if ext == skipped {
			return true
		}
	}
	return false
}
