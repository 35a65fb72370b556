package config

import (
	"strings"

	"github.com/ytget/youtube-dl-gui/internal/model"
	"github.com/ytget/youtube-dl-gui/internal/platform"
)

// Preferences is the key/value store settings are kept in.
// fyne.Preferences satisfies it, as does FileStore.
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
}

// Settings keys
const (
	KeyDownloadDir        = "download_folder"
	KeyFormat             = "format"
	KeyFilenameTemplate   = "filename_template"
	KeyExecutable         = "executable"
	KeyFFmpegLocation     = "ffmpeg_location"
	KeyExtraArgs          = "extra_args"
	KeySquareCover        = "square_cover"
	KeyAutoRevealComplete = "auto_reveal"
	KeyLanguage           = "app_language"
	KeyThemeAccent        = "theme_accent"
)

// Default values
const (
	DefaultFormat             = model.DefaultFormat
	DefaultFilenameTemplate   = "%(title)s.%(ext)s"
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = true
	DefaultSquareCover        = true
	DefaultThemeAccent        = AccentRandom

	// FallbackDownloadDir is used when no Downloads directory can be determined
	FallbackDownloadDir = "downloads"
)

// Theme accents
const (
	AccentRandom     = "random"
	AccentTeal       = "teal"
	AccentRed        = "red"
	AccentPurple     = "purple"
	AccentLightGreen = "lightgreen"
	AccentCyan       = "cyan"
	AccentBlue       = "blue"
)

// Settings manages application configuration
type Settings struct {
	prefs Preferences
}

// NewSettings creates a new settings manager
func NewSettings(prefs Preferences) *Settings {
	return &Settings{prefs: prefs}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.prefs.String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.prefs.SetString(KeyDownloadDir, strings.TrimSpace(dir))
}

// GetFormat returns the configured format, falling back to the default for unknown values
func (s *Settings) GetFormat() model.Format {
	format, err := model.ParseFormat(s.prefs.String(KeyFormat))
	if err != nil {
		return DefaultFormat
	}
	return format
}

// SetFormat sets the format
func (s *Settings) SetFormat(format model.Format) {
	if !format.IsValid() {
		format = DefaultFormat
	}
	s.prefs.SetString(KeyFormat, string(format))
}

// GetFormatOptions returns available formats
func (s *Settings) GetFormatOptions() []model.Format {
	return model.Formats()
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.prefs.String(KeyFilenameTemplate)
	if template == "" {
		return DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the filename template
func (s *Settings) SetFilenameTemplate(template string) {
	if strings.TrimSpace(template) == "" {
		template = DefaultFilenameTemplate
	}
	s.prefs.SetString(KeyFilenameTemplate, template)
}

// GetExecutable returns the configured downloader; empty means auto-detect
func (s *Settings) GetExecutable() string {
	return strings.TrimSpace(s.prefs.String(KeyExecutable))
}

// SetExecutable sets the downloader executable
func (s *Settings) SetExecutable(exe string) {
	s.prefs.SetString(KeyExecutable, strings.TrimSpace(exe))
}

// GetFFmpegLocation returns the configured ffmpeg binary or directory
func (s *Settings) GetFFmpegLocation() string {
	return strings.TrimSpace(s.prefs.String(KeyFFmpegLocation))
}

// SetFFmpegLocation sets the ffmpeg location
func (s *Settings) SetFFmpegLocation(location string) {
	s.prefs.SetString(KeyFFmpegLocation, strings.TrimSpace(location))
}

// GetExtraArgs returns the raw passthrough arguments
func (s *Settings) GetExtraArgs() string {
	return s.prefs.String(KeyExtraArgs)
}

// SetExtraArgs sets the passthrough arguments
func (s *Settings) SetExtraArgs(args string) {
	s.prefs.SetString(KeyExtraArgs, strings.TrimSpace(args))
}

// GetSquareCover returns whether audio covers are cropped square
func (s *Settings) GetSquareCover() bool {
	return s.prefs.BoolWithFallback(KeySquareCover, DefaultSquareCover)
}

// SetSquareCover sets square cover cropping
func (s *Settings) SetSquareCover(square bool) {
	s.prefs.SetBool(KeySquareCover, square)
}

// GetAutoRevealOnComplete returns whether to auto-reveal completed downloads
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.prefs.BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to auto-reveal completed downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.prefs.SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.prefs.String(KeyLanguage)
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.prefs.SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetThemeAccent returns the configured accent name
func (s *Settings) GetThemeAccent() string {
	accent := s.prefs.String(KeyThemeAccent)
	for _, known := range GetThemeAccentOptions() {
		if accent == known {
			return accent
		}
	}
	return DefaultThemeAccent
}

// SetThemeAccent sets the accent name
func (s *Settings) SetThemeAccent(accent string) {
	s.prefs.SetString(KeyThemeAccent, accent)
}

// GetThemeAccentOptions lists the accent names, random first
func GetThemeAccentOptions() []string {
	return []string{AccentRandom, AccentTeal, AccentRed, AccentPurple, AccentLightGreen, AccentCyan, AccentBlue}
}
