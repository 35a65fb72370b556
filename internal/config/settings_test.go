package config

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/youtube-dl-gui/internal/model"
)

// backends returns each Preferences implementation under test
func backends(t *testing.T) map[string]Preferences {
	t.Helper()

	store, err := NewFileStore(filepath.Join(t.TempDir(), PreferencesFileName), zerolog.Nop())
	require.NoError(t, err)

	return map[string]Preferences{
		"fyne": test.NewApp().Preferences(),
		"file": store,
	}
}

func TestNewSettings(t *testing.T) {
	prefs := test.NewApp().Preferences()
	settings := NewSettings(prefs)

	if settings.prefs != prefs {
		t.Error("Settings preferences reference should match provided preferences")
	}
}

func TestDownloadDirectory(t *testing.T) {
	for name, prefs := range backends(t) {
		t.Run(name, func(t *testing.T) {
			settings := NewSettings(prefs)

			dir := settings.GetDownloadDirectory()
			assert.NotEmpty(t, dir, "Download directory should not be empty")

			customDir := "/custom/downloads"
			settings.SetDownloadDirectory("  " + customDir + " ")
			assert.Equal(t, customDir, settings.GetDownloadDirectory())
		})
	}
}

func TestFormat(t *testing.T) {
	for name, prefs := range backends(t) {
		t.Run(name, func(t *testing.T) {
			settings := NewSettings(prefs)

			assert.Equal(t, DefaultFormat, settings.GetFormat())

			settings.SetFormat(model.FormatAudio)
			assert.Equal(t, model.FormatAudio, settings.GetFormat())

			settings.SetFormat(model.Format("8k"))
			assert.Equal(t, DefaultFormat, settings.GetFormat())

			prefs.SetString(KeyFormat, "garbage")
			assert.Equal(t, DefaultFormat, settings.GetFormat())
		})
	}
}

func TestFilenameTemplate(t *testing.T) {
	settings := NewSettings(test.NewApp().Preferences())

	assert.Equal(t, DefaultFilenameTemplate, settings.GetFilenameTemplate())

	customTemplate := "%(uploader)s - %(title)s.%(ext)s"
	settings.SetFilenameTemplate(customTemplate)
	assert.Equal(t, customTemplate, settings.GetFilenameTemplate())

	// Empty template defaults back
	settings.SetFilenameTemplate("  ")
	assert.Equal(t, DefaultFilenameTemplate, settings.GetFilenameTemplate())
}

func TestToolSettings(t *testing.T) {
	for name, prefs := range backends(t) {
		t.Run(name, func(t *testing.T) {
			settings := NewSettings(prefs)

			assert.Empty(t, settings.GetExecutable())
			assert.Empty(t, settings.GetFFmpegLocation())
			assert.Empty(t, settings.GetExtraArgs())

			settings.SetExecutable(" /opt/yt-dlp ")
			settings.SetFFmpegLocation("/opt/ffmpeg")
			settings.SetExtraArgs("--limit-rate 1M ")

			assert.Equal(t, "/opt/yt-dlp", settings.GetExecutable())
			assert.Equal(t, "/opt/ffmpeg", settings.GetFFmpegLocation())
			assert.Equal(t, "--limit-rate 1M", settings.GetExtraArgs())
		})
	}
}

func TestBooleanSettings(t *testing.T) {
	for name, prefs := range backends(t) {
		t.Run(name, func(t *testing.T) {
			settings := NewSettings(prefs)

			assert.Equal(t, DefaultSquareCover, settings.GetSquareCover())
			assert.Equal(t, DefaultAutoRevealComplete, settings.GetAutoRevealOnComplete())

			settings.SetSquareCover(false)
			settings.SetAutoRevealOnComplete(false)

			assert.False(t, settings.GetSquareCover())
			assert.False(t, settings.GetAutoRevealOnComplete())
		})
	}
}

func TestLanguage(t *testing.T) {
	settings := NewSettings(test.NewApp().Preferences())

	assert.Equal(t, DefaultLanguage, settings.GetLanguage())

	settings.SetLanguage("en")
	assert.Equal(t, "en", settings.GetLanguage())
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(test.NewApp().Preferences())

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		_, exists := options[lang]
		assert.True(t, exists, "Expected language option '%s' to exist", lang)
	}
	assert.Len(t, options, len(expectedLangs))
}

func TestThemeAccent(t *testing.T) {
	settings := NewSettings(test.NewApp().Preferences())

	assert.Equal(t, AccentRandom, settings.GetThemeAccent())

	settings.SetThemeAccent(AccentPurple)
	assert.Equal(t, AccentPurple, settings.GetThemeAccent())

	settings.SetThemeAccent("neon")
	assert.Equal(t, DefaultThemeAccent, settings.GetThemeAccent())

	assert.Equal(t, AccentRandom, GetThemeAccentOptions()[0])
}
