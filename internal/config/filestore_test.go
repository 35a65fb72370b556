package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", PreferencesFileName)

	store, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())

	store.SetString(KeyDownloadDir, "/media/videos")
	store.SetBool(KeyAutoRevealComplete, false)

	reopened, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "/media/videos", reopened.String(KeyDownloadDir))
	assert.False(t, reopened.BoolWithFallback(KeyAutoRevealComplete, true))
	assert.True(t, reopened.BoolWithFallback(KeySquareCover, true))
}

func TestFileStore_ReadsExistingJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"download_folder": "/srv/music", "format": "audio"}`), 0o644))

	store, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	settings := NewSettings(store)
	assert.Equal(t, "/srv/music", settings.GetDownloadDirectory())
	assert.Equal(t, "audio", string(settings.GetFormat()))
}

func TestFileStore_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := NewFileStore(path, zerolog.Nop())
	assert.Error(t, err)
}

func TestFileStore_EnvOverrideIsNotPersisted(t *testing.T) {
	t.Setenv("YTDLGUI_EXECUTABLE", "/env/yt-dlp")
	path := filepath.Join(t.TempDir(), PreferencesFileName)

	store, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "/env/yt-dlp", store.String(KeyExecutable))

	store.SetString(KeyFormat, "low")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var saved map[string]any
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, "low", saved[KeyFormat])
	assert.NotContains(t, saved, KeyExecutable)
}
