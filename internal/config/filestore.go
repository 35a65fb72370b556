package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Preferences file location
const (
	AppDirName          = "youtube-dl-gui"
	PreferencesFileName = "preferences.json"
	EnvPrefix           = "YTDLGUI"
)

// DefaultPreferencesPath returns the preferences file under the XDG config directory
func DefaultPreferencesPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(AppDirName, PreferencesFileName))
	if err != nil {
		return "", fmt.Errorf("failed to resolve preferences path: %w", err)
	}
	return path, nil
}

// FileStore keeps preferences in a JSON file. Environment variables named
// YTDLGUI_<KEY> override stored values without being written back.
type FileStore struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
	file *viper.Viper
	log  zerolog.Logger
}

// NewFileStore loads path, creating nothing until the first write
func NewFileStore(path string, logger zerolog.Logger) (*FileStore, error) {
	s := &FileStore{
		path: path,
		v:    viper.New(),
		file: viper.New(),
		log:  logger.With().Str("component", "preferences").Logger(),
	}

	s.v.SetEnvPrefix(EnvPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	s.v.AutomaticEnv()

	for _, v := range []*viper.Viper{s.v, s.file} {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read preferences %s: %w", path, err)
		}
	}

	return s, nil
}

// Path returns the backing file
func (s *FileStore) Path() string {
	return s.path
}

// String returns the value for key or an empty string
func (s *FileStore) String(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(key)
}

// SetString stores value and writes the file
func (s *FileStore) SetString(key string, value string) {
	s.set(key, value)
}

// BoolWithFallback returns the value for key, or fallback when unset
func (s *FileStore) BoolWithFallback(key string, fallback bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.v.IsSet(key) {
		return fallback
	}
	return s.v.GetBool(key)
}

// SetBool stores value and writes the file
func (s *FileStore) SetBool(key string, value bool) {
	s.set(key, value)
}

func (s *FileStore) set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(key, value)
	s.file.Set(key, value)

	if err := s.save(); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to save preferences")
	}
}

// save writes only file-sourced and explicitly set values, never env overrides
func (s *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := s.file.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write preferences %s: %w", s.path, err)
	}
	return nil
}
