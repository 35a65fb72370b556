package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalization_DefaultsToEnglish(t *testing.T) {
	l := NewLocalization()

	assert.Equal(t, LanguageEnglish, l.GetCurrentLanguage())
	assert.Equal(t, "Download", l.GetText(KeyDownload))
	assert.Equal(t, "No URL", l.GetText(KeyStatusNoURL))
}

func TestLocalization_SetLanguage(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		expected string
	}{
		{"russian", LanguageRussian, "Скачать"},
		{"portuguese", LanguagePortug, "Baixar"},
		{"unknown keeps english", "xx", "Download"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalization()
			l.SetLanguage(tt.lang)
			assert.Equal(t, tt.expected, l.GetText(KeyDownload))
		})
	}
}

func TestLocalization_SystemLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "pt_BR.UTF-8")

	assert.Equal(t, LanguagePortug, SystemLanguage())

	l := NewLocalization()
	l.SetLanguage(LanguageSystem)
	assert.Equal(t, LanguagePortug, l.GetCurrentLanguage())

	t.Setenv("LANG", "C")
	assert.Equal(t, LanguageEnglish, SystemLanguage())
}

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage(LanguageRussian)

	assert.Equal(t, "missing_key", l.GetText("missing_key"))
}

func TestLocalization_Format(t *testing.T) {
	l := NewLocalization()

	assert.Equal(t, "Downloading 42.0%", l.Format(KeyStatusDownloading, "42.0%"))
	assert.Equal(t, "Saved as /tmp/a.mp3", l.Format(KeyStatusSavedAs, "/tmp/a.mp3"))
}

func TestLocalization_EveryLanguageHasEveryKey(t *testing.T) {
	l := NewLocalization()
	english := l.texts[LanguageEnglish]

	for _, code := range l.LanguageCodes() {
		for key := range english {
			_, ok := l.texts[code][key]
			assert.True(t, ok, "%s is missing %s", code, key)
		}
	}
	assert.Len(t, l.LanguageCodes(), len(l.GetAvailableLanguages()))
}
