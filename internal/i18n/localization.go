package i18n

// Package i18n holds the UI and status strings shared by both frontends.

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Language codes
const (
	LanguageSystem  = "system"
	LanguageEnglish = "en"
	LanguageRussian = "ru"
	LanguagePortug  = "pt"
)

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyURL               = "url"
	KeyEnterURL          = "enter_url"
	KeyFolder            = "folder"
	KeyFormat            = "format"
	KeyDownload          = "download"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyQuit              = "quit"
	KeyLanguage          = "language"
	KeyTheme             = "theme"
	KeyDownloadDirectory = "download_directory"
	KeyFilenameTemplate  = "filename_template"
	KeyExecutable        = "executable"
	KeyFFmpegLocation    = "ffmpeg_location"
	KeyExtraArgs         = "extra_args"
	KeySquareCover       = "square_cover"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyOpen              = "open"
	KeyLog               = "log"
	KeyOK                = "ok"
	KeySettingsSaved     = "settings_saved"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyMissingTools      = "missing_tools"

	// Status vocabulary
	KeyStatusNoURL          = "status_no_url"
	KeyStatusInvalidURL     = "status_invalid_url"
	KeyStatusCanDownload    = "status_can_download"
	KeyStatusInitializing   = "status_initializing"
	KeyStatusDownloading    = "status_downloading"
	KeyStatusPostprocessing = "status_postprocessing"
	KeyStatusSavedAs        = "status_saved_as"
	KeyStatusError          = "status_error"
	KeyStatusCancelled      = "status_cancelled"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LanguageEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language.
// Unknown codes leave the current language unchanged.
func (l *Localization) SetLanguage(lang string) {
	if lang == "" || lang == LanguageSystem {
		lang = SystemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts[LanguageEnglish][key]; found {
		return text
	}

	return key
}

// Format returns the localized text for key with args substituted
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LanguageEnglish: "English",
		LanguageRussian: "Русский",
		LanguagePortug:  "Português",
	}
}

// LanguageCodes returns the supported codes in a stable order
func (l *Localization) LanguageCodes() []string {
	codes := make([]string, 0, len(l.texts))
	for code := range l.texts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SystemLanguage derives a two-letter language code from the POSIX locale variables
func SystemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(env)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if len(value) >= 2 {
			return strings.ToLower(value[:2])
		}
	}
	return LanguageEnglish
}

func (l *Localization) initializeTexts() {
	l.texts[LanguageEnglish] = map[string]string{
		KeyAppTitle:          "youtube-dl GUI",
		KeyURL:               "URL",
		KeyEnterURL:          "Paste a video link (https://...)",
		KeyFolder:            "Folder",
		KeyFormat:            "Format",
		KeyDownload:          "Download",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyQuit:              "Quit",
		KeyLanguage:          "Language",
		KeyTheme:             "Theme",
		KeyDownloadDirectory: "Download Directory",
		KeyFilenameTemplate:  "Filename Template",
		KeyExecutable:        "Downloader Executable",
		KeyFFmpegLocation:    "ffmpeg Location",
		KeyExtraArgs:         "Extra Arguments",
		KeySquareCover:       "Square cover art for audio",
		KeyAutoReveal:        "Show file when finished",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyOpen:              "Open",
		KeyLog:               "Log",
		KeyOK:                "OK",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyErrorOpeningFile:  "Error opening file",
		KeyMissingTools:      "Missing dependencies",

		KeyStatusNoURL:          "No URL",
		KeyStatusInvalidURL:     "Invalid URL",
		KeyStatusCanDownload:    "Can download",
		KeyStatusInitializing:   "Initializing download",
		KeyStatusDownloading:    "Downloading %s",
		KeyStatusPostprocessing: "Applying postprocessing",
		KeyStatusSavedAs:        "Saved as %s",
		KeyStatusError:          "Error",
		KeyStatusCancelled:      "Cancelled",
	}

	l.texts[LanguageRussian] = map[string]string{
		KeyAppTitle:          "youtube-dl GUI",
		KeyURL:               "Ссылка",
		KeyEnterURL:          "Вставьте ссылку на видео (https://...)",
		KeyFolder:            "Папка",
		KeyFormat:            "Формат",
		KeyDownload:          "Скачать",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyQuit:              "Выход",
		KeyLanguage:          "Язык",
		KeyTheme:             "Тема",
		KeyDownloadDirectory: "Папка загрузки",
		KeyFilenameTemplate:  "Шаблон имени файла",
		KeyExecutable:        "Программа загрузки",
		KeyFFmpegLocation:    "Путь к ffmpeg",
		KeyExtraArgs:         "Дополнительные аргументы",
		KeySquareCover:       "Квадратная обложка для аудио",
		KeyAutoReveal:        "Показать файл по завершении",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyOpen:              "Открыть",
		KeyLog:               "Журнал",
		KeyOK:                "ОК",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyMissingTools:      "Не хватает зависимостей",

		KeyStatusNoURL:          "Нет ссылки",
		KeyStatusInvalidURL:     "Неверная ссылка",
		KeyStatusCanDownload:    "Можно скачивать",
		KeyStatusInitializing:   "Подготовка загрузки",
		KeyStatusDownloading:    "Загрузка %s",
		KeyStatusPostprocessing: "Постобработка",
		KeyStatusSavedAs:        "Сохранено как %s",
		KeyStatusError:          "Ошибка",
		KeyStatusCancelled:      "Отменено",
	}

	l.texts[LanguagePortug] = map[string]string{
		KeyAppTitle:          "youtube-dl GUI",
		KeyURL:               "URL",
		KeyEnterURL:          "Cole o link do vídeo (https://...)",
		KeyFolder:            "Pasta",
		KeyFormat:            "Formato",
		KeyDownload:          "Baixar",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyQuit:              "Sair",
		KeyLanguage:          "Idioma",
		KeyTheme:             "Tema",
		KeyDownloadDirectory: "Diretório de Download",
		KeyFilenameTemplate:  "Modelo de Nome de Arquivo",
		KeyExecutable:        "Executável de Download",
		KeyFFmpegLocation:    "Local do ffmpeg",
		KeyExtraArgs:         "Argumentos Extras",
		KeySquareCover:       "Capa quadrada para áudio",
		KeyAutoReveal:        "Mostrar arquivo ao terminar",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyOpen:              "Abrir",
		KeyLog:               "Registro",
		KeyOK:                "OK",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyMissingTools:      "Dependências ausentes",

		KeyStatusNoURL:          "Sem URL",
		KeyStatusInvalidURL:     "URL inválida",
		KeyStatusCanDownload:    "Pronto para baixar",
		KeyStatusInitializing:   "Iniciando download",
		KeyStatusDownloading:    "Baixando %s",
		KeyStatusPostprocessing: "Aplicando pós-processamento",
		KeyStatusSavedAs:        "Salvo como %s",
		KeyStatusError:          "Erro",
		KeyStatusCancelled:      "Cancelado",
	}
}
