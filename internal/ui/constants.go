package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Window sizing
const (
	WindowWidth  float32 = 640
	WindowHeight float32 = 420

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 460

	ErrorDialogWidth float32 = 460
)

// Log view
const (
	MaxLogLines     = 500
	LogVisibleLines = 8
)
