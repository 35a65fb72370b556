package ui

import (
	"image/color"
	"math/rand/v2"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/youtube-dl-gui/internal/config"
)

// Material palette accents
var accentColors = map[string]color.NRGBA{
	config.AccentTeal:       {R: 0x00, G: 0x96, B: 0x88, A: 0xff},
	config.AccentRed:        {R: 0xf4, G: 0x43, B: 0x36, A: 0xff},
	config.AccentPurple:     {R: 0x9c, G: 0x27, B: 0xb0, A: 0xff},
	config.AccentLightGreen: {R: 0x8b, G: 0xc3, B: 0x4a, A: 0xff},
	config.AccentCyan:       {R: 0x00, G: 0xbc, B: 0xd4, A: 0xff},
	config.AccentBlue:       {R: 0x21, G: 0x96, B: 0xf3, A: 0xff},
}

// MaterialTheme is a light material style theme with a single accent colour
// and compact spacing.
type MaterialTheme struct {
	accent string
}

// NewMaterialTheme creates the theme for accent. "random" or an unknown name
// picks one of the accents at random.
func NewMaterialTheme(accent string) *MaterialTheme {
	if _, ok := accentColors[accent]; !ok {
		accent = randomAccent()
	}
	return &MaterialTheme{accent: accent}
}

func randomAccent() string {
	names := config.GetThemeAccentOptions()[1:]
	return names[rand.IntN(len(names))]
}

// Accent returns the accent name in use
func (t *MaterialTheme) Accent() string {
	return t.accent
}

// Color returns theme colors. The light variant is always used.
func (t *MaterialTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	accent := accentColors[t.accent]

	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameHyperlink:
		return accent
	case theme.ColorNameSelection:
		return color.NRGBA{R: accent.R, G: accent.G, B: accent.B, A: 0x40}
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255}
	case theme.ColorNameBackground:
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	case theme.ColorNameForeground:
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}

	return theme.DefaultTheme().Color(name, theme.VariantLight)
}

// Font returns theme fonts
func (t *MaterialTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *MaterialTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *MaterialTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
