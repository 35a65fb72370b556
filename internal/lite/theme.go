package lite

import (
	"image/color"

	"github.com/AllenDang/giu"
)

// Sun Valley light palette
var (
	colorBackground = color.RGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	colorSurface    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorBorder     = color.RGBA{R: 0xe5, G: 0xe5, B: 0xe5, A: 0xff}
	colorText       = color.RGBA{R: 0x1c, G: 0x1c, B: 0x1c, A: 0xff}
	colorTextMuted  = color.RGBA{R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}
	colorAccent     = color.RGBA{R: 0x00, G: 0x5f, B: 0xb8, A: 0xff}
	colorAccentSoft = color.RGBA{R: 0x19, G: 0x6e, B: 0xbf, A: 0xff}
	colorButton     = color.RGBA{R: 0xfd, G: 0xfd, B: 0xfd, A: 0xff}
	colorHover      = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	colorError      = color.RGBA{R: 0xc4, G: 0x2b, B: 0x1c, A: 0xff}
)

// Rounding and spacing
const (
	frameRounding = 4
	framePadding  = 6
)

// themed wraps widgets in the light palette
func themed(widgets ...giu.Widget) giu.Widget {
	return giu.Style().
		SetColor(giu.StyleColorWindowBg, colorBackground).
		SetColor(giu.StyleColorPopupBg, colorSurface).
		SetColor(giu.StyleColorChildBg, colorSurface).
		SetColor(giu.StyleColorText, colorText).
		SetColor(giu.StyleColorTextDisabled, colorTextMuted).
		SetColor(giu.StyleColorBorder, colorBorder).
		SetColor(giu.StyleColorFrameBg, colorSurface).
		SetColor(giu.StyleColorFrameBgHovered, colorHover).
		SetColor(giu.StyleColorFrameBgActive, colorHover).
		SetColor(giu.StyleColorButton, colorButton).
		SetColor(giu.StyleColorButtonHovered, colorHover).
		SetColor(giu.StyleColorButtonActive, colorBorder).
		SetColor(giu.StyleColorHeader, colorHover).
		SetColor(giu.StyleColorHeaderHovered, colorHover).
		SetColor(giu.StyleColorCheckMark, colorAccent).
		SetColor(giu.StyleColorPlotHistogram, colorAccent).
		SetColor(giu.StyleColorTitleBgActive, colorAccentSoft).
		SetStyleFloat(giu.StyleVarFrameRounding, frameRounding).
		SetStyle(giu.StyleVarFramePadding, framePadding, framePadding).
		To(widgets...)
}

// accentButton draws the primary action in the accent colour
func accentButton(button *giu.ButtonWidget) giu.Widget {
	return giu.Style().
		SetColor(giu.StyleColorButton, colorAccent).
		SetColor(giu.StyleColorButtonHovered, colorAccentSoft).
		SetColor(giu.StyleColorButtonActive, colorAccent).
		SetColor(giu.StyleColorText, colorSurface).
		To(button)
}

// statusColor picks the label colour for the current status
func statusColor(isError bool) color.Color {
	if isError {
		return colorError
	}
	return colorText
}
