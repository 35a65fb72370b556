package model

import (
	"fmt"
	"strings"
)

// Format is the user's quality choice for a download
type Format string

const (
	FormatBest   Format = "best"
	FormatMedium Format = "medium"
	FormatLow    Format = "low"
	FormatAudio  Format = "audio"
)

// DefaultFormat is used when nothing was chosen or stored
const DefaultFormat = FormatBest

// Format selectors passed to -f
const (
	SelectorBest   = "bestvideo+bestaudio/best"
	SelectorMedium = "bestvideo[height<=720]+bestaudio/best[height<=720]"
	SelectorLow    = "bestvideo[height<=480]+bestaudio/best[height<=480]"
	SelectorAudio  = "bestaudio/best"
)

// Formats returns all formats in display order
func Formats() []Format {
	return []Format{FormatBest, FormatMedium, FormatLow, FormatAudio}
}

// ParseFormat converts a stored or typed value into a Format
func ParseFormat(value string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(value)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
	return f, nil
}

// IsValid reports whether f is one of the known formats
func (f Format) IsValid() bool {
	switch f {
	case FormatBest, FormatMedium, FormatLow, FormatAudio:
		return true
	}
	return false
}

// IsAudio reports whether the format extracts audio only
func (f Format) IsAudio() bool {
	return f == FormatAudio
}

// Selector returns the format selector expression understood by youtube-dl
func (f Format) Selector() string {
	switch f {
	case FormatMedium:
		return SelectorMedium
	case FormatLow:
		return SelectorLow
	case FormatAudio:
		return SelectorAudio
	default:
		return SelectorBest
	}
}

// Label returns a short human readable description
func (f Format) Label() string {
	switch f {
	case FormatBest:
		return "Best video"
	case FormatMedium:
		return "Video up to 720p"
	case FormatLow:
		return "Video up to 480p"
	case FormatAudio:
		return "Audio only (MP3)"
	default:
		return string(f)
	}
}

func (f Format) String() string {
	return string(f)
}
