package download

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ytget/youtube-dl-gui/internal/model"
)

// EventKind classifies a line printed by the downloader
type EventKind int

const (
	// EventLine is any line without special meaning
	EventLine EventKind = iota
	// EventProgress is a "[download]  42.0% of ..." report
	EventProgress
	// EventDestination names the file being written
	EventDestination
	// EventPostprocess marks an ffmpeg step after the transfer
	EventPostprocess
	// EventWarning is a "WARNING:" line
	EventWarning
	// EventError is an "ERROR:" line
	EventError
)

// String returns the name of the kind, used in logs
func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventDestination:
		return "destination"
	case EventPostprocess:
		return "postprocess"
	case EventWarning:
		return "warning"
	case EventError:
		return "error"
	default:
		return "line"
	}
}

// Event is one classified output line
type Event struct {
	Kind     EventKind
	Line     string
	Stderr   bool
	Progress model.Progress // set for EventProgress
	Path     string         // set for EventDestination
	Step     string         // post-processor name for EventPostprocess
}

// Line prefixes printed by youtube-dl and yt-dlp
const (
	PrefixDownload = "[download]"
	PrefixError    = "ERROR:"
	PrefixWarning  = "WARNING:"
	UnknownValue   = "Unknown"
)

var (
	percentRegex     = regexp.MustCompile(`^\[download\]\s+(\d+(?:\.\d+)?)%`)
	totalRegex       = regexp.MustCompile(`\sof\s+~?\s*(\S+)`)
	speedRegex       = regexp.MustCompile(`\sat\s+(\S+)`)
	etaRegex         = regexp.MustCompile(`\sETA\s+(\S+)`)
	destinationRegex = regexp.MustCompile(`^\[(\w+)\]\s+Destination:\s+(.+)$`)
	mergerRegex      = regexp.MustCompile(`^\[Merger\]\s+Merging formats into\s+"(.+)"$`)
	alreadyRegex     = regexp.MustCompile(`^\[download\]\s+(.+?)\s+has already been downloaded`)
	stepRegex        = regexp.MustCompile(`^\[(\w+)\]`)
)

// postprocessSteps are the bracketed tags of ffmpeg based post-processors
var postprocessSteps = map[string]bool{
	"ExtractAudio":        true,
	"ffmpeg":              true,
	"EmbedThumbnail":      true,
	"Metadata":            true,
	"ThumbnailsConvertor": true,
	"Merger":              true,
	"FixupM4a":            true,
	"FixupM3u8":           true,
	"VideoConvertor":      true,
	"VideoRemuxer":        true,
}

// ParseLine classifies one line of downloader output
func ParseLine(line string) Event {
	line = strings.TrimRight(line, "\r\n")
	trimmed := strings.TrimSpace(line)
	ev := Event{Kind: EventLine, Line: line}

	switch {
	case trimmed == "":
		return ev
	case strings.HasPrefix(trimmed, PrefixError):
		ev.Kind = EventError
		return ev
	case strings.HasPrefix(trimmed, PrefixWarning):
		ev.Kind = EventWarning
		return ev
	}

	if m := percentRegex.FindStringSubmatch(trimmed); m != nil {
		ev.Kind = EventProgress
		ev.Progress = parseProgress(trimmed, m[1])
		return ev
	}

	if m := mergerRegex.FindStringSubmatch(trimmed); m != nil {
		ev.Kind = EventDestination
		ev.Path = m[1]
		ev.Step = "Merger"
		return ev
	}

	if m := destinationRegex.FindStringSubmatch(trimmed); m != nil {
		ev.Kind = EventDestination
		ev.Path = strings.TrimSpace(m[2])
		if m[1] != "download" {
			ev.Step = m[1]
		}
		return ev
	}

	if m := alreadyRegex.FindStringSubmatch(trimmed); m != nil {
		ev.Kind = EventDestination
		ev.Path = m[1]
		return ev
	}

	if m := stepRegex.FindStringSubmatch(trimmed); m != nil && postprocessSteps[m[1]] {
		ev.Kind = EventPostprocess
		ev.Step = m[1]
		return ev
	}

	return ev
}

// parseProgress extracts size, speed and ETA from a progress line
func parseProgress(line, percent string) model.Progress {
	p := model.Progress{Status: model.StatusDownloading, ETA: -1}

	if v, err := strconv.ParseFloat(percent, 64); err == nil {
		p.Percent = v
	}
	if m := totalRegex.FindStringSubmatch(line); m != nil && m[1] != UnknownValue {
		p.Total = m[1]
	}
	if m := speedRegex.FindStringSubmatch(line); m != nil && m[1] != UnknownValue {
		p.Speed = m[1]
	}
	if m := etaRegex.FindStringSubmatch(line); m != nil {
		p.ETA = parseClock(m[1])
	}
	if p.Percent >= 100 {
		p.ETA = 0
	}

	return p
}

// parseClock parses "ss", "mm:ss" or "hh:mm:ss"; -1 when not a clock
func parseClock(s string) time.Duration {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return -1
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return -1
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second
}
