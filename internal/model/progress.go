package model

import (
	"fmt"
	"strings"
	"time"
)

// Progress is one parsed progress report from the download tool
type Progress struct {
	Status  Status
	Percent float64       // 0 to 100
	Total   string        // human readable size as printed by the tool (e.g. "3.45MiB")
	Speed   string        // human readable speed (e.g. "1.2MiB/s"), empty if unknown
	ETA     time.Duration // -1 if unknown
}

// Fraction returns progress as 0.0 to 1.0 for progress bars
func (p Progress) Fraction() float64 {
	switch {
	case p.Percent <= 0:
		return 0
	case p.Percent >= 100:
		return 1
	}
	return p.Percent / 100
}

// ETAString returns ETA formatted as hh:mm:ss or mm:ss, or "—" if unknown
func (p Progress) ETAString() string {
	seconds := int(p.ETA / time.Second)
	if seconds <= 0 {
		return "—"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds %= 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// PercentString formats the percentage the way youtube-dl prints it
func (p Progress) PercentString() string {
	return fmt.Sprintf("%.1f%%", p.Percent)
}

// Summary renders percent, size, speed and ETA for status lines, e.g.
// "42.0% of 3.45MiB (1.20MiB/s, ETA 00:12)". Unknown parts are left out.
func (p Progress) Summary() string {
	var b strings.Builder
	b.WriteString(p.PercentString())
	if p.Total != "" {
		b.WriteString(" of ")
		b.WriteString(p.Total)
	}

	var details []string
	if p.Speed != "" {
		details = append(details, p.Speed)
	}
	if p.ETA > 0 {
		details = append(details, "ETA "+p.ETAString())
	}
	if len(details) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(details, ", "))
	}
	return b.String()
}
