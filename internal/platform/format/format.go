// Package format renders durations, timestamps and share messages for people.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Duration renders milliseconds as mm:ss, or hh:mm:ss once an hour is reached.
func Duration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// DurationLong renders milliseconds as "1h 2m 3s", omitting zero units.
func DurationLong(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	parts := make([]string, 0, 3)
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// Minutes renders a compact minute/hour figure used on chart axes.
func Minutes(ms int64) string {
	minutes := (ms + 30_000) / 60_000
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if rest := minutes % 60; rest > 0 {
		return fmt.Sprintf("%dh %dm", minutes/60, rest)
	}
	return fmt.Sprintf("%dh", minutes/60)
}

func DateTime(ts time.Time) string {
	return ts.Local().Format("2006-01-02 15:04")
}

// Ago renders ts relative to now, e.g. "3 hours ago".
func Ago(ts, now time.Time) string {
	return humanize.RelTime(ts, now, "ago", "from now")
}

// MilestoneShare is the text shared after unlocking a milestone.
func MilestoneShare(label, url string) string {
	return withURL(fmt.Sprintf("I just unlocked the %s milestone on First Thought!", label), url)
}

// RecordShare is the text shared after a new personal best.
func RecordShare(durationMs int64, url string) string {
	return withURL(fmt.Sprintf("New personal best: %s meditation with First Thought!", Duration(durationMs)), url)
}

func withURL(text, url string) string {
	if url == "" {
		return text
	}
	return text + "\n" + url
}
