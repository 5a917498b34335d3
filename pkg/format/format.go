// Package format provides display helpers for article rendering: relative
// timestamps, placeholder images and text truncation.
package format

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// sourceColors maps known sources to gradient color pairs for placeholders.
var sourceColors = map[string][2]string{
	"TechCrunch":   {"22c55e", "16a34a"},
	"Hacker News":  {"f97316", "ea580c"},
	"Dev.to":       {"6366f1", "4f46e5"},
	"The Verge":    {"ec4899", "db2777"},
	"Ars Technica": {"0ea5e9", "0284c7"},
}

// defaultColors is the gradient used for sources without a dedicated pair.
var defaultColors = [2]string{"374151", "1f2937"}

// TimeAgo formats the elapsed time between t and now as a short human-readable
// phrase. Zero t yields an empty string.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hr ago"
		}
		return fmt.Sprintf("%d hrs ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2")
	}
}

// PlaceholderImage returns a gradient placeholder URL keyed by source name.
func PlaceholderImage(source string) string {
	colors, ok := sourceColors[source]
	if !ok {
		colors = defaultColors
	}
	label := source
	if label == "" {
		label = "TrendRadar"
	}
	return fmt.Sprintf("https://placehold.co/800x450/%s/%s?text=%s", colors[0], colors[1], url.QueryEscape(label))
}

// Truncate cuts text to at most maxLen characters, appending an ellipsis when
// anything was removed.
func Truncate(text string, maxLen int) string {
	if text == "" || len(text) <= maxLen {
		return text
	}
	return strings.TrimSpace(text[:maxLen]) + "..."
}
