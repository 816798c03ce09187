package view

import (
	"fmt"
	"time"
)

func FormatDate(t time.Time) string {
	return t.Format("Jan 2")
}

func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2 15:04")
}

// FormatDuration renders seconds as "12.3s", "2m 5s" or "1h 4m". Boundary
// values fall into the lower bracket: 59.9 is seconds, exactly 60 is
// minutes.
func FormatDuration(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	whole := int(seconds)
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", whole/60, whole%60)
	}
	return fmt.Sprintf("%dh %dm", whole/3600, (whole%3600)/60)
}

// ProgressClass buckets a percentage for progress-bar styling. The stat
// cards and the run table share these thresholds.
func ProgressClass(percent float64) string {
	switch {
	case percent >= 80:
		return "high"
	case percent >= 50:
		return "medium"
	default:
		return "low"
	}
}

// CoverageClass colors the coverage stat card.
func CoverageClass(percent float64) string {
	switch {
	case percent >= 80:
		return "success"
	case percent >= 50:
		return "warning"
	default:
		return "danger"
	}
}

// TrendGlyph maps a coverage trend to its indicator. Unknown values get
// the neutral arrow.
func TrendGlyph(trend string) string {
	switch trend {
	case "up":
		return "↑"
	case "down":
		return "↓"
	default:
		return "→"
	}
}

// StatusClass picks the badge style for a run status.
func StatusClass(status string) string {
	switch status {
	case "passed":
		return "success"
	case "failed":
		return "danger"
	case "error":
		return "warning"
	default:
		return "neutral"
	}
}

// ShortSHA abbreviates a commit hash to its first 7 characters, or "-"
// when absent.
func ShortSHA(sha string) string {
	if sha == "" {
		return "-"
	}
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
