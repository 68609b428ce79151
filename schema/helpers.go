package schema

import (
	"fmt"
	"math"
	"strings"
)

// FormatSeconds renders a duration in seconds for human output.
// Durations under a minute render as "12.34s"; longer durations render
// as "2m 5.50s" where the seconds part is the remainder modulo 60.
func FormatSeconds(secs float64) string {
	if secs < 60 {
		return fmt.Sprintf("%.2fs", secs)
	}
	minutes := int(secs / 60)
	return fmt.Sprintf("%dm %.2fs", minutes, math.Mod(secs, 60))
}

// FormatUnit renders a unit's identity as "name vversion", with
// " (target)" appended only when the target is non-blank after trimming.
func FormatUnit(u BuildUnit) string {
	id := fmt.Sprintf("%s v%s", u.Name, u.Version)
	if target := strings.TrimSpace(u.Target); target != "" {
		id += fmt.Sprintf(" (%s)", target)
	}
	return id
}

// GetShareLabel returns a plain text label indicating how large a share
// of the total build time a unit's duration represents. This is the core
// logic used for CSV, JSON, and table printing.
func GetShareLabel(duration, total float64) string {
	if total <= 0 {
		return "Minor"
	}
	share := duration / total
	switch {
	case share >= 0.5:
		return "Dominant"
	case share >= 0.25:
		return "Major"
	case share >= 0.1:
		return "Notable"
	default:
		return "Minor"
	}
}
