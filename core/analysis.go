// Package core implements the build-timing analysis pipeline.
package core

import (
	"math"

	"github.com/huangsam/buildpulse/schema"
)

// ComputeStats derives aggregate timing statistics from a sequence of
// build units. The second return value is false when the sequence is
// empty, which callers must treat as a short-circuit, not an error.
//
// Ties for the first and last unit are broken by first occurrence in
// input order: the comparisons below only update on strictly smaller
// or strictly greater values.
func ComputeStats(units []schema.BuildUnit) (schema.BuildStats, bool) {
	if len(units) == 0 {
		return schema.BuildStats{}, false
	}

	stats := schema.BuildStats{
		TotalBuildTime: units[0].Finish(),
		TimeBlocked:    units[0].Start,
		UnitCount:      len(units),
		First:          units[0],
		Last:           units[0],
	}

	for _, u := range units[1:] {
		if u.Start < stats.TimeBlocked {
			stats.TimeBlocked = u.Start
			stats.First = u
		}
		if u.Finish() > stats.TotalBuildTime {
			stats.TotalBuildTime = u.Finish()
			stats.Last = u
		}
	}
	return stats, true
}

// NewSummary builds the persisted summary record from computed stats.
// An empty command string maps to a null command in the JSON output.
func NewSummary(stats schema.BuildStats, startedAt string, command string) schema.BuildTimingSummary {
	summary := schema.BuildTimingSummary{
		StartedAt:  startedAt,
		DurationMs: int64(math.Round(stats.TotalBuildTime * 1000)),
		FirstCrate: stats.First.Name,
		Target:     stats.Last.Name,
		BlockedMs:  int64(math.Round(stats.TimeBlocked * 1000)),
	}
	if command != "" {
		summary.Command = &command
	}
	return summary
}
