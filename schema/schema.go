// Package schema has configs, models and global variables for all parts of buildpulse.
package schema

import "time"

// BuildUnit represents the timing record of one compiled artifact,
// as extracted from a cargo-timing HTML report. The slice of units
// is immutable once parsed; the analyzer only reads it.
type BuildUnit struct {
	Name     string  `json:"name"`     // Crate or artifact name
	Version  string  `json:"version"`  // Version string of the artifact
	Target   string  `json:"target"`   // Optional target qualifier (may be blank)
	Start    float64 `json:"start"`    // Offset in seconds from build start
	Duration float64 `json:"duration"` // Compile time in seconds
}

// Finish returns the offset in seconds at which the unit finished compiling.
func (u BuildUnit) Finish() float64 {
	return u.Start + u.Duration
}

// BuildStats holds the aggregate timing statistics derived from a
// non-empty sequence of build units.
type BuildStats struct {
	TotalBuildTime float64   `json:"total_build_time"` // Max over all units of start + duration, in seconds
	TimeBlocked    float64   `json:"time_blocked"`     // Min start across all units, in seconds
	UnitCount      int       `json:"unit_count"`       // Number of units in the report
	First          BuildUnit `json:"first"`            // Unit with the minimum start (first occurrence wins ties)
	Last           BuildUnit `json:"last"`             // Unit with the maximum finish (first occurrence wins ties)
}

// BuildTimingSummary is the persisted record derived from one report.
// It is written once per invocation and never mutated afterward.
type BuildTimingSummary struct {
	StartedAt  string  `json:"started_at"`
	DurationMs int64   `json:"duration_ms"`
	FirstCrate string  `json:"first_crate"`
	Target     string  `json:"target"`
	BlockedMs  int64   `json:"blocked_ms"`
	Command    *string `json:"command"`
}

// AnalyzeResult bundles everything the reporter needs to render one run.
type AnalyzeResult struct {
	ReportPath  string             `json:"report"`
	Stats       BuildStats         `json:"stats"`
	Summary     BuildTimingSummary `json:"summary"`
	Units       []BuildUnit        `json:"-"`
	SummaryPath string             `json:"-"`
}

// RunRecord is one row of the persisted run history.
type RunRecord struct {
	StartedAt  string    `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	FirstCrate string    `json:"first_crate"`
	Target     string    `json:"target"`
	BlockedMs  int64     `json:"blocked_ms"`
	Command    *string   `json:"command"`
	ReportPath string    `json:"report_path"`
	RecordedAt time.Time `json:"recorded_at"`
}

// HistoryStatus reports connection and size information for the history store.
type HistoryStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int64     `json:"total_runs"`
	LastStartedAt string    `json:"last_started_at,omitempty"`
	LastRecorded  time.Time `json:"last_recorded,omitempty"`
}
