// Package parquet provides data structures and functions for exporting
// recorded build runs to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/buildpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// BuildTimingRun represents a single recorded build for columnar export.
// This struct maps to the buildpulse_runs database table.
type BuildTimingRun struct {
	// StartedAt is the derived build start timestamp (millisecond UTC form)
	StartedAt string `parquet:"started_at,snappy"`

	// DurationMs is the wall-clock span of the build in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`

	// FirstCrate is the name of the earliest-starting unit
	FirstCrate string `parquet:"first_crate,snappy"`

	// Target is the name of the latest-finishing unit
	Target string `parquet:"target,snappy"`

	// BlockedMs is the total time units spent blocked, in milliseconds
	BlockedMs int64 `parquet:"blocked_ms,snappy"`

	// Command is the build command that produced the report (nullable)
	Command *string `parquet:"command,optional,snappy"`

	// ReportPath is the report file the run was derived from
	ReportPath string `parquet:"report_path,snappy"`

	// RecordedAt is when the run was stored (TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// WriteRunsParquet writes a slice of BuildTimingRun structs to a Parquet file.
func WriteRunsParquet(data []BuildTimingRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the BuildTimingRun struct tags
	writer := parquet.NewGenericWriter[BuildTimingRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to BuildTimingRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []BuildTimingRun {
	result := make([]BuildTimingRun, len(records))
	for i, record := range records {
		result[i] = BuildTimingRun{
			StartedAt:  record.StartedAt,
			DurationMs: record.DurationMs,
			FirstCrate: record.FirstCrate,
			Target:     record.Target,
			BlockedMs:  record.BlockedMs,
			Command:    record.Command,
			ReportPath: record.ReportPath,
			RecordedAt: record.RecordedAt,
		}
	}
	return result
}

// MockFetchBuildTimingRuns generates sample BuildTimingRun data for demonstration.
func MockFetchBuildTimingRuns() []BuildTimingRun {
	now := time.Now()
	command1 := "cargo build --release --timings"
	command2 := "cargo build --timings"

	return []BuildTimingRun{
		{
			StartedAt:  "2026-01-05T08:15:00.000Z",
			DurationMs: 184_250,
			FirstCrate: "proc-macro2",
			Target:     "myapp",
			BlockedMs:  12_400,
			Command:    &command1,
			ReportPath: "target/cargo-timings/cargo-timing.html",
			RecordedAt: now.Add(-2 * time.Hour),
		},
		{
			StartedAt:  "2026-01-06T09:30:00.000Z",
			DurationMs: 96_780,
			FirstCrate: "serde",
			Target:     "myapp",
			BlockedMs:  5_150,
			Command:    &command2,
			ReportPath: "target/cargo-timings/cargo-timing.html",
			RecordedAt: now.Add(-1 * time.Hour),
		},
		{
			StartedAt:  "2026-01-07T11:00:00.000Z",
			DurationMs: 42_310,
			FirstCrate: "libc",
			Target:     "mylib",
			BlockedMs:  0,
			Command:    nil, // Recorded without a command - nullable field
			ReportPath: "target/cargo-timings/cargo-timing.html",
			RecordedAt: now.Add(-10 * time.Minute),
		},
	}
}
