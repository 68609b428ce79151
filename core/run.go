package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/buildpulse/internal/contract"
	"github.com/huangsam/buildpulse/internal/outwriter"
	"github.com/huangsam/buildpulse/internal/platform"
	"github.com/huangsam/buildpulse/internal/report"
	"github.com/huangsam/buildpulse/schema"
)

// ExecuteBuildAnalysis runs the full analyze pipeline for one report:
// extract units, compute stats, print the report, persist the summary
// under the platform data directory, and record the run in the history
// store. A report with zero units prints a notice and exits cleanly
// without writing anything.
func ExecuteBuildAnalysis(cfg *contract.Config, host platform.Platform, store contract.HistoryStore) error {
	info, err := os.Stat(cfg.ReportPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("File not found: %s", cfg.ReportPath)
	}
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", cfg.ReportPath, err)
	}

	units, err := report.ExtractUnits(cfg.ReportPath)
	if err != nil {
		return err
	}

	stats, ok := ComputeStats(units)
	if !ok {
		if cfg.UseEmojis {
			fmt.Printf("⚠️  No build units found in %s\n", filepath.Base(cfg.ReportPath))
		} else {
			fmt.Printf("No build units found in %s\n", filepath.Base(cfg.ReportPath))
		}
		return nil
	}

	started := report.DeriveStartedAt(cfg.ReportPath, info)
	summary := NewSummary(stats, started.Value, cfg.Command)

	result := &schema.AnalyzeResult{
		ReportPath: cfg.ReportPath,
		Stats:      stats,
		Summary:    summary,
		Units:      units,
	}

	if err := outwriter.WriteAnalyzeResults(result, cfg); err != nil {
		return err
	}

	summaryPath, err := PersistSummary(host, summary)
	if err != nil {
		return err
	}
	result.SummaryPath = summaryPath
	if cfg.UseEmojis {
		fmt.Printf("💾 Saved summary to %s\n", summaryPath)
	} else {
		fmt.Printf("Saved summary to %s\n", summaryPath)
	}

	// History tracking is supplementary; a store failure should not
	// fail an otherwise successful analysis.
	if store != nil {
		rec := schema.RunRecord{
			StartedAt:  summary.StartedAt,
			DurationMs: summary.DurationMs,
			FirstCrate: summary.FirstCrate,
			Target:     summary.Target,
			BlockedMs:  summary.BlockedMs,
			Command:    summary.Command,
			ReportPath: cfg.ReportPath,
			RecordedAt: time.Now().UTC(),
		}
		if err := store.RecordRun(rec); err != nil {
			contract.LogWarn("could not record run history", err)
		}
	}

	return nil
}

// PersistSummary writes the summary as indented JSON to the timings
// directory, creating it if needed. The file name is keyed by the
// derived started_at timestamp, so re-running against the same report
// deterministically overwrites the same file.
func PersistSummary(host platform.Platform, summary schema.BuildTimingSummary) (string, error) {
	dir := platform.TimingsDir(host)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("build-timing-%s.json", summary.StartedAt))
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}

	return absPath, nil
}

// AnalyzeReport performs extraction and statistics for a report without
// any side effects. It is used by the MCP server, which must not write
// summaries or history on behalf of a caller.
func AnalyzeReport(path string, command string) (*schema.AnalyzeResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("File not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}

	units, err := report.ExtractUnits(path)
	if err != nil {
		return nil, err
	}

	stats, ok := ComputeStats(units)
	if !ok {
		return nil, nil
	}

	started := report.DeriveStartedAt(path, info)
	return &schema.AnalyzeResult{
		ReportPath: path,
		Stats:      stats,
		Summary:    NewSummary(stats, started.Value, command),
		Units:      units,
	}, nil
}
