package history

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/buildpulse/internal/contract"
	"github.com/huangsam/buildpulse/internal/outwriter"
	"github.com/huangsam/buildpulse/internal/parquet"
	"github.com/huangsam/buildpulse/schema"
)

// ExecuteHistoryExport exports all recorded runs to the requested format.
func ExecuteHistoryExport(store contract.HistoryStore, format schema.ExportFormat, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is disabled")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no recorded runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total recorded runs: %d\n", status.TotalRuns)

	runs, err := store.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	switch format {
	case schema.ParquetExport:
		if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), outputFile); err != nil {
			return fmt.Errorf("failed to write parquet export: %w", err)
		}
	case schema.CSVExport:
		if err := writeExportFile(outputFile, func(file *os.File) error {
			return outwriter.WriteHistoryCSV(file, runs)
		}); err != nil {
			return fmt.Errorf("failed to write csv export: %w", err)
		}
	case schema.JSONExport:
		if err := writeExportFile(outputFile, func(file *os.File) error {
			return outwriter.WriteHistoryJSON(file, runs)
		}); err != nil {
			return fmt.Errorf("failed to write json export: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}

	fmt.Printf("Exported %d runs to: %s\n", len(runs), outputFile)
	return nil
}

// writeExportFile creates the output file and hands it to the writer.
func writeExportFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return write(file)
}
