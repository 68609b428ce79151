package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/buildpulse/internal/contract"
	"github.com/huangsam/buildpulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteHistoryResults outputs recorded runs, dispatching on the
// configured output format.
func WriteHistoryResults(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		switch cfg.Output {
		case schema.JSONOut:
			if err := writeJSON(w, runs); err != nil {
				return fmt.Errorf("error writing JSON output: %w", err)
			}
			return nil
		case schema.CSVOut:
			return WriteHistoryCSV(w, runs)
		default:
			return writeHistoryTable(w, runs, cfg)
		}
	}, "Wrote history")
}

// writeHistoryTable renders recorded runs as a table, newest last.
func writeHistoryTable(w io.Writer, runs []schema.RunRecord, cfg *contract.Config) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded yet.")
		return err
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Started At", "Duration", "Blocked", "First Crate", "Last Crate", "Command"})
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		command := ""
		if r.Command != nil {
			command = *r.Command
		}
		data = append(data, []string{
			r.StartedAt,
			schema.FormatSeconds(float64(r.DurationMs) / 1000),
			schema.FormatSeconds(float64(r.BlockedMs) / 1000),
			r.FirstCrate,
			r.Target,
			command,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d recorded runs\n", len(runs))
	return err
}

// WriteHistoryCSV writes recorded runs as CSV rows. It is exported for
// use by the history export command.
func WriteHistoryCSV(w io.Writer, runs []schema.RunRecord) error {
	header := []string{"started_at", "duration_ms", "first_crate", "target", "blocked_ms", "command", "report_path", "recorded_at"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range runs {
			command := ""
			if r.Command != nil {
				command = *r.Command
			}
			row := []string{
				r.StartedAt,
				strconv.FormatInt(r.DurationMs, 10),
				r.FirstCrate,
				r.Target,
				strconv.FormatInt(r.BlockedMs, 10),
				command,
				r.ReportPath,
				r.RecordedAt.UTC().Format(time.RFC3339),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteHistoryJSON writes recorded runs as indented JSON. It is
// exported for use by the history export command.
func WriteHistoryJSON(w io.Writer, runs []schema.RunRecord) error {
	return writeJSON(w, runs)
}

// PrintHistoryStatus prints connection and size information for the
// history store.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	fmt.Fprintf(w, "Backend: %s\n", status.Backend)
	fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Fprintf(w, "Last run started at: %s\n", status.LastStartedAt)
		fmt.Fprintf(w, "Last run recorded at: %s\n", status.LastRecorded.UTC().Format(time.RFC3339))
	}
}
