package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/huangsam/buildpulse/internal/contract"
	"github.com/huangsam/buildpulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAnalyzeResults outputs one analysis result, dispatching on the
// configured output format.
func WriteAnalyzeResults(result *schema.AnalyzeResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		switch cfg.Output {
		case schema.JSONOut:
			if err := writeJSON(w, result); err != nil {
				return fmt.Errorf("error writing JSON output: %w", err)
			}
			return nil
		case schema.CSVOut:
			return writeUnitsCSV(w, result.Units)
		default:
			// Default to the human-readable report
			return writeAnalyzeText(w, result, cfg)
		}
	}, "Wrote analysis")
}

// writeAnalyzeText prints the human-readable report. Line order is part
// of the output contract: report name, total build time, time blocked,
// unit count, first unit, last unit.
func writeAnalyzeText(w io.Writer, result *schema.AnalyzeResult, cfg *contract.Config) error {
	stats := result.Stats

	lines := []string{
		fmt.Sprintf("%sReport: %s", prefix(cfg, "🧱"), result.ReportPath),
		fmt.Sprintf("%sTotal build time: %s", prefix(cfg, "⏱️"), schema.FormatSeconds(stats.TotalBuildTime)),
		fmt.Sprintf("%sTime blocked: %s", prefix(cfg, "⏳"), schema.FormatSeconds(stats.TimeBlocked)),
		fmt.Sprintf("%sUnits compiled: %d", prefix(cfg, "📦"), stats.UnitCount),
		fmt.Sprintf("%sFirst unit: %s (started %s, took %s)",
			prefix(cfg, "🚀"), schema.FormatUnit(stats.First),
			schema.FormatSeconds(stats.First.Start), schema.FormatSeconds(stats.First.Duration)),
		fmt.Sprintf("%sLast unit: %s (started %s, took %s, finished %s)",
			prefix(cfg, "🏁"), schema.FormatUnit(stats.Last),
			schema.FormatSeconds(stats.Last.Start), schema.FormatSeconds(stats.Last.Duration),
			schema.FormatSeconds(stats.Last.Finish())),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if cfg.TopUnits > 0 {
		return writeTopUnitsTable(w, result, cfg)
	}
	return nil
}

// writeTopUnitsTable renders the N slowest units as a ranked table.
func writeTopUnitsTable(w io.Writer, result *schema.AnalyzeResult, cfg *contract.Config) error {
	slowest := make([]schema.BuildUnit, len(result.Units))
	copy(slowest, result.Units)
	sort.SliceStable(slowest, func(i, j int) bool {
		return slowest[i].Duration > slowest[j].Duration
	})
	n := min(cfg.TopUnits, len(slowest))
	slowest = slowest[:n]

	if _, err := fmt.Fprintf(w, "\n%sTop %d slowest units:\n", prefix(cfg, "🐢"), n); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Rank", "Unit", "Start", "Duration", "Finish", "Share"})
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, u := range slowest {
		label := schema.GetShareLabel(u.Duration, result.Stats.TotalBuildTime)
		if cfg.UseColors {
			label = contract.GetColorLabel(label)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateUnit(schema.FormatUnit(u), getTerminalWidth(cfg)),
			schema.FormatSeconds(u.Start),
			schema.FormatSeconds(u.Duration),
			schema.FormatSeconds(u.Finish()),
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// truncateUnit trims a unit identity so the table fits narrow terminals.
// The fixed columns (rank, three durations, share) take roughly half of
// an 80-column terminal with borders and padding.
func truncateUnit(id string, termWidth int) string {
	available := termWidth - 45
	if available < 15 {
		available = 15
	}
	runes := []rune(id)
	if len(runes) > available {
		return string(runes[:available-3]) + "..."
	}
	return id
}

// writeUnitsCSV writes every build unit as one CSV row.
func writeUnitsCSV(w io.Writer, units []schema.BuildUnit) error {
	header := []string{"name", "version", "target", "start", "duration", "finish"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, u := range units {
			row := []string{
				u.Name,
				u.Version,
				u.Target,
				strconv.FormatFloat(u.Start, 'f', -1, 64),
				strconv.FormatFloat(u.Duration, 'f', -1, 64),
				strconv.FormatFloat(u.Finish(), 'f', -1, 64),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
