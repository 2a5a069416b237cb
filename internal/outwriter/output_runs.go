package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeRunsTable lists ledger runs. Config params are left to JSON/YAML output.
func writeRunsTable(w io.Writer, runs []schema.RunRecord, cfg *contract.Config) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Command", "Started", "Duration", "Samples", "Model"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(runs))
	for _, r := range runs {
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.Command,
			r.StartTime.Local().Format(contract.DateTimeFormat),
			formatRunDuration(r.RunDurationMs),
			strconv.Itoa(int(r.SampleCount)),
			r.ModelVersion,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d runs from %s ledger\n", len(runs), cfg.RunBackend)
	return err
}

// writeRunsCSV writes one row per ledger run.
func writeRunsCSV(w io.Writer, runs []schema.RunRecord) error {
	header := []string{"run_id", "run_uuid", "command", "start_time", "end_time", "run_duration_ms", "sample_count", "model_version", "config_params"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range runs {
			endTime, duration, params := "", "", ""
			if r.EndTime != nil {
				endTime = r.EndTime.Format(contract.DateTimeFormat)
			}
			if r.RunDurationMs != nil {
				duration = strconv.Itoa(int(*r.RunDurationMs))
			}
			if r.ConfigParams != nil {
				params = *r.ConfigParams
			}
			rec := []string{
				strconv.FormatInt(r.RunID, 10),
				r.RunUUID,
				r.Command,
				r.StartTime.Format(contract.DateTimeFormat),
				endTime,
				duration,
				strconv.Itoa(int(r.SampleCount)),
				r.ModelVersion,
				params,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatRunDuration renders a nullable millisecond duration; unfinished runs show "-".
func formatRunDuration(ms *int32) string {
	if ms == nil {
		return "-"
	}
	return (time.Duration(*ms) * time.Millisecond).String()
}
