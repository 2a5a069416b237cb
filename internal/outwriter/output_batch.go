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

// writeBatchTable generates and writes the human-readable batch table.
func writeBatchTable(w io.Writer, report schema.BatchReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	table.Header([]string{"Rank", "Sample", "Prediction", "Confidence", "Malignant", "Risk"})

	// 2. Configure alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	idWidth := GetMaxTableIDWidth(cfg)
	data := make([][]string, 0, len(report.Results))
	for i, r := range report.Results {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.ID, idWidth),
			verdictLabel(r.Result.Verdict, cfg),
			fmtFloat(r.Result.Confidence) + "%",
			fmtFloat(r.Result.MalignantProbability) + "%",
			riskLabel(r.Result.RiskLevel, cfg),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := report.Summary
	if _, err := fmt.Fprintf(w, "Showing %d of %d samples (benign: "+intFmt+", malignant: "+intFmt+"; risk low/medium/high: "+intFmt+"/"+intFmt+"/"+intFmt+")\n",
		len(report.Results), s.Total, s.Benign, s.Malignant, s.LowRisk, s.Medium, s.HighRisk); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scoring completed in %v with %d workers. Run ledger: %s\n", duration, cfg.Workers, cfg.RunBackend); err != nil {
		return err
	}
	return nil
}

// writeBatchCSV writes one row per scored sample.
func writeBatchCSV(w io.Writer, results []schema.SampleResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"prediction",
		"confidence",
		"malignant_probability",
		"benign_probability",
		"risk_level",
		"decision",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.ID,
				string(r.Result.Verdict),
				fmtFloat(r.Result.Confidence),
				fmtFloat(r.Result.MalignantProbability),
				fmtFloat(r.Result.BenignProbability),
				string(r.Result.RiskLevel),
				fmtFloat(r.Result.Decision),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
