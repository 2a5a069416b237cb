package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writePredictionText renders the verdict, the advice and the supplied measurements.
func writePredictionText(w io.Writer, report schema.PredictionReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	res := report.Result

	// 1. Verdict summary
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Prediction", "Confidence", "Malignant", "Benign", "Risk"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk([][]string{{
		verdictLabel(res.Verdict, cfg),
		fmtFloat(res.Confidence) + "%",
		fmtFloat(res.MalignantProbability) + "%",
		fmtFloat(res.BenignProbability) + "%",
		riskLabel(res.RiskLevel, cfg),
	}}); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 2. Recommendation
	title := "Recommendation:"
	if cfg.UseEmojis {
		title = res.Recommendation.Icon + " " + title
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range res.Recommendation.Lines {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}

	// 3. Per-feature breakdown
	if len(report.Contributions) > 0 {
		if err := writeContributionsTable(w, report.Contributions, fmtFloat); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Decision value: %s (intercept %s)\n", fmtFloat(res.Decision), fmtFloat(schema.DefaultModel().Intercept)); err != nil {
			return err
		}
	} else if err := writeMeasurementsTable(w, report.Measurements, cfg); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Prediction completed in %v. Model: %s\n", duration, report.ModelVersion)
	return err
}

// writeMeasurementsTable lists the supplied catalog measurements with their range band.
func writeMeasurementsTable(w io.Writer, m schema.Measurements, cfg *contract.Config) error {
	var data [][]string
	for _, name := range schema.CanonicalFeatures {
		v, ok := m[name]
		if !ok {
			continue
		}
		used := ""
		if schema.IsSelected(name) {
			used = "yes"
		}
		data = append(data, []string{
			name,
			schema.FormatMeasurement(name, v),
			bandLabel(schema.RangeBand(name, v), cfg),
			used,
		})
	}
	if len(data) == 0 {
		_, err := fmt.Fprintln(w, "No measurements supplied; every feature scored at zero.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Feature", "Value", "Range", "Used"})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeContributionsTable lists each weighted term, largest absolute contribution first.
func writeContributionsTable(w io.Writer, contributions []schema.FeatureContribution, fmtFloat func(float64) string) error {
	sorted := slices.Clone(contributions)
	slices.SortStableFunc(sorted, func(a, b schema.FeatureContribution) int {
		return compareAbsDesc(a.Contribution, b.Contribution)
	})

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Feature", "Raw", "Scaled", "Weight", "Contribution"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(sorted))
	for _, c := range sorted {
		data = append(data, []string{
			c.Feature,
			fmtFloat(c.Raw),
			fmtFloat(c.Scaled),
			fmtFloat(c.Coefficient),
			fmtFloat(c.Contribution),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writePredictionCSV writes a single row in the batch CSV layout plus the explain terms, if any.
func writePredictionCSV(w io.Writer, report schema.PredictionReport, fmtFloat func(float64) string) error {
	results := []schema.SampleResult{{ID: "sample-1", Measurements: report.Measurements, Result: report.Result}}
	if len(report.Contributions) == 0 {
		return writeBatchCSV(w, results, fmtFloat)
	}
	return writeCSVWithHeader(w, []string{"feature", "raw", "scaled", "coefficient", "contribution"}, func(cw *csv.Writer) error {
		for _, c := range report.Contributions {
			if err := cw.Write([]string{c.Feature, fmtFloat(c.Raw), fmtFloat(c.Scaled), fmtFloat(c.Coefficient), fmtFloat(c.Contribution)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// compareAbsDesc orders values by descending magnitude.
func compareAbsDesc(a, b float64) int {
	a, b = max(a, -a), max(b, -b)
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
