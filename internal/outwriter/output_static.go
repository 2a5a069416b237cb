package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeModelText renders the accuracy chart followed by the weight table.
func writeModelText(w io.Writer, info schema.ModelInfo, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintln(w, info.ChartTitle); err != nil {
		return err
	}
	maxAccuracy := 0.0
	for _, a := range info.Accuracies {
		maxAccuracy = max(maxAccuracy, a.Accuracy)
	}
	barWidth := GetMaxBarWidth(cfg)
	chart := make([][]string, 0, len(info.Accuracies))
	for _, a := range info.Accuracies {
		chart = append(chart, []string{a.Model, fmtFloat(a.Accuracy) + "%", renderBar(a.Accuracy, maxAccuracy, barWidth)})
	}
	if err := writeChartTable(w, []string{"Model", "Accuracy", ""}, chart); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Model %s (intercept %s)\n", info.Version, fmtFloat(info.Intercept)); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Feature", "Index", "Weight", "Mean", "Scale"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(info.Weights))
	for k, fw := range info.Weights {
		data = append(data, []string{
			strconv.Itoa(k + 1),
			fw.Feature,
			strconv.Itoa(fw.Index),
			fmtFloat(fw.Coefficient),
			fmtFloat(fw.Mean),
			fmtFloat(fw.Scale),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeFeaturesText renders the importance chart followed by the catalog.
func writeFeaturesText(w io.Writer, report schema.FeatureReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintln(w, report.ChartTitle); err != nil {
		return err
	}
	maxImportance := 0.0
	for _, fi := range report.Importances {
		maxImportance = max(maxImportance, fi.Importance)
	}
	barWidth := GetMaxBarWidth(cfg)
	chart := make([][]string, 0, len(report.Importances))
	for _, fi := range report.Importances {
		chart = append(chart, []string{fi.Feature, fmtFloat(fi.Importance*100) + "%", renderBar(fi.Importance, maxImportance, barWidth)})
	}
	if err := writeChartTable(w, []string{"Feature", "Importance", ""}, chart); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Index", "Feature", "Column", "Weight"})
	data := make([][]string, 0, len(report.Catalog))
	selected := 0
	for _, e := range report.Catalog {
		weight := "-"
		if e.Selected {
			weight = fmtFloat(e.Coefficient)
			selected++
		}
		data = append(data, []string{strconv.Itoa(e.Index), e.Feature, e.Column, weight})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d features carry a model weight\n", selected, len(report.Catalog))
	return err
}

// writeDefaultsText renders the default values with their display form and band.
func writeDefaultsText(w io.Writer, entries []schema.DefaultEntry, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Feature", "Value", "Range"})
	data := make([][]string, 0, len(entries))
	for _, e := range entries {
		data = append(data, []string{e.Feature, e.Display, bandLabel(e.Band, cfg)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeChartTable renders a label/value/bar table with left-aligned bars.
func writeChartTable(w io.Writer, header []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignLeft}
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeModelCSV writes one row per selected feature.
func writeModelCSV(w io.Writer, info schema.ModelInfo, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"order", "feature", "index", "coefficient", "mean", "scale"}, func(cw *csv.Writer) error {
		for k, fw := range info.Weights {
			rec := []string{strconv.Itoa(k + 1), fw.Feature, strconv.Itoa(fw.Index), fmtFloat(fw.Coefficient), fmtFloat(fw.Mean), fmtFloat(fw.Scale)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeFeaturesCSV writes the catalog joined with the importance dataset.
func writeFeaturesCSV(w io.Writer, report schema.FeatureReport, fmtFloat func(float64) string) error {
	importance := make(map[string]float64, len(report.Importances))
	for _, fi := range report.Importances {
		importance[fi.Feature] = fi.Importance
	}
	return writeCSVWithHeader(w, []string{"index", "feature", "column", "selected", "coefficient", "importance"}, func(cw *csv.Writer) error {
		for _, e := range report.Catalog {
			imp := ""
			if v, ok := importance[schema.DisplayName(e.Feature)]; ok {
				imp = fmtFloat(v)
			}
			rec := []string{strconv.Itoa(e.Index), e.Feature, e.Column, strconv.FormatBool(e.Selected), fmtFloat(e.Coefficient), imp}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeDefaultsCSV writes one row per default value.
func writeDefaultsCSV(w io.Writer, entries []schema.DefaultEntry, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"feature", "value", "display", "band"}, func(cw *csv.Writer) error {
		for _, e := range entries {
			if err := cw.Write([]string{e.Feature, fmtFloat(e.Value), e.Display, e.Band}); err != nil {
				return err
			}
		}
		return nil
	})
}
