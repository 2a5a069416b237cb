package core

import (
	"context"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/internal/outwriter"
	"github.com/oncolens/tumorscore/schema"
)

// ExecuteModelInfo writes the model parameters and the accuracy comparison chart.
func ExecuteModelInfo(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteModelInfo(GetModelInfo(), cfg)
}

// ExecuteFeatures writes the feature importance chart and the feature catalog.
func ExecuteFeatures(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteFeatures(GetFeatureReport(), cfg)
}

// ExecuteDefaults writes the default measurement values.
func ExecuteDefaults(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteDefaults(GetDefaultEntries(), cfg)
}

// GetModelInfo describes the compiled-in model, one weight per selected feature in scoring order.
func GetModelInfo() schema.ModelInfo {
	model := schema.DefaultModel()
	indices := schema.SelectedIndices()

	weights := make([]schema.FeatureWeight, 0, schema.NumSelectedFeatures)
	for k, name := range schema.SelectedFeatures {
		i := indices[k]
		weights = append(weights, schema.FeatureWeight{
			Feature:     name,
			Index:       i,
			Coefficient: model.Coefficients[k],
			Mean:        model.ScalerMean[i],
			Scale:       model.ScalerScale[i],
		})
	}

	return schema.ModelInfo{
		Version:    schema.ModelVersion,
		Intercept:  model.Intercept,
		Weights:    weights,
		Accuracies: schema.ModelAccuracies(),
		ChartTitle: schema.ModelChartTitle,
	}
}

// GetFeatureReport returns the importance chart and the full 30-feature catalog.
func GetFeatureReport() schema.FeatureReport {
	model := schema.DefaultModel()
	coefficient := make(map[string]float64, schema.NumSelectedFeatures)
	for k, name := range schema.SelectedFeatures {
		coefficient[name] = model.Coefficients[k]
	}

	catalog := make([]schema.CatalogEntry, 0, schema.NumCanonicalFeatures)
	for i, name := range schema.CanonicalFeatures {
		w, selected := coefficient[name]
		catalog = append(catalog, schema.CatalogEntry{
			Index:       i,
			Feature:     name,
			Column:      schema.ColumnName(name),
			Selected:    selected,
			Coefficient: w,
		})
	}

	return schema.FeatureReport{
		ChartTitle:  schema.FeatureChartTitle,
		Importances: schema.FeatureImportances(),
		Catalog:     catalog,
	}
}

// GetDefaultEntries lists the default values in scoring order, with display text and range band.
func GetDefaultEntries() []schema.DefaultEntry {
	defaults := schema.DefaultMeasurements()
	entries := make([]schema.DefaultEntry, 0, len(defaults))
	for _, name := range schema.SelectedFeatures {
		v, ok := defaults[name]
		if !ok {
			continue
		}
		entries = append(entries, schema.DefaultEntry{
			Feature: name,
			Value:   v,
			Display: schema.FormatMeasurement(name, v),
			Band:    schema.RangeBand(name, v),
		})
	}
	return entries
}
