package core

import (
	"fmt"
	"path/filepath"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"
)

// logPredictHeader prints a concise, 2-line header before a single prediction.
func logPredictHeader(cfg *contract.Config, m schema.Measurements) {
	used := 0
	for name := range m {
		if schema.IsSelected(name) {
			used++
		}
	}
	origin := "flags"
	if cfg.InputFile != "" {
		origin = filepath.Base(cfg.InputFile)
	}
	if cfg.UseEmojis {
		fmt.Printf("🔬 Sample: %s (Model: %s)\n", origin, schema.ModelVersion)
		fmt.Printf("📏 Features: %d supplied, %d of %d used by the model\n", len(m), used, schema.NumSelectedFeatures)
	} else {
		fmt.Printf("Sample: %s (Model: %s)\n", origin, schema.ModelVersion)
		fmt.Printf("Features: %d supplied, %d of %d used by the model\n", len(m), used, schema.NumSelectedFeatures)
	}
	if cfg.Delay > 0 {
		if cfg.UseEmojis {
			fmt.Println("⏳ Analyzing measurements...")
		} else {
			fmt.Println("Analyzing measurements...")
		}
	}
}

// logBatchHeader prints a header before scoring a batch.
func logBatchHeader(cfg *contract.Config, count int) {
	origin := filepath.Base(cfg.InputFile)
	if cfg.SourceTable != "" {
		origin = fmt.Sprintf("%s table %s", cfg.SourceBackend, cfg.SourceTable)
	}
	if cfg.UseEmojis {
		fmt.Printf("🔬 Batch: %s (Model: %s)\n", origin, schema.ModelVersion)
		fmt.Printf("🧮 Scoring %d samples with %d workers\n", count, cfg.Workers)
	} else {
		fmt.Printf("Batch: %s (Model: %s)\n", origin, schema.ModelVersion)
		fmt.Printf("Scoring %d samples with %d workers\n", count, cfg.Workers)
	}
}

// logWatchHeader prints a header when watch mode starts.
func logWatchHeader(cfg *contract.Config) {
	if cfg.UseEmojis {
		fmt.Printf("👀 Watching %s for changes (Ctrl+C to stop)\n", cfg.InputFile)
	} else {
		fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", cfg.InputFile)
	}
}
