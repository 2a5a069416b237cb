package runlog

import (
	"errors"
	"fmt"
	"io"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/internal/parquet"
)

// ExecuteRunExport writes the run ledger of mgr to a Parquet file.
func ExecuteRunExport(w io.Writer, mgr contract.RunManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetRunStore()
	if store == nil {
		return errors.New("run ledger is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run ledger status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	rows := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(rows), outputFile)

	return nil
}
