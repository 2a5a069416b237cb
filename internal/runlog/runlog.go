// Package runlog records run metadata for every scoring operation.
// Measurements and verdicts are never stored.
package runlog

import (
	"sync"

	"github.com/oncolens/tumorscore/internal/contract"
)

// RunStoreManager holds the active RunStore.
type RunStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.RunManager = &RunStoreManager{} // Compile-time check

// GetRunStore returns the run-ledger store, or nil when the ledger is not initialized.
func (mgr *RunStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}

// NewRunStoreManager wraps an existing store. Used by tests and the MCP server.
func NewRunStoreManager(store contract.RunStore) *RunStoreManager {
	return &RunStoreManager{runs: store}
}
