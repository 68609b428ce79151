package history

import (
	"fmt"
	"sync"

	"github.com/huangsam/buildpulse/internal/contract"
	"github.com/huangsam/buildpulse/schema"
)

// Global store instance for main logic.
var (
	activeStore contract.HistoryStore
	initOnce    sync.Once
	closeOnce   sync.Once
)

// InitStore initializes the global history store. An empty backend
// disables history tracking entirely.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			return
		}
		store, err := NewStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize history store: %w", err)
			return
		}
		activeStore = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// ActiveStore returns the global history store, or nil when tracking is
// disabled or not yet initialized.
func ActiveStore() contract.HistoryStore {
	return activeStore
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		if activeStore != nil {
			_ = activeStore.Close()
		}
	})
}
