// Package histstore persists extracted downtime events in a relational
// store, keyed by shift date, and answers the calendar queries behind the
// history views.
package histstore

import (
	"sync"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

// Manager guards access to the process-wide history store.
type Manager struct {
	mu    sync.RWMutex
	store contract.HistoryStore
}

var manager = &Manager{}

// Init opens the configured backend and installs it as the process-wide
// store. Call once during command setup.
func Init(backend schema.DatabaseBackend, connStr string) error {
	store, err := NewHistoryStore(backend, connStr)
	if err != nil {
		return err
	}
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.store != nil {
		_ = manager.store.Close()
	}
	manager.store = store
	return nil
}

// Get returns the active store. Before Init it returns a disabled store, so
// callers never need a nil check.
func Get() contract.HistoryStore {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	if manager.store == nil {
		return &HistoryStoreImpl{backend: schema.NoneBackend}
	}
	return manager.store
}

// Shutdown closes the active store, if any.
func Shutdown() {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.store != nil {
		_ = manager.store.Close()
		manager.store = nil
	}
}
