// Package iocache persists analysis runs to SQL backends.
package iocache

import (
	"sync"

	"github.com/quantfold/keydriver/internal/contract"
)

// RunStoreManager manages the configured RunStore instance.
type RunStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.StoreManager = &RunStoreManager{} // Compile-time check

// GetRunStore returns the run RunStore.
func (mgr *RunStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
