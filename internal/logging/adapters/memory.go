package adapters

import (
	"sync"

	"docsense/internal/logging/types"
)

// MemoryAdapter keeps entries in memory; used by tests
type MemoryAdapter struct {
	name    string
	mu      sync.Mutex
	entries []types.LogEntry
}

func NewMemoryAdapter(name string) *MemoryAdapter {
	return &MemoryAdapter{name: name}
}

func (a *MemoryAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, *entry)
	return nil
}

// Entries returns a copy of everything written so far
func (a *MemoryAdapter) Entries() []types.LogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]types.LogEntry(nil), a.entries...)
}

func (a *MemoryAdapter) Close() error { return nil }

func (a *MemoryAdapter) Health() error { return nil }

func (a *MemoryAdapter) Name() string { return a.name }
