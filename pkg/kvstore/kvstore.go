package kvstore

import (
	"context"
	"sync"
)

// Keys under which the finance state is persisted.
const (
	KeyTransactions = "transactions"
	KeyBudgets      = "budgets"
	KeyCurrency     = "currency"
	KeyTheme        = "theme"
	KeyColorTheme   = "colorTheme"
)

// Store reads and writes named string blobs. Values are stored as given, without schema checks.
type Store interface {
	// Get returns the value for key; found is false when the key was never written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// MemoryStore keeps blobs in a map. Contents are lost on exit.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
	// FailWrites makes every Set fail; used to exercise write-failure paths.
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = value
	return nil
}
