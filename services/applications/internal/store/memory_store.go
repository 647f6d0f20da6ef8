package store

import (
	"context"
	"sync"
	"time"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// MemoryStore keeps applications in-process.
type MemoryStore struct {
	mu   sync.Mutex
	apps map[string]domain.Application
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{apps: make(map[string]domain.Application)}
}

func (m *MemoryStore) CreateApplication(_ context.Context, a domain.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.apps[a.ID]; exists {
		return pgstore.ErrDuplicate
	}
	m.apps[a.ID] = a
	return nil
}

func (m *MemoryStore) GetApplication(_ context.Context, id string) (domain.Application, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	return a, ok, nil
}

func (m *MemoryStore) Resolve(_ context.Context, id string, status domain.ApplicationStatus, comment string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok || a.Status != domain.ApplicationPending {
		return false, nil
	}
	a.Status = status
	a.Comment = comment
	a.UpdatedAt = at
	m.apps[id] = a
	return true, nil
}
