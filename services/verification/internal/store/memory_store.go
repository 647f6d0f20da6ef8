package store

import (
	"context"
	"sync"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// MemoryStore keeps verifications in-process, enforcing the same
// one-active-per-user rule as the partial index.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]domain.Verification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]domain.Verification)}
}

func (m *MemoryStore) CreateVerification(_ context.Context, v domain.Verification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[v.ID]; exists {
		return pgstore.ErrDuplicate
	}
	if v.Status.Active() {
		for _, other := range m.items {
			if other.UserID == v.UserID && other.Status.Active() {
				return pgstore.ErrDuplicate
			}
		}
	}
	m.items[v.ID] = v
	return nil
}

func (m *MemoryStore) GetVerification(_ context.Context, id string) (domain.Verification, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	return v, ok, nil
}

func (m *MemoryStore) DeleteVerification(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) Resolve(_ context.Context, id string, o Outcome) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok || v.Status != domain.VerificationPending {
		return false, nil
	}
	v.Status = o.Status
	v.Reason = o.Reason
	v.PassportValid = o.PassportValid
	v.MatchesRegistry = o.MatchesRegistry
	v.VerifiedAt = o.VerifiedAt
	v.UpdatedAt = o.At
	m.items[id] = v
	return true, nil
}
