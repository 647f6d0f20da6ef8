package store

import (
	"context"
	"sync"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// MemoryStore keeps users in-process. Used by tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	byEmail map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byEmail[u.Email]; taken {
		return pgstore.ErrDuplicate
	}
	if _, taken := m.users[u.ID]; taken {
		return pgstore.ErrDuplicate
	}
	m.users[u.ID] = u
	m.byEmail[u.Email] = u.ID
	return nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, false, nil
	}
	return m.users[id], true, nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}
