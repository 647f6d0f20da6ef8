package store

import (
	"context"
	"sync"
	"time"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// MemoryStore keeps subscriptions and emails in-process.
type MemoryStore struct {
	mu            sync.Mutex
	subscriptions map[string]domain.Subscription
	emails        map[string]domain.EmailMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subscriptions: make(map[string]domain.Subscription),
		emails:        make(map[string]domain.EmailMessage),
	}
}

func (m *MemoryStore) GetSubscription(_ context.Context, email string) (domain.Subscription, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subscriptions[email]
	return s, ok, nil
}

func (m *MemoryStore) CreateSubscription(_ context.Context, s domain.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.subscriptions[s.Email]; exists {
		return pgstore.ErrDuplicate
	}
	s.Categories = append([]string{}, s.Categories...)
	m.subscriptions[s.Email] = s
	return nil
}

func (m *MemoryStore) Resubscribe(_ context.Context, email string, categories []string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subscriptions[email]
	if !ok || s.Subscribed {
		return false, nil
	}
	m.subscriptions[email] = setSubscribed(s, true, categories, at)
	return true, nil
}

func (m *MemoryStore) Unsubscribe(_ context.Context, email string, categories []string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subscriptions[email]
	if !ok {
		return false, nil
	}
	m.subscriptions[email] = setSubscribed(s, false, categories, at)
	return true, nil
}

func setSubscribed(s domain.Subscription, subscribed bool, categories []string, at time.Time) domain.Subscription {
	s.Subscribed = subscribed
	s.Categories = append([]string{}, categories...)
	s.UpdatedAt = at
	return s
}

func (m *MemoryStore) CreateEmail(_ context.Context, e domain.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.emails[e.ID]; exists {
		return pgstore.ErrDuplicate
	}
	m.emails[e.ID] = e
	return nil
}

func (m *MemoryStore) SetEmailStatus(_ context.Context, id string, status domain.DeliveryStatus, sentAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.emails[id]
	if !ok {
		return nil
	}
	e.Status = status
	e.SentAt = sentAt
	m.emails[id] = e
	return nil
}

// Email returns a stored email message.
func (m *MemoryStore) Email(id string) (domain.EmailMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.emails[id]
	return e, ok
}
