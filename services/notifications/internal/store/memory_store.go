package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// MemoryStore keeps devices and notifications in-process.
type MemoryStore struct {
	mu            sync.Mutex
	devices       map[string]domain.Device
	notifications map[string]domain.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		devices:       make(map[string]domain.Device),
		notifications: make(map[string]domain.Notification),
	}
}

func (m *MemoryStore) CreateDevice(_ context.Context, d domain.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.devices[d.DeviceID]; exists {
		return pgstore.ErrDuplicate
	}
	m.devices[d.DeviceID] = d
	return nil
}

func (m *MemoryStore) GetDevice(_ context.Context, deviceID string) (domain.Device, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.devices[deviceID]
	return d, ok, nil
}

func (m *MemoryStore) SetPushEnabled(_ context.Context, deviceID, userID string, enabled bool, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.devices[deviceID]
	if !ok || d.UserID != userID {
		return false, nil
	}
	d.PushEnabled = enabled
	d.UpdatedAt = at
	m.devices[deviceID] = d
	return true, nil
}

func (m *MemoryStore) ListEnabledDevices(_ context.Context, userID string) ([]domain.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Device
	for _, d := range m.devices {
		if d.UserID == userID && d.PushEnabled {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) CreateNotification(_ context.Context, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.notifications[n.ID]; exists {
		return pgstore.ErrDuplicate
	}
	m.notifications[n.ID] = n
	return nil
}

func (m *MemoryStore) SetNotificationStatus(_ context.Context, id string, status domain.DeliveryStatus, sentAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return nil
	}
	n.Status = status
	n.SentAt = sentAt
	m.notifications[id] = n
	return nil
}

// Notification returns a stored notification.
func (m *MemoryStore) Notification(id string) (domain.Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	return n, ok
}
