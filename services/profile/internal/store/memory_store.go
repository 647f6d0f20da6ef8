package store

import (
	"context"
	"sync"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// MemoryStore keeps profiles and resumes in-process.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	resumes  map[string]domain.Resume
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]domain.Profile),
		resumes:  make(map[string]domain.Resume),
	}
}

func (m *MemoryStore) GetProfile(_ context.Context, userID string) (domain.Profile, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	return p, ok, nil
}

func (m *MemoryStore) UpsertProfile(_ context.Context, p domain.Profile, columns []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.profiles[p.UserID]
	if !ok {
		m.profiles[p.UserID] = p
		return nil
	}
	for _, col := range columns {
		switch col {
		case "email":
			current.Email = p.Email
		case "phone_number":
			current.PhoneNumber = p.PhoneNumber
		case "passport_series":
			current.Passport.Series = p.Passport.Series
		case "passport_number":
			current.Passport.Number = p.Passport.Number
		case "passport_issued_by":
			current.Passport.IssuedBy = p.Passport.IssuedBy
		case "passport_issued_date":
			current.Passport.IssuedDate = p.Passport.IssuedDate
		}
	}
	current.UpdatedAt = p.UpdatedAt
	m.profiles[p.UserID] = current
	return nil
}

func (m *MemoryStore) CreateResume(_ context.Context, r domain.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.resumes[r.ID]; exists {
		return pgstore.ErrDuplicate
	}
	m.resumes[r.ID] = cloneResume(r)
	return nil
}

func (m *MemoryStore) GetResume(_ context.Context, id, userID string) (domain.Resume, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok || r.UserID != userID {
		return domain.Resume{}, false, nil
	}
	return cloneResume(r), true, nil
}

func (m *MemoryStore) UpdateResume(_ context.Context, r domain.Resume) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.resumes[r.ID]
	if !ok || current.UserID != r.UserID {
		return false, nil
	}
	r.CreatedAt = current.CreatedAt
	m.resumes[r.ID] = cloneResume(r)
	return true, nil
}

func (m *MemoryStore) DeleteResume(_ context.Context, id, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok || r.UserID != userID {
		return false, nil
	}
	delete(m.resumes, id)
	return true, nil
}

func cloneResume(r domain.Resume) domain.Resume {
	if r.Skills != nil {
		r.Skills = append([]string{}, r.Skills...)
	}
	if r.Experience != nil {
		r.Experience = append([]domain.Experience{}, r.Experience...)
	}
	if r.Education != nil {
		r.Education = append([]domain.Education{}, r.Education...)
	}
	return r
}
