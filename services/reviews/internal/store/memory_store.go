package store

import (
	"context"
	"sync"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

type reviewKey struct {
	jobID    string
	authorID string
}

// MemoryStore keeps reviews in-process, enforcing the same uniqueness as the
// database index.
type MemoryStore struct {
	mu       sync.Mutex
	reviews  map[string]domain.Review
	byAuthor map[reviewKey]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reviews:  make(map[string]domain.Review),
		byAuthor: make(map[reviewKey]string),
	}
}

func (m *MemoryStore) CreateReview(_ context.Context, r domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := reviewKey{jobID: r.JobID, authorID: r.AuthorID}
	if _, exists := m.byAuthor[key]; exists {
		return pgstore.ErrDuplicate
	}
	if _, exists := m.reviews[r.ID]; exists {
		return pgstore.ErrDuplicate
	}
	m.reviews[r.ID] = r
	m.byAuthor[key] = r.ID
	return nil
}

func (m *MemoryStore) GetReview(_ context.Context, id string) (domain.Review, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	return r, ok, nil
}

func (m *MemoryStore) UpdateReview(_ context.Context, r domain.Review) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.reviews[r.ID]
	if !ok || current.AuthorID != r.AuthorID {
		return false, nil
	}
	current.Rating = r.Rating
	current.Comment = r.Comment
	current.IsAnonymous = r.IsAnonymous
	current.UpdatedAt = r.UpdatedAt
	m.reviews[r.ID] = current
	return true, nil
}
