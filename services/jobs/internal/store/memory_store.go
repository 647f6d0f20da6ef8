package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// MemoryStore keeps jobs in-process.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]domain.Job)}
}

func (m *MemoryStore) CreateJob(_ context.Context, job domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.jobs[job.ID]; exists {
		return pgstore.ErrDuplicate
	}
	m.jobs[job.ID] = cloneJob(job)
	return nil
}

func (m *MemoryStore) GetJob(_ context.Context, id string) (domain.Job, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	return cloneJob(job), ok, nil
}

func (m *MemoryStore) GetEmployerJob(_ context.Context, id, employerID string) (domain.Job, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok || job.EmployerID != employerID {
		return domain.Job{}, false, nil
	}
	return cloneJob(job), true, nil
}

func (m *MemoryStore) UpdateJob(_ context.Context, job domain.Job) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.jobs[job.ID]
	if !ok || current.EmployerID != job.EmployerID {
		return false, nil
	}
	job.PostedAt = current.PostedAt
	m.jobs[job.ID] = cloneJob(job)
	return true, nil
}

func (m *MemoryStore) DeleteJob(_ context.Context, id, employerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok || job.EmployerID != employerID {
		return false, nil
	}
	delete(m.jobs, id)
	return true, nil
}

func (m *MemoryStore) SearchJobs(_ context.Context, f domain.JobFilter) ([]domain.Job, int64, error) {
	m.mu.RLock()
	matches := make([]domain.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if matchesFilter(job, f) {
			matches = append(matches, cloneJob(job))
		}
	}
	m.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].PostedAt.Equal(matches[j].PostedAt) {
			return matches[i].PostedAt.After(matches[j].PostedAt)
		}
		return matches[i].ID < matches[j].ID
	})
	total := int64(len(matches))
	start := f.Offset()
	if start < 0 || start >= len(matches) {
		return []domain.Job{}, total, nil
	}
	end := len(matches)
	if f.Limit > 0 && f.Limit < end-start {
		end = start + f.Limit
	}
	return matches[start:end], total, nil
}

func matchesFilter(job domain.Job, f domain.JobFilter) bool {
	if f.Query != "" && !containsFold(job.Title, f.Query) && !containsFold(job.Description, f.Query) {
		return false
	}
	if f.Location != "" && !containsFold(job.Location, f.Location) {
		return false
	}
	if f.EmploymentType != "" && job.EmploymentType != f.EmploymentType {
		return false
	}
	if f.SalaryFrom != nil && job.Salary < *f.SalaryFrom {
		return false
	}
	if f.SalaryTo != nil && job.Salary > *f.SalaryTo {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func cloneJob(j domain.Job) domain.Job {
	if j.Requirements != nil {
		j.Requirements = append([]string(nil), j.Requirements...)
	}
	return j
}
