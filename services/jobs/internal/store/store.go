package store

import (
	"context"

	"jobboard/pkg/domain"
)

// Store persists job postings. Mutations are scoped to the owning employer:
// a job owned by someone else behaves exactly like a missing one.
type Store interface {
	CreateJob(ctx context.Context, job domain.Job) error
	GetJob(ctx context.Context, id string) (domain.Job, bool, error)
	GetEmployerJob(ctx context.Context, id, employerID string) (domain.Job, bool, error)
	// UpdateJob overwrites the mutable columns of an owned job and reports
	// whether a row matched.
	UpdateJob(ctx context.Context, job domain.Job) (bool, error)
	DeleteJob(ctx context.Context, id, employerID string) (bool, error)
	// SearchJobs returns one page of matches, newest first, and the total
	// number of matches.
	SearchJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error)
}
