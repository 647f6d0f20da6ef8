package store

import (
	"context"
	"time"

	"jobboard/pkg/domain"
)

// Store persists job applications.
type Store interface {
	CreateApplication(ctx context.Context, a domain.Application) error
	GetApplication(ctx context.Context, id string) (domain.Application, bool, error)
	// Resolve moves a pending application to status and reports whether it
	// was still pending. Of two concurrent calls at most one returns true.
	Resolve(ctx context.Context, id string, status domain.ApplicationStatus, comment string, at time.Time) (bool, error)
}
