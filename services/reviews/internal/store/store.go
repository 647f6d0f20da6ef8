package store

import (
	"context"

	"jobboard/pkg/domain"
)

// Store persists job reviews. CreateReview returns pgstore.ErrDuplicate when
// the author already reviewed the job.
type Store interface {
	CreateReview(ctx context.Context, r domain.Review) error
	GetReview(ctx context.Context, id string) (domain.Review, bool, error)
	UpdateReview(ctx context.Context, r domain.Review) (bool, error)
}
