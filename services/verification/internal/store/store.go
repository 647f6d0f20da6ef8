package store

import (
	"context"
	"time"

	"jobboard/pkg/domain"
)

// Outcome is the final state written when a pending verification resolves.
type Outcome struct {
	Status          domain.VerificationStatus
	Reason          string
	PassportValid   bool
	MatchesRegistry bool
	VerifiedAt      *time.Time
	At              time.Time
}

// Store persists passport verifications. CreateVerification returns
// pgstore.ErrDuplicate when the user already has an active verification.
type Store interface {
	CreateVerification(ctx context.Context, v domain.Verification) error
	GetVerification(ctx context.Context, id string) (domain.Verification, bool, error)
	DeleteVerification(ctx context.Context, id string) error
	// Resolve applies o to a still-pending verification and reports whether
	// it was pending.
	Resolve(ctx context.Context, id string, o Outcome) (bool, error)
}
