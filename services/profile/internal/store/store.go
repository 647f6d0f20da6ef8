package store

import (
	"context"

	"jobboard/pkg/domain"
)

// Profile column groups written by the partial upserts.
var (
	PassportColumns = []string{"passport_series", "passport_number", "passport_issued_by", "passport_issued_date"}
	EmailColumns    = []string{"email"}
	PhoneColumns    = []string{"phone_number"}
)

// Store persists profiles and resumes.
type Store interface {
	GetProfile(ctx context.Context, userID string) (domain.Profile, bool, error)
	// UpsertProfile inserts p or, when a row for p.UserID exists, overwrites
	// only columns (plus updated_at).
	UpsertProfile(ctx context.Context, p domain.Profile, columns []string) error

	CreateResume(ctx context.Context, r domain.Resume) error
	GetResume(ctx context.Context, id, userID string) (domain.Resume, bool, error)
	UpdateResume(ctx context.Context, r domain.Resume) (bool, error)
	DeleteResume(ctx context.Context, id, userID string) (bool, error)
}
