package store

import (
	"context"

	"jobboard/pkg/domain"
)

// Store persists users. CreateUser returns pgstore.ErrDuplicate when the
// email is taken.
type Store interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByEmail(ctx context.Context, email string) (domain.User, bool, error)
	GetUserByID(ctx context.Context, id string) (domain.User, bool, error)
}
