package store

import (
	"context"
	"time"

	"jobboard/pkg/domain"
)

// Store persists mailing-list subscriptions and outbound emails.
type Store interface {
	GetSubscription(ctx context.Context, email string) (domain.Subscription, bool, error)
	// CreateSubscription returns pgstore.ErrDuplicate when email is taken.
	CreateSubscription(ctx context.Context, s domain.Subscription) error
	// Resubscribe flips an unsubscribed row back on and reports whether one
	// matched.
	Resubscribe(ctx context.Context, email string, categories []string, at time.Time) (bool, error)
	Unsubscribe(ctx context.Context, email string, categories []string, at time.Time) (bool, error)

	CreateEmail(ctx context.Context, m domain.EmailMessage) error
	SetEmailStatus(ctx context.Context, id string, status domain.DeliveryStatus, sentAt *time.Time) error
}
