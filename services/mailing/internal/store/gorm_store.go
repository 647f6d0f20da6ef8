package store

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// GormStore implements Store on Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database and migrates the mailing tables.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := pgstore.Open(dsn, pgstore.Schema{Models: []any{&SubscriptionModel{}, &EmailMessageModel{}}})
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) GetSubscription(ctx context.Context, email string) (domain.Subscription, bool, error) {
	var model SubscriptionModel
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if pgstore.IsNotFound(err) {
			return domain.Subscription{}, false, nil
		}
		return domain.Subscription{}, false, fmt.Errorf("query subscription: %w", err)
	}
	return subscriptionFromModel(model), true, nil
}

func (s *GormStore) CreateSubscription(ctx context.Context, sub domain.Subscription) error {
	model := subscriptionToModel(sub)
	return pgstore.TranslateDuplicate(s.db.WithContext(ctx).Create(&model).Error)
}

func (s *GormStore) Resubscribe(ctx context.Context, email string, categories []string, at time.Time) (bool, error) {
	return s.setSubscribed(ctx, s.db.WithContext(ctx).Where("email = ? AND subscribed = ?", email, false), true, categories, at)
}

func (s *GormStore) Unsubscribe(ctx context.Context, email string, categories []string, at time.Time) (bool, error) {
	return s.setSubscribed(ctx, s.db.WithContext(ctx).Where("email = ?", email), false, categories, at)
}

func (s *GormStore) setSubscribed(_ context.Context, q *gorm.DB, subscribed bool, categories []string, at time.Time) (bool, error) {
	res := q.Model(&SubscriptionModel{}).Updates(map[string]any{
		"subscribed": subscribed,
		"categories": pq.StringArray(categories),
		"updated_at": at,
	})
	if res.Error != nil {
		return false, fmt.Errorf("update subscription: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) CreateEmail(ctx context.Context, m domain.EmailMessage) error {
	model := emailToModel(m)
	return pgstore.TranslateDuplicate(s.db.WithContext(ctx).Create(&model).Error)
}

func (s *GormStore) SetEmailStatus(ctx context.Context, id string, status domain.DeliveryStatus, sentAt *time.Time) error {
	err := s.db.WithContext(ctx).Model(&EmailMessageModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "sent_at": sentAt}).Error
	if err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	return nil
}
