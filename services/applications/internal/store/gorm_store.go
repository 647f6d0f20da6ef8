package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// GormStore implements Store on Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database and migrates the applications table.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := pgstore.Open(dsn, pgstore.Schema{Models: []any{&ApplicationModel{}}})
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateApplication(ctx context.Context, a domain.Application) error {
	model := applicationToModel(a)
	return pgstore.TranslateDuplicate(s.db.WithContext(ctx).Create(&model).Error)
}

func (s *GormStore) GetApplication(ctx context.Context, id string) (domain.Application, bool, error) {
	var model ApplicationModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if pgstore.IsNotFound(err) {
			return domain.Application{}, false, nil
		}
		return domain.Application{}, false, fmt.Errorf("query application: %w", err)
	}
	return applicationFromModel(model), true, nil
}

// Resolve relies on the status predicate so the row lock taken by UPDATE
// serializes competing transitions.
func (s *GormStore) Resolve(ctx context.Context, id string, status domain.ApplicationStatus, comment string, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&ApplicationModel{}).
		Where("id = ? AND status = ?", id, string(domain.ApplicationPending)).
		Updates(map[string]any{
			"status":     string(status),
			"comment":    comment,
			"updated_at": at,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update application: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
