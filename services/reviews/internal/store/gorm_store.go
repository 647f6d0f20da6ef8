package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// GormStore implements Store on Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database and migrates the reviews table.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := pgstore.Open(dsn, pgstore.Schema{Models: []any{&ReviewModel{}}})
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateReview(ctx context.Context, r domain.Review) error {
	model := reviewToModel(r)
	return pgstore.TranslateDuplicate(s.db.WithContext(ctx).Create(&model).Error)
}

func (s *GormStore) GetReview(ctx context.Context, id string) (domain.Review, bool, error) {
	var model ReviewModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if pgstore.IsNotFound(err) {
			return domain.Review{}, false, nil
		}
		return domain.Review{}, false, fmt.Errorf("query review: %w", err)
	}
	return reviewFromModel(model), true, nil
}

func (s *GormStore) UpdateReview(ctx context.Context, r domain.Review) (bool, error) {
	res := s.db.WithContext(ctx).Model(&ReviewModel{}).
		Where("id = ? AND author_id = ?", r.ID, r.AuthorID).
		Updates(map[string]any{
			"rating":       r.Rating,
			"comment":      r.Comment,
			"is_anonymous": r.IsAnonymous,
			"updated_at":   r.UpdatedAt,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update review: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
