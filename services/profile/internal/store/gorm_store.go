package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// GormStore implements Store on Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database and migrates the profile tables.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := pgstore.Open(dsn, pgstore.Schema{Models: []any{&ProfileModel{}, &ResumeModel{}}})
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) GetProfile(ctx context.Context, userID string) (domain.Profile, bool, error) {
	var model ProfileModel
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if pgstore.IsNotFound(err) {
			return domain.Profile{}, false, nil
		}
		return domain.Profile{}, false, fmt.Errorf("query profile: %w", err)
	}
	return profileFromModel(model), true, nil
}

// UpsertProfile issues INSERT ... ON CONFLICT (user_id) DO UPDATE so that
// concurrent first writes for a user never collide.
func (s *GormStore) UpsertProfile(ctx context.Context, p domain.Profile, columns []string) error {
	model := profileToModel(p)
	updates := append(append([]string(nil), columns...), "updated_at")
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (s *GormStore) CreateResume(ctx context.Context, r domain.Resume) error {
	model := resumeToModel(r)
	return pgstore.TranslateDuplicate(s.db.WithContext(ctx).Create(&model).Error)
}

func (s *GormStore) GetResume(ctx context.Context, id, userID string) (domain.Resume, bool, error) {
	var model ResumeModel
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&model).Error; err != nil {
		if pgstore.IsNotFound(err) {
			return domain.Resume{}, false, nil
		}
		return domain.Resume{}, false, fmt.Errorf("query resume: %w", err)
	}
	return resumeFromModel(model), true, nil
}

func (s *GormStore) UpdateResume(ctx context.Context, r domain.Resume) (bool, error) {
	model := resumeToModel(r)
	res := s.db.WithContext(ctx).Model(&ResumeModel{}).
		Where("id = ? AND user_id = ?", r.ID, r.UserID).
		Updates(map[string]any{
			"title":       model.Title,
			"position":    model.Position,
			"skills":      model.Skills,
			"experience":  model.Experience,
			"education":   model.Education,
			"description": model.Description,
			"updated_at":  model.UpdatedAt,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update resume: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) DeleteResume(ctx context.Context, id, userID string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&ResumeModel{})
	if res.Error != nil {
		return false, fmt.Errorf("delete resume: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
