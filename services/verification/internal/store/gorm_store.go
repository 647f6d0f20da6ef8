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

// NewGormStore opens the database, migrates the verifications table and
// creates the active-verification index.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := pgstore.Open(dsn, pgstore.Schema{
		Models:     []any{&VerificationModel{}},
		Statements: []string{activeIndex},
	})
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateVerification(ctx context.Context, v domain.Verification) error {
	model := verificationToModel(v)
	return pgstore.TranslateDuplicate(s.db.WithContext(ctx).Create(&model).Error)
}

func (s *GormStore) GetVerification(ctx context.Context, id string) (domain.Verification, bool, error) {
	var model VerificationModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if pgstore.IsNotFound(err) {
			return domain.Verification{}, false, nil
		}
		return domain.Verification{}, false, fmt.Errorf("query verification: %w", err)
	}
	return verificationFromModel(model), true, nil
}

func (s *GormStore) DeleteVerification(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&VerificationModel{}).Error; err != nil {
		return fmt.Errorf("delete verification: %w", err)
	}
	return nil
}

func (s *GormStore) Resolve(ctx context.Context, id string, o Outcome) (bool, error) {
	res := s.db.WithContext(ctx).Model(&VerificationModel{}).
		Where("id = ? AND status = ?", id, string(domain.VerificationPending)).
		Updates(map[string]any{
			"status":           string(o.Status),
			"reason":           o.Reason,
			"passport_valid":   o.PassportValid,
			"matches_registry": o.MatchesRegistry,
			"verified_at":      o.VerifiedAt,
			"updated_at":       o.At,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update verification: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
