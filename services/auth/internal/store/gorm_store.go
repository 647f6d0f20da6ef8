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

// NewGormStore opens the database and migrates the users table.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := pgstore.Open(dsn, pgstore.Schema{Models: []any{&UserModel{}}})
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// CreateUser inserts u; the unique email index decides concurrent registrations.
func (s *GormStore) CreateUser(ctx context.Context, u domain.User) error {
	model := userToModel(u)
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return pgstore.TranslateDuplicate(err)
	}
	return nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	return s.getUser(ctx, "email = ?", email)
}

func (s *GormStore) GetUserByID(ctx context.Context, id string) (domain.User, bool, error) {
	return s.getUser(ctx, "id = ?", id)
}

func (s *GormStore) getUser(ctx context.Context, query string, arg string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if pgstore.IsNotFound(err) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, fmt.Errorf("query user: %w", err)
	}
	return userFromModel(model), true, nil
}
