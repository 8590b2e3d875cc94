package users

import (
	"context"

	"github.com/sim-feed/user-service/internal/model"
	"gorm.io/gorm"
)

// Store is the persistence surface the user service needs. The GORM
// implementation is the real one; tests substitute mocks.
type Store interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, user *model.User) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) Create(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) Save(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *gormStore) Delete(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Delete(user).Error
}
