package follows

import (
	"context"

	"github.com/sim-feed/user-service/internal/model"
	"gorm.io/gorm"
)

type Store interface {
	Create(ctx context.Context, follow *model.UserFollow) error
	FindByID(ctx context.Context, id int64) (*model.UserFollow, error)
	Delete(ctx context.Context, follow *model.UserFollow) error
	ListByFollower(ctx context.Context, userID string) ([]model.UserFollow, error)
	ListByUserFollowed(ctx context.Context, userID string) ([]model.UserFollow, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, follow *model.UserFollow) error {
	return s.db.WithContext(ctx).Create(follow).Error
}

func (s *gormStore) FindByID(ctx context.Context, id int64) (*model.UserFollow, error) {
	var follow model.UserFollow
	err := s.db.WithContext(ctx).
		Preload("Follower").
		Preload("UserFollowed").
		Preload("PersonaFollowed").
		First(&follow, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

func (s *gormStore) Delete(ctx context.Context, follow *model.UserFollow) error {
	return s.db.WithContext(ctx).Delete(follow).Error
}

func (s *gormStore) ListByFollower(ctx context.Context, userID string) ([]model.UserFollow, error) {
	var follows []model.UserFollow
	err := s.db.WithContext(ctx).
		Preload("Follower").
		Preload("UserFollowed").
		Preload("PersonaFollowed").
		Where("follower = ?", userID).
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	return follows, nil
}

func (s *gormStore) ListByUserFollowed(ctx context.Context, userID string) ([]model.UserFollow, error) {
	var follows []model.UserFollow
	err := s.db.WithContext(ctx).
		Preload("Follower").
		Preload("UserFollowed").
		Preload("PersonaFollowed").
		Where("user_followed = ?", userID).
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	return follows, nil
}
