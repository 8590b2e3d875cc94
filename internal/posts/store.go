package posts

import (
	"context"

	"github.com/sim-feed/user-service/internal/model"
	"gorm.io/gorm"
)

type Store interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindByIDAndUserAuthor(ctx context.Context, id int64, userID string) (*model.Post, error)
	Delete(ctx context.Context, post *model.Post) error
	ListByUserAuthor(ctx context.Context, userID string) ([]model.Post, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLikeByPostAndUser(ctx context.Context, postID int64, userID string) (int64, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *gormStore) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("UserAuthor").
		Preload("PersonaAuthor").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *gormStore) FindByIDAndUserAuthor(ctx context.Context, id int64, userID string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		First(&post, "id = ? AND user_author = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *gormStore) Delete(ctx context.Context, post *model.Post) error {
	// Comments and likes go with the post via the FK cascade.
	return s.db.WithContext(ctx).Delete(post).Error
}

func (s *gormStore) ListByUserAuthor(ctx context.Context, userID string) ([]model.Post, error) {
	var posts []model.Post
	err := s.db.WithContext(ctx).
		Preload("UserAuthor").
		Where("user_author = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *gormStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *gormStore) CreateLike(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *gormStore) DeleteLikeByPostAndUser(ctx context.Context, postID int64, userID string) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}
