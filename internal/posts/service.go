package posts

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sim-feed/user-service/internal/apperr"
	"github.com/sim-feed/user-service/internal/model"
	"github.com/sim-feed/user-service/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxTitleLength = 100
	maxBodyLength  = 1000
)

// UserResolver resolves a requester id to a registered user. Satisfied by
// the users service.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type Service struct {
	store  Store
	users  UserResolver
	logger *zap.SugaredLogger
}

func NewService(store Store, users UserResolver, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:  store,
		users:  users,
		logger: logger,
	}
}

type NewPost struct {
	Title string
	Body  string
}

func (s *Service) Create(ctx context.Context, newPost NewPost, authorID string) (*model.Post, error) {
	if strings.TrimSpace(newPost.Title) == "" {
		return nil, apperr.BadRequest("Title cannot be blank")
	}
	if strings.TrimSpace(newPost.Body) == "" {
		return nil, apperr.BadRequest("Body cannot be blank")
	}
	if utf8.RuneCountInString(newPost.Title) > maxTitleLength {
		return nil, apperr.BadRequest("Title cannot be longer than 100 characters")
	}
	if utf8.RuneCountInString(newPost.Body) > maxBodyLength {
		return nil, apperr.BadRequest("Body cannot be longer than 1000 characters")
	}

	user, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:        newPost.Title,
		Body:         newPost.Body,
		UserAuthorID: &user.ID,
		UserAuthor:   user,
	}
	if err := s.store.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Infow("New post created", "author", truncateID(authorID), "post_id", post.ID)
	return post, nil
}

func (s *Service) Delete(ctx context.Context, postID int64, requesterID string) error {
	post, err := s.store.FindByIDAndUserAuthor(ctx, postID, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Unauthorized("User does not own this post or post not found")
		}
		return err
	}
	return s.store.Delete(ctx, post)
}

func (s *Service) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	post, err := s.store.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, err
	}
	return post, nil
}

func (s *Service) ListByAuthor(ctx context.Context, userID string) ([]model.Post, error) {
	return s.store.ListByUserAuthor(ctx, userID)
}

func (s *Service) AddComment(ctx context.Context, postID int64, requesterID, body string) (*model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperr.BadRequest("Body cannot be blank")
	}

	if _, err := s.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:       postID,
		Body:         body,
		UserAuthorID: &user.ID,
		UserAuthor:   user,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) AddLike(ctx context.Context, postID int64, requesterID string) (*model.Like, error) {
	if _, err := s.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	like := &model.Like{
		PostID: postID,
		UserID: &user.ID,
		User:   user,
	}
	if err := s.store.CreateLike(ctx, like); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Post already liked")
		}
		return nil, err
	}
	return like, nil
}

func (s *Service) RemoveLike(ctx context.Context, postID int64, requesterID string) error {
	removed, err := s.store.DeleteLikeByPostAndUser(ctx, postID, requesterID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperr.NotFound("Like not found")
	}
	return nil
}

func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "******"
}
