package users

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sim-feed/user-service/internal/apperr"
	"github.com/sim-feed/user-service/internal/model"
	"github.com/sim-feed/user-service/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxBioLength      = 200
	maxUsernameLength = 50
)

// ProfileCache is the slice of the redis cache the service uses for hot
// profile reads. Nil-able: the service runs fine without one.
type ProfileCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	store  Store
	cache  ProfileCache
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewService(store Store, cache ProfileCache, ttl time.Duration, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// UpdateParams carries the whitelisted self-update fields plus the id the
// request body claims to be about.
type UpdateParams struct {
	ID       string
	Username string
	Bio      string
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.cache != nil {
		var cached model.User
		if err := s.cache.Get(ctx, store.UserProfileKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}

	if s.cache != nil {
		// Best effort; a failed cache write must not fail the read.
		if err := s.cache.Set(ctx, store.UserProfileKey(id), user, s.ttl); err != nil {
			s.logger.Warnw("Failed to cache user profile", "id", id, "error", err)
		}
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, userID, requesterID string, params UpdateParams) (*model.User, error) {
	if userID != requesterID {
		return nil, apperr.Unauthorized("Cannot update a user's information that is not owned by the requester")
	}
	if userID != params.ID {
		return nil, apperr.BadRequest("User ID in the request body does not match the ID in the URL")
	}
	if utf8.RuneCountInString(params.Bio) > maxBioLength {
		return nil, apperr.BadRequest("Bio length exceeds maximum allowed length")
	}
	if utf8.RuneCountInString(params.Username) > maxUsernameLength {
		return nil, apperr.BadRequest("Username length must be between 3 and 50 characters")
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}

	user.Username = params.Username
	user.Bio = params.Bio
	if err := s.store.Save(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Username is already taken")
		}
		return nil, err
	}

	s.invalidate(ctx, userID)
	return user, nil
}

// Create provisions a row for a newly signed-up Clerk identity.
func (s *Service) Create(ctx context.Context, id, username string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperr.BadRequest("Username cannot be blank")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, apperr.BadRequest("Username length must be between 3 and 50 characters")
	}

	user := &model.User{ID: id, Username: username}
	if err := s.store.Create(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, err
	}

	s.logger.Infow("User provisioned", "id", truncateID(id))
	return user, nil
}

func (s *Service) Delete(ctx context.Context, userID, requesterID string) error {
	if userID != requesterID {
		return apperr.Unauthorized("Cannot delete a user that is not owned by the requester")
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	if err := s.store.Delete(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, store.UserProfileKey(id)); err != nil {
		s.logger.Warnw("Failed to invalidate user profile cache", "id", id, "error", err)
	}
}

// truncateID keeps identity ids out of the logs beyond a recognizable prefix.
func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "******"
}
