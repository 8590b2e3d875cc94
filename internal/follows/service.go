package follows

import (
	"context"
	"errors"

	"github.com/sim-feed/user-service/internal/apperr"
	"github.com/sim-feed/user-service/internal/model"
	"github.com/sim-feed/user-service/internal/store"
	"gorm.io/gorm"
)

// UserResolver and PersonaResolver resolve follow targets. Satisfied by the
// users and personas services.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type PersonaResolver interface {
	GetByID(ctx context.Context, id int64) (*model.Persona, error)
}

type Service struct {
	store    Store
	users    UserResolver
	personas PersonaResolver
}

func NewService(store Store, users UserResolver, personas PersonaResolver) *Service {
	return &Service{
		store:    store,
		users:    users,
		personas: personas,
	}
}

// NewFollow names the follow target: exactly one of UserID or PersonaID.
type NewFollow struct {
	UserID    *string
	PersonaID *int64
}

func (s *Service) Follow(ctx context.Context, newFollow NewFollow, requesterID string) (*model.UserFollow, error) {
	if newFollow.UserID != nil && *newFollow.UserID == requesterID {
		return nil, apperr.BadRequest("Requester cannot follow themselves.")
	}
	if (newFollow.UserID == nil) == (newFollow.PersonaID == nil) {
		return nil, apperr.BadRequest("Either userId or personaId must be provided, not both.")
	}

	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	follow := &model.UserFollow{
		FollowerID: requester.ID,
		Follower:   requester,
	}
	if newFollow.UserID != nil {
		target, err := s.users.GetByID(ctx, *newFollow.UserID)
		if err != nil {
			return nil, err
		}
		follow.UserFollowedID = &target.ID
		follow.UserFollowed = target
	} else {
		target, err := s.personas.GetByID(ctx, *newFollow.PersonaID)
		if err != nil {
			return nil, err
		}
		follow.PersonaFollowedID = &target.ID
		follow.PersonaFollowed = target
	}

	if err := s.store.Create(ctx, follow); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Requester already follows this target")
		}
		return nil, err
	}
	return follow, nil
}

func (s *Service) Delete(ctx context.Context, followID int64, requesterID string) error {
	follow, err := s.store.FindByID(ctx, followID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Follow not found")
		}
		return err
	}
	if follow.FollowerID != requesterID {
		return apperr.Forbidden("Requester is not the follower")
	}
	return s.store.Delete(ctx, follow)
}

// ListFollows returns the edges where the user is the follower.
func (s *Service) ListFollows(ctx context.Context, userID string) ([]model.UserFollow, error) {
	return s.store.ListByFollower(ctx, userID)
}

// ListFollowers returns the edges where the user is the target.
func (s *Service) ListFollowers(ctx context.Context, userID string) ([]model.UserFollow, error) {
	return s.store.ListByUserFollowed(ctx, userID)
}
