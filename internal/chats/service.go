package chats

import (
	"context"
	"errors"
	"strings"

	"github.com/sim-feed/user-service/internal/apperr"
	"github.com/sim-feed/user-service/internal/model"
	"github.com/sim-feed/user-service/internal/store"
	"gorm.io/gorm"
)

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

// NewMember names the joining identity: exactly one of UserID or PersonaID.
type NewMember struct {
	UserID    *string
	PersonaID *int64
}

func (s *Service) Create(ctx context.Context, name, creatorID string) (*model.Chat, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.BadRequest("Chat name cannot be blank")
	}

	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	chat := &model.Chat{
		ChatName:  name,
		CreatorID: creator.ID,
		Members: []model.ChatMember{
			{UserID: &creator.ID},
		},
	}
	if err := s.store.CreateChat(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *Service) AddMember(ctx context.Context, chatID int64, newMember NewMember) (*model.ChatMember, error) {
	if (newMember.UserID == nil) == (newMember.PersonaID == nil) {
		return nil, apperr.BadRequest("Either userId or personaId must be provided, not both.")
	}

	if _, err := s.store.FindChatByID(ctx, chatID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Chat not found")
		}
		return nil, err
	}

	member := &model.ChatMember{ChatID: chatID}
	if newMember.UserID != nil {
		user, err := s.users.GetByID(ctx, *newMember.UserID)
		if err != nil {
			return nil, err
		}
		member.UserID = &user.ID
		member.User = user
	} else {
		persona, err := s.personas.GetByID(ctx, *newMember.PersonaID)
		if err != nil {
			return nil, err
		}
		member.PersonaID = &persona.ID
		member.Persona = persona
	}

	if err := s.store.AddMember(ctx, member); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, apperr.Conflict("User is already a member of this chat")
		}
		return nil, err
	}
	return member, nil
}

// RemoveMember lets the chat creator remove anyone, and a user remove their
// own membership.
func (s *Service) RemoveMember(ctx context.Context, chatID, memberID int64, requesterID string) error {
	chat, err := s.store.FindChatByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Chat not found")
		}
		return err
	}

	member, err := s.store.FindMemberByID(ctx, memberID)
	if err != nil || member.ChatID != chatID {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return apperr.NotFound("Chat member not found")
	}

	isCreator := chat.CreatorID == requesterID
	isSelf := member.UserID != nil && *member.UserID == requesterID
	if !isCreator && !isSelf {
		return apperr.Forbidden("Requester cannot remove this member")
	}

	return s.store.DeleteMember(ctx, member)
}

func (s *Service) ListMembers(ctx context.Context, chatID int64) ([]model.ChatMember, error) {
	if _, err := s.store.FindChatByID(ctx, chatID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Chat not found")
		}
		return nil, err
	}
	return s.store.ListMembers(ctx, chatID)
}
