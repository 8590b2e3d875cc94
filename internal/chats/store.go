package chats

import (
	"context"

	"github.com/sim-feed/user-service/internal/model"
	"gorm.io/gorm"
)

type Store interface {
	CreateChat(ctx context.Context, chat *model.Chat) error
	FindChatByID(ctx context.Context, id int64) (*model.Chat, error)
	AddMember(ctx context.Context, member *model.ChatMember) error
	FindMemberByID(ctx context.Context, id int64) (*model.ChatMember, error)
	DeleteMember(ctx context.Context, member *model.ChatMember) error
	ListMembers(ctx context.Context, chatID int64) ([]model.ChatMember, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateChat(ctx context.Context, chat *model.Chat) error {
	// Creates the chat and any seeded members in one transaction.
	return s.db.WithContext(ctx).Create(chat).Error
}

func (s *gormStore) FindChatByID(ctx context.Context, id int64) (*model.Chat, error) {
	var chat model.Chat
	if err := s.db.WithContext(ctx).First(&chat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *gormStore) AddMember(ctx context.Context, member *model.ChatMember) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *gormStore) FindMemberByID(ctx context.Context, id int64) (*model.ChatMember, error) {
	var member model.ChatMember
	if err := s.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *gormStore) DeleteMember(ctx context.Context, member *model.ChatMember) error {
	return s.db.WithContext(ctx).Delete(member).Error
}

func (s *gormStore) ListMembers(ctx context.Context, chatID int64) ([]model.ChatMember, error) {
	var members []model.ChatMember
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Persona").
		Where("chat_id = ?", chatID).
		Order("joined_at").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
