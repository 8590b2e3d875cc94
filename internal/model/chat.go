package model

import (
	"time"

	"gorm.io/gorm"
)

type Chat struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatName  string    `gorm:"column:chat_name;not null;size:255" json:"chat_name"`
	CreatorID string    `gorm:"column:creator_id;not null;index:idx_chats_creator_id" json:"creator_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Members []ChatMember `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

func (Chat) TableName() string { return "chats" }

// ChatMember ties a chat to exactly one of a user or a persona. The unique
// (chat, user) pair stops double-joins under concurrent requests.
type ChatMember struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID    int64     `gorm:"not null;uniqueIndex:uq_chat_members_chat_user" json:"chat_id"`
	UserID    *string   `gorm:"column:user_id;uniqueIndex:uq_chat_members_chat_user" json:"user_id,omitempty"`
	PersonaID *int64    `gorm:"column:persona_id" json:"persona_id,omitempty"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Persona *Persona `gorm:"foreignKey:PersonaID" json:"persona,omitempty"`
}

func (ChatMember) TableName() string { return "chat_members" }

func (m *ChatMember) BeforeSave(tx *gorm.DB) error {
	return exactlyOne(m.UserID != nil, m.PersonaID != nil)
}
