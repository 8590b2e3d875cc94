package model

import (
	"time"

	"gorm.io/gorm"
)

// Like records a single reaction on a post. The unique pairs keep a user or
// persona from liking the same post twice; concurrent duplicates surface as
// a unique-constraint violation, not a hook error.
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int64     `gorm:"not null;uniqueIndex:uq_likes_post_persona;uniqueIndex:uq_likes_post_user" json:"post_id"`
	PersonaID *int64    `gorm:"column:persona_id;uniqueIndex:uq_likes_post_persona" json:"persona_id,omitempty"`
	UserID    *string   `gorm:"column:user_id;uniqueIndex:uq_likes_post_user" json:"user_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Persona *Persona `gorm:"foreignKey:PersonaID" json:"persona,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Like) TableName() string { return "likes" }

func (l *Like) BeforeSave(tx *gorm.DB) error {
	return exactlyOne(l.UserID != nil, l.PersonaID != nil)
}
