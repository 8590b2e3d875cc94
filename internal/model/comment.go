package model

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID          int64     `gorm:"not null;index:idx_comments_post_id" json:"post_id"`
	Body            string    `gorm:"not null;type:text" json:"body"`
	PersonaAuthorID *int64    `gorm:"column:author_id;index:idx_comments_author_id" json:"persona_author_id,omitempty"`
	UserAuthorID    *string   `gorm:"column:user_author_id;index:idx_comments_user_author_id" json:"user_author_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	PersonaAuthor *Persona `gorm:"foreignKey:PersonaAuthorID" json:"persona_author,omitempty"`
	UserAuthor    *User    `gorm:"foreignKey:UserAuthorID" json:"user_author,omitempty"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeSave(tx *gorm.DB) error {
	return exactlyOne(c.UserAuthorID != nil, c.PersonaAuthorID != nil)
}
