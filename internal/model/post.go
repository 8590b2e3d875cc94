package model

import (
	"time"

	"gorm.io/gorm"
)

// Post belongs to exactly one author: a user or a persona. Comments and
// likes are owned by the post and removed with it.
type Post struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"not null;size:255" json:"title"`
	Body            string    `gorm:"not null;type:text" json:"body"`
	PersonaAuthorID *int64    `gorm:"column:author;index:idx_posts_author" json:"persona_author_id,omitempty"`
	UserAuthorID    *string   `gorm:"column:user_author;index:idx_posts_user_author" json:"user_author_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	PersonaAuthor *Persona `gorm:"foreignKey:PersonaAuthorID" json:"persona_author,omitempty"`
	UserAuthor    *User    `gorm:"foreignKey:UserAuthorID" json:"user_author,omitempty"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeSave(tx *gorm.DB) error {
	return exactlyOne(p.UserAuthorID != nil, p.PersonaAuthorID != nil)
}
