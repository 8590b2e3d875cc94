package model

import "time"

// Persona is an alternate identity that can author content or be followed
// without being a registered account.
type Persona struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:persona_id" json:"persona_id"`
	Bio         string    `gorm:"not null;type:text" json:"bio"`
	Description string    `gorm:"type:text" json:"description"`
	Username    string    `gorm:"size:255" json:"username"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Posts    []Post    `gorm:"foreignKey:PersonaAuthorID" json:"-"`
	Comments []Comment `gorm:"foreignKey:PersonaAuthorID" json:"-"`
	Likes    []Like    `gorm:"foreignKey:PersonaID" json:"-"`
}

func (Persona) TableName() string { return "personas" }
