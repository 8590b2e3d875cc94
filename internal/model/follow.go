package model

import (
	"time"

	"gorm.io/gorm"
)

// UserFollow is a follow edge whose follower is always a registered user and
// whose target is exactly one of another user or a persona.
type UserFollow struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID        string    `gorm:"column:follower;not null;uniqueIndex:uq_user_follows_persona;uniqueIndex:uq_user_follows_user" json:"follower_id"`
	PersonaFollowedID *int64    `gorm:"column:persona_followed;uniqueIndex:uq_user_follows_persona" json:"persona_followed_id,omitempty"`
	UserFollowedID    *string   `gorm:"column:user_followed;uniqueIndex:uq_user_follows_user" json:"user_followed_id,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Follower        *User    `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	PersonaFollowed *Persona `gorm:"foreignKey:PersonaFollowedID" json:"persona_followed,omitempty"`
	UserFollowed    *User    `gorm:"foreignKey:UserFollowedID" json:"user_followed,omitempty"`
}

func (UserFollow) TableName() string { return "user_follows" }

func (f *UserFollow) BeforeSave(tx *gorm.DB) error {
	return exactlyOne(f.UserFollowedID != nil, f.PersonaFollowedID != nil)
}

// PersonaFollow is a persona-to-persona edge. Both sides are always
// personas, so the authorship rule does not apply here.
type PersonaFollow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID int64     `gorm:"column:follower;not null;uniqueIndex:uq_follows_pair" json:"follower_id"`
	FollowedID int64     `gorm:"column:followed;not null;uniqueIndex:uq_follows_pair" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Follower *Persona `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed *Persona `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

func (PersonaFollow) TableName() string { return "follows" }
