package model

import "time"

// User is a registered account. The primary key is the Clerk identity id,
// so rows are provisioned with the id the auth layer hands us rather than a
// generated one.
type User struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:255" json:"username"`
	Bio       string    `gorm:"size:250" json:"bio"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Posts     []Post       `gorm:"foreignKey:UserAuthorID" json:"-"`
	Comments  []Comment    `gorm:"foreignKey:UserAuthorID" json:"-"`
	Likes     []Like       `gorm:"foreignKey:UserID" json:"-"`
	Following []UserFollow `gorm:"foreignKey:FollowerID" json:"-"`
	Followers []UserFollow `gorm:"foreignKey:UserFollowedID" json:"-"`
}

func (User) TableName() string { return "users" }
