package model

import "gorm.io/gorm"

// Migrate creates or updates the schema for every entity. Order matters for
// foreign keys: referenced tables first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Persona{},
		&Post{},
		&Comment{},
		&Like{},
		&UserFollow{},
		&PersonaFollow{},
		&Chat{},
		&ChatMember{},
	)
}
