package store

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// runMigrations runs all database migrations using gormigrate.
func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "001_users",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&UserRow{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("users")
			},
		},
		{
			ID: "002_ideas",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&IdeaRow{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("ideas")
			},
		},
	})
	return m.Migrate()
}
