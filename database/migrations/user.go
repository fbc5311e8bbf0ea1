package migrations

import (
	"kartvizit.link/models"

	"gorm.io/gorm"
)

func MigrateUsersTable(db *gorm.DB) error {
	return autoMigrate(db, "users", &models.User{})
}
