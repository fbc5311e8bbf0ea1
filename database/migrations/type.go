package migrations

import (
	"kartvizit.link/models"

	"gorm.io/gorm"
)

func MigrateTypesTable(db *gorm.DB) error {
	return autoMigrate(db, "types", &models.Type{})
}
