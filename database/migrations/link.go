package migrations

import (
	"kartvizit.link/models"

	"gorm.io/gorm"
)

func MigrateLinksTable(db *gorm.DB) error {
	return autoMigrate(db, "links", &models.Link{})
}
