package migrations

import (
	"kartvizit.link/models"

	"gorm.io/gorm"
)

// MigratePreferencesTables varyant başına tercih tabloları (kart başına tek satır).
func MigratePreferencesTables(db *gorm.DB) error {
	return autoMigrate(db, "name_tag_preferences & qr_tag_preferences & background_preferences",
		&models.NameTagPreference{}, &models.QRTagPreference{}, &models.BackgroundPreference{})
}
