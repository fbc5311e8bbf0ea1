package migrations

import (
	"kartvizit.link/models"

	"gorm.io/gorm"
)

// MigrateCardsTables kart, detay ve ikincil iletişim tabloları.
func MigrateCardsTables(db *gorm.DB) error {
	return autoMigrate(db, "cards & card_details & card_contacts", &models.Card{}, &models.CardDetail{}, &models.CardContact{})
}
