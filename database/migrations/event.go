package migrations

import (
	"kartvizit.link/models"

	"gorm.io/gorm"
)

// MigrateEventsTables sınırlayıcı olay günlüğü ve kart istatistik olayları.
func MigrateEventsTables(db *gorm.DB) error {
	return autoMigrate(db, "rate_limit_events & card_events", &models.RateLimitEvent{}, &models.CardEvent{})
}
