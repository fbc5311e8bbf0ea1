package models

import "time"

// RateLimitEvent kayan pencere sayaçlarının kalıcı kaydı.
// Key kullanıcı ve özellik adından oluşur (örn. "42:background").
type RateLimitEvent struct {
	ID         uint      `gorm:"primarykey"`
	Key        string    `gorm:"type:varchar(100);index:idx_rate_key_time;not null"`
	OccurredAt time.Time `gorm:"index:idx_rate_key_time;not null"`
}
