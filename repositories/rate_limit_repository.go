package repositories

import (
	"context"
	"time"

	"kartvizit.link/models"
	"kartvizit.link/pkg/ratelimit"

	"gorm.io/gorm"
)

// RateLimitRepository ratelimit.Store'u rate_limit_events tablosu üzerinde uygular.
// Zamanlar UTC yazılır ve karşılaştırılır.
type RateLimitRepository struct {
	db *gorm.DB
}

func NewRateLimitRepositoryWithDB(db *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{db: db}
}

func (r *RateLimitRepository) Window(ctx context.Context, key string, since time.Time) ([]time.Time, error) {
	var events []models.RateLimitEvent
	err := getDB(r.db, ctx).
		Where("key = ? AND occurred_at > ?", key, since.UTC()).
		Order("occurred_at asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(events))
	for i, e := range events {
		out[i] = e.OccurredAt
	}
	return out, nil
}

func (r *RateLimitRepository) Add(ctx context.Context, key string, at time.Time) (ratelimit.EventID, error) {
	event := models.RateLimitEvent{Key: key, OccurredAt: at.UTC()}
	if err := getDB(r.db, ctx).Create(&event).Error; err != nil {
		return 0, err
	}
	return ratelimit.EventID(event.ID), nil
}

func (r *RateLimitRepository) Remove(ctx context.Context, id ratelimit.EventID) error {
	return getDB(r.db, ctx).Delete(&models.RateLimitEvent{}, uint(id)).Error
}

func (r *RateLimitRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	result := getDB(r.db, ctx).Where("occurred_at <= ?", before.UTC()).Delete(&models.RateLimitEvent{})
	return result.RowsAffected, result.Error
}

var _ ratelimit.Store = (*RateLimitRepository)(nil)
