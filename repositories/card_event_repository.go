package repositories

import (
	"context"
	"time"

	"kartvizit.link/models"

	"gorm.io/gorm"
)

// KindCount olay türü başına toplam.
type KindCount struct {
	Kind  models.CardEventKind `json:"kind"`
	Total int64                `json:"total"`
}

// ICardEventRepository analitik olay kayıtları.
type ICardEventRepository interface {
	Create(ctx context.Context, event *models.CardEvent) error
	CountByKind(ctx context.Context, cardID uint, since time.Time) ([]KindCount, error)
}

type CardEventRepository struct {
	base *BaseRepository[models.CardEvent]
	db   *gorm.DB
}

func NewCardEventRepositoryWithDB(db *gorm.DB) ICardEventRepository {
	return &CardEventRepository{base: NewBaseRepository[models.CardEvent](db), db: db}
}

func (r *CardEventRepository) Create(ctx context.Context, event *models.CardEvent) error {
	return r.base.Create(ctx, event)
}

// CountByKind since'ten itibaren kartın olaylarını türe göre sayar. since sıfırsa tüm zamanlar.
func (r *CardEventRepository) CountByKind(ctx context.Context, cardID uint, since time.Time) ([]KindCount, error) {
	var out []KindCount
	q := getDB(r.db, ctx).Model(&models.CardEvent{}).
		Select("kind, COUNT(*) AS total").
		Where("card_id = ?", cardID)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since.UTC())
	}
	err := q.Group("kind").Order("kind").Scan(&out).Error
	return out, err
}

var _ ICardEventRepository = (*CardEventRepository)(nil)
