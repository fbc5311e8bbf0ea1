package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ILinkRepository link veritabanı işlemleri için arayüz.
type ILinkRepository interface {
	Create(ctx context.Context, link *models.Link) error
	FindByKey(ctx context.Context, key string) (*models.Link, error)
	KeyExists(ctx context.Context, key string) (bool, error)
	SetTarget(ctx context.Context, id, targetID uint) error
	Delete(ctx context.Context, id uint) error
}

// LinkRepository ILinkRepository arayüzünü uygular.
type LinkRepository struct {
	base *BaseRepository[models.Link]
	db   *gorm.DB
}

func NewLinkRepositoryWithDB(db *gorm.DB) ILinkRepository {
	return &LinkRepository{base: NewBaseRepository[models.Link](db), db: db}
}

// Create yeni bir link kaydı oluşturur. Key servis katmanında üretilir.
func (r *LinkRepository) Create(ctx context.Context, link *models.Link) error {
	if link == nil {
		return errors.New("oluşturulacak link nil olamaz")
	}
	if len(link.Key) != models.LinkKeyLength {
		return errors.New("link key uzunluğu geçersiz")
	}
	return r.base.Create(ctx, link)
}

// FindByKey benzersiz anahtar ile link kaydını Type ilişkisiyle bulur.
func (r *LinkRepository) FindByKey(ctx context.Context, key string) (*models.Link, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var link models.Link
	err := getDB(r.db, ctx).Preload("Type").Where("key = ?", key).First(&link).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("LinkRepository.FindByKey: DB hatası", zap.String("key", key), zap.Error(err))
		}
		return nil, notFound(err)
	}
	return &link, nil
}

// KeyExists anahtarın silinmiş kayıtlar dahil kullanılıp kullanılmadığını kontrol eder.
func (r *LinkRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := getDB(r.db, ctx).Unscoped().Model(&models.Link{}).Where("key = ?", key).Count(&count).Error
	if err != nil {
		configslog.Log.Error("LinkRepository.KeyExists: DB hatası", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// SetTarget link'i hedef kayda bağlar.
func (r *LinkRepository) SetTarget(ctx context.Context, id, targetID uint) error {
	result := getDB(r.db, ctx).Model(&models.Link{}).Where("id = ?", id).Update("target_id", targetID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete link'i soft delete ile siler.
func (r *LinkRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

var _ ILinkRepository = (*LinkRepository)(nil)
