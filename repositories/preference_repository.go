package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PreferenceRow tercih tablolarından biri.
type PreferenceRow interface {
	models.NameTagPreference | models.QRTagPreference | models.BackgroundPreference
}

// IPreferenceRepository kart başına tek satırlık tercih tablosu işlemleri.
type IPreferenceRepository[T PreferenceRow] interface {
	FindByCardID(ctx context.Context, cardID uint) (*T, error)
	Save(ctx context.Context, cardID uint, row *T) (*T, error)
}

// PreferenceRepository (kart, varyant) başına tek satırı yönetir.
type PreferenceRepository[T PreferenceRow] struct {
	db *gorm.DB
}

func NewPreferenceRepositoryWithDB[T PreferenceRow](db *gorm.DB) IPreferenceRepository[T] {
	return &PreferenceRepository[T]{db: db}
}

func (r *PreferenceRepository[T]) FindByCardID(ctx context.Context, cardID uint) (*T, error) {
	var row T
	if err := getDB(r.db, ctx).Where("card_id = ?", cardID).First(&row).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("PreferenceRepository.FindByCardID: DB hatası", zap.Uint("card_id", cardID), zap.Error(err))
		}
		return nil, notFound(err)
	}
	return &row, nil
}

// Save ilk kayıtta satırı oluşturur, sonrakilerde tüm tercih sütunlarını günceller.
// Kimlik ve oluşturma alanları korunur; updated_at GORM tarafından yenilenir.
func (r *PreferenceRepository[T]) Save(ctx context.Context, cardID uint, row *T) (*T, error) {
	if row == nil {
		return nil, errors.New("kaydedilecek tercih nil olamaz")
	}
	err := getDB(r.db, ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(new(T)).Where("card_id = ?", cardID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return tx.Create(row).Error
		}
		err := tx.Model(new(T)).Where("card_id = ?", cardID).
			Select("*").
			Omit("id", "card_id", "created_at", "created_by", "updated_by", "deleted_at", "deleted_by").
			Updates(row).Error
		if err != nil {
			return err
		}
		if userID, ok := models.UserIDFromContext(ctx); ok {
			return tx.Model(new(T)).Where("card_id = ?", cardID).UpdateColumn("updated_by", userID).Error
		}
		return nil
	})
	if err != nil {
		configslog.Log.Error("PreferenceRepository.Save: DB hatası", zap.Uint("card_id", cardID), zap.Error(err))
		return nil, err
	}
	return r.FindByCardID(ctx, cardID)
}

var (
	_ IPreferenceRepository[models.NameTagPreference]    = (*PreferenceRepository[models.NameTagPreference])(nil)
	_ IPreferenceRepository[models.QRTagPreference]      = (*PreferenceRepository[models.QRTagPreference])(nil)
	_ IPreferenceRepository[models.BackgroundPreference] = (*PreferenceRepository[models.BackgroundPreference])(nil)
)
