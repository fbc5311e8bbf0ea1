package seeders

import (
	"context"
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedTypes link hizmet türlerini oluşturur; mevcut olanlar atlanır.
func SeedTypes(ctx context.Context, db *gorm.DB) error {
	typesToSeed := []models.Type{
		{Name: models.TypeNameCard, Description: "Dijital Kartvizit Hizmeti"},
	}

	var createdCount int64
	errorOccurred := false

	configslog.SLog.Info("Hizmet türleri seed işlemi başlıyor...")

	for _, typeToSeed := range typesToSeed {
		var existingType models.Type
		result := db.WithContext(ctx).Where("name = ?", typeToSeed.Name).First(&existingType)

		if result.Error == nil {
			configslog.SLog.Debugf("Hizmet türü '%s' zaten mevcut, oluşturma atlanıyor.", typeToSeed.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Hizmet türü kontrol edilirken veritabanı hatası",
				zap.String("type_name", typeToSeed.Name),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		if err := db.WithContext(ctx).Create(&typeToSeed).Error; err != nil {
			configslog.Log.Error("Hizmet türü oluşturulamadı", zap.String("type_name", typeToSeed.Name), zap.Error(err))
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Hizmet türü '%s' oluşturuldu (ID: %d).", typeToSeed.Name, typeToSeed.ID)
		createdCount++
	}

	if errorOccurred {
		return errors.New("hizmet türleri seed edilirken en az bir hata oluştu")
	}
	if createdCount == 0 {
		configslog.SLog.Info("Tüm hizmet türleri zaten mevcut, yeni ekleme yapılmadı.")
	}
	return nil
}
