package migrations

import (
	"kartvizit.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// autoMigrate verilen modellerin tablolarını oluşturur/günceller ve sonucu loglar.
func autoMigrate(db *gorm.DB, tables string, models ...any) error {
	configslog.SLog.Infof("Migrating %s tables...", tables)
	if err := db.AutoMigrate(models...); err != nil {
		configslog.Log.Error("Failed to migrate tables", zap.String("tables", tables), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("%s tables migrated successfully", tables)
	return nil
}
