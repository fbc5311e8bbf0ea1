package database

import (
	"context"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/database/migrations"
	"kartvizit.link/database/seeders"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyonları ve seeder'ları tek bir transaction içinde çalıştırır.
// Herhangi bir adım başarısız olursa hiçbir değişiklik kalıcı olmaz.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")
	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
		}

		if seed {
			configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
			if err := CheckAndRunSeeders(tx); err != nil {
				configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
		}
		return nil
	})
	if err != nil {
		configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alındı.")
		return err
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

// RunMigrationsInOrder tabloları bağımlılık sırasına göre oluşturur.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"User", migrations.MigrateUsersTable},
		{"Type", migrations.MigrateTypesTable},
		{"Link", migrations.MigrateLinksTable},
		{"Card", migrations.MigrateCardsTables},
		{"Preference", migrations.MigratePreferencesTables},
		{"Event", migrations.MigrateEventsTables},
	}
	for _, step := range steps {
		configslog.SLog.Infof(" -> %s migrasyonları çalıştırılıyor...", step.name)
		if err := step.run(db); err != nil {
			return err
		}
	}
	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

// CheckAndRunSeeders sistem kullanıcısını ve hizmet türlerini oluşturur.
func CheckAndRunSeeders(db *gorm.DB) error {
	ctx := context.Background()

	configslog.SLog.Info("Sistem kullanıcısı kontrol ediliyor/oluşturuluyor...")
	systemUserID, err := seeders.SeedSystemUser(ctx, db)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı seed işlemi başarısız", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Type seeder çalıştırılıyor...")
	if err := seeders.SeedTypes(models.WithUserID(ctx, systemUserID), db); err != nil {
		configslog.Log.Error("Types tablosu seed edilemedi", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
