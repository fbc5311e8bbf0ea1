package seeders

import (
	"context"
	"errors"

	"kartvizit.link/configs/configsenv"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/repositories"
	"kartvizit.link/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedSystemUser SYSTEM_USER_EMAIL ile sistem yöneticisini oluşturur. Kullanıcının henüz
// API anahtarı yoksa bir tane üretilir ve sadece bu seferlik loga yazılır.
// Dönen ID sonraki seed adımlarında oluşturan kullanıcı olarak kullanılır.
func SeedSystemUser(ctx context.Context, db *gorm.DB) (uint, error) {
	email := configsenv.GetEnvWithDefault("SYSTEM_USER_EMAIL", "admin@kartvizit.link")
	name := configsenv.GetEnvWithDefault("SYSTEM_USER_NAME", "Sistem Yöneticisi")

	users := repositories.NewUserRepositoryWithDB(db)
	userService := services.NewUserServiceWithDB(db)

	user, err := users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		if user, err = userService.CreateUser(ctx, name, email, true); err != nil {
			return 0, err
		}
		configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu: %s (ID: %d)", email, user.ID)
	case err != nil:
		configslog.Log.Error("Sistem kullanıcısı aranırken hata", zap.String("email", email), zap.Error(err))
		return 0, err
	default:
		configslog.SLog.Debugf("Sistem kullanıcısı zaten mevcut: %s", email)
	}

	if user.APIKeyHash == "" {
		key, err := userService.IssueAPIKey(ctx, user.ID)
		if err != nil {
			return 0, err
		}
		configslog.Log.Warn("Sistem kullanıcısı için API anahtarı üretildi, güvenli bir yere kaydedin",
			zap.String("email", email), zap.String("api_key", key))
	}
	return user.ID, nil
}
