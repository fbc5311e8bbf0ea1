package middlewares

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// APIKeyHeader istemcinin "<userID>.<secret>" anahtarını taşıdığı başlık.
const APIKeyHeader = "X-API-Key"

// AuthMiddleware API anahtarını doğrular; kullanıcıyı Locals ve istek context'ine yerleştirir.
func AuthMiddleware(users services.IUserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(APIKeyHeader)
		if key == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "API anahtarı gerekli"})
		}

		user, err := users.Authenticate(c.UserContext(), key)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserInactive):
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Hesap aktif değil"})
			case errors.Is(err, services.ErrInvalidAPIKey), errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Geçersiz API anahtarı"})
			}
			configslog.Log.Error("AuthMiddleware: doğrulama hatası", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Kimlik doğrulanamadı"})
		}

		c.Locals("userID", user.ID)
		c.Locals("isSystem", user.IsSystem)
		c.Locals("userName", user.Name)
		c.SetUserContext(models.WithUserID(c.UserContext(), user.ID))
		return c.Next()
	}
}

// RequireSystem sadece sistem yöneticilerine izin verir. AuthMiddleware'den sonra kullanılır.
func RequireSystem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSystem, _ := c.Locals("isSystem").(bool); !isSystem {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Bu işlem için yetkiniz yok"})
		}
		return c.Next()
	}
}

// UserID AuthMiddleware'in yerleştirdiği kullanıcı kimliği.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok && id != 0
}
