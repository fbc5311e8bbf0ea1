package routes

import (
	"kartvizit.link/pkg/compose"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies rotaların kullandığı servisler; main.go'da bir kez kurulur.
type Dependencies struct {
	Users       services.IUserService
	Cards       services.ICardService
	Preferences services.IPreferenceService
	Render      services.IRenderService
	Analytics   services.IAnalyticsService
	Media       compose.MediaStore
	BaseURL     string
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama

	// --- Rota Grupları ---
	registerDashboardRoutes(app, deps) // /dashboard rotaları
	registerPanelRoutes(app, deps)     // /panel rotaları

	// --- Public Link Rotası ---
	// Diğer özel gruplardan sonra gelmeli
	registerPublicLinkRoutes(app, deps)

	// --- 404 Handler ---
	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	}
}
