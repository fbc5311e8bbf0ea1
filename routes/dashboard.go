package routes

import (
	handlers "kartvizit.link/handlers/dashboard"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar.
// Sadece IsSystem=true olan kullanıcılar erişebilir.
func registerDashboardRoutes(app *fiber.App, deps Dependencies) {
	userHandler := handlers.NewUserHandler(deps.Users)

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware(deps.Users), // 1. Anahtar geçerli ve hesap aktif mi?
		middlewares.RequireSystem(),            // 2. Sistem yöneticisi mi?
	)

	// --- Kullanıcı Yönetimi ---
	dashboardGroup.Post("/users", userHandler.CreateUser)              // POST /dashboard/users
	dashboardGroup.Post("/users/:id/api-key", userHandler.IssueAPIKey) // POST /dashboard/users/{id}/api-key
}
