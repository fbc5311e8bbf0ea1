package routes

import (
	panel_handlers "kartvizit.link/handlers/panel"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları tanımlar. Her istek API anahtarıyla doğrulanır.
func registerPanelRoutes(app *fiber.App, deps Dependencies) {
	cardHandler := panel_handlers.NewPanelCardHandler(deps.Cards)
	preferenceHandler := panel_handlers.NewPanelPreferenceHandler(deps.Preferences)
	renderHandler := panel_handlers.NewPanelRenderHandler(deps.Render)
	analyticsHandler := panel_handlers.NewPanelAnalyticsHandler(deps.Analytics)

	panelGroup := app.Group("/panel")
	panelGroup.Use(middlewares.AuthMiddleware(deps.Users))

	// --- Kullanıcının Kendi Kartvizitleri ---
	panelGroup.Get("/cards", cardHandler.ListCards)         // GET /panel/cards
	panelGroup.Post("/cards", cardHandler.CreateCard)       // POST /panel/cards
	panelGroup.Get("/cards/:id", cardHandler.GetCard)       // GET /panel/cards/{id}
	panelGroup.Put("/cards/:id", cardHandler.UpdateCard)    // PUT /panel/cards/{id}
	panelGroup.Delete("/cards/:id", cardHandler.DeleteCard) // DELETE /panel/cards/{id}

	// --- Tercihler ---
	panelGroup.Get("/cards/:id/preferences/:variant", preferenceHandler.GetPreferences) // GET /panel/cards/{id}/preferences/{standard|qr|background}
	panelGroup.Put("/cards/:id/preferences/:variant", preferenceHandler.SavePreferences)

	// --- İndirmeler ---
	panelGroup.Get("/cards/:id/render/:variant.:format", renderHandler.Render) // GET /panel/cards/{id}/render/qr.pdf

	// --- İstatistik ---
	panelGroup.Get("/cards/:id/analytics", analyticsHandler.Summary)
}
