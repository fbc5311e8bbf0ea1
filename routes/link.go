package routes

import (
	handlers "kartvizit.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes public linkleri (örn. /abcdef12345) yönetecek rotaları tanımlar.
// Bu rotalar diğer özel gruplardan (örn. /panel, /dashboard) SONRA tanımlanmalı.
func registerPublicLinkRoutes(app *fiber.App, deps Dependencies) {
	publicHandler := handlers.NewLinkHandler(deps.Cards, deps.Analytics, deps.Media, deps.BaseURL)

	app.Get("/:key", publicHandler.HandleLink)
	app.Get("/:key/vcard", publicHandler.HandleVCard)
	app.Get("/:key/qr.png", publicHandler.HandleQR)
	app.Get("/:key/media/:slot", publicHandler.HandleMedia)
}
