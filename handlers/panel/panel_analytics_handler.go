package handlers

import (
	"time"

	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 365
)

// PanelAnalyticsHandler kart olay özetleri.
type PanelAnalyticsHandler struct {
	service services.IAnalyticsService
}

func NewPanelAnalyticsHandler(service services.IAnalyticsService) *PanelAnalyticsHandler {
	return &PanelAnalyticsHandler{service: service}
}

// Summary GET /panel/cards/:id/analytics?days=30
func (h *PanelAnalyticsHandler) Summary(c *fiber.Ctx) error {
	userID, cardID, err := identity(c)
	if userID == 0 {
		return err
	}

	days := c.QueryInt("days", defaultAnalyticsDays)
	if days < 1 || days > maxAnalyticsDays {
		return jsonError(c, fiber.StatusBadRequest, "days 1 ile 365 arasında olmalı")
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	counts, err := h.service.Summary(c.UserContext(), cardID, userID, since)
	if err != nil {
		return cardError(c, "AnalyticsSummary", userID, cardID, err)
	}
	return c.JSON(fiber.Map{"card_id": cardID, "since": since, "counts": counts})
}
