package handlers

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/layout"
	"kartvizit.link/pkg/prefs"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelPreferenceHandler kart başına varyant tercihlerini okur ve kaydeder.
type PanelPreferenceHandler struct {
	service services.IPreferenceService
}

func NewPanelPreferenceHandler(service services.IPreferenceService) *PanelPreferenceHandler {
	return &PanelPreferenceHandler{service: service}
}

func preferenceError(c *fiber.Ctx, userID, cardID uint, err error) error {
	switch {
	case errors.Is(err, services.ErrPrefInvalidInput), errors.Is(err, layout.ErrInvalidParameter):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrCardNotFound), errors.Is(err, services.ErrCardForbidden):
		return jsonError(c, fiber.StatusNotFound, services.ErrCardNotFound.Error())
	}
	configslog.Log.Error("Panel - Preference Error", zap.Uint("userID", userID), zap.Uint("id", cardID), zap.Error(err))
	return jsonError(c, fiber.StatusInternalServerError, "Tercihler işlenemedi")
}

// GetPreferences kayıtlı tercihleri, hiç kaydedilmemişse varsayılanları döndürür.
func (h *PanelPreferenceHandler) GetPreferences(c *fiber.Ctx) error {
	userID, cardID, err := identity(c)
	if userID == 0 {
		return err
	}
	variant, err := layout.ParseVariant(c.Params("variant"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, err.Error())
	}
	p, err := h.service.Load(c.UserContext(), cardID, userID, variant)
	if err != nil {
		return preferenceError(c, userID, cardID, err)
	}
	return c.JSON(p)
}

// SavePreferences gövdeyi mevcut tercihlerin üzerine uygular, doğrular ve kaydeder.
// Gövdede olmayan alanlar önceki değerlerini korur.
func (h *PanelPreferenceHandler) SavePreferences(c *fiber.Ctx) error {
	userID, cardID, err := identity(c)
	if userID == 0 {
		return err
	}
	variant, err := layout.ParseVariant(c.Params("variant"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, err.Error())
	}

	ctx := c.UserContext()
	var saved any
	switch variant {
	case layout.VariantStandard:
		p, err := h.service.NameTag(ctx, cardID, userID)
		if err != nil {
			return preferenceError(c, userID, cardID, err)
		}
		if err := c.BodyParser(&p); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		row, err := h.service.SaveNameTag(ctx, cardID, userID, p)
		if err != nil {
			return preferenceError(c, userID, cardID, err)
		}
		saved = row.NameTag

	case layout.VariantQR:
		p, err := h.service.QRTag(ctx, cardID, userID)
		if err != nil {
			return preferenceError(c, userID, cardID, err)
		}
		if err := c.BodyParser(&p); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		row, err := h.service.SaveQRTag(ctx, cardID, userID, p)
		if err != nil {
			return preferenceError(c, userID, cardID, err)
		}
		saved = row.QRTag

	case layout.VariantBackground:
		p, err := h.service.Background(ctx, cardID, userID)
		if err != nil {
			return preferenceError(c, userID, cardID, err)
		}
		if err := c.BodyParser(&p); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		row, err := h.service.SaveBackground(ctx, cardID, userID, p)
		if err != nil {
			return preferenceError(c, userID, cardID, err)
		}
		saved = row.Background
	}
	return c.JSON(saved)
}

// defaultsFor varyantın varsayılan tercih yapısı; sorgu anahtarı kümesi için kullanılır.
func defaultsFor(v layout.Variant) any {
	switch v {
	case layout.VariantQR:
		return prefs.DefaultQRTag()
	case layout.VariantBackground:
		return prefs.DefaultBackground()
	}
	return prefs.DefaultNameTag()
}
