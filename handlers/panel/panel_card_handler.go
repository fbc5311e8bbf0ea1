package handlers // handlers/panel paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/middlewares"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/repositories"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelCardHandler kullanıcının kendi kartvizitleri için JSON handler.
type PanelCardHandler struct {
	service services.ICardService
}

// NewPanelCardHandler yeni bir PanelCardHandler örneği oluşturur.
func NewPanelCardHandler(service services.ICardService) *PanelCardHandler {
	return &PanelCardHandler{service: service}
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// identity oturumdaki kullanıcıyı ve :id parametresini okur.
func identity(c *fiber.Ctx) (userID, cardID uint, err error) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return 0, 0, jsonError(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz")
	}
	id, perr := c.ParamsInt("id")
	if perr != nil || id <= 0 {
		return 0, 0, jsonError(c, fiber.StatusBadRequest, "Geçersiz ID")
	}
	return userID, uint(id), nil
}

// cardError servis hatalarını HTTP durumuna çevirir. Başkasına ait kart 404 olarak raporlanır.
func cardError(c *fiber.Ctx, op string, userID, cardID uint, err error) error {
	switch {
	case errors.Is(err, services.ErrCardNotFound), errors.Is(err, services.ErrCardForbidden):
		return jsonError(c, fiber.StatusNotFound, services.ErrCardNotFound.Error())
	case errors.Is(err, services.ErrCrdInvalidInput), errors.Is(err, services.ErrCardNameRequired):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	configslog.Log.Error("Panel - "+op+" Error", zap.Uint("userID", userID), zap.Uint("id", cardID), zap.Error(err))
	return jsonError(c, fiber.StatusInternalServerError, "İşlem sırasında bir hata oluştu")
}

// ListCards kullanıcının kendi kartvizitlerini sayfalı listeler.
func (h *PanelCardHandler) ListCards(c *fiber.Ctx) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz")
	}

	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Panel ListCards: Query parse error", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Normalize(repositories.CardSortKeys()...)

	result, err := h.service.GetCardsForUserPaginated(c.UserContext(), userID, params)
	if err != nil {
		return cardError(c, "ListCards", userID, 0, err)
	}
	return c.JSON(result)
}

// CreateCard yeni kartvizit oluşturur.
func (h *PanelCardHandler) CreateCard(c *fiber.Ctx) error {
	userID, ok := middlewares.UserID(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Oturum bilgileri geçersiz")
	}

	// gövdede yoksa rehbere ekleme açık kalır
	input := services.CardInput{Detail: models.CardDetail{AllowSaveContact: true}}
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}

	card, err := h.service.CreateCard(c.UserContext(), userID, input)
	if err != nil {
		return cardError(c, "CreateCard", userID, 0, err)
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}

// GetCard tek bir kartviziti Detail ve Contacts ile döndürür.
func (h *PanelCardHandler) GetCard(c *fiber.Ctx) error {
	userID, cardID, err := identity(c)
	if userID == 0 {
		return err
	}
	card, err := h.service.GetCardByID(c.UserContext(), cardID, userID)
	if err != nil {
		return cardError(c, "GetCard", userID, cardID, err)
	}
	return c.JSON(card)
}

// UpdateCard detay ve ikincil iletişim bilgilerini günceller.
func (h *PanelCardHandler) UpdateCard(c *fiber.Ctx) error {
	userID, cardID, err := identity(c)
	if userID == 0 {
		return err
	}

	var input services.CardInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}

	card, err := h.service.UpdateCard(c.UserContext(), cardID, userID, input)
	if err != nil {
		return cardError(c, "UpdateCard", userID, cardID, err)
	}
	return c.JSON(card)
}

// DeleteCard kartviziti ve bağlı linki siler.
func (h *PanelCardHandler) DeleteCard(c *fiber.Ctx) error {
	userID, cardID, err := identity(c)
	if userID == 0 {
		return err
	}
	if err := h.service.DeleteCard(c.UserContext(), cardID, userID); err != nil {
		return cardError(c, "DeleteCard", userID, cardID, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
