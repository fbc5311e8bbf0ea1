package handlers

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler sistem yöneticisinin kullanıcı ve API anahtarı işlemleri.
type UserHandler struct {
	service services.IUserService
}

func NewUserHandler(service services.IUserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsSystem bool   `json:"is_system"`
}

// CreateUser POST /dashboard/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}
	user, err := h.service.CreateUser(c.UserContext(), req.Name, req.Email, req.IsSystem)
	if err != nil {
		if errors.Is(err, services.ErrUserInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Dashboard - CreateUser Error", zap.String("email", req.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Kullanıcı oluşturulamadı"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// IssueAPIKey POST /dashboard/users/:id/api-key
// Yeni anahtar sadece bu yanıtta görünür; eski anahtar geçersizleşir.
func (h *UserHandler) IssueAPIKey(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz ID"})
	}
	key, err := h.service.IssueAPIKey(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Dashboard - IssueAPIKey Error", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "API anahtarı üretilemedi"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user_id": id, "api_key": key})
}
