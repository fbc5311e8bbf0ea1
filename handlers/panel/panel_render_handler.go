package handlers

import (
	"errors"
	"io"
	"math"
	"strconv"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/encode"
	"kartvizit.link/pkg/layout"
	"kartvizit.link/pkg/prefs"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/pkg/ratelimit"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Tercih alanları dışında kabul edilen sorgu anahtarları.
var renderControlKeys = map[string]struct{}{"mode": {}, "copies": {}}

// PanelRenderHandler isim etiketi ve sanal arka plan indirmeleri.
type PanelRenderHandler struct {
	service services.IRenderService
}

func NewPanelRenderHandler(service services.IRenderService) *PanelRenderHandler {
	return &PanelRenderHandler{service: service}
}

// Render GET /panel/cards/:id/render/:variant.:format
// Kayıtlı tercihler sorgu parametreleriyle ezilir. Doğrulama, yetki ve sınır hataları
// JSON olarak gövdeden önce döner; sonraki hatalar istenen biçimde gövdeye yazılır.
func (h *PanelRenderHandler) Render(c *fiber.Ctx) error {
	userID, cardID, err := identity(c)
	if userID == 0 {
		return err
	}

	variant, verr := layout.ParseVariant(c.Params("variant"))
	format, ferr := encode.ParseFormat(c.Params("format"))
	if verr != nil || ferr != nil || !services.Supported(variant, format) {
		return jsonError(c, fiber.StatusNotFound, "Desteklenmeyen çıktı: "+c.Params("variant")+"."+c.Params("format"))
	}

	if err := queryparams.RejectUnknown(layout.ErrInvalidParameter, c.Queries(), queryparams.Keys(defaultsFor(variant)), renderControlKeys); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	mode, err := prefs.ParseMode(c.Query("mode"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	copies := 0
	if raw := c.Query("copies"); raw != "" {
		if copies, err = strconv.Atoi(raw); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "copies tam sayı olmalı")
		}
	}

	req := services.RenderRequest{
		CardID:  cardID,
		UserID:  userID,
		Variant: variant,
		Format:  format,
		Mode:    mode,
		Copies:  copies,
	}
	ctx := c.UserContext()
	job, err := h.service.Prepare(ctx, req, func(dst any) error { return c.QueryParser(dst) })
	if err != nil {
		return renderError(c, req, err)
	}

	c.Set(fiber.HeaderContentType, job.ContentType)
	c.Set(fiber.HeaderContentDisposition, job.ContentDisposition())
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Status(fiber.StatusOK)

	if err := encode.WriteGuarded(c.Response().BodyWriter(), job.Format, func(w io.Writer) error {
		return job.Encode(ctx, w)
	}); err != nil {
		// gövde hatayı zaten taşıyor; durum kodu 200'den 500'e çekilir
		c.Status(fiber.StatusInternalServerError)
	}
	return nil
}

func renderError(c *fiber.Ctx, req services.RenderRequest, err error) error {
	var limited *ratelimit.LimitedError
	switch {
	case errors.As(err, &limited):
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
		return jsonError(c, fiber.StatusTooManyRequests, err.Error())
	case errors.Is(err, services.ErrRenderUnsupported):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRenderInvalidInput), errors.Is(err, layout.ErrInvalidParameter):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrCardNotFound), errors.Is(err, services.ErrCardForbidden):
		return jsonError(c, fiber.StatusNotFound, services.ErrCardNotFound.Error())
	}
	configslog.Log.Error("Panel - Render Error",
		zap.Uint("userID", req.UserID), zap.Uint("id", req.CardID),
		zap.String("variant", string(req.Variant)), zap.String("format", string(req.Format)), zap.Error(err))
	return jsonError(c, fiber.StatusInternalServerError, "Çıktı hazırlanamadı")
}
