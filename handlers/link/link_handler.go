package handlers

import (
	"errors"
	"net/http"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/compose"
	"kartvizit.link/pkg/encode"
	"kartvizit.link/pkg/media"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const (
	maxQRSize     = 1024
	defaultQRSize = 512
)

// LinkHandler public kartvizit linklerini yönetir.
type LinkHandler struct {
	cardService services.ICardService
	analytics   services.IAnalyticsService
	media       compose.MediaStore
	baseURL     string
}

// NewLinkHandler yeni bir LinkHandler örneği oluşturur.
func NewLinkHandler(cards services.ICardService, analytics services.IAnalyticsService, store compose.MediaStore, baseURL string) *LinkHandler {
	return &LinkHandler{cardService: cards, analytics: analytics, media: store, baseURL: baseURL}
}

// card anahtara göre aktif kartı bulur; bulunamazsa 404 sayfasını yazar ve nil döner.
func (h *LinkHandler) card(c *fiber.Ctx) (*models.Card, error) {
	key := c.Params("key")
	card, err := h.cardService.GetCardByKey(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return nil, h.renderNotFound(c, "Kartvizit Bulunamadı")
		}
		configslog.Log.Error("HandleLink: GetCardByKey error", zap.String("key", key), zap.Error(err))
		return nil, h.renderError(c, "Kartvizit yüklenirken bir sorun oluştu.")
	}
	return card, nil
}

// HandleLink public kartvizit sayfası. src=nametag gibi bir kaynakla gelinmişse tarama sayılır.
func (h *LinkHandler) HandleLink(c *fiber.Ctx) error {
	card, err := h.card(c)
	if card == nil {
		return err
	}

	kind := models.CardEventView
	src := c.Query("src")
	if src != "" {
		kind = models.CardEventScan
	}
	h.analytics.Record(c.UserContext(), card.ID, kind, src)

	d := card.Detail
	primary, secondary := d.PrimaryColor, d.SecondaryColor
	if primary == "" {
		primary = "#1F2937"
	}
	if secondary == "" {
		secondary = primary
	}
	key := card.Link.Key
	return c.Render("public/card_view", fiber.Map{
		"Title":          d.FullName(),
		"Detail":         d,
		"Contacts":       card.Contacts,
		"CoverURL":       h.mediaURL(key, "cover", d.CoverImage),
		"ProfileURL":     h.mediaURL(key, "profile", d.ProfilePhoto),
		"PrimaryColor":   primary,
		"SecondaryColor": secondary,
		"VCardURL":       "/" + key + "/vcard",
		"QRURL":          "/" + key + "/qr.png",
	}, "layouts/public_layout")
}

func (h *LinkHandler) mediaURL(key, slot, name string) string {
	if name == "" {
		return ""
	}
	return "/" + key + "/media/" + slot
}

// HandleVCard kartı vCard 3.0 olarak indirir. Kart sahibi izin vermediyse 404.
func (h *LinkHandler) HandleVCard(c *fiber.Ctx) error {
	card, err := h.card(c)
	if card == nil {
		return err
	}
	if !card.Detail.AllowSaveContact {
		return h.renderNotFound(c, "Kartvizit Bulunamadı")
	}

	d := card.Detail
	v := encode.VCard{
		Prefix:     d.Prefix,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Suffix:     d.Suffix,
		FullName:   d.FullName(),
		Org:        d.Company,
		Department: d.Department,
		Title:      d.Title,
		Address:    d.Address,
		Note:       d.Bio,
		Source:     compose.PublicCardURL(h.baseURL, card.Link.Key, ""),
	}
	if d.Email != "" {
		v.Emails = append(v.Emails, encode.VCardValue{Type: "work", Value: d.Email})
	}
	if d.PhoneNumber != "" {
		v.Phones = append(v.Phones, encode.VCardValue{Type: "work", Value: d.PhoneNumber})
	}
	if d.Website != "" {
		v.URLs = append(v.URLs, encode.VCardValue{Type: "work", Value: d.Website})
	}
	for _, ct := range card.Contacts {
		val := encode.VCardValue{Type: ct.Type, Value: ct.Value, Primary: ct.IsPrimary}
		switch ct.Kind {
		case models.ContactKindEmail:
			v.Emails = append(v.Emails, val)
		case models.ContactKindPhone:
			v.Phones = append(v.Phones, val)
		case models.ContactKindWebsite:
			v.URLs = append(v.URLs, val)
		}
	}

	artifact := encode.EncodeVCard(v, encode.Filename(string(encode.FormatVCard), d.FullName(), d.Company))
	h.analytics.Record(c.UserContext(), card.ID, models.CardEventVCard, "")

	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Set(fiber.HeaderContentDisposition, artifact.ContentDisposition(false))
	return c.Send(artifact.Body)
}

// HandleQR kart adresinin QR kodunu yerelde üretir. ?size=512
func (h *LinkHandler) HandleQR(c *fiber.Ctx) error {
	card, err := h.card(c)
	if card == nil {
		return err
	}
	size := c.QueryInt("size", defaultQRSize)
	if size < 64 || size > maxQRSize {
		size = defaultQRSize
	}

	png, err := qrcode.Encode(compose.PublicCardURL(h.baseURL, card.Link.Key, "qr"), qrcode.Medium, size)
	if err != nil {
		configslog.Log.Error("HandleQR: QR üretilemedi", zap.Uint("card_id", card.ID), zap.Error(err))
		return h.renderError(c, "QR kod üretilemedi.")
	}
	c.Set(fiber.HeaderContentType, encode.FormatPNG.ContentType())
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(png)
}

// HandleMedia kartın profil, logo veya kapak görselini sunar.
func (h *LinkHandler) HandleMedia(c *fiber.Ctx) error {
	card, err := h.card(c)
	if card == nil {
		return err
	}

	var name string
	switch c.Params("slot") {
	case "profile":
		name = card.Detail.ProfilePhoto
	case "logo":
		name = card.Detail.CompanyLogo
	case "cover":
		name = card.Detail.CoverImage
	}
	if name == "" {
		return h.renderNotFound(c, "Görsel Bulunamadı")
	}

	data, err := h.media.Read(c.UserContext(), name)
	if err != nil {
		if !errors.Is(err, media.ErrNotFound) {
			configslog.Log.Warn("HandleMedia: medya okunamadı", zap.Uint("card_id", card.ID), zap.String("name", name), zap.Error(err))
		}
		return h.renderNotFound(c, "Görsel Bulunamadı")
	}
	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(data)
}

// renderNotFound standart 404 sayfasını render eder.
func (h *LinkHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	}, "layouts/error_layout")
}

// renderError standart 500 hata sayfasını render eder.
func (h *LinkHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": message,
	}, "layouts/error_layout")
}
