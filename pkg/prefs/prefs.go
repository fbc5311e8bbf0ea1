// Package prefs varyant başına kapalı, sürümlü stil tercihlerini tanımlar.
// Aynı yapılar JSON gövdesi, sorgu parametreleri ve GORM tabloları (embedded) için kullanılır;
// sınır doğrulaması burada yapılır, render katmanı doğrulanmış değerleri alır.
package prefs

import (
	"fmt"

	"kartvizit.link/pkg/compose"
	"kartvizit.link/pkg/layout"
)

// CurrentVersion tercih yapılarının şema sürümü.
const CurrentVersion = 1

// Mode QR boyutu sınırlarını belirler.
type Mode string

const (
	ModeFull    Mode = "full"
	ModePreview Mode = "preview"
)

// ParseMode boş değeri full kabul eder.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFull:
		return ModeFull, nil
	case ModePreview:
		return ModePreview, nil
	}
	return "", invalid("mode", "bilinmeyen mod %q", s)
}

// Sınırlar
const (
	MinNameTagFontSize    = 8.0
	MaxNameTagFontSize    = 24.0
	MinBannerFontSize     = 6.0
	MaxBannerFontSize     = 36.0
	MinBackgroundFontSize = 12.0
	MaxBackgroundFontSize = 96.0

	MinQRSizeFull    = 200.0
	MaxQRSizeFull    = 500.0
	MinQRSizePreview = 20.0
	MaxQRSizePreview = 200.0
	MaxQRPadding     = 50.0

	MaxBannerTextLength = 60
)

// Resolutions sanal arka plan için izin verilen çözünürlükler.
var Resolutions = map[string][2]int{
	"1920x1080": {1920, 1080},
	"1280x720":  {1280, 720},
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", layout.ErrInvalidParameter, field, fmt.Sprintf(format, args...))
}

// Include çıktıya girecek kart alanları.
type Include struct {
	IncludeName    bool `json:"include_name" query:"include_name"`
	IncludeTitle   bool `json:"include_title" query:"include_title"`
	IncludeCompany bool `json:"include_company" query:"include_company"`
	IncludePhone   bool `json:"include_phone" query:"include_phone"`
	IncludeEmail   bool `json:"include_email" query:"include_email"`
	IncludeWebsite bool `json:"include_website" query:"include_website"`
	IncludeAddress bool `json:"include_address" query:"include_address"`
}

func (i Include) toCompose() compose.Include {
	return compose.Include{
		Name: i.IncludeName, Title: i.IncludeTitle, Company: i.IncludeCompany,
		Phone: i.IncludePhone, Email: i.IncludeEmail, Website: i.IncludeWebsite, Address: i.IncludeAddress,
	}
}

// Sheet 8'li baskı sayfası boşlukları (punto).
type Sheet struct {
	TopMargin     float64  `json:"top_margin" query:"top_margin"`
	VerticalGap   float64  `json:"vertical_gap" query:"vertical_gap"`
	HorizontalGap float64  `json:"horizontal_gap" query:"horizontal_gap"`
	LeftMargin    *float64 `json:"left_margin" query:"left_margin"` // null = ortala
}

func defaultSheet() Sheet {
	d := layout.DefaultSheetParams(layout.LetterSheet)
	return Sheet{TopMargin: d.TopMargin, VerticalGap: d.VerticalGap, HorizontalGap: d.HorizontalGap}
}

// Params layout ızgara parametrelerine çevirir.
func (s Sheet) Params() layout.SheetParams {
	return layout.SheetParams{TopMargin: s.TopMargin, VerticalGap: s.VerticalGap, HorizontalGap: s.HorizontalGap, LeftMargin: s.LeftMargin}
}

// NameTag standart isim etiketi tercihleri.
type NameTag struct {
	Version int `json:"version" query:"-"`
	Include
	FontFamily      string  `json:"font_family" query:"font_family" gorm:"size:32"`
	FontSize        float64 `json:"font_size" query:"font_size"`
	LineSpacing     int     `json:"line_spacing" query:"line_spacing"`
	TextColor       string  `json:"text_color" query:"text_color" gorm:"size:7"`
	BackgroundColor string  `json:"background_color" query:"background_color" gorm:"size:7"`
	ImageSource     string  `json:"image_source" query:"image_source" gorm:"size:16"`
	Sheet
}

// DefaultNameTag ilk kayıttan önce kullanılan tercihler.
func DefaultNameTag() NameTag {
	return NameTag{
		Version:         CurrentVersion,
		Include:         Include{IncludeName: true, IncludeTitle: true, IncludeCompany: true},
		FontFamily:      string(compose.FamilyGoRegular),
		FontSize:        12,
		TextColor:       "#000000",
		BackgroundColor: "#FFFFFF",
		ImageSource:     string(compose.ImageNone),
		Sheet:           defaultSheet(),
	}
}

// QRTag QR çerçeveli etiket tercihleri.
type QRTag struct {
	Version           int     `json:"version" query:"-"`
	TopBannerText     string  `json:"top_banner_text" query:"top_banner_text" gorm:"size:64"`
	BottomBannerText  string  `json:"bottom_banner_text" query:"bottom_banner_text" gorm:"size:64"`
	TopBannerColor    string  `json:"top_banner_color" query:"top_banner_color" gorm:"size:7"`
	BottomBannerColor string  `json:"bottom_banner_color" query:"bottom_banner_color" gorm:"size:7"`
	BannerTextColor   string  `json:"banner_text_color" query:"banner_text_color" gorm:"size:7"`
	FontFamily        string  `json:"font_family" query:"font_family" gorm:"size:32"`
	BannerFontSize    float64 `json:"banner_font_size" query:"banner_font_size"`
	QRSize            float64 `json:"qr_size" query:"qr_size"` // sadece png/html; PDF'te hücre belirler
	QRPadding         float64 `json:"qr_padding" query:"qr_padding"`
	Sheet
}

// DefaultQRTag ilk kayıttan önce kullanılan tercihler.
func DefaultQRTag() QRTag {
	return QRTag{
		Version:           CurrentVersion,
		TopBannerText:     "Merhaba",
		BottomBannerText:  "",
		TopBannerColor:    "#1F2937",
		BottomBannerColor: "#1F2937",
		BannerTextColor:   "#FFFFFF",
		FontFamily:        string(compose.FamilyGoBold),
		BannerFontSize:    12,
		QRSize:            250,
		QRPadding:         6,
		Sheet:             defaultSheet(),
	}
}

// Background sanal arka plan tercihleri.
type Background struct {
	Version int `json:"version" query:"-"`
	Include
	FontFamily      string  `json:"font_family" query:"font_family" gorm:"size:32"`
	FontSize        float64 `json:"font_size" query:"font_size"`
	LineSpacing     int     `json:"line_spacing" query:"line_spacing"`
	TextColor       string  `json:"text_color" query:"text_color" gorm:"size:7"`
	BackgroundColor string  `json:"background_color" query:"background_color" gorm:"size:7"`
	ImageSource     string  `json:"image_source" query:"image_source" gorm:"size:16"`
	IncludeQR       bool    `json:"include_qr" query:"include_qr"`
	Position        string  `json:"position" query:"position" gorm:"size:16"`
	Resolution      string  `json:"resolution" query:"resolution" gorm:"size:16"`
}

// DefaultBackground ilk kayıttan önce kullanılan tercihler.
func DefaultBackground() Background {
	return Background{
		Version:         CurrentVersion,
		Include:         Include{IncludeName: true, IncludeTitle: true, IncludeCompany: true},
		FontFamily:      string(compose.FamilyGoRegular),
		FontSize:        36,
		TextColor:       "#FFFFFF",
		BackgroundColor: "#111827",
		ImageSource:     string(compose.ImageNone),
		IncludeQR:       true,
		Position:        string(layout.AnchorBottomLeft),
		Resolution:      "1920x1080",
	}
}

func checkVersion(v *int) error {
	if *v == 0 {
		*v = CurrentVersion
	}
	if *v != CurrentVersion {
		return invalid("version", "desteklenmeyen sürüm %d", *v)
	}
	return nil
}

func checkFamily(field, s string) error {
	if !compose.IsKnownFamily(s) {
		return invalid(field, "bilinmeyen yazı tipi %q", s)
	}
	return nil
}

func checkRange(field string, v, min, max float64) error {
	if v < min || v > max {
		return invalid(field, "%g, %g-%g aralığında olmalı", v, min, max)
	}
	return nil
}

func checkColors(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if _, err := compose.ParseHexColor(pairs[i+1]); err != nil {
			return fmt.Errorf("%s: %w", pairs[i], err)
		}
	}
	return nil
}

func checkLineSpacing(v int) error {
	if v < compose.MinLineSpacing || v > compose.MaxLineSpacing {
		return invalid("line_spacing", "%d, %d..%d aralığında olmalı", v, compose.MinLineSpacing, compose.MaxLineSpacing)
	}
	return nil
}

// fitsSheet alan sınırları tek tek geçerli olsa bile birleşimin 8'li sayfaya
// sığmasını şart koşar; kaydedilen her tercih PDF olarak da basılabilir.
func fitsSheet(variant layout.Variant, params layout.Params) error {
	_, err := layout.Resolve(variant, layout.LetterSheet, params)
	return err
}

// Validate tüm alanları kontrol eder; ilk hatada döner.
func (p *NameTag) Validate() error {
	if err := checkVersion(&p.Version); err != nil {
		return err
	}
	if err := checkFamily("font_family", p.FontFamily); err != nil {
		return err
	}
	if err := checkRange("font_size", p.FontSize, MinNameTagFontSize, MaxNameTagFontSize); err != nil {
		return err
	}
	if err := checkLineSpacing(p.LineSpacing); err != nil {
		return err
	}
	if err := checkColors("text_color", p.TextColor, "background_color", p.BackgroundColor); err != nil {
		return err
	}
	if _, err := compose.ParseImageSource(p.ImageSource); err != nil {
		return err
	}
	return fitsSheet(layout.VariantStandard, p.LayoutParams())
}

// Validate tüm alanları kontrol eder; QR boyutu sınırları moda bağlıdır.
func (p *QRTag) Validate(mode Mode) error {
	minQR, maxQR := MinQRSizeFull, MaxQRSizeFull
	if mode == ModePreview {
		minQR, maxQR = MinQRSizePreview, MaxQRSizePreview
	}
	if err := checkRange("qr_size", p.QRSize, minQR, maxQR); err != nil {
		return err
	}
	return p.ValidateSheet()
}

// ValidateSheet qr_size dışındaki alanları kontrol eder. 8'li sayfada QR kenarını
// hücre belirlediği için PDF çıktısında qr_size kullanılmaz.
func (p *QRTag) ValidateSheet() error {
	if err := checkVersion(&p.Version); err != nil {
		return err
	}
	if err := checkFamily("font_family", p.FontFamily); err != nil {
		return err
	}
	if err := checkRange("banner_font_size", p.BannerFontSize, MinBannerFontSize, MaxBannerFontSize); err != nil {
		return err
	}
	if err := checkRange("qr_padding", p.QRPadding, 0, MaxQRPadding); err != nil {
		return err
	}
	if n := len([]rune(p.TopBannerText)); n > MaxBannerTextLength {
		return invalid("top_banner_text", "en fazla %d karakter olabilir (%d)", MaxBannerTextLength, n)
	}
	if n := len([]rune(p.BottomBannerText)); n > MaxBannerTextLength {
		return invalid("bottom_banner_text", "en fazla %d karakter olabilir (%d)", MaxBannerTextLength, n)
	}
	if err := checkColors("top_banner_color", p.TopBannerColor, "bottom_banner_color", p.BottomBannerColor, "banner_text_color", p.BannerTextColor); err != nil {
		return err
	}
	return fitsSheet(layout.VariantQR, p.LayoutParams())
}

// Validate tüm alanları kontrol eder.
func (p *Background) Validate() error {
	if err := checkVersion(&p.Version); err != nil {
		return err
	}
	if err := checkFamily("font_family", p.FontFamily); err != nil {
		return err
	}
	if err := checkRange("font_size", p.FontSize, MinBackgroundFontSize, MaxBackgroundFontSize); err != nil {
		return err
	}
	if err := checkLineSpacing(p.LineSpacing); err != nil {
		return err
	}
	if err := checkColors("text_color", p.TextColor, "background_color", p.BackgroundColor); err != nil {
		return err
	}
	if _, err := compose.ParseImageSource(p.ImageSource); err != nil {
		return err
	}
	if _, err := layout.ParseAnchor(p.Position); err != nil {
		return err
	}
	if _, ok := Resolutions[p.Resolution]; !ok {
		return invalid("resolution", "desteklenmeyen çözünürlük %q", p.Resolution)
	}
	return nil
}
