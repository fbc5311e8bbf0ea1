// Package compose isim etiketi ve sanal arka plan içeriğini çözülmüş geometriye çizer.
// Renderer isteğe özel bir tuval üretir; paylaşılan durumu sadece salt okunur font
// kaydıdır. Font, görsel ve QR sorunları çıktıyı bozmaz: loglanır ve atlanır.
package compose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/layout"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// QR tarama kaynakları; public sayfada ?src= ile ayırt edilir.
const (
	SourceNameTag    = "nametag"
	SourceBackground = "background"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Content tek bir kartın render girdisi.
type Content struct {
	Record
	ProfilePhoto string
	CompanyLogo  string
	LinkKey      string
}

// TextStyle metin bloğu ayarları.
type TextStyle struct {
	Family      string
	Size        float64 // punto
	LineSpacing int
	Color       color.NRGBA
	Include     Include
}

// StandardStyle standart etiket ayarları.
type StandardStyle struct {
	Text       TextStyle
	Background color.NRGBA
	Image      ImageSource
}

// QRStyle QR çerçeveli etiket ayarları.
type QRStyle struct {
	TopText     string
	BottomText  string
	TopColor    color.NRGBA
	BottomColor color.NRGBA
	TextColor   color.NRGBA
	Family      string
	FontSize    float64
}

// BackgroundStyle sanal arka plan ayarları.
type BackgroundStyle struct {
	Text       TextStyle
	Background color.NRGBA
	Image      ImageSource
	IncludeQR  bool
}

// Canvas bir render sonucu: tek hücrenin rasterı ve sayfa geometrisi.
// Izgara sayfalarında her hücre aynı içeriği taşır.
type Canvas struct {
	Geometry *layout.Geometry
	Cell     image.Image
}

// Page hücre rasterını sayfadaki her hücreye yerleştirerek tam sayfa görüntüsü üretir.
func (c *Canvas) Page() image.Image {
	if !c.Geometry.Page.IsGrid() {
		return c.Cell
	}
	k := c.Geometry.Page.Scale()
	w, h := c.Geometry.Page.PixelSize()
	page := imaging.New(w, h, white)
	for _, cell := range c.Geometry.Cells {
		page = imaging.Paste(page, c.Cell, image.Pt(int(math.Round(cell.Bounds.X*k)), int(math.Round(cell.Bounds.Y*k))))
	}
	return page
}

// Renderer render bağımlılıklarını taşır; eşzamanlı kullanıma uygundur.
type Renderer struct {
	fonts   *FontRegistry
	media   MediaStore
	qr      QRSource
	baseURL string
}

// NewRenderer media veya qr nil olabilir; bu durumda görsel atlanır, QR yerine yer tutucu çizilir.
func NewRenderer(fonts *FontRegistry, media MediaStore, qr QRSource, baseURL string) *Renderer {
	if fonts == nil {
		fonts = NewFontRegistry()
	}
	return &Renderer{fonts: fonts, media: media, qr: qr, baseURL: baseURL}
}

var errNoCells = errors.New("geometri hücre içermiyor")

func firstCell(geo *layout.Geometry, variant layout.Variant) (layout.Cell, error) {
	if geo == nil || len(geo.Cells) == 0 {
		return layout.Cell{}, errNoCells
	}
	if geo.Variant != variant {
		return layout.Cell{}, fmt.Errorf("geometri %q için çözülmüş, %q bekleniyordu", geo.Variant, variant)
	}
	return geo.Cells[0], nil
}

func newCellContext(geo *layout.Geometry, cell layout.Cell, bg color.Color) (*gg.Context, float64) {
	k := geo.Page.Scale()
	w := int(math.Round(cell.Bounds.W * k))
	h := int(math.Round(cell.Bounds.H * k))
	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.Clear()
	return dc, k
}

// RenderStandard görsel sütunu ve metin sütunu olan standart etiketi çizer.
func (r *Renderer) RenderStandard(ctx context.Context, geo *layout.Geometry, content Content, style StandardStyle) (*Canvas, error) {
	cell, err := firstCell(geo, layout.VariantStandard)
	if err != nil {
		return nil, err
	}
	dc, k := newCellContext(geo, cell, style.Background)
	regions := cell.Standard

	if !regions.Image.Empty() {
		r.drawImage(ctx, dc, content, style.Image, pixelRect(regions.Image, cell.Bounds, k))
	}

	dc.SetFontFace(r.fonts.Face(style.Text.Family, style.Text.Size, geo.Page.DPI))
	lines := TextLines(content.Record, style.Text.Include)
	drawLines(dc, lines, pixelRect(regions.Text, cell.Bounds, k), LineHeight(style.Text.Size, style.Text.LineSpacing)*k, style.Text.Color, AlignLeft)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Canvas{Geometry: geo, Cell: dc.Image()}, nil
}

// RenderQRTag üst banner, QR ve alt banner'dan oluşan etiketi çizer.
func (r *Renderer) RenderQRTag(ctx context.Context, geo *layout.Geometry, content Content, style QRStyle) (*Canvas, error) {
	cell, err := firstCell(geo, layout.VariantQR)
	if err != nil {
		return nil, err
	}
	dc, k := newCellContext(geo, cell, white)
	regions := cell.QR

	dc.SetFontFace(r.fonts.Face(style.Family, style.FontSize, geo.Page.DPI))
	lh := LineHeight(style.FontSize, 0) * k
	for _, b := range []struct {
		rect layout.Rect
		fill color.NRGBA
		text string
	}{
		{regions.TopBanner, style.TopColor, style.TopText},
		{regions.BottomBanner, style.BottomColor, style.BottomText},
	} {
		pr := pixelRect(b.rect, cell.Bounds, k)
		dc.SetColor(b.fill)
		dc.DrawRectangle(pr.X, pr.Y, pr.W, pr.H)
		dc.Fill()
		if b.text != "" {
			drawLines(dc, []string{b.text}, pr.Inset(layout.CellPadding*k/2), lh, style.TextColor, AlignCenter)
		}
	}

	qrRect := pixelRect(regions.QR, cell.Bounds, k)
	r.drawQR(ctx, dc, content.LinkKey, SourceNameTag, qrRect)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Canvas{Geometry: geo, Cell: dc.Image()}, nil
}

// RenderBackground sanal arka plan tuvalini çizer.
func (r *Renderer) RenderBackground(ctx context.Context, geo *layout.Geometry, content Content, style BackgroundStyle) (*Canvas, error) {
	cell, err := firstCell(geo, layout.VariantBackground)
	if err != nil {
		return nil, err
	}
	dc, k := newCellContext(geo, cell, style.Background)
	regions := cell.Background

	if !regions.Image.Empty() {
		r.drawImage(ctx, dc, content, style.Image, pixelRect(regions.Image, cell.Bounds, k))
	}

	align := AlignLeft
	textRect := pixelRect(regions.Text, cell.Bounds, k)
	if textRect.X > float64(dc.Width())/2 {
		align = AlignRight
	}
	dc.SetFontFace(r.fonts.Face(style.Text.Family, style.Text.Size, geo.Page.DPI))
	drawLines(dc, TextLines(content.Record, style.Text.Include), textRect, LineHeight(style.Text.Size, style.Text.LineSpacing)*k, style.Text.Color, align)

	if style.IncludeQR && !regions.QR.Empty() {
		qrRect := pixelRect(regions.QR, cell.Bounds, k)
		dc.SetColor(white)
		pad := qrRect.W * 0.06
		dc.DrawRoundedRectangle(qrRect.X-pad, qrRect.Y-pad, qrRect.W+2*pad, qrRect.H+2*pad, pad)
		dc.Fill()
		r.drawQR(ctx, dc, content.LinkKey, SourceBackground, qrRect)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Canvas{Geometry: geo, Cell: dc.Image()}, nil
}

// drawImage seçilen medya görselini bölgeye çizer; eksik veya okunamayan medya atlanır.
func (r *Renderer) drawImage(ctx context.Context, dc *gg.Context, content Content, src ImageSource, rect layout.Rect) {
	x, y, w, h := roundPt(rect)
	img := r.Image(ctx, content, src, w, h)
	if img == nil {
		return
	}
	b := img.Bounds()
	dc.DrawImage(img, x+(w-b.Dx())/2, y+(h-b.Dy())/2)
}

// Image seçilen medyayı w×h kutusuna hazırlar: profil fotoğrafı daire, logo yuvarlak köşeli.
// Kaynak none ise ya da medya okunamazsa nil döner.
func (r *Renderer) Image(ctx context.Context, content Content, src ImageSource, w, h int) image.Image {
	var name string
	switch src {
	case ImageProfile:
		name = content.ProfilePhoto
	case ImageLogo:
		name = content.CompanyLogo
	default:
		return nil
	}
	if name == "" || r.media == nil || w <= 0 || h <= 0 {
		return nil
	}

	data, err := r.media.Read(ctx, name)
	if err != nil {
		configslog.Log.Warn("Medya okunamadı, görsel atlanıyor", zap.String("media", name), zap.Error(err))
		return nil
	}
	img, err := DecodeImage(data)
	if err != nil {
		configslog.Log.Warn("Medya çözümlenemedi, görsel atlanıyor", zap.String("media", name), zap.Error(err))
		return nil
	}

	if src == ImageProfile {
		side := w
		if h < side {
			side = h
		}
		return CircleImage(img, side)
	}
	return RoundedImage(img, w, h, float64(w)*0.08)
}

// drawQR QR'ı çeker, sessiz bölgesini kırpar ve bölgeye ölçekler.
// Her türlü hatada yer tutucu çizilir.
func (r *Renderer) drawQR(ctx context.Context, dc *gg.Context, linkKey, source string, rect layout.Rect) {
	x, y, side, _ := roundPt(rect)
	if side <= 0 {
		return
	}
	dc.DrawImage(r.qrImage(ctx, linkKey, source, side), x, y)
}

// QRImage kartın public adresini kodlayan side×side QR görseli; hata durumunda yer tutucu.
func (r *Renderer) QRImage(ctx context.Context, linkKey, source string, side int) image.Image {
	return r.qrImage(ctx, linkKey, source, side)
}

func (r *Renderer) qrImage(ctx context.Context, linkKey, source string, side int) image.Image {
	if r.qr == nil || linkKey == "" {
		configslog.Log.Warn("QR kaynağı veya link anahtarı yok, yer tutucu çiziliyor", zap.String("link_key", linkKey))
		return Placeholder(side)
	}
	data := PublicCardURL(r.baseURL, linkKey, source)
	img, err := r.qr.Fetch(ctx, data, side*QROversample)
	if err != nil {
		configslog.Log.Warn("QR alınamadı, yer tutucu çiziliyor", zap.String("data", data), zap.Error(err))
		return Placeholder(side)
	}
	cropped := CropToContentBounds(img, white)
	return imaging.Resize(cropped, side, side, imaging.NearestNeighbor)
}
