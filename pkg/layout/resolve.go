package layout

import "math"

const (
	// CellPadding hücre kenarından içerik bölgelerine boşluk.
	CellPadding = 10.0

	// QRWidthRatio QR bandının hücre genişliğine oranı (alt sınır).
	QRWidthRatio = 0.95

	// BannerLineFactor banner yazı boyutunun alt banner yüksekliğine çarpanı.
	BannerLineFactor = 1.6

	// MinQRSide bundan küçük QR bölgesi okunamaz kabul edilir.
	MinQRSide = 16.0

	maxImageColumnRatio = 0.4
)

// SheetParams baskı ızgarasının operatör tarafından ayarlanabilen boşlukları.
// Sıfır değerli alanlar PageSpec varsayılanlarını değil sıfırı ifade eder;
// varsayılanlar DefaultSheetParams ile alınır.
type SheetParams struct {
	TopMargin     float64
	VerticalGap   float64
	HorizontalGap float64
	LeftMargin    *float64 // nil = yatayda ortala
}

// DefaultSheetParams sayfanın varsayılan boşluklarını döndürür.
func DefaultSheetParams(page PageSpec) SheetParams {
	return SheetParams{
		TopMargin:     page.DefaultTopMargin,
		VerticalGap:   page.DefaultVerticalGap,
		HorizontalGap: page.DefaultHorizontalGap,
	}
}

// Validate sınırları kontrol eder; kırpma yapmaz.
func (s SheetParams) Validate() error {
	if s.TopMargin < 0 || s.TopMargin > MaxTopMargin {
		return invalidf("top_margin", "%.2f, 0-%.0f aralığında olmalı", s.TopMargin, MaxTopMargin)
	}
	if s.VerticalGap < 0 || s.VerticalGap > MaxVerticalGap {
		return invalidf("vertical_gap", "%.2f, 0-%.0f aralığında olmalı", s.VerticalGap, MaxVerticalGap)
	}
	if s.HorizontalGap < 0 || s.HorizontalGap > MaxHorizontalGap {
		return invalidf("horizontal_gap", "%.2f, 0-%.0f aralığında olmalı", s.HorizontalGap, MaxHorizontalGap)
	}
	if s.LeftMargin != nil && (*s.LeftMargin < 0 || *s.LeftMargin > MaxLeftMargin) {
		return invalidf("left_margin", "%.2f, 0-%.0f aralığında olmalı", *s.LeftMargin, MaxLeftMargin)
	}
	return nil
}

// Params Resolve'un varyanta göre kullandığı girdiler.
type Params struct {
	Sheet SheetParams

	// standard / background
	WithImage bool

	// qr
	BannerFontSize float64
	QRPadding      float64

	// background
	Position Anchor
	WithQR   bool
}

// StandardCell standart etiketin bölgeleri: solda görsel, sağda metin.
type StandardCell struct {
	Image Rect // WithImage=false ise boş
	Text  Rect
}

// QRCell QR çerçeveli etiketin bölgeleri; Top.H == 2 × Bottom.H.
type QRCell struct {
	TopBanner    Rect
	QR           Rect // kare
	BottomBanner Rect
}

// BackgroundCell sanal arka planın bölgeleri.
type BackgroundCell struct {
	Image Rect
	Text  Rect
	QR    Rect
}

// Cell ızgaradaki bir etiket örneği.
type Cell struct {
	Index      int
	Bounds     Rect
	Standard   *StandardCell
	QR         *QRCell
	Background *BackgroundCell
}

// Geometry bir render isteği için hesaplanan, saklanmayan yerleşim.
type Geometry struct {
	Variant Variant
	Page    PageSpec
	Cells   []Cell
}

// Resolve varyant, sayfa ve parametrelerden geometriyi hesaplar.
func Resolve(variant Variant, page PageSpec, p Params) (*Geometry, error) {
	cells, err := Grid(page, p.Sheet)
	if err != nil {
		return nil, err
	}

	g := &Geometry{Variant: variant, Page: page, Cells: make([]Cell, len(cells))}
	for i, bounds := range cells {
		c := Cell{Index: i, Bounds: bounds}
		switch variant {
		case VariantStandard:
			sc := StandardRegions(bounds, p.WithImage)
			c.Standard = &sc
		case VariantQR:
			qc, err := QRRegions(bounds, p.BannerFontSize, p.QRPadding)
			if err != nil {
				return nil, err
			}
			c.QR = &qc
		case VariantBackground:
			anchor := p.Position
			if anchor == "" {
				anchor = AnchorBottomLeft
			}
			bc := BackgroundRegions(bounds, anchor, p.WithImage, p.WithQR)
			c.Background = &bc
		default:
			return nil, invalidf("variant", "bilinmeyen varyant %q", variant)
		}
		g.Cells[i] = c
	}
	return g, nil
}

// Grid sayfadaki hücre dikdörtgenlerini satır satır döndürür.
// Tek hücreli sayfalarda hücre sayfanın tamamıdır ve boşluk parametreleri yok sayılır.
func Grid(page PageSpec, s SheetParams) ([]Rect, error) {
	if page.Columns <= 0 || page.Rows <= 0 || page.CellWidth <= 0 || page.CellHeight <= 0 {
		return nil, invalidf("page", "geçersiz sayfa tanımı %q", page.Name)
	}
	if !page.IsGrid() {
		return []Rect{{W: page.CellWidth, H: page.CellHeight}}, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	cols, rows := float64(page.Columns), float64(page.Rows)
	gridW := cols*page.CellWidth + (cols-1)*s.HorizontalGap
	gridH := rows*page.CellHeight + (rows-1)*s.VerticalGap

	left := (page.Width - gridW) / 2
	if s.LeftMargin != nil {
		left = *s.LeftMargin
	}
	if left < 0 || left+gridW > page.Width+1e-6 {
		field := "horizontal_gap"
		if s.LeftMargin != nil && *s.LeftMargin > 0 {
			field = "left_margin"
		}
		return nil, invalidf(field, "ızgara sayfa genişliğine sığmıyor (%.2f > %.2f)", left+gridW, page.Width)
	}
	if s.TopMargin+gridH > page.Height+1e-6 {
		field := "vertical_gap"
		if s.VerticalGap == 0 {
			field = "top_margin"
		}
		return nil, invalidf(field, "ızgara sayfa yüksekliğine sığmıyor (%.2f > %.2f)", s.TopMargin+gridH, page.Height)
	}

	cells := make([]Rect, 0, page.Columns*page.Rows)
	for row := 0; row < page.Rows; row++ {
		for col := 0; col < page.Columns; col++ {
			cells = append(cells, Rect{
				X: left + float64(col)*(page.CellWidth+s.HorizontalGap),
				Y: s.TopMargin + float64(row)*(page.CellHeight+s.VerticalGap),
				W: page.CellWidth,
				H: page.CellHeight,
			})
		}
	}
	return cells, nil
}

// StandardRegions hücreyi görsel sütunu ve metin sütunu olarak böler.
func StandardRegions(cell Rect, withImage bool) StandardCell {
	inner := cell.Inset(CellPadding)
	if !withImage {
		return StandardCell{Text: inner}
	}
	side := math.Min(inner.H, inner.W*maxImageColumnRatio)
	img := Rect{X: inner.X, Y: inner.Y + (inner.H-side)/2, W: side, H: side}
	text := Rect{X: img.Right() + CellPadding, Y: inner.Y, W: inner.Right() - img.Right() - CellPadding, H: inner.H}
	return StandardCell{Image: img, Text: text}
}

// BottomBannerHeight banner yazı boyutundan alt banner yüksekliğini hesaplar.
// Üst banner her zaman bunun iki katıdır.
func BottomBannerHeight(bannerFontSize float64) float64 {
	return bannerFontSize * BannerLineFactor
}

// QRRegions hücreyi üst banner, kare QR bandı ve alt banner olarak böler.
func QRRegions(cell Rect, bannerFontSize, padding float64) (QRCell, error) {
	if bannerFontSize <= 0 {
		return QRCell{}, invalidf("banner_font_size", "pozitif olmalı")
	}
	if padding < 0 {
		return QRCell{}, invalidf("qr_padding", "negatif olamaz")
	}
	bottomH := BottomBannerHeight(bannerFontSize)
	topH := 2 * bottomH

	band := cell.H - topH - bottomH
	side := math.Min(cell.W*QRWidthRatio, band-2*padding)
	if side < MinQRSide {
		// bannerlar tek başına yer bırakıyorsa taşmayı boşluk yaratmıştır
		if band >= MinQRSide && padding > 0 {
			return QRCell{}, invalidf("qr_padding", "%.2f boşluk QR için yer bırakmıyor (QR kenarı %.2f)", padding, side)
		}
		return QRCell{}, invalidf("banner_font_size", "bannerlar QR için yer bırakmıyor (QR kenarı %.2f)", side)
	}

	top := Rect{X: cell.X, Y: cell.Y, W: cell.W, H: topH}
	bottom := Rect{X: cell.X, Y: cell.Bottom() - bottomH, W: cell.W, H: bottomH}
	qr := Rect{
		X: cell.X + (cell.W-side)/2,
		Y: top.Bottom() + (band-side)/2,
		W: side,
		H: side,
	}
	return QRCell{TopBanner: top, QR: qr, BottomBanner: bottom}, nil
}

// BackgroundRegions metin bloğunu köşeye, görseli bloğun üstüne, QR'ı çapraz köşeye yerleştirir.
func BackgroundRegions(canvas Rect, anchor Anchor, withImage, withQR bool) BackgroundCell {
	margin := canvas.H * 0.05
	textW, textH := canvas.W*0.42, canvas.H*0.30
	imgSide := canvas.H * 0.16
	qrSide := canvas.H * 0.20

	var bc BackgroundCell
	blockH := textH
	if withImage {
		blockH += imgSide + margin/2
	}

	x := canvas.X + margin
	if anchor.right() {
		x = canvas.Right() - margin - textW
	}
	y := canvas.Y + margin
	if anchor.bottom() {
		y = canvas.Bottom() - margin - blockH
	}

	if withImage {
		imgX := x
		if anchor.right() {
			imgX = x + textW - imgSide
		}
		bc.Image = Rect{X: imgX, Y: y, W: imgSide, H: imgSide}
		y += imgSide + margin/2
	}
	bc.Text = Rect{X: x, Y: y, W: textW, H: textH}

	if withQR {
		qx := canvas.Right() - margin - qrSide
		if anchor.right() {
			qx = canvas.X + margin
		}
		qy := canvas.Bottom() - margin - qrSide
		if anchor.bottom() {
			qy = canvas.Y + margin
		}
		bc.QR = Rect{X: qx, Y: qy, W: qrSide, H: qrSide}
	}
	return bc
}
