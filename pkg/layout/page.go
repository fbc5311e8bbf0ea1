package layout

import "math"

const (
	PointsPerInch = 72.0
	TagDPI        = 300.0
	QRTagDPI      = 150.0

	// Tek etiket boyutu: 3.375in × 2.33in
	TagWidth  = 3.375 * PointsPerInch
	TagHeight = 2.33 * PointsPerInch

	SheetColumns = 2
	SheetRows    = 4
	SheetCells   = SheetColumns * SheetRows
)

// Izgara parametre sınırları (punto).
const (
	MaxTopMargin     = 100.0
	MaxVerticalGap   = 50.0
	MaxHorizontalGap = 100.0
	MaxLeftMargin    = 200.0
)

// PageSpec çıktının fiziksel boyutunu ve hücre ızgarasını sabitler.
type PageSpec struct {
	Name       string
	Width      float64
	Height     float64
	Columns    int
	Rows       int
	CellWidth  float64
	CellHeight float64
	DPI        float64 // raster çıktıda punto → piksel dönüşümü

	// Izgara parametreleri verilmediğinde kullanılan varsayılanlar
	DefaultTopMargin     float64
	DefaultVerticalGap   float64
	DefaultHorizontalGap float64
}

var (
	// SingleTag canlı önizleme için tek isim etiketi.
	SingleTag = PageSpec{
		Name: "single", Width: TagWidth, Height: TagHeight,
		Columns: 1, Rows: 1, CellWidth: TagWidth, CellHeight: TagHeight, DPI: TagDPI,
	}

	// LetterSheet 8'li (2 sütun × 4 satır) Letter baskı sayfası.
	LetterSheet = PageSpec{
		Name: "letter-8up", Width: 8.5 * PointsPerInch, Height: 11 * PointsPerInch,
		Columns: SheetColumns, Rows: SheetRows, CellWidth: TagWidth, CellHeight: TagHeight, DPI: TagDPI,
		DefaultTopMargin: 36, DefaultVerticalGap: 12, DefaultHorizontalGap: 18,
	}
)

// QRTagSingle istenen QR boyutunu tam olarak taşıyan tek QR çerçeveli etiket sayfası.
// Genişlik, QR bandı hücre genişliğinin %95'i olacak şekilde seçilir.
func QRTagSingle(qrSize, padding, bannerFontSize float64) PageSpec {
	w := qrSize / QRWidthRatio
	h := qrSize + 2*padding + 3*BottomBannerHeight(bannerFontSize)
	return PageSpec{
		Name: "qr-single", Width: w, Height: h,
		Columns: 1, Rows: 1, CellWidth: w, CellHeight: h, DPI: QRTagDPI,
	}
}

// Background sanal arka plan tuvali; birimler piksel (DPI 72 → 1:1).
func Background(width, height int) PageSpec {
	w, h := float64(width), float64(height)
	return PageSpec{
		Name: "background", Width: w, Height: h,
		Columns: 1, Rows: 1, CellWidth: w, CellHeight: h, DPI: PointsPerInch,
	}
}

// Scale punto → piksel çarpanı.
func (p PageSpec) Scale() float64 {
	if p.DPI <= 0 {
		return 1
	}
	return p.DPI / PointsPerInch
}

// PixelSize sayfanın raster boyutu.
func (p PageSpec) PixelSize() (int, int) {
	k := p.Scale()
	return int(math.Round(p.Width * k)), int(math.Round(p.Height * k))
}

// Bounds sayfanın tamamı.
func (p PageSpec) Bounds() Rect {
	return Rect{W: p.Width, H: p.Height}
}

// IsGrid birden fazla hücre içeren baskı sayfası mı?
func (p PageSpec) IsGrid() bool {
	return p.Columns*p.Rows > 1
}
