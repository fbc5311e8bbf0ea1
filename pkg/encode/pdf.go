package encode

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"kartvizit.link/pkg/compose"
	"kartvizit.link/pkg/layout"
)

const (
	DefaultCopies = layout.SheetCells
	MinCopies     = 1
	MaxCopies     = 64

	cellImageName = "cell"
)

// CheckCopies kopya sayısını doğrular; 0 varsayılan (bir tam sayfa) demektir.
func CheckCopies(n int) (int, error) {
	if n == 0 {
		return DefaultCopies, nil
	}
	if n < MinCopies || n > MaxCopies {
		return 0, fmt.Errorf("%w: copies: %d, %d-%d aralığında olmalı", layout.ErrInvalidParameter, n, MinCopies, MaxCopies)
	}
	return n, nil
}

func newDocument(page layout.PageSpec, title string) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("kartvizit.link", true)
	pdf.SetTitle(title, true)
	return pdf
}

// EncodeSheetPDF hücre rasterını ızgaradaki her hücreye yerleştirir. copies hücre
// sayısını aşarsa yeni sayfalar eklenir; son sayfada sadece kalan kopyalar basılır.
// Her hücrenin çevresine kesim kılavuzu çizilir.
func EncodeSheetPDF(canvas *compose.Canvas, copies int, filename string) (*Artifact, error) {
	if canvas == nil || canvas.Geometry == nil || len(canvas.Geometry.Cells) == 0 {
		return nil, fmt.Errorf("PDF kodlanamadı: boş geometri")
	}
	copies, err := CheckCopies(copies)
	if err != nil {
		return nil, err
	}

	var cellPNG bytes.Buffer
	if err := pngEncoder.Encode(&cellPNG, canvas.Cell); err != nil {
		return nil, fmt.Errorf("PDF hücre görseli kodlanamadı: %w", err)
	}

	geo := canvas.Geometry
	pdf := newDocument(geo.Page, filename)
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(cellImageName, opts, &cellPNG)

	placed := 0
	for p := 0; p < PageCount(copies, len(geo.Cells)); p++ {
		pdf.AddPage()
		for _, cell := range geo.Cells {
			if placed == copies {
				break
			}
			b := cell.Bounds
			pdf.ImageOptions(cellImageName, b.X, b.Y, b.W, b.H, false, opts, 0, "")
			drawCutGuide(pdf, b)
			placed++
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("PDF oluşturulamadı: %w", pdf.Error())
	}
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("PDF yazılamadı: %w", err)
	}
	return &Artifact{ContentType: FormatPDF.ContentType(), Filename: filename, Body: out.Bytes()}, nil
}

// PageCount copies için gereken sayfa sayısı.
func PageCount(copies, cellsPerPage int) int {
	if cellsPerPage <= 0 {
		return 0
	}
	return (copies + cellsPerPage - 1) / cellsPerPage
}

func drawCutGuide(pdf *gofpdf.Fpdf, r layout.Rect) {
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.5)
	pdf.SetDashPattern([]float64{3, 3}, 0)
	pdf.Rect(r.X, r.Y, r.W, r.H, "D")
	pdf.SetDashPattern([]float64{}, 0)
}

// ErrorPDF yanıt zaten application/pdf olarak başladıysa gönderilen tek sayfalık hata belgesi.
func ErrorPDF(msg string) []byte {
	pdf := newDocument(layout.LetterSheet, "error")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(185, 28, 28)
	pdf.Text(72, 96, "Render hatasi")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(60, 60, 60)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetXY(72, 112)
	pdf.MultiCell(468, 14, tr(msg), "", "L", false)

	var out bytes.Buffer
	_ = pdf.Output(&out)
	return out.Bytes()
}
