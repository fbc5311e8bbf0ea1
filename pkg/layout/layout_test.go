package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// sheetSweep belgelenen tüm ızgara sınırlarını tarar: üst 0-100, dikey 0-50,
// yatay 0-100, sol nil veya 0-200.
func sheetSweep(fn func(SheetParams)) {
	lefts := []*float64{nil}
	for l := 0; l <= int(MaxLeftMargin); l += 20 {
		v := float64(l)
		lefts = append(lefts, &v)
	}
	for top := 0; top <= int(MaxTopMargin); top += 10 {
		for vg := 0; vg <= int(MaxVerticalGap); vg += 5 {
			for hg := 0; hg <= int(MaxHorizontalGap); hg += 10 {
				for _, left := range lefts {
					fn(SheetParams{TopMargin: float64(top), VerticalGap: float64(vg), HorizontalGap: float64(hg), LeftMargin: left})
				}
			}
		}
	}
}

func TestGridLetterSheetCellsDisjoint(t *testing.T) {
	page := LetterSheet.Bounds()
	accepted := 0
	sheetSweep(func(s SheetParams) {
		cells, err := Grid(LetterSheet, s)
		if err != nil {
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("%+v: beklenmeyen hata %v", s, err)
			}
			return
		}
		accepted++
		if len(cells) != SheetCells {
			t.Fatalf("%+v: hücre sayısı = %d, beklenen %d", s, len(cells), SheetCells)
		}
		for i, c := range cells {
			if !c.Within(page) {
				t.Fatalf("%+v: hücre %d sayfa dışında: %+v", s, i, c)
			}
			for j := i + 1; j < len(cells); j++ {
				if c.Overlaps(cells[j]) {
					t.Fatalf("%+v: hücre %d ve %d çakışıyor", s, i, j)
				}
			}
		}
	})
	if accepted == 0 {
		t.Fatal("hiçbir ızgara kabul edilmedi")
	}
	if _, err := Grid(LetterSheet, DefaultSheetParams(LetterSheet)); err != nil {
		t.Errorf("varsayılan ızgara reddedildi: %v", err)
	}
}

func TestGridFitErrorNamesField(t *testing.T) {
	tests := []struct {
		s     SheetParams
		field string
	}{
		{SheetParams{VerticalGap: 50}, "vertical_gap"},
		{SheetParams{TopMargin: 100, VerticalGap: 10}, "vertical_gap"},
		{SheetParams{TopMargin: 100}, ""},
		{SheetParams{HorizontalGap: 100, LeftMargin: &[]float64{150}[0]}, "left_margin"},
	}
	for _, tt := range tests {
		_, err := Grid(LetterSheet, tt.s)
		if tt.field == "" {
			if err != nil {
				t.Errorf("%+v: sığmalıydı: %v", tt.s, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidParameter) || !strings.Contains(err.Error(), tt.field) {
			t.Errorf("%+v: hata %v, %q alanını içermeli", tt.s, err, tt.field)
		}
	}
}

func TestGridCentersWithoutLeftMargin(t *testing.T) {
	s := DefaultSheetParams(LetterSheet)
	cells, err := Grid(LetterSheet, s)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	left := cells[0].X
	right := LetterSheet.Width - cells[1].Right()
	if math.Abs(left-right) > 1e-9 {
		t.Errorf("ızgara ortalanmamış: sol=%.3f sağ=%.3f", left, right)
	}
}

func TestGridCellOrigins(t *testing.T) {
	left := 20.0
	s := SheetParams{TopMargin: 10, VerticalGap: 5, HorizontalGap: 7, LeftMargin: &left}
	cells, err := Grid(LetterSheet, s)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	// satır 1, sütun 1
	c := cells[3]
	wantX := left + 1*(TagWidth+7)
	wantY := 10 + 1*(TagHeight+5)
	if math.Abs(c.X-wantX) > 1e-9 || math.Abs(c.Y-wantY) > 1e-9 {
		t.Errorf("hücre 3 = (%.3f, %.3f), beklenen (%.3f, %.3f)", c.X, c.Y, wantX, wantY)
	}
}

func TestGridRejectsOutOfRange(t *testing.T) {
	neg := -1.0
	big := 250.0
	tests := []struct {
		name string
		s    SheetParams
	}{
		{"negatif üst boşluk", SheetParams{TopMargin: -1}},
		{"büyük üst boşluk", SheetParams{TopMargin: 101}},
		{"büyük dikey aralık", SheetParams{VerticalGap: 51}},
		{"büyük yatay aralık", SheetParams{HorizontalGap: 101}},
		{"negatif sol boşluk", SheetParams{LeftMargin: &neg}},
		{"büyük sol boşluk", SheetParams{LeftMargin: &big}},
		{"sayfaya sığmayan", SheetParams{TopMargin: 100, VerticalGap: 50}},
		{"yatayda taşan", SheetParams{HorizontalGap: 100, LeftMargin: &[]float64{150}[0]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Grid(LetterSheet, tt.s)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("hata = %v, ErrInvalidParameter bekleniyordu", err)
			}
		})
	}
}

func TestGridSingleIgnoresSheetParams(t *testing.T) {
	cells, err := Grid(SingleTag, SheetParams{TopMargin: 999})
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	if len(cells) != 1 || cells[0] != SingleTag.Bounds() {
		t.Errorf("tek hücre beklenen %+v, gelen %+v", SingleTag.Bounds(), cells)
	}
}

func TestQRRegionsTopTwiceBottom(t *testing.T) {
	cell := Rect{W: TagWidth, H: TagHeight}
	accepted := 0
	for fs := 6; fs <= 36; fs++ {
		for pad := 0; pad <= 50; pad++ {
			qc, err := QRRegions(cell, float64(fs), float64(pad))
			if err != nil {
				if !errors.Is(err, ErrInvalidParameter) {
					t.Fatalf("fs=%d pad=%d: beklenmeyen hata %v", fs, pad, err)
				}
				continue
			}
			accepted++
			if math.Abs(qc.TopBanner.H-2*qc.BottomBanner.H) > 1e-9 {
				t.Errorf("fs=%d: üst=%.3f alt=%.3f", fs, qc.TopBanner.H, qc.BottomBanner.H)
			}
			if qc.QR.W != qc.QR.H || qc.QR.W < MinQRSide {
				t.Errorf("fs=%d pad=%d: QR %+v", fs, pad, qc.QR)
			}
			if qc.QR.Overlaps(qc.TopBanner) || qc.QR.Overlaps(qc.BottomBanner) {
				t.Errorf("fs=%d pad=%d: QR bannerlarla çakışıyor", fs, pad)
			}
			for _, r := range []Rect{qc.TopBanner, qc.QR, qc.BottomBanner} {
				if !r.Within(cell) {
					t.Errorf("fs=%d pad=%d: bölge hücre dışında %+v", fs, pad, r)
				}
			}
		}
	}
	if accepted == 0 {
		t.Fatal("hiçbir banner/boşluk kabul edilmedi")
	}
}

func TestQRRegionsErrorNamesField(t *testing.T) {
	cell := Rect{W: TagWidth, H: TagHeight}
	if _, err := QRRegions(cell, 12, 50); err == nil || !strings.Contains(err.Error(), "qr_padding") {
		t.Errorf("boşluk taşması qr_padding'i göstermeli: %v", err)
	}
	if _, err := QRRegions(cell, 36, 0); err == nil || !strings.Contains(err.Error(), "banner_font_size") {
		t.Errorf("banner taşması banner_font_size'ı göstermeli: %v", err)
	}
}

func TestQRTagSingleUsesWidthRatio(t *testing.T) {
	page := QRTagSingle(300, 10, 12)
	qc, err := QRRegions(page.Bounds(), 12, 10)
	if err != nil {
		t.Fatalf("QRRegions: %v", err)
	}
	if math.Abs(qc.QR.W-300) > 1e-6 {
		t.Errorf("QR kenarı = %.3f, beklenen 300", qc.QR.W)
	}
	if qc.QR.W < QRWidthRatio*page.Width-1e-6 {
		t.Errorf("QR genişliği %.3f, sayfanın %%95'inden küçük", qc.QR.W)
	}
}

func TestQRRegionsBannerTooLarge(t *testing.T) {
	_, err := QRRegions(Rect{W: TagWidth, H: TagHeight}, 40, 4)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("hata = %v, ErrInvalidParameter bekleniyordu", err)
	}
}

func TestStandardRegions(t *testing.T) {
	cell := Rect{X: 54, Y: 36, W: TagWidth, H: TagHeight}

	sc := StandardRegions(cell, true)
	if sc.Image.W != sc.Image.H {
		t.Errorf("görsel kare değil: %+v", sc.Image)
	}
	if sc.Image.W > cell.W*maxImageColumnRatio {
		t.Errorf("görsel sütunu çok geniş: %.2f", sc.Image.W)
	}
	if sc.Image.Overlaps(sc.Text) {
		t.Errorf("görsel ve metin çakışıyor")
	}
	if !sc.Image.Within(cell) || !sc.Text.Within(cell) {
		t.Errorf("bölgeler hücre dışında")
	}

	noImg := StandardRegions(cell, false)
	if !noImg.Image.Empty() {
		t.Errorf("görselsiz düzende görsel bölgesi boş olmalı")
	}
	if noImg.Text.W <= sc.Text.W {
		t.Errorf("görselsiz metin sütunu daha geniş olmalı")
	}
}

func TestBackgroundRegionsAnchors(t *testing.T) {
	canvas := Background(1920, 1080).Bounds()
	for _, a := range []Anchor{AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight} {
		bc := BackgroundRegions(canvas, a, true, true)
		for name, r := range map[string]Rect{"text": bc.Text, "image": bc.Image, "qr": bc.QR} {
			if !r.Within(canvas) {
				t.Errorf("%s: %s tuval dışında %+v", a, name, r)
			}
		}
		if bc.QR.Overlaps(bc.Text) || bc.QR.Overlaps(bc.Image) {
			t.Errorf("%s: QR metin bloğuyla çakışıyor", a)
		}
		if bc.Image.Overlaps(bc.Text) {
			t.Errorf("%s: görsel metinle çakışıyor", a)
		}
		if a.right() != (bc.Text.X > canvas.W/2) {
			t.Errorf("%s: metin yanlış tarafta X=%.1f", a, bc.Text.X)
		}
	}

	bare := BackgroundRegions(canvas, AnchorBottomLeft, false, false)
	if !bare.Image.Empty() || !bare.QR.Empty() {
		t.Errorf("görsel/QR kapalıyken bölgeler boş olmalı")
	}
}

func TestResolveStandardSheet(t *testing.T) {
	g, err := Resolve(VariantStandard, LetterSheet, Params{Sheet: DefaultSheetParams(LetterSheet), WithImage: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(g.Cells) != SheetCells {
		t.Fatalf("hücre sayısı = %d", len(g.Cells))
	}
	for _, c := range g.Cells {
		if c.Standard == nil || c.QR != nil || c.Background != nil {
			t.Fatalf("hücre %d yanlış bölge türü", c.Index)
		}
		if !c.Standard.Text.Within(c.Bounds) {
			t.Errorf("hücre %d metin bölgesi dışarı taşıyor", c.Index)
		}
	}
}

func TestResolveUnknownVariant(t *testing.T) {
	_, err := Resolve(Variant("poster"), SingleTag, Params{})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("hata = %v", err)
	}
}

func TestParseHelpers(t *testing.T) {
	if _, err := ParseVariant("qr"); err != nil {
		t.Errorf("ParseVariant(qr): %v", err)
	}
	if _, err := ParseVariant("QR"); err == nil {
		t.Errorf("ParseVariant büyük harfe duyarlı olmalı")
	}
	if _, err := ParseAnchor("middle"); err == nil {
		t.Errorf("ParseAnchor(middle) hata vermeli")
	}
}
