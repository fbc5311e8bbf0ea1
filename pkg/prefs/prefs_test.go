package prefs

import (
	"errors"
	"math"
	"strings"
	"testing"

	"kartvizit.link/pkg/layout"
	"kartvizit.link/pkg/queryparams"
)

func TestDefaultsAreValid(t *testing.T) {
	nt := DefaultNameTag()
	if err := nt.Validate(); err != nil {
		t.Errorf("DefaultNameTag: %v", err)
	}
	qr := DefaultQRTag()
	if err := qr.Validate(ModeFull); err != nil {
		t.Errorf("DefaultQRTag: %v", err)
	}
	bg := DefaultBackground()
	if err := bg.Validate(); err != nil {
		t.Errorf("DefaultBackground: %v", err)
	}
}

func TestNameTagValidateRejects(t *testing.T) {
	left := 250.0
	tests := []struct {
		name   string
		mutate func(*NameTag)
	}{
		{"font boyutu küçük", func(p *NameTag) { p.FontSize = 7 }},
		{"font boyutu büyük", func(p *NameTag) { p.FontSize = 25 }},
		{"satır aralığı", func(p *NameTag) { p.LineSpacing = 3 }},
		{"kısa renk", func(p *NameTag) { p.TextColor = "#fff" }},
		{"isimli renk", func(p *NameTag) { p.BackgroundColor = "red" }},
		{"bilinmeyen font", func(p *NameTag) { p.FontFamily = "comic-sans" }},
		{"görsel kaynağı", func(p *NameTag) { p.ImageSource = "cover" }},
		{"sol boşluk", func(p *NameTag) { p.LeftMargin = &left }},
		{"dikey aralık", func(p *NameTag) { p.VerticalGap = 60 }},
		{"sürüm", func(p *NameTag) { p.Version = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultNameTag()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, layout.ErrInvalidParameter) {
				t.Errorf("hata = %v, ErrInvalidParameter bekleniyordu", err)
			}
		})
	}
}

func TestQRTagSizeDependsOnMode(t *testing.T) {
	p := DefaultQRTag()
	p.QRSize = 100
	if err := p.Validate(ModeFull); err == nil {
		t.Error("full modda 100 reddedilmeli")
	}
	if err := p.Validate(ModePreview); err != nil {
		t.Errorf("preview modda 100 kabul edilmeli: %v", err)
	}
	p.QRSize = 501
	if err := p.Validate(ModeFull); err == nil {
		t.Error("501 reddedilmeli")
	}
}

func TestQRTagBannerLimits(t *testing.T) {
	p := DefaultQRTag()
	p.BannerFontSize = 40
	if err := p.Validate(ModeFull); err == nil {
		t.Error("banner font boyutu 40 reddedilmeli")
	}
	p = DefaultQRTag()
	p.TopBannerText = string(make([]rune, MaxBannerTextLength+1))
	if err := p.Validate(ModeFull); err == nil {
		t.Error("uzun banner metni reddedilmeli")
	}
}

func TestBackgroundValidate(t *testing.T) {
	p := DefaultBackground()
	p.Position = "center"
	if err := p.Validate(); err == nil {
		t.Error("bilinmeyen konum reddedilmeli")
	}
	p = DefaultBackground()
	p.Resolution = "800x600"
	if err := p.Validate(); err == nil {
		t.Error("desteklenmeyen çözünürlük reddedilmeli")
	}
	p = DefaultBackground()
	p.Resolution = "1280x720"
	if w, h := p.Page().PixelSize(); w != 1280 || h != 720 {
		t.Errorf("tuval %dx%d", w, h)
	}
}

func TestVersionDefaultsToCurrent(t *testing.T) {
	p := DefaultNameTag()
	p.Version = 0
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	if p.Version != CurrentVersion {
		t.Errorf("Version = %d", p.Version)
	}
}

func TestQueryKeysFlattenEmbedded(t *testing.T) {
	keys := queryparams.Keys(NameTag{})
	for _, k := range []string{"include_name", "font_size", "left_margin", "image_source"} {
		if _, ok := keys[k]; !ok {
			t.Errorf("%q anahtarı bekleniyordu", k)
		}
	}
	if _, ok := keys["version"]; ok {
		t.Error("version sorgu ile değiştirilememeli")
	}

	err := queryparams.RejectUnknown(layout.ErrInvalidParameter, map[string]string{"font_size": "10", "font_colour": "#000000"}, keys)
	if !errors.Is(err, layout.ErrInvalidParameter) {
		t.Errorf("bilinmeyen parametre reddedilmeli, gelen %v", err)
	}
}

func TestConvertNameTag(t *testing.T) {
	p := DefaultNameTag()
	p.ImageSource = "profile"
	p.IncludePhone = true
	if !p.LayoutParams().WithImage {
		t.Error("profil seçiliyken görsel sütunu ayrılmalı")
	}
	st := p.Style()
	if !st.Text.Include.Phone || st.Text.Include.Email {
		t.Errorf("include dönüşümü hatalı: %+v", st.Text.Include)
	}
	if st.Background.R != 0xFF || st.Text.Color.R != 0 {
		t.Errorf("renk dönüşümü hatalı: %+v %+v", st.Background, st.Text.Color)
	}
}

func checkSheetGeometry(t *testing.T, geo *layout.Geometry) {
	t.Helper()
	if len(geo.Cells) != layout.SheetCells {
		t.Fatalf("hücre sayısı = %d", len(geo.Cells))
	}
	page := layout.LetterSheet.Bounds()
	for i, c := range geo.Cells {
		if !c.Bounds.Within(page) {
			t.Fatalf("hücre %d sayfa dışında: %+v", i, c.Bounds)
		}
		for j := i + 1; j < len(geo.Cells); j++ {
			if c.Bounds.Overlaps(geo.Cells[j].Bounds) {
				t.Fatalf("hücre %d ve %d çakışıyor", i, j)
			}
		}
		if q := c.QR; q != nil && math.Abs(q.TopBanner.H-2*q.BottomBanner.H) > 1e-9 {
			t.Fatalf("hücre %d: üst banner %.3f, alt %.3f", i, q.TopBanner.H, q.BottomBanner.H)
		}
	}
}

func TestValidNameTagAlwaysFitsSheet(t *testing.T) {
	lefts := []*float64{nil}
	for l := 0; l <= int(layout.MaxLeftMargin); l += 20 {
		v := float64(l)
		lefts = append(lefts, &v)
	}
	accepted, rejected := 0, 0
	for top := 0; top <= int(layout.MaxTopMargin); top += 10 {
		for vg := 0; vg <= int(layout.MaxVerticalGap); vg += 5 {
			for hg := 0; hg <= int(layout.MaxHorizontalGap); hg += 10 {
				for _, left := range lefts {
					p := DefaultNameTag()
					p.Sheet = Sheet{TopMargin: float64(top), VerticalGap: float64(vg), HorizontalGap: float64(hg), LeftMargin: left}
					if err := p.Validate(); err != nil {
						if !errors.Is(err, layout.ErrInvalidParameter) {
							t.Fatalf("%+v: beklenmeyen hata %v", p.Sheet, err)
						}
						rejected++
						continue
					}
					accepted++
					geo, err := layout.Resolve(layout.VariantStandard, layout.LetterSheet, p.LayoutParams())
					if err != nil {
						t.Fatalf("%+v: kabul edildi ama çözülemedi: %v", p.Sheet, err)
					}
					checkSheetGeometry(t, geo)
				}
			}
		}
	}
	if accepted == 0 || rejected == 0 {
		t.Errorf("kabul=%d red=%d; iki durum da görülmeli", accepted, rejected)
	}
}

func TestValidQRTagAlwaysFitsSheet(t *testing.T) {
	accepted := 0
	for fs := int(MinBannerFontSize); fs <= int(MaxBannerFontSize); fs++ {
		for pad := 0; pad <= int(MaxQRPadding); pad++ {
			p := DefaultQRTag()
			p.BannerFontSize, p.QRPadding = float64(fs), float64(pad)
			if err := p.Validate(ModeFull); err != nil {
				if !errors.Is(err, layout.ErrInvalidParameter) {
					t.Fatalf("fs=%d pad=%d: beklenmeyen hata %v", fs, pad, err)
				}
				continue
			}
			accepted++
			geo, err := layout.Resolve(layout.VariantQR, layout.LetterSheet, p.LayoutParams())
			if err != nil {
				t.Fatalf("fs=%d pad=%d: kabul edildi ama sayfada çözülemedi: %v", fs, pad, err)
			}
			checkSheetGeometry(t, geo)
			if _, err := layout.Resolve(layout.VariantQR, p.SinglePage(), p.LayoutParams()); err != nil {
				t.Fatalf("fs=%d pad=%d: tek etiket çözülemedi: %v", fs, pad, err)
			}
		}
	}
	if accepted == 0 {
		t.Fatal("hiçbir banner/boşluk kabul edilmedi")
	}
}

func TestUnprintableCombinationsRejected(t *testing.T) {
	qr := DefaultQRTag()
	qr.BannerFontSize = MaxBannerFontSize
	if err := qr.Validate(ModeFull); !errors.Is(err, layout.ErrInvalidParameter) {
		t.Errorf("banner_font_size=36 reddedilmeli: %v", err)
	}

	qr = DefaultQRTag()
	qr.QRPadding = MaxQRPadding
	if err := qr.Validate(ModeFull); err == nil || !strings.Contains(err.Error(), "qr_padding") {
		t.Errorf("qr_padding=50 qr_padding hatasıyla reddedilmeli: %v", err)
	}

	nt := DefaultNameTag()
	nt.VerticalGap = layout.MaxVerticalGap
	if err := nt.Validate(); err == nil || !strings.Contains(err.Error(), "vertical_gap") {
		t.Errorf("vertical_gap=50 reddedilmeli: %v", err)
	}
}
