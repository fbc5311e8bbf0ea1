package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kartvizit.link/models"
	"kartvizit.link/pkg/compose"
	"kartvizit.link/pkg/encode"
	"kartvizit.link/pkg/layout"
	"kartvizit.link/pkg/prefs"
	"kartvizit.link/pkg/ratelimit"
	"kartvizit.link/views"

	"gorm.io/gorm"
)

type renderFixture struct {
	db      *gorm.DB
	svc     IRenderService
	limiter *ratelimit.Limiter
	owner   *models.User
	card    *models.Card
}

func newRenderFixture(t *testing.T, opts RenderOptions) *renderFixture {
	t.Helper()
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@example.com", false)
	cards := NewCardServiceWithDB(db)
	card := newTestCard(t, cards, owner.ID)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 10, time.Hour, ratelimit.WithClock(func() time.Time { return now }))
	renderer := compose.NewRenderer(nil, nil, nil, "https://kartvizit.link")
	svc := NewRenderServiceWithDB(db, cards, renderer, views.NewEngine(), limiter, NewAnalyticsServiceWithDB(db, cards), opts)
	return &renderFixture{db: db, svc: svc, limiter: limiter, owner: owner, card: card}
}

func (f *renderFixture) request(variant layout.Variant, format encode.Format) RenderRequest {
	return RenderRequest{CardID: f.card.ID, UserID: f.owner.ID, Variant: variant, Format: format, Mode: prefs.ModeFull}
}

func TestRenderBackgroundRateLimited(t *testing.T) {
	f := newRenderFixture(t, RenderOptions{})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := f.svc.Prepare(ctx, f.request(layout.VariantBackground, encode.FormatPNG), nil); err != nil {
			t.Fatalf("istek %d: %v", i+1, err)
		}
	}
	_, err := f.svc.Prepare(ctx, f.request(layout.VariantBackground, encode.FormatPNG), nil)
	var limited *ratelimit.LimitedError
	if !errors.Is(err, ratelimit.ErrRateLimited) || !errors.As(err, &limited) {
		t.Fatalf("11. istek sınırlanmalı, gelen %v", err)
	}
	if limited.RetryAfter != time.Hour {
		t.Errorf("RetryAfter = %s, beklenen 1h", limited.RetryAfter)
	}

	// isim etiketleri varsayılan olarak sınırlanmaz
	for i := 0; i < 12; i++ {
		if _, err := f.svc.Prepare(ctx, f.request(layout.VariantStandard, encode.FormatPNG), nil); err != nil {
			t.Fatalf("isim etiketi %d sınırlanmamalı: %v", i+1, err)
		}
	}
}

func TestRenderNameTagsLimitedWhenEnabled(t *testing.T) {
	f := newRenderFixture(t, RenderOptions{LimitNameTags: true})
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if _, err := f.svc.Prepare(ctx, f.request(layout.VariantQR, encode.FormatPDF), nil); err != nil {
			t.Fatalf("istek %d: %v", i+1, err)
		}
	}
	if _, err := f.svc.Prepare(ctx, f.request(layout.VariantStandard, encode.FormatHTML), nil); !errors.Is(err, ratelimit.ErrRateLimited) {
		t.Errorf("standart ve QR aynı hakkı paylaşmalı, gelen %v", err)
	}
	if _, err := f.svc.Prepare(ctx, f.request(layout.VariantBackground, encode.FormatPNG), nil); err != nil {
		t.Errorf("arka plan ayrı sayılmalı: %v", err)
	}
}

func TestRenderReleaseReturnsSlot(t *testing.T) {
	f := newRenderFixture(t, RenderOptions{})
	ctx := context.Background()
	job, err := f.svc.Prepare(ctx, f.request(layout.VariantBackground, encode.FormatPNG), nil)
	if err != nil {
		t.Fatal(err)
	}
	if rem, _ := f.limiter.Remaining(ctx, f.owner.ID, FeatureBackground); rem != 9 {
		t.Fatalf("Remaining = %d, beklenen 9", rem)
	}
	job.Release(ctx)
	if rem, _ := f.limiter.Remaining(ctx, f.owner.ID, FeatureBackground); rem != 10 {
		t.Errorf("iade sonrası Remaining = %d, beklenen 10", rem)
	}
}

func TestRenderPrepareErrors(t *testing.T) {
	f := newRenderFixture(t, RenderOptions{})
	ctx := context.Background()

	if _, err := f.svc.Prepare(ctx, f.request(layout.VariantBackground, encode.FormatPDF), nil); !errors.Is(err, ErrRenderUnsupported) {
		t.Errorf("arka plan PDF desteklenmemeli, gelen %v", err)
	}

	big := func(dst any) error {
		dst.(*prefs.NameTag).FontSize = 100
		return nil
	}
	if _, err := f.svc.Prepare(ctx, f.request(layout.VariantStandard, encode.FormatPNG), big); !errors.Is(err, ErrRenderInvalidInput) {
		t.Errorf("sınır dışı yazı boyutu ErrRenderInvalidInput vermeli, gelen %v", err)
	}

	copies := f.request(layout.VariantStandard, encode.FormatPDF)
	copies.Copies = 65
	if _, err := f.svc.Prepare(ctx, copies, nil); !errors.Is(err, ErrRenderInvalidInput) {
		t.Errorf("65 kopya reddedilmeli, gelen %v", err)
	}

	other := f.request(layout.VariantStandard, encode.FormatPNG)
	other.UserID = f.owner.ID + 100
	if _, err := f.svc.Prepare(ctx, other, nil); err == nil {
		t.Error("başka kullanıcı kartı render edememeli")
	}
}

func TestRenderQRPreviewMode(t *testing.T) {
	f := newRenderFixture(t, RenderOptions{})
	ctx := context.Background()
	small := func(dst any) error {
		dst.(*prefs.QRTag).QRSize = 50
		return nil
	}

	if _, err := f.svc.Prepare(ctx, f.request(layout.VariantQR, encode.FormatPNG), small); !errors.Is(err, ErrRenderInvalidInput) {
		t.Errorf("tam modda 50pt reddedilmeli, gelen %v", err)
	}
	req := f.request(layout.VariantQR, encode.FormatPNG)
	req.Mode = prefs.ModePreview
	if _, err := f.svc.Prepare(ctx, req, small); err != nil {
		t.Errorf("önizleme modunda 50pt kabul edilmeli: %v", err)
	}
}

func TestRenderEncodeFormats(t *testing.T) {
	f := newRenderFixture(t, RenderOptions{})
	ctx := context.Background()

	cases := []struct {
		variant  layout.Variant
		format   encode.Format
		prefix   string
		filename string
	}{
		{layout.VariantStandard, encode.FormatPNG, "\x89PNG", "Ada_Lovelace_O_Brien_Sons_Inc_nametag.png"},
		{layout.VariantQR, encode.FormatPDF, "%PDF", "Ada_Lovelace_O_Brien_Sons_Inc_qr_nametag.pdf"},
		{layout.VariantStandard, encode.FormatHTML, "<div", "Ada_Lovelace_O_Brien_Sons_Inc_nametag.html"},
		{layout.VariantQR, encode.FormatHTML, "<div", "Ada_Lovelace_O_Brien_Sons_Inc_qr_nametag.html"},
		{layout.VariantBackground, encode.FormatPNG, "\x89PNG", "Ada_Lovelace_O_Brien_Sons_Inc_virtual_background.png"},
	}
	for _, tc := range cases {
		job, err := f.svc.Prepare(ctx, f.request(tc.variant, tc.format), nil)
		if err != nil {
			t.Fatalf("%s.%s Prepare: %v", tc.variant, tc.format, err)
		}
		if job.Filename != tc.filename {
			t.Errorf("%s.%s dosya adı %q, beklenen %q", tc.variant, tc.format, job.Filename, tc.filename)
		}
		var buf bytes.Buffer
		if err := job.Encode(ctx, &buf); err != nil {
			t.Fatalf("%s.%s Encode: %v", tc.variant, tc.format, err)
		}
		if !strings.HasPrefix(strings.TrimSpace(buf.String()), tc.prefix) {
			t.Errorf("%s.%s gövdesi %q ile başlamalı", tc.variant, tc.format, tc.prefix)
		}
		if tc.variant == layout.VariantStandard && tc.format == encode.FormatHTML && !strings.Contains(buf.String(), "Ada Lovelace") {
			t.Error("standard.html parçası adı içermeli")
		}
	}

	var downloads int64
	f.db.Model(&models.CardEvent{}).Where("card_id = ? AND kind = ?", f.card.ID, models.CardEventDownload).Count(&downloads)
	if downloads != int64(len(cases)) {
		t.Errorf("%d indirme olayı kaydedilmeli, %d var", len(cases), downloads)
	}
}

func TestSavedSheetPreferencesAlwaysPrint(t *testing.T) {
	f := newRenderFixture(t, RenderOptions{})
	ctx := context.Background()
	prefSvc := NewPreferenceServiceWithDB(f.db, NewCardServiceWithDB(f.db))

	// alan aralığında olup 8'li sayfaya sığmayan birleşimler kayıtta reddedilir
	qr := prefs.DefaultQRTag()
	qr.BannerFontSize = prefs.MaxBannerFontSize
	if _, err := prefSvc.SaveQRTag(ctx, f.card.ID, f.owner.ID, qr); !errors.Is(err, ErrPrefInvalidInput) {
		t.Errorf("banner_font_size=36 kaydedilmemeli, gelen %v", err)
	}
	qr = prefs.DefaultQRTag()
	qr.QRPadding = prefs.MaxQRPadding
	if _, err := prefSvc.SaveQRTag(ctx, f.card.ID, f.owner.ID, qr); !errors.Is(err, ErrPrefInvalidInput) {
		t.Errorf("qr_padding=50 kaydedilmemeli, gelen %v", err)
	}
	nt := prefs.DefaultNameTag()
	nt.VerticalGap = layout.MaxVerticalGap
	if _, err := prefSvc.SaveNameTag(ctx, f.card.ID, f.owner.ID, nt); !errors.Is(err, ErrPrefInvalidInput) {
		t.Errorf("vertical_gap=50 kaydedilmemeli, gelen %v", err)
	}

	// kabul edilen en uç değerler PDF olarak hazırlanabilir
	qr = prefs.DefaultQRTag()
	qr.BannerFontSize, qr.QRPadding = 30, 0
	if _, err := prefSvc.SaveQRTag(ctx, f.card.ID, f.owner.ID, qr); err != nil {
		t.Fatalf("sığan QR tercihi kaydedilmeli: %v", err)
	}
	nt = prefs.DefaultNameTag()
	nt.TopMargin, nt.VerticalGap = 36, 28
	if _, err := prefSvc.SaveNameTag(ctx, f.card.ID, f.owner.ID, nt); err != nil {
		t.Fatalf("sığan isim etiketi kaydedilmeli: %v", err)
	}
	for _, v := range []layout.Variant{layout.VariantQR, layout.VariantStandard} {
		job, err := f.svc.Prepare(ctx, f.request(v, encode.FormatPDF), nil)
		if err != nil {
			t.Fatalf("%s.pdf: kayıtlı tercih basılamadı: %v", v, err)
		}
		var buf bytes.Buffer
		if err := job.Encode(ctx, &buf); err != nil || !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Errorf("%s.pdf kodlanamadı: %v", v, err)
		}
	}

	// sorgu ile gelen sığmayan değerler render öncesi 400 olur
	wide := func(dst any) error {
		dst.(*prefs.QRTag).BannerFontSize = prefs.MaxBannerFontSize
		return nil
	}
	if _, err := f.svc.Prepare(ctx, f.request(layout.VariantQR, encode.FormatPDF), wide); !errors.Is(err, ErrRenderInvalidInput) {
		t.Errorf("sığmayan banner ErrRenderInvalidInput vermeli, gelen %v", err)
	}
}

func TestQRSheetIgnoresQRSize(t *testing.T) {
	f := newRenderFixture(t, RenderOptions{})
	ctx := context.Background()
	tiny := func(dst any) error {
		dst.(*prefs.QRTag).QRSize = 1
		return nil
	}
	if _, err := f.svc.Prepare(ctx, f.request(layout.VariantQR, encode.FormatPDF), tiny); err != nil {
		t.Errorf("PDF'te qr_size kullanılmaz, kontrol edilmemeli: %v", err)
	}
	if _, err := f.svc.Prepare(ctx, f.request(layout.VariantQR, encode.FormatPNG), tiny); !errors.Is(err, ErrRenderInvalidInput) {
		t.Errorf("PNG'de qr_size=1 reddedilmeli, gelen %v", err)
	}
}
