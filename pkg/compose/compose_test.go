package compose

import (
	"context"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/skip2/go-qrcode"

	"kartvizit.link/pkg/layout"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"#DA7756", color.NRGBA{R: 0xDA, G: 0x77, B: 0x56, A: 255}},
		{"#ffffff", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 255}},
		{"#000000", color.NRGBA{A: 255}},
	}
	for _, tt := range tests {
		c, err := ParseHexColor(tt.input)
		if err != nil {
			t.Errorf("ParseHexColor(%q) hata: %v", tt.input, err)
			continue
		}
		if c != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, beklenen %v", tt.input, c, tt.want)
		}
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, s := range []string{"#FFF", "FFFFFF", "#GGGGGG", "", "red", "#1234567", " #123456"} {
		if _, err := ParseHexColor(s); !errors.Is(err, layout.ErrInvalidParameter) {
			t.Errorf("ParseHexColor(%q) ErrInvalidParameter döndürmeli, gelen %v", s, err)
		}
	}
}

func TestFontRegistryFallback(t *testing.T) {
	reg := NewFontRegistry()

	_, used := reg.Resolve("comic-sans")
	if used != DefaultFamily {
		t.Errorf("bilinmeyen aile %q'ya düşmeli, gelen %q", DefaultFamily, used)
	}

	// script aileleri manifest olmadan yüklü değil
	_, used = reg.Resolve(string(FamilyPacifico))
	if used != DefaultFamily {
		t.Errorf("yüklenmemiş aile varsayılana düşmeli, gelen %q", used)
	}

	if face := reg.Face("yok-boyle-font", 12, 300); face == nil {
		t.Fatal("Face nil döndürmemeli")
	}

	_, used = reg.Resolve(string(FamilyGoMono))
	if used != FamilyGoMono {
		t.Errorf("gömülü aile kullanılmalı, gelen %q", used)
	}
}

func TestLoadFontRegistryManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "fonts.toml")
	content := `
[[font]]
family = "pacifico"
file = "missing.ttf"

[[font]]
family = "wingdings"
file = "wingdings.ttf"
`
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := LoadFontRegistry(manifest)
	if err != nil {
		t.Fatalf("LoadFontRegistry: %v", err)
	}
	if reg.Has(string(FamilyPacifico)) {
		t.Error("dosyası olmayan aile yüklenmemeli")
	}
	if !reg.Has(string(FamilyGoRegular)) {
		t.Error("gömülü fontlar her zaman yüklü olmalı")
	}

	if _, err := LoadFontRegistry(filepath.Join(dir, "nope.toml")); err != nil {
		t.Errorf("eksik manifest hata vermemeli: %v", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	_ = os.WriteFile(bad, []byte("[[font]\nfamily="), 0o644)
	if _, err := LoadFontRegistry(bad); err == nil {
		t.Error("bozuk manifest hata vermeli")
	}
}

func TestTextLinesOrderAndSkip(t *testing.T) {
	rec := Record{Name: "Ada Lovelace", Title: "", Company: "Analytical", Phone: "555", Email: "ada@example.com", Address: "London"}
	inc := IncludeAll
	inc.Email = false

	got := TextLines(rec, inc)
	want := []string{"Ada Lovelace", "Analytical", "555", "London"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TextLines = %v, beklenen %v", got, want)
	}
}

func TestLineHeightClampsSpacing(t *testing.T) {
	if LineHeight(10, 5) != LineHeight(10, 2) {
		t.Error("satır aralığı +2'ye sıkıştırılmalı")
	}
	if LineHeight(10, -9) != LineHeight(10, -2) {
		t.Error("satır aralığı -2'ye sıkıştırılmalı")
	}
	if LineHeight(10, 1) <= LineHeight(10, 0) {
		t.Error("pozitif aralık satırı büyütmeli")
	}
}

func TestCropToContentBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, white)
		}
	}
	for y := 10; y < 25; y++ {
		for x := 8; x < 30; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}
	got := CropToContentBounds(img, white).Bounds()
	if got.Dx() != 22 || got.Dy() != 15 {
		t.Errorf("kırpılmış boyut = %dx%d, beklenen 22x15", got.Dx(), got.Dy())
	}

	blank := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	if CropToContentBounds(blank, white) != image.Image(blank) {
		t.Error("içeriksiz görsel olduğu gibi dönmeli")
	}
}

func TestPlaceholderDeterministic(t *testing.T) {
	a := Placeholder(64).(*image.NRGBA)
	b := Placeholder(64).(*image.NRGBA)
	if !reflect.DeepEqual(a.Pix, b.Pix) {
		t.Error("yer tutucu deterministik olmalı")
	}
	if a.NRGBAAt(0, 0) == a.NRGBAAt(8, 0) {
		t.Error("bitişik kareler farklı renkte olmalı")
	}
}

func TestPublicCardURL(t *testing.T) {
	got := PublicCardURL("https://kartvizit.link/", "abc123", SourceNameTag)
	if got != "https://kartvizit.link/abc123?src=nametag" {
		t.Errorf("PublicCardURL = %q", got)
	}
}

func TestHTTPQRSourceFetch(t *testing.T) {
	var gotSize, gotData string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSize = r.URL.Query().Get("size")
		gotData = r.URL.Query().Get("data")
		n, _ := strconv.Atoi(strings.Split(gotSize, "x")[0])
		png, err := qrcode.Encode(gotData, qrcode.Medium, n)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	src := NewHTTPQRSource(srv.URL, time.Second, 0, "M")
	img, err := src.Fetch(context.Background(), "https://kartvizit.link/k", 300)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotSize != "300x300" || gotData != "https://kartvizit.link/k" {
		t.Errorf("istek parametreleri: size=%q data=%q", gotSize, gotData)
	}
	if img.Bounds().Dx() != 300 {
		t.Errorf("QR genişliği = %d", img.Bounds().Dx())
	}
}

func qrTagGeometry(t *testing.T) *layout.Geometry {
	t.Helper()
	page := layout.QRTagSingle(120, 4, 10)
	geo, err := layout.Resolve(layout.VariantQR, page, layout.Params{BannerFontSize: 10, QRPadding: 4})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return geo
}

func qrPixelAt(t *testing.T, c *Canvas) color.NRGBA {
	t.Helper()
	cell := c.Geometry.Cells[0]
	k := c.Geometry.Page.Scale()
	r := cell.QR.QR.Scale(k)
	return color.NRGBAModel.Convert(c.Cell.At(int(r.X)+1, int(r.Y)+1)).(color.NRGBA)
}

func TestRenderQRTagPlaceholderOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // bağlantı reddedilecek

	r := NewRenderer(nil, nil, NewHTTPQRSource(url, 200*time.Millisecond, 0, "M"), "https://kartvizit.link")
	canvas, err := r.RenderQRTag(context.Background(), qrTagGeometry(t), Content{LinkKey: "abc"}, QRStyle{
		TopText: "Merhaba", BottomText: "Ada", TopColor: color.NRGBA{B: 200, A: 255},
		BottomColor: color.NRGBA{R: 200, A: 255}, TextColor: white, Family: "go-bold", FontSize: 10,
	})
	if err != nil {
		t.Fatalf("render ağ hatasında başarısız olmamalı: %v", err)
	}
	want := Placeholder(8).(*image.NRGBA).NRGBAAt(0, 0)
	if got := qrPixelAt(t, canvas); got != want {
		t.Errorf("QR köşesi yer tutucu rengi olmalı: %v, gelen %v", want, got)
	}
}

func TestRenderQRTagPlaceholderOnNonImagePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>rate limited</html>"))
	}))
	defer srv.Close()

	r := NewRenderer(nil, nil, NewHTTPQRSource(srv.URL, time.Second, 0, "M"), "https://kartvizit.link")
	canvas, err := r.RenderQRTag(context.Background(), qrTagGeometry(t), Content{LinkKey: "abc"}, QRStyle{FontSize: 10, TextColor: white})
	if err != nil {
		t.Fatalf("render geçersiz yanıtta başarısız olmamalı: %v", err)
	}
	want := Placeholder(8).(*image.NRGBA).NRGBAAt(0, 0)
	if got := qrPixelAt(t, canvas); got != want {
		t.Errorf("QR köşesi yer tutucu rengi olmalı: %v, gelen %v", want, got)
	}
}

type memMedia map[string][]byte

func (m memMedia) Read(_ context.Context, name string) ([]byte, error) {
	if b, ok := m[name]; ok {
		return b, nil
	}
	return nil, os.ErrNotExist
}

func TestRenderStandardSheet(t *testing.T) {
	geo, err := layout.Resolve(layout.VariantStandard, layout.LetterSheet, layout.Params{
		Sheet: layout.DefaultSheetParams(layout.LetterSheet), WithImage: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	logo, _ := qrcode.Encode("logo", qrcode.Low, 64)
	r := NewRenderer(nil, memMedia{"logo.png": logo}, nil, "")

	style := StandardStyle{
		Text:       TextStyle{Family: "great-vibes", Size: 12, Color: color.NRGBA{A: 255}, Include: IncludeAll},
		Background: white,
		Image:      ImageLogo,
	}
	canvas, err := r.RenderStandard(context.Background(), geo, Content{
		Record:      Record{Name: "Ada Lovelace", Company: "Analytical Engines"},
		CompanyLogo: "logo.png",
	}, style)
	if err != nil {
		t.Fatalf("RenderStandard: %v", err)
	}
	cw, ch := canvas.Cell.Bounds().Dx(), canvas.Cell.Bounds().Dy()
	// 3.375in × 2.33in @ 300 DPI
	if cw < 1012 || cw > 1013 || ch < 698 || ch > 700 {
		t.Errorf("hücre rasterı %dx%d, beklenen ~1013x699", cw, ch)
	}
	pw, ph := layout.LetterSheet.PixelSize()
	if b := canvas.Page().Bounds(); b.Dx() != pw || b.Dy() != ph {
		t.Errorf("sayfa rasterı %v, beklenen %dx%d", b, pw, ph)
	}
}

func TestRenderRejectsMismatchedGeometry(t *testing.T) {
	geo, _ := layout.Resolve(layout.VariantStandard, layout.SingleTag, layout.Params{})
	r := NewRenderer(nil, nil, nil, "")
	if _, err := r.RenderQRTag(context.Background(), geo, Content{}, QRStyle{FontSize: 10}); err == nil {
		t.Error("yanlış varyant geometrisi hata vermeli")
	}
}
