package compose

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// QROversample QR en az yerleşim boyutunun bu katı çözünürlükte istenir.
	QROversample = 3

	maxQRPayload   = 4 << 20
	placeholderRun = 8
)

// QRSource verilen veri için en az size×size piksellik bir QR görseli döndürür.
type QRSource interface {
	Fetch(ctx context.Context, data string, size int) (image.Image, error)
}

// HTTPQRSource QR kodlarını üçüncü parti bir HTTP servisinden çeker.
// Servis size=WxH, data ve ecc parametrelerini alır.
type HTTPQRSource struct {
	client   *retryablehttp.Client
	endpoint string
	ecc      string
}

// NewHTTPQRSource kısa zaman aşımlı bir retryablehttp istemcisi kurar.
// retryMax 0 ise tekrar denenmez; başarısızlık yer tutucuya düşer.
func NewHTTPQRSource(endpoint string, timeout time.Duration, retryMax int, ecc string) *HTTPQRSource {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 500 * time.Millisecond
	client.HTTPClient.Timeout = timeout
	client.Logger = nil
	if ecc == "" {
		ecc = "M"
	}
	return &HTTPQRSource{client: client, endpoint: endpoint, ecc: ecc}
}

func (s *HTTPQRSource) Fetch(ctx context.Context, data string, size int) (image.Image, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("QR servis adresi geçersiz: %w", err)
	}
	q := u.Query()
	q.Set("size", fmt.Sprintf("%dx%d", size, size))
	q.Set("data", data)
	q.Set("ecc", s.ecc)
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("QR isteği oluşturulamadı: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("QR servisine ulaşılamadı: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("QR servisi %d döndürdü", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxQRPayload))
	if err != nil {
		return nil, fmt.Errorf("QR yanıtı okunamadı: %w", err)
	}
	return DecodeImage(body)
}

// PublicCardURL QR'a gömülen kart adresi; src parametresi tarama kaynağını belirtir.
func PublicCardURL(baseURL, linkKey, source string) string {
	u := strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(linkKey)
	if source != "" {
		u += "?src=" + url.QueryEscape(source)
	}
	return u
}

// CropToContentBounds arka plan renginden farklı piksellerin sınır kutusuna kırpar
// (QR sessiz bölgesini atar). İçerik yoksa görseli olduğu gibi döndürür.
func CropToContentBounds(img image.Image, bg color.Color) image.Image {
	b := img.Bounds()
	br, bgG, bb, _ := bg.RGBA()
	const tolerance = 0x2000

	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if absDiff(r, br) <= tolerance && absDiff(g, bgG) <= tolerance && absDiff(bl, bb) <= tolerance {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX || maxY < minY {
		return img
	}
	return imaging.Crop(img, image.Rect(minX, minY, maxX+1, maxY+1))
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// Placeholder QR alınamadığında çizilen deterministik 8×8 dama deseni.
func Placeholder(size int) image.Image {
	if size <= 0 {
		size = placeholderRun
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	dark := color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	light := color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if ((x*placeholderRun/size)+(y*placeholderRun/size))%2 == 0 {
				img.SetNRGBA(x, y, dark)
			} else {
				img.SetNRGBA(x, y, light)
			}
		}
	}
	return img
}
