package compose

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	_ "golang.org/x/image/webp"

	"kartvizit.link/pkg/layout"
)

// MediaStore profil fotoğrafı ve logo dosyalarına salt okunur erişim.
type MediaStore interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

// ImageSource etikette gösterilecek görsel.
type ImageSource string

const (
	ImageNone    ImageSource = "none"
	ImageProfile ImageSource = "profile"
	ImageLogo    ImageSource = "logo"
)

// ParseImageSource boş değeri "none" kabul eder.
func ParseImageSource(s string) (ImageSource, error) {
	switch v := ImageSource(s); v {
	case "", ImageNone:
		return ImageNone, nil
	case ImageProfile, ImageLogo:
		return v, nil
	}
	return "", fmt.Errorf("%w: image_source %q", layout.ErrInvalidParameter, s)
}

// DecodeImage PNG, JPEG, GIF ve WebP verisini çözer.
func DecodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("görsel çözümlenemedi: %w", err)
	}
	return img, nil
}

// CircleImage görseli kareye doldurur (oran korunur, taşan kırpılır) ve daire maskesi uygular.
func CircleImage(src image.Image, side int) image.Image {
	if side <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	filled := imaging.Fill(src, side, side, imaging.Center, imaging.Lanczos)

	dc := gg.NewContext(side, side)
	r := float64(side) / 2
	dc.DrawCircle(r, r, r)
	dc.Clip()
	dc.DrawImage(filled, 0, 0)
	return dc.Image()
}

// RoundedImage görseli w×h içine sığdırır (oran korunur, kırpılmaz) ve köşeleri yuvarlatır.
func RoundedImage(src image.Image, w, h int, radius float64) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	fitted := imaging.Fit(src, w, h, imaging.Lanczos)
	fb := fitted.Bounds()

	dc := gg.NewContext(w, h)
	ox := float64(w-fb.Dx()) / 2
	oy := float64(h-fb.Dy()) / 2
	radius = math.Min(radius, math.Min(float64(fb.Dx()), float64(fb.Dy()))/2)
	dc.DrawRoundedRectangle(ox, oy, float64(fb.Dx()), float64(fb.Dy()), radius)
	dc.Clip()
	dc.DrawImage(fitted, int(math.Round(ox)), int(math.Round(oy)))
	return dc.Image()
}

// pixelRect punto bölgesini hücre yerel piksel bölgesine çevirir.
func pixelRect(r, cell layout.Rect, scale float64) layout.Rect {
	return r.Translate(-cell.X, -cell.Y).Scale(scale)
}

func roundPt(r layout.Rect) (x, y, w, h int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)), int(math.Round(r.W)), int(math.Round(r.H))
}
