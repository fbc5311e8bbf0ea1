// Package layout isim etiketi ve sanal arka plan çıktılarının geometrisini hesaplar.
// Tüm fonksiyonlar saftır: aynı girdi her zaman aynı geometriyi üretir, durum tutulmaz.
// Birimler punto (1/72 inç) cinsindendir; raster çıktıda PageSpec.DPI ile piksele çevrilir.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter aralık dışı veya hatalı geometri parametresi.
var ErrInvalidParameter = errors.New("geçersiz parametre")

func invalidf(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameter, field, fmt.Sprintf(format, args...))
}

// Variant desteklenen etiket/arka plan stilleri.
type Variant string

const (
	VariantStandard   Variant = "standard"
	VariantQR         Variant = "qr"
	VariantBackground Variant = "background"
)

// Variants sabit sırada tüm varyantlar.
var Variants = []Variant{VariantStandard, VariantQR, VariantBackground}

// ParseVariant URL parametresinden varyantı çözer.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", invalidf("variant", "bilinmeyen varyant %q", s)
}

// Rect sol üst köşesi (X, Y) olan dikdörtgen.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty genişlik veya yükseklik sıfır/negatifse true döner.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Overlaps iki dikdörtgen pozitif alanlı bir kesişime sahipse true döner.
// Sadece kenarları değen dikdörtgenler çakışmış sayılmaz.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Within r tamamen o'nun içindeyse true döner (kayan nokta toleransı ile).
func (r Rect) Within(o Rect) bool {
	const eps = 1e-6
	return r.X >= o.X-eps && r.Y >= o.Y-eps && r.Right() <= o.Right()+eps && r.Bottom() <= o.Bottom()+eps
}

// Inset her kenardan d kadar içeri çeker.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: math.Max(0, r.W-2*d), H: math.Max(0, r.H-2*d)}
}

// Translate dikdörtgeni kaydırır.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Scale tüm koordinatları k ile çarpar (punto → piksel).
func (r Rect) Scale(k float64) Rect {
	return Rect{X: r.X * k, Y: r.Y * k, W: r.W * k, H: r.H * k}
}

// Anchor sanal arka planda metin bloğunun yerleşeceği köşe.
type Anchor string

const (
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
)

// ParseAnchor köşe adını doğrular.
func ParseAnchor(s string) (Anchor, error) {
	switch a := Anchor(s); a {
	case AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight:
		return a, nil
	}
	return "", invalidf("position", "bilinmeyen konum %q", s)
}

func (a Anchor) right() bool  { return a == AnchorTopRight || a == AnchorBottomRight }
func (a Anchor) bottom() bool { return a == AnchorBottomLeft || a == AnchorBottomRight }
