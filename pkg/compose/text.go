package compose

import (
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"kartvizit.link/pkg/layout"
)

const (
	MinLineSpacing = -2
	MaxLineSpacing = 2

	lineHeightFactor = 1.25
	lineSpacingUnit  = 2.0 // punto
)

// Record render edilecek kart alanlarının anlık görüntüsü.
type Record struct {
	Name    string
	Title   string
	Company string
	Phone   string
	Email   string
	Website string
	Address string
}

// Include hangi alanların çıktıya gireceği.
type Include struct {
	Name    bool
	Title   bool
	Company bool
	Phone   bool
	Email   bool
	Website bool
	Address bool
}

// IncludeAll tüm alanlar açık.
var IncludeAll = Include{Name: true, Title: true, Company: true, Phone: true, Email: true, Website: true, Address: true}

// TextLines alanları sabit öncelik sırasıyla döndürür: ad, unvan, şirket, telefon, e-posta, web, adres.
// Kapalı veya boş alanlar atlanır, yer ayrılmaz.
func TextLines(rec Record, inc Include) []string {
	fields := []struct {
		on  bool
		val string
	}{
		{inc.Name, rec.Name},
		{inc.Title, rec.Title},
		{inc.Company, rec.Company},
		{inc.Phone, rec.Phone},
		{inc.Email, rec.Email},
		{inc.Website, rec.Website},
		{inc.Address, rec.Address},
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.on {
			continue
		}
		if v := strings.TrimSpace(f.val); v != "" {
			lines = append(lines, v)
		}
	}
	return lines
}

// ClampLineSpacing satır aralığını -2..+2 aralığına sıkıştırır.
// Doğrulamadan sonra render sırasında uygulanan tek kırpmadır.
func ClampLineSpacing(v int) int {
	if v < MinLineSpacing {
		return MinLineSpacing
	}
	if v > MaxLineSpacing {
		return MaxLineSpacing
	}
	return v
}

// LineHeight punto cinsinden satır yüksekliği.
func LineHeight(fontSize float64, spacing int) float64 {
	return fontSize*lineHeightFactor + float64(ClampLineSpacing(spacing))*lineSpacingUnit
}

// TextAlign metin bloğunun yatay hizası.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// drawLines satırları rect içinde dikeyde ortalayarak çizer. Sığmayan satırlar
// kesilir, taşan satırlar "…" ile kısaltılır. rect piksel cinsindendir.
func drawLines(dc *gg.Context, lines []string, rect layout.Rect, lineHeight float64, c color.Color, align TextAlign) {
	if len(lines) == 0 || rect.Empty() || lineHeight <= 0 {
		return
	}
	fit := int(rect.H / lineHeight)
	if fit < 1 {
		fit = 1
	}
	if len(lines) > fit {
		lines = lines[:fit]
	}

	dc.SetColor(c)
	blockH := float64(len(lines)) * lineHeight
	y := rect.Y + (rect.H-blockH)/2 + lineHeight/2
	for _, line := range lines {
		line = truncateToWidth(dc, line, rect.W)
		switch align {
		case AlignCenter:
			dc.DrawStringAnchored(line, rect.X+rect.W/2, y, 0.5, 0.5)
		case AlignRight:
			dc.DrawStringAnchored(line, rect.Right(), y, 1, 0.5)
		default:
			dc.DrawStringAnchored(line, rect.X, y, 0, 0.5)
		}
		y += lineHeight
	}
}

func truncateToWidth(dc *gg.Context, s string, maxW float64) string {
	if w, _ := dc.MeasureString(s); w <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + "…"
		if w, _ := dc.MeasureString(candidate); w <= maxW {
			return candidate
		}
	}
	return ""
}
