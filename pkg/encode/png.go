package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// EncodePNG tek bir rasterı PNG olarak kodlar.
func EncodePNG(img image.Image, filename string) (*Artifact, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("PNG kodlanamadı: boş tuval")
	}
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("PNG kodlanamadı: %w", err)
	}
	return &Artifact{ContentType: FormatPNG.ContentType(), Filename: filename, Body: buf.Bytes()}, nil
}

// ErrorPNG yanıt zaten image/png olarak başladıysa gönderilen küçük hata görseli.
func ErrorPNG(msg string) []byte {
	dc := gg.NewContext(480, 64)
	dc.SetColor(color.NRGBA{R: 0xFE, G: 0xE2, B: 0xE2, A: 0xFF})
	dc.Clear()
	dc.SetColor(color.NRGBA{R: 0xB9, G: 0x1C, B: 0x1C, A: 0xFF})
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, 478, 62)
	dc.Stroke()
	dc.SetFontFace(basicfont.Face7x13)
	dc.DrawStringAnchored("Render hatasi", 240, 22, 0.5, 0.5)
	dc.DrawStringAnchored(truncateRunes(msg, 64), 240, 42, 0.5, 0.5)

	var buf bytes.Buffer
	_ = pngEncoder.Encode(&buf, dc.Image())
	return buf.Bytes()
}

// truncateRunes s'yi en fazla n karaktere kısaltır; çok baytlı karakterleri bölmez.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
