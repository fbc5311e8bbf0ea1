package encode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"io"
	"strings"
)

// Views şablon motorunun render arayüzü (gofiber/template/html Engine bunu sağlar).
type Views interface {
	Render(out io.Writer, name string, binding interface{}, layout ...string) error
}

// CSS font aileleri; script aileler tarayıcıda yoksa genel yedek aileye düşer.
var cssFamilies = map[string]string{
	"great-vibes":    "'Great Vibes', cursive",
	"dancing-script": "'Dancing Script', cursive",
	"pacifico":       "'Pacifico', cursive",
	"go-regular":     "Helvetica, Arial, sans-serif",
	"go-bold":        "'Arial Black', Helvetica, Arial, sans-serif",
	"go-mono":        "'Courier New', Courier, monospace",
}

// CSSFontFamily aile adını inline CSS font-family değerine çevirir.
func CSSFontFamily(family string) template.CSS {
	if v, ok := cssFamilies[family]; ok {
		return template.CSS(v)
	}
	return template.CSS(cssFamilies["go-regular"])
}

// DataURI görseli PNG olarak base64 data URI'ye çevirir.
func DataURI(img image.Image) (template.URL, error) {
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("data URI için PNG kodlanamadı: %w", err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// StandardFragment standart etiketin HTML parçası girdisi. Ölçüler punto.
type StandardFragment struct {
	Width, Height float64
	Padding       float64
	Background    string
	FontFamily    template.CSS
	FontSize      float64
	LineHeight    float64
	TextColor     string
	Lines         []string
	Image         template.URL // boşsa görsel sütunu yok
	ImageSize     float64
	ImagePx       int
}

// QRFragment QR etiketin HTML parçası girdisi. Ölçüler punto.
type QRFragment struct {
	Width, Height float64
	FontFamily    template.CSS
	FontSize      float64
	TextColor     string
	TopText       string
	TopColor      string
	TopHeight     float64
	BottomText    string
	BottomColor   string
	BottomHeight  float64
	BandHeight    float64
	QR            template.URL
	QRSize        float64
	QRPx          int
}

// EncodeFragment fragments/<name> şablonunu satır içi stillerle render eder.
func EncodeFragment(views Views, name string, data any, filename string) (*Artifact, error) {
	var buf bytes.Buffer
	if err := views.Render(&buf, "fragments/"+name, data); err != nil {
		return nil, fmt.Errorf("HTML parçası oluşturulamadı: %w", err)
	}
	return &Artifact{ContentType: FormatHTML.ContentType(), Filename: filename, Body: buf.Bytes()}, nil
}

// ErrorHTML yanıt zaten text/html olarak başladıysa eklenen hata yorumu.
func ErrorHTML(msg string) []byte {
	msg = strings.ReplaceAll(msg, "--", "- -")
	return []byte(fmt.Sprintf("\n<!-- render hatası: %s -->\n", msg))
}
