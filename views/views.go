// Package views public sayfa, hata sayfası ve kopyala-yapıştır HTML parçası şablonlarını gömer.
package views

import (
	"embed"
	"net/http"
	"strconv"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts errors public fragments
var FS embed.FS

// NewEngine gömülü şablonlarla bir html motoru oluşturur.
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.AddFunc("pt", formatPt) // 12.5 -> "12.50pt"
	return engine
}

func formatPt(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "pt"
}
