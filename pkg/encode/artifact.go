// Package encode render edilmiş tuvalleri yanıt biçimlerine çevirir (PNG, 8'li PDF,
// satır içi stilli HTML parçası, vCard) ve dosya adı ile içerik tipini belirler.
package encode

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Format çıktı biçimi.
type Format string

const (
	FormatPNG   Format = "png"
	FormatPDF   Format = "pdf"
	FormatHTML  Format = "html"
	FormatVCard Format = "vcf"
)

// ErrUnsupportedFormat istenen biçim bu varyant için desteklenmiyor.
var ErrUnsupportedFormat = errors.New("desteklenmeyen çıktı biçimi")

// ParseFormat uzantıdan biçimi çözer.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatPDF, FormatHTML, FormatVCard:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType biçimin MIME tipi.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatVCard:
		return "text/vcard; charset=utf-8"
	}
	return "application/octet-stream"
}

// Artifact kodlanmış çıktı ve taşıma meta verisi.
type Artifact struct {
	ContentType string
	Filename    string
	Body        []byte
}

// Length gövde uzunluğu (Content-Length).
func (a *Artifact) Length() int { return len(a.Body) }

// ContentDisposition indirme başlığı; inline true ise tarayıcıda gösterilir.
func (a *Artifact) ContentDisposition(inline bool) string {
	kind := "attachment"
	if inline {
		kind = "inline"
	}
	return fmt.Sprintf(`%s; filename="%s"`, kind, a.Filename)
}

const (
	MaxFilenameLength = 64
	DefaultFilename   = "nametag"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	underscoreRuns      = regexp.MustCompile(`_{2,}`)
)

// Filename parçaları "_" ile birleştirir, [A-Za-z0-9_-] dışını "_" yapar, tekrarlayan
// alt çizgileri tekler, baş/son alt çizgileri atar ve 64 karaktere kısaltır.
func Filename(ext string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	name := unsafeFilenameChars.ReplaceAllString(strings.Join(kept, "_"), "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if len(name) > MaxFilenameLength {
		name = strings.TrimRight(name[:MaxFilenameLength], "_")
	}
	if name == "" {
		name = DefaultFilename
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}
