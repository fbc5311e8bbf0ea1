package prefs

import (
	"image/color"

	"kartvizit.link/pkg/compose"
	"kartvizit.link/pkg/layout"
)

// Çeviriler Validate'ten sonra çağrılır; renkler geçerli kabul edilir.
func mustColor(s string) color.NRGBA {
	c, err := compose.ParseHexColor(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

// WithImage görsel sütunu ayrılacak mı?
func (p NameTag) WithImage() bool {
	return p.ImageSource != "" && p.ImageSource != string(compose.ImageNone)
}

// LayoutParams standart etiket geometri girdileri.
func (p NameTag) LayoutParams() layout.Params {
	return layout.Params{Sheet: p.Sheet.Params(), WithImage: p.WithImage()}
}

// Style render stili.
func (p NameTag) Style() compose.StandardStyle {
	return compose.StandardStyle{
		Text: compose.TextStyle{
			Family:      p.FontFamily,
			Size:        p.FontSize,
			LineSpacing: p.LineSpacing,
			Color:       mustColor(p.TextColor),
			Include:     p.Include.toCompose(),
		},
		Background: mustColor(p.BackgroundColor),
		Image:      compose.ImageSource(p.ImageSource),
	}
}

// LayoutParams QR etiket geometri girdileri.
func (p QRTag) LayoutParams() layout.Params {
	return layout.Params{Sheet: p.Sheet.Params(), BannerFontSize: p.BannerFontSize, QRPadding: p.QRPadding}
}

// SinglePage QR boyutunu tam taşıyan tek etiket sayfası.
func (p QRTag) SinglePage() layout.PageSpec {
	return layout.QRTagSingle(p.QRSize, p.QRPadding, p.BannerFontSize)
}

// Style render stili.
func (p QRTag) Style() compose.QRStyle {
	return compose.QRStyle{
		TopText:     p.TopBannerText,
		BottomText:  p.BottomBannerText,
		TopColor:    mustColor(p.TopBannerColor),
		BottomColor: mustColor(p.BottomBannerColor),
		TextColor:   mustColor(p.BannerTextColor),
		Family:      p.FontFamily,
		FontSize:    p.BannerFontSize,
	}
}

// WithImage görsel bölgesi ayrılacak mı?
func (p Background) WithImage() bool {
	return p.ImageSource != "" && p.ImageSource != string(compose.ImageNone)
}

// Page seçilen çözünürlükte tuval.
func (p Background) Page() layout.PageSpec {
	wh, ok := Resolutions[p.Resolution]
	if !ok {
		wh = Resolutions["1920x1080"]
	}
	return layout.Background(wh[0], wh[1])
}

// LayoutParams arka plan geometri girdileri.
func (p Background) LayoutParams() layout.Params {
	return layout.Params{WithImage: p.WithImage(), WithQR: p.IncludeQR, Position: layout.Anchor(p.Position)}
}

// Style render stili.
func (p Background) Style() compose.BackgroundStyle {
	return compose.BackgroundStyle{
		Text: compose.TextStyle{
			Family:      p.FontFamily,
			Size:        p.FontSize,
			LineSpacing: p.LineSpacing,
			Color:       mustColor(p.TextColor),
			Include:     p.Include.toCompose(),
		},
		Background: mustColor(p.BackgroundColor),
		Image:      compose.ImageSource(p.ImageSource),
		IncludeQR:  p.IncludeQR,
	}
}
