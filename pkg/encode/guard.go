package encode

import (
	"io"

	"kartvizit.link/configs/configslog"

	"go.uber.org/zap"
)

// InBandError beyan edilen içerik tipinde hata gövdesi üretir.
func InBandError(format Format, msg string) []byte {
	switch format {
	case FormatPNG:
		return ErrorPNG(msg)
	case FormatPDF:
		return ErrorPDF(msg)
	case FormatHTML:
		return ErrorHTML(msg)
	case FormatVCard:
		return EncodeVCard(VCard{FullName: "Hata", Note: msg}, "error.vcf").Body
	}
	return []byte(msg)
}

// guardedWriter yazılan bayt sayısını izler; suppressed olduktan sonra yazmaları yutar.
type guardedWriter struct {
	w          io.Writer
	written    int64
	suppressed bool
}

func (g *guardedWriter) Write(p []byte) (int, error) {
	if g.suppressed {
		return len(p), nil
	}
	n, err := g.w.Write(p)
	g.written += int64(n)
	return n, err
}

// WriteGuarded başlıklar ayarlandıktan sonra çağrılır. encode hata verirse:
// henüz bayt yazılmadıysa biçime uygun hata gövdesi yazılır; kısmi çıktı varsa
// sonraki yazmalar bastırılır. Orijinal hata her durumda döndürülür.
func WriteGuarded(w io.Writer, format Format, encode func(io.Writer) error) error {
	gw := &guardedWriter{w: w}
	err := encode(gw)
	if err == nil {
		return nil
	}

	if gw.written == 0 {
		configslog.Log.Error("Render başarısız, hata gövdesi yazılıyor", zap.String("format", string(format)), zap.Error(err))
		if _, werr := w.Write(InBandError(format, err.Error())); werr != nil {
			configslog.Log.Error("Hata gövdesi yazılamadı", zap.Error(werr))
		}
		return err
	}

	gw.suppressed = true
	configslog.Log.Error("Kısmi çıktıdan sonra render hatası, yazma durduruldu",
		zap.String("format", string(format)), zap.Int64("written", gw.written), zap.Error(err))
	return err
}
