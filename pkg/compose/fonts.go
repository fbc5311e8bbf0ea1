package compose

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"kartvizit.link/configs/configslog"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily tercihlerde seçilebilen yazı tipi aileleri.
type FontFamily string

const (
	FamilyGreatVibes    FontFamily = "great-vibes"
	FamilyDancingScript FontFamily = "dancing-script"
	FamilyPacifico      FontFamily = "pacifico"
	FamilyGoRegular     FontFamily = "go-regular"
	FamilyGoBold        FontFamily = "go-bold"
	FamilyGoMono        FontFamily = "go-mono"

	DefaultFamily = FamilyGoRegular
)

// FontFamilies tercih doğrulamasında kullanılan kapalı küme.
var FontFamilies = []FontFamily{
	FamilyGreatVibes, FamilyDancingScript, FamilyPacifico,
	FamilyGoRegular, FamilyGoBold, FamilyGoMono,
}

// IsKnownFamily ad kapalı kümede mi?
func IsKnownFamily(name string) bool {
	for _, f := range FontFamilies {
		if string(f) == name {
			return true
		}
	}
	return false
}

var embeddedFonts = map[FontFamily][]byte{
	FamilyGoRegular: goregular.TTF,
	FamilyGoBold:    gobold.TTF,
	FamilyGoMono:    gomono.TTF,
}

type fontManifest struct {
	Dir   string      `toml:"dir"`
	Fonts []fontEntry `toml:"font"`
}

type fontEntry struct {
	Family string `toml:"family"`
	File   string `toml:"file"`
}

// FontRegistry açılışta bir kez kurulur, sonrasında sadece okunur.
// Face her çağrıda yeni oluşturulur; font.Face eşzamanlı kullanıma uygun değildir.
type FontRegistry struct {
	fonts map[FontFamily]*opentype.Font
}

// NewFontRegistry sadece gömülü Go fontlarıyla bir kayıt oluşturur.
func NewFontRegistry() *FontRegistry {
	r := &FontRegistry{fonts: make(map[FontFamily]*opentype.Font, len(FontFamilies))}
	for family, data := range embeddedFonts {
		f, err := opentype.Parse(data)
		if err != nil {
			configslog.Log.Error("Gömülü font ayrıştırılamadı", zap.String("family", string(family)), zap.Error(err))
			continue
		}
		r.fonts[family] = f
	}
	return r
}

// LoadFontRegistry gömülü fontların üzerine TOML manifestindeki diskteki fontları ekler.
// Manifest yoksa veya bir font dosyası okunamıyorsa uyarı loglanır; o aile varsayılana düşer.
// Sadece bozuk manifest hata döndürür.
func LoadFontRegistry(manifestPath string) (*FontRegistry, error) {
	r := NewFontRegistry()
	if manifestPath == "" {
		return r, nil
	}

	var m fontManifest
	if _, err := toml.DecodeFile(manifestPath, &m); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			configslog.Log.Warn("Font manifesti bulunamadı, sadece gömülü fontlar kullanılacak", zap.String("path", manifestPath))
			return r, nil
		}
		return nil, fmt.Errorf("font manifesti okunamadı (%s): %w", manifestPath, err)
	}

	dir := m.Dir
	if dir == "" {
		dir = filepath.Dir(manifestPath)
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(manifestPath), dir)
	}

	for _, e := range m.Fonts {
		family := FontFamily(e.Family)
		if !IsKnownFamily(e.Family) {
			configslog.Log.Warn("Manifestte bilinmeyen font ailesi atlandı", zap.String("family", e.Family))
			continue
		}
		path := e.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			configslog.Log.Warn("Font dosyası okunamadı, varsayılana düşülecek", zap.String("family", e.Family), zap.String("path", path), zap.Error(err))
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			configslog.Log.Warn("Font dosyası ayrıştırılamadı, varsayılana düşülecek", zap.String("family", e.Family), zap.String("path", path), zap.Error(err))
			continue
		}
		r.fonts[family] = f
	}

	configslog.SLog.Infof("Font kaydı hazır: %d aile", len(r.fonts))
	return r, nil
}

// Has aile gerçekten yüklü mü (varsayılana düşmeden)?
func (r *FontRegistry) Has(family string) bool {
	_, ok := r.fonts[FontFamily(family)]
	return ok
}

// Resolve aileyi döndürür; bilinmeyen veya yüklenmemiş aile varsayılana düşer.
// Dönen ikinci değer fiilen kullanılan ailedir.
func (r *FontRegistry) Resolve(family string) (*opentype.Font, FontFamily) {
	if f, ok := r.fonts[FontFamily(family)]; ok {
		return f, FontFamily(family)
	}
	configslog.Log.Warn("Font ailesi bulunamadı, varsayılan kullanılıyor", zap.String("family", family), zap.String("fallback", string(DefaultFamily)))
	return r.fonts[DefaultFamily], DefaultFamily
}

// Face verilen punto ve DPI için yeni bir face oluşturur. Hiçbir durumda hata döndürmez;
// opentype face kurulamazsa basicfont'a düşer.
func (r *FontRegistry) Face(family string, sizePt, dpi float64) font.Face {
	if dpi <= 0 {
		dpi = 72
	}
	f, used := r.Resolve(family)
	if f != nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    sizePt,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
		configslog.Log.Warn("Font face oluşturulamadı", zap.String("family", string(used)), zap.Float64("size", sizePt), zap.Error(err))
	}
	return basicfont.Face7x13
}
