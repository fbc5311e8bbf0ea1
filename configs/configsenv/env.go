package configsenv

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"kartvizit.link/configs/configslog"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// AppConfig uygulamanın ortam değişkenlerinden okunan ayarlarıdır.
type AppConfig struct {
	AppPort    string
	AppBaseURL string // Public kart linkleri için (örn. https://kartvizit.link)

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	MediaDir     string // Profil fotoğrafı / logo dosyalarının kök dizini
	FontManifest string // TOML font manifest yolu

	QREndpoint   string        // Üçüncü parti QR üretim servisi
	QRTimeout    time.Duration // QR çekme zaman aşımı
	QRRetryMax   int           // retryablehttp tekrar sayısı (0 = tekrar yok)
	QRErrorLevel string        // L, M, Q, H

	RateLimitPerWindow int
	RateLimitWindow    time.Duration
	RateLimitNameTags  bool // İsim etiketi indirmelerinde de limit uygulansın mı?
}

var (
	cfg     *AppConfig
	cfgOnce sync.Once
)

// Load .env dosyasını (varsa) yükler ve AppConfig'i bir kez oluşturur.
func Load() *AppConfig {
	cfgOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			configslog.SLog.Debug(".env dosyası bulunamadı, sadece ortam değişkenleri kullanılacak")
		}
		cfg = fromEnv()
		configslog.Log.Info("Yapılandırma yüklendi",
			zap.String("port", cfg.AppPort),
			zap.String("base_url", cfg.AppBaseURL),
			zap.String("media_dir", cfg.MediaDir),
			zap.Duration("qr_timeout", cfg.QRTimeout),
			zap.Int("rate_limit", cfg.RateLimitPerWindow),
			zap.Bool("rate_limit_nametags", cfg.RateLimitNameTags),
		)
	})
	return cfg
}

// Get yüklenmiş yapılandırmayı döndürür; yüklenmemişse Load çağırır.
func Get() *AppConfig {
	return Load()
}

func fromEnv() *AppConfig {
	return &AppConfig{
		AppPort:    GetEnvWithDefault("APP_PORT", "3000"),
		AppBaseURL: strings.TrimRight(GetEnvWithDefault("APP_BASE_URL", "http://localhost:3000"), "/"),

		DBHost:     GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     GetEnvWithDefault("DB_PORT", "5432"),
		DBUser:     GetEnvWithDefault("DB_USERNAME", "postgres"),
		DBPassword: GetEnvWithDefault("DB_PASSWORD", ""),
		DBName:     GetEnvWithDefault("DB_DATABASE", "kartvizit"),
		DBSSLMode:  GetEnvWithDefault("DB_SSL_MODE", "disable"),
		DBTimezone: GetEnvWithDefault("DB_TIMEZONE", "UTC"),

		MediaDir:     GetEnvWithDefault("MEDIA_DIR", "./storage/media"),
		FontManifest: GetEnvWithDefault("FONT_MANIFEST", "./assets/fonts/fonts.toml"),

		QREndpoint:   GetEnvWithDefault("QR_ENDPOINT", "https://api.qrserver.com/v1/create-qr-code/"),
		QRTimeout:    GetDurationEnv("QR_TIMEOUT", 4*time.Second),
		QRRetryMax:   GetIntEnv("QR_RETRY_MAX", 0),
		QRErrorLevel: GetEnvWithDefault("QR_ECC", "M"),

		RateLimitPerWindow: GetIntEnv("RATE_LIMIT_PER_WINDOW", 10),
		RateLimitWindow:    GetDurationEnv("RATE_LIMIT_WINDOW", time.Hour),
		RateLimitNameTags:  GetBoolEnv("RATE_LIMIT_NAMETAGS", false),
	}
}

// GetEnvWithDefault ortam değişkenini okur, boşsa varsayılanı döndürür.
func GetEnvWithDefault(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		configslog.Log.Warn("Geçersiz tamsayı ortam değişkeni, varsayılan kullanılıyor", zap.String("key", key), zap.String("value", raw))
		return defaultValue
	}
	return v
}

func GetBoolEnv(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		configslog.Log.Warn("Geçersiz boolean ortam değişkeni, varsayılan kullanılıyor", zap.String("key", key), zap.String("value", raw))
		return defaultValue
	}
	return v
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		configslog.Log.Warn("Geçersiz süre ortam değişkeni, varsayılan kullanılıyor", zap.String("key", key), zap.String("value", raw))
		return defaultValue
	}
	return v
}
