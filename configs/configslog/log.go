package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log yapılandırılmış logger, SLog ise printf tarzı sugared logger.
// InitLogger çağrılmadan önce (örn. testlerde) no-op logger kullanılır.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// rotating dosya sink'i, SyncLogger'da kapatılır.
var fileSink *lumberjack.Logger

// InitLogger LOG_LEVEL ve LOG_FILE ortam değişkenlerine göre logger'ı kurar.
// LOG_FILE verilmişse konsola ek olarak lumberjack ile döndürülen dosyaya da yazar.
func InitLogger() {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level),
	}

	if path := os.Getenv("LOG_FILE"); path != "" {
		fileSink = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    20, // MB
			MaxBackups: 5,
			MaxAge:     28, // gün
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(fileSink), level))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SLog = Log.Sugar()
}

// SyncLogger tamponlanmış logları boşaltır ve dosya sink'ini kapatır.
func SyncLogger() {
	_ = Log.Sync() // stdout için Sync hata dönebilir, önemsiz
	if fileSink != nil {
		_ = fileSink.Close()
	}
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
