package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configsenv"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/compose"
	"kartvizit.link/pkg/media"
	"kartvizit.link/pkg/ratelimit"
	"kartvizit.link/repositories"
	"kartvizit.link/routes"
	"kartvizit.link/services"
	"kartvizit.link/views"

	"github.com/gofiber/fiber/v2"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configsenv.Load()
	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()
	db := configsdatabase.GetDB()

	fonts, err := compose.LoadFontRegistry(cfg.FontManifest)
	if err != nil {
		configslog.Log.Fatal("Font kaydı kurulamadı", zap.Error(err))
	}
	store := media.NewFileStore(cfg.MediaDir)
	qr := compose.NewHTTPQRSource(cfg.QREndpoint, cfg.QRTimeout, cfg.QRRetryMax, cfg.QRErrorLevel)
	renderer := compose.NewRenderer(fonts, store, qr, cfg.AppBaseURL)
	engine := views.NewEngine()

	limiter := ratelimit.NewLimiter(repositories.NewRateLimitRepositoryWithDB(db), cfg.RateLimitPerWindow, cfg.RateLimitWindow)

	users := services.NewUserService()
	cards := services.NewCardService()
	analytics := services.NewAnalyticsService(cards)
	deps := routes.Dependencies{
		Users:       users,
		Cards:       cards,
		Preferences: services.NewPreferenceService(cards),
		Render: services.NewRenderServiceWithDB(db, cards, renderer, engine, limiter, analytics,
			services.RenderOptions{LimitNameTags: cfg.RateLimitNameTags}),
		Analytics: analytics,
		Media:     store,
		BaseURL:   cfg.AppBaseURL,
	}

	app := fiber.New(fiber.Config{
		Views:        engine,
		AppName:      "kartvizit.link",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	})
	routes.SetupRoutes(app, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go pruneRateLimits(ctx, limiter)

	go func() {
		<-ctx.Done()
		configslog.SLog.Info("Sunucu kapatılıyor...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu %s portunda başlatılıyor", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		configslog.Log.Error("Sunucu hatası", zap.Error(err))
	}
}

// pruneRateLimits pencere dışına çıkmış sınırlayıcı olaylarını düzenli olarak siler.
func pruneRateLimits(ctx context.Context, limiter *ratelimit.Limiter) {
	ticker := time.NewTicker(limiter.Window())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := limiter.Prune(ctx)
			if err != nil {
				configslog.Log.Warn("Sınırlayıcı olayları temizlenemedi", zap.Error(err))
				continue
			}
			if n > 0 {
				configslog.Log.Debug("Eski sınırlayıcı olayları silindi", zap.Int64("count", n))
			}
		}
	}
}
