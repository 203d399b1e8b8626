package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	contactapp "github.com/gita/backend/internal/application/contact"
	contentapp "github.com/gita/backend/internal/application/content"
	identityapp "github.com/gita/backend/internal/application/identity"
	readingapp "github.com/gita/backend/internal/application/reading"
	"github.com/gita/backend/internal/infrastructure/auth"
	"github.com/gita/backend/internal/infrastructure/cache"
	"github.com/gita/backend/internal/infrastructure/config"
	"github.com/gita/backend/internal/infrastructure/content"
	"github.com/gita/backend/internal/infrastructure/logger"
	"github.com/gita/backend/internal/infrastructure/mail"
	"github.com/gita/backend/internal/infrastructure/persistence"
	"github.com/gita/backend/internal/interfaces/http/handler"
	"github.com/gita/backend/internal/interfaces/http/middleware"
	"github.com/gita/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Gita Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	otpRepo := persistence.NewGormOTPRepository(db.DB)
	progressRepo := persistence.NewGormProgressRepository(db.DB)
	favouriteRepo := persistence.NewGormFavouriteRepository(db.DB)

	// Content cache: redis when reachable, in-memory otherwise
	cacheFactory := cache.NewContentCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	contentCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize content cache", zap.Error(err))
	}
	defer func() {
		if err := contentCache.Close(); err != nil {
			log.Error("Error closing content cache", zap.Error(err))
		}
	}()

	// Outbound mail; falls back to a log-only sender without SMTP config
	sender := mail.NewSender(cfg.SMTP, log)

	// Session plumbing
	sessionService := auth.NewSessionService(cfg.JWT)
	cookieWriter := auth.NewCookieWriter(cfg.Cookie, cfg.IsProduction())

	// Application services
	otpService := identityapp.NewOTPService(otpRepo, userRepo, sessionService, sender, identityapp.OTPServiceConfig{
		CodeLength:  cfg.OTP.Length,
		TTL:         cfg.OTP.TTL,
		Attempts:    cfg.OTP.Attempts,
		SendTimeout: cfg.OTP.SendTimeout,
		DevEcho:     cfg.DevShowOTP(),
		AppName:     cfg.App.Name,
	}, log)
	userService := identityapp.NewUserService(userRepo, log)
	progressService := readingapp.NewProgressService(progressRepo, log)
	favouriteService := readingapp.NewFavouriteService(favouriteRepo, log)
	japaService := readingapp.NewJapaService(userRepo, log)
	contentClient := content.NewClient(cfg.Content)
	contentService := contentapp.NewContentService(contentClient, contentCache, cfg.Content.CacheTTL, log)
	contactService := contactapp.NewService(sender, contactapp.ServiceConfig{
		AdminTo:   cfg.SMTP.AdminTo,
		Signature: cfg.Contact.Signature,
	}, log)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogger(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Session middleware resolves the cookie into a user
	sessionMW := middleware.NewSessionMiddleware(cookieWriter, sessionService, userRepo, log)

	// Register routes
	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db))
	r.Register(handler.NewAuthHandler(otpService, userService, cookieWriter, sessionMW))
	r.Register(handler.NewProgressHandler(progressService, sessionMW))
	r.Register(handler.NewFavouriteHandler(favouriteService, sessionMW))
	r.Register(handler.NewJapaHandler(japaService, sessionMW))
	r.Register(handler.NewContentHandler(contentService))
	r.Register(handler.NewContactHandler(contactService))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
