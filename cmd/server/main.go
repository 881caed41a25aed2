package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/rahmimuaz/Evolexxlk/internal/application/catalog"
	identityapp "github.com/rahmimuaz/Evolexxlk/internal/application/identity"
	orderingapp "github.com/rahmimuaz/Evolexxlk/internal/application/ordering"
	"github.com/rahmimuaz/Evolexxlk/internal/infrastructure/auth"
	"github.com/rahmimuaz/Evolexxlk/internal/infrastructure/config"
	"github.com/rahmimuaz/Evolexxlk/internal/infrastructure/logger"
	"github.com/rahmimuaz/Evolexxlk/internal/infrastructure/notification"
	"github.com/rahmimuaz/Evolexxlk/internal/infrastructure/persistence"
	"github.com/rahmimuaz/Evolexxlk/internal/infrastructure/storage"
	"github.com/rahmimuaz/Evolexxlk/internal/interfaces/http/handler"
	"github.com/rahmimuaz/Evolexxlk/internal/interfaces/http/middleware"
	"github.com/rahmimuaz/Evolexxlk/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting Evolexx backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)

	// Token handling. The Redis blacklist is used when Redis is
	// configured, otherwise revocation is process-local.
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled", zap.String("host", cfg.Redis.Host))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-memory token blacklist")
	}

	// Object storage for product images and bank transfer proofs
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.LocalDir != "" {
		localStorage, err := storage.NewLocalObjectStorage(cfg.Storage.LocalDir, cfg.Storage.PublicURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage", zap.Error(err))
		}
		objectStorage = localStorage
		log.Info("Using local object storage", zap.String("dir", cfg.Storage.LocalDir))
	} else {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Using S3 object storage", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Mail notifications are optional. Orders still succeed when no
	// SMTP host is configured; notifications are simply dropped.
	var notifier orderingapp.Notifier = orderingapp.NopNotifier{}
	var dispatcher *notification.Dispatcher
	if cfg.Mail.Host != "" {
		dispatcher = notification.NewDispatcher(notification.NewGomailSender(cfg.Mail), log)
		notifier = dispatcher
		log.Info("Mail notifications enabled", zap.String("host", cfg.Mail.Host))
	} else {
		log.Warn("SMTP not configured, mail notifications disabled")
	}

	var googleVerifier auth.GoogleVerifier
	if cfg.Google.ClientID != "" {
		googleVerifier = auth.NewGoogleIDTokenVerifier(cfg.Google.ClientID)
		log.Info("Google sign-in enabled")
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, objectStorage, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, googleVerifier, log)
	cartService := identityapp.NewCartService(userRepo, productRepo, log)
	userService := identityapp.NewUserService(userRepo, log)
	proofService := orderingapp.NewProofService(objectStorage, log)
	adjuster := orderingapp.NewInventoryAdjuster(productRepo, notifier, cfg.Inventory.AlertEmail, log)
	orderService := orderingapp.NewOrderService(
		orderRepo, userRepo, productRepo, adjuster, notifier,
		cfg.Inventory.AlertEmail, cfg.App.FrontendURL, log,
	)
	shipmentService := orderingapp.NewShipmentService(orderRepo, shipmentRepo, userRepo, log)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	authn := middleware.RequireAuth(jwtService, blacklist, log)
	admin := middleware.RequireAdmin()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewHealthHandler(db)).
		Register(handler.NewAuthHandler(authService, authn)).
		Register(handler.NewProductHandler(productService, authn, admin)).
		Register(handler.NewCartHandler(cartService, authn)).
		Register(handler.NewUserHandler(userService, authn, admin)).
		Register(handler.NewUploadHandler(proofService, authn)).
		Register(handler.NewOrderHandler(orderService, shipmentService, authn, admin)).
		Register(handler.NewShipmentHandler(shipmentService, authn, admin)).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	// Let in-flight notification mail finish before exiting
	if dispatcher != nil {
		dispatcher.Wait()
	}

	log.Info("Server stopped")
}
