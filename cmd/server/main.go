package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/cache"
	"github.com/SPS-2025/school-portal-service/internal/config"
	"github.com/SPS-2025/school-portal-service/internal/handlers"
	"github.com/SPS-2025/school-portal-service/internal/identity"
	"github.com/SPS-2025/school-portal-service/internal/repositories/postgres"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/session"
	"github.com/SPS-2025/school-portal-service/internal/store"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/SPS-2025/school-portal-service/internal/validator"
	"github.com/SPS-2025/school-portal-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.IsDevelopment() {
		logger = utils.NewDevelopmentLogger()
	} else {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	eventPublisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer eventPublisher.Close()

	blobs, err := store.NewOSSBlobStore(store.OSSConfig{
		Endpoint:        cfg.OSS.Endpoint,
		AccessKeyID:     cfg.OSS.AccessKeyID,
		AccessKeySecret: cfg.OSS.AccessKeySecret,
		Bucket:          cfg.OSS.Bucket,
	})
	if err != nil {
		logger.Error("Failed to create blob store", "error", err)
		os.Exit(1)
	}

	provider := identity.NewCasdoorProvider(identity.CasdoorConfig{
		Endpoint:     cfg.Casdoor.Endpoint,
		ClientID:     cfg.Casdoor.ClientID,
		ClientSecret: cfg.Casdoor.ClientSecret,
		Certificate:  cfg.Casdoor.Certificate,
		Organization: cfg.Casdoor.Organization,
		Application:  cfg.Casdoor.Application,
	})

	profiles := store.NewGormProfileStore(db)
	notifier := session.NewLogNotifier(logger)
	// Session lifetime matches the bearer token TTL.
	registry := session.NewRegistry(func() *session.Manager {
		return session.NewManager(provider, profiles, blobs, notifier, logger)
	}, 24*time.Hour)

	repo := postgres.NewRepository(db)
	cacheService := cache.NewRedisCache(redisClient, slogger)
	v := validator.New()
	serviceManager := services.NewServiceManager(repo, blobs, cacheService, eventPublisher, slogger, v)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, registry, cfg.JWTSecret, v, logger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
