package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/places-backend/internal/app"
	dataagg "github.com/yungbote/places-backend/internal/data/aggregates"
	"github.com/yungbote/places-backend/internal/db"
	"github.com/yungbote/places-backend/internal/handlers"
	"github.com/yungbote/places-backend/internal/middleware"
	"github.com/yungbote/places-backend/internal/observability"
	"github.com/yungbote/places-backend/internal/platform/logger"
	"github.com/yungbote/places-backend/internal/repos"
	"github.com/yungbote/places-backend/internal/server"
	"github.com/yungbote/places-backend/internal/services"
	"github.com/yungbote/places-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	cfg := app.LoadConfig(log)

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "places-backend",
		Environment: cfg.Environment,
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", nil),
	})

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	placeRepo := repos.NewPlaceRepo(thePG, log)

	// Consistency engine
	txRunner := dataagg.NewGormTxRunner(thePG)
	placeUser := dataagg.NewPlaceUser(txRunner, log, userRepo, placeRepo)

	// Object storage
	objectStore, uploadsDir, err := app.ResolveObjectStore(log, cfg)
	if err != nil {
		log.Error("Could not init object storage", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up services from main...")
	authService := services.NewAuthService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	uploadService := services.NewUploadService(log, objectStore)
	avatarService, err := services.NewAvatarService(log)
	if err != nil {
		log.Error("Could not init AvatarService", "error", err)
		os.Exit(1)
	}
	geocodingService := services.NewGeocodingService(log, cfg.GeocoderBaseURL, cfg.GeocoderAPIKey)
	userService := services.NewUserService(thePG, log, userRepo, authService, avatarService, uploadService)
	placeService := services.NewPlaceService(log, placeUser, geocodingService, uploadService)

	// Handlers
	log.Info("Setting up handlers from main...")
	placeHandler := handlers.NewPlaceHandler(log, placeService, uploadService)
	userHandler := handlers.NewUserHandler(log, userService, uploadService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		PlaceHandler:   placeHandler,
		UserHandler:    userHandler,
		AuthMiddleware: authMiddleware,
		UploadsDir:     uploadsDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if otelShutdown != nil {
			_ = otelShutdown(shutdownCtx)
		}
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
