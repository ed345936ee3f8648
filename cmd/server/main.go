package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/microposts/backend/internal/metrics"
	"github.com/anonto42/microposts/backend/internal/middleware"
	"github.com/anonto42/microposts/backend/internal/repositories"
	"github.com/anonto42/microposts/backend/internal/router"
	"github.com/anonto42/microposts/backend/internal/social"
	"github.com/anonto42/microposts/backend/internal/validators"
	"github.com/anonto42/microposts/backend/pkg/config"
	"github.com/anonto42/microposts/backend/pkg/firebase"
	"github.com/anonto42/microposts/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Pretty:      cfg.IsDevelopment(),
		ServiceName: "microposts-api",
	})
	l := logger.L()

	if err := cfg.Validate(); err != nil {
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	ctx := context.Background()

	relations, err := newRelationStore(ctx, cfg, db)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to initialize relation store")
	}
	l.Info().Str("backend", cfg.RelationBackend).Msg("relation store ready")

	auth, err := newAuthMiddleware(ctx, cfg, db)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to initialize auth")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, l)
	if err := router.SetupRoutes(e, router.Dependencies{SQL: db.SQL, Relations: relations, Auth: auth}); err != nil {
		l.Fatal().Err(err).Msg("failed to set up routes")
	}

	metricsSrv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metrics.Handler()}
	go func() {
		l.Info().Str("port", cfg.MetricsPort).Msg("metrics server starting")
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error().Err(err).Msg("metrics server error")
		}
	}()

	go func() {
		l.Info().Str("port", cfg.Port).Msg("microposts-api starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Warn().Err(err).Msg("HTTP server forced to shutdown")
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		l.Warn().Err(err).Msg("metrics server forced to shutdown")
	}
	l.Info().Msg("microposts-api stopped")
}

func newRelationStore(ctx context.Context, cfg *config.Config, db *config.DB) (social.RelationStore, error) {
	switch cfg.RelationBackend {
	case config.BackendMongo:
		store := repositories.NewMongoRelationStore(db.Mongo.Database(cfg.MongoDatabase))
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendMemory:
		return repositories.NewMemoryRelationStore(), nil
	default:
		return repositories.NewGormRelationStore(db.SQL), nil
	}
}

func newAuthMiddleware(ctx context.Context, cfg *config.Config, db *config.DB) (echo.MiddlewareFunc, error) {
	if cfg.AuthProvider != config.AuthFirebase {
		return middleware.JWTAuthMiddleware(cfg.JWTSecret), nil
	}
	app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		return nil, err
	}
	return middleware.FirebaseAuthMiddleware(app.AuthClient, repositories.NewGormUserRepository(db.SQL)), nil
}
