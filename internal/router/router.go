package router

import (
	"fmt"

	"github.com/anonto42/microposts/backend/internal/handlers"
	"github.com/anonto42/microposts/backend/internal/repositories"
	"github.com/anonto42/microposts/backend/internal/social"
	"github.com/anonto42/microposts/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	SQL       *gorm.DB
	Relations social.RelationStore
	Auth      echo.MiddlewareFunc
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, base zerolog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(logger.EchoMiddleware(base))
	base.Info().Msg("global middleware configured")
}

// SetupRoutes migrates the SQL schema and configures all application routes
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	l := logger.L()

	if err := repositories.AutoMigrate(deps.SQL); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	l.Info().Msg("SQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Core ---
	micropostRepo := repositories.NewGormMicropostRepository(deps.SQL)
	follows := social.NewFollowGraph(deps.Relations)
	favorites := social.NewFavoriteSet(deps.Relations)
	profiles := social.NewProfiles(follows, favorites, micropostRepo)

	// --- Authenticated routes ---
	api := e.Group("", deps.Auth)

	handlers.NewFollowHandler(follows).RegisterFollowRoutes(api)
	handlers.NewFavoriteHandler(favorites).RegisterFavoriteRoutes(api)
	handlers.NewFeedHandler(profiles).RegisterFeedRoutes(api)
	handlers.NewUserHandler(profiles).RegisterProfileRoutes(api)

	l.Info().Msg("all routes configured")
	return nil
}
