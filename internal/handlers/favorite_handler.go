package handlers

import (
	"net/http"

	"github.com/anonto42/microposts/backend/internal/metrics"
	"github.com/anonto42/microposts/backend/internal/social"
	"github.com/anonto42/microposts/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// FavoriteHandler handles favorite HTTP requests
type FavoriteHandler struct {
	favorites *social.FavoriteSet
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favorites *social.FavoriteSet) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// RegisterFavoriteRoutes registers favorite routes
func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group) {
	g.POST("/favorites/:id", h.Store)
	g.DELETE("/favorites/:id", h.Destroy)
	g.GET("/users/:id/favorites", h.ListFavorites)
}

// Store adds micropost :id to the acting user's favorites and redirects back
func (h *FavoriteHandler) Store(c echo.Context) error {
	actorID, err := requireActor(c)
	if err != nil {
		return err
	}
	micropostID, err := bindID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	changed, err := h.favorites.Favorite(ctx, actorID, micropostID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to favorite micropost").SetInternal(err)
	}
	metrics.ObserveToggle("favorite", "add", changed)
	l := logger.Ctx(ctx)
	l.Debug().Uint(logger.FieldUserID, actorID).Uint("micropost_id", micropostID).Bool("changed", changed).Msg("favorite")

	return redirectBack(c)
}

// Destroy removes micropost :id from the acting user's favorites and redirects back
func (h *FavoriteHandler) Destroy(c echo.Context) error {
	actorID, err := requireActor(c)
	if err != nil {
		return err
	}
	micropostID, err := bindID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	changed, err := h.favorites.Unfavorite(ctx, actorID, micropostID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unfavorite micropost").SetInternal(err)
	}
	metrics.ObserveToggle("favorite", "remove", changed)
	l := logger.Ctx(ctx)
	l.Debug().Uint(logger.FieldUserID, actorID).Uint("micropost_id", micropostID).Bool("changed", changed).Msg("unfavorite")

	return redirectBack(c)
}

// ListFavorites returns the micropost ids :id has favorited
func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	userID, err := bindID(c)
	if err != nil {
		return err
	}
	ids, err := h.favorites.FavoriteIDs(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list favorites").SetInternal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"user_id": userID, "favorites": ids}})
}
